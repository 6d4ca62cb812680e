package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobgate/internal/aggregator"
	"jobgate/internal/config"
	"jobgate/internal/scraper"
	"jobgate/internal/sources"
	"jobgate/pkg/models"
)

type fakeEngine struct {
	rows []map[string]any
	err  error
}

func (f *fakeEngine) ScrapeBatch(context.Context, scraper.BatchParams) ([]map[string]any, error) {
	return f.rows, f.err
}

func (f *fakeEngine) IsHealthy() bool { return true }

type fakeAdapter struct {
	source  models.SourceID
	records []models.JobRecord
}

func (f *fakeAdapter) Source() models.SourceID { return f.source }

func (f *fakeAdapter) Fetch(context.Context, *models.SearchRequest) ([]models.JobRecord, error) {
	return f.records, nil
}

func newTestHandler(engine scraper.Engine, adapters ...sources.Adapter) echo.HandlerFunc {
	cfg := &config.Config{}
	cfg.Upstream.RequestTimeout = 5 * time.Second
	cfg.Jobspy.Timeout = 5 * time.Second

	agg := aggregator.New(cfg, engine, sources.NewRegistryWithAdapters(adapters...))
	return JobsHandler(agg)
}

func performRequest(t *testing.T, handler echo.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("request_id", "test-request")

	require.NoError(t, handler(c))
	return rec
}

func TestJobsGetReturnsEnvelope(t *testing.T) {
	handler := newTestHandler(
		&fakeEngine{},
		&fakeAdapter{source: models.SourceRemoteOK, records: []models.JobRecord{
			{Title: "Go Developer", Source: models.SourceRemoteOK, Skills: []string{}},
		}},
	)

	rec := performRequest(t, handler, http.MethodGet, "/api/jobs?site_name=remoteok&search_term=go", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope models.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	assert.Equal(t, 1, envelope.Count)
	assert.Equal(t, []models.SourceID{models.SourceRemoteOK}, envelope.Sites)
	assert.Equal(t, "go", envelope.Query["search_term"])
	require.Len(t, envelope.Jobs, 1)
	assert.Equal(t, "Go Developer", envelope.Jobs[0].Title)
}

func TestJobsGetUnknownSite(t *testing.T) {
	handler := newTestHandler(&fakeEngine{})

	rec := performRequest(t, handler, http.MethodGet, "/api/jobs?site_name=monster", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "validation_error", errResp.ErrorType)
	assert.Contains(t, errResp.Error, "monster")
}

func TestJobsPostBodyOverlaysQuery(t *testing.T) {
	handler := newTestHandler(
		&fakeEngine{},
		&fakeAdapter{source: models.SourceJobicy},
	)

	body := `{"site_name": "jobicy", "search_term": "from-body"}`
	rec := performRequest(t, handler, http.MethodPost, "/api/jobs?search_term=from-query", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope models.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "from-body", envelope.Query["search_term"])
	assert.Equal(t, []models.SourceID{models.SourceJobicy}, envelope.Sites)
}

func TestJobsPostMalformedBody(t *testing.T) {
	handler := newTestHandler(&fakeEngine{})

	rec := performRequest(t, handler, http.MethodPost, "/api/jobs", `{"site_name":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "validation_error", errResp.ErrorType)
}

func TestJobsCSVOutput(t *testing.T) {
	handler := newTestHandler(
		&fakeEngine{},
		&fakeAdapter{source: models.SourceRemoteOK, records: []models.JobRecord{
			{Title: "Go Developer", Source: models.SourceRemoteOK, Skills: []string{}},
		}},
	)

	rec := performRequest(t, handler, http.MethodGet, "/api/jobs?site_name=remoteok&output_format=csv", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/csv")
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "jobs.csv")
	assert.Contains(t, rec.Body.String(), "Go Developer")
}

func TestJobsExcelOutput(t *testing.T) {
	handler := newTestHandler(
		&fakeEngine{},
		&fakeAdapter{source: models.SourceRemoteOK},
	)

	rec := performRequest(t, handler, http.MethodGet, "/api/jobs?site_name=remoteok&output_format=excel", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "spreadsheetml")
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "jobs.xlsx")
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestJobsScrapeFailedEnvelope(t *testing.T) {
	handler := newTestHandler(&fakeEngine{err: context.DeadlineExceeded})

	rec := performRequest(t, handler, http.MethodGet, "/api/jobs?site_name=linkedin", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var errResp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "scrape_failed", errResp.ErrorType)
	assert.NotEmpty(t, errResp.Parameters)
}
