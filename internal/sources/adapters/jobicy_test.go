package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jobicyServer(t *testing.T, jobs []map[string]any, gotQuery *url.Values) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotQuery != nil {
			*gotQuery = r.URL.Query()
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"jobs": jobs}))
	}))
}

func TestJobicyCountCap(t *testing.T) {
	var query url.Values
	srv := jobicyServer(t, nil, &query)
	defer srv.Close()

	req := baseRequest()
	req.Offset = 30
	req.ResultsWanted = 100

	_, err := NewJobicy(testClient(), srv.URL).Fetch(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "50", query.Get("count"))
}

func TestJobicyGeoFromLocation(t *testing.T) {
	var query url.Values
	srv := jobicyServer(t, nil, &query)
	defer srv.Close()

	adapter := NewJobicy(testClient(), srv.URL)

	req := baseRequest()
	req.Location = "New York, NY, USA"
	_, err := adapter.Fetch(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "usa", query.Get("geo"))

	// country takes precedence over the location tail
	req.Country = "Germany"
	_, err = adapter.Fetch(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "germany", query.Get("geo"))
}

func TestJobicyJobTypeFilter(t *testing.T) {
	jobs := []map[string]any{
		{"jobTitle": "gig", "jobType": []any{"Freelance"}},
		{"jobTitle": "staff", "jobType": []any{"Full-Time"}},
	}
	srv := jobicyServer(t, jobs, nil)
	defer srv.Close()

	req := baseRequest()
	req.JobType = "contract"

	records, err := NewJobicy(testClient(), srv.URL).Fetch(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "gig", records[0].Title)
	assert.Equal(t, "contract", records[0].JobType)
}

func TestJobicyTitleDoubleUnescape(t *testing.T) {
	jobs := []map[string]any{
		{"jobTitle": "Design &amp;amp; Research Lead"},
	}
	srv := jobicyServer(t, jobs, nil)
	defer srv.Close()

	records, err := NewJobicy(testClient(), srv.URL).Fetch(context.Background(), baseRequest())
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "Design & Research Lead", records[0].Title)
}

func TestJobicyRecordMapping(t *testing.T) {
	jobs := []map[string]any{
		{
			"jobTitle":       "Support Engineer",
			"companyName":    "Jobico",
			"url":            "https://jobicy.example/j/3",
			"jobGeo":         "Europe",
			"jobLevel":       "Senior",
			"jobType":        []any{"Part-Time"},
			"pubDate":        "2024-07-04 09:15:00",
			"jobDescription": "<p>Help customers</p>",
			"jobIndustry":    []any{"SaaS", "Support"},
			"salaryMin":      float64(40000),
			"salaryMax":      float64(60000),
			"salaryPeriod":   "",
			"salaryCurrency": "EUR",
		},
	}
	srv := jobicyServer(t, jobs, nil)
	defer srv.Close()

	records, err := NewJobicy(testClient(), srv.URL).Fetch(context.Background(), baseRequest())
	require.NoError(t, err)
	require.Len(t, records, 1)

	record := records[0]
	assert.Equal(t, "parttime", record.JobType)
	assert.Equal(t, "Senior", record.JobLevel)
	assert.Equal(t, "2024-07-04", record.DatePosted)
	assert.Equal(t, "Europe", record.Location.City)
	assert.Equal(t, "SaaS", record.CompanyIndustry)
	assert.Equal(t, []string{}, record.Skills)

	require.NotNil(t, record.Salary)
	assert.Equal(t, "yearly", record.Salary.Interval) // empty period falls back
	assert.Equal(t, "EUR", record.Salary.Currency)
}
