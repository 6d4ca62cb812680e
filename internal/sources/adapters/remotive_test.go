package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func remotiveServer(t *testing.T, jobs []map[string]any, calls *atomic.Int64, gotQuery *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			calls.Add(1)
		}
		if gotQuery != nil {
			*gotQuery = r.URL.RawQuery
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"jobs": jobs}))
	}))
}

func TestRemotiveOnSiteShortCircuits(t *testing.T) {
	var calls atomic.Int64
	srv := remotiveServer(t, nil, &calls, nil)
	defer srv.Close()

	req := baseRequest()
	req.IsRemote = boolPtr(false)

	records, err := NewRemotive(testClient(), srv.URL).Fetch(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Zero(t, calls.Load())
}

func TestRemotiveLimitAndSearchParams(t *testing.T) {
	var query string
	srv := remotiveServer(t, nil, nil, &query)
	defer srv.Close()

	req := baseRequest()
	req.Offset = 5
	req.ResultsWanted = 10
	req.SearchTerm = "devops"

	_, err := NewRemotive(testClient(), srv.URL).Fetch(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, query, "limit=15")
	assert.Contains(t, query, "search=devops")
}

func TestRemotiveLocationFilter(t *testing.T) {
	jobs := []map[string]any{
		{"title": "usa-role", "candidate_required_location": "USA Only"},
		{"title": "europe-role", "candidate_required_location": "Europe"},
		{"title": "global-role", "candidate_required_location": "Worldwide"},
		{"title": "open-role", "candidate_required_location": "Anywhere"},
	}
	srv := remotiveServer(t, jobs, nil, nil)
	defer srv.Close()

	req := baseRequest()
	req.Country = "USA"

	records, err := NewRemotive(testClient(), srv.URL).Fetch(context.Background(), req)
	require.NoError(t, err)

	var titles []string
	for _, r := range records {
		titles = append(titles, r.Title)
	}
	assert.Equal(t, []string{"usa-role", "global-role", "open-role"}, titles)
}

func TestRemotiveRecordMapping(t *testing.T) {
	jobs := []map[string]any{
		{
			"title":                       "Frontend Engineer",
			"company_name":                "Remotely",
			"url":                         "https://remotive.example/j/9",
			"candidate_required_location": "Worldwide",
			"job_type":                    "full_time",
			"publication_date":            "2024-06-15T10:00:00",
			"description":                 "<p>React role</p>",
			"tags":                        []any{"react"},
			"category":                    "Software Development",
		},
	}
	srv := remotiveServer(t, jobs, nil, nil)
	defer srv.Close()

	records, err := NewRemotive(testClient(), srv.URL).Fetch(context.Background(), baseRequest())
	require.NoError(t, err)
	require.Len(t, records, 1)

	record := records[0]
	assert.Equal(t, "fulltime", record.JobType)
	assert.Equal(t, "2024-06-15", record.DatePosted)
	assert.Equal(t, "Worldwide", record.Location.City)
	assert.Equal(t, "Software Development", record.CompanyIndustry)
	assert.True(t, record.IsRemote)
	assert.Equal(t, "React role", record.Description)
}

func TestRemotiveUnparseableDateFilteredAsOld(t *testing.T) {
	jobs := []map[string]any{
		{"title": "dated", "publication_date": "soon"},
	}
	srv := remotiveServer(t, jobs, nil, nil)
	defer srv.Close()

	req := baseRequest()
	req.HoursOld = 24

	records, err := NewRemotive(testClient(), srv.URL).Fetch(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, records)
}
