package adapters

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"jobgate/internal/normalize"
	"jobgate/internal/upstream"
	"jobgate/pkg/models"
	"jobgate/pkg/utils"
)

// Remotive fetches from the Remotive public API. Remote-only board; the API
// has no location parameter, so location filtering happens client-side on
// the candidate_required_location field.
type Remotive struct {
	client  *upstream.Client
	baseURL string
}

// NewRemotive creates a Remotive adapter.
func NewRemotive(client *upstream.Client, baseURL string) *Remotive {
	return &Remotive{client: client, baseURL: baseURL}
}

// Source returns the board identifier.
func (a *Remotive) Source() models.SourceID {
	return models.SourceRemotive
}

type remotiveResponse struct {
	Jobs []map[string]any `json:"jobs"`
}

// Fetch retrieves and normalizes Remotive postings.
func (a *Remotive) Fetch(ctx context.Context, req *models.SearchRequest) ([]models.JobRecord, error) {
	if req.IsRemote != nil && !*req.IsRemote {
		return nil, nil
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(req.Offset+req.ResultsWanted))
	if req.SearchTerm != "" {
		query.Set("search", req.SearchTerm)
	}

	var resp remotiveResponse
	if err := a.client.GetJSON(ctx, a.baseURL, query, &resp); err != nil {
		return nil, err
	}
	rows := resp.Jobs

	// Country takes precedence over free-text location. Worldwide and
	// anywhere postings always pass.
	if locFilter := strings.ToLower(utils.FirstNonEmpty(req.Country, req.Location)); locFilter != "" {
		var matched []map[string]any
		for _, row := range rows {
			candidate := strings.ToLower(normalize.String(row["candidate_required_location"]))
			if strings.Contains(candidate, locFilter) ||
				strings.Contains(candidate, "worldwide") ||
				strings.Contains(candidate, "anywhere") {
				matched = append(matched, row)
			}
		}
		rows = matched
	}

	if cutoff := hoursCutoff(req.HoursOld); !cutoff.IsZero() {
		var fresh []map[string]any
		for _, row := range rows {
			// Unparseable publication dates count as infinitely old.
			if !normalize.ParseTimestamp(row["publication_date"]).Before(cutoff) {
				fresh = append(fresh, row)
			}
		}
		rows = fresh
	}

	rows = window(rows, req.Offset, req.ResultsWanted)

	records := make([]models.JobRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, a.toRecord(row, req.DescriptionFormat))
	}
	return records, nil
}

// remotiveJobTypes maps the board's job_type labels onto the shared
// vocabulary. "other" intentionally maps to empty.
var remotiveJobTypes = map[string]string{
	"full_time":  models.JobTypeFulltime,
	"part_time":  models.JobTypeParttime,
	"contract":   models.JobTypeContract,
	"freelance":  models.JobTypeContract,
	"internship": models.JobTypeInternship,
}

func (a *Remotive) toRecord(row map[string]any, descFormat string) models.JobRecord {
	record := models.JobRecord{
		Title:           normalize.String(row["title"]),
		Company:         normalize.String(row["company_name"]),
		Source:          models.SourceRemotive,
		JobURL:          normalize.String(row["url"]),
		Location:        models.Location{City: normalize.String(row["candidate_required_location"])},
		IsRemote:        true,
		JobType:         remotiveJobTypes[strings.ToLower(normalize.String(row["job_type"]))],
		DatePosted:      normalize.ISODatePrefix(normalize.String(row["publication_date"])),
		Description:     normalize.Description(normalize.String(row["description"]), descFormat),
		Skills:          normalize.StringList(row["tags"]),
		CompanyIndustry: normalize.String(row["category"]),
	}
	if record.Skills == nil {
		record.Skills = []string{}
	}
	return record
}
