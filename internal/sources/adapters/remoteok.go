package adapters

import (
	"context"
	"net/url"

	"jobgate/internal/normalize"
	"jobgate/internal/upstream"
	"jobgate/pkg/models"
	"jobgate/pkg/utils"
)

// RemoteOK fetches from the RemoteOK public API. The board carries remote
// positions only, so a request explicitly asking for on-site jobs
// short-circuits to an empty result.
type RemoteOK struct {
	client  *upstream.Client
	baseURL string
}

// NewRemoteOK creates a RemoteOK adapter.
func NewRemoteOK(client *upstream.Client, baseURL string) *RemoteOK {
	return &RemoteOK{client: client, baseURL: baseURL}
}

// Source returns the board identifier.
func (a *RemoteOK) Source() models.SourceID {
	return models.SourceRemoteOK
}

// Fetch retrieves and normalizes RemoteOK postings.
func (a *RemoteOK) Fetch(ctx context.Context, req *models.SearchRequest) ([]models.JobRecord, error) {
	if req.IsRemote != nil && !*req.IsRemote {
		return nil, nil
	}

	query := url.Values{}
	if req.SearchTerm != "" {
		query.Set("tag", req.SearchTerm)
	}

	var payload []map[string]any
	if err := a.client.GetJSON(ctx, a.baseURL, query, &payload); err != nil {
		return nil, err
	}

	// The feed's first element is a legal notice, not a posting. Real
	// postings always carry a "position" field.
	var rows []map[string]any
	for _, row := range payload {
		if _, ok := row["position"]; ok {
			rows = append(rows, row)
		}
	}

	if cutoff := hoursCutoff(req.HoursOld); !cutoff.IsZero() {
		var fresh []map[string]any
		for _, row := range rows {
			if !normalize.ParseTimestamp(row["epoch"]).Before(cutoff) {
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

func (a *RemoteOK) toRecord(row map[string]any, descFormat string) models.JobRecord {
	record := models.JobRecord{
		Title:       normalize.String(row["position"]),
		Company:     normalize.String(row["company"]),
		Source:      models.SourceRemoteOK,
		JobURL:      utils.FirstNonEmpty(normalize.String(row["url"]), normalize.String(row["apply_url"])),
		Location:    models.Location{City: normalize.String(row["location"])},
		IsRemote:    true,
		DatePosted:  normalize.ISODatePrefix(normalize.String(row["date"])),
		Description: normalize.Description(normalize.String(row["description"]), descFormat),
		Skills:      normalize.StringList(row["tags"]),
	}
	if record.Skills == nil {
		record.Skills = []string{}
	}

	salaryMin := positiveFloat(row["salary_min"])
	salaryMax := positiveFloat(row["salary_max"])
	if salaryMin != nil || salaryMax != nil {
		record.Salary = &models.Salary{
			MinAmount: salaryMin,
			MaxAmount: salaryMax,
			Interval:  "yearly",
			Currency:  "USD",
		}
	}

	return record
}
