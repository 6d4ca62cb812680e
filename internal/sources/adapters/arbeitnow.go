package adapters

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"jobgate/internal/normalize"
	"jobgate/internal/upstream"
	"jobgate/pkg/models"
)

// Pagination ceiling for the job-board feed; pages beyond this rarely hold
// anything a bounded request needs.
const arbeitnowMaxPages = 5

// Arbeitnow fetches from the Arbeitnow job-board API. The feed is paginated
// and mixes remote and on-site postings, so the remote filter runs both ways.
type Arbeitnow struct {
	client  *upstream.Client
	baseURL string
}

// NewArbeitnow creates an Arbeitnow adapter.
func NewArbeitnow(client *upstream.Client, baseURL string) *Arbeitnow {
	return &Arbeitnow{client: client, baseURL: baseURL}
}

// Source returns the board identifier.
func (a *Arbeitnow) Source() models.SourceID {
	return models.SourceArbeitnow
}

type arbeitnowPage struct {
	Data  []map[string]any `json:"data"`
	Links struct {
		Next any `json:"next"`
	} `json:"links"`
}

// Fetch retrieves and normalizes Arbeitnow postings, walking pages until
// enough rows are collected or the feed ends.
func (a *Arbeitnow) Fetch(ctx context.Context, req *models.SearchRequest) ([]models.JobRecord, error) {
	query := url.Values{}
	if req.SearchTerm != "" {
		query.Set("search", req.SearchTerm)
	}
	if req.IsRemote != nil && *req.IsRemote {
		query.Set("remote", "true")
	}

	var rows []map[string]any
	for page := 1; len(rows) < req.Offset+req.ResultsWanted; page++ {
		query.Set("page", strconv.Itoa(page))

		var resp arbeitnowPage
		if err := a.client.GetJSON(ctx, a.baseURL, query, &resp); err != nil {
			return nil, err
		}
		if len(resp.Data) == 0 {
			break
		}
		rows = append(rows, resp.Data...)

		if normalize.String(resp.Links.Next) == "" || page >= arbeitnowMaxPages {
			break
		}
	}

	if cutoff := hoursCutoff(req.HoursOld); !cutoff.IsZero() {
		var fresh []map[string]any
		for _, row := range rows {
			if !normalize.ParseTimestamp(row["created_at"]).Before(cutoff) {
				fresh = append(fresh, row)
			}
		}
		rows = fresh
	}

	if req.IsRemote != nil {
		var matched []map[string]any
		for _, row := range rows {
			if normalize.Bool(row["remote"]) == *req.IsRemote {
				matched = append(matched, row)
			}
		}
		rows = matched
	}

	if req.JobType != "" {
		wanted := arbeitnowTypeFilter(req.JobType)
		var matched []map[string]any
		for _, row := range rows {
			for _, jt := range normalize.StringList(row["job_types"]) {
				if strings.Contains(strings.ToLower(jt), wanted) {
					matched = append(matched, row)
					break
				}
			}
		}
		rows = matched
	}

	rows = window(rows, req.Offset, req.ResultsWanted)

	records := make([]models.JobRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, a.toRecord(row, req.DescriptionFormat))
	}
	return records, nil
}

// arbeitnowTypeFilter maps the canonical employment vocabulary onto the
// substrings this board uses in its job_types labels.
func arbeitnowTypeFilter(jobType string) string {
	switch jobType {
	case models.JobTypeFulltime:
		return "full-time"
	case models.JobTypeParttime:
		return "part-time"
	case models.JobTypeInternship:
		return "intern"
	default:
		return strings.ToLower(jobType)
	}
}

func (a *Arbeitnow) toRecord(row map[string]any, descFormat string) models.JobRecord {
	record := models.JobRecord{
		Title:       normalize.String(row["title"]),
		Company:     normalize.String(row["company_name"]),
		Source:      models.SourceArbeitnow,
		JobURL:      normalize.String(row["url"]),
		Location:    models.Location{City: normalize.String(row["location"])},
		IsRemote:    normalize.Bool(row["remote"]),
		JobType:     canonicalJobType(normalize.StringList(row["job_types"])),
		DatePosted:  normalize.ISODate(normalize.ParseTimestamp(row["created_at"])),
		Description: normalize.Description(normalize.String(row["description"]), descFormat),
		Skills:      normalize.StringList(row["tags"]),
	}
	if record.Skills == nil {
		record.Skills = []string{}
	}
	return record
}

// canonicalJobType reduces a board's free-form employment labels to the
// shared vocabulary, first match wins in fixed precedence order.
func canonicalJobType(labels []string) string {
	joined := strings.ToLower(strings.Join(labels, " "))
	switch {
	case strings.Contains(joined, "full"):
		return models.JobTypeFulltime
	case strings.Contains(joined, "part"):
		return models.JobTypeParttime
	case strings.Contains(joined, "intern"):
		return models.JobTypeInternship
	case strings.Contains(joined, "contract"), strings.Contains(joined, "freelance"):
		return models.JobTypeContract
	default:
		return ""
	}
}
