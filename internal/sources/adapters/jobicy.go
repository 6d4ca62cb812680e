package adapters

import (
	"context"
	"html"
	"net/url"
	"strconv"
	"strings"

	"jobgate/internal/normalize"
	"jobgate/internal/upstream"
	"jobgate/pkg/models"
)

// The Jobicy API rejects count values above 50.
const jobicyMaxCount = 50

// Jobicy fetches from the Jobicy remote-jobs API. Remote-only board with a
// geo parameter that expects a bare country name.
type Jobicy struct {
	client  *upstream.Client
	baseURL string
}

// NewJobicy creates a Jobicy adapter.
func NewJobicy(client *upstream.Client, baseURL string) *Jobicy {
	return &Jobicy{client: client, baseURL: baseURL}
}

// Source returns the board identifier.
func (a *Jobicy) Source() models.SourceID {
	return models.SourceJobicy
}

type jobicyResponse struct {
	Jobs []map[string]any `json:"jobs"`
}

// Fetch retrieves and normalizes Jobicy postings.
func (a *Jobicy) Fetch(ctx context.Context, req *models.SearchRequest) ([]models.JobRecord, error) {
	if req.IsRemote != nil && !*req.IsRemote {
		return nil, nil
	}

	count := req.Offset + req.ResultsWanted
	if count > jobicyMaxCount {
		count = jobicyMaxCount
	}

	query := url.Values{}
	query.Set("count", strconv.Itoa(count))
	if req.SearchTerm != "" {
		query.Set("tag", req.SearchTerm)
	}
	if geo := a.geo(req); geo != "" {
		query.Set("geo", geo)
	}

	var resp jobicyResponse
	if err := a.client.GetJSON(ctx, a.baseURL, query, &resp); err != nil {
		return nil, err
	}
	rows := resp.Jobs

	if cutoff := hoursCutoff(req.HoursOld); !cutoff.IsZero() {
		var fresh []map[string]any
		for _, row := range rows {
			if !normalize.ParseTimestamp(row["pubDate"]).Before(cutoff) {
				fresh = append(fresh, row)
			}
		}
		rows = fresh
	}

	if req.JobType != "" {
		var matched []map[string]any
		for _, row := range rows {
			for _, jt := range normalize.StringList(row["jobType"]) {
				if jobicyJobTypes[strings.ToLower(jt)] == req.JobType {
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

// geo derives the country name the API expects: country takes precedence,
// otherwise the last comma-separated token of the free-text location
// ("New York, NY, USA" gives "usa").
func (a *Jobicy) geo(req *models.SearchRequest) string {
	if req.Country != "" {
		return strings.ToLower(req.Country)
	}
	if req.Location == "" {
		return ""
	}
	parts := strings.Split(req.Location, ",")
	return strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
}

var jobicyJobTypes = map[string]string{
	"full-time":  models.JobTypeFulltime,
	"part-time":  models.JobTypeParttime,
	"freelance":  models.JobTypeContract,
	"contract":   models.JobTypeContract,
	"internship": models.JobTypeInternship,
}

func (a *Jobicy) toRecord(row map[string]any, descFormat string) models.JobRecord {
	// Titles arrive double-encoded ("&amp;amp;"), so unescape twice.
	title := html.UnescapeString(html.UnescapeString(normalize.String(row["jobTitle"])))

	record := models.JobRecord{
		Title:       title,
		Company:     normalize.String(row["companyName"]),
		Source:      models.SourceJobicy,
		JobURL:      normalize.String(row["url"]),
		Location:    models.Location{City: normalize.String(row["jobGeo"])},
		IsRemote:    true,
		JobType:     canonicalJobType(normalize.StringList(row["jobType"])),
		JobLevel:    normalize.String(row["jobLevel"]),
		DatePosted:  normalize.ISODatePrefix(normalize.String(row["pubDate"])),
		Description: normalize.Description(normalize.String(row["jobDescription"]), descFormat),
		Skills:      []string{},
	}

	if industries := normalize.StringList(row["jobIndustry"]); len(industries) > 0 {
		record.CompanyIndustry = industries[0]
	}

	salaryMin := positiveFloat(row["salaryMin"])
	salaryMax := positiveFloat(row["salaryMax"])
	if salaryMin != nil || salaryMax != nil {
		interval := normalize.String(row["salaryPeriod"])
		if interval == "" {
			interval = "yearly"
		}
		currency := normalize.String(row["salaryCurrency"])
		if currency == "" {
			currency = "USD"
		}
		record.Salary = &models.Salary{
			MinAmount: salaryMin,
			MaxAmount: salaryMax,
			Interval:  interval,
			Currency:  currency,
		}
	}

	return record
}
