// Package scraper defines the batch scraping engine contract. The engine
// serves every library-backed job board (LinkedIn, Indeed, Glassdoor and
// the rest) in a single call.
package scraper

import (
	"context"
	"encoding/json"

	"jobgate/pkg/models"
)

// BatchParams is the keyword set sent to the batch engine. Field names
// match the engine's scrape call one to one; optional fields drop out of
// the payload through omitempty.
type BatchParams struct {
	SiteName             []models.SourceID `json:"site_name"`
	ResultsWanted        int               `json:"results_wanted"`
	Distance             int               `json:"distance"`
	DescriptionFormat    string            `json:"description_format"`
	Offset               int               `json:"offset"`
	FetchFullDescription bool              `json:"linkedin_fetch_description"`
	EnforceAnnualSalary  bool              `json:"enforce_annual_salary"`
	SearchTerm           string            `json:"search_term,omitempty"`
	GoogleSearchTerm     string            `json:"google_search_term,omitempty"`
	Location             string            `json:"location,omitempty"`
	JobType              string            `json:"job_type,omitempty"`
	IsRemote             *bool             `json:"is_remote,omitempty"`
	HoursOld             int               `json:"hours_old,omitempty"`
	EasyApply            *bool             `json:"easy_apply,omitempty"`
	Country              string            `json:"country_indeed,omitempty"`
	Proxies              []string          `json:"proxies,omitempty"`
	UserAgent            string            `json:"user_agent,omitempty"`
	CompanyIDs           []int             `json:"linkedin_company_ids,omitempty"`
}

// BatchParamsFromRequest projects a validated request onto the engine's
// keyword set, restricted to the library-backed sites.
func BatchParamsFromRequest(req *models.SearchRequest, sites []models.SourceID) BatchParams {
	return BatchParams{
		SiteName:             sites,
		ResultsWanted:        req.ResultsWanted,
		Distance:             req.Distance,
		DescriptionFormat:    req.DescriptionFormat,
		Offset:               req.Offset,
		FetchFullDescription: req.FetchFullDescription,
		EnforceAnnualSalary:  req.EnforceAnnualSalary,
		SearchTerm:           req.SearchTerm,
		GoogleSearchTerm:     req.GoogleSearchTerm,
		Location:             req.Location,
		JobType:              req.JobType,
		IsRemote:             req.IsRemote,
		HoursOld:             req.HoursOld,
		EasyApply:            req.EasyApply,
		Country:              req.Country,
		Proxies:              req.Proxies,
		UserAgent:            req.UserAgent,
		CompanyIDs:           req.CompanyIDs,
	}
}

// Echo renders the params as the query mapping echoed back to the caller.
func (p BatchParams) Echo() map[string]any {
	data, err := json.Marshal(p)
	if err != nil {
		return map[string]any{}
	}
	echo := map[string]any{}
	if err := json.Unmarshal(data, &echo); err != nil {
		return map[string]any{}
	}
	return echo
}

// Engine is a batch scraping backend. ScrapeBatch returns one loosely typed
// row per posting in the engine's own column naming.
type Engine interface {
	ScrapeBatch(ctx context.Context, params BatchParams) ([]map[string]any, error)
	IsHealthy() bool
}
