package models

import "encoding/json"

// Employment type vocabulary shared across all sources.
const (
	JobTypeFulltime   = "fulltime"
	JobTypeParttime   = "parttime"
	JobTypeInternship = "internship"
	JobTypeContract   = "contract"
)

// Description formats requested from upstream sources.
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Output formats of the final result set.
const (
	OutputJSON  = "json"
	OutputCSV   = "csv"
	OutputExcel = "excel"
)

// ValidJobTypes returns the canonical employment type vocabulary.
func ValidJobTypes() []string {
	return []string{JobTypeFulltime, JobTypeParttime, JobTypeInternship, JobTypeContract}
}

// IsValidJobType reports whether s is a canonical employment type.
func IsValidJobType(s string) bool {
	switch s {
	case JobTypeFulltime, JobTypeParttime, JobTypeInternship, JobTypeContract:
		return true
	}
	return false
}

// IsValidDescriptionFormat reports whether s is a supported description format.
func IsValidDescriptionFormat(s string) bool {
	return s == FormatMarkdown || s == FormatHTML
}

// IsValidOutputFormat reports whether s is a supported output format.
func IsValidOutputFormat(s string) bool {
	return s == OutputJSON || s == OutputCSV || s == OutputExcel
}

// SearchRequest is the typed, validated form of one incoming search. The
// parameter normalizer is the only producer; everything downstream treats it
// as read-only. IsRemote and EasyApply are deliberately tri-state: several
// adapters branch on "unset" versus "explicitly false".
type SearchRequest struct {
	Sources              []SourceID `json:"site_name" validate:"required,min=1"`
	SearchTerm           string     `json:"search_term,omitempty"`
	GoogleSearchTerm     string     `json:"google_search_term,omitempty"`
	Location             string     `json:"location,omitempty"`
	Distance             int        `json:"distance" validate:"gte=0"`
	JobType              string     `json:"job_type,omitempty" validate:"omitempty,oneof=fulltime parttime internship contract"`
	IsRemote             *bool      `json:"is_remote,omitempty"`
	ResultsWanted        int        `json:"results_wanted" validate:"gte=0"`
	HoursOld             int        `json:"hours_old,omitempty" validate:"gte=0"`
	EasyApply            *bool      `json:"easy_apply,omitempty"`
	DescriptionFormat    string     `json:"description_format" validate:"oneof=markdown html"`
	Offset               int        `json:"offset" validate:"gte=0"`
	FetchFullDescription bool       `json:"linkedin_fetch_description,omitempty"`
	CompanyIDs           []int      `json:"linkedin_company_ids,omitempty"`
	Country              string     `json:"country_indeed,omitempty"`
	EnforceAnnualSalary  bool       `json:"enforce_annual_salary,omitempty"`
	Proxies              []string   `json:"proxies,omitempty"`
	UserAgent            string     `json:"user_agent,omitempty"`
	OutputFormat         string     `json:"-" validate:"oneof=json csv excel"`
}

// EchoQuery renders the request as the query mapping echoed back to the
// caller. OutputFormat is excluded by its json tag; unset optional fields
// drop out through omitempty.
func (r *SearchRequest) EchoQuery() map[string]any {
	data, err := json.Marshal(r)
	if err != nil {
		return map[string]any{}
	}
	echo := map[string]any{}
	if err := json.Unmarshal(data, &echo); err != nil {
		return map[string]any{}
	}
	return echo
}
