package models

// Location is the structured location of a job posting. Direct sources
// usually expose only a free-text string, which lands in City.
type Location struct {
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
}

// Salary represents the advertised compensation range for a posting.
type Salary struct {
	MinAmount *float64 `json:"min_amount"`
	MaxAmount *float64 `json:"max_amount"`
	Interval  string   `json:"interval"`
	Currency  string   `json:"currency"`
}

// JobRecord is the canonical job-posting schema every source is normalized
// into. Records are built once by the normalizer and never mutated.
type JobRecord struct {
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	Source          SourceID `json:"site"`
	JobURL          string   `json:"job_url"`
	Location        Location `json:"location"`
	IsRemote        bool     `json:"is_remote"`
	JobType         string   `json:"job_type,omitempty"`
	JobLevel        string   `json:"job_level,omitempty"`
	DatePosted      string   `json:"date_posted,omitempty"`
	Salary          *Salary  `json:"salary,omitempty"`
	Description     string   `json:"description,omitempty"`
	ContactEmails   []string `json:"emails,omitempty"`
	Skills          []string `json:"skills"`
	CompanyURL      string   `json:"company_url,omitempty"`
	CompanyIndustry string   `json:"company_industry,omitempty"`
}
