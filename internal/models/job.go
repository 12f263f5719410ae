package models

import "time"

// JobRecord is the denormalized projection of a job posting stored in the
// all_jobs table. It aggregates postings from external platforms and our own
// activated postings into one searchable shape.
type JobRecord struct {
	ID                string     `json:"id"`
	JobName           string     `json:"job_name"`
	JobType           string     `json:"job_type"`
	Locations         []string   `json:"locations"`
	SalaryRange       string     `json:"salary_range,omitempty"`
	SalaryMin         *float64   `json:"salary_min,omitempty"`
	SalaryMax         *float64   `json:"salary_max,omitempty"`
	ExperienceMin     *int       `json:"experience_min,omitempty"`
	ExperienceMax     *int       `json:"experience_max,omitempty"`
	EquityMin         *float64   `json:"equity_min,omitempty"`
	EquityMax         *float64   `json:"equity_max,omitempty"`
	VisaRequirement   string     `json:"visa_requirement,omitempty"`
	CompanyName       string     `json:"company_name"`
	CompanyURL        string     `json:"company_url,omitempty"`
	Platform          string     `json:"platform"`
	Status            string     `json:"status"`
	PostingID         string     `json:"posting_id,omitempty"`
	Liked             bool       `json:"liked"`
	ApplicationStatus *string    `json:"application_status,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

// JobSearchResult is what the query composer returns to the service layer.
// MatchedJobIDs carries the ordered ids of the page so callers can cache the
// order for the AI fallback path.
type JobSearchResult struct {
	Jobs          []JobRecord `json:"jobs"`
	Count         int         `json:"count"`
	MatchedJobIDs []string    `json:"matched_job_ids"`
}

// JobSearchResponse is the wire shape of the search API. Error is set instead
// of data when composition fails; the endpoint never surfaces a raw exception.
type JobSearchResponse struct {
	Data  []JobRecord `json:"data"`
	Count int         `json:"count"`
	Error string      `json:"error,omitempty"`
}

// JobPosting is a company's source posting. Activation denormalizes it into
// all_jobs; edits update the copy; deactivation flips status, never deletes.
type JobPosting struct {
	ID              string     `json:"id"`
	CompanyID       int        `json:"company_id"`
	JobName         string     `json:"job_name"`
	JobType         string     `json:"job_type"`
	Locations       []string   `json:"locations"`
	SalaryMin       *float64   `json:"salary_min,omitempty"`
	SalaryMax       *float64   `json:"salary_max,omitempty"`
	ExperienceMin   *int       `json:"experience_min,omitempty"`
	ExperienceMax   *int       `json:"experience_max,omitempty"`
	EquityMin       *float64   `json:"equity_min,omitempty"`
	EquityMax       *float64   `json:"equity_max,omitempty"`
	VisaRequirement string     `json:"visa_requirement,omitempty"`
	CompanyName     string     `json:"company_name"`
	CompanyURL      string     `json:"company_url,omitempty"`
	Requirements    string     `json:"requirements,omitempty"`
	Active          bool       `json:"active"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

const (
	JobStatusActive   = "active"
	JobStatusInactive = "inactive"

	// PlatformInternal marks jobs denormalized from our own postings as
	// opposed to scraped external boards.
	PlatformInternal = "jobradar"
)
