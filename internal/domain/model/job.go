package model

import "time"

type Job struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Description     string    `json:"description"`
	Requirements    string    `json:"requirements"`
	SalaryRange     string    `json:"salary_range"`
	Location        string    `json:"location"`
	JobType         string    `json:"job_type"`          // full-time, part-time, contract, etc.
	ExperienceLevel string    `json:"experience_level"`  // entry, mid, senior
	IsRemote        bool      `json:"is_remote"`
	IsActive        bool      `json:"is_active"`
	EmployerID      string    `json:"employer_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	EmployerName     *string `json:"employer_name,omitempty"`     // company_name of the owner, for display
	ApplicationCount *int    `json:"application_count,omitempty"` // detail view only
}

// JobSummary is the lighter shape used by public listings.
type JobSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	CompanyName *string   `json:"company_name"`
	Location    string    `json:"location"`
	JobType     string    `json:"job_type"`
	SalaryRange string    `json:"salary_range"`
	IsRemote    bool      `json:"is_remote"`
	CreatedAt   time.Time `json:"created_at"`
}

// JobFilter captures the query parameters of the public job listing.
type JobFilter struct {
	Search     string // substring over title/description, case-insensitive
	Location   string // substring, case-insensitive
	JobType    string // exact match
	IsRemote   *bool
	EmployerID string
}

// Ownership declares the job's ownership fields for access-control checks.
func (j *Job) Ownership() Ownership {
	return Ownership{Kind: ResourceJob, EmployerID: j.EmployerID}
}
