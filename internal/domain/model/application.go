package model

import "time"

type ApplicationStatus string

const (
	StatusPending   ApplicationStatus = "pending"
	StatusAccepted  ApplicationStatus = "accepted"
	StatusRejected  ApplicationStatus = "rejected"
	StatusWithdrawn ApplicationStatus = "withdrawn"
)

// ValidApplicationStatus reports whether s names a known status.
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is permitted from s.
// Everything except pending is terminal.
func (s ApplicationStatus) IsTerminal() bool {
	return s != StatusPending
}

type Application struct {
	ID             string            `json:"id"`
	JobID          string            `json:"job_id"`
	ApplicantID    string            `json:"applicant_id"`
	Status         ApplicationStatus `json:"status"`
	CoverLetter    string            `json:"cover_letter"`
	ResumeURL      string            `json:"resume_url"`
	AdditionalInfo string            `json:"additional_info"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`

	// Joined display fields.
	JobTitle       *string `json:"job_title,omitempty"`
	JobEmployerID  string  `json:"-"` // owner of the referenced job, for access checks
	ApplicantName  *string `json:"applicant_name,omitempty"`
	ApplicantEmail *string `json:"applicant_email,omitempty"`
	EmployerName   *string `json:"employer_name,omitempty"`
}

// ApplicantView is the reduced shape a job seeker sees of their own application.
type ApplicantView struct {
	ID           string            `json:"id"`
	JobID        string            `json:"job_id"`
	JobTitle     *string           `json:"job_title"`
	EmployerName *string           `json:"employer_name"`
	Status       ApplicationStatus `json:"status"`
	AppliedAt    time.Time         `json:"applied_at"`
}

func (a *Application) ToApplicantView() ApplicantView {
	return ApplicantView{
		ID:           a.ID,
		JobID:        a.JobID,
		JobTitle:     a.JobTitle,
		EmployerName: a.EmployerName,
		Status:       a.Status,
		AppliedAt:    a.CreatedAt,
	}
}

// ApplicationFilter captures the query parameters of application listings.
type ApplicationFilter struct {
	Status ApplicationStatus // ignored unless a known status
	JobID  string
}

// Ownership declares the application's ownership fields: the applicant owns
// it, and the employer of the referenced job may review it.
func (a *Application) Ownership() Ownership {
	return Ownership{Kind: ResourceApplication, ApplicantID: a.ApplicantID, EmployerID: a.JobEmployerID}
}
