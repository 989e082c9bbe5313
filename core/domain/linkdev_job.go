package domain

import (
	"time"
)

type JobStatus string

const (
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
	JobStatusDraft  JobStatus = "draft"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusActive, JobStatusClosed, JobStatusDraft:
		return true
	default:
		return false
	}
}

const (
	DefaultJobType         = "Full-time"
	DefaultExperienceLevel = "Mid-level"
)

type Job struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Company           string    `json:"company"`
	Description       string    `json:"description"`
	Requirements      []string  `json:"requirements"`
	Location          string    `json:"location"`
	JobType           string    `json:"job_type"`
	SalaryMin         *int      `json:"salary_min"`
	SalaryMax         *int      `json:"salary_max"`
	RemoteAllowed     bool      `json:"remote_allowed"`
	ExperienceLevel   string    `json:"experience_level"`
	Status            JobStatus `json:"status"`
	PostedBy          string    `json:"posted_by"`
	PostedAt          time.Time `json:"posted_at"`
	ApplicationsCount int       `json:"applications_count"`
	ViewsCount        int       `json:"views_count"`
}

type JobFilter struct {
	Query         *string
	Location      *string
	JobType       *string
	RemoteAllowed *bool
	Skip          int
	Limit         int
}

// ApplicationStatus tracks a job application through review.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationReviewed ApplicationStatus = "reviewed"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationReviewed, ApplicationAccepted, ApplicationRejected:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further review transition is allowed.
func (s ApplicationStatus) Terminal() bool {
	switch s {
	case ApplicationAccepted, ApplicationRejected:
		return true
	case ApplicationPending, ApplicationReviewed:
		return false
	default:
		return false
	}
}

// CanTransitionTo implements pending -> reviewed -> {accepted, rejected},
// with pending -> {accepted, rejected} as a shortcut.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	switch s {
	case ApplicationPending:
		return next == ApplicationReviewed || next == ApplicationAccepted || next == ApplicationRejected
	case ApplicationReviewed:
		return next == ApplicationAccepted || next == ApplicationRejected
	case ApplicationAccepted, ApplicationRejected:
		return false
	default:
		return false
	}
}

type JobApplication struct {
	ID          string            `json:"id"`
	JobID       string            `json:"job_id"`
	ApplicantID string            `json:"applicant_id"`
	CoverLetter *string           `json:"cover_letter"`
	Status      ApplicationStatus `json:"status"`
	AppliedAt   time.Time         `json:"applied_at"`
	ReviewedAt  *time.Time        `json:"reviewed_at"`
}
