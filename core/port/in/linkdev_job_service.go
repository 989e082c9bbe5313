package in

import (
	"context"

	"github.com/MASTER-2222/linkedin/core/domain"
)

// JobService defines the inbound port for job postings and applications.
type JobService interface {
	CreateJob(ctx context.Context, caller *domain.User, req *CreateJobRequest) (*domain.Job, error)
	ListJobs(ctx context.Context, filter *domain.JobFilter) ([]*domain.Job, error)
	GetJob(ctx context.Context, jobID string) (*domain.Job, error)
	Apply(ctx context.Context, caller *domain.User, jobID string, req *ApplyRequest) (*domain.JobApplication, error)
	ListApplications(ctx context.Context, caller *domain.User, jobID string) ([]*domain.JobApplication, error)
	ReviewApplication(ctx context.Context, caller *domain.User, jobID, applicationID string, req *ReviewApplicationRequest) (*domain.JobApplication, error)
}

type CreateJobRequest struct {
	Title           string   `json:"title" validate:"required,max=200"`
	Company         string   `json:"company" validate:"required,max=200"`
	Description     string   `json:"description" validate:"required,max=20000"`
	Requirements    []string `json:"requirements" validate:"dive,max=500"`
	Location        string   `json:"location" validate:"required,max=200"`
	JobType         string   `json:"job_type,omitempty" validate:"omitempty,max=50"`
	SalaryMin       *int     `json:"salary_min,omitempty" validate:"omitempty,gte=0"`
	SalaryMax       *int     `json:"salary_max,omitempty" validate:"omitempty,gte=0"`
	RemoteAllowed   bool     `json:"remote_allowed"`
	ExperienceLevel string   `json:"experience_level,omitempty" validate:"omitempty,max=50"`
}

type ApplyRequest struct {
	CoverLetter *string `json:"cover_letter,omitempty" validate:"omitempty,max=10000"`
}

type ReviewApplicationRequest struct {
	Status string `json:"status" validate:"required,oneof=reviewed accepted rejected"`
}
