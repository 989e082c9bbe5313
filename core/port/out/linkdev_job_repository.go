package out

import (
	"context"
	"time"

	"github.com/MASTER-2222/linkedin/core/domain"
)

// JobRepository defines the outbound port for job postings.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	// GetByIDAndPoster returns ErrNotFound when the job is missing or posted by someone else.
	GetByIDAndPoster(ctx context.Context, id, posterID string) (*domain.Job, error)
	List(ctx context.Context, filter *domain.JobFilter) ([]*domain.Job, error)

	IncrementViews(ctx context.Context, id string) error
	IncrementApplications(ctx context.Context, id string, delta int) error

	ListIDsByPoster(ctx context.Context, posterID string) ([]string, error)
	CountByPoster(ctx context.Context, posterID string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// ApplicationRepository defines the outbound port for job applications.
type ApplicationRepository interface {
	// Create returns ErrDuplicate when the applicant already applied to the job.
	Create(ctx context.Context, app *domain.JobApplication) error
	Exists(ctx context.Context, jobID, applicantID string) (bool, error)
	GetByID(ctx context.Context, id string) (*domain.JobApplication, error)
	ListByJob(ctx context.Context, jobID string) ([]*domain.JobApplication, error)
	// UpdateStatus only matches an application still in status from.
	UpdateStatus(ctx context.Context, id string, from, to domain.ApplicationStatus, reviewedAt time.Time) error

	CountByApplicant(ctx context.Context, applicantID string) (int64, error)
	CountByJobs(ctx context.Context, jobIDs []string) (int64, error)
	Count(ctx context.Context) (int64, error)
}
