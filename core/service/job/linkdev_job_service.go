// Package job implements job postings, applications and their review.
package job

import (
	"context"
	"strings"
	"time"

	"github.com/MASTER-2222/linkedin/core/domain"
	"github.com/MASTER-2222/linkedin/core/port/in"
	"github.com/MASTER-2222/linkedin/core/port/out"
	"github.com/MASTER-2222/linkedin/core/service/common"
	"github.com/MASTER-2222/linkedin/pkg/apperr"
	"github.com/MASTER-2222/linkedin/pkg/logger"
	"github.com/MASTER-2222/linkedin/pkg/metrics"

	"github.com/google/uuid"
)

const (
	msgRecruitersOnly = "Only recruiters can post jobs"
	msgCannotView     = "Not authorized to view applications"
	msgCannotReview   = "Not authorized to review applications"
	msgAlreadyApplied = "Already applied to this job"
	msgInvalidSalary  = "salary_min must not exceed salary_max"
)

type Service struct {
	jobs         out.JobRepository
	applications out.ApplicationRepository
	sync         *common.CounterSync
	metrics      *metrics.Metrics
	now          func() time.Time
}

var _ in.JobService = (*Service)(nil)

func NewService(jobs out.JobRepository, applications out.ApplicationRepository, tx out.Transactor, m *metrics.Metrics) *Service {
	return &Service{
		jobs:         jobs,
		applications: applications,
		sync:         common.NewCounterSync(tx, m),
		metrics:      m,
		now:          time.Now,
	}
}

// CreateJob publishes an active posting owned by the caller.
func (s *Service) CreateJob(ctx context.Context, caller *domain.User, req *in.CreateJobRequest) (*domain.Job, error) {
	if !caller.Role.CanPostJobs() {
		return nil, apperr.Forbidden(msgRecruitersOnly)
	}
	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMin > *req.SalaryMax {
		return nil, apperr.InvalidInput("salary_min", msgInvalidSalary)
	}

	job := &domain.Job{
		ID:              uuid.NewString(),
		Title:           req.Title,
		Company:         req.Company,
		Description:     req.Description,
		Requirements:    req.Requirements,
		Location:        req.Location,
		JobType:         req.JobType,
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
		RemoteAllowed:   req.RemoteAllowed,
		ExperienceLevel: req.ExperienceLevel,
		Status:          domain.JobStatusActive,
		PostedBy:        caller.ID,
		PostedAt:        s.now().UTC(),
	}
	if job.Requirements == nil {
		job.Requirements = []string{}
	}
	if strings.TrimSpace(job.JobType) == "" {
		job.JobType = domain.DefaultJobType
	}
	if strings.TrimSpace(job.ExperienceLevel) == "" {
		job.ExperienceLevel = domain.DefaultExperienceLevel
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, apperr.DatabaseError("create job", err)
	}

	s.metrics.IncrementJobsCreated()
	logger.WithContext(ctx).WithField("job_id", job.ID).Info("job posted")
	return job, nil
}

// ListJobs returns active postings matching the filter.
func (s *Service) ListJobs(ctx context.Context, filter *domain.JobFilter) ([]*domain.Job, error) {
	for _, p := range []**string{&filter.Query, &filter.Location, &filter.JobType} {
		if *p != nil && **p == "" {
			*p = nil
		}
	}
	filter.Skip, filter.Limit = common.NormalizePage(filter.Skip, filter.Limit)

	jobs, err := s.jobs.List(ctx, filter)
	if err != nil {
		return nil, apperr.DatabaseError("list jobs", err)
	}
	return jobs, nil
}

// GetJob counts a view and loads the job. The view increment runs first and
// is a no-op for unknown ids.
func (s *Service) GetJob(ctx context.Context, jobID string) (*domain.Job, error) {
	if err := s.jobs.IncrementViews(ctx, jobID); err != nil {
		return nil, apperr.DatabaseError("increment views", err)
	}
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, apperr.NotFound("Job")
		}
		return nil, apperr.DatabaseError("get job", err)
	}
	return job, nil
}

// Apply records the caller's application and bumps the job's counter.
func (s *Service) Apply(ctx context.Context, caller *domain.User, jobID string, req *in.ApplyRequest) (*domain.JobApplication, error) {
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		if common.IsNotFound(err) {
			return nil, apperr.NotFound("Job")
		}
		return nil, apperr.DatabaseError("get job", err)
	}

	exists, err := s.applications.Exists(ctx, jobID, caller.ID)
	if err != nil {
		return nil, apperr.DatabaseError("find application", err)
	}
	if exists {
		return nil, apperr.Conflict(msgAlreadyApplied)
	}

	app := &domain.JobApplication{
		ID:          uuid.NewString(),
		JobID:       jobID,
		ApplicantID: caller.ID,
		Status:      domain.ApplicationPending,
		AppliedAt:   s.now().UTC(),
	}
	if req != nil && req.CoverLetter != nil && *req.CoverLetter != "" {
		app.CoverLetter = req.CoverLetter
	}

	err = s.sync.Run(ctx, "apply",
		func(ctx context.Context) error { return s.applications.Create(ctx, app) },
		func(ctx context.Context) error { return s.jobs.IncrementApplications(ctx, jobID, 1) },
	)
	if err != nil {
		if common.IsDuplicate(err) {
			return nil, apperr.Conflict(msgAlreadyApplied)
		}
		return nil, apperr.DatabaseError("create application", err)
	}

	s.metrics.IncrementApplicationsCreated()
	logger.WithContext(ctx).WithFields(map[string]any{
		"job_id":         jobID,
		"application_id": app.ID,
	}).Info("application submitted")
	return app, nil
}

// ListApplications returns a job's applications to its poster. A missing job
// and someone else's job are indistinguishable to the caller.
func (s *Service) ListApplications(ctx context.Context, caller *domain.User, jobID string) ([]*domain.JobApplication, error) {
	if err := s.requireOwner(ctx, caller, jobID, msgCannotView); err != nil {
		return nil, err
	}
	apps, err := s.applications.ListByJob(ctx, jobID)
	if err != nil {
		return nil, apperr.DatabaseError("list applications", err)
	}
	return apps, nil
}

// ReviewApplication moves an application along
// pending -> reviewed -> {accepted, rejected}.
func (s *Service) ReviewApplication(ctx context.Context, caller *domain.User, jobID, applicationID string, req *in.ReviewApplicationRequest) (*domain.JobApplication, error) {
	next := domain.ApplicationStatus(req.Status)
	if !next.Valid() || next == domain.ApplicationPending {
		return nil, apperr.InvalidInput("status", "must be one of reviewed, accepted, rejected")
	}
	if err := s.requireOwner(ctx, caller, jobID, msgCannotReview); err != nil {
		return nil, err
	}

	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, apperr.NotFound("Application")
		}
		return nil, apperr.DatabaseError("get application", err)
	}
	if app.JobID != jobID {
		return nil, apperr.NotFound("Application")
	}
	if !app.Status.CanTransitionTo(next) {
		return nil, apperr.Conflict("Cannot change application from " + string(app.Status) + " to " + string(next))
	}

	reviewedAt := s.now().UTC()
	if err := s.applications.UpdateStatus(ctx, app.ID, app.Status, next, reviewedAt); err != nil {
		if common.IsNotFound(err) {
			// Someone else moved it first.
			return nil, apperr.Conflict("Application was updated concurrently")
		}
		return nil, apperr.DatabaseError("update application", err)
	}

	app.Status = next
	app.ReviewedAt = &reviewedAt
	return app, nil
}

func (s *Service) requireOwner(ctx context.Context, caller *domain.User, jobID, denied string) error {
	if _, err := s.jobs.GetByIDAndPoster(ctx, jobID, caller.ID); err != nil {
		if common.IsNotFound(err) {
			return apperr.Forbidden(denied)
		}
		return apperr.DatabaseError("get job", err)
	}
	return nil
}
