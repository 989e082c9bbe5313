package memory

import (
	"context"
	"slices"
	"time"

	"github.com/MASTER-2222/linkedin/core/domain"
	"github.com/MASTER-2222/linkedin/core/port/out"
)

type (
	jobRow         = domain.Job
	applicationRow = domain.JobApplication
)

type JobRepository struct {
	s *Store
}

var _ out.JobRepository = (*JobRepository)(nil)

func cloneJob(j *domain.Job) *domain.Job {
	c := *j
	return &c
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.jobs.get(job.ID); ok {
		return out.ErrDuplicate
	}
	r.s.jobs.insert(job.ID, cloneJob(job))
	return nil
}

func (r *JobRepository) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.jobs.get(id)
	if !ok {
		return nil, out.ErrNotFound
	}
	return cloneJob(row), nil
}

func (r *JobRepository) GetByIDAndPoster(ctx context.Context, id, posterID string) (*domain.Job, error) {
	job, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.PostedBy != posterID {
		return nil, out.ErrNotFound
	}
	return job, nil
}

func (r *JobRepository) List(ctx context.Context, filter *domain.JobFilter) ([]*domain.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []*domain.Job
	r.s.jobs.each(func(row *jobRow) bool {
		if row.Status != domain.JobStatusActive {
			return true
		}
		if filter.Query != nil {
			q := *filter.Query
			if !containsFold(row.Title, q) && !containsFold(row.Company, q) && !containsFold(row.Description, q) {
				return true
			}
		}
		if filter.Location != nil && !containsFold(row.Location, *filter.Location) {
			return true
		}
		if filter.JobType != nil && row.JobType != *filter.JobType {
			return true
		}
		if filter.RemoteAllowed != nil && row.RemoteAllowed != *filter.RemoteAllowed {
			return true
		}
		matched = append(matched, cloneJob(row))
		return true
	})
	return page(matched, filter.Skip, filter.Limit), nil
}

func (r *JobRepository) IncrementViews(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if row, ok := r.s.jobs.get(id); ok {
		row.ViewsCount++
	}
	return nil
}

func (r *JobRepository) IncrementApplications(ctx context.Context, id string, delta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if row, ok := r.s.jobs.get(id); ok {
		row.ApplicationsCount += delta
	}
	return nil
}

func (r *JobRepository) ListIDsByPoster(ctx context.Context, posterID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := []string{}
	r.s.jobs.each(func(row *jobRow) bool {
		if row.PostedBy == posterID {
			ids = append(ids, row.ID)
		}
		return true
	})
	return ids, nil
}

func (r *JobRepository) CountByPoster(ctx context.Context, posterID string) (int64, error) {
	ids, err := r.ListIDsByPoster(ctx, posterID)
	return int64(len(ids)), err
}

func (r *JobRepository) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(r.s.jobs.len()), nil
}

type ApplicationRepository struct {
	s *Store
}

var _ out.ApplicationRepository = (*ApplicationRepository)(nil)

func cloneApplication(a *domain.JobApplication) *domain.JobApplication {
	c := *a
	return &c
}

func (r *ApplicationRepository) Create(ctx context.Context, app *domain.JobApplication) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.applications.get(app.ID); ok {
		return out.ErrDuplicate
	}
	dup := false
	r.s.applications.each(func(row *applicationRow) bool {
		dup = row.JobID == app.JobID && row.ApplicantID == app.ApplicantID
		return !dup
	})
	if dup {
		return out.ErrDuplicate
	}
	r.s.applications.insert(app.ID, cloneApplication(app))
	return nil
}

func (r *ApplicationRepository) Exists(ctx context.Context, jobID, applicantID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	found := false
	r.s.applications.each(func(row *applicationRow) bool {
		found = row.JobID == jobID && row.ApplicantID == applicantID
		return !found
	})
	return found, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*domain.JobApplication, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.applications.get(id)
	if !ok {
		return nil, out.ErrNotFound
	}
	return cloneApplication(row), nil
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID string) ([]*domain.JobApplication, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	apps := []*domain.JobApplication{}
	r.s.applications.each(func(row *applicationRow) bool {
		if row.JobID == jobID {
			apps = append(apps, cloneApplication(row))
		}
		return true
	})
	return apps, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, from, to domain.ApplicationStatus, reviewedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.applications.get(id)
	if !ok || row.Status != from {
		return out.ErrNotFound
	}
	row.Status = to
	row.ReviewedAt = &reviewedAt
	return nil
}

func (r *ApplicationRepository) CountByApplicant(ctx context.Context, applicantID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	r.s.applications.each(func(row *applicationRow) bool {
		if row.ApplicantID == applicantID {
			n++
		}
		return true
	})
	return n, nil
}

func (r *ApplicationRepository) CountByJobs(ctx context.Context, jobIDs []string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	r.s.applications.each(func(row *applicationRow) bool {
		if slices.Contains(jobIDs, row.JobID) {
			n++
		}
		return true
	})
	return n, nil
}

func (r *ApplicationRepository) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(r.s.applications.len()), nil
}
