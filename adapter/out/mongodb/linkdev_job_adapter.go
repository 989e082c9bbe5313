package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/MASTER-2222/linkedin/core/domain"
	"github.com/MASTER-2222/linkedin/core/port/out"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionJobs         = "jobs"
	collectionApplications = "applications"
)

// =============================================================================
// Jobs
// =============================================================================

// JobAdapter implements out.JobRepository using MongoDB.
type JobAdapter struct {
	collection *mongo.Collection
}

var _ out.JobRepository = (*JobAdapter)(nil)

func NewJobAdapter(db *mongo.Database) *JobAdapter {
	return &JobAdapter{collection: db.Collection(collectionJobs)}
}

func (a *JobAdapter) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "posted_by", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "posted_at", Value: -1}},
		},
	}

	_, err := a.collection.Indexes().CreateMany(ctx, indexes)
	return err
}

type jobDocument struct {
	ID                string    `bson:"id"`
	Title             string    `bson:"title"`
	Company           string    `bson:"company"`
	Description       string    `bson:"description"`
	Requirements      []string  `bson:"requirements"`
	Location          string    `bson:"location"`
	JobType           string    `bson:"job_type"`
	SalaryMin         *int      `bson:"salary_min"`
	SalaryMax         *int      `bson:"salary_max"`
	RemoteAllowed     bool      `bson:"remote_allowed"`
	ExperienceLevel   string    `bson:"experience_level"`
	Status            string    `bson:"status"`
	PostedBy          string    `bson:"posted_by"`
	PostedAt          time.Time `bson:"posted_at"`
	ApplicationsCount int       `bson:"applications_count"`
	ViewsCount        int       `bson:"views_count"`
}

func toJobDocument(j *domain.Job) *jobDocument {
	return &jobDocument{
		ID:                j.ID,
		Title:             j.Title,
		Company:           j.Company,
		Description:       j.Description,
		Requirements:      nonNil(j.Requirements),
		Location:          j.Location,
		JobType:           j.JobType,
		SalaryMin:         j.SalaryMin,
		SalaryMax:         j.SalaryMax,
		RemoteAllowed:     j.RemoteAllowed,
		ExperienceLevel:   j.ExperienceLevel,
		Status:            string(j.Status),
		PostedBy:          j.PostedBy,
		PostedAt:          j.PostedAt,
		ApplicationsCount: j.ApplicationsCount,
		ViewsCount:        j.ViewsCount,
	}
}

func (d *jobDocument) toDomain() *domain.Job {
	return &domain.Job{
		ID:                d.ID,
		Title:             d.Title,
		Company:           d.Company,
		Description:       d.Description,
		Requirements:      nonNil(d.Requirements),
		Location:          d.Location,
		JobType:           d.JobType,
		SalaryMin:         d.SalaryMin,
		SalaryMax:         d.SalaryMax,
		RemoteAllowed:     d.RemoteAllowed,
		ExperienceLevel:   d.ExperienceLevel,
		Status:            domain.JobStatus(d.Status),
		PostedBy:          d.PostedBy,
		PostedAt:          d.PostedAt,
		ApplicationsCount: d.ApplicationsCount,
		ViewsCount:        d.ViewsCount,
	}
}

func (a *JobAdapter) Create(ctx context.Context, job *domain.Job) error {
	_, err := a.collection.InsertOne(ctx, toJobDocument(job))
	return translate(err, "insert job")
}

func (a *JobAdapter) findOne(ctx context.Context, filter bson.M) (*domain.Job, error) {
	var doc jobDocument
	if err := a.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(err, "get job")
	}
	return doc.toDomain(), nil
}

func (a *JobAdapter) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	return a.findOne(ctx, bson.M{"id": id})
}

func (a *JobAdapter) GetByIDAndPoster(ctx context.Context, id, posterID string) (*domain.Job, error) {
	return a.findOne(ctx, bson.M{"id": id, "posted_by": posterID})
}

func (a *JobAdapter) List(ctx context.Context, filter *domain.JobFilter) ([]*domain.Job, error) {
	findOpts := options.Find().SetSkip(int64(filter.Skip))
	if filter.Limit > 0 {
		findOpts.SetLimit(int64(filter.Limit))
	}

	cursor, err := a.collection.Find(ctx, jobListFilter(filter), findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer cursor.Close(ctx)

	jobs := []*domain.Job{}
	for cursor.Next(ctx) {
		var doc jobDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode job: %w", err)
		}
		jobs = append(jobs, doc.toDomain())
	}
	return jobs, cursor.Err()
}

func (a *JobAdapter) increment(ctx context.Context, id, field string, delta int) error {
	_, err := a.collection.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$inc": bson.M{field: delta}})
	return translate(err, "increment "+field)
}

func (a *JobAdapter) IncrementViews(ctx context.Context, id string) error {
	return a.increment(ctx, id, "views_count", 1)
}

func (a *JobAdapter) IncrementApplications(ctx context.Context, id string, delta int) error {
	return a.increment(ctx, id, "applications_count", delta)
}

func (a *JobAdapter) ListIDsByPoster(ctx context.Context, posterID string) ([]string, error) {
	findOpts := options.Find().SetProjection(bson.M{"id": 1, "_id": 0})
	cursor, err := a.collection.Find(ctx, bson.M{"posted_by": posterID}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to list posted jobs: %w", err)
	}
	defer cursor.Close(ctx)

	ids := []string{}
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode job id: %w", err)
		}
		ids = append(ids, doc.ID)
	}
	return ids, cursor.Err()
}

func (a *JobAdapter) CountByPoster(ctx context.Context, posterID string) (int64, error) {
	return count(ctx, a.collection, bson.M{"posted_by": posterID})
}

func (a *JobAdapter) Count(ctx context.Context) (int64, error) {
	return count(ctx, a.collection, bson.M{})
}

func count(ctx context.Context, c *mongo.Collection, filter bson.M) (int64, error) {
	n, err := c.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", c.Name(), err)
	}
	return n, nil
}

// =============================================================================
// Applications
// =============================================================================

// ApplicationAdapter implements out.ApplicationRepository using MongoDB.
type ApplicationAdapter struct {
	collection *mongo.Collection
}

var _ out.ApplicationRepository = (*ApplicationAdapter)(nil)

func NewApplicationAdapter(db *mongo.Database) *ApplicationAdapter {
	return &ApplicationAdapter{collection: db.Collection(collectionApplications)}
}

func (a *ApplicationAdapter) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "job_id", Value: 1}, {Key: "applicant_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "applicant_id", Value: 1}},
		},
	}

	_, err := a.collection.Indexes().CreateMany(ctx, indexes)
	return err
}

type applicationDocument struct {
	ID          string     `bson:"id"`
	JobID       string     `bson:"job_id"`
	ApplicantID string     `bson:"applicant_id"`
	CoverLetter *string    `bson:"cover_letter"`
	Status      string     `bson:"status"`
	AppliedAt   time.Time  `bson:"applied_at"`
	ReviewedAt  *time.Time `bson:"reviewed_at"`
}

func (d *applicationDocument) toDomain() *domain.JobApplication {
	return &domain.JobApplication{
		ID:          d.ID,
		JobID:       d.JobID,
		ApplicantID: d.ApplicantID,
		CoverLetter: d.CoverLetter,
		Status:      domain.ApplicationStatus(d.Status),
		AppliedAt:   d.AppliedAt,
		ReviewedAt:  d.ReviewedAt,
	}
}

func (a *ApplicationAdapter) Create(ctx context.Context, app *domain.JobApplication) error {
	_, err := a.collection.InsertOne(ctx, &applicationDocument{
		ID:          app.ID,
		JobID:       app.JobID,
		ApplicantID: app.ApplicantID,
		CoverLetter: app.CoverLetter,
		Status:      string(app.Status),
		AppliedAt:   app.AppliedAt,
		ReviewedAt:  app.ReviewedAt,
	})
	return translate(err, "insert application")
}

func (a *ApplicationAdapter) Exists(ctx context.Context, jobID, applicantID string) (bool, error) {
	n, err := a.collection.CountDocuments(ctx,
		bson.M{"job_id": jobID, "applicant_id": applicantID},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, fmt.Errorf("failed to check application: %w", err)
	}
	return n > 0, nil
}

func (a *ApplicationAdapter) GetByID(ctx context.Context, id string) (*domain.JobApplication, error) {
	var doc applicationDocument
	if err := a.collection.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		return nil, translate(err, "get application")
	}
	return doc.toDomain(), nil
}

func (a *ApplicationAdapter) ListByJob(ctx context.Context, jobID string) ([]*domain.JobApplication, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "applied_at", Value: 1}})
	cursor, err := a.collection.Find(ctx, bson.M{"job_id": jobID}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer cursor.Close(ctx)

	apps := []*domain.JobApplication{}
	for cursor.Next(ctx) {
		var doc applicationDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode application: %w", err)
		}
		apps = append(apps, doc.toDomain())
	}
	return apps, cursor.Err()
}

func (a *ApplicationAdapter) UpdateStatus(ctx context.Context, id string, from, to domain.ApplicationStatus, reviewedAt time.Time) error {
	result, err := a.collection.UpdateOne(ctx,
		bson.M{"id": id, "status": string(from)},
		bson.M{"$set": bson.M{"status": string(to), "reviewed_at": reviewedAt}},
	)
	if err != nil {
		return translate(err, "update application")
	}
	if result.MatchedCount == 0 {
		return out.ErrNotFound
	}
	return nil
}

func (a *ApplicationAdapter) CountByApplicant(ctx context.Context, applicantID string) (int64, error) {
	return count(ctx, a.collection, bson.M{"applicant_id": applicantID})
}

func (a *ApplicationAdapter) CountByJobs(ctx context.Context, jobIDs []string) (int64, error) {
	if len(jobIDs) == 0 {
		return 0, nil
	}
	return count(ctx, a.collection, bson.M{"job_id": bson.M{"$in": jobIDs}})
}

func (a *ApplicationAdapter) Count(ctx context.Context) (int64, error) {
	return count(ctx, a.collection, bson.M{})
}
