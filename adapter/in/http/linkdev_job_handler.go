package http

import (
	"github.com/MASTER-2222/linkedin/core/domain"
	in "github.com/MASTER-2222/linkedin/core/port/in"
	"github.com/MASTER-2222/linkedin/pkg/response"
	"github.com/MASTER-2222/linkedin/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// JobHandler handles job postings and applications.
type JobHandler struct {
	jobs in.JobService
}

func NewJobHandler(jobs in.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// Register registers job routes. Listing and reading jobs are public.
func (h *JobHandler) Register(router fiber.Router, requireAuth fiber.Handler) {
	jobs := router.Group("/jobs")

	jobs.Get("/", h.List)
	jobs.Post("/", requireAuth, h.Create)
	jobs.Get("/:id", h.Get)

	// Applications
	jobs.Post("/:id/apply", requireAuth, h.Apply)
	jobs.Get("/:id/applications", requireAuth, h.ListApplications)
	jobs.Put("/:id/applications/:application_id/status", requireAuth, h.ReviewApplication)
}

// Create posts a new job; recruiters and admins only.
func (h *JobHandler) Create(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req in.CreateJobRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	job, err := h.jobs.CreateJob(c.UserContext(), user, &req)
	if err != nil {
		return err
	}
	return response.OK(c, job)
}

// List lists active jobs.
// Filters: query, location, job_type, remote_allowed.
func (h *JobHandler) List(c *fiber.Ctx) error {
	page, err := response.GetPage(c)
	if err != nil {
		return err
	}
	remote, err := response.QueryBool(c, "remote_allowed")
	if err != nil {
		return err
	}

	jobs, err := h.jobs.ListJobs(c.UserContext(), &domain.JobFilter{
		Query:         response.QueryString(c, "query"),
		Location:      response.QueryString(c, "location"),
		JobType:       response.QueryString(c, "job_type"),
		RemoteAllowed: remote,
		Skip:          page.Skip,
		Limit:         page.Limit,
	})
	if err != nil {
		return err
	}
	return response.List(c, jobs)
}

// Get returns a job and counts the view.
func (h *JobHandler) Get(c *fiber.Ctx) error {
	job, err := h.jobs.GetJob(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return response.OK(c, job)
}

// Apply submits the caller's application. The cover letter may come from
// the JSON body or the cover_letter query parameter.
func (h *JobHandler) Apply(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req in.ApplyRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	fallbackQueryPtr(c, "cover_letter", &req.CoverLetter)
	if err := validate.Struct(&req); err != nil {
		return err
	}

	if _, err := h.jobs.Apply(c.UserContext(), user, c.Params("id"), &req); err != nil {
		return err
	}
	return response.Message(c, "Application submitted successfully")
}

// ListApplications lists applications for a job the caller posted.
func (h *JobHandler) ListApplications(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	apps, err := h.jobs.ListApplications(c.UserContext(), user, c.Params("id"))
	if err != nil {
		return err
	}
	return response.List(c, apps)
}

// ReviewApplication moves an application along its review states.
func (h *JobHandler) ReviewApplication(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req in.ReviewApplicationRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	app, err := h.jobs.ReviewApplication(c.UserContext(), user, c.Params("id"), c.Params("application_id"), &req)
	if err != nil {
		return err
	}
	return response.OK(c, app)
}
