package domain

// DashboardStats is the per-caller dashboard. Recruiter-only and seeker-only
// counters are pointers so the JSON shape follows the caller's role.
type DashboardStats struct {
	Connections          int64  `json:"connections"`
	Posts                int64  `json:"posts"`
	JobsPosted           *int64 `json:"jobs_posted,omitempty"`
	ApplicationsReceived *int64 `json:"applications_received,omitempty"`
	ApplicationsSent     *int64 `json:"applications_sent,omitempty"`
}

type AdminStats struct {
	TotalUsers        int64 `json:"total_users"`
	TotalJobs         int64 `json:"total_jobs"`
	TotalApplications int64 `json:"total_applications"`
	TotalConnections  int64 `json:"total_connections"`
	TotalPosts        int64 `json:"total_posts"`
}
