package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/MASTER-2222/linkedin/adapter/out/memory"
	"github.com/MASTER-2222/linkedin/core/domain"
	"github.com/MASTER-2222/linkedin/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = &domain.User{ID: "alice", Email: "alice@x.com", Role: domain.RoleJobSeeker}
	bob   = &domain.User{ID: "bob", Email: "bob@x.com", Role: domain.RoleRecruiter}
	root  = &domain.User{ID: "root", Email: "root@x.com", Role: domain.RoleAdmin}
)

func seed(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Now()

	for _, u := range []*domain.User{alice, bob, root} {
		cp := *u
		require.NoError(t, store.Users().Create(ctx, &cp))
	}
	for _, j := range []*domain.Job{
		{ID: "j1", PostedBy: bob.ID, Status: domain.JobStatusActive},
		{ID: "j2", PostedBy: bob.ID, Status: domain.JobStatusActive},
		{ID: "j3", PostedBy: root.ID, Status: domain.JobStatusActive},
	} {
		require.NoError(t, store.Jobs().Create(ctx, j))
	}
	for _, a := range []*domain.JobApplication{
		{ID: "a1", JobID: "j1", ApplicantID: alice.ID},
		{ID: "a2", JobID: "j2", ApplicantID: alice.ID},
		{ID: "a3", JobID: "j3", ApplicantID: alice.ID},
	} {
		require.NoError(t, store.Applications().Create(ctx, a))
	}
	for _, c := range []*domain.ConnectionRequest{
		{ID: "c1", SenderID: alice.ID, ReceiverID: bob.ID, Status: domain.ConnectionAccepted, CreatedAt: now},
		{ID: "c2", SenderID: root.ID, ReceiverID: alice.ID, Status: domain.ConnectionPending, CreatedAt: now},
	} {
		require.NoError(t, store.Connections().Create(ctx, c))
	}
	require.NoError(t, store.Posts().Create(ctx, &domain.Post{ID: "p1", AuthorID: alice.ID, CreatedAt: now}))

	return NewService(store.Users(), store.Jobs(), store.Applications(), store.Connections(), store.Posts())
}

func i64(n int64) *int64 { return &n }

func TestService_DashboardStats(t *testing.T) {
	ctx := context.Background()
	svc := seed(t)

	tests := []struct {
		name   string
		caller *domain.User
		want   *domain.DashboardStats
	}{
		{
			name:   "job seeker",
			caller: alice,
			want:   &domain.DashboardStats{Connections: 1, Posts: 1, ApplicationsSent: i64(3)},
		},
		{
			name:   "recruiter",
			caller: bob,
			want:   &domain.DashboardStats{Connections: 1, JobsPosted: i64(2), ApplicationsReceived: i64(2)},
		},
		{
			name:   "admin is not a recruiter",
			caller: root,
			want:   &domain.DashboardStats{ApplicationsSent: i64(0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.DashboardStats(ctx, tt.caller)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_AdminStats(t *testing.T) {
	ctx := context.Background()
	svc := seed(t)

	_, err := svc.AdminStats(ctx, bob)
	require.Error(t, err)
	assert.Equal(t, 403, apperr.GetHTTPStatus(err))
	assert.Equal(t, "Admin access required", apperr.AsAppError(err).Message)

	got, err := svc.AdminStats(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, &domain.AdminStats{
		TotalUsers:        3,
		TotalJobs:         3,
		TotalApplications: 3,
		TotalConnections:  1,
		TotalPosts:        1,
	}, got)
}
