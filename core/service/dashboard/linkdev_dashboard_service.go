// Package dashboard computes per-user and platform-wide counters on demand.
package dashboard

import (
	"context"

	"github.com/MASTER-2222/linkedin/core/domain"
	"github.com/MASTER-2222/linkedin/core/port/in"
	"github.com/MASTER-2222/linkedin/core/port/out"
	"github.com/MASTER-2222/linkedin/pkg/apperr"

	"golang.org/x/sync/errgroup"
)

type Service struct {
	users        out.UserRepository
	jobs         out.JobRepository
	applications out.ApplicationRepository
	connections  out.ConnectionRepository
	posts        out.PostRepository
}

var _ in.DashboardService = (*Service)(nil)

func NewService(
	users out.UserRepository,
	jobs out.JobRepository,
	applications out.ApplicationRepository,
	connections out.ConnectionRepository,
	posts out.PostRepository,
) *Service {
	return &Service{
		users:        users,
		jobs:         jobs,
		applications: applications,
		connections:  connections,
		posts:        posts,
	}
}

// count runs one counter query and wraps its failure.
func count(ctx context.Context, g *errgroup.Group, op string, dst *int64, fn func(context.Context) (int64, error)) {
	g.Go(func() error {
		n, err := fn(ctx)
		if err != nil {
			return apperr.DatabaseError(op, err)
		}
		*dst = n
		return nil
	})
}

// DashboardStats returns the caller's counters. Recruiters see what they
// posted and received; everyone else sees what they sent.
func (s *Service) DashboardStats(ctx context.Context, caller *domain.User) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{}

	g, gctx := errgroup.WithContext(ctx)
	count(gctx, g, "count connections", &stats.Connections, func(ctx context.Context) (int64, error) {
		return s.connections.CountAccepted(ctx, caller.ID)
	})
	count(gctx, g, "count posts", &stats.Posts, func(ctx context.Context) (int64, error) {
		return s.posts.CountByAuthor(ctx, caller.ID)
	})

	if caller.Role == domain.RoleRecruiter {
		var posted, received int64
		g.Go(func() error {
			jobIDs, err := s.jobs.ListIDsByPoster(gctx, caller.ID)
			if err != nil {
				return apperr.DatabaseError("list posted jobs", err)
			}
			posted = int64(len(jobIDs))
			if received, err = s.applications.CountByJobs(gctx, jobIDs); err != nil {
				return apperr.DatabaseError("count applications", err)
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		stats.JobsPosted = &posted
		stats.ApplicationsReceived = &received
		return stats, nil
	}

	var sent int64
	count(gctx, g, "count applications", &sent, func(ctx context.Context) (int64, error) {
		return s.applications.CountByApplicant(ctx, caller.ID)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	stats.ApplicationsSent = &sent
	return stats, nil
}

// AdminStats returns platform totals. Admins only.
func (s *Service) AdminStats(ctx context.Context, caller *domain.User) (*domain.AdminStats, error) {
	if caller.Role != domain.RoleAdmin {
		return nil, apperr.Forbidden("Admin access required")
	}

	var stats domain.AdminStats
	g, gctx := errgroup.WithContext(ctx)
	count(gctx, g, "count users", &stats.TotalUsers, s.users.Count)
	count(gctx, g, "count jobs", &stats.TotalJobs, s.jobs.Count)
	count(gctx, g, "count applications", &stats.TotalApplications, s.applications.Count)
	count(gctx, g, "count connections", &stats.TotalConnections, s.connections.CountAllAccepted)
	count(gctx, g, "count posts", &stats.TotalPosts, s.posts.Count)
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}
