// Package user implements profile reads, updates and search.
package user

import (
	"context"
	"time"

	"github.com/MASTER-2222/linkedin/core/domain"
	"github.com/MASTER-2222/linkedin/core/port/in"
	"github.com/MASTER-2222/linkedin/core/port/out"
	"github.com/MASTER-2222/linkedin/core/service/common"
	"github.com/MASTER-2222/linkedin/pkg/apperr"
)

type Service struct {
	users out.UserRepository
	now   func() time.Time
}

var _ in.UserService = (*Service)(nil)

func NewService(users out.UserRepository) *Service {
	return &Service{
		users: users,
		now:   time.Now,
	}
}

// UpdateProfile applies the non-nil fields and returns the reloaded profile.
func (s *Service) UpdateProfile(ctx context.Context, userID string, req *in.UpdateProfileRequest) (*domain.User, error) {
	if err := s.users.Update(ctx, userID, req.ToDomain(), s.now().UTC()); err != nil {
		if common.IsNotFound(err) {
			return nil, apperr.NotFound("User")
		}
		return nil, apperr.DatabaseError("update user", err)
	}
	return s.GetUser(ctx, userID)
}

func (s *Service) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, apperr.NotFound("User")
		}
		return nil, apperr.DatabaseError("get user", err)
	}
	return user, nil
}

func (s *Service) SearchUsers(ctx context.Context, filter *domain.UserFilter) ([]*domain.User, error) {
	if filter.Role != nil && !filter.Role.Valid() {
		return nil, apperr.InvalidInput("role", "must be one of job_seeker, recruiter, admin")
	}
	if filter.Query != nil && *filter.Query == "" {
		filter.Query = nil
	}
	filter.Skip, filter.Limit = common.NormalizePage(filter.Skip, filter.Limit)

	users, err := s.users.Search(ctx, filter)
	if err != nil {
		return nil, apperr.DatabaseError("search users", err)
	}
	return users, nil
}
