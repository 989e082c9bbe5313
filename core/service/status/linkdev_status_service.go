// Package status keeps the legacy client status-check records.
package status

import (
	"context"
	"time"

	"github.com/MASTER-2222/linkedin/core/domain"
	"github.com/MASTER-2222/linkedin/core/port/in"
	"github.com/MASTER-2222/linkedin/core/port/out"
	"github.com/MASTER-2222/linkedin/pkg/apperr"

	"github.com/google/uuid"
)

type Service struct {
	checks out.StatusCheckRepository
	now    func() time.Time
}

var _ in.StatusService = (*Service)(nil)

func NewService(checks out.StatusCheckRepository) *Service {
	return &Service{checks: checks, now: time.Now}
}

func (s *Service) Record(ctx context.Context, req *in.StatusCheckRequest) (*domain.StatusCheck, error) {
	check := &domain.StatusCheck{
		ID:         uuid.NewString(),
		ClientName: req.ClientName,
		Timestamp:  s.now().UTC(),
	}
	if err := s.checks.Create(ctx, check); err != nil {
		return nil, apperr.DatabaseError("create status check", err)
	}
	return check, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.StatusCheck, error) {
	checks, err := s.checks.List(ctx)
	if err != nil {
		return nil, apperr.DatabaseError("list status checks", err)
	}
	return checks, nil
}
