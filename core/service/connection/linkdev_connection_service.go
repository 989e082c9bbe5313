// Package connection implements connection requests between users.
package connection

import (
	"context"
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
	msgSelfConnect   = "Cannot connect to yourself"
	msgAlreadyExists = "Connection already exists"
)

type Config struct {
	// AllowReRequestAfterDecline lets a declined pair start over with a new
	// pending request instead of being blocked forever.
	AllowReRequestAfterDecline bool
}

type Service struct {
	connections out.ConnectionRepository
	users       out.UserRepository
	sync        *common.CounterSync
	metrics     *metrics.Metrics
	cfg         Config
	now         func() time.Time
}

var _ in.ConnectionService = (*Service)(nil)

func NewService(
	connections out.ConnectionRepository,
	users out.UserRepository,
	tx out.Transactor,
	m *metrics.Metrics,
	cfg Config,
) *Service {
	return &Service{
		connections: connections,
		users:       users,
		sync:        common.NewCounterSync(tx, m),
		metrics:     m,
		cfg:         cfg,
		now:         time.Now,
	}
}

// SendRequest opens a pending request from caller to the receiver. At most one
// record exists per pair regardless of direction or status.
func (s *Service) SendRequest(ctx context.Context, caller *domain.User, req *in.ConnectionRequestInput) (*domain.ConnectionRequest, error) {
	if req.ReceiverID == caller.ID {
		return nil, apperr.BadRequest(msgSelfConnect)
	}
	if _, err := s.users.GetByID(ctx, req.ReceiverID); err != nil {
		if common.IsNotFound(err) {
			return nil, apperr.NotFound("User")
		}
		return nil, apperr.DatabaseError("get user", err)
	}

	now := s.now().UTC()
	existing, err := s.connections.FindBetween(ctx, caller.ID, req.ReceiverID)
	switch {
	case err == nil:
		if s.cfg.AllowReRequestAfterDecline && existing.Status == domain.ConnectionDeclined {
			return s.reopen(ctx, existing, caller.ID, req, now)
		}
		return nil, apperr.Conflict(msgAlreadyExists)
	case !common.IsNotFound(err):
		return nil, apperr.DatabaseError("find connection", err)
	}

	conn := &domain.ConnectionRequest{
		ID:         uuid.NewString(),
		SenderID:   caller.ID,
		ReceiverID: req.ReceiverID,
		Message:    req.Message,
		Status:     domain.ConnectionPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.connections.Create(ctx, conn); err != nil {
		if common.IsDuplicate(err) {
			return nil, apperr.Conflict(msgAlreadyExists)
		}
		return nil, apperr.DatabaseError("create connection", err)
	}

	logger.WithContext(ctx).WithField("connection_id", conn.ID).Debug("connection requested")
	return conn, nil
}

func (s *Service) reopen(ctx context.Context, existing *domain.ConnectionRequest, senderID string, req *in.ConnectionRequestInput, now time.Time) (*domain.ConnectionRequest, error) {
	if err := s.connections.Reopen(ctx, existing.ID, senderID, req.ReceiverID, req.Message, now); err != nil {
		if common.IsNotFound(err) {
			return nil, apperr.Conflict(msgAlreadyExists)
		}
		return nil, apperr.DatabaseError("reopen connection", err)
	}
	existing.SenderID = senderID
	existing.ReceiverID = req.ReceiverID
	existing.Message = req.Message
	existing.Status = domain.ConnectionPending
	existing.UpdatedAt = now
	return existing, nil
}

// ListIncoming returns pending requests addressed to caller.
func (s *Service) ListIncoming(ctx context.Context, caller *domain.User) ([]*domain.ConnectionRequest, error) {
	conns, err := s.connections.ListPendingForReceiver(ctx, caller.ID)
	if err != nil {
		return nil, apperr.DatabaseError("list connection requests", err)
	}
	return conns, nil
}

// Respond accepts or declines a pending request addressed to caller. Accepting
// bumps connections_count on both users.
func (s *Service) Respond(ctx context.Context, caller *domain.User, connectionID string, accept bool) (*domain.ConnectionRequest, error) {
	conn, err := s.connections.GetPendingForReceiver(ctx, connectionID, caller.ID)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, apperr.NotFound("Connection request")
		}
		return nil, apperr.DatabaseError("get connection", err)
	}

	next := domain.ConnectionDeclined
	if accept {
		next = domain.ConnectionAccepted
	}
	now := s.now().UTC()

	transition := func(ctx context.Context) error {
		return s.connections.UpdateStatus(ctx, conn.ID, domain.ConnectionPending, next, now)
	}
	bump := func(ctx context.Context) error {
		if !accept {
			return nil
		}
		if err := s.users.IncrementConnections(ctx, conn.SenderID, 1); err != nil {
			return err
		}
		return s.users.IncrementConnections(ctx, conn.ReceiverID, 1)
	}

	if err := s.sync.Run(ctx, "respond_connection", transition, bump); err != nil {
		if common.IsNotFound(err) {
			return nil, apperr.NotFound("Connection request")
		}
		return nil, apperr.DatabaseError("update connection", err)
	}

	s.metrics.IncrementConnectionResponses(string(next))
	conn.Status = next
	conn.UpdatedAt = now
	return conn, nil
}

// ListConnections returns the users linked to caller by an accepted request.
func (s *Service) ListConnections(ctx context.Context, caller *domain.User) ([]*domain.User, error) {
	conns, err := s.connections.ListAccepted(ctx, caller.ID)
	if err != nil {
		return nil, apperr.DatabaseError("list connections", err)
	}
	if len(conns) == 0 {
		return []*domain.User{}, nil
	}

	ids := make([]string, 0, len(conns))
	for _, c := range conns {
		ids = append(ids, c.Peer(caller.ID))
	}
	users, err := s.users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.DatabaseError("list users", err)
	}
	return users, nil
}
