package memory

import (
	"context"
	"time"

	"github.com/MASTER-2222/linkedin/core/domain"
	"github.com/MASTER-2222/linkedin/core/port/out"
)

type connectionRow = domain.ConnectionRequest

type ConnectionRepository struct {
	s *Store
}

var _ out.ConnectionRepository = (*ConnectionRepository)(nil)

func cloneConnection(c *domain.ConnectionRequest) *domain.ConnectionRequest {
	cp := *c
	return &cp
}

func relates(row *connectionRow, a, b string) bool {
	return (row.SenderID == a && row.ReceiverID == b) || (row.SenderID == b && row.ReceiverID == a)
}

func (r *ConnectionRepository) Create(ctx context.Context, conn *domain.ConnectionRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.connections.get(conn.ID); ok {
		return out.ErrDuplicate
	}
	dup := false
	r.s.connections.each(func(row *connectionRow) bool {
		dup = relates(row, conn.SenderID, conn.ReceiverID)
		return !dup
	})
	if dup {
		return out.ErrDuplicate
	}
	r.s.connections.insert(conn.ID, cloneConnection(conn))
	return nil
}

func (r *ConnectionRepository) FindBetween(ctx context.Context, userA, userB string) (*domain.ConnectionRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var found *domain.ConnectionRequest
	r.s.connections.each(func(row *connectionRow) bool {
		if relates(row, userA, userB) {
			found = cloneConnection(row)
			return false
		}
		return true
	})
	if found == nil {
		return nil, out.ErrNotFound
	}
	return found, nil
}

func (r *ConnectionRepository) GetPendingForReceiver(ctx context.Context, id, receiverID string) (*domain.ConnectionRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.connections.get(id)
	if !ok || row.ReceiverID != receiverID || row.Status != domain.ConnectionPending {
		return nil, out.ErrNotFound
	}
	return cloneConnection(row), nil
}

func (r *ConnectionRepository) ListPendingForReceiver(ctx context.Context, receiverID string) ([]*domain.ConnectionRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	conns := []*domain.ConnectionRequest{}
	r.s.connections.each(func(row *connectionRow) bool {
		if row.ReceiverID == receiverID && row.Status == domain.ConnectionPending {
			conns = append(conns, cloneConnection(row))
		}
		return true
	})
	return conns, nil
}

func (r *ConnectionRepository) ListAccepted(ctx context.Context, userID string) ([]*domain.ConnectionRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	conns := []*domain.ConnectionRequest{}
	r.s.connections.each(func(row *connectionRow) bool {
		if row.Status == domain.ConnectionAccepted && (row.SenderID == userID || row.ReceiverID == userID) {
			conns = append(conns, cloneConnection(row))
		}
		return true
	})
	return conns, nil
}

func (r *ConnectionRepository) UpdateStatus(ctx context.Context, id string, from, to domain.ConnectionStatus, now time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.connections.get(id)
	if !ok || row.Status != from {
		return out.ErrNotFound
	}
	row.Status = to
	row.UpdatedAt = now
	return nil
}

func (r *ConnectionRepository) Reopen(ctx context.Context, id, senderID, receiverID string, message *string, now time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.connections.get(id)
	if !ok || row.Status != domain.ConnectionDeclined {
		return out.ErrNotFound
	}
	row.SenderID = senderID
	row.ReceiverID = receiverID
	row.Message = message
	row.Status = domain.ConnectionPending
	row.UpdatedAt = now
	return nil
}

func (r *ConnectionRepository) CountAccepted(ctx context.Context, userID string) (int64, error) {
	conns, err := r.ListAccepted(ctx, userID)
	return int64(len(conns)), err
}

func (r *ConnectionRepository) CountAllAccepted(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	r.s.connections.each(func(row *connectionRow) bool {
		if row.Status == domain.ConnectionAccepted {
			n++
		}
		return true
	})
	return n, nil
}
