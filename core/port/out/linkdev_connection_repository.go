package out

import (
	"context"
	"time"

	"github.com/MASTER-2222/linkedin/core/domain"
)

// ConnectionRepository defines the outbound port for connection requests.
type ConnectionRepository interface {
	Create(ctx context.Context, conn *domain.ConnectionRequest) error
	// FindBetween looks the pair up in both directions, any status.
	FindBetween(ctx context.Context, userA, userB string) (*domain.ConnectionRequest, error)
	GetPendingForReceiver(ctx context.Context, id, receiverID string) (*domain.ConnectionRequest, error)
	ListPendingForReceiver(ctx context.Context, receiverID string) ([]*domain.ConnectionRequest, error)
	ListAccepted(ctx context.Context, userID string) ([]*domain.ConnectionRequest, error)

	// UpdateStatus only matches a record still in status from.
	UpdateStatus(ctx context.Context, id string, from, to domain.ConnectionStatus, now time.Time) error
	// Reopen turns a declined record back into a pending request from sender to receiver.
	Reopen(ctx context.Context, id, senderID, receiverID string, message *string, now time.Time) error

	CountAccepted(ctx context.Context, userID string) (int64, error)
	CountAllAccepted(ctx context.Context) (int64, error)
}
