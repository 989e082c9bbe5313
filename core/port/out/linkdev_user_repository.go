package out

import (
	"context"
	"time"

	"github.com/MASTER-2222/linkedin/core/domain"
)

// UserRepository defines the outbound port for user persistence.
type UserRepository interface {
	// Create returns ErrDuplicate when the email is taken.
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id string, update *domain.UserUpdate, now time.Time) error

	Search(ctx context.Context, filter *domain.UserFilter) ([]*domain.User, error)
	ListByIDs(ctx context.Context, ids []string) ([]*domain.User, error)

	IncrementConnections(ctx context.Context, id string, delta int) error
	Count(ctx context.Context) (int64, error)
}
