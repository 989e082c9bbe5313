package mongodb

import (
	"context"
	"fmt"

	"github.com/MASTER-2222/linkedin/core/port/out"

	"go.mongodb.org/mongo-driver/mongo"
)

// Transactor runs grouped writes in a session transaction when enabled, and
// directly otherwise.
type Transactor struct {
	client  *mongo.Client
	enabled bool
}

var _ out.Transactor = (*Transactor)(nil)

func NewTransactor(client *mongo.Client, enabled bool) *Transactor {
	return &Transactor{client: client, enabled: enabled}
}

func (t *Transactor) Atomic() bool {
	return t.enabled
}

// WithinTransaction calls fn with a session context when transactions are
// enabled. The driver may call fn again on transient transaction errors.
func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !t.enabled {
		return fn(ctx)
	}

	session, err := t.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
