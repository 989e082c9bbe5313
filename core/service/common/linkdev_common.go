// Package common provides helpers shared by the domain services.
package common

import (
	"context"
	"errors"

	"github.com/MASTER-2222/linkedin/core/port/out"
	"github.com/MASTER-2222/linkedin/pkg/apperr"
	"github.com/MASTER-2222/linkedin/pkg/logger"
	"github.com/MASTER-2222/linkedin/pkg/metrics"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// NormalizePage clamps skip to >= 0 and limit to [1, MaxLimit], with 0 meaning DefaultLimit.
func NormalizePage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	switch {
	case limit == 0:
		limit = DefaultLimit
	case limit < 1:
		limit = 1
	case limit > MaxLimit:
		limit = MaxLimit
	}
	return skip, limit
}

// IsNotFound reports whether err is a repository miss.
func IsNotFound(err error) bool {
	return errors.Is(err, out.ErrNotFound)
}

// IsDuplicate reports whether err is a unique index violation.
func IsDuplicate(err error) bool {
	return errors.Is(err, out.ErrDuplicate)
}

// DBError wraps a repository failure unless it is already an AppError.
func DBError(op string, err error) error {
	if err == nil {
		return nil
	}
	if apperr.IsAppError(err) {
		return err
	}
	return apperr.DatabaseError(op, err)
}

// CounterSync pairs a record write with the update of a denormalized counter.
type CounterSync struct {
	tx      out.Transactor
	metrics *metrics.Metrics
}

func NewCounterSync(tx out.Transactor, m *metrics.Metrics) *CounterSync {
	return &CounterSync{tx: tx, metrics: m}
}

// Run executes write and then bump through the transactor. With an atomic
// transactor any failure aborts both. Otherwise a failed bump is logged and
// counted while the written record stays, so the counter lags until repaired.
func (s *CounterSync) Run(ctx context.Context, op string, write, bump func(ctx context.Context) error) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := write(ctx); err != nil {
			return err
		}
		if err := bump(ctx); err != nil {
			if s.tx.Atomic() {
				return err
			}
			logger.WithContext(ctx).WithError(err).WithField("operation", op).
				Error("counter update failed after record write")
			s.metrics.IncrementCounterSyncFailures(op)
		}
		return nil
	})
}
