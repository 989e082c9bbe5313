package out

import "context"

// Transactor groups multi-document writes. Implementations either run fn
// inside a store transaction or call it directly, in which case a failure
// between writes leaves counters out of sync with their records.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	// Atomic reports whether WithinTransaction provides all-or-nothing semantics.
	Atomic() bool
}
