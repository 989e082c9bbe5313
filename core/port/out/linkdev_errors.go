package out

import "errors"

// Common persistence errors. Single-record lookups return ErrNotFound when
// nothing matches; inserts that hit a unique index return ErrDuplicate.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate entry")
)
