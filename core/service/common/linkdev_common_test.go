package common

import (
	"context"
	"errors"
	"testing"

	"github.com/MASTER-2222/linkedin/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		skip, limit         int
		wantSkip, wantLimit int
	}{
		{0, 0, 0, 20},
		{-5, 10, 0, 10},
		{40, -1, 40, 1},
		{0, 500, 0, 100},
		{3, 100, 3, 100},
	}

	for _, tt := range tests {
		skip, limit := NormalizePage(tt.skip, tt.limit)
		if skip != tt.wantSkip || limit != tt.wantLimit {
			t.Errorf("NormalizePage(%d, %d) = (%d, %d), want (%d, %d)",
				tt.skip, tt.limit, skip, limit, tt.wantSkip, tt.wantLimit)
		}
	}
}

type directTx struct{ atomic bool }

func (d directTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (d directTx) Atomic() bool { return d.atomic }

func TestCounterSync(t *testing.T) {
	bumpErr := errors.New("write conflict")

	tests := []struct {
		name         string
		atomic       bool
		writeErr     error
		bumpErr      error
		wantErr      error
		wantBumped   bool
		wantFailures float64
	}{
		{name: "both succeed", wantBumped: true},
		{name: "write fails skips bump", writeErr: errors.New("dup"), wantErr: errors.New("dup")},
		{name: "non-atomic swallows bump failure", bumpErr: bumpErr, wantBumped: true, wantFailures: 1},
		{name: "atomic returns bump failure", atomic: true, bumpErr: bumpErr, wantErr: bumpErr, wantBumped: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := metrics.New()
			sync := NewCounterSync(directTx{atomic: tt.atomic}, m)

			bumped := false
			err := sync.Run(context.Background(), "apply",
				func(context.Context) error { return tt.writeErr },
				func(context.Context) error { bumped = true; return tt.bumpErr },
			)

			if (err != nil) != (tt.wantErr != nil) {
				t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
			}
			if bumped != tt.wantBumped {
				t.Errorf("bumped = %v, want %v", bumped, tt.wantBumped)
			}
			got := testutil.ToFloat64(m.CounterSyncFailures.WithLabelValues("apply"))
			if got != tt.wantFailures {
				t.Errorf("sync failures = %v, want %v", got, tt.wantFailures)
			}
		})
	}
}
