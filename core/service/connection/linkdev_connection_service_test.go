package connection

import (
	"context"
	"testing"

	"github.com/MASTER-2222/linkedin/adapter/out/memory"
	"github.com/MASTER-2222/linkedin/core/domain"
	"github.com/MASTER-2222/linkedin/core/port/in"
	"github.com/MASTER-2222/linkedin/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = &domain.User{ID: "alice", Email: "alice@x.com", Role: domain.RoleJobSeeker}
	bob   = &domain.User{ID: "bob", Email: "bob@x.com", Role: domain.RoleRecruiter}
	carol = &domain.User{ID: "carol", Email: "carol@x.com", Role: domain.RoleJobSeeker}
)

func newService(t *testing.T, cfg Config) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	for _, u := range []*domain.User{alice, bob, carol} {
		cp := *u
		require.NoError(t, store.Users().Create(context.Background(), &cp))
	}
	return NewService(store.Connections(), store.Users(), store.Transactor(), nil, cfg), store
}

func TestService_SendRequest(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, Config{})

	msg := "Let's connect"
	conn, err := svc.SendRequest(ctx, alice, &in.ConnectionRequestInput{ReceiverID: bob.ID, Message: &msg})
	require.NoError(t, err)
	assert.Equal(t, domain.ConnectionPending, conn.Status)
	assert.Equal(t, alice.ID, conn.SenderID)

	tests := []struct {
		name       string
		caller     *domain.User
		receiver   string
		wantStatus int
	}{
		{"self", alice, alice.ID, 400},
		{"unknown receiver", alice, "ghost", 404},
		{"same direction again", alice, bob.ID, 409},
		{"reverse direction", bob, alice.ID, 409},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SendRequest(ctx, tt.caller, &in.ConnectionRequestInput{ReceiverID: tt.receiver})
			require.Error(t, err)
			assert.Equal(t, tt.wantStatus, apperr.GetHTTPStatus(err))
		})
	}
}

func TestService_Respond_Accept(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t, Config{})

	conn, err := svc.SendRequest(ctx, alice, &in.ConnectionRequestInput{ReceiverID: bob.ID})
	require.NoError(t, err)

	incoming, err := svc.ListIncoming(ctx, bob)
	require.NoError(t, err)
	require.Len(t, incoming, 1)

	_, err = svc.Respond(ctx, alice, conn.ID, true)
	assert.Equal(t, 404, apperr.GetHTTPStatus(err), "only the receiver may respond")

	got, err := svc.Respond(ctx, bob, conn.ID, true)
	require.NoError(t, err)
	assert.Equal(t, domain.ConnectionAccepted, got.Status)

	_, err = svc.Respond(ctx, bob, conn.ID, false)
	assert.Equal(t, 404, apperr.GetHTTPStatus(err), "answered requests are no longer pending")

	for _, id := range []string{alice.ID, bob.ID} {
		u, err := store.Users().GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 1, u.ConnectionsCount, id)
	}

	aliceConns, err := svc.ListConnections(ctx, alice)
	require.NoError(t, err)
	require.Len(t, aliceConns, 1)
	assert.Equal(t, bob.ID, aliceConns[0].ID)

	bobConns, err := svc.ListConnections(ctx, bob)
	require.NoError(t, err)
	require.Len(t, bobConns, 1)
	assert.Equal(t, alice.ID, bobConns[0].ID)

	incoming, err = svc.ListIncoming(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, incoming)
}

func TestService_Respond_Decline(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t, Config{})

	conn, err := svc.SendRequest(ctx, alice, &in.ConnectionRequestInput{ReceiverID: carol.ID})
	require.NoError(t, err)

	got, err := svc.Respond(ctx, carol, conn.ID, false)
	require.NoError(t, err)
	assert.Equal(t, domain.ConnectionDeclined, got.Status)

	u, err := store.Users().GetByID(ctx, carol.ID)
	require.NoError(t, err)
	assert.Zero(t, u.ConnectionsCount)

	conns, err := svc.ListConnections(ctx, carol)
	require.NoError(t, err)
	assert.Empty(t, conns)

	_, err = svc.SendRequest(ctx, carol, &in.ConnectionRequestInput{ReceiverID: alice.ID})
	assert.Equal(t, 409, apperr.GetHTTPStatus(err), "declined pairs stay blocked by default")
}

func TestService_ReRequestAfterDecline(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, Config{AllowReRequestAfterDecline: true})

	conn, err := svc.SendRequest(ctx, alice, &in.ConnectionRequestInput{ReceiverID: carol.ID})
	require.NoError(t, err)
	_, err = svc.Respond(ctx, carol, conn.ID, false)
	require.NoError(t, err)

	reopened, err := svc.SendRequest(ctx, carol, &in.ConnectionRequestInput{ReceiverID: alice.ID})
	require.NoError(t, err)
	assert.Equal(t, conn.ID, reopened.ID, "the pair keeps a single record")
	assert.Equal(t, carol.ID, reopened.SenderID)
	assert.Equal(t, domain.ConnectionPending, reopened.Status)

	incoming, err := svc.ListIncoming(ctx, alice)
	require.NoError(t, err)
	require.Len(t, incoming, 1)

	_, err = svc.Respond(ctx, alice, conn.ID, true)
	require.NoError(t, err)

	_, err = svc.SendRequest(ctx, carol, &in.ConnectionRequestInput{ReceiverID: alice.ID})
	assert.Equal(t, 409, apperr.GetHTTPStatus(err), "accepted pairs cannot be re-requested")
}
