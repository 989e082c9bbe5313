package memory

import (
	"context"
	"testing"
	"time"

	"github.com/MASTER-2222/linkedin/core/domain"
	"github.com/MASTER-2222/linkedin/core/port/out"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_UniqueEmail(t *testing.T) {
	ctx := context.Background()
	users := NewStore().Users()

	require.NoError(t, users.Create(ctx, &domain.User{ID: "u1", Email: "alice@x.com"}))
	err := users.Create(ctx, &domain.User{ID: "u2", Email: "ALICE@x.com"})
	assert.ErrorIs(t, err, out.ErrDuplicate)

	_, err = users.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, out.ErrNotFound)
}

func TestUserRepository_Search(t *testing.T) {
	ctx := context.Background()
	users := NewStore().Users()
	headline := "Go engineer"

	require.NoError(t, users.Create(ctx, &domain.User{ID: "1", Email: "a@x", FirstName: "Alice", Role: domain.RoleJobSeeker, Skills: []string{"Go"}}))
	require.NoError(t, users.Create(ctx, &domain.User{ID: "2", Email: "b@x", FirstName: "Bob", Role: domain.RoleRecruiter, Headline: &headline}))
	require.NoError(t, users.Create(ctx, &domain.User{ID: "3", Email: "c@x", FirstName: "Carol", Role: domain.RoleJobSeeker}))

	q := "go"
	got, err := users.Search(ctx, &domain.UserFilter{Query: &q, Limit: 20})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID, "skills match is exact, headline match is case-insensitive")

	role := domain.RoleJobSeeker
	got, err = users.Search(ctx, &domain.UserFilter{Role: &role, Skip: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)
}

func TestConnectionRepository_PairIsUnordered(t *testing.T) {
	ctx := context.Background()
	conns := NewStore().Connections()
	now := time.Now()

	require.NoError(t, conns.Create(ctx, &domain.ConnectionRequest{ID: "c1", SenderID: "a", ReceiverID: "b", Status: domain.ConnectionPending, CreatedAt: now}))
	assert.ErrorIs(t, conns.Create(ctx, &domain.ConnectionRequest{ID: "c2", SenderID: "b", ReceiverID: "a"}), out.ErrDuplicate)

	found, err := conns.FindBetween(ctx, "b", "a")
	require.NoError(t, err)
	assert.Equal(t, "c1", found.ID)

	_, err = conns.GetPendingForReceiver(ctx, "c1", "a")
	assert.ErrorIs(t, err, out.ErrNotFound, "sender cannot see the request as incoming")

	require.NoError(t, conns.UpdateStatus(ctx, "c1", domain.ConnectionPending, domain.ConnectionAccepted, now))
	assert.ErrorIs(t, conns.UpdateStatus(ctx, "c1", domain.ConnectionPending, domain.ConnectionDeclined, now), out.ErrNotFound)

	n, err := conns.CountAccepted(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestPostRepository_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	posts := NewStore().Posts()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, posts.Create(ctx, &domain.Post{ID: "old", CreatedAt: base}))
	require.NoError(t, posts.Create(ctx, &domain.Post{ID: "new", CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, posts.Create(ctx, &domain.Post{ID: "mid", CreatedAt: base.Add(time.Minute)}))

	got, err := posts.List(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].ID)
	assert.Equal(t, "mid", got[1].ID)

	got, err = posts.List(ctx, 5, 2)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLikeRepository_Toggle(t *testing.T) {
	ctx := context.Background()
	likes := NewStore().Likes()

	require.NoError(t, likes.Create(ctx, &domain.Like{ID: "l1", PostID: "p", UserID: "u"}))
	assert.ErrorIs(t, likes.Create(ctx, &domain.Like{ID: "l2", PostID: "p", UserID: "u"}), out.ErrDuplicate)

	removed, err := likes.Delete(ctx, "p", "u")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = likes.Delete(ctx, "p", "u")
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = likes.Find(ctx, "p", "u")
	assert.ErrorIs(t, err, out.ErrNotFound)
}
