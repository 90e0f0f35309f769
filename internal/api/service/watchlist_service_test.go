package service

import (
	"context"
	"testing"

	"ctchen222/Crypto-Tracker/internal/api/repository"
	"ctchen222/Crypto-Tracker/internal/api/response"
	"ctchen222/Crypto-Tracker/internal/db"

	"github.com/stretchr/testify/require"
)

func newTestWatchlist(t *testing.T) (WatchlistService, int64) {
	t.Helper()
	pool, err := db.Connect(":memory:")
	require.NoError(t, err)
	pool.SetMaxOpenConns(1)
	t.Cleanup(func() { pool.Close() })

	repo := repository.NewUserRepository(pool)
	user, err := repo.CreateUser(context.Background(), "a@x.com", "pw123456")
	require.NoError(t, err)

	return NewWatchlistService(repo), user.ID
}

func TestWatchlist_AddIsIdempotent(t *testing.T) {
	svc, userID := newTestWatchlist(t)
	ctx := context.Background()

	list, err := svc.Add(ctx, userID, "bitcoin")
	require.NoError(t, err)
	require.Equal(t, []string{"bitcoin"}, list)

	list, err = svc.Add(ctx, userID, "bitcoin")
	require.NoError(t, err)
	require.Equal(t, []string{"bitcoin"}, list, "adding twice must not duplicate")
}

func TestWatchlist_RemoveAbsentSucceeds(t *testing.T) {
	svc, userID := newTestWatchlist(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, userID, "bitcoin")
	require.NoError(t, err)

	list, err := svc.Remove(ctx, userID, "dogecoin")
	require.NoError(t, err)
	require.Equal(t, []string{"bitcoin"}, list, "removing an absent coin leaves the set unchanged")

	list, err = svc.Remove(ctx, userID, "bitcoin")
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestWatchlist_ListEmpty(t *testing.T) {
	svc, userID := newTestWatchlist(t)

	list, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, list, "empty watchlist must encode as [] not null")
	require.Empty(t, list)
}

func TestWatchlist_UnknownUser(t *testing.T) {
	svc, _ := newTestWatchlist(t)

	_, err := svc.List(context.Background(), 9999)
	require.ErrorIs(t, err, response.ErrNotFound)
}
