package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"ctchen222/Crypto-Tracker/internal/api/response"
	"ctchen222/Crypto-Tracker/internal/db"

	"github.com/jmoiron/sqlx"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	pool, err := db.Connect(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// A pooled :memory: database gives each connection its own empty DB.
	pool.SetMaxOpenConns(1)
	t.Cleanup(func() { pool.Close() })
	return pool
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	if _, err := repo.CreateUser(ctx, "a@x.com", "pw123456"); err != nil {
		t.Fatalf("unexpected error creating user: %v", err)
	}

	_, err := repo.CreateUser(ctx, "a@x.com", "other-pw")
	if !errors.Is(err, response.ErrConflict) {
		t.Errorf("expected ErrConflict for duplicate email, got %v", err)
	}
}

func TestGetUserByEmail(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	created, err := repo.CreateUser(ctx, "a@x.com", "pw123456")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, err := repo.GetUserByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user == nil || user.ID != created.ID {
		t.Errorf("expected to find created user, got %+v", user)
	}
	if user.PasswordHash == "pw123456" {
		t.Error("password must not be stored in plaintext")
	}

	missing, err := repo.GetUserByEmail(ctx, "nobody@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown email, got %+v", missing)
	}
}

func TestResetTokenLifecycle(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()
	now := time.Now()

	user, err := repo.CreateUser(ctx, "a@x.com", "pw123456")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.SetResetToken(ctx, user.ID, "tok123", now.Add(time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.GetUserByResetToken(ctx, "tok123", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found == nil || found.ID != user.ID {
		t.Fatalf("expected to find user by valid token, got %+v", found)
	}

	// Expired token is a miss.
	expired, err := repo.GetUserByResetToken(ctx, "tok123", now.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expired != nil {
		t.Error("expected expired token to be ignored")
	}

	// UpdatePassword clears the token, making it single use.
	if err := repo.UpdatePassword(ctx, user.ID, "newpw1234"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cleared, err := repo.GetUserByResetToken(ctx, "tok123", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cleared != nil {
		t.Error("expected token to be cleared after password update")
	}
}

func TestClearResetToken(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	user, err := repo.CreateUser(ctx, "a@x.com", "pw123456")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.SetResetToken(ctx, user.ID, "tok123", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.ClearResetToken(ctx, user.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.GetUserByResetToken(ctx, "tok123", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != nil {
		t.Error("expected cleared token to be unusable")
	}
}

func TestWatchlist(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	user, err := repo.CreateUser(ctx, "a@x.com", "pw123456")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list, err := repo.GetWatchlist(ctx, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty watchlist, got %v", list)
	}

	// Adding twice is idempotent.
	for range 2 {
		if err := repo.AddToWatchlist(ctx, user.ID, "bitcoin"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	list, err = repo.GetWatchlist(ctx, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 || list[0] != "bitcoin" {
		t.Errorf("expected [bitcoin], got %v", list)
	}

	// Removing an absent coin succeeds and changes nothing.
	if err := repo.RemoveFromWatchlist(ctx, user.ID, "dogecoin"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list, _ = repo.GetWatchlist(ctx, user.ID)
	if len(list) != 1 {
		t.Errorf("expected watchlist unchanged, got %v", list)
	}

	if err := repo.RemoveFromWatchlist(ctx, user.ID, "bitcoin"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list, _ = repo.GetWatchlist(ctx, user.ID)
	if len(list) != 0 {
		t.Errorf("expected empty watchlist after removal, got %v", list)
	}
}
