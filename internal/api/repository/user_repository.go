package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"ctchen222/Crypto-Tracker/internal/api/models"
	"ctchen222/Crypto-Tracker/internal/api/response"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
	"golang.org/x/crypto/bcrypt"
)

var tracer = otel.Tracer("repository.user")

// UserRepository owns user records and their watchlists.
type UserRepository interface {
	CreateUser(ctx context.Context, email, password string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdatePassword(ctx context.Context, userID int64, newPassword string) error
	SetResetToken(ctx context.Context, userID int64, token string, expiry time.Time) error
	GetUserByResetToken(ctx context.Context, token string, now time.Time) (*models.User, error)
	ClearResetToken(ctx context.Context, userID int64) error
	GetWatchlist(ctx context.Context, userID int64) ([]string, error)
	AddToWatchlist(ctx context.Context, userID int64, coinID string) error
	RemoveFromWatchlist(ctx context.Context, userID int64, coinID string) error
}

type sqliteUserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new SQLite-based UserRepository.
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &sqliteUserRepository{db: db}
}

// CreateUser hashes the password and inserts a new user.
func (r *sqliteUserRepository) CreateUser(ctx context.Context, email, password string) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "UserRepository.CreateUser")
	defer span.End()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	query := `INSERT INTO users (email, password_hash) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, query, email, string(hashedPassword))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil, response.ErrConflict
		}
		return nil, fmt.Errorf("%w: failed to create user: %v", response.ErrStoreUnavailable, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read new user id: %w", err)
	}

	return &models.User{ID: id, Email: email, PasswordHash: string(hashedPassword)}, nil
}

// GetUserByEmail retrieves a user by email. A missing user is (nil, nil).
func (r *sqliteUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "UserRepository.GetUserByEmail")
	defer span.End()

	var user models.User
	query := `SELECT id, email, password_hash, reset_token, reset_expiry FROM users WHERE email = ?`
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: failed to get user by email: %v", response.ErrStoreUnavailable, err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by primary key. A missing user is (nil, nil).
func (r *sqliteUserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "UserRepository.GetUserByID")
	defer span.End()

	var user models.User
	query := `SELECT id, email, password_hash, reset_token, reset_expiry FROM users WHERE id = ?`
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: failed to get user by id: %v", response.ErrStoreUnavailable, err)
	}
	return &user, nil
}

// UpdatePassword re-hashes and stores the password and clears any reset
// token in the same statement, making reset tokens single use.
func (r *sqliteUserRepository) UpdatePassword(ctx context.Context, userID int64, newPassword string) error {
	ctx, span := tracer.Start(ctx, "UserRepository.UpdatePassword")
	defer span.End()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	query := `UPDATE users SET password_hash = ?, reset_token = NULL, reset_expiry = NULL WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, string(hashedPassword), userID); err != nil {
		return fmt.Errorf("%w: failed to update password: %v", response.ErrStoreUnavailable, err)
	}
	return nil
}

// SetResetToken stores a reset token and its expiry on the user row.
func (r *sqliteUserRepository) SetResetToken(ctx context.Context, userID int64, token string, expiry time.Time) error {
	ctx, span := tracer.Start(ctx, "UserRepository.SetResetToken")
	defer span.End()

	query := `UPDATE users SET reset_token = ?, reset_expiry = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, token, expiry.Unix(), userID); err != nil {
		return fmt.Errorf("%w: failed to set reset token: %v", response.ErrStoreUnavailable, err)
	}
	return nil
}

// GetUserByResetToken finds the user holding an unexpired reset token.
// Expiry is enforced here, lazily, at use time.
func (r *sqliteUserRepository) GetUserByResetToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	ctx, span := tracer.Start(ctx, "UserRepository.GetUserByResetToken")
	defer span.End()

	var user models.User
	query := `SELECT id, email, password_hash, reset_token, reset_expiry FROM users WHERE reset_token = ? AND reset_expiry > ?`
	err := r.db.GetContext(ctx, &user, query, token, now.Unix())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: failed to get user by reset token: %v", response.ErrStoreUnavailable, err)
	}
	return &user, nil
}

// ClearResetToken removes any reset token from the user row.
func (r *sqliteUserRepository) ClearResetToken(ctx context.Context, userID int64) error {
	ctx, span := tracer.Start(ctx, "UserRepository.ClearResetToken")
	defer span.End()

	query := `UPDATE users SET reset_token = NULL, reset_expiry = NULL WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("%w: failed to clear reset token: %v", response.ErrStoreUnavailable, err)
	}
	return nil
}

// GetWatchlist returns the user's coin ids. Never nil on success.
func (r *sqliteUserRepository) GetWatchlist(ctx context.Context, userID int64) ([]string, error) {
	ctx, span := tracer.Start(ctx, "UserRepository.GetWatchlist")
	defer span.End()

	coinIDs := []string{}
	query := `SELECT coin_id FROM watchlist WHERE user_id = ? ORDER BY rowid`
	if err := r.db.SelectContext(ctx, &coinIDs, query, userID); err != nil {
		return nil, fmt.Errorf("%w: failed to get watchlist: %v", response.ErrStoreUnavailable, err)
	}
	return coinIDs, nil
}

// AddToWatchlist inserts a coin id; the unique constraint makes repeats a
// no-op, so the call is idempotent.
func (r *sqliteUserRepository) AddToWatchlist(ctx context.Context, userID int64, coinID string) error {
	ctx, span := tracer.Start(ctx, "UserRepository.AddToWatchlist")
	defer span.End()

	query := `INSERT OR IGNORE INTO watchlist (user_id, coin_id) VALUES (?, ?)`
	if _, err := r.db.ExecContext(ctx, query, userID, coinID); err != nil {
		return fmt.Errorf("%w: failed to add to watchlist: %v", response.ErrStoreUnavailable, err)
	}
	return nil
}

// RemoveFromWatchlist deletes a coin id; deleting an absent id succeeds.
func (r *sqliteUserRepository) RemoveFromWatchlist(ctx context.Context, userID int64, coinID string) error {
	ctx, span := tracer.Start(ctx, "UserRepository.RemoveFromWatchlist")
	defer span.End()

	query := `DELETE FROM watchlist WHERE user_id = ? AND coin_id = ?`
	if _, err := r.db.ExecContext(ctx, query, userID, coinID); err != nil {
		return fmt.Errorf("%w: failed to remove from watchlist: %v", response.ErrStoreUnavailable, err)
	}
	return nil
}
