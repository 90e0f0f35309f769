package models

import "database/sql"

// User represents a user row. ResetToken and ResetExpiry are only set while
// a password reset is in flight; ResetExpiry is a unix timestamp.
type User struct {
	ID           int64          `db:"id"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password_hash"`
	ResetToken   sql.NullString `db:"reset_token"`
	ResetExpiry  sql.NullInt64  `db:"reset_expiry"`
}

// SignupRequest defines the structure for a signup request.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest defines the structure for a login request.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries a freshly issued session token.
type TokenResponse struct {
	Token string `json:"token"`
}

// ForgotPasswordRequest defines the structure for a forgot-password request.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest defines the structure for a reset-password request.
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6,max=72"`
}

// WatchlistRequest adds or removes a single coin id.
type WatchlistRequest struct {
	CoinID string `json:"coinId" binding:"required"`
}

// WatchlistResponse returns the user's current watchlist.
type WatchlistResponse struct {
	Watchlist []string `json:"watchlist"`
}
