package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"ctchen222/Crypto-Tracker/internal/api/repository"
	"ctchen222/Crypto-Tracker/internal/api/response"
	"ctchen222/Crypto-Tracker/internal/email"

	"golang.org/x/crypto/bcrypt"
)

// UserService defines the account-management business logic.
type UserService interface {
	Signup(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type userService struct {
	userRepo      repository.UserRepository
	tokens        *TokenManager
	mailer        email.Mailer
	frontendURL   string
	resetLifetime time.Duration
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, tokens *TokenManager, mailer email.Mailer, frontendURL string, resetLifetime time.Duration) UserService {
	return &userService{
		userRepo:      userRepo,
		tokens:        tokens,
		mailer:        mailer,
		frontendURL:   frontendURL,
		resetLifetime: resetLifetime,
	}
}

// Signup registers a new account and returns a session token.
func (s *userService) Signup(ctx context.Context, emailAddr, password string) (string, error) {
	user, err := s.userRepo.CreateUser(ctx, emailAddr, password)
	if err != nil {
		return "", err
	}
	return s.tokens.Issue(user.ID)
}

// Login verifies credentials and returns a fresh session token. Unknown
// email and wrong password produce the same error.
func (s *userService) Login(ctx context.Context, emailAddr, password string) (string, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", response.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", response.ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID)
}

// ForgotPassword stores a one-hour reset token on the user and emails the
// reset link.
func (s *userService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if user == nil {
		return response.ErrNotFound
	}

	token, err := newResetToken()
	if err != nil {
		return err
	}

	expiry := time.Now().Add(s.resetLifetime)
	if err := s.userRepo.SetResetToken(ctx, user.ID, token, expiry); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.frontendURL, token)
	return s.mailer.SendResetEmail(ctx, user.Email, resetURL)
}

// ResetPassword exchanges a live reset token for a new password. The token
// is cleared in the same update, so it cannot be replayed.
func (s *userService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.userRepo.GetUserByResetToken(ctx, token, time.Now())
	if err != nil {
		return err
	}
	if user == nil {
		return response.ErrInvalidResetToken
	}

	return s.userRepo.UpdatePassword(ctx, user.ID, newPassword)
}

func newResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
