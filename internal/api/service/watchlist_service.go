package service

import (
	"context"

	"ctchen222/Crypto-Tracker/internal/api/repository"
	"ctchen222/Crypto-Tracker/internal/api/response"
)

// WatchlistService owns the per-user coin watchlist. Add and Remove are
// idempotent; repeating either in any state is a success.
type WatchlistService interface {
	List(ctx context.Context, userID int64) ([]string, error)
	Add(ctx context.Context, userID int64, coinID string) ([]string, error)
	Remove(ctx context.Context, userID int64, coinID string) ([]string, error)
}

type watchlistService struct {
	userRepo repository.UserRepository
}

// NewWatchlistService creates a new WatchlistService.
func NewWatchlistService(userRepo repository.UserRepository) WatchlistService {
	return &watchlistService{userRepo: userRepo}
}

func (s *watchlistService) List(ctx context.Context, userID int64) ([]string, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.userRepo.GetWatchlist(ctx, userID)
}

func (s *watchlistService) Add(ctx context.Context, userID int64, coinID string) ([]string, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.userRepo.AddToWatchlist(ctx, userID, coinID); err != nil {
		return nil, err
	}
	return s.userRepo.GetWatchlist(ctx, userID)
}

func (s *watchlistService) Remove(ctx context.Context, userID int64, coinID string) ([]string, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.userRepo.RemoveFromWatchlist(ctx, userID, coinID); err != nil {
		return nil, err
	}
	return s.userRepo.GetWatchlist(ctx, userID)
}

// requireUser guards against tokens for users that no longer exist.
func (s *watchlistService) requireUser(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return response.ErrNotFound
	}
	return nil
}
