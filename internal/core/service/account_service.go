package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/salesai/dashboard-system/internal/core/domain"
	"github.com/salesai/dashboard-system/internal/core/ports"
)

// AccountService handles destructive account operations.
type AccountService struct {
	repo   ports.AccountRepository
	logger zerolog.Logger
}

func NewAccountService(repo ports.AccountRepository, logger zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, logger: logger}
}

// DeleteAccount removes the user and every prediction they have logged in
// a single atomic operation.
func (s *AccountService) DeleteAccount(ctx context.Context, userID string) (*domain.DeleteResult, error) {
	if userID == "" {
		return nil, domain.ErrInvalidUserID
	}

	result, err := s.repo.DeleteUserAndPredictions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("delete account: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Int64("users_deleted", result.UsersDeleted).
		Int64("predictions_deleted", result.PredictionsDeleted).
		Msg("account deleted")

	return result, nil
}
