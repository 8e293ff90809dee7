package ports

import (
	"context"

	"github.com/salesai/dashboard-system/internal/core/domain"
)

type AccountService interface {
	DeleteAccount(ctx context.Context, userID string) (*domain.DeleteResult, error)
}
