package ports

import (
	"context"

	"github.com/salesai/dashboard-system/internal/core/domain"
)

// PredictionRepository defines the interface for logged predictions.
type PredictionRepository interface {
	Insert(ctx context.Context, p *domain.Prediction) error
	CountByUser(ctx context.Context, userID string) (int64, error)

	// CountByModelVersion groups logged predictions by the model version
	// that served them.
	CountByModelVersion(ctx context.Context) ([]domain.ModelVersionCount, error)

	// TopUsers ranks users by prediction count, descending.
	TopUsers(ctx context.Context, limit int) ([]domain.UserPredictionCount, error)
}
