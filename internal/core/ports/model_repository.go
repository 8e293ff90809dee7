package ports

import (
	"context"

	"github.com/salesai/dashboard-system/internal/core/domain"
)

// ModelRepository defines the interface for trained model persistence.
type ModelRepository interface {
	// Latest returns the most recently trained model, or domain.ErrNoModel.
	Latest(ctx context.Context) (*domain.Model, error)
	Save(ctx context.Context, m *domain.Model) error
	Count(ctx context.Context) (int64, error)
}
