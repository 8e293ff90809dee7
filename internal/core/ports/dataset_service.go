package ports

import (
	"context"

	"github.com/salesai/dashboard-system/internal/core/domain"
)

// DatasetService owns dataset lifecycle and operational checks.
type DatasetService interface {
	// LoadSample seeds the dataset collection with the bundled sample data
	// when it is empty, and returns the resulting record count.
	LoadSample(ctx context.Context) (int64, error)

	// Train fits a model from the current dataset, stores it, and returns
	// the number of models now persisted.
	Train(ctx context.Context) (int64, error)

	Health(ctx context.Context) *domain.HealthReport
}
