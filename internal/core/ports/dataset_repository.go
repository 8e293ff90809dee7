package ports

import (
	"context"

	"github.com/salesai/dashboard-system/internal/core/domain"
)

// DatasetRepository defines the interface for the sales dataset collection.
type DatasetRepository interface {
	Count(ctx context.Context) (int64, error)
	InsertBatch(ctx context.Context, invoices []domain.Invoice) error

	// Stats runs the aggregation pipelines producing the dashboard figures.
	Stats(ctx context.Context) (domain.DashboardStats, error)

	// TopItemTotals returns items ranked by summed amount, descending.
	TopItemTotals(ctx context.Context, limit int) ([]domain.ItemTotal, error)

	// Amounts returns every invoice amount, for distribution charts.
	Amounts(ctx context.Context) ([]float64, error)

	// All returns the full dataset, used for model training.
	All(ctx context.Context) ([]domain.Invoice, error)
}
