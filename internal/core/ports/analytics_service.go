package ports

import (
	"context"

	"github.com/salesai/dashboard-system/internal/core/domain"
)

// AnalyticsService produces the dashboard payload: aggregate statistics
// plus server-rendered charts. An empty dataset is not an error; the
// returned data carries a message and nil chart slots instead.
type AnalyticsService interface {
	Dashboard(ctx context.Context) (*domain.DashboardData, error)
}
