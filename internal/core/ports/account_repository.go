package ports

import (
	"context"

	"github.com/salesai/dashboard-system/internal/core/domain"
)

// AccountRepository removes a user together with their dependent records.
// Implementations must delete atomically: either both the user and all of
// their predictions are gone, or neither is.
type AccountRepository interface {
	DeleteUserAndPredictions(ctx context.Context, userID string) (*domain.DeleteResult, error)
}
