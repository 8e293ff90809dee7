package ports

import (
	"context"

	"github.com/salesai/dashboard-system/internal/core/domain"
)

type PredictionService interface {
	// Predict validates the input, scores it with the latest model, and
	// logs the outcome in the predictions collection.
	Predict(ctx context.Context, in domain.PredictionInput) (*domain.PredictionResult, error)

	// Report aggregates the prediction log by model version and by user.
	Report(ctx context.Context) (*domain.PredictionReport, error)
}
