package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/salesai/dashboard-system/internal/core/domain"
	"github.com/salesai/dashboard-system/internal/core/ports"
)

// topUsersLimit caps the most-active-users ranking in the report.
const topUsersLimit = 10

// PredictionService scores inference requests with the latest trained model
// and logs each outcome.
type PredictionService struct {
	models      ports.ModelRepository
	predictions ports.PredictionRepository
	logger      zerolog.Logger
}

func NewPredictionService(models ports.ModelRepository, predictions ports.PredictionRepository, logger zerolog.Logger) *PredictionService {
	return &PredictionService{models: models, predictions: predictions, logger: logger}
}

func (s *PredictionService) Predict(ctx context.Context, in domain.PredictionInput) (*domain.PredictionResult, error) {
	if in.Quantity <= 0 || in.SalesPrice < 0 {
		return nil, domain.ErrInvalidPredictionInput
	}

	model, err := s.models.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("predict: load model: %w", err)
	}

	prediction := model.Predict(in.Quantity, in.SalesPrice)

	record := &domain.Prediction{
		UserID: in.UserID,
		Input: domain.PredictionData{
			Quantity:   in.Quantity,
			SalesPrice: in.SalesPrice,
		},
		Prediction:   prediction,
		ModelVersion: model.Version,
		CreatedAt:    time.Now().UTC(),
	}
	// Audit insert is non-fatal on failure.
	if err := s.predictions.Insert(ctx, record); err != nil {
		s.logger.Warn().Err(err).Str("user_id", in.UserID).Msg("failed to log prediction")
	}

	s.logger.Info().
		Str("user_id", in.UserID).
		Int("prediction", prediction).
		Str("model_version", model.Version).
		Msg("prediction served")

	return &domain.PredictionResult{
		Prediction:   prediction,
		Label:        domain.LabelFor(prediction),
		ModelVersion: model.Version,
	}, nil
}

// Report aggregates the prediction log: counts per model version and the
// users with the most predictions. An empty log yields empty groupings.
func (s *PredictionService) Report(ctx context.Context) (*domain.PredictionReport, error) {
	byVersion, err := s.predictions.CountByModelVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("prediction report: group by model version: %w", err)
	}

	topUsers, err := s.predictions.TopUsers(ctx, topUsersLimit)
	if err != nil {
		return nil, fmt.Errorf("prediction report: rank users: %w", err)
	}

	return &domain.PredictionReport{
		ByModelVersion: byVersion,
		TopUsers:       topUsers,
	}, nil
}
