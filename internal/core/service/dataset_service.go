package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/salesai/dashboard-system/internal/core/domain"
	"github.com/salesai/dashboard-system/internal/core/ports"
)

const modelVersion = "1.0"

// SampleSource provides the bundled sample dataset.
type SampleSource interface {
	Invoices() ([]domain.Invoice, error)
}

// Pinger reports backend storage connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DatasetService owns dataset seeding, model training, and health checks.
type DatasetService struct {
	dataset ports.DatasetRepository
	models  ports.ModelRepository
	sample  SampleSource
	pinger  Pinger
	logger  zerolog.Logger
}

func NewDatasetService(
	dataset ports.DatasetRepository,
	models ports.ModelRepository,
	sample SampleSource,
	pinger Pinger,
	logger zerolog.Logger,
) *DatasetService {
	return &DatasetService{
		dataset: dataset,
		models:  models,
		sample:  sample,
		pinger:  pinger,
		logger:  logger,
	}
}

// LoadSample seeds the dataset collection from the bundled sample data when
// it is empty. Idempotent: a populated collection is left untouched.
func (s *DatasetService) LoadSample(ctx context.Context) (int64, error) {
	count, err := s.dataset.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("load dataset: count: %w", err)
	}
	if count > 0 {
		return count, nil
	}

	invoices, err := s.sample.Invoices()
	if err != nil {
		return 0, fmt.Errorf("load dataset: read sample: %w", err)
	}
	if err := s.dataset.InsertBatch(ctx, invoices); err != nil {
		return 0, fmt.Errorf("load dataset: insert: %w", err)
	}

	s.logger.Info().Int("records", len(invoices)).Msg("sample dataset loaded")
	return s.dataset.Count(ctx)
}

// Train fits a two-feature linear scorer on the dataset. The label splits
// invoices at the median amount (high-value vs low-value), and the scorer is
// the difference-of-class-means discriminant over (quantity, sales_price).
func (s *DatasetService) Train(ctx context.Context) (int64, error) {
	if _, err := s.LoadSample(ctx); err != nil {
		return 0, err
	}

	invoices, err := s.dataset.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("train: fetch dataset: %w", err)
	}
	if len(invoices) == 0 {
		return 0, domain.ErrEmptyDataset
	}

	model := fitModel(invoices)
	model.Version = modelVersion
	model.SampleCount = int64(len(invoices))
	model.TrainedAt = time.Now().UTC()

	if err := s.models.Save(ctx, model); err != nil {
		return 0, fmt.Errorf("train: save model: %w", err)
	}

	s.logger.Info().
		Int64("samples", model.SampleCount).
		Str("version", model.Version).
		Msg("model trained")

	return s.models.Count(ctx)
}

// Health pings storage and reports collection counts. Never returns an
// error: failures are folded into the report.
func (s *DatasetService) Health(ctx context.Context) *domain.HealthReport {
	if err := s.pinger.Ping(ctx); err != nil {
		return &domain.HealthReport{
			Status:  domain.HealthStatusUnhealthy,
			MongoDB: domain.MongoDisconnected,
			Error:   err.Error(),
		}
	}

	report := &domain.HealthReport{
		Status:  domain.HealthStatusHealthy,
		MongoDB: domain.MongoConnected,
	}
	if n, err := s.dataset.Count(ctx); err == nil {
		report.DatasetCount = n
	}
	if n, err := s.models.Count(ctx); err == nil {
		report.ModelCount = n
	}
	return report
}

func fitModel(invoices []domain.Invoice) *domain.Model {
	amounts := make([]float64, len(invoices))
	for i, inv := range invoices {
		amount := inv.Amount
		if amount == 0 {
			amount = inv.Quantity * inv.SalesPrice
		}
		amounts[i] = amount
	}
	median := medianOf(amounts)

	var goodQty, goodPrice, badQty, badPrice float64
	var goodN, badN float64
	for i, inv := range invoices {
		if amounts[i] > median {
			goodQty += inv.Quantity
			goodPrice += inv.SalesPrice
			goodN++
		} else {
			badQty += inv.Quantity
			badPrice += inv.SalesPrice
			badN++
		}
	}
	// Degenerate split: score everything as low-value.
	if goodN == 0 || badN == 0 {
		return &domain.Model{Bias: -1}
	}

	goodQty /= goodN
	goodPrice /= goodN
	badQty /= badN
	badPrice /= badN

	wq := goodQty - badQty
	wp := goodPrice - badPrice
	// Bias places the decision boundary at the midpoint of the class means.
	bias := -(wq*(goodQty+badQty)/2 + wp*(goodPrice+badPrice)/2)

	return &domain.Model{
		WeightQuantity:   wq,
		WeightSalesPrice: wp,
		Bias:             bias,
	}
}

func medianOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
