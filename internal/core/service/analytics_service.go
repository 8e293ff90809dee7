package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/salesai/dashboard-system/internal/core/domain"
	"github.com/salesai/dashboard-system/internal/core/ports"
)

const (
	topItemsLimit      = 10
	topCategoriesLimit = 8
)

// ChartRenderer abstracts the image backend. Each method returns a
// base64-encoded PNG.
type ChartRenderer interface {
	ItemSalesBar(items []domain.ItemTotal) (string, error)
	AmountHistogram(amounts []float64) (string, error)
	CategoryPie(categories []domain.CategoryCount) (string, error)
}

// AnalyticsService computes dashboard statistics and renders charts.
type AnalyticsService struct {
	repo   ports.DatasetRepository
	charts ChartRenderer
	logger zerolog.Logger
}

func NewAnalyticsService(repo ports.DatasetRepository, charts ChartRenderer, logger zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{repo: repo, charts: charts, logger: logger}
}

// Dashboard builds the full dashboard payload. An empty dataset yields zero
// statistics plus an advisory message; a chart that fails to render is left
// nil without failing the rest of the payload.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*domain.DashboardData, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: count dataset: %w", err)
	}

	data := &domain.DashboardData{
		Stats: domain.DashboardStats{CategoryFrequencies: map[string]int64{}},
	}
	if count == 0 {
		data.Message = "Dataset collection is empty. Use /load-dataset to load data."
		return data, nil
	}

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: aggregate stats: %w", err)
	}
	if stats.CategoryFrequencies == nil {
		stats.CategoryFrequencies = map[string]int64{}
	}
	data.Stats = stats

	data.Charts.ItemSales = s.renderItemSales(ctx)
	data.Charts.AmountDistribution = s.renderAmountDistribution(ctx)
	data.Charts.PieChart = s.renderCategoryPie(stats.CategoryFrequencies)

	return data, nil
}

func (s *AnalyticsService) renderItemSales(ctx context.Context) *string {
	items, err := s.repo.TopItemTotals(ctx, topItemsLimit)
	if err != nil {
		s.logger.Warn().Err(err).Str("chart", domain.ChartItemSales).Msg("chart data fetch failed")
		return nil
	}
	if len(items) == 0 {
		return nil
	}
	png, err := s.charts.ItemSalesBar(items)
	if err != nil {
		s.logger.Warn().Err(err).Str("chart", domain.ChartItemSales).Msg("chart render failed")
		return nil
	}
	return &png
}

func (s *AnalyticsService) renderAmountDistribution(ctx context.Context) *string {
	amounts, err := s.repo.Amounts(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str("chart", domain.ChartAmountDistribution).Msg("chart data fetch failed")
		return nil
	}
	if len(amounts) == 0 {
		return nil
	}
	png, err := s.charts.AmountHistogram(amounts)
	if err != nil {
		s.logger.Warn().Err(err).Str("chart", domain.ChartAmountDistribution).Msg("chart render failed")
		return nil
	}
	return &png
}

func (s *AnalyticsService) renderCategoryPie(freq map[string]int64) *string {
	top := domain.TopCategories(freq, topCategoriesLimit)
	if len(top) == 0 {
		return nil
	}
	png, err := s.charts.CategoryPie(top)
	if err != nil {
		s.logger.Warn().Err(err).Str("chart", domain.ChartPie).Msg("chart render failed")
		return nil
	}
	return &png
}
