package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/salesai/dashboard-system/internal/api/metrics"
	"github.com/salesai/dashboard-system/internal/core/domain"
	"github.com/salesai/dashboard-system/internal/core/ports"
)

// DatasetHandler serves dataset lifecycle and health endpoints.
type DatasetHandler struct {
	service ports.DatasetService
}

func NewDatasetHandler(service ports.DatasetService) *DatasetHandler {
	return &DatasetHandler{service: service}
}

type loadDatasetResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	// Count is the dataset size after the load, not the rows added by it;
	// loading an already populated collection reports the existing size.
	Count int64 `json:"count"`
}

type trainModelResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message,omitempty"`
	ModelsTotal int64  `json:"models_total"`
}

// LoadDataset seeds the dataset collection with the bundled sample data.
// Loading an already populated collection is a no-op reported as success.
//
// @Summary      Load the sample dataset
// @Tags         dataset
// @Produce      json
// @Success      200  {object}  loadDatasetResponse
// @Failure      500  {object}  map[string]string
// @Router       /load-dataset [post]
func (h *DatasetHandler) LoadDataset(c echo.Context) error {
	count, err := h.service.LoadSample(c.Request().Context())
	if err != nil {
		return err
	}

	metrics.DatasetLoadsTotal.Inc()
	return c.JSON(http.StatusOK, loadDatasetResponse{
		Success: true,
		Message: "Sample dataset loaded",
		Count:   count,
	})
}

// TrainModel fits and stores a model from the current dataset.
//
// @Summary      Train a prediction model
// @Tags         dataset
// @Produce      json
// @Success      200  {object}  trainModelResponse
// @Failure      409  {object}  trainModelResponse
// @Failure      500  {object}  map[string]string
// @Router       /train-model [post]
func (h *DatasetHandler) TrainModel(c echo.Context) error {
	total, err := h.service.Train(c.Request().Context())
	if err != nil {
		if errors.Is(err, domain.ErrEmptyDataset) {
			return c.JSON(http.StatusConflict, trainModelResponse{Message: "Dataset is empty. Load data before training."})
		}
		return err
	}

	metrics.ModelsTrainedTotal.Inc()
	return c.JSON(http.StatusOK, trainModelResponse{
		Success:     true,
		Message:     "Model trained",
		ModelsTotal: total,
	})
}

// Health reports backend and MongoDB status with collection counts.
//
// @Summary      Backend health
// @Tags         health
// @Produce      json
// @Success      200  {object}  domain.HealthReport
// @Router       /health [get]
func (h *DatasetHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.Health(c.Request().Context()))
}
