package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/salesai/dashboard-system/internal/api/metrics"
	"github.com/salesai/dashboard-system/internal/core/domain"
	"github.com/salesai/dashboard-system/internal/core/ports"
)

// PredictionHandler serves the inference endpoint.
type PredictionHandler struct {
	service ports.PredictionService
}

func NewPredictionHandler(service ports.PredictionService) *PredictionHandler {
	return &PredictionHandler{service: service}
}

type predictRequest struct {
	UserID     string  `json:"user_id" validate:"required"`
	Quantity   float64 `json:"quantity" validate:"required,gt=0"`
	SalesPrice float64 `json:"sales_price" validate:"gte=0"`
}

type predictResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message,omitempty"`
	Prediction   int    `json:"prediction"`
	Label        string `json:"label,omitempty"`
	ModelVersion string `json:"model_version,omitempty"`
}

// Predict scores an order with the latest trained model.
//
// @Summary      Score an order
// @Tags         predictions
// @Accept       json
// @Produce      json
// @Param        body  body      predictRequest  true  "Order features"
// @Success      200   {object}  predictResponse
// @Failure      400   {object}  predictResponse
// @Failure      503   {object}  predictResponse
// @Router       /predict [post]
func (h *PredictionHandler) Predict(c echo.Context) error {
	var req predictRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, predictResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, predictResponse{Message: err.Error()})
	}

	result, err := h.service.Predict(c.Request().Context(), domain.PredictionInput{
		UserID:     req.UserID,
		Quantity:   req.Quantity,
		SalesPrice: req.SalesPrice,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoModel):
			return c.JSON(http.StatusServiceUnavailable, predictResponse{Message: "No trained model available. Train a model first."})
		case errors.Is(err, domain.ErrInvalidPredictionInput):
			return c.JSON(http.StatusBadRequest, predictResponse{Message: "quantity must be positive and sales price non-negative"})
		}
		return err
	}

	metrics.PredictionsTotal.WithLabelValues(result.Label).Inc()
	return c.JSON(http.StatusOK, predictResponse{
		Success:      true,
		Prediction:   result.Prediction,
		Label:        result.Label,
		ModelVersion: result.ModelVersion,
	})
}

type predictionReportResponse struct {
	Success        bool                         `json:"success"`
	ByModelVersion []domain.ModelVersionCount   `json:"by_model_version"`
	TopUsers       []domain.UserPredictionCount `json:"top_users"`
}

// Report serves the prediction-log aggregations.
//
// @Summary      Prediction analytics
// @Tags         predictions
// @Produce      json
// @Success      200  {object}  predictionReportResponse
// @Failure      500  {object}  map[string]string
// @Router       /aggregations/predictions [get]
func (h *PredictionHandler) Report(c echo.Context) error {
	report, err := h.service.Report(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, predictionReportResponse{
		Success:        true,
		ByModelVersion: report.ByModelVersion,
		TopUsers:       report.TopUsers,
	})
}
