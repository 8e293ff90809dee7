package domain

import "time"

const (
	LabelGood = "good"
	LabelBad  = "bad"
)

// LabelFor maps a raw model output to its user-facing label.
func LabelFor(prediction int) string {
	if prediction == 1 {
		return LabelGood
	}
	return LabelBad
}

// PredictionInput is a single inference request.
type PredictionInput struct {
	UserID     string  `json:"user_id"`
	Quantity   float64 `json:"quantity"`
	SalesPrice float64 `json:"sales_price"`
}

// Prediction is a logged inference result.
type Prediction struct {
	ID           string         `json:"id,omitempty" bson:"_id,omitempty"`
	UserID       string         `json:"user_id" bson:"user_id"`
	Input        PredictionData `json:"input_data" bson:"input_data"`
	Prediction   int            `json:"prediction" bson:"prediction"`
	ModelVersion string         `json:"model_version" bson:"model_version"`
	CreatedAt    time.Time      `json:"created_at" bson:"created_at"`
}

// PredictionResult is what a completed inference returns to the caller.
type PredictionResult struct {
	Prediction   int    `json:"prediction"`
	Label        string `json:"label"`
	ModelVersion string `json:"model_version"`
}

// PredictionData captures the feature values an inference ran on.
type PredictionData struct {
	Quantity   float64 `json:"quantity" bson:"quantity"`
	SalesPrice float64 `json:"sales_price" bson:"sales_price"`
}

// ModelVersionCount is one row of the by-model-version grouping.
type ModelVersionCount struct {
	ModelVersion string `json:"model_version" bson:"_id"`
	Count        int64  `json:"count" bson:"count"`
}

// UserPredictionCount is one row of the most-active-users ranking.
type UserPredictionCount struct {
	UserID string `json:"user_id" bson:"_id"`
	Count  int64  `json:"count" bson:"count"`
}

// PredictionReport aggregates the logged predictions: how many each model
// version served, and which users predict the most.
type PredictionReport struct {
	ByModelVersion []ModelVersionCount   `json:"by_model_version"`
	TopUsers       []UserPredictionCount `json:"top_users"`
}

// Model is a trained two-feature linear scorer. An invoice scores as
// prediction 1 ("good") when
//
//	quantity*WeightQuantity + sales_price*WeightSalesPrice + Bias > 0
type Model struct {
	ID               string    `json:"id,omitempty" bson:"_id,omitempty"`
	Version          string    `json:"version" bson:"version"`
	WeightQuantity   float64   `json:"weight_quantity" bson:"weight_quantity"`
	WeightSalesPrice float64   `json:"weight_sales_price" bson:"weight_sales_price"`
	Bias             float64   `json:"bias" bson:"bias"`
	SampleCount      int64     `json:"sample_count" bson:"sample_count"`
	TrainedAt        time.Time `json:"trained_at" bson:"trained_at"`
}

// Predict scores a single (quantity, sales_price) pair.
func (m *Model) Predict(quantity, salesPrice float64) int {
	if quantity*m.WeightQuantity+salesPrice*m.WeightSalesPrice+m.Bias > 0 {
		return 1
	}
	return 0
}
