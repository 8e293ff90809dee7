// Package flow implements the webapp's user-initiated flows: submitting
// a prediction and deleting the account. Each flow returns an Outcome
// value the handler turns into a redirect or an inline message.
package flow

import (
	"context"
	"strconv"

	"github.com/salesai/dashboard-system/internal/core/domain"
	"github.com/salesai/dashboard-system/internal/webapp/apiclient"
	"github.com/salesai/dashboard-system/pkg/logger"
)

// Result page paths, selected by the returned label.
const (
	ResultGoodPath = "/predict/result/good"
	ResultBadPath  = "/predict/result/bad"
)

// Outcome is the handler-facing result of a flow step.
type Outcome struct {
	// Redirect is non-empty when the flow navigates somewhere.
	Redirect string
	// Message is a user-visible inline message when the flow stays put.
	Message string
	// LoginRequired is set when the flow was attempted without a session.
	LoginRequired bool
}

// PredictAPI is the slice of the backend client the predictor uses.
type PredictAPI interface {
	Predict(ctx context.Context, req domain.PredictionInput) (*apiclient.PredictResponse, error)
}

// Predictor submits prediction requests on behalf of the logged-in user.
type Predictor struct {
	api PredictAPI
}

func NewPredictor(api PredictAPI) *Predictor {
	return &Predictor{api: api}
}

// Submit parses the two form fields and posts them with the session's user
// id. Exactly two destinations exist: the "good" result page for the good
// label, the "bad" result page for everything else, unrecognized labels
// included.
func (p *Predictor) Submit(ctx context.Context, record *domain.SessionRecord, quantityField, priceField string) Outcome {
	if record == nil {
		return Outcome{LoginRequired: true}
	}

	quantity, err := strconv.ParseFloat(quantityField, 64)
	if err != nil {
		return Outcome{Message: "Quantity must be a number"}
	}
	salesPrice, err := strconv.ParseFloat(priceField, 64)
	if err != nil {
		return Outcome{Message: "Sales price must be a number"}
	}

	resp, err := p.api.Predict(ctx, domain.PredictionInput{
		UserID:     record.ID,
		Quantity:   quantity,
		SalesPrice: salesPrice,
	})
	if err != nil {
		log := logger.Get()
		log.Error().Err(err).Str("user_id", record.ID).Msg("prediction request failed")
		return Outcome{Message: "Prediction request failed. Please try again."}
	}
	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = "Prediction failed"
		}
		return Outcome{Message: msg}
	}

	if resp.Label == domain.LabelGood {
		return Outcome{Redirect: ResultGoodPath}
	}
	return Outcome{Redirect: ResultBadPath}
}
