package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"aptprice/ml"
)

// ErrPredictionNotPossible is returned when the model answers with a negative price.
var ErrPredictionNotPossible = errors.New("prediction not possible")

// MsgPredictionNotPossible is shown to the user instead of a negative price.
const MsgPredictionNotPossible = "Không thể dự đoán giá cho căn hộ này"

// Estimate is one served prediction. Price and Display are empty when the
// prediction was negative.
type Estimate struct {
	Listing Listing         `json:"listing"`
	Raw     float64         `json:"raw"`
	Price   decimal.Decimal `json:"price"`
	Display string          `json:"display"`
}

// Estimator turns listings into formatted prices using a loaded model. It holds
// no mutable state and is safe for concurrent use.
type Estimator struct {
	model ml.Regressor
}

// NewEstimator wraps a loaded model.
func NewEstimator(model ml.Regressor) *Estimator {
	return &Estimator{model: model}
}

// Estimate validates the listing, runs the model on a single-row matrix and
// formats the result. Negative predictions yield ErrPredictionNotPossible.
func (e *Estimator) Estimate(ctx context.Context, listing Listing) (Estimate, error) {
	if e == nil || e.model == nil {
		return Estimate{}, ml.ErrModelNotLoaded
	}
	if err := listing.Validate(); err != nil {
		return Estimate{}, err
	}
	if err := ctx.Err(); err != nil {
		return Estimate{}, err
	}

	prediction, err := e.model.Predict([][]float64{EncodeFeatures(listing)})
	if err != nil {
		return Estimate{}, fmt.Errorf("predict: %w", err)
	}
	if len(prediction) == 0 {
		return Estimate{}, errors.New("predict: model returned no values")
	}

	raw := prediction[0]
	result := Estimate{Listing: listing, Raw: raw}
	if raw < 0 {
		return result, ErrPredictionNotPossible
	}
	result.Price = ToPrice(raw)
	result.Display = FormatAmount(result.Price)
	return result, nil
}
