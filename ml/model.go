package ml

import "errors"

var (
	ErrUnsupportedModel = errors.New("unsupported model type")
	ErrModelNotLoaded   = errors.New("model not loaded")
	ErrSchemaMismatch   = errors.New("feature schema mismatch")
	ErrInvalidTree      = errors.New("invalid tree layout")
)

// Regressor is a deserialized model that maps a matrix of feature rows to one
// prediction per row.
type Regressor interface {
	Predict(rows [][]float64) ([]float64, error)
}

// SchemaAware is implemented by artifacts that record the column order they were
// trained on.
type SchemaAware interface {
	FeatureNames() []string
}
