package pricing

import (
	"errors"
	"fmt"
)

// ErrInvalidListing wraps every input bound violation.
var ErrInvalidListing = errors.New("invalid listing")

// Listing is one submission of the estimate form.
type Listing struct {
	Type     TransactionType `json:"type"`
	District string          `json:"district"`
	Area     int             `json:"area"`
	Bedroom  int             `json:"bedroom"`
	Floor    int             `json:"floor"`
}

// DefaultListing is the form state before the user touches anything.
func DefaultListing() Listing {
	return Listing{
		Type:     ForSale,
		District: districts[0],
		Area:     DefaultArea,
		Bedroom:  DefaultBedroom,
		Floor:    DefaultFloor,
	}
}

// Validate applies the form bounds and the catalog check.
func (l Listing) Validate() error {
	if l.Type != ForSale {
		return fmt.Errorf("%w: unsupported transaction type %q", ErrInvalidListing, l.Type)
	}
	if _, ok := DistrictIndex(l.District); !ok {
		return fmt.Errorf("%w: unknown district %q", ErrInvalidListing, l.District)
	}
	if l.Area < MinArea || l.Area > MaxArea {
		return fmt.Errorf("%w: area %d outside [%d,%d]", ErrInvalidListing, l.Area, MinArea, MaxArea)
	}
	if l.Bedroom < MinBedroom || l.Bedroom > MaxBedroom {
		return fmt.Errorf("%w: bedroom %d outside [%d,%d]", ErrInvalidListing, l.Bedroom, MinBedroom, MaxBedroom)
	}
	if l.Floor < MinFloor || l.Floor > MaxFloor {
		return fmt.Errorf("%w: floor %d outside [%d,%d]", ErrInvalidListing, l.Floor, MinFloor, MaxFloor)
	}
	return nil
}

// EncodeFeatures builds {Area, Bedroom, Floor, one-hot district}. An unknown
// district leaves every district slot at 0; Validate rejects that case first.
func EncodeFeatures(l Listing) []float64 {
	vector := make([]float64, FeatureWidth)
	vector[0] = float64(l.Area)
	vector[1] = float64(l.Bedroom)
	vector[2] = float64(l.Floor)
	if idx, ok := DistrictIndex(l.District); ok {
		vector[len(baseFeatures)+idx] = 1
	}
	return vector
}
