// Package pricing turns apartment form values into model features and formats
// the model's answer for display.
package pricing

import (
	"golang.org/x/text/unicode/norm"
)

// TransactionType is the kind of deal being priced. Only ForSale has a model.
type TransactionType string

const ForSale TransactionType = "For sale"

// Input bounds enforced by the form.
const (
	MinArea    = 20
	MaxArea    = 250
	MinBedroom = 1
	MaxBedroom = 6
	MinFloor   = 1
	MaxFloor   = 5

	DefaultArea    = 50
	DefaultBedroom = 2
	DefaultFloor   = 2
)

// districts is in the column order the model was trained on.
var districts = [...]string{
	"District 1",
	"District 10",
	"District 11",
	"District 12",
	"District 2",
	"District 3",
	"District 4",
	"District 5",
	"District 6",
	"District 7",
	"District 8",
	"District 9",
	"Bình Chánh District",
	"Bình Thạnh District",
	"Bình Tân District",
	"Gò Vấp District",
	"Hóc Môn District",
	"Nhà Bè District",
	"Phú Nhuận District",
	"Thủ Đức District",
	"Tân Bình District",
	"Tân Phú District",
}

var districtIndex = func() map[string]int {
	index := make(map[string]int, len(districts))
	for i, name := range districts {
		index[norm.NFC.String(name)] = i
	}
	return index
}()

var baseFeatures = [...]string{"Area", "Bedroom", "Floor"}

// FeatureWidth is the length of every encoded feature vector.
const FeatureWidth = len(baseFeatures) + len(districts)

// Districts returns a copy of the catalog.
func Districts() []string {
	return append([]string(nil), districts[:]...)
}

// TransactionTypes lists the types offered by the form.
func TransactionTypes() []TransactionType {
	return []TransactionType{ForSale}
}

// DistrictIndex finds a district's slot. Names are compared in NFC so that
// decomposed Vietnamese diacritics from some browsers still match.
func DistrictIndex(name string) (int, bool) {
	idx, ok := districtIndex[norm.NFC.String(name)]
	return idx, ok
}

// FeatureNames is the column order shared by EncodeFeatures and the model artifact.
func FeatureNames() []string {
	names := make([]string, 0, FeatureWidth)
	names = append(names, baseFeatures[:]...)
	names = append(names, districts[:]...)
	return names
}
