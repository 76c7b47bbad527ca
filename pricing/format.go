package pricing

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySuffix follows every formatted price.
const CurrencySuffix = "VNĐ"

var (
	perCent = decimal.NewFromInt(10_000)
	printer = message.NewPrinter(language.English)
)

// ToPrice converts a raw prediction in millions into whole currency units.
// The prediction is rounded to hundredths half-to-even on the scaled float, so
// 0.125 becomes 120,000 and 1.005 (stored as 1.00499...) becomes 1,000,000.
func ToPrice(raw float64) decimal.Decimal {
	cents := math.RoundToEven(raw * 100)
	return decimal.NewFromFloat(cents).Mul(perCent)
}

// FormatPrice renders a raw prediction as e.g. "2,500,000 VNĐ".
func FormatPrice(raw float64) string {
	return FormatAmount(ToPrice(raw))
}

// FormatAmount renders whole currency units with thousands separators.
func FormatAmount(price decimal.Decimal) string {
	return printer.Sprintf("%d %s", price.IntPart(), CurrencySuffix)
}
