package pricing

import (
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Quote derives the charge for a single seat from the show's base price and
// the seat type's percentage premium:
//
//	amount = basePrice * (1 + premiumPercent/100)
//
// The result is rounded half-up to the smallest currency unit. Rounding is
// applied here, once per seat, so that per-seat receipts sum exactly to the
// charged total.
func Quote(basePrice, premiumPercent decimal.Decimal) decimal.Decimal {
	multiplier := decimal.NewFromInt(1).Add(premiumPercent.Div(oneHundred))

	// decimal.Round rounds half away from zero, which is half-up for the
	// non-negative amounts possible here.
	return basePrice.Mul(multiplier).Round(2)
}

// Total sums already-rounded per-seat amounts.
func Total(amounts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(amount)
	}

	return total
}
