package types

import "math"

// Round2 rounds an amount to the currency's two minor-unit decimals using
// half-up rounding. It is applied exactly once, when an order total is
// computed; stored totals are never re-rounded or recomputed.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// LineAmount returns quantity times unit price, unrounded. Rounding happens
// on the order total, not per line.
func LineAmount(quantity int, unitPrice float64) float64 {
	return float64(quantity) * unitPrice
}
