package utils

import "math"

// Cents converts a decimal currency amount to int64 cents.
func Cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// Decimal converts int64 cents to a decimal currency amount for display.
func Decimal(cents int64) float64 {
	return float64(cents) / 100
}

// Round2 rounds x to 2 decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
