package service

import "math"

// RoundingPrecision is the factor used when rounding monetary values for
// API responses (100 = two decimal places).
const RoundingPrecision = 100

// round rounds a float64 value to two decimal places using the package
// RoundingPrecision constant. Used throughout the service layer to keep
// monetary values in API responses consistent.
func round(value float64) float64 {
	return math.Round(value*RoundingPrecision) / RoundingPrecision
}
