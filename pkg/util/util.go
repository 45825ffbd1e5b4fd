package util

import (
	"math"
)

// RoundFloat rounds val to precision decimal places.
func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

// HoursToMinutes converts a travel time in hours, rounded to precision decimal places.
func HoursToMinutes(hours float64, precision uint) float64 {
	return RoundFloat(hours*60, precision)
}
