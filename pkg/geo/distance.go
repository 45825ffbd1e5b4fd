package geo

import "math"

const (
	earthRadiusKM    = 6371.0
	EarthRadiusMiles = 3959.0
	metersPerMile    = 1609.344
)

func havFunction(angleRad float64) float64 {
	return (1 - math.Cos(angleRad)) / 2.0
}

func DegreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

func RadiansToDegree(rad float64) float64 {
	return rad * (180.0 / math.Pi)
}

// CalculateHaversineDistance returns the great-circle distance in km.
func CalculateHaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	return earthRadiusKM * haversineAngle(latOne, longOne, latTwo, longTwo)
}

// HaversineMiles returns the great-circle distance in miles.
func HaversineMiles(latOne, longOne, latTwo, longTwo float64) float64 {
	return EarthRadiusMiles * haversineAngle(latOne, longOne, latTwo, longTwo)
}

func haversineAngle(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = DegreeToRadians(latOne)
	longOne = DegreeToRadians(longOne)
	latTwo = DegreeToRadians(latTwo)
	longTwo = DegreeToRadians(longTwo)

	a := havFunction(latOne-latTwo) + math.Cos(latOne)*math.Cos(latTwo)*havFunction(longOne-longTwo)
	return 2.0 * math.Asin(math.Sqrt(math.Min(1, a)))
}

func MilesToMeters(miles float64) float64 {
	return miles * metersPerMile
}

func MetersToMiles(meters float64) float64 {
	return meters / metersPerMile
}
