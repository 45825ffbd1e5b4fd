package geo

import (
	"math"

	"lintang/osmroute/pkg/datastructure"

	"github.com/golang/geo/s2"
)

// GreatCircleDistance returns the distance in miles between a and b on a sphere of radius EarthRadiusMiles.
func GreatCircleDistance(a, b datastructure.Coordinate) float64 {
	angle := s2.LatLngFromDegrees(a.Lat, a.Lon).Distance(s2.LatLngFromDegrees(b.Lat, b.Lon))
	return angle.Radians() * EarthRadiusMiles
}

// BoundingBox contains every point within radiusMiles of center.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// NewBoundingBox returns the lat/lon box around center covering radiusMiles.
// ok is false when the box would contain a pole or cross the antimeridian, callers should
// fall back to a full scan in that case.
func NewBoundingBox(center datastructure.Coordinate, radiusMiles float64) (BoundingBox, bool) {
	angular := radiusMiles / EarthRadiusMiles
	if angular >= math.Pi/2 {
		return BoundingBox{}, false
	}
	latRad := DegreeToRadians(center.Lat)
	minLat := latRad - angular
	maxLat := latRad + angular
	if minLat <= -math.Pi/2 || maxLat >= math.Pi/2 {
		return BoundingBox{}, false
	}

	deltaLon := math.Asin(math.Sin(angular) / math.Cos(latRad))
	lonRad := DegreeToRadians(center.Lon)
	minLon := lonRad - deltaLon
	maxLon := lonRad + deltaLon
	if minLon < -math.Pi || maxLon > math.Pi {
		return BoundingBox{}, false
	}

	return BoundingBox{
		MinLat: RadiansToDegree(minLat),
		MaxLat: RadiansToDegree(maxLat),
		MinLon: RadiansToDegree(minLon),
		MaxLon: RadiansToDegree(maxLon),
	}, true
}

func (b BoundingBox) Contains(c datastructure.Coordinate) bool {
	return c.Lat >= b.MinLat && c.Lat <= b.MaxLat && c.Lon >= b.MinLon && c.Lon <= b.MaxLon
}

// PointLinePerpendicularDistance returns the distance in meters from p to the great-circle segment (a, b).
func PointLinePerpendicularDistance(a, b, p datastructure.Coordinate) float64 {
	aS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(a.Lat, a.Lon))
	bS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(b.Lat, b.Lon))
	pS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat, p.Lon))
	angle := s2.DistanceFromSegment(pS2, aS2, bS2)
	return MilesToMeters(angle.Radians() * EarthRadiusMiles)
}
