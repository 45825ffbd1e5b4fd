package datastructure

import "fmt"

// Coordinate is a (latitude, longitude) pair in degrees. It is comparable, so it can be used as a map key.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// 16 byte (128bit)

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

func NewCoordinates(lat, lon []float64) []Coordinate {
	coords := make([]Coordinate, len(lat))
	for i := range lat {
		coords[i] = NewCoordinate(lat[i], lon[i])
	}
	return coords
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%f, %f)", c.Lat, c.Lon)
}

// Route is the result of a single shortest path query.
// Distance in miles, TravelTime in hours.
type Route struct {
	NodeIDs    []NodeID
	Path       []Coordinate
	Distance   float64
	TravelTime float64
}

func NewSingleNodeRoute(id NodeID, loc Coordinate) Route {
	return Route{
		NodeIDs: []NodeID{id},
		Path:    []Coordinate{loc},
	}
}
