package geo

import (
	"math"
	"testing"

	"lintang/osmroute/pkg/datastructure"

	"github.com/stretchr/testify/assert"
)

func TestGreatCircleDistance(t *testing.T) {
	cases := []struct {
		name string
		a, b datastructure.Coordinate
	}{
		{
			name: "one degree of longitude on the equator",
			a:    datastructure.NewCoordinate(0, 0),
			b:    datastructure.NewCoordinate(0, 1),
		},
		{
			name: "yogyakarta",
			a:    datastructure.NewCoordinate(-7.759889166547908, 110.36689459108496),
			b:    datastructure.NewCoordinate(-7.760335932763678, 110.37671195413539),
		},
		{
			name: "boston",
			a:    datastructure.NewCoordinate(42.3601, -71.0589),
			b:    datastructure.NewCoordinate(42.3736, -71.1097),
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got := GreatCircleDistance(tt.a, tt.b)
			want := HaversineMiles(tt.a.Lat, tt.a.Lon, tt.b.Lat, tt.b.Lon)
			assert.InDelta(t, want, got, 1e-6)
			assert.InDelta(t, got, GreatCircleDistance(tt.b, tt.a), 1e-9)
		})
	}

	assert.InDelta(t, EarthRadiusMiles*math.Pi/180, GreatCircleDistance(datastructure.NewCoordinate(0, 0), datastructure.NewCoordinate(0, 1)), 1e-6)
	assert.Equal(t, 0.0, GreatCircleDistance(datastructure.NewCoordinate(10, 10), datastructure.NewCoordinate(10, 10)))
}

func TestNewBoundingBox(t *testing.T) {
	center := datastructure.NewCoordinate(42.36, -71.06)
	box, ok := NewBoundingBox(center, 2)
	assert.True(t, ok)
	assert.True(t, box.Contains(center))

	// points exactly radius away along each axis are inside the box
	north := datastructure.NewCoordinate(center.Lat+RadiansToDegree(2/EarthRadiusMiles)*0.999, center.Lon)
	assert.True(t, box.Contains(north))
	assert.False(t, box.Contains(datastructure.NewCoordinate(center.Lat+0.1, center.Lon)))

	for _, lonOffset := range []float64{-0.03, 0.03} {
		p := datastructure.NewCoordinate(center.Lat, center.Lon+lonOffset)
		if GreatCircleDistance(center, p) <= 2 {
			assert.True(t, box.Contains(p))
		}
	}

	_, ok = NewBoundingBox(datastructure.NewCoordinate(89.99, 0), 5)
	assert.False(t, ok)

	_, ok = NewBoundingBox(datastructure.NewCoordinate(0, 179.999), 5)
	assert.False(t, ok)
}

func TestPointLinePerpendicularDistance(t *testing.T) {
	a := datastructure.NewCoordinate(0, 0)
	b := datastructure.NewCoordinate(0, 1)
	p := datastructure.NewCoordinate(0.001, 0.5)

	got := PointLinePerpendicularDistance(a, b, p)
	want := MilesToMeters(GreatCircleDistance(datastructure.NewCoordinate(0, 0.5), p))
	assert.InDelta(t, want, got, 0.01)
}
