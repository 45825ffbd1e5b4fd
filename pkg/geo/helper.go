package geo

import (
	"lintang/osmroute/pkg/datastructure"
)

const (
	DOUGLAS_PEUCKER_THRESHOLDS = 7.0 // 7 meter
)

type segment struct {
	first, last int
}

// RamerDouglasPeucker drops every point closer than thresholdMeters to the simplified line.
// The first and last points are always kept.
// https://cartography-playground.gitlab.io/playgrounds/douglas-peucker-algorithm/
func RamerDouglasPeucker(coords []datastructure.Coordinate, thresholdMeters float64) []datastructure.Coordinate {
	if len(coords) <= 2 {
		return coords
	}

	keep := make([]bool, len(coords))
	keep[0], keep[len(coords)-1] = true, true

	pending := []segment{{0, len(coords) - 1}}
	for len(pending) > 0 {
		seg := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		farthest, farthestDist := farthestFromSegment(coords, seg)
		if farthestDist <= thresholdMeters {
			continue
		}
		keep[farthest] = true
		pending = append(pending, segment{seg.first, farthest}, segment{farthest, seg.last})
	}

	simplified := make([]datastructure.Coordinate, 0, len(coords))
	for i, c := range coords {
		if keep[i] {
			simplified = append(simplified, c)
		}
	}
	return simplified
}

// farthestFromSegment returns the interior point of seg farthest from the line seg.first-seg.last.
func farthestFromSegment(coords []datastructure.Coordinate, seg segment) (int, float64) {
	farthest, maxDist := seg.first, 0.0
	for i := seg.first + 1; i < seg.last; i++ {
		if d := PointLinePerpendicularDistance(coords[seg.first], coords[seg.last], coords[i]); d > maxDist {
			farthest, maxDist = i, d
		}
	}
	return farthest, maxDist
}
