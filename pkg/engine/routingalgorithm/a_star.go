package routingalgorithm

import (
	"context"

	"lintang/osmroute/pkg/datastructure"
	"lintang/osmroute/pkg/geo"
)

// https://www.cs.princeton.edu/courses/archive/spr06/cos423/Handouts/GH05.pdf

// ShortestPathAStar returns the path of minimum great-circle length from -> to.
// The heuristic is the great-circle distance to the goal, which never overestimates since
// every edge costs its own great-circle length. Speeds are only used for the reported travel
// time, which stays zero when an edge on the path has no speed.
func (rt *RouteAlgorithm) ShortestPathAStar(ctx context.Context, from, to datastructure.NodeID) (datastructure.Route, bool, error) {
	if from == to {
		route, err := rt.singleNodeRoute(from)
		return route, err == nil, err
	}

	goalLoc, _ := rt.g.Location(to)
	nodes, found, err := rt.bestFirstSearch(ctx, from, to,
		func(_, _ datastructure.NodeID, fromLoc, toLoc datastructure.Coordinate) (float64, error) {
			return geo.GreatCircleDistance(fromLoc, toLoc), nil
		},
		func(loc datastructure.Coordinate) float64 {
			return geo.GreatCircleDistance(loc, goalLoc)
		},
	)
	if err != nil || !found {
		return datastructure.Route{}, false, err
	}

	return rt.newDistanceRoute(nodes), true, nil
}
