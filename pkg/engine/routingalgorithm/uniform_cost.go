package routingalgorithm

import (
	"context"
	"errors"

	"lintang/osmroute/pkg/datastructure"
)

// FastestPathUniformCost returns the path of minimum travel time from -> to, each edge costing
// its great-circle length divided by its speed limit. It fails with ErrInconsistentEdge when
// an edge it relaxes has no speed.
func (rt *RouteAlgorithm) FastestPathUniformCost(ctx context.Context, from, to datastructure.NodeID) (datastructure.Route, bool, error) {
	if rt.speeds == nil {
		return datastructure.Route{}, false, errors.New("fastest path needs a speed lookup")
	}
	if from == to {
		route, err := rt.singleNodeRoute(from)
		return route, err == nil, err
	}

	nodes, found, err := rt.bestFirstSearch(ctx, from, to,
		func(from, to datastructure.NodeID, fromLoc, toLoc datastructure.Coordinate) (float64, error) {
			return edgeTravelTime(rt.speeds, from, to, fromLoc, toLoc)
		},
		func(datastructure.Coordinate) float64 {
			return 0
		},
	)
	if err != nil || !found {
		return datastructure.Route{}, false, err
	}

	route, err := rt.newRoute(nodes)
	if err != nil {
		return datastructure.Route{}, false, err
	}
	return route, true, nil
}
