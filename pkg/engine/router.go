package engine

import (
	"context"
	"errors"
	"fmt"

	"lintang/osmroute/pkg/datastructure"
)

// ErrNoRouteFound is what callers above the engine report for found == false.
var ErrNoRouteFound = errors.New("no route found")

type Objective int

const (
	ShortestDistance Objective = iota
	FastestTime
)

func (o Objective) String() string {
	switch o {
	case ShortestDistance:
		return "distance"
	case FastestTime:
		return "time"
	default:
		return fmt.Sprintf("Objective(%d)", int(o))
	}
}

func ParseObjective(s string) (Objective, error) {
	switch s {
	case "distance", "shortest", "":
		return ShortestDistance, nil
	case "time", "fastest":
		return FastestTime, nil
	default:
		return 0, fmt.Errorf("unknown objective %q", s)
	}
}

// NearestNode returns the graph node closest to q and its location.
func (h *GraphHandle) NearestNode(q datastructure.Coordinate) (datastructure.NodeID, datastructure.Coordinate, error) {
	id, err := h.locator.Nearest(q)
	if err != nil {
		return 0, datastructure.Coordinate{}, err
	}
	loc, _ := h.graph.Location(id)
	return id, loc, nil
}

// FindShortestDistancePath returns the coordinates of the geometrically shortest route
// between the nodes nearest to a and b, found is false when b cannot be reached from a.
func (h *GraphHandle) FindShortestDistancePath(ctx context.Context, a, b datastructure.Coordinate) ([]datastructure.Coordinate, bool, error) {
	route, found, err := h.ShortestDistanceRoute(ctx, a, b)
	return route.Path, found, err
}

// FindFastestTimePath is FindShortestDistancePath minimizing travel time instead.
func (h *GraphHandle) FindFastestTimePath(ctx context.Context, a, b datastructure.Coordinate) ([]datastructure.Coordinate, bool, error) {
	route, found, err := h.FastestTimeRoute(ctx, a, b)
	return route.Path, found, err
}

func (h *GraphHandle) ShortestDistanceRoute(ctx context.Context, a, b datastructure.Coordinate) (datastructure.Route, bool, error) {
	return h.Route(ctx, a, b, ShortestDistance)
}

func (h *GraphHandle) FastestTimeRoute(ctx context.Context, a, b datastructure.Coordinate) (datastructure.Route, bool, error) {
	return h.Route(ctx, a, b, FastestTime)
}

// Route resolves a and b to their nearest nodes and searches between them.
func (h *GraphHandle) Route(ctx context.Context, a, b datastructure.Coordinate, objective Objective) (datastructure.Route, bool, error) {
	from, err := h.locator.Nearest(a)
	if err != nil {
		return datastructure.Route{}, false, err
	}
	to, err := h.locator.Nearest(b)
	if err != nil {
		return datastructure.Route{}, false, err
	}

	if from == to {
		loc, _ := h.graph.Location(from)
		return datastructure.NewSingleNodeRoute(from, loc), true, nil
	}

	if !h.components.Reachable(from, to) {
		return datastructure.Route{}, false, nil
	}

	switch objective {
	case ShortestDistance:
		return h.route.ShortestPathAStar(ctx, from, to)
	case FastestTime:
		return h.route.FastestPathUniformCost(ctx, from, to)
	default:
		return datastructure.Route{}, false, fmt.Errorf("unknown objective %v", objective)
	}
}
