package routingalgorithm

import (
	"context"
	"fmt"

	"lintang/osmroute/pkg/datastructure"
	"lintang/osmroute/pkg/geo"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

const checkContextEvery = 1024

type RouteAlgorithm struct {
	g      Graph
	speeds SpeedLookup
	logger *zap.Logger
}

func NewRouteAlgorithm(g Graph, speeds SpeedLookup, logger *zap.Logger) *RouteAlgorithm {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RouteAlgorithm{g: g, speeds: speeds, logger: logger}
}

// label is one frontier entry: the path that reached node, as a parent link.
type label struct {
	node   datastructure.NodeID
	parent int
	cost   float64
}

type edgeCostFunc func(from, to datastructure.NodeID, fromLoc, toLoc datastructure.Coordinate) (float64, error)

type heuristicFunc func(loc datastructure.Coordinate) float64

// bestFirstSearch runs a lazy deletion best-first search from -> to. Every relaxation pushes a
// new entry; entries whose node was already closed are discarded when popped.
// Returns the node sequence of the first path to reach to, or found=false when the frontier
// runs out.
func (rt *RouteAlgorithm) bestFirstSearch(ctx context.Context, from, to datastructure.NodeID,
	edgeCost edgeCostFunc, heuristic heuristicFunc) ([]datastructure.NodeID, bool, error) {

	fromLoc, ok := rt.g.Location(from)
	if !ok {
		return nil, false, fmt.Errorf("%w: %d", ErrNodeNotFound, from)
	}
	if !rt.g.HasNode(to) {
		return nil, false, fmt.Errorf("%w: %d", ErrNodeNotFound, to)
	}

	labels := []label{{node: from, parent: -1, cost: 0}}
	pq := datastructure.NewMinHeap[int]()
	pq.Insert(datastructure.PriorityQueueNode[int]{Rank: heuristic(fromLoc), Item: 0})

	closed := make(map[datastructure.NodeID]struct{})

	extracted := 0
	for pq.Size() > 0 {
		if extracted%checkContextEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, false, err
			}
		}
		extracted++

		item, _ := pq.ExtractMin()
		current := labels[item.Item]

		if current.node == to {
			return unwindPath(labels, item.Item), true, nil
		}
		if _, ok := closed[current.node]; ok {
			// stale, a cheaper entry for this node was already expanded
			continue
		}
		closed[current.node] = struct{}{}

		currLoc, _ := rt.g.Location(current.node)
		for _, next := range rt.g.Neighbors(current.node) {
			if _, ok := closed[next]; ok {
				continue
			}
			nextLoc, _ := rt.g.Location(next)
			cost, err := edgeCost(current.node, next, currLoc, nextLoc)
			if err != nil {
				return nil, false, err
			}
			newCost := current.cost + cost

			labels = append(labels, label{node: next, parent: item.Item, cost: newCost})
			pq.Insert(datastructure.PriorityQueueNode[int]{
				Rank: newCost + heuristic(nextLoc),
				Item: len(labels) - 1,
			})
		}
	}
	return nil, false, nil
}

func unwindPath(labels []label, idx int) []datastructure.NodeID {
	path := make([]datastructure.NodeID, 0)
	for idx != -1 {
		path = append(path, labels[idx].node)
		idx = labels[idx].parent
	}
	slices.Reverse(path)
	return path
}

func (rt *RouteAlgorithm) routeGeometry(nodes []datastructure.NodeID) datastructure.Route {
	route := datastructure.Route{
		NodeIDs: nodes,
		Path:    make([]datastructure.Coordinate, len(nodes)),
	}
	for i, id := range nodes {
		route.Path[i], _ = rt.g.Location(id)
	}
	route.Distance = PathDistance(route.Path)
	return route
}

// newRoute fills the coordinates, distance and, when speeds are known, the travel time of nodes.
// A missing or non positive speed on the path is an error.
func (rt *RouteAlgorithm) newRoute(nodes []datastructure.NodeID) (datastructure.Route, error) {
	route := rt.routeGeometry(nodes)
	if rt.speeds == nil {
		return route, nil
	}
	travelTime, err := PathTravelTime(rt.g, rt.speeds, nodes)
	if err != nil {
		return datastructure.Route{}, err
	}
	route.TravelTime = travelTime
	return route, nil
}

// newDistanceRoute is newRoute for searches that never read speeds. A speed gap on the path
// leaves TravelTime at zero instead of discarding a route that was found.
func (rt *RouteAlgorithm) newDistanceRoute(nodes []datastructure.NodeID) datastructure.Route {
	route := rt.routeGeometry(nodes)
	if rt.speeds == nil {
		return route
	}
	travelTime, err := PathTravelTime(rt.g, rt.speeds, nodes)
	if err != nil {
		rt.logger.Warn("route travel time unavailable", zap.Error(err))
		return route
	}
	route.TravelTime = travelTime
	return route
}

func (rt *RouteAlgorithm) singleNodeRoute(id datastructure.NodeID) (datastructure.Route, error) {
	loc, ok := rt.g.Location(id)
	if !ok {
		return datastructure.Route{}, fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	return datastructure.NewSingleNodeRoute(id, loc), nil
}

// PathDistance sums the great-circle length in miles of consecutive coordinates.
func PathDistance(path []datastructure.Coordinate) float64 {
	dist := 0.0
	for i := 1; i < len(path); i++ {
		dist += geo.GreatCircleDistance(path[i-1], path[i])
	}
	return dist
}

// PathTravelTime sums distance/speed in hours over consecutive node pairs.
func PathTravelTime(g Graph, speeds SpeedLookup, nodes []datastructure.NodeID) (float64, error) {
	total := 0.0
	for i := 1; i < len(nodes); i++ {
		fromLoc, _ := g.Location(nodes[i-1])
		toLoc, _ := g.Location(nodes[i])
		t, err := edgeTravelTime(speeds, nodes[i-1], nodes[i], fromLoc, toLoc)
		if err != nil {
			return 0, err
		}
		total += t
	}
	return total, nil
}

func edgeTravelTime(speeds SpeedLookup, from, to datastructure.NodeID, fromLoc, toLoc datastructure.Coordinate) (float64, error) {
	speed, ok := speeds.Speed(from, to)
	if !ok {
		return 0, fmt.Errorf("%w: edge %d -> %d", ErrInconsistentEdge, from, to)
	}
	if speed <= 0 {
		return 0, fmt.Errorf("%w: edge %d -> %d has speed %v", ErrInconsistentEdge, from, to, speed)
	}
	return geo.GreatCircleDistance(fromLoc, toLoc) / speed, nil
}
