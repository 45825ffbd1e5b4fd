package snap

import (
	"errors"
	"math"

	"lintang/osmroute/pkg/datastructure"
	"lintang/osmroute/pkg/geo"
)

var ErrEmptyGraph = errors.New("graph has no nodes")

// Locator maps an arbitrary coordinate to the closest graph node.
type Locator interface {
	Nearest(q datastructure.Coordinate) (datastructure.NodeID, error)
}

// NearestNode scans every node of g in ascending id order and returns the one with the
// smallest great-circle distance to q. On equal distance the smallest id wins.
func NearestNode(g *datastructure.Graph, q datastructure.Coordinate) (datastructure.NodeID, error) {
	if g.NumNodes() == 0 {
		return 0, ErrEmptyGraph
	}
	return nearestAmong(g, g.NodeIDs(), q), nil
}

// nearestAmong expects ids in ascending order.
func nearestAmong(g *datastructure.Graph, ids []datastructure.NodeID, q datastructure.Coordinate) datastructure.NodeID {
	best := ids[0]
	bestDist := math.Inf(1)
	for _, id := range ids {
		loc, _ := g.Location(id)
		dist := geo.GreatCircleDistance(q, loc)
		if dist < bestDist {
			bestDist = dist
			best = id
		}
	}
	return best
}

// LinearLocator is the Locator form of NearestNode.
type LinearLocator struct {
	g *datastructure.Graph
}

func NewLinearLocator(g *datastructure.Graph) *LinearLocator {
	return &LinearLocator{g: g}
}

func (l *LinearLocator) Nearest(q datastructure.Coordinate) (datastructure.NodeID, error) {
	return NearestNode(l.g, q)
}
