package snap

import (
	"math"

	"lintang/osmroute/pkg/datastructure"
	"lintang/osmroute/pkg/geo"

	"github.com/dhconnelly/rtreego"
	"golang.org/x/exp/slices"
)

const (
	rtreeMinChildren = 25
	rtreeMaxChildren = 50
	pointTolerance   = 1e-9
)

type rtreeNode struct {
	id  datastructure.NodeID
	loc datastructure.Coordinate
}

func (n *rtreeNode) Bounds() rtreego.Rect {
	return rtreego.Point{n.loc.Lat, n.loc.Lon}.ToRect(pointTolerance)
}

// RtreeLocator answers the same query as NearestNode using an rtree over (lat, lon).
// The planar nearest neighbour gives an upper bound on the great-circle distance of the
// answer, every node inside the box covering that radius is then compared exactly.
type RtreeLocator struct {
	g    *datastructure.Graph
	tree *rtreego.Rtree
}

func NewRtreeLocator(g *datastructure.Graph) *RtreeLocator {
	objs := make([]rtreego.Spatial, 0, g.NumNodes())
	for _, id := range g.NodeIDs() {
		loc, _ := g.Location(id)
		objs = append(objs, &rtreeNode{id: id, loc: loc})
	}
	return &RtreeLocator{
		g:    g,
		tree: rtreego.NewTree(2, rtreeMinChildren, rtreeMaxChildren, objs...),
	}
}

func (r *RtreeLocator) Nearest(q datastructure.Coordinate) (datastructure.NodeID, error) {
	if r.g.NumNodes() == 0 {
		return 0, ErrEmptyGraph
	}

	seed, ok := r.tree.NearestNeighbor(rtreego.Point{q.Lat, q.Lon}).(*rtreeNode)
	if !ok {
		return NearestNode(r.g, q)
	}
	radius := geo.GreatCircleDistance(q, seed.loc)
	radius += radius*1e-9 + 1e-9

	box, ok := geo.NewBoundingBox(q, radius)
	if !ok {
		return NearestNode(r.g, q)
	}

	rect, err := rtreego.NewRect(
		rtreego.Point{box.MinLat, box.MinLon},
		[]float64{math.Max(box.MaxLat-box.MinLat, pointTolerance), math.Max(box.MaxLon-box.MinLon, pointTolerance)},
	)
	if err != nil {
		return NearestNode(r.g, q)
	}

	found := r.tree.SearchIntersect(rect)
	if len(found) == 0 {
		return seed.id, nil
	}
	ids := make([]datastructure.NodeID, 0, len(found))
	for _, s := range found {
		ids = append(ids, s.(*rtreeNode).id)
	}
	slices.Sort(ids)
	return nearestAmong(r.g, ids, q), nil
}
