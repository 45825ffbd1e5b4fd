package concurrent

import (
	"lintang/osmroute/pkg/datastructure"
)

// RouteQueryJob is one route query of a batch. Index is its position in the request.
type RouteQueryJob struct {
	Index       int
	Source      datastructure.Coordinate
	Destination datastructure.Coordinate
	Fastest     bool
}

func NewRouteQueryJob(index int, src, dst datastructure.Coordinate, fastest bool) RouteQueryJob {
	return RouteQueryJob{
		Index:       index,
		Source:      src,
		Destination: dst,
		Fastest:     fastest,
	}
}

// SaveNodesJobItem is one key value batch of graph nodes waiting to be encoded.
type SaveNodesJobItem struct {
	KeyStr string
	Nodes  []datastructure.SnapshotNode
	Speeds []datastructure.SnapshotSpeed
}

type JobI interface {
	RouteQueryJob | SaveNodesJobItem
}
