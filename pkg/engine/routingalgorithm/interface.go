package routingalgorithm

import "lintang/osmroute/pkg/datastructure"

// Graph is the read only view of the road network the searches traverse.
type Graph interface {
	HasNode(id datastructure.NodeID) bool
	Location(id datastructure.NodeID) (datastructure.Coordinate, bool)
	Neighbors(id datastructure.NodeID) []datastructure.NodeID
}

// SpeedLookup returns the speed limit in mph of a directed edge.
type SpeedLookup interface {
	Speed(from, to datastructure.NodeID) (float64, bool)
}
