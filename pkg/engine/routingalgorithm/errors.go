package routingalgorithm

import "errors"

var (
	// ErrInconsistentEdge means a graph edge has no usable speed limit. It is an internal
	// error of the graph build, never a normal query result.
	ErrInconsistentEdge = errors.New("inconsistent edge: missing speed limit")
	ErrNodeNotFound     = errors.New("node not found in graph")
)
