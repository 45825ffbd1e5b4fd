package service

import (
	"context"

	"lintang/osmroute/pkg/datastructure"
	"lintang/osmroute/pkg/engine"
)

// RoutingEngine is the part of engine.GraphHandle the navigation service needs.
type RoutingEngine interface {
	Route(ctx context.Context, a, b datastructure.Coordinate, objective engine.Objective) (datastructure.Route, bool, error)
	FindPathsBatch(ctx context.Context, queries []engine.Query) []engine.QueryResult
	NearestNode(q datastructure.Coordinate) (datastructure.NodeID, datastructure.Coordinate, error)
}
