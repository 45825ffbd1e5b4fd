package service

import (
	"context"
	"errors"

	"lintang/osmroute/pkg/datastructure"
	"lintang/osmroute/pkg/engine"
	"lintang/osmroute/pkg/geo"
	"lintang/osmroute/pkg/server"
	"lintang/osmroute/pkg/snap"

	"go.uber.org/zap"
)

// RouteResult is a route as the http layer reports it.
type RouteResult struct {
	Polyline          string
	Coords            []datastructure.Coordinate
	DistanceMiles     float64
	TravelTimeMinutes float64
	Found             bool
}

type RouteQuery struct {
	SrcLat, SrcLon float64
	DstLat, DstLon float64
}

type BatchResult struct {
	RouteResult
	Err error
}

type NavigationService struct {
	engine RoutingEngine
	logger *zap.Logger
}

func NewNavigationService(e RoutingEngine, logger *zap.Logger) *NavigationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NavigationService{
		engine: e,
		logger: logger,
	}
}

// Route answers a single query. simplify runs Ramer-Douglas-Peucker over the path before encoding it.
func (uc *NavigationService) Route(ctx context.Context, q RouteQuery, objective engine.Objective, simplify bool) (RouteResult, error) {
	src := datastructure.NewCoordinate(q.SrcLat, q.SrcLon)
	dst := datastructure.NewCoordinate(q.DstLat, q.DstLon)

	route, found, err := uc.engine.Route(ctx, src, dst, objective)
	if err != nil {
		return RouteResult{}, uc.wrapRouteError(err, objective)
	}
	if !found {
		return RouteResult{}, server.WrapErrorf(engine.ErrNoRouteFound, server.ErrNotFound,
			"no route found from (%f, %f) to (%f, %f)", q.SrcLat, q.SrcLon, q.DstLat, q.DstLon)
	}
	return newRouteResult(route, simplify), nil
}

// Batch answers every query with the same objective. A failed query does not fail the batch.
func (uc *NavigationService) Batch(ctx context.Context, queries []RouteQuery, objective engine.Objective, simplify bool) []BatchResult {
	engineQueries := make([]engine.Query, len(queries))
	for i, q := range queries {
		engineQueries[i] = engine.Query{
			Source:      datastructure.NewCoordinate(q.SrcLat, q.SrcLon),
			Destination: datastructure.NewCoordinate(q.DstLat, q.DstLon),
			Objective:   objective,
		}
	}

	results := uc.engine.FindPathsBatch(ctx, engineQueries)
	out := make([]BatchResult, len(results))
	for i, res := range results {
		switch {
		case res.Err != nil:
			out[i].Err = uc.wrapRouteError(res.Err, objective)
		case !res.Found:
			out[i].Err = server.WrapErrorf(engine.ErrNoRouteFound, server.ErrNotFound, "no route found")
		default:
			out[i].RouteResult = newRouteResult(res.Route, simplify)
		}
	}
	return out
}

func (uc *NavigationService) NearestNode(ctx context.Context, lat, lon float64) (datastructure.NodeID, datastructure.Coordinate, error) {
	id, loc, err := uc.engine.NearestNode(datastructure.NewCoordinate(lat, lon))
	if err != nil {
		if errors.Is(err, snap.ErrEmptyGraph) {
			return 0, datastructure.Coordinate{}, server.WrapErrorf(err, server.ErrUnprocessable, "road network graph is empty")
		}
		uc.logger.Error("nearest node lookup failed", zap.Error(err))
		return 0, datastructure.Coordinate{}, server.WrapErrorf(err, server.ErrInternalServerError, server.MessageInternalServerError)
	}
	return id, loc, nil
}

func (uc *NavigationService) wrapRouteError(err error, objective engine.Objective) error {
	switch {
	case errors.Is(err, snap.ErrEmptyGraph):
		return server.WrapErrorf(err, server.ErrUnprocessable, "road network graph is empty")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return server.WrapErrorf(err, server.ErrInternalServerError, "route query cancelled")
	default:
		uc.logger.Error("route query failed", zap.String("objective", objective.String()), zap.Error(err))
		return server.WrapErrorf(err, server.ErrInternalServerError, server.MessageInternalServerError)
	}
}

func newRouteResult(route datastructure.Route, simplify bool) RouteResult {
	coords := route.Path
	if simplify && len(coords) > 2 {
		coords = geo.RamerDouglasPeucker(coords, geo.DOUGLAS_PEUCKER_THRESHOLDS)
	}
	return RouteResult{
		Polyline:          datastructure.CreatePolyline(coords),
		Coords:            coords,
		DistanceMiles:     route.Distance,
		TravelTimeMinutes: route.TravelTime * 60,
		Found:             true,
	}
}
