package engine

import (
	"context"

	"lintang/osmroute/pkg/concurrent"
	"lintang/osmroute/pkg/datastructure"
)

type Query struct {
	Source      datastructure.Coordinate
	Destination datastructure.Coordinate
	Objective   Objective
}

type QueryResult struct {
	Route datastructure.Route
	Found bool
	Err   error
}

type indexedResult struct {
	index  int
	result QueryResult
}

// FindPathsBatch answers queries on the handle's worker pool. Results are in query order.
func (h *GraphHandle) FindPathsBatch(ctx context.Context, queries []Query) []QueryResult {
	results := make([]QueryResult, len(queries))
	if len(queries) == 0 {
		return results
	}

	workers := concurrent.NewWorkerPool[concurrent.RouteQueryJob, indexedResult](h.workers, len(queries))
	for i, q := range queries {
		workers.AddJob(concurrent.NewRouteQueryJob(i, q.Source, q.Destination, q.Objective == FastestTime))
	}
	workers.Close()

	workers.Start(func(job concurrent.RouteQueryJob) indexedResult {
		objective := ShortestDistance
		if job.Fastest {
			objective = FastestTime
		}
		route, found, err := h.Route(ctx, job.Source, job.Destination, objective)
		return indexedResult{
			index:  job.Index,
			result: QueryResult{Route: route, Found: found, Err: err},
		}
	})
	workers.Wait()

	for res := range workers.CollectResults() {
		results[res.index] = res.result
	}
	return results
}
