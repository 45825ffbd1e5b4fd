package concurrent

import (
	"testing"

	"lintang/osmroute/pkg/datastructure"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPool(t *testing.T) {
	jobs := 100
	workers := NewWorkerPool[RouteQueryJob, int](4, jobs)

	for i := 0; i < jobs; i++ {
		workers.AddJob(NewRouteQueryJob(i, datastructure.NewCoordinate(0, 0), datastructure.NewCoordinate(0, 1), i%2 == 0))
	}
	workers.Close()

	workers.Start(func(job RouteQueryJob) int {
		return job.Index * 2
	})
	workers.Wait()

	seen := make([]bool, jobs)
	count := 0
	for res := range workers.CollectResults() {
		assert.Equal(t, 0, res%2)
		seen[res/2] = true
		count++
	}
	assert.Equal(t, jobs, count)
	for i := range seen {
		assert.True(t, seen[i])
	}
}

func TestWorkerPoolAtLeastOneWorker(t *testing.T) {
	workers := NewWorkerPool[SaveNodesJobItem, string](0, 1)
	workers.AddJob(SaveNodesJobItem{KeyStr: "nodes:0"})
	workers.Close()
	workers.Start(func(job SaveNodesJobItem) string {
		return job.KeyStr
	})
	workers.Wait()

	assert.Equal(t, "nodes:0", <-workers.CollectResults())
}
