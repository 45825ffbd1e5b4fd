package routingalgorithm

import (
	"context"
	"math"
	"testing"

	"lintang/osmroute/pkg/datastructure"
	"lintang/osmroute/pkg/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/exp/rand"
)

const (
	nodeA datastructure.NodeID = 1
	nodeB datastructure.NodeID = 2
	nodeC datastructure.NodeID = 3
	nodeD datastructure.NodeID = 4
)

type testEdge struct {
	from, to datastructure.NodeID
	speed    float64
	twoWay   bool
}

func newTestGraph(locs map[datastructure.NodeID]datastructure.Coordinate, edges []testEdge) (*datastructure.Graph, datastructure.SpeedMap) {
	g := datastructure.NewGraph()
	speeds := datastructure.NewSpeedMap()
	for id := range locs {
		g.AddNode(id)
	}
	for _, e := range edges {
		g.AddEdge(e.from, e.to)
		speeds.Set(e.from, e.to, e.speed)
		if e.twoWay {
			g.AddEdge(e.to, e.from)
			speeds.Set(e.to, e.from, e.speed)
		}
	}
	for id, loc := range locs {
		g.SetLocation(id, loc)
	}
	g.Freeze()
	return g, speeds
}

// A(0,0) - B(0,1) - C(0,2) two-way at 50 and 25 mph, plus a one-way A -> D -> C at 60 mph
// bending through D(0.5,1), geometrically longer than A-B-C.
func abcGraph() (*datastructure.Graph, datastructure.SpeedMap) {
	return newTestGraph(map[datastructure.NodeID]datastructure.Coordinate{
		nodeA: datastructure.NewCoordinate(0, 0),
		nodeB: datastructure.NewCoordinate(0, 1),
		nodeC: datastructure.NewCoordinate(0, 2),
		nodeD: datastructure.NewCoordinate(0.5, 1),
	}, []testEdge{
		{from: nodeA, to: nodeB, speed: 50, twoWay: true},
		{from: nodeB, to: nodeC, speed: 25, twoWay: true},
		{from: nodeA, to: nodeD, speed: 60},
		{from: nodeD, to: nodeC, speed: 60},
	})
}

func TestShortestAndFastestDiverge(t *testing.T) {
	g, speeds := abcGraph()
	rt := NewRouteAlgorithm(g, speeds, zap.NewNop())

	a, _ := g.Location(nodeA)
	b, _ := g.Location(nodeB)
	c, _ := g.Location(nodeC)
	d, _ := g.Location(nodeD)

	viaB := geo.GreatCircleDistance(a, b) + geo.GreatCircleDistance(b, c)
	viaD := geo.GreatCircleDistance(a, d) + geo.GreatCircleDistance(d, c)
	require.Greater(t, viaD, viaB)

	timeViaB := geo.GreatCircleDistance(a, b)/50 + geo.GreatCircleDistance(b, c)/25
	timeViaD := geo.GreatCircleDistance(a, d)/60 + geo.GreatCircleDistance(d, c)/60
	require.Less(t, timeViaD, timeViaB)

	shortest, found, err := rt.ShortestPathAStar(context.Background(), nodeA, nodeC)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []datastructure.NodeID{nodeA, nodeB, nodeC}, shortest.NodeIDs)
	assert.Equal(t, []datastructure.Coordinate{a, b, c}, shortest.Path)
	assert.InDelta(t, viaB, shortest.Distance, 1e-9)
	assert.InDelta(t, timeViaB, shortest.TravelTime, 1e-9)

	fastest, found, err := rt.FastestPathUniformCost(context.Background(), nodeA, nodeC)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []datastructure.NodeID{nodeA, nodeD, nodeC}, fastest.NodeIDs)
	assert.Equal(t, []datastructure.Coordinate{a, d, c}, fastest.Path)
	assert.InDelta(t, viaD, fastest.Distance, 1e-9)
	assert.InDelta(t, timeViaD, fastest.TravelTime, 1e-9)

	// C -> A cannot use the one-way detour
	back, found, err := rt.FastestPathUniformCost(context.Background(), nodeC, nodeA)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []datastructure.NodeID{nodeC, nodeB, nodeA}, back.NodeIDs)
}

func TestNoPathBetweenComponents(t *testing.T) {
	g, speeds := newTestGraph(map[datastructure.NodeID]datastructure.Coordinate{
		1: datastructure.NewCoordinate(0, 0),
		2: datastructure.NewCoordinate(0, 0.01),
		3: datastructure.NewCoordinate(1, 1),
		4: datastructure.NewCoordinate(1, 1.01),
	}, []testEdge{
		{from: 1, to: 2, speed: 25, twoWay: true},
		{from: 3, to: 4, speed: 25, twoWay: true},
	})
	rt := NewRouteAlgorithm(g, speeds, zap.NewNop())

	_, found, err := rt.ShortestPathAStar(context.Background(), 1, 4)
	assert.NoError(t, err)
	assert.False(t, found)

	_, found, err = rt.FastestPathUniformCost(context.Background(), 1, 4)
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestSameStartAndGoal(t *testing.T) {
	g, speeds := abcGraph()
	rt := NewRouteAlgorithm(g, speeds, zap.NewNop())

	for _, search := range []func(context.Context, datastructure.NodeID, datastructure.NodeID) (datastructure.Route, bool, error){
		rt.ShortestPathAStar, rt.FastestPathUniformCost,
	} {
		route, found, err := search(context.Background(), nodeB, nodeB)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []datastructure.Coordinate{datastructure.NewCoordinate(0, 1)}, route.Path)
		assert.Equal(t, []datastructure.NodeID{nodeB}, route.NodeIDs)
		assert.Equal(t, 0.0, route.Distance)
	}

	_, _, err := rt.ShortestPathAStar(context.Background(), 77, 77)
	assert.ErrorIs(t, err, ErrNodeNotFound)
	_, _, err = rt.ShortestPathAStar(context.Background(), nodeA, 77)
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestInconsistentEdge(t *testing.T) {
	g, speeds := abcGraph()
	delete(speeds, datastructure.NewEdgeKey(nodeB, nodeC))
	rt := NewRouteAlgorithm(g, speeds, zap.NewNop())

	_, _, err := rt.FastestPathUniformCost(context.Background(), nodeB, nodeC)
	assert.ErrorIs(t, err, ErrInconsistentEdge)

	_, err = PathTravelTime(g, speeds, []datastructure.NodeID{nodeA, nodeB, nodeC})
	assert.ErrorIs(t, err, ErrInconsistentEdge)

	speeds.Set(nodeB, nodeC, 0)
	_, _, err = rt.FastestPathUniformCost(context.Background(), nodeB, nodeC)
	assert.ErrorIs(t, err, ErrInconsistentEdge)
}

func TestShortestPathWithoutSpeed(t *testing.T) {
	g, speeds := abcGraph()
	delete(speeds, datastructure.NewEdgeKey(nodeA, nodeB))
	core, logs := observer.New(zap.WarnLevel)
	rt := NewRouteAlgorithm(g, speeds, zap.New(core))

	route, found, err := rt.ShortestPathAStar(context.Background(), nodeA, nodeC)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []datastructure.NodeID{nodeA, nodeB, nodeC}, route.NodeIDs)
	assert.Greater(t, route.Distance, 0.0)
	assert.Equal(t, 0.0, route.TravelTime)
	assert.Equal(t, 1, logs.FilterMessage("route travel time unavailable").Len())

	_, _, err = rt.FastestPathUniformCost(context.Background(), nodeA, nodeB)
	assert.ErrorIs(t, err, ErrInconsistentEdge)
}

func TestUnwindPath(t *testing.T) {
	labels := []label{
		{node: nodeA, parent: -1},
		{node: nodeB, parent: 0},
		{node: nodeD, parent: 0},
		{node: nodeC, parent: 1},
	}
	assert.Equal(t, []datastructure.NodeID{nodeA, nodeB, nodeC}, unwindPath(labels, 3))
	assert.Equal(t, []datastructure.NodeID{nodeA, nodeD}, unwindPath(labels, 2))
	assert.Equal(t, []datastructure.NodeID{nodeA}, unwindPath(labels, 0))
}

func TestSearchCancelled(t *testing.T) {
	g, speeds := abcGraph()
	rt := NewRouteAlgorithm(g, speeds, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := rt.ShortestPathAStar(ctx, nodeA, nodeC)
	assert.ErrorIs(t, err, context.Canceled)
	_, _, err = rt.FastestPathUniformCost(ctx, nodeA, nodeC)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRepeatedQueriesAreIdentical(t *testing.T) {
	g, speeds := randomGraph(7, 60)
	rt := NewRouteAlgorithm(g, speeds, zap.NewNop())

	first, found, err := rt.ShortestPathAStar(context.Background(), 1, 60)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, foundAgain, err := rt.ShortestPathAStar(context.Background(), 1, 60)
		require.NoError(t, err)
		assert.Equal(t, found, foundAgain)
		assert.Equal(t, first, again)
	}

	firstFast, _, err := rt.FastestPathUniformCost(context.Background(), 1, 60)
	require.NoError(t, err)
	again, _, err := rt.FastestPathUniformCost(context.Background(), 1, 60)
	require.NoError(t, err)
	assert.Equal(t, firstFast, again)
}

// randomGraph places n nodes around yogyakarta and connects random pairs, some one-way.
func randomGraph(seed uint64, n int) (*datastructure.Graph, datastructure.SpeedMap) {
	rng := rand.New(rand.NewSource(seed))
	locs := make(map[datastructure.NodeID]datastructure.Coordinate, n)
	for i := 1; i <= n; i++ {
		locs[datastructure.NodeID(i)] = datastructure.NewCoordinate(-7.8+rng.Float64()*0.1, 110.3+rng.Float64()*0.1)
	}
	speedChoices := []float64{10, 25, 30, 35, 45, 60}
	edges := make([]testEdge, 0, 3*n)
	for i := 0; i < 3*n; i++ {
		from := datastructure.NodeID(1 + rng.Intn(n))
		to := datastructure.NodeID(1 + rng.Intn(n))
		if from == to {
			continue
		}
		edges = append(edges, testEdge{
			from:   from,
			to:     to,
			speed:  speedChoices[rng.Intn(len(speedChoices))],
			twoWay: rng.Intn(3) != 0,
		})
	}
	return newTestGraph(locs, edges)
}

// allPairs is Floyd-Warshall over the given edge weight.
func allPairs(g *datastructure.Graph, weight func(from, to datastructure.NodeID) float64) map[[2]datastructure.NodeID]float64 {
	ids := g.NodeIDs()
	dist := make(map[[2]datastructure.NodeID]float64)
	for _, u := range ids {
		for _, v := range ids {
			dist[[2]datastructure.NodeID{u, v}] = math.Inf(1)
		}
		dist[[2]datastructure.NodeID{u, u}] = 0
		for _, v := range g.Neighbors(u) {
			w := weight(u, v)
			if w < dist[[2]datastructure.NodeID{u, v}] {
				dist[[2]datastructure.NodeID{u, v}] = w
			}
		}
	}
	for _, k := range ids {
		for _, i := range ids {
			for _, j := range ids {
				through := dist[[2]datastructure.NodeID{i, k}] + dist[[2]datastructure.NodeID{k, j}]
				if through < dist[[2]datastructure.NodeID{i, j}] {
					dist[[2]datastructure.NodeID{i, j}] = through
				}
			}
		}
	}
	return dist
}

func TestSearchesAreOptimal(t *testing.T) {
	g, speeds := randomGraph(11, 40)
	rt := NewRouteAlgorithm(g, speeds, zap.NewNop())

	loc := func(id datastructure.NodeID) datastructure.Coordinate {
		c, _ := g.Location(id)
		return c
	}
	distances := allPairs(g, func(from, to datastructure.NodeID) float64 {
		return geo.GreatCircleDistance(loc(from), loc(to))
	})
	times := allPairs(g, func(from, to datastructure.NodeID) float64 {
		speed, _ := speeds.Speed(from, to)
		return geo.GreatCircleDistance(loc(from), loc(to)) / speed
	})

	for _, from := range g.NodeIDs() {
		for _, to := range g.NodeIDs() {
			key := [2]datastructure.NodeID{from, to}

			shortest, found, err := rt.ShortestPathAStar(context.Background(), from, to)
			require.NoError(t, err)
			assert.Equal(t, !math.IsInf(distances[key], 1), found, "%d -> %d", from, to)

			fastest, fastFound, err := rt.FastestPathUniformCost(context.Background(), from, to)
			require.NoError(t, err)
			assert.Equal(t, found, fastFound)

			if !found {
				continue
			}
			assert.InDelta(t, distances[key], shortest.Distance, 1e-6, "%d -> %d", from, to)
			assert.InDelta(t, times[key], fastest.TravelTime, 1e-9, "%d -> %d", from, to)
			assert.Equal(t, from, shortest.NodeIDs[0])
			assert.Equal(t, to, shortest.NodeIDs[len(shortest.NodeIDs)-1])

			// straight line never exceeds the route length
			assert.LessOrEqual(t, geo.GreatCircleDistance(loc(from), loc(to)), shortest.Distance+1e-9)
			assert.LessOrEqual(t, shortest.Distance, fastest.Distance+1e-9)
			assert.LessOrEqual(t, fastest.TravelTime, shortest.TravelTime+1e-12)
		}
	}
}
