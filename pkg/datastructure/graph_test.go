package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildTestGraph() *Graph {
	g := NewGraph()
	g.AddEdge(3, 1)
	g.AddEdge(1, 3)
	g.AddEdge(1, 2)
	g.AddEdge(2, 7)
	g.AddEdge(1, 2)
	g.SetLocation(1, NewCoordinate(0, 0))
	g.SetLocation(2, NewCoordinate(0, 1))
	g.SetLocation(3, NewCoordinate(1, 0))
	g.SetLocation(7, NewCoordinate(1, 1))
	return g
}

func TestGraphAddEdge(t *testing.T) {
	g := buildTestGraph()

	assert.Equal(t, 4, g.NumNodes())
	assert.Equal(t, 4, g.NumEdges())
	assert.True(t, g.HasEdge(1, 2))
	assert.False(t, g.HasEdge(2, 1))
	assert.True(t, g.HasNode(7))
	assert.Empty(t, g.Neighbors(7))
	assert.Nil(t, g.Neighbors(100))

	assert.False(t, g.SetLocation(100, NewCoordinate(5, 5)))
	_, ok := g.Location(100)
	assert.False(t, ok)
}

func TestGraphFreezeOrder(t *testing.T) {
	g := buildTestGraph()
	assert.Equal(t, []NodeID{2, 3}, g.Neighbors(1))

	g.Freeze()
	assert.True(t, g.IsFrozen())
	assert.Equal(t, []NodeID{1, 2, 3, 7}, g.NodeIDs())
	assert.Equal(t, []NodeID{2, 3}, g.Neighbors(1))

	edges := [][2]NodeID{}
	g.ForEachEdge(func(from, to NodeID) {
		edges = append(edges, [2]NodeID{from, to})
	})
	assert.Equal(t, [][2]NodeID{{1, 2}, {1, 3}, {2, 7}, {3, 1}}, edges)

	assert.Panics(t, func() {
		g.AddEdge(7, 1)
	})
}

func TestSpeedMap(t *testing.T) {
	speeds := NewSpeedMap()
	speeds.Set(1, 2, 25)

	speed, ok := speeds.Speed(1, 2)
	assert.True(t, ok)
	assert.Equal(t, 25.0, speed)

	_, ok = speeds.Speed(2, 1)
	assert.False(t, ok)
}

func TestLocationIndex(t *testing.T) {
	g := buildTestGraph()
	g.AddNode(9)
	g.SetLocation(9, NewCoordinate(0, 1))
	g.Freeze()

	idx := BuildLocationIndex(g)
	assert.Len(t, idx, 4)

	id, ok := idx.NodeAt(NewCoordinate(0, 0))
	assert.True(t, ok)
	assert.Equal(t, NodeID(1), id)

	// nodes 2 and 9 share a coordinate, the larger id wins
	id, ok = idx.NodeAt(NewCoordinate(0, 1))
	assert.True(t, ok)
	assert.Equal(t, NodeID(9), id)

	_, ok = idx.NodeAt(NewCoordinate(42, 42))
	assert.False(t, ok)
}

func TestSnapshotRoundTrip(t *testing.T) {
	g := buildTestGraph()
	g.Freeze()
	speeds := NewSpeedMap()
	speeds.Set(1, 2, 30)
	speeds.Set(2, 7, 25)

	bb, err := EncodeSnapshot(ToSnapshot(g, speeds))
	assert.NoError(t, err)

	snap, err := DecodeSnapshot(bb)
	assert.NoError(t, err)

	got, gotSpeeds, err := FromSnapshot(snap)
	assert.NoError(t, err)
	assert.True(t, got.IsFrozen())
	assert.Equal(t, g.NodeIDs(), got.NodeIDs())
	for _, id := range g.NodeIDs() {
		assert.Equal(t, g.Neighbors(id), got.Neighbors(id))
		wantLoc, _ := g.Location(id)
		gotLoc, _ := got.Location(id)
		assert.Equal(t, wantLoc, gotLoc)
	}
	assert.Equal(t, speeds, gotSpeeds)
}

func TestFromSnapshotUnknownNode(t *testing.T) {
	snap := GraphSnapshot{
		Version: SnapshotVersion,
		Nodes:   []SnapshotNode{{ID: 1, Neighbors: []int64{2}}},
	}
	_, _, err := FromSnapshot(snap)
	assert.Error(t, err)
}

func TestCreatePolyline(t *testing.T) {
	path := []Coordinate{
		NewCoordinate(38.5, -120.2),
		NewCoordinate(40.7, -120.95),
		NewCoordinate(43.252, -126.453),
	}
	s := CreatePolyline(path)
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", s)

	decoded, err := DecodePolyline(s)
	assert.NoError(t, err)
	assert.Len(t, decoded, 3)
	for i := range path {
		assert.InDelta(t, path[i].Lat, decoded[i].Lat, 1e-5)
		assert.InDelta(t, path[i].Lon, decoded[i].Lon, 1e-5)
	}
}
