package datastructure

import (
	"fmt"

	"github.com/kelindar/binary"
)

// SnapshotVersion is bumped whenever GraphSnapshot changes shape.
const SnapshotVersion = 1

type SnapshotNode struct {
	ID        int64
	Lat       float64
	Lon       float64
	Neighbors []int64
}

type SnapshotSpeed struct {
	From  int64
	To    int64
	Speed float64
}

// GraphSnapshot is the flat, serializable form of a built graph and its speed map.
type GraphSnapshot struct {
	Version uint32
	Nodes   []SnapshotNode
	Speeds  []SnapshotSpeed
}

// ToSnapshot flattens g and speeds. Nodes and neighbors are written in ascending id order
// so that the same graph always encodes to the same bytes.
func ToSnapshot(g *Graph, speeds SpeedMap) GraphSnapshot {
	snap := GraphSnapshot{
		Version: SnapshotVersion,
		Nodes:   make([]SnapshotNode, 0, g.NumNodes()),
		Speeds:  make([]SnapshotSpeed, 0, len(speeds)),
	}
	for _, id := range g.NodeIDs() {
		loc, _ := g.Location(id)
		adj := g.Neighbors(id)
		// nil rather than empty, the binary decoder reads an empty slice back as nil
		var neighbors []int64
		for _, to := range adj {
			neighbors = append(neighbors, int64(to))
			if speed, ok := speeds.Speed(id, to); ok {
				snap.Speeds = append(snap.Speeds, SnapshotSpeed{From: int64(id), To: int64(to), Speed: speed})
			}
		}
		snap.Nodes = append(snap.Nodes, SnapshotNode{
			ID:        int64(id),
			Lat:       loc.Lat,
			Lon:       loc.Lon,
			Neighbors: neighbors,
		})
	}
	return snap
}

// FromSnapshot rebuilds a frozen graph and its speed map.
func FromSnapshot(snap GraphSnapshot) (*Graph, SpeedMap, error) {
	if snap.Version != SnapshotVersion {
		return nil, nil, fmt.Errorf("unsupported graph snapshot version %d", snap.Version)
	}
	g := NewGraph()
	for _, n := range snap.Nodes {
		g.AddNode(NodeID(n.ID))
		g.SetLocation(NodeID(n.ID), NewCoordinate(n.Lat, n.Lon))
	}
	for _, n := range snap.Nodes {
		for _, to := range n.Neighbors {
			if !g.HasNode(NodeID(to)) {
				return nil, nil, fmt.Errorf("snapshot edge %d -> %d references an unknown node", n.ID, to)
			}
			g.AddEdge(NodeID(n.ID), NodeID(to))
		}
	}
	speeds := make(SpeedMap, len(snap.Speeds))
	for _, s := range snap.Speeds {
		speeds.Set(NodeID(s.From), NodeID(s.To), s.Speed)
	}
	g.Freeze()
	return g, speeds, nil
}

// EncodeSnapshot binary encodes snap and compresses it with zstd.
func EncodeSnapshot(snap GraphSnapshot) ([]byte, error) {
	bb, err := binary.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode graph snapshot: %w", err)
	}
	return compressSnapshot(bb), nil
}

func DecodeSnapshot(bbCompressed []byte) (GraphSnapshot, error) {
	bb, err := decompressSnapshot(bbCompressed)
	if err != nil {
		return GraphSnapshot{}, fmt.Errorf("decompress graph snapshot: %w", err)
	}
	var snap GraphSnapshot
	if err := binary.Unmarshal(bb, &snap); err != nil {
		return GraphSnapshot{}, fmt.Errorf("decode graph snapshot: %w", err)
	}
	return snap, nil
}
