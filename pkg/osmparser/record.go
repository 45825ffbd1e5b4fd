package osmparser

import (
	"context"

	"lintang/osmroute/pkg/datastructure"
)

// NodeRecord is a raw map node. A node without a location resolves to (0,0).
type NodeRecord struct {
	ID          datastructure.NodeID
	Lat         float64
	Lon         float64
	HasLocation bool
	Tags        map[string]string
}

func NewNodeRecord(id datastructure.NodeID, lat, lon float64) NodeRecord {
	return NodeRecord{ID: id, Lat: lat, Lon: lon, HasLocation: true}
}

func (n NodeRecord) Location() datastructure.Coordinate {
	if !n.HasLocation {
		return datastructure.NewCoordinate(0, 0)
	}
	return datastructure.NewCoordinate(n.Lat, n.Lon)
}

// WayRecord is a raw map way: an ordered node list plus its tags.
type WayRecord struct {
	ID    int64
	Nodes []datastructure.NodeID
	Tags  map[string]string
}

func (w WayRecord) Tag(key string) (string, bool) {
	v, ok := w.Tags[key]
	return v, ok
}

func (w WayRecord) RoadClass() string {
	return w.Tags[TagHighway]
}

// IsTwoWay reports whether the way may be traversed in both directions: it has no
// oneway tag or the tag is "no". Any other value makes the way forward only.
func (w WayRecord) IsTwoWay() bool {
	v, ok := w.Tags[TagOneway]
	return !ok || v == onewayNo
}

// NodeSource yields node records. fn returning an error stops the scan with that error.
type NodeSource interface {
	ScanNodes(ctx context.Context, fn func(NodeRecord) error) error
}

// WaySource yields way records in input order.
type WaySource interface {
	ScanWays(ctx context.Context, fn func(WayRecord) error) error
}

// SliceSource serves records held in memory.
type SliceSource struct {
	Nodes []NodeRecord
	Ways  []WayRecord
}

func NewSliceSource(nodes []NodeRecord, ways []WayRecord) *SliceSource {
	return &SliceSource{Nodes: nodes, Ways: ways}
}

func (s *SliceSource) ScanNodes(ctx context.Context, fn func(NodeRecord) error) error {
	for i, n := range s.Nodes {
		if i%checkContextEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := fn(n); err != nil {
			return err
		}
	}
	return nil
}

func (s *SliceSource) ScanWays(ctx context.Context, fn func(WayRecord) error) error {
	for i, w := range s.Ways {
		if i%checkContextEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := fn(w); err != nil {
			return err
		}
	}
	return nil
}

const checkContextEvery = 4096
