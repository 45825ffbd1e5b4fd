package osmparser

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"lintang/osmroute/pkg/datastructure"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
)

// PBFSource reads an .osm.pbf file. Every scan opens the file again and makes one pass.
type PBFSource struct {
	path  string
	procs int
}

func NewPBFSource(path string) *PBFSource {
	return &PBFSource{path: path, procs: runtime.GOMAXPROCS(0)}
}

func (s *PBFSource) ScanNodes(ctx context.Context, fn func(NodeRecord) error) error {
	return s.scan(ctx, false, func(o osm.Object) error {
		node, ok := o.(*osm.Node)
		if !ok {
			return nil
		}
		return fn(nodeRecordFromOSM(node))
	})
}

func (s *PBFSource) ScanWays(ctx context.Context, fn func(WayRecord) error) error {
	return s.scan(ctx, true, func(o osm.Object) error {
		way, ok := o.(*osm.Way)
		if !ok {
			return nil
		}
		return fn(wayRecordFromOSM(way))
	})
}

func (s *PBFSource) scan(ctx context.Context, ways bool, fn func(osm.Object) error) error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	scanner := osmpbf.New(ctx, f, s.procs)
	defer scanner.Close()
	scanner.SkipRelations = true
	if ways {
		scanner.SkipNodes = true
	} else {
		scanner.SkipWays = true
	}

	for scanner.Scan() {
		if err := fn(scanner.Object()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan %s: %w", s.path, err)
	}
	return nil
}

func nodeRecordFromOSM(node *osm.Node) NodeRecord {
	return NodeRecord{
		ID:          datastructure.NodeID(node.ID),
		Lat:         node.Lat,
		Lon:         node.Lon,
		HasLocation: true,
		Tags:        node.Tags.Map(),
	}
}

func wayRecordFromOSM(way *osm.Way) WayRecord {
	nodes := make([]datastructure.NodeID, len(way.Nodes))
	for i, n := range way.Nodes {
		nodes[i] = datastructure.NodeID(n.ID)
	}
	return WayRecord{
		ID:    int64(way.ID),
		Nodes: nodes,
		Tags:  way.Tags.Map(),
	}
}
