package osmparser

import (
	"context"
	"fmt"
	"os"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmxml"
)

// XMLSource reads an .osm xml file.
type XMLSource struct {
	path string
}

func NewXMLSource(path string) *XMLSource {
	return &XMLSource{path: path}
}

func (s *XMLSource) ScanNodes(ctx context.Context, fn func(NodeRecord) error) error {
	return s.scan(ctx, func(o osm.Object) error {
		node, ok := o.(*osm.Node)
		if !ok {
			return nil
		}
		return fn(nodeRecordFromOSM(node))
	})
}

func (s *XMLSource) ScanWays(ctx context.Context, fn func(WayRecord) error) error {
	return s.scan(ctx, func(o osm.Object) error {
		way, ok := o.(*osm.Way)
		if !ok {
			return nil
		}
		return fn(wayRecordFromOSM(way))
	})
}

func (s *XMLSource) scan(ctx context.Context, fn func(osm.Object) error) error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	scanner := osmxml.New(ctx, f)
	defer scanner.Close()

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
