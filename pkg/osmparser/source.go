package osmparser

import (
	"fmt"
	"strings"
)

// Source yields both node and way records from the same map file.
type Source interface {
	NodeSource
	WaySource
}

// OpenSource picks a reader by file extension: .pbf for protobuf, .osm or .xml for xml.
func OpenSource(path string) (Source, error) {
	switch {
	case strings.HasSuffix(path, ".pbf"):
		return NewPBFSource(path), nil
	case strings.HasSuffix(path, ".osm"), strings.HasSuffix(path, ".xml"):
		return NewXMLSource(path), nil
	default:
		return nil, fmt.Errorf("unsupported map file %q, expected .osm.pbf or .osm", path)
	}
}
