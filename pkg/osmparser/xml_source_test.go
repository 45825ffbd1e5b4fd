package osmparser

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"lintang/osmroute/pkg/datastructure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOSM = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
  <node id="1" lat="42.3600" lon="-71.0600"/>
  <node id="2" lat="42.3610" lon="-71.0600"/>
  <node id="3" lat="42.3620" lon="-71.0610">
    <tag k="highway" v="traffic_signals"/>
  </node>
  <node id="4" lat="42.3700" lon="-71.0700"/>
  <way id="100">
    <nd ref="1"/>
    <nd ref="2"/>
    <nd ref="3"/>
    <tag k="highway" v="residential"/>
    <tag k="maxspeed" v="25 mph"/>
  </way>
  <way id="101">
    <nd ref="3"/>
    <nd ref="4"/>
    <tag k="highway" v="footway"/>
  </way>
  <way id="102">
    <nd ref="2"/>
    <nd ref="4"/>
    <tag k="highway" v="primary"/>
    <tag k="oneway" v="yes"/>
  </way>
</osm>
`

func writeTestOSM(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "test.osm")
	require.NoError(t, os.WriteFile(path, []byte(testOSM), 0o644))
	return path
}

func TestXMLSource(t *testing.T) {
	path := writeTestOSM(t)

	src, err := OpenSource(path)
	require.NoError(t, err)

	nodes := []NodeRecord{}
	err = src.ScanNodes(context.Background(), func(n NodeRecord) error {
		nodes = append(nodes, n)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, nodes, 4)
	assert.Equal(t, datastructure.NodeID(3), nodes[2].ID)
	assert.Equal(t, "traffic_signals", nodes[2].Tags["highway"])
	assert.Equal(t, datastructure.NewCoordinate(42.36, -71.06), nodes[0].Location())

	ways, err := ReadHighways(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, ways, 2)
	assert.Equal(t, int64(100), ways[0].ID)
	assert.Equal(t, []datastructure.NodeID{1, 2, 3}, ways[0].Nodes)
	assert.False(t, ways[1].IsTwoWay())

	g, speeds, err := newTestBuilder().Build(context.Background(), ways, src)
	require.NoError(t, err)
	assert.Equal(t, 4, g.NumNodes())
	assert.True(t, g.HasEdge(2, 4))
	assert.False(t, g.HasEdge(4, 2))
	assert.False(t, g.HasEdge(3, 4))
	speed, _ := speeds.Speed(2, 1)
	assert.Equal(t, 25.0, speed)
}

func TestOpenSourceUnsupported(t *testing.T) {
	_, err := OpenSource("map.geojson")
	assert.Error(t, err)

	src, err := OpenSource("map.osm.pbf")
	require.NoError(t, err)
	assert.IsType(t, &PBFSource{}, src)
}

func TestXMLSourceMissingFile(t *testing.T) {
	src := NewXMLSource(filepath.Join(t.TempDir(), "missing.osm"))
	err := src.ScanWays(context.Background(), func(WayRecord) error { return nil })
	assert.Error(t, err)
}
