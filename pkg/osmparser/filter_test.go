package osmparser

import (
	"context"
	"fmt"
	"testing"

	"lintang/osmroute/pkg/datastructure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func way(id int64, tags map[string]string, nodes ...datastructure.NodeID) WayRecord {
	return WayRecord{ID: id, Nodes: nodes, Tags: tags}
}

func TestFilterHighways(t *testing.T) {
	ways := []WayRecord{
		way(1, map[string]string{"highway": "residential"}, 1, 2),
		way(2, map[string]string{"highway": "footway"}, 2, 3),
		way(3, map[string]string{"name": "no class"}, 3, 4),
		way(4, map[string]string{"highway": "motorway_link"}, 4, 5),
		way(5, map[string]string{"building": "yes"}, 5, 6),
		way(6, map[string]string{"highway": "living_street"}, 6, 7),
	}

	filtered := FilterHighways(ways)
	ids := []int64{}
	for _, w := range filtered {
		ids = append(ids, w.ID)
	}
	assert.Equal(t, []int64{1, 4, 6}, ids)
	assert.Len(t, ways, 6)
}

func TestIsHighwayAllowedClasses(t *testing.T) {
	for class := range AllowedRoadType {
		assert.True(t, IsHighway(way(1, map[string]string{"highway": class})), class)
		_, ok := DefaultSpeedLimitMph[class]
		assert.True(t, ok, "default speed for %s", class)
	}
	for _, class := range []string{"service", "track", "path", "cycleway", ""} {
		assert.False(t, IsHighway(way(1, map[string]string{"highway": class})), class)
	}
}

func TestReadHighwaysBatches(t *testing.T) {
	ways := make([]WayRecord, 0, 2*filterBatchSize+3)
	want := []int64{}
	for i := 0; i < 2*filterBatchSize+3; i++ {
		class := "footway"
		if i%3 == 0 {
			class = "primary"
			want = append(want, int64(i))
		}
		ways = append(ways, way(int64(i), map[string]string{"highway": class}))
	}

	got, err := ReadHighways(context.Background(), NewSliceSource(nil, ways))
	require.NoError(t, err)
	ids := make([]int64, len(got))
	for i, w := range got {
		ids[i] = w.ID
	}
	assert.Equal(t, want, ids)
}

func TestReadHighwaysCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadHighways(ctx, NewSliceSource(nil, []WayRecord{way(1, map[string]string{"highway": "primary"})}))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadHighwaysSourceError(t *testing.T) {
	_, err := ReadHighways(context.Background(), failingSource{})
	assert.EqualError(t, err, "broken source")
}

type failingSource struct{}

func (failingSource) ScanWays(ctx context.Context, fn func(WayRecord) error) error {
	return fmt.Errorf("broken source")
}
