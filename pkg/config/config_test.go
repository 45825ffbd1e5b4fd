package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"lintang/osmroute/pkg/engine"
	"lintang/osmroute/pkg/kv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  listen-addr: ":8080"
  rate-limit: 64
map:
  file: jogja.osm.pbf
storage:
  backend: pebble
  dir: /tmp/osmroute
routing:
  rtree-threshold: -1
  workers: 3
  objective: time
`)
	c, err := ReadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.Server.ListenAddr)
	assert.Equal(t, 64, c.Server.RateLimit)
	assert.Equal(t, "jogja.osm.pbf", c.Map.File)
	assert.Equal(t, kv.BackendPebble, c.Storage.Backend)
	assert.Equal(t, "/tmp/osmroute", c.Storage.Dir)
	assert.Equal(t, -1, c.Routing.RtreeThreshold)
	assert.Equal(t, 3, c.Routing.Workers)
	assert.Equal(t, "time", c.Routing.Objective)
	assert.Equal(t, engine.FastestTime, c.Objective())
	assert.Len(t, c.EngineOptions(), 2)
}

func TestReadConfigKeepsDefaults(t *testing.T) {
	c, err := ReadConfig(writeConfig(t, "map:\n  file: other.osm\n"))
	require.NoError(t, err)

	assert.Equal(t, "other.osm", c.Map.File)
	assert.Equal(t, ":5000", c.Server.ListenAddr)
	assert.Equal(t, kv.BackendBadger, c.Storage.Backend)
	assert.Equal(t, engine.DefaultRtreeThreshold, c.Routing.RtreeThreshold)
	assert.Equal(t, runtime.GOMAXPROCS(0), c.Routing.Workers)
	assert.Equal(t, "distance", c.Routing.Objective)
	assert.Equal(t, engine.ShortestDistance, c.Objective())
}

func TestReadConfigErrors(t *testing.T) {
	_, err := ReadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = ReadConfig(writeConfig(t, "storage:\n  backend: bolt\n"))
	assert.ErrorContains(t, err, "unknown storage backend")

	_, err = ReadConfig(writeConfig(t, "routing:\n  objective: scenic\n"))
	assert.ErrorContains(t, err, "routing.objective")

	_, err = ReadConfig(writeConfig(t, "routing:\n  workers: 0\n"))
	assert.Error(t, err)
}

func TestObjective(t *testing.T) {
	c := Default()
	for in, want := range map[string]engine.Objective{
		"distance": engine.ShortestDistance,
		"shortest": engine.ShortestDistance,
		"":         engine.ShortestDistance,
		"fastest":  engine.FastestTime,
		"time":     engine.FastestTime,
	} {
		c.Routing.Objective = in
		assert.NoError(t, c.Validate(), in)
		assert.Equal(t, want, c.Objective(), in)
	}

	c.Routing.Objective = "scenic"
	assert.Error(t, c.Validate())
	assert.Equal(t, engine.ShortestDistance, c.Objective())
}
