package config

import (
	"fmt"
	"os"
	"runtime"

	"lintang/osmroute/pkg/engine"
	"lintang/osmroute/pkg/kv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		ListenAddr string `yaml:"listen-addr"`
		// RateLimit caps the number of in flight requests. 0 disables it.
		RateLimit int `yaml:"rate-limit"`
	} `yaml:"server"`
	Map struct {
		File string `yaml:"file"`
	} `yaml:"map"`
	Storage StorageOptions `yaml:"storage"`
	Routing struct {
		RtreeThreshold int `yaml:"rtree-threshold"`
		Workers        int `yaml:"workers"`
		// Objective is the default search objective, "distance" or "time".
		Objective string `yaml:"objective"`
	} `yaml:"routing"`
	Log struct {
		Development bool `yaml:"development"`
	} `yaml:"log"`
}

type StorageOptions struct {
	Backend string `yaml:"backend"`
	// Dir is the kv store directory. Empty means no kv store.
	Dir string `yaml:"dir"`
	// GraphFile is the compressed snapshot file. Empty means no snapshot file.
	GraphFile string `yaml:"graph-file"`
}

func Default() Config {
	var c Config
	c.Server.ListenAddr = ":5000"
	c.Map.File = "map.osm.pbf"
	c.Storage.Backend = kv.BackendBadger
	c.Storage.Dir = "./osmroute_db"
	c.Routing.RtreeThreshold = engine.DefaultRtreeThreshold
	c.Routing.Workers = runtime.GOMAXPROCS(0)
	c.Routing.Objective = engine.ShortestDistance.String()
	return c
}

// ReadConfig reads a yaml file on top of Default. Keys missing from the file keep their default.
func ReadConfig(file string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(file)
	if err != nil {
		return c, fmt.Errorf("read config %s: %w", file, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse config %s: %w", file, err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c Config) Validate() error {
	switch c.Storage.Backend {
	case kv.BackendBadger, kv.BackendPebble:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Routing.Workers < 1 {
		return fmt.Errorf("routing.workers must be positive, got %d", c.Routing.Workers)
	}
	if _, err := engine.ParseObjective(c.Routing.Objective); err != nil {
		return fmt.Errorf("routing.objective: %w", err)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate-limit must not be negative, got %d", c.Server.RateLimit)
	}
	return nil
}

// Objective returns the parsed routing objective. Invalid values fall back to ShortestDistance,
// Validate reports them.
func (c Config) Objective() engine.Objective {
	o, err := engine.ParseObjective(c.Routing.Objective)
	if err != nil {
		return engine.ShortestDistance
	}
	return o
}

// EngineOptions turns the routing section into engine options.
func (c Config) EngineOptions() []engine.Option {
	return []engine.Option{
		engine.WithRtreeThreshold(c.Routing.RtreeThreshold),
		engine.WithWorkers(c.Routing.Workers),
	}
}
