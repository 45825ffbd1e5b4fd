package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"lintang/osmroute/pkg/config"
	"lintang/osmroute/pkg/datastructure"
	"lintang/osmroute/pkg/engine"
	"lintang/osmroute/pkg/kv"
	"lintang/osmroute/pkg/logger"
	"lintang/osmroute/pkg/osmparser"
	"lintang/osmroute/pkg/util"

	"go.uber.org/zap"
)

type routeOutput struct {
	Objective  string                     `json:"objective"`
	Found      bool                       `json:"found"`
	NodeIDs    []datastructure.NodeID     `json:"node_ids,omitempty"`
	Path       []datastructure.Coordinate `json:"path,omitempty"`
	Polyline   string                     `json:"polyline,omitempty"`
	Distance   float64                    `json:"distance_miles"`
	TravelTime float64                    `json:"travel_time_minutes"`
}

type options struct {
	configFile string
	mapFile    string
	graphFile  string
	useKV      bool
	from       string
	to         string
	objective  string
	asJSON     bool
	dev        bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("route", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configFile, "config", "", "yaml config file")
	fs.StringVar(&o.mapFile, "f", "", "openstreetmap file, used when -graph and the kv store are not set")
	fs.StringVar(&o.graphFile, "graph", "", "graph snapshot file written by preprocessing -o")
	fs.BoolVar(&o.useKV, "kv", false, "load the graph from the configured key-value store")
	fs.StringVar(&o.from, "from", "", "source as lat,lon")
	fs.StringVar(&o.to, "to", "", "destination as lat,lon")
	fs.StringVar(&o.objective, "objective", "", "distance or time")
	fs.BoolVar(&o.asJSON, "json", false, "print the route as json")
	fs.BoolVar(&o.dev, "dev", false, "human readable development logging")
	err := fs.Parse(args)
	return o, err
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit code: 0 when a route was printed, 1 when there is no route or
// something failed. Deferred cleanup runs before the caller exits.
func run(args []string, stdout, stderr io.Writer) int {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}

	cfg := config.Default()
	if o.configFile != "" {
		cfg, err = config.ReadConfig(o.configFile)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}
	if o.mapFile != "" {
		cfg.Map.File = o.mapFile
	}
	if o.objective != "" {
		cfg.Routing.Objective = o.objective
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}
	objective := cfg.Objective()

	src, err := parseLatLon(o.from)
	if err != nil {
		fmt.Fprintf(stderr, "-from: %v\n", err)
		return 1
	}
	dst, err := parseLatLon(o.to)
	if err != nil {
		fmt.Fprintf(stderr, "-to: %v\n", err)
		return 1
	}

	lg, err := logger.New(o.dev || cfg.Log.Development)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer lg.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	h, err := loadGraph(ctx, cfg, o, lg)
	if err != nil {
		lg.Error("load road network graph", zap.Error(err))
		return 1
	}

	route, found, err := h.Route(ctx, src, dst, objective)
	if err != nil {
		lg.Error("route query failed", zap.Error(err))
		return 1
	}

	out := routeOutput{Objective: objective.String(), Found: found}
	if found {
		out.NodeIDs = route.NodeIDs
		out.Path = route.Path
		out.Polyline = datastructure.CreatePolyline(route.Path)
		out.Distance = util.RoundFloat(route.Distance, 3)
		out.TravelTime = util.HoursToMinutes(route.TravelTime, 2)
	}

	if o.asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			lg.Error("write route", zap.Error(err))
			return 1
		}
	} else if found {
		fmt.Fprintf(stdout, "%d nodes, %.3f miles, %.2f minutes\n", len(out.NodeIDs), out.Distance, out.TravelTime)
		fmt.Fprintln(stdout, out.Polyline)
	} else {
		fmt.Fprintln(stdout, "no route found")
	}

	if !found {
		return 1
	}
	return 0
}

func parseLatLon(s string) (datastructure.Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return datastructure.Coordinate{}, fmt.Errorf("expected lat,lon, got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return datastructure.Coordinate{}, err
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return datastructure.Coordinate{}, err
	}
	return datastructure.NewCoordinate(lat, lon), nil
}

func loadGraph(ctx context.Context, cfg config.Config, o options, lg *zap.Logger) (*engine.GraphHandle, error) {
	opts := append(cfg.EngineOptions(), engine.WithLogger(lg))

	switch {
	case o.graphFile != "":
		return engine.LoadGraphFile(o.graphFile, opts...)
	case o.useKV:
		store, err := kv.Open(cfg.Storage.Backend, cfg.Storage.Dir)
		if err != nil {
			return nil, err
		}
		kvDB := kv.NewKVDB(store, lg)
		defer kvDB.Close()

		snap, err := kvDB.LoadGraph(ctx)
		if err != nil {
			return nil, err
		}
		return engine.FromSnapshot(snap, opts...)
	default:
		src, err := osmparser.OpenSource(cfg.Map.File)
		if err != nil {
			return nil, err
		}
		return engine.BuildGraph(ctx, src, src, opts...)
	}
}
