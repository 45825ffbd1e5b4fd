package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"

	"lintang/osmroute/pkg/config"
	"lintang/osmroute/pkg/engine"
	"lintang/osmroute/pkg/kv"
	"lintang/osmroute/pkg/logger"
	"lintang/osmroute/pkg/osmparser"

	"go.uber.org/zap"
)

var (
	configFile = flag.String("config", "", "yaml config file")
	mapFile    = flag.String("f", "", "openstreetmap file (.osm.pbf, .osm or .xml) for the road network graph")
	graphFile  = flag.String("o", "", "also write the graph as a compressed snapshot file")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	dev        = flag.Bool("dev", false, "human readable development logging")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.ReadConfig(*configFile)
		if err != nil {
			log.Print(err)
			return 1
		}
	}
	if *mapFile != "" {
		cfg.Map.File = *mapFile
	}
	if *graphFile != "" {
		cfg.Storage.GraphFile = *graphFile
	}

	lg, err := logger.New(*dev || cfg.Log.Development)
	if err != nil {
		log.Print(err)
		return 1
	}
	defer lg.Sync()

	if *cpuprofile != "" {
		// ./bin/osmroute-preprocessing -cpuprofile=osmroutecpu.prof
		f, err := os.Create(*cpuprofile)
		if err != nil {
			lg.Error("create cpu profile", zap.Error(err))
			return 1
		}
		defer f.Close()

		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := preprocess(ctx, cfg, lg); err != nil {
		lg.Error("preprocessing failed", zap.Error(err))
		return 1
	}
	return 0
}

func preprocess(ctx context.Context, cfg config.Config, lg *zap.Logger) error {
	lg.Info("reading osm file", zap.String("file", cfg.Map.File))
	src, err := osmparser.OpenSource(cfg.Map.File)
	if err != nil {
		return err
	}

	opts := append(cfg.EngineOptions(), engine.WithLogger(lg))
	h, err := engine.BuildGraph(ctx, src, src, opts...)
	if err != nil {
		return err
	}
	lg.Info("road network graph built",
		zap.Int("nodes", h.Graph().NumNodes()),
		zap.Int("edges", h.Graph().NumEdges()))

	if cfg.Storage.GraphFile != "" {
		if err := h.SaveToFile(cfg.Storage.GraphFile); err != nil {
			return err
		}
	}

	if cfg.Storage.Dir == "" {
		return nil
	}
	store, err := kv.Open(cfg.Storage.Backend, cfg.Storage.Dir)
	if err != nil {
		return err
	}
	kvDB := kv.NewKVDB(store, lg)
	defer kvDB.Close()

	if err := kvDB.SaveGraph(ctx, h.Snapshot()); err != nil {
		return err
	}
	lg.Info("road network graph saved",
		zap.String("backend", cfg.Storage.Backend),
		zap.String("dir", cfg.Storage.Dir))
	return nil
}
