package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"time"

	_ "lintang/osmroute/docs"
	"lintang/osmroute/pkg/config"
	"lintang/osmroute/pkg/engine"
	"lintang/osmroute/pkg/kv"
	"lintang/osmroute/pkg/logger"
	"lintang/osmroute/pkg/osmparser"
	"lintang/osmroute/pkg/server/rest"
	"lintang/osmroute/pkg/server/rest/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

var (
	configFile   = flag.String("config", "", "yaml config file")
	listenAddr   = flag.String("listenaddr", "", "server listen address")
	mapFile      = flag.String("f", "", "openstreetmap file, used when no stored graph is found")
	memprofile   = flag.String("memprofile", "", "write memory profile to this file")
	useRateLimit = flag.Int("ratelimit", -1, "max in flight requests, 0 disables it")
	dev          = flag.Bool("dev", false, "human readable development logging")
)

//	@title			osmroute API
//	@version		1.0
//	@description	simple openstreetmap routing engine in go

//	@contact.name	lintang birda saputra
//	@description 	simple openstreetmap routing engine in go. A* for the shortest distance route and uniform cost search for the fastest route

//	@license.name	GNU Affero General Public License v3.0
//	@license.url	https://www.gnu.org/licenses/gpl-3.0.en.html

// @host		localhost:5000
// @BasePath	/api
// @schemes	http
func main() {
	flag.Parse()
	os.Exit(run())
}

// run serves until interrupted and returns the process exit code.
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
	if *listenAddr != "" {
		cfg.Server.ListenAddr = *listenAddr
	}
	if *mapFile != "" {
		cfg.Map.File = *mapFile
	}
	if *useRateLimit >= 0 {
		cfg.Server.RateLimit = *useRateLimit
	}

	lg, err := logger.New(*dev || cfg.Log.Development)
	if err != nil {
		log.Print(err)
		return 1
	}
	defer lg.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	h, err := loadGraph(ctx, cfg, lg)
	if err != nil {
		lg.Error("load road network graph", zap.Error(err))
		return 1
	}
	if err := recordMemProfile(*memprofile, "load_graph"); err != nil {
		lg.Warn("write memory profile", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	m := rest.NewMetrics(reg)

	r := chi.NewRouter()

	r.Use(middleware.Logger)

	r.Use(rest.PromeHttpMiddleware(m)) // prometheus http middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if cfg.Server.RateLimit > 0 {
		r.Use(middleware.Throttle(cfg.Server.RateLimit))
	}

	r.Mount("/debug", middleware.Profiler())

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost%s/swagger/doc.json", cfg.Server.ListenAddr)), //The url pointing to API definition
	))

	navigatorSvc := service.NewNavigationService(h, lg)
	rest.NavigatorRouter(r, navigatorSvc, m)

	srv := &http.Server{Addr: cfg.Server.ListenAddr, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	lg.Info("server started", zap.String("addr", cfg.Server.ListenAddr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		lg.Error("server stopped", zap.Error(err))
		return 1
	}
	return 0
}

// loadGraph prefers the snapshot file, then the kv store, and finally builds the graph from the osm file.
func loadGraph(ctx context.Context, cfg config.Config, lg *zap.Logger) (*engine.GraphHandle, error) {
	opts := append(cfg.EngineOptions(), engine.WithLogger(lg))

	if cfg.Storage.GraphFile != "" {
		if _, err := os.Stat(cfg.Storage.GraphFile); err == nil {
			lg.Info("loading graph snapshot", zap.String("file", cfg.Storage.GraphFile))
			return engine.LoadGraphFile(cfg.Storage.GraphFile, opts...)
		}
	}

	if cfg.Storage.Dir != "" {
		store, err := kv.Open(cfg.Storage.Backend, cfg.Storage.Dir)
		if err != nil {
			return nil, err
		}
		kvDB := kv.NewKVDB(store, lg)
		defer kvDB.Close()

		snap, err := kvDB.LoadGraph(ctx)
		switch {
		case err == nil:
			return engine.FromSnapshot(snap, opts...)
		case errors.Is(err, kv.ErrGraphNotFound):
			lg.Warn("no graph in key-value db, building from osm file", zap.String("dir", cfg.Storage.Dir))
		default:
			return nil, err
		}
	}

	src, err := osmparser.OpenSource(cfg.Map.File)
	if err != nil {
		return nil, err
	}
	return engine.BuildGraph(ctx, src, src, opts...)
}

func recordMemProfile(memprofile string, name string) error {
	if memprofile == "" {
		return nil
	}
	path := strings.Replace(memprofile, ".mprof", fmt.Sprintf("%s.mprof", name), -1)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return pprof.WriteHeapProfile(f)
}
