package engine

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"lintang/osmroute/pkg/datastructure"
	"lintang/osmroute/pkg/engine/connectivity"
	"lintang/osmroute/pkg/engine/routingalgorithm"
	"lintang/osmroute/pkg/osmparser"
	"lintang/osmroute/pkg/snap"

	"github.com/k0kubun/go-ansi"
	"go.uber.org/zap"
)

// DefaultRtreeThreshold is the node count from which nearest node lookups use the rtree.
const DefaultRtreeThreshold = 5000

type options struct {
	logger         *zap.Logger
	rtreeThreshold int
	workers        int
	progressWriter io.Writer
}

type Option func(*options)

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRtreeThreshold sets the node count from which nearest node queries use an rtree
// instead of a linear scan. A negative value never builds the rtree.
func WithRtreeThreshold(n int) Option {
	return func(o *options) {
		o.rtreeThreshold = n
	}
}

// WithWorkers sets the number of goroutines used by batch queries.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

func WithProgressWriter(w io.Writer) Option {
	return func(o *options) {
		o.progressWriter = w
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:         zap.NewNop(),
		rtreeThreshold: DefaultRtreeThreshold,
		workers:        runtime.GOMAXPROCS(0),
		progressWriter: ansi.NewAnsiStdout(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// GraphHandle bundles the frozen road network with everything derived from it.
// It is read only and safe for concurrent queries.
type GraphHandle struct {
	graph         *datastructure.Graph
	speeds        datastructure.SpeedMap
	locationIndex datastructure.LocationIndex
	locator       snap.Locator
	components    *connectivity.Components
	route         *routingalgorithm.RouteAlgorithm
	logger        *zap.Logger
	workers       int
}

// BuildGraph filters the highways of ways, builds the graph and speed map, resolves node
// locations from nodes and derives the location index.
func BuildGraph(ctx context.Context, nodes osmparser.NodeSource, ways osmparser.WaySource, opts ...Option) (*GraphHandle, error) {
	o := newOptions(opts)

	highways, err := osmparser.ReadHighways(ctx, ways)
	if err != nil {
		return nil, fmt.Errorf("read highways: %w", err)
	}
	o.logger.Sugar().Infof("accepted %d highway ways", len(highways))

	builder := osmparser.NewGraphBuilder(
		osmparser.WithBuilderLogger(o.logger),
		osmparser.WithProgressWriter(o.progressWriter),
	)
	g, speeds, err := builder.Build(ctx, highways, nodes)
	if err != nil {
		return nil, err
	}
	return newGraphHandle(g, speeds, o), nil
}

// NewGraphHandle wraps an already built graph. g is frozen if it is not yet.
func NewGraphHandle(g *datastructure.Graph, speeds datastructure.SpeedMap, opts ...Option) *GraphHandle {
	return newGraphHandle(g, speeds, newOptions(opts))
}

func newGraphHandle(g *datastructure.Graph, speeds datastructure.SpeedMap, o options) *GraphHandle {
	g.Freeze()

	h := &GraphHandle{
		graph:         g,
		speeds:        speeds,
		locationIndex: datastructure.BuildLocationIndex(g),
		components:    connectivity.KosarajuSCC(g),
		route:         routingalgorithm.NewRouteAlgorithm(g, speeds, o.logger),
		logger:        o.logger,
		workers:       o.workers,
	}

	if o.rtreeThreshold >= 0 && g.NumNodes() >= o.rtreeThreshold {
		h.locator = snap.NewRtreeLocator(g)
		o.logger.Sugar().Infof("nearest node queries use an rtree over %d nodes", g.NumNodes())
	} else {
		h.locator = snap.NewLinearLocator(g)
	}

	if collisions := g.NumNodes() - len(h.locationIndex); collisions > 0 {
		o.logger.Sugar().Warnf("%d nodes share a coordinate with another node", collisions)
	}
	o.logger.Sugar().Infof("graph ready: %d nodes, %d edges, %d strongly connected components",
		g.NumNodes(), g.NumEdges(), h.components.Count())
	return h
}

func (h *GraphHandle) Graph() *datastructure.Graph {
	return h.graph
}

func (h *GraphHandle) Speeds() datastructure.SpeedMap {
	return h.speeds
}

func (h *GraphHandle) LocationIndex() datastructure.LocationIndex {
	return h.locationIndex
}

// NodeAt returns the node located exactly at c.
func (h *GraphHandle) NodeAt(c datastructure.Coordinate) (datastructure.NodeID, bool) {
	return h.locationIndex.NodeAt(c)
}
