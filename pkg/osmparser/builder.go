package osmparser

import (
	"context"
	"fmt"
	"io"

	"lintang/osmroute/pkg/datastructure"

	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

type GraphBuilder struct {
	logger         *zap.Logger
	progressWriter io.Writer
}

type BuilderOption func(*GraphBuilder)

func WithBuilderLogger(logger *zap.Logger) BuilderOption {
	return func(b *GraphBuilder) {
		b.logger = logger
	}
}

// WithProgressWriter redirects the progress bar. io.Discard hides it.
func WithProgressWriter(w io.Writer) BuilderOption {
	return func(b *GraphBuilder) {
		b.progressWriter = w
	}
}

func NewGraphBuilder(opts ...BuilderOption) *GraphBuilder {
	b := &GraphBuilder{
		logger:         zap.NewNop(),
		progressWriter: ansi.NewAnsiStdout(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build turns accepted ways into a frozen Graph and its SpeedMap, then resolves node
// locations from nodes. Node records not referenced by any way are ignored and nodes
// without a record keep location (0,0).
func (b *GraphBuilder) Build(ctx context.Context, ways []WayRecord, nodes NodeSource) (*datastructure.Graph, datastructure.SpeedMap, error) {
	g := datastructure.NewGraph()
	speeds := datastructure.NewSpeedMap()

	bar := newProgressBar(len(ways), b.progressWriter)
	oneWays := 0
	for i, way := range ways {
		if i%checkContextEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
		}

		speed, err := ResolveSpeedLimit(way, func(err error) {
			b.logger.Warn("ignoring speed tag", zap.Int64("way_id", way.ID), zap.Error(err))
		})
		if err != nil {
			return nil, nil, fmt.Errorf("build graph: %w", err)
		}

		twoWay := way.IsTwoWay()
		if !twoWay {
			oneWays++
		}
		addWay(g, speeds, way, speed, twoWay)
		if bar != nil {
			bar.Add(1)
		}
	}
	if bar != nil {
		bar.Finish()
		fmt.Fprintln(b.progressWriter)
	}

	missing, err := resolveLocations(ctx, g, nodes)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve node locations: %w", err)
	}

	g.Freeze()

	b.logger.Sugar().Infof("road network graph built: %d ways (%d oneway), %d nodes, %d edges",
		len(ways), oneWays, g.NumNodes(), g.NumEdges())
	if missing > 0 {
		b.logger.Sugar().Warnf("%d graph nodes have no node record, located at (0,0)", missing)
	}
	return g, speeds, nil
}

func addWay(g *datastructure.Graph, speeds datastructure.SpeedMap, way WayRecord, speed float64, twoWay bool) {
	for _, id := range way.Nodes {
		g.AddNode(id)
	}

	for i := 0; i+1 < len(way.Nodes); i++ {
		from, to := way.Nodes[i], way.Nodes[i+1]
		g.AddEdge(from, to)
		speeds.Set(from, to, speed)
		if twoWay {
			g.AddEdge(to, from)
			speeds.Set(to, from, speed)
		}
	}
}

// resolveLocations returns the number of graph nodes that got no location.
func resolveLocations(ctx context.Context, g *datastructure.Graph, nodes NodeSource) (int, error) {
	located := make(map[datastructure.NodeID]struct{}, g.NumNodes())
	err := nodes.ScanNodes(ctx, func(n NodeRecord) error {
		if !n.HasLocation {
			return nil
		}
		if g.SetLocation(n.ID, n.Location()) {
			located[n.ID] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return g.NumNodes() - len(located), nil
}

// newProgressBar returns nil when there is nothing to report.
func newProgressBar(n int, w io.Writer) *progressbar.ProgressBar {
	if n == 0 {
		return nil
	}
	return progressbar.NewOptions(n,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription("[cyan][1/2][reset] building road network graph ..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
