package kv

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"lintang/osmroute/pkg/concurrent"
	"lintang/osmroute/pkg/datastructure"

	"go.uber.org/zap"
)

const (
	metaKey         = "graph:meta"
	nodeBatchPrefix = "graph:nodes:"
	kvVersion       = 1
)

var ErrGraphNotFound = errors.New("graph not found in kv store")

type KVDB struct {
	store     Store
	logger    *zap.Logger
	batchSize int
}

func NewKVDB(store Store, logger *zap.Logger) *KVDB {
	return &KVDB{store: store, logger: logger, batchSize: 1000}
}

func nodeBatchKey(i int) []byte {
	return []byte(fmt.Sprintf("%s%d", nodeBatchPrefix, i))
}

type encodedBatch struct {
	key []byte
	val []byte
	err error
}

// SaveGraph splits snap into batches of nodes, each with the speeds of its out edges, encodes
// and compresses them on a worker pool and writes them followed by the meta key.
func (k *KVDB) SaveGraph(ctx context.Context, snap datastructure.GraphSnapshot) error {
	k.logger.Sugar().Infof("saving graph to key-value db: %d nodes, %d speeds...", len(snap.Nodes), len(snap.Speeds))

	speedsFrom := make(map[int64][]datastructure.SnapshotSpeed, len(snap.Nodes))
	for _, s := range snap.Speeds {
		speedsFrom[s.From] = append(speedsFrom[s.From], s)
	}

	numBatches := (len(snap.Nodes) + k.batchSize - 1) / k.batchSize
	workers := concurrent.NewWorkerPool[concurrent.SaveNodesJobItem, encodedBatch](runtime.GOMAXPROCS(0), numBatches)
	for i := 0; i < numBatches; i++ {
		start := i * k.batchSize
		end := min(start+k.batchSize, len(snap.Nodes))
		nodes := snap.Nodes[start:end]

		speeds := make([]datastructure.SnapshotSpeed, 0, len(nodes))
		for _, n := range nodes {
			speeds = append(speeds, speedsFrom[n.ID]...)
		}
		workers.AddJob(concurrent.SaveNodesJobItem{
			KeyStr: string(nodeBatchKey(i)),
			Nodes:  nodes,
			Speeds: speeds,
		})
	}
	workers.Close()

	workers.Start(func(job concurrent.SaveNodesJobItem) encodedBatch {
		val, err := encodeNodes(kvNodes{Nodes: job.Nodes, Speeds: job.Speeds})
		return encodedBatch{key: []byte(job.KeyStr), val: val, err: err}
	})
	workers.Wait()

	entries := make([]Entry, 0, numBatches+1)
	for res := range workers.CollectResults() {
		if res.err != nil {
			return fmt.Errorf("encode %s: %w", res.key, res.err)
		}
		entries = append(entries, Entry{Key: res.key, Value: res.val})
	}

	meta, err := encodeMeta(kvMeta{Version: kvVersion, Batches: numBatches, NumNodes: len(snap.Nodes)})
	if err != nil {
		return err
	}
	// meta goes last so a partially written graph is never loaded
	if err := k.store.SetBatch(ctx, entries); err != nil {
		return fmt.Errorf("save node batches: %w", err)
	}
	if err := k.store.SetBatch(ctx, []Entry{{Key: []byte(metaKey), Value: meta}}); err != nil {
		return fmt.Errorf("save graph meta: %w", err)
	}

	k.logger.Sugar().Infof("saving %d node batches done", numBatches)
	return nil
}

// LoadGraph reads back a graph written by SaveGraph.
func (k *KVDB) LoadGraph(ctx context.Context) (datastructure.GraphSnapshot, error) {
	bb, err := k.store.Get([]byte(metaKey))
	if errors.Is(err, ErrKeyNotFound) {
		return datastructure.GraphSnapshot{}, ErrGraphNotFound
	}
	if err != nil {
		return datastructure.GraphSnapshot{}, err
	}
	meta, err := decodeMeta(bb)
	if err != nil {
		return datastructure.GraphSnapshot{}, fmt.Errorf("decode graph meta: %w", err)
	}
	if meta.Version != kvVersion {
		return datastructure.GraphSnapshot{}, fmt.Errorf("unsupported kv graph version %d", meta.Version)
	}

	snap := datastructure.GraphSnapshot{
		Version: datastructure.SnapshotVersion,
		Nodes:   make([]datastructure.SnapshotNode, 0, meta.NumNodes),
	}
	for i := 0; i < meta.Batches; i++ {
		if err := ctx.Err(); err != nil {
			return datastructure.GraphSnapshot{}, err
		}
		val, err := k.store.Get(nodeBatchKey(i))
		if err != nil {
			return datastructure.GraphSnapshot{}, fmt.Errorf("read node batch %d: %w", i, err)
		}
		nodes, err := decodeNodes(val)
		if err != nil {
			return datastructure.GraphSnapshot{}, fmt.Errorf("decode node batch %d: %w", i, err)
		}
		snap.Nodes = append(snap.Nodes, nodes.Nodes...)
		snap.Speeds = append(snap.Speeds, nodes.Speeds...)
	}
	k.logger.Sugar().Infof("loaded graph from key-value db: %d nodes", len(snap.Nodes))
	return snap, nil
}

func (k *KVDB) Close() error {
	return k.store.Close()
}
