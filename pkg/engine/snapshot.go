package engine

import (
	"fmt"
	"os"

	"lintang/osmroute/pkg/datastructure"
)

// SaveToFile writes the graph and speed map as a zstd compressed snapshot.
func (h *GraphHandle) SaveToFile(path string) error {
	bb, err := datastructure.EncodeSnapshot(datastructure.ToSnapshot(h.graph, h.speeds))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, bb, 0o644); err != nil {
		return fmt.Errorf("write graph snapshot %s: %w", path, err)
	}
	h.logger.Sugar().Infof("graph snapshot saved to %s (%d bytes)", path, len(bb))
	return nil
}

// LoadGraphFile restores a handle saved with SaveToFile.
func LoadGraphFile(path string, opts ...Option) (*GraphHandle, error) {
	bb, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read graph snapshot %s: %w", path, err)
	}
	snap, err := datastructure.DecodeSnapshot(bb)
	if err != nil {
		return nil, err
	}
	return FromSnapshot(snap, opts...)
}

func FromSnapshot(snap datastructure.GraphSnapshot, opts ...Option) (*GraphHandle, error) {
	g, speeds, err := datastructure.FromSnapshot(snap)
	if err != nil {
		return nil, err
	}
	return NewGraphHandle(g, speeds, opts...), nil
}

// Snapshot returns the flat form of the handle's graph, e.g. to persist it in a kv store.
func (h *GraphHandle) Snapshot() datastructure.GraphSnapshot {
	return datastructure.ToSnapshot(h.graph, h.speeds)
}
