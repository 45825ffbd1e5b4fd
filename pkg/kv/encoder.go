package kv

import (
	"fmt"

	"lintang/osmroute/pkg/datastructure"

	"github.com/DataDog/zstd"
	"github.com/kelindar/binary"
)

// node batches are written once by preprocessing and read on every server start
const valueCompressionLevel = zstd.BestCompression

// kvNodes is the value stored under one node batch key.
type kvNodes struct {
	Nodes  []datastructure.SnapshotNode
	Speeds []datastructure.SnapshotSpeed
}

// kvMeta is stored under metaKey and tells the loader how many node batches to read.
type kvMeta struct {
	Version  uint32
	Batches  int
	NumNodes int
}

func encodeNodes(nodes kvNodes) ([]byte, error) {
	bb, err := binary.Marshal(nodes)
	if err != nil {
		return nil, err
	}
	compressed, err := zstd.CompressLevel(nil, bb, valueCompressionLevel)
	if err != nil {
		return nil, fmt.Errorf("zstd compress: %w", err)
	}
	return compressed, nil
}

func decodeNodes(bbCompressed []byte) (kvNodes, error) {
	var nodes kvNodes
	bb, err := zstd.Decompress(nil, bbCompressed)
	if err != nil {
		return nodes, fmt.Errorf("zstd decompress: %w", err)
	}
	err = binary.Unmarshal(bb, &nodes)
	return nodes, err
}

func encodeMeta(meta kvMeta) ([]byte, error) {
	return binary.Marshal(meta)
}

func decodeMeta(bb []byte) (kvMeta, error) {
	var meta kvMeta
	err := binary.Unmarshal(bb, &meta)
	return meta, err
}
