package datastructure

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// EncodeAll and DecodeAll are safe for concurrent use, so one encoder and decoder serve every snapshot.
var (
	snapshotEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	snapshotDecoder, _ = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
)

func compressSnapshot(raw []byte) []byte {
	return snapshotEncoder.EncodeAll(raw, make([]byte, 0, len(raw)/4))
}

func decompressSnapshot(compressed []byte) ([]byte, error) {
	raw, err := snapshotDecoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	return raw, nil
}
