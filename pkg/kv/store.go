package kv

import (
	"context"
	"errors"
	"fmt"
)

var ErrKeyNotFound = errors.New("key not found")

type Entry struct {
	Key   []byte
	Value []byte
}

// Store is the key value backend the graph is persisted to.
type Store interface {
	// SetBatch writes entries atomically per backend batch.
	SetBatch(ctx context.Context, entries []Entry) error
	// Get returns ErrKeyNotFound when key is absent.
	Get(key []byte) ([]byte, error)
	Close() error
}

const (
	BackendBadger = "badger"
	BackendPebble = "pebble"
)

// Open opens the named backend at dir. An empty dir keeps everything in memory.
func Open(backend, dir string) (Store, error) {
	switch backend {
	case BackendBadger, "":
		return OpenBadger(dir)
	case BackendPebble:
		return OpenPebble(dir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
