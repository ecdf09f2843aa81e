package persistence

import (
	"fmt"

	"github.com/xiaomi388/manuscripts/pkg/types"
)

// Store abstracts record list persistence. Implementations always load and
// dump the whole list.
type Store interface {
	LoadRecords() ([]types.Record, error)
	DumpRecords(records []types.Record) error
	Close() error
}

// NewStoreWithBackend creates a Store for the given backend and optional path.
func NewStoreWithBackend(backend, path string) (Store, error) {
	return NewStore(types.StorageConfig{Backend: backend, Path: path})
}

// NewStore creates a Store based on the storage configuration.
func NewStore(cfg types.StorageConfig) (Store, error) {
	backend := cfg.Backend
	if backend == "" {
		backend = "json"
	}

	switch backend {
	case "json":
		path := cfg.Path
		if path == "" {
			path = DefaultRecordPath
		}
		return NewJSONStore(path), nil
	case "sqlite":
		path := cfg.Path
		if path == "" {
			path = DefaultSQLitePath
		}
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}
