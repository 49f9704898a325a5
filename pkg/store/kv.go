// Package store holds the device-local key-value stores bizdesk persists to.
package store

import (
	"context"

	"github.com/pkg/errors"

	"tableflip.dev/bizdesk/pkg/logging"
)

// KV is the device key-value contract every collection is persisted through.
// Values are JSON-serialised strings.
type KV interface {
	// Get returns the value stored at key. ok is false when the key was never
	// written (or was cleared).
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// Clear drops every key. Used at logout.
	Clear(ctx context.Context) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// Backend names a KV implementation.
type Backend string

const (
	BackendDiskv  Backend = "diskv"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// Watcher is implemented by backends that can report changes made by other
// processes.
type Watcher interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

var (
	// ErrUnknownBackend is returned by Open for unsupported backend names.
	ErrUnknownBackend = errors.New("store: unknown backend")
	// ErrWatchUnsupported is returned when the backend cannot be watched.
	ErrWatchUnsupported = errors.New("store: backend does not support watching")
)

var _ Watcher = (*Diskv)(nil)

// Options selects and locates a backend.
type Options struct {
	Backend Backend
	// Path is a directory for diskv and a database file for sqlite.
	Path string
	// Logger is handed to backends that log, currently diskv's watcher.
	Logger logging.Logger
}

// Open builds the KV described by opts.
func Open(opts Options) (KV, error) {
	switch opts.Backend {
	case "", BackendDiskv:
		d, err := NewDiskv(opts.Path)
		if err != nil {
			return nil, err
		}
		d.Logger = opts.Logger
		return d, nil
	case BackendSQLite:
		return NewSQLite(opts.Path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, errors.Wrapf(ErrUnknownBackend, "%q", opts.Backend)
	}
}
