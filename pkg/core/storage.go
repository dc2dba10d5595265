package core

import "context"

// Storage is the key-value primitive the store persists its collection into.
// Adhering to this interface keeps the core independent of the underlying
// backend (memory, filesystem, SQLite).
type Storage interface {
	// Get returns the value stored under key, or nil and no error if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
}

// Initializer is implemented by backends that need setup before first use
// (create directories, run migrations).
type Initializer interface {
	Initialize(ctx context.Context) error
}

// Change is emitted by a Watchable storage when a key is rewritten,
// possibly by another process.
type Change struct {
	Key       string
	Timestamp int64 // Unix timestamp
}

// Watchable is implemented by backends that can report writes to a key.
type Watchable interface {
	// Watch emits a Change every time key is rewritten until ctx is cancelled.
	Watch(ctx context.Context, key string) (<-chan Change, error)
}
