package tempnotes

import (
	"context"
	_ "embed"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/tempnotes/internal/platform"
	"github.com/aretw0/tempnotes/pkg/core"
	"github.com/aretw0/tempnotes/pkg/refresh"
)

//go:embed VERSION
var version string

// Version is the library version.
var Version = strings.TrimSpace(version)

// --- Types ---

// Note is a public alias for the core note entity.
type Note = core.Note

// Draft is a public alias for a note that has not been created yet.
type Draft = core.Draft

// Store is a public alias for the note store.
type Store = core.Store

// Query is a public alias for the note filter.
type Query = core.Query

// --- Configuration ---

// Option defines a functional option for configuring tempnotes.
type Option = platform.Option

// Adapter names accepted by WithAdapter.
const (
	AdapterFS     = platform.AdapterFS
	AdapterSQLite = platform.AdapterSQLite
	AdapterMemory = platform.AdapterMemory
)

// WithLogger sets the logger for the store and its storage.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStorage allows injecting a custom storage backend.
func WithStorage(s core.Storage) Option {
	return platform.WithStorage(s)
}

// WithAdapter selects the storage backend by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithStorageKey sets the key the note collection is stored under.
func WithStorageKey(key string) Option {
	return platform.WithStorageKey(key)
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// WithErrorHandler registers a callback for errors that are otherwise only logged.
func WithErrorHandler(fn func(error)) Option {
	return platform.WithErrorHandler(fn)
}

// WithMustExist ensures the storage location must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithReadOnly rejects every write.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the sandbox used under `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// --- Factory ---

// New creates a note store backed by the storage at uri.
func New(uri string, opts ...Option) (*core.Store, error) {
	return platform.New(context.Background(), uri, opts...)
}

// Init initializes the storage backend explicitly.
func Init(uri string, opts ...Option) (core.Storage, error) {
	return platform.Init(context.Background(), uri, opts...)
}

// NewRefresher returns a refresher over store that also reloads on storage
// changes when the backend can report them.
func NewRefresher(store *core.Store, opts ...refresh.Option) *refresh.Refresher {
	if w, ok := store.Storage().(core.Watchable); ok {
		opts = append([]refresh.Option{refresh.WithWatch(w, store.Key())}, opts...)
	}
	return refresh.New(store, opts...)
}

// --- Utils ---

// FindDataDir looks upwards for a project-local .tempnotes directory.
func FindDataDir(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}
