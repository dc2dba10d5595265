package platform

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/aretw0/tempnotes/pkg/adapters/fs"
	"github.com/aretw0/tempnotes/pkg/adapters/memory"
	"github.com/aretw0/tempnotes/pkg/adapters/sqlite"
	"github.com/aretw0/tempnotes/pkg/core"
)

// SQLiteFileName is the database created inside the path given to the sqlite adapter.
const SQLiteFileName = "tempnotes.db"

// Init builds and initializes the storage backend described by opts.
// The uri argument is adapter-specific: a directory for "fs" and "sqlite",
// ignored for "memory".
func Init(ctx context.Context, uri string, opts ...Option) (core.Storage, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return initStorage(ctx, uri, o)
}

func initStorage(ctx context.Context, uri string, o *options) (core.Storage, error) {
	if o.storage != nil {
		return o.storage, nil
	}

	var (
		storage core.Storage
		err     error
	)
	switch o.adapter {
	case AdapterFS:
		storage = fs.NewStorage(fs.Config{
			Path:         resolve(uri, o),
			MustExist:    o.mustExist,
			ReadOnly:     o.readOnly,
			Logger:       o.log(),
			ErrorHandler: o.errorHandler,
		})
	case AdapterSQLite:
		storage, err = initSQLite(ctx, uri, o)
	case AdapterMemory:
		storage = memory.NewStorage()
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
	if err != nil {
		return nil, err
	}

	if in, ok := storage.(core.Initializer); ok {
		if err := in.Initialize(ctx); err != nil {
			if c, ok := storage.(io.Closer); ok {
				_ = c.Close()
			}
			return nil, err
		}
	}
	return storage, nil
}

func initSQLite(ctx context.Context, uri string, o *options) (core.Storage, error) {
	dir := resolve(uri, o)
	// The directory is prepared by the fs adapter's rules so both backends
	// honour MustExist and the dev sandbox the same way.
	if err := fs.NewStorage(fs.Config{Path: dir, MustExist: o.mustExist, ReadOnly: o.readOnly, Logger: o.log()}).Initialize(ctx); err != nil {
		return nil, err
	}

	dsn := filepath.Join(dir, SQLiteFileName)
	if !o.readOnly {
		return sqlite.Open(dsn, o.log())
	}
	return sqlite.Open("file:"+dsn+"?mode=ro", o.log(), sqlite.WithReadOnly())
}

// resolve applies the dev sandbox to a file-based location.
func resolve(uri string, o *options) string {
	bypass := o.readOnly || !o.devSafety
	useTemp := o.forceTemp || (IsDevRun() && !bypass)
	path := ResolvePath(uri, useTemp)

	if useTemp && path != filepath.Clean(uri) {
		o.log().Warn("running in SAFE MODE (dev sandbox)", "original_path", uri, "resolved_path", path)
	}
	return path
}
