package platform

import (
	"context"

	"github.com/aretw0/tempnotes/pkg/core"
)

// New initializes the storage described by opts and returns a note store on top of it.
//
//	store, err := tempnotes.New("./notes", tempnotes.WithAdapter("sqlite"))
func New(ctx context.Context, uri string, opts ...Option) (*core.Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	storage, err := initStorage(ctx, uri, o)
	if err != nil {
		return nil, err
	}

	return core.NewStore(storage,
		core.WithStoreLogger(o.log()),
		core.WithStorageKey(o.storageKey),
		core.WithClock(o.clock),
		core.WithErrorHandler(o.errorHandler),
	), nil
}
