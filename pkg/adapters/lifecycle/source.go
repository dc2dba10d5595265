// Package lifecycle exposes refresher snapshots to applications built on
// github.com/aretw0/lifecycle.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/tempnotes/pkg/refresh"
)

type snapshotSource struct {
	snapshots <-chan refresh.Snapshot
	out       chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits a refresh.Snapshot every
// time the active note list is re-read.
func NewSource(snapshots <-chan refresh.Snapshot) lifecycle.Source {
	return &snapshotSource{
		snapshots: snapshots,
		out:       make(chan lifecycle.Event),
	}
}

func (s *snapshotSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *snapshotSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case snap, ok := <-s.snapshots:
				if !ok {
					return nil
				}
				// refresh.Snapshot implements lifecycle.Event (has String()).
				select {
				case s.out <- snap:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
