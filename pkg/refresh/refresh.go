// Package refresh re-reads the active notes on a schedule so that views drop
// notes as their expiration passes, and reloads early when storage reports a
// change made elsewhere.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/tempnotes/pkg/core"
)

// DefaultInterval is how often the active notes are re-read.
const DefaultInterval = time.Minute

// Reasons attached to snapshots.
const (
	ReasonInitial = "initial"
	ReasonTick    = "tick"
	ReasonChange  = "change"
)

// ErrAlreadyStarted is returned by a second call to Start.
var ErrAlreadyStarted = errors.New("refresher already started")

// Lister is the read path of a note store.
type Lister interface {
	ListActive(ctx context.Context) []core.Note
	Now() time.Time
}

// Snapshot is the active note list at a point in time.
type Snapshot struct {
	Notes  []core.Note
	At     time.Time
	Reason string
}

func (s Snapshot) String() string {
	return fmt.Sprintf("%s refresh: %d active notes", s.Reason, len(s.Notes))
}

// Refresher publishes snapshots of the active notes.
type Refresher struct {
	source   Lister
	interval time.Duration
	logger   *slog.Logger
	watch    core.Watchable
	key      string

	out     chan Snapshot
	started atomic.Bool
}

// Option configures a Refresher.
type Option func(*Refresher)

// WithInterval sets the refresh period. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(r *Refresher) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Refresher) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithWatch also refreshes whenever w reports a write to key.
func WithWatch(w core.Watchable, key string) Option {
	return func(r *Refresher) {
		r.watch = w
		r.key = key
	}
}

// New creates a Refresher reading from source.
func New(source Lister, opts ...Option) *Refresher {
	r := &Refresher{
		source:   source,
		interval: DefaultInterval,
		logger:   slog.Default(),
		out:      make(chan Snapshot, 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Snapshots returns the channel snapshots are published on.
// It is closed once the task started by Start stops.
// Only the latest unread snapshot is kept.
func (r *Refresher) Snapshots() <-chan Snapshot {
	return r.out
}

// Start publishes an initial snapshot and keeps refreshing until ctx is cancelled.
func (r *Refresher) Start(ctx context.Context) error {
	if !r.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	var changes <-chan core.Change
	if r.watch != nil {
		ch, err := r.watch.Watch(ctx, r.key)
		if err != nil {
			r.logger.Warn("storage watch unavailable, refreshing on timer only", "key", r.key, "error", err)
		} else {
			changes = ch
		}
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(r.out)
		r.run(ctx, changes)
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		r.logger.Error("refresher stopped", "error", err)
	}))
	return nil
}

func (r *Refresher) run(ctx context.Context, changes <-chan core.Change) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.publish(ctx, ReasonInitial)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.publish(ctx, ReasonTick)
		case _, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			r.publish(ctx, ReasonChange)
		}
	}
}

// publish replaces any unread snapshot with a fresh one.
func (r *Refresher) publish(ctx context.Context, reason string) {
	snap := Snapshot{
		Notes:  r.source.ListActive(ctx),
		At:     r.source.Now(),
		Reason: reason,
	}
	r.logger.Debug("notes refreshed", "reason", reason, "count", len(snap.Notes))

	select {
	case r.out <- snap:
		return
	default:
	}
	select {
	case <-r.out:
	default:
	}
	select {
	case r.out <- snap:
	default:
	}
}
