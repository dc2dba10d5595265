package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/tempnotes/pkg/core"
)

// debounceWindow coalesces the burst of events produced by one atomic write.
const debounceWindow = 50 * time.Millisecond

// Watch emits a Change whenever the file for key is replaced, by this or any
// other process. The channel is closed when ctx is cancelled.
func (s *Storage) Watch(ctx context.Context, key string) (<-chan core.Change, error) {
	filename, err := s.filename(key)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	// Watch the directory: atomic renames replace the inode of the file itself.
	if err := watcher.Add(s.Path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", s.Path, err)
	}

	out := make(chan core.Change, 1)
	s.setWatching(1)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer s.setWatching(-1)
		defer close(out)
		defer watcher.Close()
		return s.watchLoop(ctx, watcher, key, filepath.Base(filename), out)
	}, lifecycle.WithErrorHandler(s.handleWatchError))

	return out, nil
}

func (s *Storage) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, key, base string, out chan<- core.Change) error {
	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if !relevant(event, base) {
				continue
			}
			s.config.Logger.Debug("storage event", "name", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
			} else {
				timer.Reset(debounceWindow)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			change := core.Change{Key: key, Timestamp: time.Now().Unix()}
			select {
			case out <- change:
			default:
				// A change is already queued; the reader will reload anyway.
			}

		case wErr, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			s.handleWatchError(wErr)
		}
	}
}

// relevant reports whether event rewrote the watched file.
func relevant(event fsnotify.Event, base string) bool {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, TempFilePrefix) || name != base {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

func (s *Storage) handleWatchError(err error) {
	s.config.Logger.Error("storage watch error", "path", s.Path, "error", err)
	if s.config.ErrorHandler != nil {
		s.config.ErrorHandler(err)
	}
}

func (s *Storage) setWatching(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers += delta
}
