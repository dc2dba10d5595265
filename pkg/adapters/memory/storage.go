// Package memory keeps values in process memory. It is the default backend
// for tests and for throwaway sessions.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/introspection"

	"github.com/aretw0/tempnotes/pkg/core"
)

// Storage implements core.Storage and core.Watchable with a map.
type Storage struct {
	mu       sync.RWMutex
	values   map[string][]byte
	watchers map[string][]chan core.Change
}

// NewStorage returns an empty storage.
func NewStorage() *Storage {
	return &Storage{
		values:   make(map[string][]byte),
		watchers: make(map[string][]chan core.Change),
	}
}

// Get returns a copy of the value under key.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.values[key]), nil
}

// Set stores a copy of value and notifies watchers of key.
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = slices.Clone(value)
	change := core.Change{Key: key, Timestamp: time.Now().Unix()}
	for _, ch := range s.watchers[key] {
		select {
		case ch <- change:
		default:
		}
	}
	return nil
}

// Watch emits a Change after every Set of key until ctx is cancelled.
func (s *Storage) Watch(ctx context.Context, key string) (<-chan core.Change, error) {
	ch := make(chan core.Change, 1)

	s.mu.Lock()
	s.watchers[key] = append(s.watchers[key], ch)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		s.watchers[key] = slices.DeleteFunc(s.watchers[key], func(c chan core.Change) bool { return c == ch })
		close(ch)
	}()
	return ch, nil
}

// StorageState exposes internal state for observability.
type StorageState struct {
	Keys     int `json:"keys"`
	Watchers int `json:"watchers"`
}

// State implements introspection.Introspectable.
func (s *Storage) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	watchers := 0
	for _, list := range s.watchers {
		watchers += len(list)
	}
	return StorageState{Keys: len(s.values), Watchers: watchers}
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "memory"
}

var (
	_ core.Storage                 = (*Storage)(nil)
	_ core.Watchable               = (*Storage)(nil)
	_ introspection.Introspectable = (*Storage)(nil)
	_ introspection.Component      = (*Storage)(nil)
)
