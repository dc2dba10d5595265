package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultStorageKey is the key the note collection is stored under.
const DefaultStorageKey = "tempnotes-data"

// Store owns the note collection kept under a single storage key.
// Every write reads the whole collection, changes it and writes it back.
type Store struct {
	storage Storage
	key     string
	now     func() time.Time
	newID   func() string
	logger  *slog.Logger
	onError func(error)

	mu      sync.Mutex
	lastErr error
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStorageKey sets the key holding the collection.
func WithStorageKey(key string) StoreOption {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithClock replaces time.Now as the source of "now".
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator replaces the UUID generator used for new notes.
func WithIDGenerator(fn func() string) StoreOption {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithStoreLogger sets the logger.
func WithStoreLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithErrorHandler registers a callback for errors the read path swallows.
func WithErrorHandler(fn func(error)) StoreOption {
	return func(s *Store) {
		s.onError = fn
	}
}

// NewStore creates a Store on top of storage.
func NewStore(storage Storage, opts ...StoreOption) *Store {
	s := &Store{
		storage: storage,
		key:     DefaultStorageKey,
		now:     time.Now,
		newID:   uuid.NewString,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Storage returns the backend the store persists into.
func (s *Store) Storage() Storage {
	return s.storage
}

// Key returns the storage key holding the collection.
func (s *Store) Key() string {
	return s.key
}

// Close releases the storage if it holds resources (database handles).
func (s *Store) Close() error {
	if c, ok := s.storage.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Now returns the store's current time.
func (s *Store) Now() time.Time {
	return s.now()
}

// ListActive returns the notes that have not expired yet, in stored order.
// It never fails: unreadable or corrupt storage yields an empty list and the
// error is logged and passed to the error handler.
func (s *Store) ListActive(ctx context.Context) []Note {
	s.mu.Lock()
	notes, err := s.load(ctx)
	s.mu.Unlock()
	if err != nil {
		s.report(err)
		return []Note{}
	}

	now := s.now()
	active := make([]Note, 0, len(notes))
	for _, n := range notes {
		if !n.Expired(now) {
			active = append(active, n)
		}
	}
	return active
}

// Get returns the active note with the given id.
func (s *Store) Get(ctx context.Context, id string) (Note, error) {
	for _, n := range s.ListActive(ctx) {
		if n.ID == id {
			return n, nil
		}
	}
	return Note{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Create assigns an id and creation time to draft and appends it to the
// stored collection. Expired notes already in storage are kept as they are.
// An unset expiration becomes DefaultPreset. Times are truncated to the
// millisecond so the returned note equals the stored one.
func (s *Store) Create(ctx context.Context, draft Draft) (Note, error) {
	if err := validateTitle(draft.Title); err != nil {
		return Note{}, err
	}

	now := s.now().Truncate(time.Millisecond)
	note := Note{
		ID:        s.newID(),
		Title:     draft.Title,
		Content:   draft.Content,
		CreatedAt: now,
		ExpiresAt: draft.ExpiresAt.orDefault(now).truncate(),
		Todos:     draft.Todos,
		Tags:      draft.Tags,
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.loadForWrite(ctx)
	if err != nil {
		return Note{}, err
	}
	if err := s.save(ctx, append(notes, note)); err != nil {
		return Note{}, err
	}

	s.logger.Debug("note created", "id", note.ID, "expires", note.ExpiresAt.String())
	return note, nil
}

// Update replaces the stored note with the same id and returns note unchanged.
// If no stored note has that id nothing is written. An unset expiration
// keeps the stored one, and the stored note is returned instead.
func (s *Store) Update(ctx context.Context, note Note) (Note, error) {
	if err := validateTitle(note.Title); err != nil {
		return Note{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.loadForWrite(ctx)
	if err != nil {
		return Note{}, err
	}

	i := slices.IndexFunc(notes, func(n Note) bool { return n.ID == note.ID })
	if i < 0 {
		s.logger.Debug("update skipped, note not stored", "id", note.ID)
		return note, nil
	}
	if note.ExpiresAt.IsZero() {
		note.ExpiresAt = notes[i].ExpiresAt
	}
	notes[i] = note

	if err := s.save(ctx, notes); err != nil {
		return Note{}, err
	}
	s.logger.Debug("note updated", "id", note.ID)
	return note, nil
}

// Remove deletes the note with the given id from the stored collection.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.loadForWrite(ctx)
	if err != nil {
		return err
	}

	kept := slices.DeleteFunc(notes, func(n Note) bool { return n.ID == id })
	if err := s.save(ctx, kept); err != nil {
		return err
	}
	s.logger.Debug("note removed", "id", id)
	return nil
}

// ToggleTodo sets the completion state of one checklist item and stores the note.
func (s *Store) ToggleTodo(ctx context.Context, noteID, todoID string, completed bool) (Note, error) {
	note, err := s.Get(ctx, noteID)
	if err != nil {
		return Note{}, err
	}

	todos := slices.Clone(note.Todos)
	i := slices.IndexFunc(todos, func(t TodoItem) bool { return t.ID == todoID })
	if i < 0 {
		return Note{}, fmt.Errorf("%w: %s", ErrTodoNotFound, todoID)
	}
	todos[i].Completed = completed
	note.Todos = todos

	return s.Update(ctx, note)
}

// ExpirationFromPreset maps a preset name to an expiration relative to the store's clock.
func (s *Store) ExpirationFromPreset(preset string) Expiration {
	return ExpirationFromPreset(preset, s.now())
}

// ExpirationFromDateTime parses a custom date and time in the store clock's location.
func (s *Store) ExpirationFromDateTime(date, clock string) (Expiration, error) {
	now := s.now()
	return ExpirationFromDateTime(date, clock, now, now.Location())
}

// DescribeExpiration classifies e against the store's clock.
func (s *Store) DescribeExpiration(e Expiration) Description {
	return Describe(e, s.now())
}

// load reads and decodes the full collection. Callers hold s.mu.
func (s *Store) load(ctx context.Context) ([]Note, error) {
	data, err := s.storage.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.key, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var notes []Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.key, err)
	}
	return notes, nil
}

// loadForWrite is load for the write path: a corrupt collection is dropped
// so the next write replaces it, storage failures abort the write.
func (s *Store) loadForWrite(ctx context.Context) ([]Note, error) {
	notes, err := s.load(ctx)
	if errors.Is(err, ErrCorrupt) {
		s.logger.Warn("discarding unreadable note collection", "key", s.key, "error", err)
		return nil, nil
	}
	return notes, err
}

func (s *Store) save(ctx context.Context, notes []Note) error {
	if notes == nil {
		notes = []Note{}
	}
	data, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("failed to encode notes: %w", err)
	}
	if err := s.storage.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.key, err)
	}
	s.lastErr = nil
	return nil
}

func (s *Store) report(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()

	s.logger.Error("error loading notes", "key", s.key, "error", err)
	if s.onError != nil {
		s.onError(err)
	}
}
