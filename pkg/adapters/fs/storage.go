// Package fs stores each key as a JSON file in a directory.
package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/tempnotes/pkg/core"
)

// FileExt is appended to a key to form its filename.
const FileExt = ".json"

// ErrInvalidKey is returned for keys that cannot be used as a filename.
var ErrInvalidKey = errors.New("invalid storage key")

// Config holds the configuration for the filesystem storage.
type Config struct {
	Path      string
	MustExist bool
	ReadOnly  bool
	Logger    *slog.Logger
	// ErrorHandler receives errors raised inside the watch loop.
	ErrorHandler func(error)
}

// Storage implements core.Storage on top of a directory.
type Storage struct {
	Path   string
	config Config

	mu        sync.RWMutex
	watchers  int
	lastWrite *time.Time
}

// NewStorage creates a new filesystem-backed storage.
func NewStorage(config Config) *Storage {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Storage{
		Path:   config.Path,
		config: config,
	}
}

// Initialize creates the directory (unless it must already exist) and removes
// leftovers of interrupted writes.
func (s *Storage) Initialize(ctx context.Context) error {
	if s.config.MustExist || s.config.ReadOnly {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("storage path does not exist: %s", s.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("storage path is not a directory: %s", s.Path)
		}
	} else if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	if s.config.ReadOnly {
		return nil
	}
	return removeStaleTemp(s.Path)
}

// Get reads the file for key. A missing file is an absent key.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	filename, err := s.filename(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return data, nil
}

// Set atomically replaces the file for key.
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	filename, err := s.filename(key)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(filename, value, 0644); err != nil {
		return err
	}

	s.mu.Lock()
	now := time.Now()
	s.lastWrite = &now
	s.mu.Unlock()

	s.config.Logger.Debug("storage written", "key", key, "bytes", len(value))
	return nil
}

// filename maps key to a file inside the storage directory.
func (s *Storage) filename(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." ||
		strings.HasPrefix(key, TempFilePrefix) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.Path, key+FileExt), nil
}
