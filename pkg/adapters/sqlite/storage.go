// Package sqlite stores values in a key/value table of a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/introspection"
	"github.com/pressly/goose/v3"

	"github.com/aretw0/tempnotes/pkg/core"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

//go:embed migrations/*.sql
var migrations embed.FS

// goose keeps its configuration in package globals.
var gooseMu sync.Mutex

// Storage implements core.Storage using a SQLite database.
type Storage struct {
	db       *sql.DB
	dsn      string
	logger   *slog.Logger
	readOnly bool
}

// Option configures a Storage.
type Option func(*Storage)

// WithReadOnly rejects every Set with core.ErrReadOnly and skips migrations.
// Pair it with a "?mode=ro" dsn.
func WithReadOnly() Option {
	return func(s *Storage) {
		s.readOnly = true
	}
}

// Open opens the database at dsn (a file path or ":memory:").
// Call Initialize before use and Close when done.
func Open(dsn string, logger *slog.Logger, opts ...Option) (*Storage, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// One connection: every pooled connection to ":memory:" would be a new database,
	// and SQLite serialises writers anyway.
	db.SetMaxOpenConns(1)

	if logger == nil {
		logger = slog.Default()
	}
	s := &Storage{db: db, dsn: dsn, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Initialize applies the embedded migrations. A read-only database is
// used as it is.
func (s *Storage) Initialize(ctx context.Context) error {
	if s.readOnly {
		return nil
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, s.db, "migrations"); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", s.dsn, err)
	}
	return nil
}

// Get returns the value under key, or nil if there is none.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return value, nil
}

// Set inserts or replaces the value under key.
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	if s.readOnly {
		return core.ErrReadOnly
	}
	if value == nil {
		value = []byte{}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	s.logger.Debug("storage written", "key", key, "bytes", len(value))
	return nil
}

// Close closes the database.
func (s *Storage) Close() error {
	return s.db.Close()
}

// StorageState exposes internal state for observability.
type StorageState struct {
	DSN       string `json:"dsn"`
	ReadOnly  bool   `json:"read_only"`
	OpenConns int    `json:"open_conns"`
}

// State implements introspection.Introspectable.
func (s *Storage) State() any {
	return StorageState{DSN: s.dsn, ReadOnly: s.readOnly, OpenConns: s.db.Stats().OpenConnections}
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "sqlite"
}

var (
	_ core.Storage                 = (*Storage)(nil)
	_ core.Initializer             = (*Storage)(nil)
	_ introspection.Introspectable = (*Storage)(nil)
	_ introspection.Component      = (*Storage)(nil)
)
