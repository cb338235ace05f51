package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// cacheSize bounds the read cache; the whole namespace is a handful of
// keys, so this is generous.
const (
	cacheSize = 64
	cacheTTL  = 30 * time.Second
)

// Store is the SQLite-backed KV implementation. A small expirable LRU
// fronts reads so repeated snapshot loads stay off disk.
type Store struct {
	sqlDB *sql.DB
	cache *readCache
}

// Open opens and migrates a state store at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := runMigrations(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{
		sqlDB: sqlDB,
		cache: newReadCache(cacheSize, cacheTTL),
	}, nil
}

func runMigrations(sqlDB *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.Up(sqlDB, "migrations")
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Get returns the stored value for key, consulting the read cache first.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if value, found, ok := s.cache.Get(key); ok {
		return value, found, nil
	}

	row := s.sqlDB.QueryRowContext(ctx, `SELECT value FROM state WHERE key = ?`, key)

	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.cache.SetAbsent(key)
			return "", false, nil
		}
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}

	s.cache.Set(key, value)
	return value, true, nil
}

// Set stores value under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO state (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	s.cache.Set(key, value)
	return nil
}

// Delete removes key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	s.cache.SetAbsent(key)
	return nil
}

// Clear removes every session key.
func (s *Store) Clear(ctx context.Context) error {
	for _, key := range SessionKeys() {
		if err := s.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
