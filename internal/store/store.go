package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite database holding words and drill history.
type Store struct {
	db *sqlx.DB
}

// Open connects to the SQLite database at dsn, applies pragmas and creates
// the schema if needed.
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying sqlx handle for raw queries.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Words returns the word repository backed by this store.
func (s *Store) Words() *WordRepo {
	return &WordRepo{db: s.db}
}

// History returns the history repository backed by this store.
func (s *Store) History() *HistoryRepo {
	return &HistoryRepo{db: s.db}
}

func applyPragmas(db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func createSchema(db *sqlx.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS words (
			id            TEXT PRIMARY KEY,
			word          TEXT NOT NULL,
			translation   TEXT NOT NULL,
			pos           TEXT NOT NULL DEFAULT '',
			pronunciation TEXT NOT NULL DEFAULT '',
			example       TEXT NOT NULL DEFAULT '',
			unit          TEXT NOT NULL DEFAULT '',
			section       TEXT NOT NULL DEFAULT '',
			lang          TEXT NOT NULL DEFAULT 'en'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_words_unit_section ON words (unit, section)`,
		`CREATE TABLE IF NOT EXISTS history (
			id        TEXT PRIMARY KEY,
			timestamp DATETIME NOT NULL,
			device_id TEXT NOT NULL DEFAULT '',
			type      TEXT NOT NULL,
			score     INTEGER NOT NULL,
			total     INTEGER NOT NULL,
			mistakes  TEXT NOT NULL DEFAULT '[]'
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. LEXIDRILL_DB environment variable
// 2. $XDG_DATA_HOME/lexidrill/lexidrill.db
// 3. ~/.local/share/lexidrill/lexidrill.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("LEXIDRILL_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "lexidrill.db")
	return p, EnsureDir(p)
}

// DataDir resolves the application data directory under XDG conventions.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "lexidrill"), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
