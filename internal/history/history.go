// Package history records executed commands in a local SQLite database.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

// Store is the SQLite-backed invocation history.
type Store struct {
	db *sql.DB
}

// Entry is one recorded invocation.
type Entry struct {
	ID       int64
	Command  string
	ExitCode int
	Duration time.Duration
	RanAt    time.Time
}

// DefaultPath returns the history database location, honoring XDG_DATA_HOME.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "plz", "history.db"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "plz", "history.db"), nil
}

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// OpenInMemory opens an in-memory history store (for testing).
func OpenInMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// CurrentDBVersion is the current history schema version.
const CurrentDBVersion = 1

// initialize creates the database schema.
func (s *Store) initialize() error {
	schema := `
		-- Enable WAL mode for better concurrency
		PRAGMA journal_mode = WAL;

		-- Faster writes (safe with WAL)
		PRAGMA synchronous = NORMAL;

		-- Metadata table for version tracking
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS invocations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			command TEXT NOT NULL,
			exit_code INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			ran_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_invocations_ran_at ON invocations(ran_at DESC);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create history schema: %w", err)
	}

	if _, err := s.db.Exec(
		`INSERT OR REPLACE INTO meta (key, value) VALUES ('version', ?)`,
		strconv.Itoa(CurrentDBVersion),
	); err != nil {
		return fmt.Errorf("failed to write schema version: %w", err)
	}
	return nil
}

// Record stores one finished invocation. command is the full subcommand
// path, space-separated.
func (s *Store) Record(command string, exitCode int, duration time.Duration) error {
	if _, err := s.db.Exec(
		`INSERT INTO invocations (command, exit_code, duration_ms, ran_at) VALUES (?, ?, ?, ?)`,
		command, exitCode, duration.Milliseconds(), time.Now().Unix(),
	); err != nil {
		return fmt.Errorf("failed to record invocation: %w", err)
	}
	return nil
}

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, command, exit_code, duration_ms, ran_at
		 FROM invocations
		 ORDER BY ran_at DESC, id DESC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var durationMS, ranAt int64
		if err := rows.Scan(&e.ID, &e.Command, &e.ExitCode, &durationMS, &ranAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		e.RanAt = time.Unix(ranAt, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear deletes all recorded invocations.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM invocations`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
