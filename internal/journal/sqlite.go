package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite-based journal.
// Use ":memory:" for in-memory database, or a file path for persistent storage.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS resolutions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		invocation_id TEXT NOT NULL,
		source TEXT NOT NULL,
		output_dir TEXT NOT NULL,
		debug_symbols INTEGER NOT NULL,
		optimizations INTEGER NOT NULL,
		fingerprint TEXT NOT NULL,
		outcome TEXT NOT NULL,
		error TEXT,
		resolved_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_resolved_at ON resolutions(resolved_at);
	CREATE INDEX IF NOT EXISTS idx_outcome ON resolutions(outcome);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append records a resolution.
func (s *SQLiteStore) Append(ctx context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO resolutions (invocation_id, source, output_dir, debug_symbols, optimizations, fingerprint, outcome, error, resolved_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		entry.InvocationID, entry.Source, entry.OutputDir,
		boolToInt(entry.DebugSymbols), boolToInt(entry.Optimizations),
		entry.Fingerprint, string(entry.Outcome), entry.Error, entry.ResolvedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert resolution: %w", err)
	}

	return nil
}

// Recent returns up to limit entries, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, invocation_id, source, output_dir, debug_symbols, optimizations, fingerprint, outcome, error, resolved_at FROM resolutions ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query resolutions: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		var debugSymbols, optimizations int
		var errText sql.NullString
		var resolvedAtUnix int64

		err := rows.Scan(&e.ID, &e.InvocationID, &e.Source, &e.OutputDir,
			&debugSymbols, &optimizations, &e.Fingerprint, (*string)(&e.Outcome), &errText, &resolvedAtUnix)
		if err != nil {
			return nil, fmt.Errorf("scan resolution: %w", err)
		}

		e.DebugSymbols = debugSymbols != 0
		e.Optimizations = optimizations != 0
		e.Error = errText.String
		e.ResolvedAt = time.Unix(resolvedAtUnix, 0)

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return entries, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
