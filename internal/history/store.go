// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a local log of past search runs in SQLite. It is a
// record, not a cache: results are never replayed from it and identical
// queries always re-fetch.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/meliscan/pkg/types"
)

const dbFile = "meliscan.db"

// Store manages the search history database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Entry is one recorded search run.
type Entry struct {
	ID        int64
	Query     string
	URL       string
	States    string
	Total     int
	Returned  int
	Capped    bool
	CreatedAt time.Time
}

// Open opens or creates the history database under cfg.Dir, creating the
// schema if it does not exist.
func Open(cfg types.HistoryConfig) (*Store, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("history directory not configured")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS searches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		query TEXT NOT NULL,
		url TEXT NOT NULL,
		states TEXT NOT NULL DEFAULT '',
		total INTEGER NOT NULL,
		returned INTEGER NOT NULL,
		capped INTEGER NOT NULL,
		created_at TEXT NOT NULL
	)`)
	return err
}

// Record appends one search run to the log.
func (s *Store) Record(result *types.SearchResult) error {
	states := ""
	for i, st := range result.Query.States {
		if i > 0 {
			states += ","
		}
		states += st
	}

	_, err := s.db.Exec(
		`INSERT INTO searches (query, url, states, total, returned, capped, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		result.Query.Text,
		result.Query.URL,
		states,
		result.Pagination.Total,
		len(result.Items),
		boolInt(result.Pagination.Capped),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording search: %w", err)
	}
	return nil
}

// List returns the most recent entries, newest first. A non-positive limit
// falls back to the configured default.
func (s *Store) List(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.Query(
		`SELECT id, query, url, states, total, returned, capped, created_at
		 FROM searches ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var capped int
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Query, &e.URL, &e.States, &e.Total, &e.Returned, &capped, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.Capped = capped != 0
		if t, perr := time.Parse(time.RFC3339, createdAt); perr == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
