package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"CollabCanvas/internal/state"
)

// Schema for the canvas snapshot table. A single row holds the current
// serialized history; every save replaces it.
const schema = `
CREATE TABLE IF NOT EXISTS canvas_snapshot (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	content TEXT NOT NULL,
	saved_at INTEGER NOT NULL
);
`

// SQLiteStore keeps the history snapshot in a SQLite database, for setups
// where a bare JSON file on disk is not enough (shared volumes, backups).
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and ensures
// the snapshot table exists.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("could not open sqlite store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not init sqlite store: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load() ([]state.Stroke, error) {
	var content string
	err := s.db.QueryRow(`SELECT content FROM canvas_snapshot WHERE id = 1`).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var strokes []state.Stroke
	if err := json.Unmarshal([]byte(content), &strokes); err != nil {
		return nil, fmt.Errorf("could not parse stored snapshot: %w", err)
	}
	return strokes, nil
}

func (s *SQLiteStore) Save(strokes []state.Stroke) error {
	if strokes == nil {
		strokes = []state.Stroke{}
	}
	content, err := json.Marshal(strokes)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO canvas_snapshot (id, content, saved_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET content = excluded.content, saved_at = excluded.saved_at`,
		string(content), time.Now().Unix())
	return err
}

func (s *SQLiteStore) Reset() error {
	_, err := s.db.Exec(`DELETE FROM canvas_snapshot`)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
