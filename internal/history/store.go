// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists build records. Each render pass gets one row:
// mode, outcome, artifact, and a digest of the source tree at build time,
// so later runs can tell whether the recorded artifacts still match the
// sources.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/bookforge/internal/build"
	"github.com/pdiddy/bookforge/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "builds.db"
)

const defaultMaxResults = 20

// Store manages the build history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the history database at outputDir/index/builds.db,
// creating the schema if it does not exist.
func NewStore(outputDir string, cfg types.HistoryConfig) (*Store, error) {
	dbDir := filepath.Join(outputDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS builds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			status TEXT NOT NULL,
			artifact TEXT,
			source_digest TEXT,
			duration_ms INTEGER,
			error TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_builds_mode ON builds(mode)`,
		`CREATE INDEX IF NOT EXISTS idx_builds_created_at ON builds(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts one pass outcome. It implements build.Recorder.
func (s *Store) Record(res build.VariantResult, sourceDigest string) error {
	errText := ""
	if res.Err != nil {
		errText = res.Err.Error()
	}
	_, err := s.db.Exec(
		`INSERT INTO builds (mode, status, artifact, source_digest, duration_ms, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(res.Mode), string(res.Status), res.Artifact, sourceDigest,
		res.Duration.Milliseconds(), errText, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting build record: %w", err)
	}
	return nil
}

// Entry is one recorded pass.
type Entry struct {
	ID        int64         `json:"id"`
	Mode      types.Mode    `json:"mode"`
	Status    string        `json:"status"`
	Artifact  string        `json:"artifact,omitempty"`
	Digest    string        `json:"source_digest,omitempty"`
	Duration  time.Duration `json:"duration"`
	Error     string        `json:"error,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// Recent returns the most recent entries, newest first. A limit of 0 uses
// the configured default.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mode, status, artifact, source_digest, duration_ms, error, created_at
		 FROM builds ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying builds: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var durationMS int64
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Mode, &e.Status, &e.Artifact, &e.Digest,
			&durationMS, &e.Error, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning build record: %w", err)
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading build records: %w", err)
	}
	return entries, nil
}

// LastDigest returns the source digest of the most recent successful pass
// for a mode, or an empty string when none is recorded.
func (s *Store) LastDigest(ctx context.Context, mode types.Mode) (string, error) {
	var digest string
	err := s.db.QueryRowContext(ctx,
		`SELECT source_digest FROM builds
		 WHERE mode = ? AND status = ? ORDER BY id DESC LIMIT 1`,
		string(mode), string(build.StatusBuilt)).Scan(&digest)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("querying last digest: %w", err)
	}
	return digest, nil
}
