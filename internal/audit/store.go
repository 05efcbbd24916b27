// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package audit

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mshore/blogforge/pkg/types"
)

const dbFile = "runs.db"

// RunRecord is one row in the run index.
type RunRecord struct {
	ID           int64
	Subject      string
	Kind         types.GenerationKind
	Audience     string
	Model        string
	ItemCount    int
	WarningCount int
	OutputPath   string
	SnapshotPath string
	CreatedAt    time.Time
}

// Store indexes pipeline runs in a SQLite database under the audit
// directory.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the run database at dir/runs.db, creating the
// schema if needed.
func NewStore(cfg types.AuditConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating audit directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening run database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
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
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			subject TEXT NOT NULL,
			kind TEXT NOT NULL,
			audience TEXT,
			model TEXT,
			item_count INTEGER NOT NULL DEFAULT 0,
			warning_count INTEGER NOT NULL DEFAULT 0,
			output_path TEXT,
			snapshot_path TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_subject ON runs(subject)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts a run and returns its ID.
func (s *Store) Record(ctx context.Context, r RunRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (subject, kind, audience, model, item_count, warning_count, output_path, snapshot_path, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Subject, string(r.Kind), r.Audience, r.Model, r.ItemCount, r.WarningCount,
		r.OutputPath, r.SnapshotPath, r.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("recording run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}
	return id, nil
}

// List returns the most recent runs, newest first, capped at the
// configured maximum.
func (s *Store) List(ctx context.Context) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, subject, kind, audience, model, item_count, warning_count, output_path, snapshot_path, created_at
		 FROM runs ORDER BY id DESC LIMIT ?`, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		r, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Get returns one run by ID.
func (s *Store) Get(ctx context.Context, id int64) (RunRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, subject, kind, audience, model, item_count, warning_count, output_path, snapshot_path, created_at
		 FROM runs WHERE id = ?`, id)
	r, err := scanRun(row.Scan)
	if err == sql.ErrNoRows {
		return RunRecord{}, fmt.Errorf("run %d not found", id)
	}
	return r, err
}

func scanRun(scan func(...any) error) (RunRecord, error) {
	var r RunRecord
	var kind, createdAt string
	if err := scan(&r.ID, &r.Subject, &kind, &r.Audience, &r.Model, &r.ItemCount,
		&r.WarningCount, &r.OutputPath, &r.SnapshotPath, &createdAt); err != nil {
		return RunRecord{}, err
	}
	r.Kind = types.GenerationKind(kind)
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		r.CreatedAt = t
	}
	return r, nil
}
