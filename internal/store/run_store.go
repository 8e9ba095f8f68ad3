// ============================================================================
// cminus - C-minus compiler front end
// ============================================================================
//
// Package:     store
// Description: SQLite persistence for the history of compile runs
// Author:      Mike Stoffels
// Created:     2025-12-06
// Modified:    2026-10-17
// License:     MIT
// ============================================================================

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/msto63/cminus/foundation/cminus"
	mdwerror "github.com/msto63/cminus/foundation/core/error"
)

// Command names recorded with a run
const (
	CommandParse = "parse"
	CommandScan  = "scan"
	CommandWatch = "watch"
)

// Run is one recorded compile run
type Run struct {
	ID             string        `json:"id"`
	Timestamp      time.Time     `json:"timestamp"`
	Command        string        `json:"command"`
	Source         string        `json:"source"`
	Tokens         int           `json:"tokens"`
	Nodes          int           `json:"nodes"`
	Errors         int           `json:"errors"`
	FirstErrorLine int           `json:"first_error_line,omitempty"`
	Unterminated   bool          `json:"unterminated_comment,omitempty"`
	Duration       time.Duration `json:"duration"`
	Messages       []string      `json:"messages,omitempty"`
}

// OK reports whether the run had no syntax errors
func (r *Run) OK() bool {
	return r.Errors == 0
}

// FromResult builds a run record from a compile result
func FromResult(command string, res *cminus.Result) *Run {
	run := &Run{
		ID:           res.RunID,
		Command:      command,
		Source:       res.Name,
		Tokens:       res.Tokens,
		Nodes:        res.Nodes,
		Errors:       len(res.Errors),
		Unterminated: res.UnterminatedComment,
		Duration:     res.Duration,
	}
	if len(res.Errors) > 0 {
		run.FirstErrorLine = res.Errors[0].Line
	}
	for _, e := range res.Errors {
		run.Messages = append(run.Messages, e.Error())
	}
	return run
}

// RunFilter defines criteria for filtering runs
type RunFilter struct {
	ID         string
	Source     string
	Command    string
	FailedOnly bool
	Since      time.Time
	Limit      int
	Offset     int
}

// RunStats summarizes the stored history
type RunStats struct {
	TotalRuns    int64
	FailedRuns   int64
	Sources      int64
	TotalErrors  int64
	RunsBySource map[string]int64
	LastRun      time.Time
}

// RunStore persists compile runs in SQLite
type RunStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// Config holds configuration for the SQLite store
type Config struct {
	Path string
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Path: "./data/history.db",
	}
}

// Open opens or creates the run store
func Open(cfg Config) (*RunStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, storeError(err, "failed to create directory").WithDetail("path", dir)
	}

	// Open database with WAL mode
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, storeError(err, "failed to open database").WithDetail("path", cfg.Path)
	}

	s := &RunStore{db: db}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, storeError(err, "failed to initialize schema").WithDetail("path", cfg.Path)
	}

	return s, nil
}

func storeError(err error, message string) *mdwerror.Error {
	return mdwerror.Wrap(err, message).WithCode(mdwerror.CodeStoreError)
}

// initSchema creates the necessary tables
func (s *RunStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		command TEXT NOT NULL,
		source TEXT NOT NULL,
		tokens INTEGER NOT NULL,
		nodes INTEGER NOT NULL,
		errors INTEGER NOT NULL,
		first_error_line INTEGER,
		unterminated INTEGER NOT NULL DEFAULT 0,
		duration_ns INTEGER NOT NULL,
		messages TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_runs_source ON runs(source);
	CREATE INDEX IF NOT EXISTS idx_runs_errors ON runs(errors);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record stores a run; ID and timestamp are filled in when empty
func (s *RunStore) Record(ctx context.Context, run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.Timestamp.IsZero() {
		run.Timestamp = time.Now()
	}
	run.Timestamp = run.Timestamp.UTC()

	var messagesJSON []byte
	if len(run.Messages) > 0 {
		messagesJSON, _ = json.Marshal(run.Messages)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, timestamp, command, source, tokens, nodes, errors,
			first_error_line, unterminated, duration_ns, messages)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Timestamp, run.Command, run.Source, run.Tokens, run.Nodes, run.Errors,
		run.FirstErrorLine, run.Unterminated, int64(run.Duration), messagesJSON)

	if err != nil {
		return storeError(err, "failed to insert run").WithDetail("run_id", run.ID)
	}

	return nil
}

// Query retrieves runs matching the filter, newest first
func (s *RunStore) Query(ctx context.Context, filter RunFilter) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, timestamp, command, source, tokens, nodes, errors,
		first_error_line, unterminated, duration_ns, messages FROM runs WHERE 1=1`
	var args []interface{}

	if filter.ID != "" {
		query += " AND id = ?"
		args = append(args, filter.ID)
	}
	if filter.Source != "" {
		query += " AND source = ?"
		args = append(args, filter.Source)
	}
	if filter.Command != "" {
		query += " AND command = ?"
		args = append(args, filter.Command)
	}
	if filter.FailedOnly {
		query += " AND errors > 0"
	}
	if !filter.Since.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, filter.Since.UTC())
	}

	query += " ORDER BY timestamp DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		if filter.Limit <= 0 {
			query += " LIMIT -1"
		}
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeError(err, "failed to query runs")
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var run Run
		var firstLine sql.NullInt64
		var durationNs int64
		var messagesJSON sql.NullString

		if err := rows.Scan(&run.ID, &run.Timestamp, &run.Command, &run.Source, &run.Tokens,
			&run.Nodes, &run.Errors, &firstLine, &run.Unterminated, &durationNs, &messagesJSON); err != nil {
			return nil, storeError(err, "failed to scan run")
		}

		if firstLine.Valid {
			run.FirstErrorLine = int(firstLine.Int64)
		}
		run.Duration = time.Duration(durationNs)
		if messagesJSON.Valid && messagesJSON.String != "" {
			json.Unmarshal([]byte(messagesJSON.String), &run.Messages)
		}

		runs = append(runs, &run)
	}

	if err := rows.Err(); err != nil {
		return nil, storeError(err, "failed to read runs")
	}
	return runs, nil
}

// Get returns a single run by ID
func (s *RunStore) Get(ctx context.Context, id string) (*Run, error) {
	runs, err := s.Query(ctx, RunFilter{ID: id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, mdwerror.Newf("run %s not found", id).
			WithCode(mdwerror.CodeStoreError).
			WithDetail("run_id", id)
	}
	return runs[0], nil
}

// Stats returns history statistics
func (s *RunStore) Stats(ctx context.Context) (*RunStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &RunStats{RunsBySource: make(map[string]int64)}

	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN errors > 0 THEN 1 ELSE 0 END), 0),
			COUNT(DISTINCT source),
			COALESCE(SUM(errors), 0)
		FROM runs`)
	if err := row.Scan(&stats.TotalRuns, &stats.FailedRuns, &stats.Sources, &stats.TotalErrors); err != nil {
		return nil, storeError(err, "failed to read run statistics")
	}

	rows, err := s.db.QueryContext(ctx, `SELECT source, COUNT(*) FROM runs GROUP BY source`)
	if err != nil {
		return nil, storeError(err, "failed to read runs by source")
	}
	defer rows.Close()
	for rows.Next() {
		var source string
		var count int64
		if err := rows.Scan(&source, &count); err != nil {
			return nil, storeError(err, "failed to scan run statistics")
		}
		stats.RunsBySource[source] = count
	}

	// Last run time
	var last time.Time
	err = s.db.QueryRowContext(ctx, `SELECT timestamp FROM runs ORDER BY timestamp DESC LIMIT 1`).Scan(&last)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, storeError(err, "failed to read last run")
	default:
		stats.LastRun = last
	}

	return stats, nil
}

// Prune deletes runs older than the given age and returns how many were removed
func (s *RunStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan).UTC()

	result, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, storeError(err, "failed to prune runs")
	}
	deleted, _ := result.RowsAffected()

	return deleted, nil
}

// Close closes the database connection
func (s *RunStore) Close() error {
	return s.db.Close()
}
