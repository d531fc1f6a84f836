// Package storage keeps the session ledger of level runs in an in-memory
// SQLite database. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies. Nothing is written to disk.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Outcome is how a level run ended.
type Outcome string

const (
	OutcomeCleared Outcome = "cleared"
	OutcomeDied    Outcome = "died"
	OutcomeQuit    Outcome = "quit"
)

// Ledger records every finished level run of a session.
type Ledger struct {
	db        *sql.DB
	sessionID string
}

// RunRecord is one finished level run.
type RunRecord struct {
	ID         int64
	RunID      string // one campaign playthrough
	LevelID    string
	Difficulty string
	Outcome    Outcome
	Coins      int
	Keys       int
	Ticks      int64
	CreatedAt  time.Time
}

// Summary aggregates the runs of a campaign.
type Summary struct {
	Runs      int
	Cleared   int
	Deaths    int
	BestCoins int
	Ticks     int64
}

// Open creates a fresh in-memory ledger. Each ledger gets its own database,
// named by a random session id, so ledgers never see each other's rows.
func Open() (*Ledger, error) {
	sessionID := uuid.NewString()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", sessionID)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// the database lives only as long as a connection to it stays open
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	l := &Ledger{db: db, sessionID: sessionID}
	if err := l.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return l, nil
}

// migrate creates the database schema.
func (l *Ledger) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			level_id TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			outcome TEXT NOT NULL,
			coins INTEGER NOT NULL DEFAULT 0,
			keys INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_run_id ON runs(run_id);
	`
	_, err := l.db.Exec(schema)
	return err
}

// SessionID returns the id naming this ledger's database.
func (l *Ledger) SessionID() string { return l.sessionID }

// NewRunID returns a fresh id for a campaign playthrough.
func NewRunID() string { return uuid.NewString() }

// Close closes the database connection, discarding every row.
func (l *Ledger) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// RecordRun stores a finished level run and returns its row id.
func (l *Ledger) RecordRun(r RunRecord) (int64, error) {
	if r.RunID == "" {
		return 0, fmt.Errorf("storage: run id is required")
	}
	result, err := l.db.Exec(
		`INSERT INTO runs (run_id, level_id, difficulty, outcome, coins, keys, ticks)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.LevelID, r.Difficulty, string(r.Outcome), r.Coins, r.Keys, r.Ticks,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Runs returns the runs of one playthrough in insertion order. An empty
// runID returns every run of the session.
func (l *Ledger) Runs(runID string) ([]RunRecord, error) {
	query := `SELECT id, run_id, level_id, difficulty, outcome, coins, keys, ticks, created_at
		 FROM runs`
	var args []any
	if runID != "" {
		query += ` WHERE run_id = ?`
		args = append(args, runID)
	}
	query += ` ORDER BY id`

	rows, err := l.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var outcome string
		var createdAt any
		if err := rows.Scan(&r.ID, &r.RunID, &r.LevelID, &r.Difficulty, &outcome, &r.Coins, &r.Keys, &r.Ticks, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Outcome = Outcome(outcome)
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// Summary aggregates the runs of one playthrough, or of the whole session
// when runID is empty.
func (l *Ledger) Summary(runID string) (Summary, error) {
	query := `SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(coins), 0),
		        COALESCE(SUM(ticks), 0)
		 FROM runs`
	args := []any{string(OutcomeCleared), string(OutcomeDied)}
	if runID != "" {
		query += ` WHERE run_id = ?`
		args = append(args, runID)
	}

	var s Summary
	if err := l.db.QueryRow(query, args...).Scan(&s.Runs, &s.Cleared, &s.Deaths, &s.BestCoins, &s.Ticks); err != nil {
		return Summary{}, fmt.Errorf("storage: cannot summarize runs: %w", err)
	}
	return s, nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
