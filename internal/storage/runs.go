package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// RunRecord is one finished run in the run log.
type RunRecord struct {
	ID        int64
	RunID     string
	GameID    string
	Score     int
	Ticks     uint64
	EndReason string // "collision", "out-of-bounds", "stopped", "spawn-failed"
	Seed      int64
	Duration  time.Duration
	CreatedAt time.Time
}

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	return insertRun(s.db, r)
}

// RecordRun stores a finished run together with its score. Runs that
// scored nothing enter the run log only. Both rows are written or neither.
func (s *Store) RecordRun(r RunRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := insertRun(tx, r); err != nil {
		return err
	}
	if r.Score > 0 {
		if _, err := insertScore(tx, r.GameID, r.RunID, r.Score); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertRun(db execer, r RunRecord) (int64, error) {
	res, err := db.Exec(
		`INSERT INTO runs (run_id, game_id, score, ticks, end_reason, seed, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.GameID, r.Score, int64(r.Ticks), r.EndReason, r.Seed, r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}
	return res.LastInsertId()
}

const runColumns = `id, run_id, game_id, score, ticks, end_reason, seed, duration_ms, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (RunRecord, error) {
	var r RunRecord
	var ticks, durationMS int64
	var createdAt any
	err := row.Scan(
		&r.ID,
		&r.RunID,
		&r.GameID,
		&r.Score,
		&ticks,
		&r.EndReason,
		&r.Seed,
		&durationMS,
		&createdAt,
	)
	if err != nil {
		return r, err
	}
	r.Ticks = uint64(ticks)
	r.Duration = time.Duration(durationMS) * time.Millisecond
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// RunByID retrieves a run by its run ID. Returns nil if it does not exist.
func (s *Store) RunByID(runID string) (*RunRecord, error) {
	r, err := scanRun(s.db.QueryRow(
		`SELECT `+runColumns+` FROM runs WHERE run_id = ?`,
		runID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// RecentRuns retrieves the most recent runs, newest first. An empty gameID
// returns runs of every game.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + runColumns + ` FROM runs`
	args := []any{}
	if gameID != "" {
		query += ` WHERE game_id = ?`
		args = append(args, gameID)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var results []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}
