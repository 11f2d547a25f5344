package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is the summary of one finished game.
type Run struct {
	RunID         string // UUID, assigned by SaveRun when empty
	GameID        string
	Score         int
	Level         int
	BlocksCleared int
	MaxCombo      int
	Duration      float64 // seconds of simulated play
	CreatedAt     time.Time
}

// SaveRun records a run summary and returns its run ID.
func (s *Store) SaveRun(r Run) (string, error) {
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	} else if _, err := uuid.Parse(r.RunID); err != nil {
		return "", fmt.Errorf("storage: run id %q: %w", r.RunID, err)
	}

	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, game_id, score, level, blocks_cleared, max_combo, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.GameID, r.Score, r.Level, r.BlocksCleared, r.MaxCombo, r.Duration,
	)
	if err != nil {
		return "", fmt.Errorf("storage: save run: %w", err)
	}
	return r.RunID, nil
}

// RecentRuns returns up to limit runs for gameID, newest first. A
// non-positive limit means 20.
func (s *Store) RecentRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT run_id, game_id, score, level, blocks_cleared, max_combo, duration_secs, created_at
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var created any
		if err := rows.Scan(&r.RunID, &r.GameID, &r.Score, &r.Level, &r.BlocksCleared,
			&r.MaxCombo, &r.Duration, &created); err != nil {
			return nil, fmt.Errorf("storage: scan run: %w", err)
		}
		r.CreatedAt = parseTimestamp(created)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: iterate runs: %w", err)
	}
	return runs, nil
}
