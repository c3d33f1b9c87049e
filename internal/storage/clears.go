package storage

import (
	"context"
	"fmt"
	"time"
)

// ClearEntry is one completed play of a stage.
type ClearEntry struct {
	ID        int64
	Player    string
	StageID   string
	Rotations int
	Duration  time.Duration
	CreatedAt time.Time
}

// SaveClear records a clear. Returns the ID of the inserted record.
func (s *Store) SaveClear(ctx context.Context, e ClearEntry) (int64, error) {
	if e.Player == "" {
		e.Player = "local"
	}

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO clears (player, stage_id, rotations, duration_ms) VALUES (?, ?, ?, ?)",
		e.Player, e.StageID, e.Rotations, e.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save clear: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// BestClears retrieves the best N clears for a stage.
// Fewer rotations rank higher; ties go to the faster clear.
func (s *Store) BestClears(ctx context.Context, stageID string, limit int) ([]ClearEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, player, stage_id, rotations, duration_ms, created_at
		 FROM clears
		 WHERE stage_id = ?
		 ORDER BY rotations ASC, duration_ms ASC, id ASC
		 LIMIT ?`,
		stageID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query clears: %w", err)
	}
	defer rows.Close()

	var entries []ClearEntry
	for rows.Next() {
		var (
			e          ClearEntry
			durationMs int64
			createdAt  any
		)
		if err := rows.Scan(&e.ID, &e.Player, &e.StageID, &e.Rotations, &durationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Duration = time.Duration(durationMs) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// StageStats contains aggregated statistics for a stage.
type StageStats struct {
	StageID       string
	Clears        int
	BestRotations int
	AvgRotations  float64
	LastCleared   time.Time
}

// GetStageStats retrieves aggregated statistics for a specific stage.
func (s *Store) GetStageStats(ctx context.Context, stageID string) (*StageStats, error) {
	stats := &StageStats{StageID: stageID}

	var lastCleared any
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MIN(rotations), 0), COALESCE(AVG(rotations), 0), MAX(created_at)
		 FROM clears WHERE stage_id = ?`,
		stageID,
	).Scan(&stats.Clears, &stats.BestRotations, &stats.AvgRotations, &lastCleared)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stage stats: %w", err)
	}
	stats.LastCleared = parseTime(lastCleared)

	return stats, nil
}

// GetAllStageStats retrieves statistics for every stage that has been cleared.
func (s *Store) GetAllStageStats(ctx context.Context) (map[string]*StageStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT stage_id, COUNT(*), MIN(rotations), AVG(rotations), MAX(created_at)
		 FROM clears
		 GROUP BY stage_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all stage stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*StageStats)
	for rows.Next() {
		var st StageStats
		var lastCleared any
		if err := rows.Scan(&st.StageID, &st.Clears, &st.BestRotations, &st.AvgRotations, &lastCleared); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastCleared = parseTime(lastCleared)
		stats[st.StageID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
