package storage

import (
	"context"
	"fmt"

	"github.com/vovakirdan/tui-pipes/internal/progress"
)

// Tracker is a progress tracker persisted in the cleared_stages table.
type Tracker struct {
	store  *Store
	player string
}

// Tracker returns a progress tracker for the given player.
func (s *Store) Tracker(player string) *Tracker {
	if player == "" {
		player = "local"
	}
	return &Tracker{store: s, player: player}
}

// RecordCleared marks the stage as cleared. Recording twice is a no-op.
func (t *Tracker) RecordCleared(ctx context.Context, stageID string) error {
	_, err := t.store.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO cleared_stages (player, stage_id) VALUES (?, ?)",
		t.player, stageID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record clear: %w", err)
	}
	return nil
}

// IsCleared reports whether the stage has been cleared by this player.
func (t *Tracker) IsCleared(ctx context.Context, stageID string) (bool, error) {
	var n int
	err := t.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM cleared_stages WHERE player = ? AND stage_id = ?",
		t.player, stageID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("storage: cannot query clear: %w", err)
	}
	return n > 0, nil
}

// Cleared returns the IDs of every stage this player has cleared.
func (t *Tracker) Cleared(ctx context.Context) ([]string, error) {
	rows, err := t.store.db.QueryContext(ctx,
		"SELECT stage_id FROM cleared_stages WHERE player = ? ORDER BY stage_id",
		t.player,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query clears: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return ids, nil
}

// Reset forgets every clear for this player.
func (t *Tracker) Reset(ctx context.Context) error {
	_, err := t.store.db.ExecContext(ctx, "DELETE FROM cleared_stages WHERE player = ?", t.player)
	if err != nil {
		return fmt.Errorf("storage: cannot reset progress: %w", err)
	}
	return nil
}

var (
	_ progress.Tracker  = (*Tracker)(nil)
	_ progress.Lister   = (*Tracker)(nil)
	_ progress.Resetter = (*Tracker)(nil)
)
