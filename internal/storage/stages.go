package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-pipes/internal/games/pipes/core"
	"github.com/vovakirdan/tui-pipes/internal/games/pipes/levels/formats"
)

// StageRecord is a stored stage with bookkeeping columns.
type StageRecord struct {
	core.Stage
	CreatedAt time.Time
	UpdatedAt time.Time
}

func encodePipes(s core.Stage) (string, error) {
	data, err := formats.EncodeJSON(formats.FromStage(s))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodePipes(id, name string, width, height int, raw string) (core.Stage, error) {
	lvl, err := formats.ParseJSON([]byte(raw))
	if err != nil {
		return core.Stage{}, err
	}
	return core.Stage{
		ID:     id,
		Name:   name,
		Width:  width,
		Height: height,
		Pipes:  lvl.Pipes,
	}, nil
}

// CreateStage inserts a new stage. An empty ID is replaced with a fresh UUID.
// Returns the stage as stored, or ErrExists if the ID is taken.
func (s *Store) CreateStage(ctx context.Context, stage core.Stage) (core.Stage, error) {
	if stage.ID == "" {
		stage.ID = uuid.NewString()
	}

	pipes, err := encodePipes(stage)
	if err != nil {
		return core.Stage{}, fmt.Errorf("storage: cannot encode stage: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO stages (id, name, width, height, pipes) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		stage.ID, stage.Name, stage.Width, stage.Height, pipes,
	)
	if err != nil {
		return core.Stage{}, fmt.Errorf("storage: cannot create stage: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return core.Stage{}, fmt.Errorf("storage: cannot create stage: %w", err)
	}
	if n == 0 {
		return core.Stage{}, ErrExists
	}

	return stage, nil
}

// SaveStage inserts or replaces a stage by ID.
func (s *Store) SaveStage(ctx context.Context, stage core.Stage) error {
	pipes, err := encodePipes(stage)
	if err != nil {
		return fmt.Errorf("storage: cannot encode stage: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO stages (id, name, width, height, pipes) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name, width = excluded.width, height = excluded.height,
		   pipes = excluded.pipes, updated_at = CURRENT_TIMESTAMP`,
		stage.ID, stage.Name, stage.Width, stage.Height, pipes,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save stage: %w", err)
	}
	return nil
}

// GetStage retrieves a stage by ID. Returns ErrNotFound if missing.
func (s *Store) GetStage(ctx context.Context, id string) (StageRecord, error) {
	var (
		rec                  StageRecord
		raw                  string
		createdAt, updatedAt any
	)

	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, width, height, pipes, created_at, updated_at
		 FROM stages WHERE id = ?`,
		id,
	).Scan(&rec.ID, &rec.Name, &rec.Width, &rec.Height, &raw, &createdAt, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return StageRecord{}, ErrNotFound
	}
	if err != nil {
		return StageRecord{}, fmt.Errorf("storage: cannot query stage: %w", err)
	}

	stage, err := decodePipes(rec.ID, rec.Name, rec.Width, rec.Height, raw)
	if err != nil {
		return StageRecord{}, fmt.Errorf("storage: stage %s has corrupt pipes: %w", id, err)
	}
	rec.Stage = stage
	rec.CreatedAt = parseTime(createdAt)
	rec.UpdatedAt = parseTime(updatedAt)

	return rec, nil
}

// ListStages returns every stored stage ordered by ID.
func (s *Store) ListStages(ctx context.Context) ([]StageRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, width, height, pipes, created_at, updated_at
		 FROM stages
		 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stages: %w", err)
	}
	defer rows.Close()

	var records []StageRecord
	for rows.Next() {
		var (
			rec                  StageRecord
			raw                  string
			createdAt, updatedAt any
		)
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Width, &rec.Height, &raw, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		stage, err := decodePipes(rec.ID, rec.Name, rec.Width, rec.Height, raw)
		if err != nil {
			return nil, fmt.Errorf("storage: stage %s has corrupt pipes: %w", rec.ID, err)
		}
		rec.Stage = stage
		rec.CreatedAt = parseTime(createdAt)
		rec.UpdatedAt = parseTime(updatedAt)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// UpdateStage replaces an existing stage. Returns ErrNotFound if missing.
func (s *Store) UpdateStage(ctx context.Context, stage core.Stage) error {
	pipes, err := encodePipes(stage)
	if err != nil {
		return fmt.Errorf("storage: cannot encode stage: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE stages
		 SET name = ?, width = ?, height = ?, pipes = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		stage.Name, stage.Width, stage.Height, pipes, stage.ID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot update stage: %w", err)
	}
	return expectOne(res)
}

// DeleteStage removes a stage. Returns ErrNotFound if missing.
func (s *Store) DeleteStage(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM stages WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete stage: %w", err)
	}
	return expectOne(res)
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
