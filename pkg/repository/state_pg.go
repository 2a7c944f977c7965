package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"promptpad/pkg/domain"
	"promptpad/pkg/logger"
)

type pgStateRepository struct {
	db *sql.DB
}

// NewPgStateRepository persists the snapshot as a single jsonb row. Save is
// an idempotent overwrite; Load of a missing or unreadable row yields the
// default state, there is no migration of drifted snapshots.
func NewPgStateRepository(db *sql.DB) *pgStateRepository {
	return &pgStateRepository{db: db}
}

func (r *pgStateRepository) Save(ctx context.Context, state domain.AppState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshaling state snapshot: %w", err)
	}

	const query = `
		INSERT INTO app_state (id, snapshot, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id)
		DO UPDATE SET
			snapshot = EXCLUDED.snapshot,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, payload); err != nil {
		return fmt.Errorf("saving state snapshot: %w", err)
	}
	return nil
}

func (r *pgStateRepository) Load(ctx context.Context) (domain.AppState, error) {
	const query = `SELECT snapshot FROM app_state WHERE id = 1`

	var payload []byte
	err := r.db.QueryRowContext(ctx, query).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DefaultState(), nil
	}
	if err != nil {
		return domain.AppState{}, fmt.Errorf("fetching state snapshot: %w", err)
	}

	var state domain.AppState
	if err := json.Unmarshal(payload, &state); err != nil {
		slog.Warn("stored state snapshot is unreadable, using defaults", logger.Err(err))
		return domain.DefaultState(), nil
	}
	return state, nil
}
