package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/MikeSquared-Agency/augur/internal/mode"
	"github.com/MikeSquared-Agency/augur/internal/signals"
)

const defaultListLimit = 50

// Decision is one persisted mode decision.
type Decision struct {
	ID           uuid.UUID      `json:"id"`
	OwnerUUID    uuid.UUID      `json:"owner_uuid"`
	EntryID      string         `json:"entry_id,omitempty"`
	Mode         mode.Mode      `json:"mode"`
	PreviousMode mode.Mode      `json:"previous_mode,omitempty"`
	Signals      signals.Vector `json:"signals"`
	Boosts       mode.Boosts    `json:"boosts"`
	Scores       mode.Scores    `json:"scores"`
	SignalSource string         `json:"signal_source"`
	WeightsName  string         `json:"weights_name"`
	CreatedAt    time.Time      `json:"created_at"`
}

// WriteDecision inserts d and returns its id. A nil d.ID gets a fresh one.
func (s *Store) WriteDecision(ctx context.Context, d Decision) (uuid.UUID, error) {
	if !d.Mode.Valid() {
		return uuid.Nil, fmt.Errorf("write decision: invalid mode %q", d.Mode)
	}
	id := d.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	source := d.SignalSource
	if source == "" {
		source = "rules"
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO mode_decisions (id, owner_uuid, entry_id, mode, previous_mode, signals, boosts, scores, signal_source, weights_name, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10, now())`,
		id, d.OwnerUUID, d.EntryID, string(d.Mode), string(d.PreviousMode), d.Signals, d.Boosts, d.Scores, source, d.WeightsName,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert mode decision: %w", err)
	}
	return id, nil
}

// LatestMode returns the owner's most recent mode, or mode.None when the
// owner has no decisions yet.
func (s *Store) LatestMode(ctx context.Context, ownerUUID uuid.UUID) (mode.Mode, error) {
	var raw string
	err := s.pool.QueryRow(ctx, `
		SELECT mode FROM mode_decisions
		WHERE owner_uuid = $1
		ORDER BY created_at DESC
		LIMIT 1`, ownerUUID,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return mode.None, nil
	}
	if err != nil {
		return mode.None, fmt.Errorf("query latest mode: %w", err)
	}
	return mode.OrNone(raw), nil
}

// ListDecisions returns the owner's decisions, newest first.
func (s *Store) ListDecisions(ctx context.Context, ownerUUID uuid.UUID, limit int) ([]Decision, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, owner_uuid, entry_id, mode, previous_mode, signals, boosts, scores, signal_source, weights_name, created_at
		FROM mode_decisions
		WHERE owner_uuid = $1
		ORDER BY created_at DESC
		LIMIT $2`, ownerUUID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query decisions: %w", err)
	}
	defer rows.Close()

	var out []Decision
	for rows.Next() {
		var (
			d       Decision
			rawMode string
			rawPrev *string
		)
		if err := rows.Scan(&d.ID, &d.OwnerUUID, &d.EntryID, &rawMode, &rawPrev, &d.Signals, &d.Boosts, &d.Scores, &d.SignalSource, &d.WeightsName, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		d.Mode = mode.OrNone(rawMode)
		if rawPrev != nil {
			d.PreviousMode = mode.OrNone(*rawPrev)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate decisions: %w", err)
	}
	return out, nil
}
