package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/claude/repforge/internal/engine"
	"github.com/claude/repforge/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrEntryNotFound is returned when an entry id does not exist.
var ErrEntryNotFound = errors.New("exercise entry not found")

// InsertEntry stores a new exercise entry.
func (db *DB) InsertEntry(ctx context.Context, e models.ExerciseEntry) error {
	settings, err := models.EncodeSettings(e.Settings)
	if err != nil {
		return err
	}
	_, err = db.Pool.Exec(ctx,
		`INSERT INTO entries (id, exercise, progression_type, settings,
		 current_weight, current_reps, parent_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.Exercise, e.Type, settings,
		e.CurrentWeight, e.CurrentReps, e.ParentID, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting entry: %w", err)
	}
	return nil
}

// GetEntry fetches a single entry by id.
func (db *DB) GetEntry(ctx context.Context, id uuid.UUID) (*models.ExerciseEntry, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, exercise, progression_type, settings,
		 current_weight, current_reps, parent_id, created_at, updated_at
		 FROM entries WHERE id = $1`, id)

	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("querying entry: %w", err)
	}
	return e, nil
}

// ListEntries returns all entries, newest first.
func (db *DB) ListEntries(ctx context.Context) ([]models.ExerciseEntry, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, exercise, progression_type, settings,
		 current_weight, current_reps, parent_id, created_at, updated_at
		 FROM entries ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var result []models.ExerciseEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		result = append(result, *e)
	}
	return result, rows.Err()
}

// ApplyNextState writes a computed prescription back onto an entry, bumping
// updated_at. The old values are not modified anywhere else; this is the only
// mutation path for an entry's prescription.
func (db *DB) ApplyNextState(ctx context.Context, id uuid.UUID, next engine.NextState) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE entries SET current_weight = $2, current_reps = $3, updated_at = $4
		 WHERE id = $1`,
		id, next.NextWeight, next.NextReps, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("applying next state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*models.ExerciseEntry, error) {
	var e models.ExerciseEntry
	var settings []byte
	if err := row.Scan(&e.ID, &e.Exercise, &e.Type, &settings,
		&e.CurrentWeight, &e.CurrentReps, &e.ParentID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	decoded, err := models.DecodeSettings(e.Type, settings)
	if err != nil {
		return nil, err
	}
	e.Settings = decoded
	return &e, nil
}
