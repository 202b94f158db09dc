package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/claude/repforge/internal/models"
	"github.com/google/uuid"
)

// InsertSetLogs batch-inserts logged sets. Returns count inserted; duplicate
// ids are skipped so re-imports are idempotent.
func (db *DB) InsertSetLogs(ctx context.Context, logs []models.SetLog) (int64, error) {
	if len(logs) == 0 {
		return 0, nil
	}

	query := `INSERT INTO set_logs (id, entry_id, completed_at, reps, weight,
		rpe, bonus_reps, completed) VALUES `
	args := make([]any, 0, len(logs)*8)
	valueStrings := make([]string, 0, len(logs))

	for i, l := range logs {
		base := i * 8
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8,
		))
		args = append(args, l.ID, l.EntryID, l.CompletedAt, l.Reps, l.Weight,
			l.RPE, l.BonusReps, l.Completed)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting set logs: %w", err)
	}
	return tag.RowsAffected(), nil
}

// QueryLogs retrieves an entry's logs most-recent-first, which is the order
// the progression engine expects. A zero limit means no limit.
func (db *DB) QueryLogs(ctx context.Context, entryID uuid.UUID, limit int) ([]models.SetLog, error) {
	query := `SELECT id, entry_id, completed_at, reps, weight, rpe, bonus_reps, completed
		 FROM set_logs WHERE entry_id = $1 ORDER BY completed_at DESC`
	args := []any{entryID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying set logs: %w", err)
	}
	defer rows.Close()

	var result []models.SetLog
	for rows.Next() {
		var l models.SetLog
		if err := rows.Scan(&l.ID, &l.EntryID, &l.CompletedAt, &l.Reps, &l.Weight,
			&l.RPE, &l.BonusReps, &l.Completed); err != nil {
			return nil, fmt.Errorf("scanning set log: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

// QuerySessionLogs retrieves the logs belonging to the entry's most recent
// session: all sets sharing the calendar date of the newest log.
func (db *DB) QuerySessionLogs(ctx context.Context, entryID uuid.UUID) ([]models.SetLog, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, entry_id, completed_at, reps, weight, rpe, bonus_reps, completed
		 FROM set_logs
		 WHERE entry_id = $1
		   AND completed_at::date = (
		       SELECT MAX(completed_at)::date FROM set_logs WHERE entry_id = $1)
		 ORDER BY completed_at DESC`, entryID)
	if err != nil {
		return nil, fmt.Errorf("querying session logs: %w", err)
	}
	defer rows.Close()

	var result []models.SetLog
	for rows.Next() {
		var l models.SetLog
		if err := rows.Scan(&l.ID, &l.EntryID, &l.CompletedAt, &l.Reps, &l.Weight,
			&l.RPE, &l.BonusReps, &l.Completed); err != nil {
			return nil, fmt.Errorf("scanning set log: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

// TopSetWeight returns the heaviest completed set weight an entry logged on
// the given calendar date. Used to resolve a backoff entry's parent top set
// for the current session.
func (db *DB) TopSetWeight(ctx context.Context, entryID uuid.UUID, day time.Time) (float64, bool, error) {
	var weight *float64
	err := db.Pool.QueryRow(ctx,
		`SELECT MAX(weight) FROM set_logs
		 WHERE entry_id = $1 AND completed = TRUE AND completed_at::date = $2::date`,
		entryID, day).Scan(&weight)
	if err != nil {
		return 0, false, fmt.Errorf("querying top set: %w", err)
	}
	if weight == nil {
		return 0, false, nil
	}
	return *weight, true, nil
}
