package models

import (
	"time"

	"github.com/claude/repforge/internal/engine"
	"github.com/google/uuid"
)

// SetLog records one completed set against an entry. Append-only: rows are
// never updated or deleted except by whole-exercise cascade.
type SetLog struct {
	ID          uuid.UUID `json:"id"`
	EntryID     uuid.UUID `json:"entry_id"`
	CompletedAt time.Time `json:"completed_at"`
	Reps        int       `json:"reps"`
	Weight      float64   `json:"weight"`
	// RPE is nil when the lifter does not track RPE for this set.
	RPE *float64 `json:"rpe,omitempty"`
	// BonusReps, when present (zero included), asserts the bonus count for
	// AMRAP progression instead of deriving it from the configured minimum.
	BonusReps *int `json:"bonus_reps,omitempty"`
	Completed bool `json:"completed"`
}

// EngineLog converts the stored row into the engine's plain-data view.
func (l SetLog) EngineLog() engine.Log {
	log := engine.Log{
		EntryID:     l.EntryID.String(),
		CompletedAt: l.CompletedAt,
		Reps:        l.Reps,
		Weight:      l.Weight,
		BonusReps:   l.BonusReps,
		Completed:   l.Completed,
	}
	if l.RPE != nil {
		r := engine.RPE(*l.RPE)
		log.RPE = &r
	}
	return log
}

// EngineLogs converts a batch, preserving order (callers keep these
// most-recent-first for the strategies where order matters).
func EngineLogs(logs []SetLog) []engine.Log {
	out := make([]engine.Log, len(logs))
	for i, l := range logs {
		out[i] = l.EngineLog()
	}
	return out
}
