package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/claude/repforge/internal/engine"
	"github.com/google/uuid"
)

// ExerciseEntry is one configuration slot describing how an exercise
// progresses. Treated as an immutable snapshot: applying a NextState produces
// a new row version, nothing is edited in place.
type ExerciseEntry struct {
	ID            uuid.UUID              `json:"id"`
	Exercise      string                 `json:"exercise"`
	Type          engine.ProgressionType `json:"progression_type"`
	Settings      engine.Settings        `json:"settings"`
	CurrentWeight float64                `json:"current_weight"`
	CurrentReps   int                    `json:"current_reps"`
	// ParentID links a backoff entry to the top-set entry it follows.
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// UnmarshalJSON decodes an entry, resolving the settings payload to the
// concrete type named by progression_type. Needed because Settings is an
// interface the decoder cannot instantiate on its own.
func (e *ExerciseEntry) UnmarshalJSON(data []byte) error {
	type alias ExerciseEntry
	aux := struct {
		*alias
		Settings json.RawMessage `json:"settings"`
	}{alias: (*alias)(e)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.Settings) == 0 {
		return nil
	}
	settings, err := DecodeSettings(e.Type, aux.Settings)
	if err != nil {
		return err
	}
	e.Settings = settings
	return nil
}

// EngineEntry converts the stored row into the engine's plain-data view.
func (e ExerciseEntry) EngineEntry() engine.Entry {
	entry := engine.Entry{
		ID:            e.ID.String(),
		Type:          e.Type,
		Settings:      e.Settings,
		CurrentWeight: e.CurrentWeight,
		CurrentReps:   e.CurrentReps,
	}
	if e.ParentID != nil {
		entry.ParentID = e.ParentID.String()
	}
	return entry
}

// DecodeSettings unmarshals a settings payload into the concrete shape its
// progression tag demands. Unknown tags are an error here: storage must not
// round-trip payloads it cannot type.
func DecodeSettings(t engine.ProgressionType, data []byte) (engine.Settings, error) {
	switch t {
	case engine.ProgressionRPEAutoreg:
		var s engine.RPEAutoregSettings
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("decoding %s settings: %w", t, err)
		}
		return s, nil
	case engine.ProgressionLinkedBackoff:
		var s engine.LinkedBackoffSettings
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("decoding %s settings: %w", t, err)
		}
		return s, nil
	case engine.ProgressionDouble:
		var s engine.DoubleProgressionSettings
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("decoding %s settings: %w", t, err)
		}
		return s, nil
	case engine.ProgressionLinearFixed:
		var s engine.LinearFixedSettings
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("decoding %s settings: %w", t, err)
		}
		return s, nil
	case engine.ProgressionAMRAP:
		var s engine.AMRAPSettings
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("decoding %s settings: %w", t, err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown progression type %q", t)
}

// EncodeSettings marshals a settings payload for storage.
func EncodeSettings(s engine.Settings) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	return data, nil
}
