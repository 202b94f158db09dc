package models

import (
	"testing"
	"time"

	"github.com/claude/repforge/internal/engine"
	"github.com/google/uuid"
)

// TestSettingsRoundTrip verifies each settings shape survives encode/decode
// under its own tag.
func TestSettingsRoundTrip(t *testing.T) {
	tests := []struct {
		tag      engine.ProgressionType
		settings engine.Settings
	}{
		{engine.ProgressionRPEAutoreg, engine.RPEAutoregSettings{TargetReps: 5, TargetRPE: 8, Tolerance: 0.5, IncrementOnSuccess: 2.5, Formula: engine.FormulaBrzycki}},
		{engine.ProgressionLinkedBackoff, engine.LinkedBackoffSettings{OffsetPercent: -0.1}},
		{engine.ProgressionDouble, engine.DoubleProgressionSettings{RepFloor: 8, RepCeiling: 12, WeightIncrement: 2.5}},
		{engine.ProgressionLinearFixed, engine.LinearFixedSettings{TargetSets: 3, TargetReps: 5, FixedIncrement: 2.5}},
		{engine.ProgressionAMRAP, engine.AMRAPSettings{MinReps: 5, IncrementPerBonusRep: 2.5, MaxIncrement: 10}},
	}
	for _, tt := range tests {
		data, err := EncodeSettings(tt.settings)
		if err != nil {
			t.Fatalf("%s: encode: %v", tt.tag, err)
		}
		back, err := DecodeSettings(tt.tag, data)
		if err != nil {
			t.Fatalf("%s: decode: %v", tt.tag, err)
		}
		if back != tt.settings {
			t.Errorf("%s: round trip gave %+v, want %+v", tt.tag, back, tt.settings)
		}
	}
}

// TestDecodeUnknownTag verifies storage refuses payloads it cannot type.
func TestDecodeUnknownTag(t *testing.T) {
	if _, err := DecodeSettings("wave_loading", []byte(`{}`)); err == nil {
		t.Error("expected error for unknown tag")
	}
}

// TestEngineLogConversion verifies optional fields cross the boundary intact.
func TestEngineLogConversion(t *testing.T) {
	rpe := 8.5
	bonus := 2
	l := SetLog{
		ID:          uuid.New(),
		EntryID:     uuid.New(),
		CompletedAt: time.Now(),
		Reps:        7,
		Weight:      102.5,
		RPE:         &rpe,
		BonusReps:   &bonus,
		Completed:   true,
	}

	el := l.EngineLog()
	if el.EntryID != l.EntryID.String() {
		t.Errorf("entry id = %q, want %q", el.EntryID, l.EntryID.String())
	}
	if el.RPE == nil || *el.RPE != 8.5 {
		t.Errorf("rpe = %v, want 8.5", el.RPE)
	}
	if el.BonusReps == nil || *el.BonusReps != 2 {
		t.Errorf("bonus reps = %v, want 2", el.BonusReps)
	}

	untracked := SetLog{EntryID: l.EntryID, Reps: 5, Weight: 100, Completed: true}
	if got := untracked.EngineLog(); got.RPE != nil {
		t.Errorf("rpe = %v, want nil for untracked set", got.RPE)
	}
}
