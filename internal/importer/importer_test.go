package importer

import (
	"strings"
	"testing"
	"time"
)

const csvHeader = "entry_id,completed_at,reps,weight,rpe,bonus_reps,completed\n"

// TestParseLogCSV verifies a well-formed export parses with optional fields
// handled: empty RPE means untracked, empty completed defaults to true.
func TestParseLogCSV(t *testing.T) {
	data := csvHeader +
		"c56c7f2a-9c3e-4a53-9d1f-1f2e3a4b5c6d,2026-08-28T18:00:00Z,5,100,8,,true\n" +
		"c56c7f2a-9c3e-4a53-9d1f-1f2e3a4b5c6d,2026-08-28T18:05:00Z,12,60,,2,\n" +
		"c56c7f2a-9c3e-4a53-9d1f-1f2e3a4b5c6d,2026-08-28T18:10:00Z,4,100,9.5,,false\n"

	logs, rejected, err := ParseLogCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rejected != 0 {
		t.Errorf("rejected = %d, want 0", rejected)
	}
	if len(logs) != 3 {
		t.Fatalf("len(logs) = %d, want 3", len(logs))
	}

	if logs[0].RPE == nil || *logs[0].RPE != 8 {
		t.Errorf("row 0 rpe = %v, want 8", logs[0].RPE)
	}
	if logs[0].BonusReps != nil {
		t.Errorf("row 0 bonus = %v, want nil", logs[0].BonusReps)
	}
	if !logs[0].Completed {
		t.Error("row 0 should be completed")
	}

	if logs[1].RPE != nil {
		t.Errorf("row 1 rpe = %v, want nil (untracked)", logs[1].RPE)
	}
	if logs[1].BonusReps == nil || *logs[1].BonusReps != 2 {
		t.Errorf("row 1 bonus = %v, want 2", logs[1].BonusReps)
	}
	if !logs[1].Completed {
		t.Error("row 1 should default to completed")
	}

	if logs[2].Completed {
		t.Error("row 2 should be incomplete")
	}
	want := time.Date(2026, 8, 28, 18, 10, 0, 0, time.UTC)
	if !logs[2].CompletedAt.Equal(want) {
		t.Errorf("row 2 time = %v, want %v", logs[2].CompletedAt, want)
	}
}

// TestParseLogCSVRejectsBadRows verifies malformed rows are skipped and
// counted instead of failing the file.
func TestParseLogCSVRejectsBadRows(t *testing.T) {
	data := csvHeader +
		"not-a-uuid,2026-08-28T18:00:00Z,5,100,8,,true\n" +
		"c56c7f2a-9c3e-4a53-9d1f-1f2e3a4b5c6d,yesterday,5,100,8,,true\n" +
		"c56c7f2a-9c3e-4a53-9d1f-1f2e3a4b5c6d,2026-08-28T18:00:00Z,0,100,8,,true\n" +
		"c56c7f2a-9c3e-4a53-9d1f-1f2e3a4b5c6d,2026-08-28T18:00:00Z,5,100,8,,true\n"

	logs, rejected, err := ParseLogCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rejected != 3 {
		t.Errorf("rejected = %d, want 3", rejected)
	}
	if len(logs) != 1 {
		t.Errorf("len(logs) = %d, want 1", len(logs))
	}
}

// TestParseLogCSVBadHeader verifies a wrong header fails the whole file.
func TestParseLogCSVBadHeader(t *testing.T) {
	data := "id,when,reps\nabc,def,5\n"
	if _, _, err := ParseLogCSV(strings.NewReader(data)); err == nil {
		t.Error("expected error for bad header")
	}
}

// TestStateDBRoundTrip verifies the sqlite state db records and recalls
// imported files keyed by path, size, and hash.
func TestStateDBRoundTrip(t *testing.T) {
	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatalf("open state db: %v", err)
	}
	defer state.Close()

	done, err := state.IsImported("logs.csv", 123, "abc")
	if err != nil {
		t.Fatalf("is imported: %v", err)
	}
	if done {
		t.Error("fresh db should report not imported")
	}

	if err := state.MarkImported("logs.csv", 123, "abc"); err != nil {
		t.Fatalf("mark imported: %v", err)
	}

	done, err = state.IsImported("logs.csv", 123, "abc")
	if err != nil {
		t.Fatalf("is imported: %v", err)
	}
	if !done {
		t.Error("marked file should report imported")
	}

	// A changed hash means the file must be re-imported.
	done, err = state.IsImported("logs.csv", 123, "different")
	if err != nil {
		t.Fatalf("is imported: %v", err)
	}
	if done {
		t.Error("changed hash should report not imported")
	}
}
