package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestHandleCalcE1RM verifies the pure calculation endpoint returns the
// RPE-adjusted estimate without touching storage.
func TestHandleCalcE1RM(t *testing.T) {
	s := &Server{}
	body := `{"weight": 100, "reps": 5, "rpe": 8, "formula": "epley"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calc/e1rm", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.handleCalcE1RM(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		E1RM float64 `json:"e1rm"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	// 5 reps at RPE 8 = 7 effective reps; Epley: 100 * (1 + 7/30) = 123.33
	if resp.E1RM != 123.33 {
		t.Errorf("e1rm = %v, want 123.33", resp.E1RM)
	}
}

// TestHandleCalcE1RMBadInput verifies engine contract violations map to 400.
func TestHandleCalcE1RMBadInput(t *testing.T) {
	s := &Server{}
	tests := []struct {
		name string
		body string
	}{
		{"zero weight", `{"weight": 0, "reps": 5, "rpe": 8}`},
		{"bad rpe", `{"weight": 100, "reps": 5, "rpe": 3}`},
		{"unknown formula", `{"weight": 100, "reps": 5, "rpe": 8, "formula": "x"}`},
		{"not json", `weight=100`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/calc/e1rm", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			s.handleCalcE1RM(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

// TestHandleCalcTargetWeightFastPath verifies effective reps of 1 returns the
// 1RM itself.
func TestHandleCalcTargetWeightFastPath(t *testing.T) {
	s := &Server{}
	body := `{"one_rep_max": 140, "target_reps": 1, "target_rpe": 10, "formula": "brzycki"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calc/target-weight", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.handleCalcTargetWeight(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		TargetWeight float64 `json:"target_weight"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp.TargetWeight != 140 {
		t.Errorf("target_weight = %v, want 140", resp.TargetWeight)
	}
}

// TestHandleCalcBackoff pins the documented 2-decimal backoff results.
func TestHandleCalcBackoff(t *testing.T) {
	s := &Server{}
	body := `{"top_set_weight": 100, "offset_percent": -0.123}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calc/backoff", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.handleCalcBackoff(rec, req)

	var resp struct {
		BackoffWeight float64 `json:"backoff_weight"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp.BackoffWeight != 87.7 {
		t.Errorf("backoff_weight = %v, want 87.7", resp.BackoffWeight)
	}
}

// TestHandleCalcSnap verifies snapping down to the equipment increment.
func TestHandleCalcSnap(t *testing.T) {
	s := &Server{}
	body := `{"weight": 103.7, "increment": 2.5}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calc/snap", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.handleCalcSnap(rec, req)

	var resp struct {
		SnappedWeight float64 `json:"snapped_weight"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp.SnappedWeight != 102.5 {
		t.Errorf("snapped_weight = %v, want 102.5", resp.SnappedWeight)
	}
}

// TestHandleDefaults verifies the defaults endpoint serves the stock settings
// per progression type and 404s on unknown tags.
func TestHandleDefaults(t *testing.T) {
	s := New(nil, "key", discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/defaults/amrap_autoreg", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Settings struct {
			MinReps      int     `json:"min_reps"`
			MaxIncrement float64 `json:"max_increment"`
		} `json:"settings"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp.Settings.MinReps != 5 || resp.Settings.MaxIncrement != 10 {
		t.Errorf("settings = %+v, want stock AMRAP defaults", resp.Settings)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/defaults/wave_loading", nil)
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for unknown type", rec.Code)
	}
}
