package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/claude/repforge/internal/engine"
)

type e1rmRequest struct {
	Weight  float64        `json:"weight"`
	Reps    float64        `json:"reps"`
	RPE     float64        `json:"rpe"`
	Formula engine.Formula `json:"formula"`
}

func (s *Server) handleCalcE1RM(w http.ResponseWriter, r *http.Request) {
	var req e1rmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Formula == "" {
		req.Formula = engine.FormulaAverage
	}

	e1rm, err := engine.EstimateOneRepMax(req.Weight, req.Reps, engine.RPE(req.RPE), req.Formula)
	if err != nil {
		writeCalcError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"e1rm": e1rm, "formula": req.Formula})
}

type targetWeightRequest struct {
	OneRepMax  float64        `json:"one_rep_max"`
	TargetReps float64        `json:"target_reps"`
	TargetRPE  float64        `json:"target_rpe"`
	Formula    engine.Formula `json:"formula"`
}

func (s *Server) handleCalcTargetWeight(w http.ResponseWriter, r *http.Request) {
	var req targetWeightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Formula == "" {
		req.Formula = engine.FormulaAverage
	}

	weight, err := engine.TargetWeight(req.OneRepMax, req.TargetReps, engine.RPE(req.TargetRPE), req.Formula)
	if err != nil {
		writeCalcError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"target_weight": weight, "formula": req.Formula})
}

type backoffRequest struct {
	TopSetWeight  float64 `json:"top_set_weight"`
	OffsetPercent float64 `json:"offset_percent"`
}

func (s *Server) handleCalcBackoff(w http.ResponseWriter, r *http.Request) {
	var req backoffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"backoff_weight": engine.BackoffWeight(req.TopSetWeight, req.OffsetPercent),
	})
}

type snapRequest struct {
	Weight    float64 `json:"weight"`
	Increment float64 `json:"increment"`
}

// handleCalcSnap snaps an exact engine recommendation down to the caller's
// equipment increment. The engine itself always returns unsnapped weights.
func (s *Server) handleCalcSnap(w http.ResponseWriter, r *http.Request) {
	var req snapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"snapped_weight": engine.SnapDown(req.Weight, req.Increment),
	})
}

func writeCalcError(w http.ResponseWriter, err error) {
	var invalid *engine.InvalidArgumentError
	if errors.As(err, &invalid) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}
