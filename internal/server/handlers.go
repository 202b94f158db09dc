package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/claude/repforge/internal/engine"
	"github.com/claude/repforge/internal/models"
	"github.com/claude/repforge/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type createEntryRequest struct {
	Exercise      string                 `json:"exercise"`
	Type          engine.ProgressionType `json:"progression_type"`
	Settings      json.RawMessage        `json:"settings,omitempty"`
	CurrentWeight float64                `json:"current_weight"`
	CurrentReps   int                    `json:"current_reps"`
	ParentID      *uuid.UUID             `json:"parent_id,omitempty"`
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Exercise == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise is required"})
		return
	}

	var settings engine.Settings
	if len(req.Settings) > 0 {
		decoded, err := models.DecodeSettings(req.Type, req.Settings)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		settings = decoded
	} else {
		defaults, ok := engine.DefaultSettings(req.Type)
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown progression type: " + string(req.Type)})
			return
		}
		settings = defaults
	}

	now := time.Now().UTC()
	entry := models.ExerciseEntry{
		ID:            uuid.New(),
		Exercise:      req.Exercise,
		Type:          req.Type,
		Settings:      settings,
		CurrentWeight: req.CurrentWeight,
		CurrentReps:   req.CurrentReps,
		ParentID:      req.ParentID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.db.InsertEntry(r.Context(), entry); err != nil {
		s.log.Error("insert entry", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.db.ListEntries(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entryFromPath(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

type appendLogsRequest struct {
	Logs []appendLogItem `json:"logs"`
}

type appendLogItem struct {
	CompletedAt time.Time `json:"completed_at"`
	Reps        int       `json:"reps"`
	Weight      float64   `json:"weight"`
	RPE         *float64  `json:"rpe,omitempty"`
	BonusReps   *int      `json:"bonus_reps,omitempty"`
	Completed   *bool     `json:"completed,omitempty"`
}

func (s *Server) handleAppendLogs(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entryFromPath(w, r)
	if !ok {
		return
	}

	var req appendLogsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if len(req.Logs) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "logs is required"})
		return
	}

	logs := make([]models.SetLog, len(req.Logs))
	for i, item := range req.Logs {
		if item.Reps <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reps must be positive"})
			return
		}
		if item.RPE != nil && !engine.RPE(*item.RPE).ValidActual() {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "rpe outside the 6-10 band and not a sentinel"})
			return
		}
		completedAt := item.CompletedAt
		if completedAt.IsZero() {
			completedAt = time.Now().UTC()
		}
		completed := true
		if item.Completed != nil {
			completed = *item.Completed
		}
		logs[i] = models.SetLog{
			ID:          uuid.New(),
			EntryID:     entry.ID,
			CompletedAt: completedAt,
			Reps:        item.Reps,
			Weight:      item.Weight,
			RPE:         item.RPE,
			BonusReps:   item.BonusReps,
			Completed:   completed,
		}
	}

	inserted, err := s.db.InsertSetLogs(r.Context(), logs)
	if err != nil {
		s.log.Error("insert set logs", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"inserted": inserted})
}

func (s *Server) handleQueryLogs(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entryFromPath(w, r)
	if !ok {
		return
	}

	logs, err := s.db.QueryLogs(r.Context(), entry.ID, 0)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

// handleNextState computes the next prescription from the most recent
// session's logs. With ?apply=true the result is persisted — unless it needs
// review, which always requires explicit acknowledgment.
func (s *Server) handleNextState(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entryFromPath(w, r)
	if !ok {
		return
	}

	logs, err := s.db.QuerySessionLogs(r.Context(), entry.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	next, err := engine.CalculateNextState(entry.EngineEntry(), models.EngineLogs(logs))
	if err != nil {
		var invalid *engine.InvalidArgumentError
		if errors.As(err, &invalid) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	applied := false
	if r.URL.Query().Get("apply") == "true" && !next.NeedsReview {
		if err := s.db.ApplyNextState(r.Context(), entry.ID, next); err != nil {
			s.log.Error("apply next state", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		applied = true
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"next":    next,
		"applied": applied,
	})
}

// handleBackoffForEntry resolves a linked-backoff entry's working weight from
// its parent's top set on the given day (default today).
func (s *Server) handleBackoffForEntry(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.entryFromPath(w, r)
	if !ok {
		return
	}

	settings, isBackoff := entry.Settings.(engine.LinkedBackoffSettings)
	if !isBackoff || entry.ParentID == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "entry is not a linked backoff entry"})
		return
	}

	day := time.Now().UTC()
	if d := r.URL.Query().Get("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date, want YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	topSet, found, err := s.db.TopSetWeight(r.Context(), *entry.ParentID, day)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "parent entry has no completed sets on that date"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"top_set_weight": topSet,
		"offset_percent": settings.OffsetPercent,
		"backoff_weight": engine.BackoffWeight(topSet, settings.OffsetPercent),
	})
}

func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	t := engine.ProgressionType(chi.URLParam(r, "type"))
	settings, ok := engine.DefaultSettings(t)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown progression type: " + string(t)})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"progression_type": t,
		"settings":         settings,
	})
}

// entryFromPath parses the {id} URL param and loads the entry, writing the
// error response itself when either step fails.
func (s *Server) entryFromPath(w http.ResponseWriter, r *http.Request) (*models.ExerciseEntry, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid entry ID"})
		return nil, false
	}
	entry, err := s.db.GetEntry(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "entry not found"})
			return nil, false
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return nil, false
	}
	return entry, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
