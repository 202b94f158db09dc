package mcp

import (
	"context"
	"time"

	"github.com/claude/repforge/internal/engine"
	"github.com/claude/repforge/internal/models"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

var formulaNames = func() []string {
	var names []string
	for _, f := range engine.Formulas() {
		names = append(names, string(f))
	}
	return names
}()

// --- Tool definitions ---

var toolEstimateE1RM = mcp.NewTool("estimate_e1rm",
	mcp.WithDescription("Estimate a one-rep max from a logged set. RPE below 10 adds reps in reserve to the rep count before estimating."),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight lifted")),
	mcp.WithNumber("reps", mcp.Required(), mcp.Description("Reps performed")),
	mcp.WithNumber("rpe", mcp.Description("Rating of perceived exertion, 6-10. Defaults to 10 (no reps in reserve).")),
	mcp.WithString("formula", mcp.Description("Estimation formula. Defaults to 'average' (mean of all formulas)."), mcp.Enum(formulaNames...)),
)

var toolTargetWeight = mcp.NewTool("target_weight",
	mcp.WithDescription("Compute the weight to load for a target rep count and RPE, given a known one-rep max."),
	mcp.WithNumber("one_rep_max", mcp.Required(), mcp.Description("Known or estimated one-rep max")),
	mcp.WithNumber("target_reps", mcp.Required(), mcp.Description("Planned reps")),
	mcp.WithNumber("target_rpe", mcp.Description("Planned RPE, 6-10. Defaults to 10.")),
	mcp.WithString("formula", mcp.Description("Estimation formula. Defaults to 'average'."), mcp.Enum(formulaNames...)),
)

var toolBackoffWeight = mcp.NewTool("backoff_weight",
	mcp.WithDescription("Compute a backoff set weight as a percentage offset from a top set."),
	mcp.WithNumber("top_set_weight", mcp.Required(), mcp.Description("Top set weight")),
	mcp.WithNumber("offset_percent", mcp.Required(), mcp.Description("Fractional offset, e.g. -0.10 for 10% lighter")),
)

var toolNextState = mcp.NewTool("next_state",
	mcp.WithDescription("Run an entry's progression scheme over its most recent session and return the next prescription. Does not persist anything."),
	mcp.WithString("entry_id", mcp.Required(), mcp.Description("Exercise entry UUID")),
)

var toolListEntries = mcp.NewTool("list_entries",
	mcp.WithDescription("List all exercise entries with their progression settings and current prescriptions."),
)

var toolGetEntryHistory = mcp.NewTool("get_entry_history",
	mcp.WithDescription("Retrieve an entry's logged sets, most recent first."),
	mcp.WithString("entry_id", mcp.Required(), mcp.Description("Exercise entry UUID")),
	mcp.WithNumber("limit", mcp.Description("Maximum sets to return. Defaults to all.")),
)

// --- Tool handlers ---

// formulaArg resolves the optional formula parameter, defaulting to average.
func formulaArg(req mcp.CallToolRequest) engine.Formula {
	f := engine.Formula(req.GetString("formula", ""))
	if f == "" {
		return engine.FormulaAverage
	}
	return f
}

func (h *handlers) estimateE1RM(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weight, err := req.RequireFloat("weight")
	if err != nil {
		return mcp.NewToolResultError("weight parameter is required"), nil
	}
	reps, err := req.RequireFloat("reps")
	if err != nil {
		return mcp.NewToolResultError("reps parameter is required"), nil
	}
	rpe := engine.RPE(req.GetFloat("rpe", 10))
	formula := formulaArg(req)

	e1rm, err := engine.EstimateOneRepMax(weight, reps, rpe, formula)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"formula": formula,
		"e1rm":    e1rm,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) targetWeight(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	oneRepMax, err := req.RequireFloat("one_rep_max")
	if err != nil {
		return mcp.NewToolResultError("one_rep_max parameter is required"), nil
	}
	targetReps, err := req.RequireFloat("target_reps")
	if err != nil {
		return mcp.NewToolResultError("target_reps parameter is required"), nil
	}
	targetRPE := engine.RPE(req.GetFloat("target_rpe", 10))
	formula := formulaArg(req)

	weight, err := engine.TargetWeight(oneRepMax, targetReps, targetRPE, formula)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"formula":       formula,
		"target_weight": weight,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) backoffWeight(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topSet, err := req.RequireFloat("top_set_weight")
	if err != nil {
		return mcp.NewToolResultError("top_set_weight parameter is required"), nil
	}
	offset, err := req.RequireFloat("offset_percent")
	if err != nil {
		return mcp.NewToolResultError("offset_percent parameter is required"), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"backoff_weight": engine.BackoffWeight(topSet, offset),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) nextState(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entry, ok, res := h.entryArg(ctx, req)
	if !ok {
		return res, nil
	}

	logs, err := h.ds.QuerySessionLogs(ctx, entry.ID)
	if err != nil {
		h.log.Error("mcp next_state logs", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	next, err := engine.CalculateNextState(entry.EngineEntry(), models.EngineLogs(logs))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(next)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listEntries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := h.ds.ListEntries(ctx)
	if err != nil {
		h.log.Error("mcp list_entries", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(entries)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getEntryHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entry, ok, res := h.entryArg(ctx, req)
	if !ok {
		return res, nil
	}
	limit := req.GetInt("limit", 0)

	logs, err := h.ds.QueryLogs(ctx, entry.ID, limit)
	if err != nil {
		h.log.Error("mcp get_entry_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(logs)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// entryArg parses the entry_id parameter and loads the entry. On failure the
// returned result carries the error and ok is false.
func (h *handlers) entryArg(ctx context.Context, req mcp.CallToolRequest) (*models.ExerciseEntry, bool, *mcp.CallToolResult) {
	idStr, err := req.RequireString("entry_id")
	if err != nil {
		return nil, false, mcp.NewToolResultError("entry_id parameter is required")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, false, mcp.NewToolResultError("entry_id is not a valid UUID")
	}

	entry, err := h.ds.GetEntry(ctx, id)
	if err != nil {
		h.log.Error("mcp load entry", "id", id, "error", err)
		return nil, false, mcp.NewToolResultError("loading entry: " + err.Error())
	}
	return entry, true, nil
}

// sessionLogs filters a most-recent-first log slice down to the sets sharing
// the newest log's calendar date. Used by the HTTP data source, which has no
// server-side session query.
func sessionLogs(logs []models.SetLog) []models.SetLog {
	if len(logs) == 0 {
		return nil
	}
	day := logs[0].CompletedAt
	var session []models.SetLog
	for _, l := range logs {
		if sameDay(l.CompletedAt, day) {
			session = append(session, l)
		}
	}
	return session
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
