package mcp

import (
	"context"
	"encoding/json"

	"github.com/claude/repforge/internal/engine"
	"github.com/mark3labs/mcp-go/mcp"
)

// formulaCatalog lists every estimation formula with a reference estimate for
// 100 units x 5 reps, so a client can see how the formulas diverge.
func (h *handlers) formulaCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	type formulaInfo struct {
		Name          string  `json:"name"`
		ReferenceE1RM float64 `json:"reference_e1rm"`
	}

	var catalog []formulaInfo
	for _, f := range engine.Formulas() {
		est, ok := f.Estimate(100, 5)
		if !ok {
			continue
		}
		catalog = append(catalog, formulaInfo{
			Name:          string(f),
			ReferenceE1RM: engine.Round2(est),
		})
	}

	data, err := json.Marshal(catalog)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// defaultSettings serves the stock settings for every progression type.
func (h *handlers) defaultSettings(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	defaults := make(map[engine.ProgressionType]engine.Settings)
	for _, t := range engine.ProgressionTypes() {
		if s, ok := engine.DefaultSettings(t); ok {
			defaults[t] = s
		}
	}

	data, err := json.Marshal(defaults)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
