package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("RepForge", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("RepForge strength progression server. Estimate one-rep maxes, compute target and backoff weights, and advance exercise entries through their progression schemes."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolEstimateE1RM, Handler: h.estimateE1RM},
		server.ServerTool{Tool: toolTargetWeight, Handler: h.targetWeight},
		server.ServerTool{Tool: toolBackoffWeight, Handler: h.backoffWeight},
		server.ServerTool{Tool: toolNextState, Handler: h.nextState},
		server.ServerTool{Tool: toolListEntries, Handler: h.listEntries},
		server.ServerTool{Tool: toolGetEntryHistory, Handler: h.getEntryHistory},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resFormulas, Handler: h.formulaCatalog},
		server.ServerResource{Resource: resDefaults, Handler: h.defaultSettings},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resFormulas = mcp.NewResource(
	"repforge://formulas",
	"Formula Catalog",
	mcp.WithResourceDescription("All one-rep-max estimation formulas with a reference estimate for 100 units x 5 reps"),
	mcp.WithMIMEType("application/json"),
)

var resDefaults = mcp.NewResource(
	"repforge://defaults",
	"Progression Defaults",
	mcp.WithResourceDescription("Stock settings for every progression type"),
	mcp.WithMIMEType("application/json"),
)
