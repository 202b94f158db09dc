package mcp

import (
	"context"

	"github.com/claude/repforge/internal/models"
	"github.com/claude/repforge/internal/storage"
	"github.com/google/uuid"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB (local)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	GetEntry(ctx context.Context, id uuid.UUID) (*models.ExerciseEntry, error)
	ListEntries(ctx context.Context) ([]models.ExerciseEntry, error)
	QueryLogs(ctx context.Context, entryID uuid.UUID, limit int) ([]models.SetLog, error)
	QuerySessionLogs(ctx context.Context, entryID uuid.UUID) ([]models.SetLog, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
