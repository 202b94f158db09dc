package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/claude/repforge/internal/models"
	"github.com/google/uuid"
)

// HTTPClient implements DataSource by calling the RepForge REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func (c *HTTPClient) GetEntry(ctx context.Context, id uuid.UUID) (*models.ExerciseEntry, error) {
	body, err := c.get(ctx, "/api/v1/entries/"+id.String())
	if err != nil {
		return nil, err
	}

	var entry models.ExerciseEntry
	if err := json.Unmarshal(body, &entry); err != nil {
		return nil, fmt.Errorf("httpclient: decode entry: %w", err)
	}
	return &entry, nil
}

func (c *HTTPClient) ListEntries(ctx context.Context) ([]models.ExerciseEntry, error) {
	body, err := c.get(ctx, "/api/v1/entries")
	if err != nil {
		return nil, err
	}

	var entries []models.ExerciseEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("httpclient: decode entries: %w", err)
	}
	return entries, nil
}

func (c *HTTPClient) QueryLogs(ctx context.Context, entryID uuid.UUID, limit int) ([]models.SetLog, error) {
	body, err := c.get(ctx, "/api/v1/entries/"+entryID.String()+"/logs")
	if err != nil {
		return nil, err
	}

	var logs []models.SetLog
	if err := json.Unmarshal(body, &logs); err != nil {
		return nil, fmt.Errorf("httpclient: decode logs: %w", err)
	}
	if limit > 0 && len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}

// QuerySessionLogs fetches all logs and filters to the newest session
// client-side; the REST API has no dedicated session endpoint.
func (c *HTTPClient) QuerySessionLogs(ctx context.Context, entryID uuid.UUID) ([]models.SetLog, error) {
	logs, err := c.QueryLogs(ctx, entryID, 0)
	if err != nil {
		return nil, err
	}
	return sessionLogs(logs), nil
}
