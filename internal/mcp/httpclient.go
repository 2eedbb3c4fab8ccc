package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/paceforge/internal/plan"
)

// HTTPClient implements DataSource by calling the PaceForge REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but the
// plan lives on the remote server (accessed over Tailscale).
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

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
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

func (c *HTTPClient) GetProfile(ctx context.Context) (plan.AthleteProfile, error) {
	body, err := c.get(ctx, "/api/v1/profile", nil)
	if err != nil {
		return plan.AthleteProfile{}, err
	}

	var profile plan.AthleteProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return plan.AthleteProfile{}, fmt.Errorf("httpclient: decode profile: %w", err)
	}
	return profile, nil
}

func (c *HTTPClient) GetPlan(ctx context.Context) (PlanDocument, error) {
	body, err := c.get(ctx, "/api/v1/plan", nil)
	if err != nil {
		return PlanDocument{}, err
	}

	var doc PlanDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return PlanDocument{}, fmt.Errorf("httpclient: decode plan: %w", err)
	}
	return doc, nil
}

func (c *HTTPClient) GetWeek(ctx context.Context, number int) (plan.Week, error) {
	body, err := c.get(ctx, fmt.Sprintf("/api/v1/plan/weeks/%d", number), nil)
	if err != nil {
		return plan.Week{}, err
	}

	var week plan.Week
	if err := json.Unmarshal(body, &week); err != nil {
		return plan.Week{}, fmt.Errorf("httpclient: decode week: %w", err)
	}
	return week, nil
}

func (c *HTTPClient) GetStats(ctx context.Context) (plan.Stats, error) {
	body, err := c.get(ctx, "/api/v1/stats", nil)
	if err != nil {
		return plan.Stats{}, err
	}

	var stats plan.Stats
	if err := json.Unmarshal(body, &stats); err != nil {
		return plan.Stats{}, fmt.Errorf("httpclient: decode stats: %w", err)
	}
	return stats, nil
}

func (c *HTTPClient) GetExport(ctx context.Context, sessionID string) (plan.ExportTuple, error) {
	body, err := c.get(ctx, "/api/v1/export/"+url.PathEscape(sessionID), nil)
	if err != nil {
		return plan.ExportTuple{}, err
	}

	var tuple plan.ExportTuple
	if err := json.Unmarshal(body, &tuple); err != nil {
		return plan.ExportTuple{}, fmt.Errorf("httpclient: decode export: %w", err)
	}
	return tuple, nil
}
