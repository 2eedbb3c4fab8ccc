package export

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/claude/paceforge/internal/plan"
)

// Client fetches export tuples from the PaceForge server over HTTP.
type Client struct {
	serverURL  string
	httpClient *http.Client
}

// NewClient creates a new HTTP client for the PaceForge server.
func NewClient(serverURL string) *Client {
	return &Client{
		serverURL: serverURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// FetchCompleted retrieves every completed session's export tuple, in
// plan order.
func (c *Client) FetchCompleted() ([]plan.ExportTuple, error) {
	resp, err := c.httpClient.Get(c.serverURL + "/api/v1/export")
	if err != nil {
		return nil, fmt.Errorf("fetching exports: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("export request failed (status %d): %s", resp.StatusCode, body)
	}

	var tuples []plan.ExportTuple
	if err := json.NewDecoder(resp.Body).Decode(&tuples); err != nil {
		return nil, fmt.Errorf("decoding exports: %w", err)
	}
	return tuples, nil
}

// FetchSession retrieves one completed session's export tuple.
func (c *Client) FetchSession(sessionID string) (plan.ExportTuple, error) {
	resp, err := c.httpClient.Get(c.serverURL + "/api/v1/export/" + url.PathEscape(sessionID))
	if err != nil {
		return plan.ExportTuple{}, fmt.Errorf("fetching export %s: %w", sessionID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return plan.ExportTuple{}, fmt.Errorf("export %s failed (status %d): %s", sessionID, resp.StatusCode, body)
	}

	var tuple plan.ExportTuple
	if err := json.NewDecoder(resp.Body).Decode(&tuple); err != nil {
		return plan.ExportTuple{}, fmt.Errorf("decoding export %s: %w", sessionID, err)
	}
	return tuple, nil
}
