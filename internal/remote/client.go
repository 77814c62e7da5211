package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Client posts source to a remote Server's /eval endpoint.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient wraps baseURL with http.DefaultClient.
func NewClient(baseURL string) *Client {
	return &Client{BaseURL: baseURL, HTTPClient: http.DefaultClient}
}

// Eval submits source and scope, returning the decoded response or a
// transport-level error. A populated EvalResponse.Error is not itself
// a Go error: it reports that the remote evaluation threw or failed.
func (c *Client) Eval(source string, scope map[string]string) (*EvalResponse, error) {
	body, err := json.Marshal(EvalRequest{Source: source, Scope: scope})
	if err != nil {
		return nil, fmt.Errorf("encoding eval request: %w", err)
	}

	resp, err := c.HTTPClient.Post(c.BaseURL+"/eval", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("posting to %s/eval: %w", c.BaseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote eval returned status %d", resp.StatusCode)
	}

	var out EvalResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding eval response: %w", err)
	}
	return &out, nil
}
