// Package daytype asks the district calendar service whether today is an A
// or a B day.
package daytype

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

var ErrBadStatus = errors.New("day type service returned an error status")

type response struct {
	Type string `json:"type"`
}

// Client performs a single GET per lookup. A zero Timeout leaves deadlines
// to the caller's context and the transport.
type Client struct {
	URL        string
	HTTPClient *http.Client
}

func New(url string, timeout time.Duration) *Client {
	return &Client{URL: url, HTTPClient: &http.Client{Timeout: timeout}}
}

// DayType returns the raw "type" field, e.g. "A" or "B".
func (c *Client) DayType(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return "", fmt.Errorf("build day type request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch day type: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("%w: %s", ErrBadStatus, resp.Status)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode day type: %w", err)
	}
	return body.Type, nil
}
