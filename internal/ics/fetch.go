package ics

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Client fetches the remote calendar document over HTTP.
type Client struct {
	http *http.Client
	url  string
}

// NewClient creates a calendar client. timeout bounds the whole fetch; an
// expired timeout surfaces as an ordinary fetch failure.
func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		http: &http.Client{Timeout: timeout},
		url:  url,
	}
}

// Fetch downloads and parses the calendar document, returning its event
// components.
func (c *Client) Fetch(ctx context.Context) ([]RawEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch calendar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch calendar: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read calendar: %w", err)
	}
	slog.Debug("calendar fetched", "bytes", len(body))

	return Parse(body)
}
