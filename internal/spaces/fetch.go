package spaces

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client fetches the space registry over HTTP.
type Client struct {
	http *http.Client
	url  string
}

func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		http: &http.Client{Timeout: timeout},
		url:  url,
	}
}

// Fetch downloads and parses the registry. Callers treat any failure as an
// empty registry; the feed never fails because the navigator is down.
func (c *Client) Fetch(ctx context.Context) ([]Space, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch space registry: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch space registry: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read space registry: %w", err)
	}

	return Parse(body)
}
