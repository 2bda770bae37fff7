// Package fetch retrieves pages from a running folio server.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxBodySize caps the response size Fetch reads.
const MaxBodySize = 8 << 20

// Downloader handles HTTP fetches with configurable timeouts.
type Downloader struct {
	client *http.Client
}

// NewDownloader creates a downloader with the specified timeout.
func NewDownloader(timeout time.Duration) *Downloader {
	return &Downloader{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// DefaultDownloader returns a downloader with a 30-second timeout.
func DefaultDownloader() *Downloader {
	return NewDownloader(30 * time.Second)
}

// Fetch GETs the URL and returns the response body. Non-200 responses and
// bodies larger than MaxBodySize are errors.
func (d *Downloader) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch failed: %s returned %s", url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if len(body) > MaxBodySize {
		return nil, fmt.Errorf("fetch failed: %s is larger than %d bytes", url, MaxBodySize)
	}
	return body, nil
}
