// api/http_client.go
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"park-server/config"
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return "unexpected status code: " + e.Status
}

// HTTPClient struct to hold base URL and HTTP client configuration
type HTTPClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewHTTPClient creates a new instance of HTTPClient with default settings
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: config.REMOTE_SOURCE_TIMEOUT_SECONDS * time.Second,
		},
	}
}

// Request makes an HTTP request and returns the raw response body
func (c *HTTPClient) Request(ctx context.Context, method, endpoint string, headers map[string]string) ([]byte, error) {
	url := endpoint
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		url = c.BaseURL + endpoint
	}
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: res.StatusCode, Status: res.Status}
	}
	return body, nil
}

// Fetch downloads a CSV source. url may be absolute or relative to BaseURL.
func (c *HTTPClient) Fetch(ctx context.Context, url string) ([]byte, error) {
	return c.Request(ctx, http.MethodGet, url, map[string]string{"Accept": "text/csv"})
}
