// Package radarr provides a minimal client for the Radarr v3 API.
package radarr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const apiBase = "/api/v3"

const defaultTimeout = 10 * time.Second

// StatusError is returned for non-2xx API responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("radarr: unexpected status %d", e.Code)
	}
	return fmt.Sprintf("radarr: unexpected status %d: %s", e.Code, e.Body)
}

// Client is a Radarr v3 API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a new Radarr client. The API key is sent as the
// X-Api-Key header on every request.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, result any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiBase+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// Movies fetches the full movie library.
func (c *Client) Movies(ctx context.Context) ([]Movie, error) {
	var movies []Movie
	if err := c.do(ctx, http.MethodGet, "/movie", nil, &movies); err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return movies, nil
}

// UpdateMoviePath updates a movie's folderName and path fields to
// newPath, sending the complete record back as the API requires.
func (c *Client) UpdateMoviePath(ctx context.Context, m *Movie, newPath string) error {
	body, err := m.updateBody(newPath)
	if err != nil {
		return fmt.Errorf("update movie %d: %w", m.ID, err)
	}
	path := fmt.Sprintf("/movie/%d", m.ID)
	if err := c.do(ctx, http.MethodPut, path, body, nil); err != nil {
		return fmt.Errorf("update movie %d: %w", m.ID, err)
	}
	return nil
}

// refreshCommand is the body for the RefreshMovie command.
type refreshCommand struct {
	Name     string  `json:"name"`
	MovieIDs []int64 `json:"movieIds"`
}

// RefreshMovie triggers an asynchronous rescan of one movie. Radarr runs
// the command in the background; this call does not wait for completion.
func (c *Client) RefreshMovie(ctx context.Context, id int64) error {
	body, err := json.Marshal(refreshCommand{Name: "RefreshMovie", MovieIDs: []int64{id}})
	if err != nil {
		return fmt.Errorf("refresh movie %d: %w", id, err)
	}
	if err := c.do(ctx, http.MethodPost, "/command", body, nil); err != nil {
		return fmt.Errorf("refresh movie %d: %w", id, err)
	}
	return nil
}

// SystemStatus fetches the server's status, used as a connectivity check.
func (c *Client) SystemStatus(ctx context.Context) (*SystemStatus, error) {
	var status SystemStatus
	if err := c.do(ctx, http.MethodGet, "/system/status", nil, &status); err != nil {
		return nil, fmt.Errorf("system status: %w", err)
	}
	return &status, nil
}
