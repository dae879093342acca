// ABOUTME: HTTP client for the todos REST API.
// ABOUTME: Used by the TUI; logs each request with a short id, status, and duration.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNoBaseURL is returned by New when no API base URL was provided.
// The client never falls back to a guessed host: a silent default would send
// every request to the wrong place and 404.
var ErrNoBaseURL = errors.New("API base URL is not set: pass -server or set TODOS_API_URL (e.g. http://localhost:8080)")

// Todo is the JSON shape of a todo on the wire.
type Todo struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Done      bool   `json:"done"`
	CreatedAt string `json:"created_at"`
}

// UpdateFields carries a partial update. Nil fields are omitted from the
// PATCH body and left untouched on the server.
type UpdateFields struct {
	Text *string `json:"text,omitempty"`
	Done *bool   `json:"done,omitempty"`
}

// APIError is a non-2xx response decoded from the server's error body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// Client talks to the todos REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a client for the API at baseURL. Trailing slashes are trimmed.
// Returns ErrNoBaseURL when baseURL is empty.
func New(baseURL string, logger *slog.Logger) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, ErrNoBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", baseURL, err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger.With("component", "client"),
	}, nil
}

// List fetches all todos, newest first.
func (c *Client) List(ctx context.Context) ([]Todo, error) {
	var todos []Todo
	if err := c.do(ctx, http.MethodGet, "/todos", nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// Create adds a new todo with the given text and returns the stored row.
func (c *Client) Create(ctx context.Context, text string) (*Todo, error) {
	var created Todo
	body := map[string]string{"text": text}
	if err := c.do(ctx, http.MethodPost, "/todos", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update applies a partial update to the todo with the given id.
func (c *Client) Update(ctx context.Context, id string, fields UpdateFields) (*Todo, error) {
	var updated Todo
	if err := c.do(ctx, http.MethodPatch, "/todos/"+id, fields, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the todo with the given id. Succeeds for already-gone ids.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/todos/"+id, nil, nil)
}

// ClearCompleted removes all completed todos.
func (c *Client) ClearCompleted(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/todos?completed=true", nil, nil)
}

// do performs a single API request, logging it with a short request id and
// the observed duration. A nil out skips body decoding (204 responses).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	reqURL := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	reqID := uuid.New().String()[:8]
	start := time.Now()
	c.logger.Debug("request start", "req_id", reqID, "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("request failed", "req_id", reqID, "method", method, "url", reqURL, "error", err)
		return fmt.Errorf("%s %s: %w", method, reqURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("request done",
		"req_id", reqID, "method", method, "url", reqURL,
		"status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// decodeError turns a non-2xx response into an *APIError, falling back to the
// HTTP status text when the body carries no error message.
func (c *Client) decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body["error"] != "" {
		apiErr.Message = body["error"]
	}
	return apiErr
}
