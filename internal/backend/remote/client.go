// Package remote implements the service.Service interface against a running
// `todo serve` instance.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"todo/internal/http/dto"
	"todo/internal/service"
	"todo/internal/store"
	"todo/internal/task"
)

const (
	// APITimeout is the default timeout for API calls. It covers the server's
	// simulated latency.
	APITimeout = 5 * time.Second
)

var (
	// ErrUnauthorized is returned when the server rejects the token.
	ErrUnauthorized = errors.New("unauthorized (check remote.token)")

	// ErrUnavailable is returned when the server cannot accept the operation.
	ErrUnavailable = errors.New("server unavailable")
)

// Client implements service.Service over the HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds each API call. It must exceed the server's slowest
// simulated operation. Non-positive values keep APITimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

var _ service.Service = (*Client)(nil)

// New creates a client for baseURL. A non-empty token is sent as a bearer
// token on every request.
func New(ctx context.Context, baseURL, token string, opts ...Option) (*Client, error) {
	httpClient := &http.Client{}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
		httpClient = oauth2.NewClient(ctx, ts)
	}
	return NewWithHTTPClient(baseURL, httpClient, opts...)
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid remote url: %q", baseURL)
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		timeout:    APITimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListTasks returns every task in list order.
func (c *Client) ListTasks(ctx context.Context) ([]task.Task, error) {
	var resp dto.ListResponse
	if err := c.do(ctx, http.MethodGet, "/tasks?filter=all", nil, &resp); err != nil {
		return nil, err
	}
	tasks := make([]task.Task, 0, len(resp.Tasks))
	for _, t := range resp.Tasks {
		tasks = append(tasks, t.Task())
	}
	return tasks, nil
}

// GetTask returns the task with id.
func (c *Client) GetTask(ctx context.Context, id task.ID) (task.Task, error) {
	var resp dto.TaskResponse
	if err := c.do(ctx, http.MethodGet, taskPath(id), nil, &resp); err != nil {
		return task.Task{}, err
	}
	return resp.Task(), nil
}

// CreateTask appends a new task.
func (c *Client) CreateTask(ctx context.Context, description string) (task.Task, error) {
	var resp dto.TaskResponse
	req := dto.CreateTaskRequest{Description: description}
	if err := c.do(ctx, http.MethodPost, "/tasks", req, &resp); err != nil {
		return task.Task{}, err
	}
	return resp.Task(), nil
}

// EditTask replaces a task's description.
func (c *Client) EditTask(ctx context.Context, id task.ID, description string) (task.Task, error) {
	var resp dto.TaskResponse
	req := dto.EditTaskRequest{Description: description}
	if err := c.do(ctx, http.MethodPatch, taskPath(id), req, &resp); err != nil {
		return task.Task{}, err
	}
	return resp.Task(), nil
}

// ToggleTask flips a task's completed flag.
func (c *Client) ToggleTask(ctx context.Context, id task.ID) (task.Task, error) {
	var resp dto.TaskResponse
	if err := c.do(ctx, http.MethodPost, taskPath(id)+"/toggle", nil, &resp); err != nil {
		return task.Task{}, err
	}
	return resp.Task(), nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id task.ID) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil)
}

// ClearCompleted removes every completed task.
func (c *Client) ClearCompleted(ctx context.Context) (int, error) {
	var resp dto.ClearCompletedResponse
	if err := c.do(ctx, http.MethodPost, "/tasks/clear-completed", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Removed, nil
}

func taskPath(id task.ID) string {
	return "/tasks/" + url.PathEscape(string(id))
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return wrapError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return statusError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// statusError maps an error response back to the sentinel the server
// started from.
func statusError(resp *http.Response) error {
	var e dto.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&e)
	if e.Error == "" {
		e.Error = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		if e.Field == string(task.FieldInput) || e.Field == string(task.FieldEdit) {
			return &task.ValidationError{Field: task.Field(e.Field), Message: e.Error}
		}
		return fmt.Errorf("bad request: %s", e.Error)
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return service.ErrNotFound
	case http.StatusConflict:
		return store.ErrBusy
	case http.StatusServiceUnavailable:
		return fmt.Errorf("%w: %s", ErrUnavailable, e.Error)
	default:
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, e.Error)
	}
}

// wrapError wraps transport errors with user-friendly messages.
func wrapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", err)
	}
	return err
}
