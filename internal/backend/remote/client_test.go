package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	approuter "todo/internal/http"
	"todo/internal/http/handlers"
	"todo/internal/repository"
	"todo/internal/service"
	"todo/internal/store"
	"todo/internal/task"
)

func newServer(t *testing.T, token string, seed ...task.Task) *httptest.Server {
	t.Helper()
	sess, err := service.Open(context.Background(), repository.NewMemory(seed), nil, nil)
	require.NoError(t, err)
	srv := httptest.NewServer(approuter.New(handlers.New(sess, nil), token, nil))
	t.Cleanup(func() {
		srv.Close()
		_ = sess.Close()
	})
	return srv
}

func TestClient_RoundTrip(t *testing.T) {
	ctx := context.Background()
	srv := newServer(t, "")
	c, err := New(ctx, srv.URL+"/", "")
	require.NoError(t, err)

	created, err := c.CreateTask(ctx, " Buy milk ")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", created.Description)

	other, err := c.CreateTask(ctx, "Walk dog")
	require.NoError(t, err)

	got, err := c.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	edited, err := c.EditTask(ctx, created.ID, "Buy oat milk")
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", edited.Description)

	toggled, err := c.ToggleTask(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	tasks, err := c.ListTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []task.Task{toggled, other}, tasks)

	n, err := c.ClearCompleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, c.DeleteTask(ctx, other.ID))
	tasks, err = c.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestClient_ErrorMapping(t *testing.T) {
	ctx := context.Background()
	srv := newServer(t, "", task.Task{ID: "aaaa", Description: "A"})
	c, err := NewWithHTTPClient(srv.URL, srv.Client())
	require.NoError(t, err)

	_, err = c.CreateTask(ctx, "  ")
	var verr *task.ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, task.FieldInput, verr.Field)
	assert.Equal(t, task.MsgEmptyInput, verr.Message)
	assert.ErrorIs(t, err, task.ErrEmptyDescription)

	_, err = c.EditTask(ctx, "aaaa", "")
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, task.FieldEdit, verr.Field)

	_, err = c.GetTask(ctx, "missing")
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.NoError(t, c.DeleteTask(ctx, "missing"))
}

func TestClient_BearerToken(t *testing.T) {
	ctx := context.Background()
	srv := newServer(t, "s3cret")

	anon, err := New(ctx, srv.URL, "")
	require.NoError(t, err)
	_, err = anon.ListTasks(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)

	authed, err := New(ctx, srv.URL, "s3cret")
	require.NoError(t, err)
	_, err = authed.ListTasks(ctx)
	assert.NoError(t, err)
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		body   string
		want   error
	}{
		{http.StatusConflict, `{"error":"operation already in progress"}`, store.ErrBusy},
		{http.StatusServiceUnavailable, `{"error":"queue full"}`, ErrUnavailable},
		{http.StatusForbidden, ``, ErrUnauthorized},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			_, _ = w.Write([]byte(tt.body))
		}))
		c, err := NewWithHTTPClient(srv.URL, srv.Client())
		require.NoError(t, err)

		_, err = c.ClearCompleted(context.Background())
		assert.ErrorIs(t, err, tt.want, "status %d", tt.status)
		srv.Close()
	}
}

func TestNewWithHTTPClient_InvalidURL(t *testing.T) {
	_, err := NewWithHTTPClient("localhost:8080", http.DefaultClient)
	assert.Error(t, err)
}

func TestClient_Timeout(t *testing.T) {
	// Stands in for a server whose simulated latency outlasts the client.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(200 * time.Millisecond):
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"removed":0}`))
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	short, err := NewWithHTTPClient(srv.URL, srv.Client(), WithTimeout(20*time.Millisecond))
	require.NoError(t, err)
	_, err = short.ClearCompleted(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "request timed out")

	long, err := NewWithHTTPClient(srv.URL, srv.Client(), WithTimeout(2*time.Second))
	require.NoError(t, err)
	n, err := long.ClearCompleted(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestWithTimeout_NonPositiveKeepsDefault(t *testing.T) {
	c, err := NewWithHTTPClient("http://example.test", http.DefaultClient, WithTimeout(0))
	require.NoError(t, err)
	assert.Equal(t, APITimeout, c.timeout)
}
