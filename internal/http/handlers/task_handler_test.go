package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	approuter "todo/internal/http"
	"todo/internal/http/dto"
	"todo/internal/http/handlers"
	"todo/internal/repository"
	"todo/internal/service"
	"todo/internal/store"
	"todo/internal/task"
	"todo/internal/testutil"
)

func newApp(t *testing.T, token string, seed ...task.Task) (http.Handler, *service.Session) {
	t.Helper()

	sess, err := service.Open(context.Background(), repository.NewMemory(seed), nil, nil)
	if err != nil {
		t.Fatalf("service.Open err=%v", err)
	}
	t.Cleanup(func() { _ = sess.Close() })

	h := handlers.New(sess, nil)
	return approuter.New(h, token, nil), sess
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body err=%v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode err=%v body=%s", err, rr.Body.String())
	}
	return out
}

func TestHealthz(t *testing.T) {
	app, _ := newApp(t, "secret")

	rr := doJSON(t, app, http.MethodGet, "/healthz", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", rr.Code, http.StatusOK)
	}
	if out := decode[dto.HealthResponse](t, rr); out.Status != "ok" {
		t.Fatalf("status=%q, want ok", out.Status)
	}
}

func TestPOST_Tasks_Created(t *testing.T) {
	app, _ := newApp(t, "")

	rr := doJSON(t, app, http.MethodPost, "/tasks", dto.CreateTaskRequest{Description: "  Buy milk "})
	if rr.Code != http.StatusCreated {
		t.Fatalf("status=%d, want %d body=%s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	out := decode[dto.TaskResponse](t, rr)
	if out.ID == "" {
		t.Fatal("id is empty")
	}
	if out.Description != "Buy milk" {
		t.Fatalf("description=%q, want %q", out.Description, "Buy milk")
	}
	if out.Completed || out.Status != "active" {
		t.Fatalf("completed=%v status=%q, want active", out.Completed, out.Status)
	}
}

func TestPOST_Tasks_Empty_400(t *testing.T) {
	app, _ := newApp(t, "")

	rr := doJSON(t, app, http.MethodPost, "/tasks", dto.CreateTaskRequest{Description: "   "})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want %d", rr.Code, http.StatusBadRequest)
	}
	out := decode[dto.ErrorResponse](t, rr)
	if out.Error != task.MsgEmptyInput || out.Field != "input" {
		t.Fatalf("got %+v", out)
	}
}

func TestPOST_Tasks_InvalidJSON_400(t *testing.T) {
	app, _ := newApp(t, "")

	req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewBufferString("{bad json}"))
	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestGET_Tasks_Filter(t *testing.T) {
	app, _ := newApp(t, "",
		task.Task{ID: "aaaa", Description: "A"},
		task.Task{ID: "bbbb", Description: "B", Completed: true},
	)

	rr := doJSON(t, app, http.MethodGet, "/tasks?filter=completed", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", rr.Code, http.StatusOK)
	}
	out := decode[dto.ListResponse](t, rr)
	if len(out.Tasks) != 1 || out.Tasks[0].ID != "bbbb" || out.Tasks[0].Number != 2 {
		t.Fatalf("tasks=%+v", out.Tasks)
	}
	if out.Counts.Total != 2 || out.Counts.Active != 1 || out.Counts.Completed != 1 {
		t.Fatalf("counts=%+v", out.Counts)
	}
	if out.Summary != "1 completed task shown" {
		t.Fatalf("summary=%q", out.Summary)
	}

	rr = doJSON(t, app, http.MethodGet, "/tasks?filter=bogus", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestGET_Tasks_EmptyMessage(t *testing.T) {
	app, _ := newApp(t, "")

	rr := doJSON(t, app, http.MethodGet, "/tasks?filter=active", nil)
	out := decode[dto.ListResponse](t, rr)
	if out.Tasks == nil || len(out.Tasks) != 0 {
		t.Fatalf("tasks=%v, want empty array", out.Tasks)
	}
	if out.EmptyMessage != "No tasks to show for this filter." {
		t.Fatalf("empty_message=%q", out.EmptyMessage)
	}
}

func TestTaskLifecycle(t *testing.T) {
	app, sess := newApp(t, "", task.Task{ID: "aaaa", Description: "A"})

	rr := doJSON(t, app, http.MethodGet, "/tasks/aaaa", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("get status=%d", rr.Code)
	}

	rr = doJSON(t, app, http.MethodPatch, "/tasks/aaaa", dto.EditTaskRequest{Description: ""})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("empty edit status=%d, want 400", rr.Code)
	}
	if out := decode[dto.ErrorResponse](t, rr); out.Field != "edit" || out.Error != task.MsgEmptyEdit {
		t.Fatalf("got %+v", out)
	}

	rr = doJSON(t, app, http.MethodPatch, "/tasks/aaaa", dto.EditTaskRequest{Description: "Apples"})
	if rr.Code != http.StatusOK {
		t.Fatalf("edit status=%d", rr.Code)
	}
	if out := decode[dto.TaskResponse](t, rr); out.Description != "Apples" {
		t.Fatalf("description=%q", out.Description)
	}

	rr = doJSON(t, app, http.MethodPost, "/tasks/aaaa/toggle", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("toggle status=%d", rr.Code)
	}
	if out := decode[dto.TaskResponse](t, rr); !out.Completed {
		t.Fatal("expected completed after toggle")
	}

	rr = doJSON(t, app, http.MethodPost, "/tasks/clear-completed", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("clear status=%d", rr.Code)
	}
	if out := decode[dto.ClearCompletedResponse](t, rr); out.Removed != 1 {
		t.Fatalf("removed=%d, want 1", out.Removed)
	}

	tasks, _ := sess.ListTasks(context.Background())
	if len(tasks) != 0 {
		t.Fatalf("tasks=%v, want none", tasks)
	}
}

func TestDelete(t *testing.T) {
	app, _ := newApp(t, "", task.Task{ID: "aaaa", Description: "A"})

	rr := doJSON(t, app, http.MethodDelete, "/tasks/aaaa", nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status=%d, want %d", rr.Code, http.StatusNoContent)
	}

	// Deleting an id that is already gone is a no-op.
	rr = doJSON(t, app, http.MethodDelete, "/tasks/aaaa", nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status=%d, want %d", rr.Code, http.StatusNoContent)
	}
}

func TestNotFound_404(t *testing.T) {
	app, _ := newApp(t, "")

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/tasks/nope"},
		{http.MethodPatch, "/tasks/nope"},
		{http.MethodPost, "/tasks/nope/toggle"},
	} {
		rr := doJSON(t, app, tc.method, tc.path, dto.EditTaskRequest{Description: "x"})
		if rr.Code != http.StatusNotFound {
			t.Errorf("%s %s status=%d, want %d", tc.method, tc.path, rr.Code, http.StatusNotFound)
		}
	}
}

func TestBackendErrors(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListTasksErr = testutil.ErrBackend
	svc.CreateTaskErr = store.ErrBusy
	app := approuter.New(handlers.New(svc, nil), "", nil)

	rr := doJSON(t, app, http.MethodGet, "/tasks", nil)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d, want %d", rr.Code, http.StatusInternalServerError)
	}

	rr = doJSON(t, app, http.MethodPost, "/tasks", dto.CreateTaskRequest{Description: "x"})
	if rr.Code != http.StatusConflict {
		t.Fatalf("status=%d, want %d", rr.Code, http.StatusConflict)
	}
}

func TestBearerToken(t *testing.T) {
	app, _ := newApp(t, "secret")

	rr := doJSON(t, app, http.MethodGet, "/tasks", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want %d", rr.Code, http.StatusUnauthorized)
	}

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rr = httptest.NewRecorder()
	app.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want %d", rr.Code, http.StatusUnauthorized)
	}

	req = httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rr = httptest.NewRecorder()
	app.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", rr.Code, http.StatusOK)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	app, _ := newApp(t, "")

	rr := doJSON(t, app, http.MethodPut, "/tasks", nil)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status=%d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
}
