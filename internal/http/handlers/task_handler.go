package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"todo/internal/executor"
	"todo/internal/http/dto"
	"todo/internal/service"
	"todo/internal/store"
	"todo/internal/task"
	"todo/internal/view"
)

type TaskHandler struct {
	taskService service.Service
	log         *zap.Logger
}

func New(taskService service.Service, log *zap.Logger) *TaskHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &TaskHandler{taskService: taskService, log: log}
}

// GET /healthz
func (h *TaskHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// GET /tasks?filter=all|active|completed
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := task.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		writeFieldError(w, http.StatusBadRequest, err.Error(), "filter")
		return
	}

	tasks, err := h.taskService.ListTasks(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(view.Project(tasks, filter)))
}

// POST /tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.taskService.CreateTask(r.Context(), req.Description)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.NewTaskResponse(created))
}

// GET /tasks/{id}
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.taskService.GetTask(r.Context(), task.ID(r.PathValue("id")))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewTaskResponse(t))
}

// PATCH /tasks/{id}
func (h *TaskHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var req dto.EditTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.taskService.EditTask(r.Context(), task.ID(r.PathValue("id")), req.Description)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewTaskResponse(t))
}

// POST /tasks/{id}/toggle
func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	t, err := h.taskService.ToggleTask(r.Context(), task.ID(r.PathValue("id")))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewTaskResponse(t))
}

// DELETE /tasks/{id}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.taskService.DeleteTask(r.Context(), task.ID(r.PathValue("id"))); err != nil {
		h.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// POST /tasks/clear-completed
func (h *TaskHandler) ClearCompleted(w http.ResponseWriter, r *http.Request) {
	n, err := h.taskService.ClearCompleted(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ClearCompletedResponse{Removed: n})
}

func (h *TaskHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *task.ValidationError
	switch {
	case errors.As(err, &verr):
		writeFieldError(w, http.StatusBadRequest, verr.Message, string(verr.Field))
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, service.ErrNotFound.Error())
	case errors.Is(err, store.ErrBusy):
		writeError(w, http.StatusConflict, store.ErrBusy.Error())
	case errors.Is(err, executor.ErrQueueFull), errors.Is(err, executor.ErrClosed):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		h.log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
