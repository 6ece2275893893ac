package dto

import (
	"todo/internal/task"
	"todo/internal/view"
)

type CreateTaskRequest struct {
	Description string `json:"description"`
}

type EditTaskRequest struct {
	Description string `json:"description"`
}

type TaskResponse struct {
	ID          string `json:"id"`
	Number      int    `json:"number,omitempty"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	Status      string `json:"status"`
}

type ListResponse struct {
	Filter       string         `json:"filter"`
	Tasks        []TaskResponse `json:"tasks"`
	Counts       view.Counts    `json:"counts"`
	Summary      string         `json:"summary,omitempty"`
	EmptyMessage string         `json:"empty_message,omitempty"`
}

type ClearCompletedResponse struct {
	Removed int `json:"removed"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func NewTaskResponse(t task.Task) TaskResponse {
	return TaskResponse{
		ID:          string(t.ID),
		Description: t.Description,
		Completed:   t.Completed,
		Status:      t.Status(),
	}
}

func (r TaskResponse) Task() task.Task {
	return task.Task{ID: task.ID(r.ID), Description: r.Description, Completed: r.Completed}
}

func NewListResponse(p view.Projection) ListResponse {
	resp := ListResponse{
		Filter:       string(p.Filter),
		Tasks:        make([]TaskResponse, 0, len(p.Rows)),
		Counts:       p.Counts,
		Summary:      p.Summary,
		EmptyMessage: p.EmptyMessage,
	}
	for _, row := range p.Rows {
		tr := NewTaskResponse(row.Task)
		tr.Number = row.Number
		resp.Tasks = append(resp.Tasks, tr)
	}
	return resp
}
