package query

import (
	"github.com/gianfig/TecnicasReal/internal/task/domain"
)

// ListTasksHandler handles task listing
type ListTasksHandler struct {
	repo domain.TaskRepository
}

// NewListTasksHandler creates a new ListTasksHandler
func NewListTasksHandler(repo domain.TaskRepository) *ListTasksHandler {
	return &ListTasksHandler{repo: repo}
}

// Handle returns tasks matching the filter, newest first
func (h *ListTasksHandler) Handle(filter domain.TaskFilter) ([]domain.Task, error) {
	return h.repo.FindAll(filter)
}
