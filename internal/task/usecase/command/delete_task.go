package command

import (
	"github.com/gianfig/TecnicasReal/internal/task/domain"
)

// DeleteTaskHandler handles task deletion
type DeleteTaskHandler struct {
	repo domain.TaskRepository
}

// NewDeleteTaskHandler creates a new DeleteTaskHandler
func NewDeleteTaskHandler(repo domain.TaskRepository) *DeleteTaskHandler {
	return &DeleteTaskHandler{repo: repo}
}

// Handle deletes a task and returns the deleted row
func (h *DeleteTaskHandler) Handle(id string) (*domain.Task, error) {
	return h.repo.Delete(id)
}
