package query

import (
	"github.com/gianfig/TecnicasReal/internal/task/domain"
)

// GetTaskHandler handles single task retrieval
type GetTaskHandler struct {
	repo domain.TaskRepository
}

// NewGetTaskHandler creates a new GetTaskHandler
func NewGetTaskHandler(repo domain.TaskRepository) *GetTaskHandler {
	return &GetTaskHandler{repo: repo}
}

// Handle returns one task by ID
func (h *GetTaskHandler) Handle(id string) (*domain.Task, error) {
	return h.repo.FindByID(id)
}
