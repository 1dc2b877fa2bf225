package command

import (
	"fmt"
	"strings"

	"github.com/gianfig/TecnicasReal/internal/task/domain"
)

// UpdateTaskCommand represents the data needed to update a task
type UpdateTaskCommand struct {
	ID          string  `json:"-"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// UpdateTaskHandler handles task updates
type UpdateTaskHandler struct {
	repo domain.TaskRepository
}

// NewUpdateTaskHandler creates a new UpdateTaskHandler
func NewUpdateTaskHandler(repo domain.TaskRepository) *UpdateTaskHandler {
	return &UpdateTaskHandler{repo: repo}
}

// Handle applies the provided fields to an existing task
func (h *UpdateTaskHandler) Handle(cmd UpdateTaskCommand) (*domain.Task, error) {
	task, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Title != nil {
		title := strings.TrimSpace(*cmd.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", domain.ErrInvalidInput)
		}
		task.Title = title
	}
	if cmd.Description != nil {
		task.Description = strings.TrimSpace(*cmd.Description)
	}
	if cmd.Completed != nil {
		task.Completed = *cmd.Completed
	}

	if err := h.repo.Update(task); err != nil {
		return nil, err
	}

	return task, nil
}
