package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gianfig/TecnicasReal/internal/task/domain"
)

// CreateTaskCommand represents the data needed to create a task
type CreateTaskCommand struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CreateTaskHandler handles task creation
type CreateTaskHandler struct {
	repo domain.TaskRepository
}

// NewCreateTaskHandler creates a new CreateTaskHandler
func NewCreateTaskHandler(repo domain.TaskRepository) *CreateTaskHandler {
	return &CreateTaskHandler{repo: repo}
}

// Handle executes the task creation. New tasks start pending with a
// freshly assigned UUID.
func (h *CreateTaskHandler) Handle(cmd CreateTaskCommand) (*domain.Task, error) {
	title := strings.TrimSpace(cmd.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}

	task := &domain.Task{
		ID:          uuid.New().String(),
		Title:       title,
		Description: strings.TrimSpace(cmd.Description),
		Completed:   false,
		CreatedAt:   time.Now().UTC(),
	}

	if err := h.repo.Create(task); err != nil {
		return nil, err
	}

	return task, nil
}
