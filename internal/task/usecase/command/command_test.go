package command

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gianfig/TecnicasReal/internal/task/domain"
)

// mockTaskRepository is an in-memory TaskRepository for tests
type mockTaskRepository struct {
	tasks map[string]*domain.Task
}

func newMockTaskRepository() *mockTaskRepository {
	return &mockTaskRepository{tasks: make(map[string]*domain.Task)}
}

func (m *mockTaskRepository) Create(task *domain.Task) error {
	m.tasks[task.ID] = task
	return nil
}

func (m *mockTaskRepository) FindByID(id string) (*domain.Task, error) {
	if task, ok := m.tasks[id]; ok {
		copied := *task
		return &copied, nil
	}
	return nil, domain.ErrTaskNotFound
}

func (m *mockTaskRepository) FindAll(filter domain.TaskFilter) ([]domain.Task, error) {
	out := []domain.Task{}
	for _, task := range m.tasks {
		switch filter {
		case domain.FilterCompleted:
			if !task.Completed {
				continue
			}
		case domain.FilterPending:
			if task.Completed {
				continue
			}
		}
		out = append(out, *task)
	}
	return out, nil
}

func (m *mockTaskRepository) Update(task *domain.Task) error {
	stored, ok := m.tasks[task.ID]
	if !ok {
		return domain.ErrTaskNotFound
	}
	// created_at is immutable in the real repository
	task.CreatedAt = stored.CreatedAt
	m.tasks[task.ID] = task
	return nil
}

func (m *mockTaskRepository) Delete(id string) (*domain.Task, error) {
	task, ok := m.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return task, nil
}

func TestCreateTask(t *testing.T) {
	repo := newMockTaskRepository()
	handler := NewCreateTaskHandler(repo)

	task, err := handler.Handle(CreateTaskCommand{Title: "  Comprar clavos ", Description: "ferretería"})
	require.NoError(t, err)

	assert.Equal(t, "Comprar clavos", task.Title)
	assert.False(t, task.Completed)
	assert.False(t, task.CreatedAt.IsZero())

	// ID is a valid UUID
	_, err = uuid.Parse(task.ID)
	assert.NoError(t, err)
}

func TestCreateTaskRequiresTitle(t *testing.T) {
	handler := NewCreateTaskHandler(newMockTaskRepository())

	_, err := handler.Handle(CreateTaskCommand{Title: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateTaskAssignsUniqueIDs(t *testing.T) {
	handler := NewCreateTaskHandler(newMockTaskRepository())

	t1, err := handler.Handle(CreateTaskCommand{Title: "uno"})
	require.NoError(t, err)
	t2, err := handler.Handle(CreateTaskCommand{Title: "dos"})
	require.NoError(t, err)

	assert.NotEqual(t, t1.ID, t2.ID)
}

func TestUpdateTaskPreservesCreatedAt(t *testing.T) {
	repo := newMockTaskRepository()
	created, err := NewCreateTaskHandler(repo).Handle(CreateTaskCommand{Title: "original"})
	require.NoError(t, err)
	originalCreatedAt := created.CreatedAt

	time.Sleep(time.Millisecond)

	completed := true
	title := "renombrada"
	updated, err := NewUpdateTaskHandler(repo).Handle(UpdateTaskCommand{
		ID:        created.ID,
		Title:     &title,
		Completed: &completed,
	})
	require.NoError(t, err)

	assert.Equal(t, "renombrada", updated.Title)
	assert.True(t, updated.Completed)
	assert.Equal(t, originalCreatedAt, updated.CreatedAt)
}

func TestUpdateTaskNotFound(t *testing.T) {
	handler := NewUpdateTaskHandler(newMockTaskRepository())

	title := "x"
	_, err := handler.Handle(UpdateTaskCommand{ID: uuid.NewString(), Title: &title})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestDeleteTaskReturnsDeletedRow(t *testing.T) {
	repo := newMockTaskRepository()
	created, err := NewCreateTaskHandler(repo).Handle(CreateTaskCommand{Title: "efímera"})
	require.NoError(t, err)

	deleted, err := NewDeleteTaskHandler(repo).Handle(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Equal(t, "efímera", deleted.Title)

	_, err = repo.FindByID(created.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}
