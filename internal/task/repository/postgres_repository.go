package repository

import (
	"database/sql"
	"fmt"

	"github.com/gianfig/TecnicasReal/internal/task/domain"
)

// PostgresTaskRepository implements TaskRepository interface
type PostgresTaskRepository struct {
	db *sql.DB
}

// NewPostgresTaskRepository creates a new PostgreSQL task repository
func NewPostgresTaskRepository(db *sql.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{db: db}
}

// Create inserts a new task into the database
func (r *PostgresTaskRepository) Create(task *domain.Task) error {
	query := `
		INSERT INTO tasks (id, title, description, completed, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(
		query,
		task.ID,
		task.Title,
		task.Description,
		task.Completed,
		task.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// FindByID retrieves a task by ID
func (r *PostgresTaskRepository) FindByID(id string) (*domain.Task, error) {
	task := &domain.Task{}
	query := `
		SELECT id, title, description, completed, created_at
		FROM tasks
		WHERE id = $1
	`

	err := r.db.QueryRow(query, id).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Completed,
		&task.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// FindAll retrieves tasks matching the filter, newest first
func (r *PostgresTaskRepository) FindAll(filter domain.TaskFilter) ([]domain.Task, error) {
	query := `
		SELECT id, title, description, completed, created_at
		FROM tasks
	`
	switch filter {
	case domain.FilterCompleted:
		query += ` WHERE completed = TRUE`
	case domain.FilterPending:
		query += ` WHERE completed = FALSE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		task := domain.Task{}
		err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Completed,
			&task.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

// Update replaces the task's mutable fields. created_at never changes.
func (r *PostgresTaskRepository) Update(task *domain.Task) error {
	query := `
		UPDATE tasks
		SET title = $1, description = $2, completed = $3
		WHERE id = $4
	`

	result, err := r.db.Exec(query, task.Title, task.Description, task.Completed, task.ID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

// Delete removes a task and returns the deleted row
func (r *PostgresTaskRepository) Delete(id string) (*domain.Task, error) {
	task := &domain.Task{}
	query := `
		DELETE FROM tasks
		WHERE id = $1
		RETURNING id, title, description, completed, created_at
	`

	err := r.db.QueryRow(query, id).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Completed,
		&task.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}

	return task, nil
}

// InitSchema creates the tasks table if it doesn't exist
func (r *PostgresTaskRepository) InitSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS tasks (
			id VARCHAR(36) PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`

	_, err := r.db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
