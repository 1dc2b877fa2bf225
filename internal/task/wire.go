//go:build wireinject
// +build wireinject

package task

import (
	"database/sql"

	"github.com/google/wire"

	"github.com/gianfig/TecnicasReal/internal/task/delivery/http"
	"github.com/gianfig/TecnicasReal/internal/task/domain"
	"github.com/gianfig/TecnicasReal/internal/task/repository"
)

// ProvideTaskRepository provides the task repository
func ProvideTaskRepository(db *sql.DB) domain.TaskRepository {
	return repository.NewPostgresTaskRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideTaskRepository,
)

// InitializeHTTPHandler initializes the HTTP handler with all dependencies
func InitializeHTTPHandler(db *sql.DB) (*http.TaskHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewTaskHandler,
	)
	return nil, nil
}
