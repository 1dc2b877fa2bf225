//go:build wireinject
// +build wireinject

package inventory

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/gianfig/TecnicasReal/internal/inventory/delivery/http"
	"github.com/gianfig/TecnicasReal/internal/inventory/domain"
	"github.com/gianfig/TecnicasReal/internal/inventory/repository"
	"github.com/gianfig/TecnicasReal/internal/inventory/usecase/command"
)

// ProvideCategoriaRepository provides the category repository
func ProvideCategoriaRepository(db *gorm.DB) domain.CategoriaRepository {
	return repository.NewGormCategoriaRepository(db)
}

// ProvideProveedorRepository provides the supplier repository
func ProvideProveedorRepository(db *gorm.DB) domain.ProveedorRepository {
	return repository.NewGormProveedorRepository(db)
}

// ProvideProductoRepository provides the product repository
func ProvideProductoRepository(db *gorm.DB) domain.ProductoRepository {
	return repository.NewGormProductoRepository(db)
}

// ProvideLedgerRepository provides the movement ledger repository.
// The tracing variant is used so ledger writes show up as spans.
func ProvideLedgerRepository(db *gorm.DB) domain.LedgerRepository {
	return repository.NewGormLedgerRepositoryWithTracing(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideCategoriaRepository,
	ProvideProveedorRepository,
	ProvideProductoRepository,
	ProvideLedgerRepository,
)

// InitializeHTTPHandler initializes the HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, publisher command.MovementPublisher) (*http.InventoryHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewInventoryHandler,
	)
	return nil, nil
}
