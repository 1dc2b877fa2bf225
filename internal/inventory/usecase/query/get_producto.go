package query

import (
	"github.com/gianfig/TecnicasReal/internal/inventory/domain"
)

// GetProductoHandler handles single product retrieval
type GetProductoHandler struct {
	repo domain.ProductoRepository
}

// NewGetProductoHandler creates a new GetProductoHandler
func NewGetProductoHandler(repo domain.ProductoRepository) *GetProductoHandler {
	return &GetProductoHandler{repo: repo}
}

// Handle returns one active product by ID
func (h *GetProductoHandler) Handle(id uint) (*domain.Producto, error) {
	return h.repo.FindByID(id)
}
