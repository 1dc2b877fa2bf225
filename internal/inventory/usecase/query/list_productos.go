package query

import (
	"github.com/gianfig/TecnicasReal/internal/inventory/domain"
)

// ListProductosHandler handles product listing
type ListProductosHandler struct {
	repo domain.ProductoRepository
}

// NewListProductosHandler creates a new ListProductosHandler
func NewListProductosHandler(repo domain.ProductoRepository) *ListProductosHandler {
	return &ListProductosHandler{repo: repo}
}

// Handle returns all active products with category and supplier names
func (h *ListProductosHandler) Handle() ([]domain.Producto, error) {
	return h.repo.FindAll()
}
