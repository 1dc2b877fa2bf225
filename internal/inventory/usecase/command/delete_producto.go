package command

import (
	"github.com/gianfig/TecnicasReal/internal/inventory/domain"
)

// DeleteProductoHandler handles product deactivation. Products are never
// removed from the table: their movement history must stay readable.
type DeleteProductoHandler struct {
	repo domain.ProductoRepository
}

// NewDeleteProductoHandler creates a new DeleteProductoHandler
func NewDeleteProductoHandler(repo domain.ProductoRepository) *DeleteProductoHandler {
	return &DeleteProductoHandler{repo: repo}
}

// Handle marks a product inactive
func (h *DeleteProductoHandler) Handle(id uint) error {
	if _, err := h.repo.FindByID(id); err != nil {
		return err
	}
	return h.repo.Deactivate(id)
}
