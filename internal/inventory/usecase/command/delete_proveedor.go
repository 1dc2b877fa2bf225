package command

import (
	"fmt"

	"github.com/gianfig/TecnicasReal/internal/inventory/domain"
)

// DeleteProveedorHandler handles supplier deletion
type DeleteProveedorHandler struct {
	repo      domain.ProveedorRepository
	productos domain.ProductoRepository
}

// NewDeleteProveedorHandler creates a new DeleteProveedorHandler
func NewDeleteProveedorHandler(repo domain.ProveedorRepository, productos domain.ProductoRepository) *DeleteProveedorHandler {
	return &DeleteProveedorHandler{repo: repo, productos: productos}
}

// Handle deletes a supplier unless active products still reference it
func (h *DeleteProveedorHandler) Handle(id uint) error {
	if _, err := h.repo.FindByID(id); err != nil {
		return err
	}

	count, err := h.productos.CountActivosByProveedor(id)
	if err != nil {
		return fmt.Errorf("failed to count products for proveedor: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: proveedor has %d active products", domain.ErrEnUso, count)
	}

	return h.repo.Delete(id)
}
