package command

import (
	"fmt"

	"github.com/gianfig/TecnicasReal/internal/inventory/domain"
)

// DeleteCategoriaHandler handles category deletion
type DeleteCategoriaHandler struct {
	repo      domain.CategoriaRepository
	productos domain.ProductoRepository
}

// NewDeleteCategoriaHandler creates a new DeleteCategoriaHandler
func NewDeleteCategoriaHandler(repo domain.CategoriaRepository, productos domain.ProductoRepository) *DeleteCategoriaHandler {
	return &DeleteCategoriaHandler{repo: repo, productos: productos}
}

// Handle deletes a category unless active products still reference it
func (h *DeleteCategoriaHandler) Handle(id uint) error {
	if _, err := h.repo.FindByID(id); err != nil {
		return err
	}

	count, err := h.productos.CountActivosByCategoria(id)
	if err != nil {
		return fmt.Errorf("failed to count products for categoria: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: categoria has %d active products", domain.ErrEnUso, count)
	}

	return h.repo.Delete(id)
}
