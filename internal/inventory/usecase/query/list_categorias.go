package query

import (
	"github.com/gianfig/TecnicasReal/internal/inventory/domain"
)

// ListCategoriasHandler handles category listing
type ListCategoriasHandler struct {
	repo domain.CategoriaRepository
}

// NewListCategoriasHandler creates a new ListCategoriasHandler
func NewListCategoriasHandler(repo domain.CategoriaRepository) *ListCategoriasHandler {
	return &ListCategoriasHandler{repo: repo}
}

// Handle returns all categories
func (h *ListCategoriasHandler) Handle() ([]domain.Categoria, error) {
	return h.repo.FindAll()
}
