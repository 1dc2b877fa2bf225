package query

import (
	"github.com/gianfig/TecnicasReal/internal/inventory/domain"
)

// ListProveedoresHandler handles supplier listing
type ListProveedoresHandler struct {
	repo domain.ProveedorRepository
}

// NewListProveedoresHandler creates a new ListProveedoresHandler
func NewListProveedoresHandler(repo domain.ProveedorRepository) *ListProveedoresHandler {
	return &ListProveedoresHandler{repo: repo}
}

// Handle returns all suppliers
func (h *ListProveedoresHandler) Handle() ([]domain.Proveedor, error) {
	return h.repo.FindAll()
}
