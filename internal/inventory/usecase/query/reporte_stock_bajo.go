package query

import (
	"github.com/gianfig/TecnicasReal/internal/inventory/domain"
)

// ReporteStockBajoHandler builds the low-stock report
type ReporteStockBajoHandler struct {
	repo domain.ProductoRepository
}

// NewReporteStockBajoHandler creates a new ReporteStockBajoHandler
func NewReporteStockBajoHandler(repo domain.ProductoRepository) *ReporteStockBajoHandler {
	return &ReporteStockBajoHandler{repo: repo}
}

// Handle returns every active product at or below its minimum stock,
// most deficient first. The result marshals as a bare array, never null.
func (h *ReporteStockBajoHandler) Handle() ([]domain.ProductoBajoStock, error) {
	productos, err := h.repo.FindBajoStock()
	if err != nil {
		return nil, err
	}
	if productos == nil {
		productos = []domain.ProductoBajoStock{}
	}
	return productos, nil
}
