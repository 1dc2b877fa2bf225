package query

import (
	"context"

	"github.com/gianfig/TecnicasReal/internal/inventory/domain"
)

// ListMovimientosHandler handles movement history listing
type ListMovimientosHandler struct {
	ledger domain.LedgerRepository
}

// NewListMovimientosHandler creates a new ListMovimientosHandler
func NewListMovimientosHandler(ledger domain.LedgerRepository) *ListMovimientosHandler {
	return &ListMovimientosHandler{ledger: ledger}
}

// Handle returns movements newest first; productoID 0 returns all of them
func (h *ListMovimientosHandler) Handle(ctx context.Context, productoID uint) ([]domain.MovimientoStock, error) {
	if traced, ok := h.ledger.(domain.ContextLedgerRepository); ok {
		return traced.FindMovimientosWithContext(ctx, productoID)
	}
	return h.ledger.FindMovimientos(productoID)
}
