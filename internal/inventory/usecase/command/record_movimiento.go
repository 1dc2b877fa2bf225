package command

import (
	"context"
	"fmt"
	"time"

	"github.com/gianfig/TecnicasReal/internal/inventory/domain"
	"github.com/gianfig/TecnicasReal/kafka"
	"github.com/gianfig/TecnicasReal/pkg/logger"
)

// RecordMovimientoCommand represents a stock movement request
type RecordMovimientoCommand struct {
	ProductoID       uint   `json:"producto_id"`
	TipoMovimiento   string `json:"tipo_movimiento"`
	Cantidad         int    `json:"cantidad"`
	Motivo           string `json:"motivo"`
	NumeroReferencia string `json:"numero_referencia"`
}

// RecordMovimientoResult is the outcome of a recorded movement
type RecordMovimientoResult struct {
	Movimiento *domain.MovimientoStock `json:"movimiento"`
	Producto   *domain.Producto        `json:"producto"`
}

// MovementPublisher publishes movement events. May be nil when Kafka is
// not configured; publishing is best-effort and never fails the command.
type MovementPublisher interface {
	PublishStockMovementRecorded(ctx context.Context, event kafka.StockMovementRecordedEvent) error
}

// RecordMovimientoHandler handles the atomic record-and-apply of a
// stock movement through the ledger.
type RecordMovimientoHandler struct {
	ledger    domain.LedgerRepository
	publisher MovementPublisher
}

// NewRecordMovimientoHandler creates a new RecordMovimientoHandler
func NewRecordMovimientoHandler(ledger domain.LedgerRepository, publisher MovementPublisher) *RecordMovimientoHandler {
	return &RecordMovimientoHandler{ledger: ledger, publisher: publisher}
}

// Handle validates and records the movement. The ledger insert and the
// stock adjustment commit together or not at all.
func (h *RecordMovimientoHandler) Handle(ctx context.Context, cmd RecordMovimientoCommand) (*RecordMovimientoResult, error) {
	if cmd.ProductoID == 0 {
		return nil, fmt.Errorf("%w: producto_id is required", domain.ErrInvalidInput)
	}
	if cmd.TipoMovimiento != domain.MovimientoEntrada && cmd.TipoMovimiento != domain.MovimientoSalida {
		return nil, fmt.Errorf("%w: tipo_movimiento must be %s or %s",
			domain.ErrInvalidInput, domain.MovimientoEntrada, domain.MovimientoSalida)
	}
	if cmd.Cantidad <= 0 {
		return nil, fmt.Errorf("%w: cantidad must be positive", domain.ErrInvalidInput)
	}

	mov := &domain.MovimientoStock{
		ProductoID:       cmd.ProductoID,
		TipoMovimiento:   cmd.TipoMovimiento,
		Cantidad:         cmd.Cantidad,
		Motivo:           cmd.Motivo,
		NumeroReferencia: cmd.NumeroReferencia,
		FechaMovimiento:  time.Now(),
	}

	var producto *domain.Producto
	var err error
	if traced, ok := h.ledger.(domain.ContextLedgerRepository); ok {
		producto, err = traced.RecordMovimientoWithContext(ctx, mov)
	} else {
		producto, err = h.ledger.RecordMovimiento(mov)
	}
	if err != nil {
		return nil, err
	}

	h.publish(ctx, mov, producto)

	return &RecordMovimientoResult{Movimiento: mov, Producto: producto}, nil
}

func (h *RecordMovimientoHandler) publish(ctx context.Context, mov *domain.MovimientoStock, producto *domain.Producto) {
	if h.publisher == nil {
		return
	}

	event := kafka.StockMovementRecordedEvent{
		MovimientoID:    mov.ID,
		ProductoID:      producto.ID,
		ProductoNombre:  producto.Nombre,
		TipoMovimiento:  mov.TipoMovimiento,
		Cantidad:        mov.Cantidad,
		StockResultante: producto.CantidadStock,
		StockMinimo:     producto.StockMinimo,
		Timestamp:       time.Now(),
	}

	if err := h.publisher.PublishStockMovementRecorded(ctx, event); err != nil {
		logger.Logger.Error().
			Err(err).
			Uint("movimiento_id", mov.ID).
			Msg("Failed to publish stock movement event")
	}
}
