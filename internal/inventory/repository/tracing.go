package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/gianfig/TecnicasReal/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-ledger")

// GormLedgerRepositoryWithTracing wraps GormLedgerRepository with tracing
type GormLedgerRepositoryWithTracing struct {
	*GormLedgerRepository
}

// NewGormLedgerRepositoryWithTracing creates a ledger repository with tracing
func NewGormLedgerRepositoryWithTracing(db *gorm.DB) *GormLedgerRepositoryWithTracing {
	return &GormLedgerRepositoryWithTracing{
		GormLedgerRepository: NewGormLedgerRepository(db),
	}
}

// RecordMovimientoWithContext records a movement inside a span
func (r *GormLedgerRepositoryWithTracing) RecordMovimientoWithContext(ctx context.Context, mov *domain.MovimientoStock) (*domain.Producto, error) {
	_, span := tracer.Start(ctx, "ledger.RecordMovimiento",
		trace.WithAttributes(
			attribute.Int("movimiento.producto_id", int(mov.ProductoID)),
			attribute.String("movimiento.tipo", mov.TipoMovimiento),
			attribute.Int("movimiento.cantidad", mov.Cantidad),
		),
	)
	defer span.End()

	producto, err := r.GormLedgerRepository.RecordMovimiento(mov)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("movimiento.id", int(mov.ID)),
		attribute.Int("producto.cantidad_stock", producto.CantidadStock),
	)
	return producto, nil
}

// FindMovimientosWithContext lists movements inside a span
func (r *GormLedgerRepositoryWithTracing) FindMovimientosWithContext(ctx context.Context, productoID uint) ([]domain.MovimientoStock, error) {
	_, span := tracer.Start(ctx, "ledger.FindMovimientos",
		trace.WithAttributes(
			attribute.Int("movimiento.producto_id", int(productoID)),
		),
	)
	defer span.End()

	movimientos, err := r.GormLedgerRepository.FindMovimientos(productoID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(movimientos)))
	return movimientos, nil
}
