package domain

import (
	"context"
	"time"
)

// Movement directions as they appear on the wire
const (
	MovimientoEntrada = "ENTRADA"
	MovimientoSalida  = "SALIDA"
)

// MovimientoStock is one immutable ledger entry. The ledger is append-only:
// no update or delete operation exists anywhere in this codebase.
type MovimientoStock struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	ProductoID       uint      `json:"producto_id" gorm:"not null;index"`
	TipoMovimiento   string    `json:"tipo_movimiento" gorm:"not null"`
	Cantidad         int       `json:"cantidad" gorm:"not null"`
	Motivo           string    `json:"motivo"`
	NumeroReferencia string    `json:"numero_referencia"`
	FechaMovimiento  time.Time `json:"fecha_movimiento"`

	// Joined display name, filled by list queries only.
	ProductoNombre string `json:"producto_nombre" gorm:"->;-:migration"`
}

// TableName overrides GORM's default pluralization
func (MovimientoStock) TableName() string {
	return "movimientos_stock"
}

// Signed returns the stock delta this entry applies: +Cantidad for ENTRADA,
// -Cantidad for SALIDA.
func (m *MovimientoStock) Signed() int {
	if m.TipoMovimiento == MovimientoSalida {
		return -m.Cantidad
	}
	return m.Cantidad
}

// LedgerRepository owns the one concurrency-sensitive contract of the
// service: recording a movement and adjusting the product's stock must be a
// single atomic transaction. A ledger entry without its stock change, or the
// reverse, is corruption.
type LedgerRepository interface {
	// RecordMovimiento appends the entry and applies its signed delta to the
	// product's CantidadStock in one transaction. Returns the product as it
	// stands after the adjustment. ErrProductoNotFound when the product is
	// absent or inactive.
	RecordMovimiento(mov *MovimientoStock) (*Producto, error)

	// FindMovimientos lists entries newest first. productoID 0 means all.
	FindMovimientos(productoID uint) ([]MovimientoStock, error)
}

// ContextLedgerRepository is implemented by ledger repositories that
// carry the request trace through the database call. Handlers upgrade
// to it when available and fall back to the plain methods otherwise.
type ContextLedgerRepository interface {
	RecordMovimientoWithContext(ctx context.Context, mov *MovimientoStock) (*Producto, error)
	FindMovimientosWithContext(ctx context.Context, productoID uint) ([]MovimientoStock, error)
}
