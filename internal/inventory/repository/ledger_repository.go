package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/gianfig/TecnicasReal/internal/inventory/domain"
)

// GormLedgerRepository implements LedgerRepository using GORM. All writes go
// through a single database transaction so the movement row and the stock
// adjustment commit together or not at all.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GORM ledger repository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// RecordMovimiento appends the ledger entry and adjusts the product's stock
// atomically. The adjustment is a relative UPDATE executed by the database
// (cantidad_stock = cantidad_stock ± n), never a read-modify-write in Go, so
// concurrent movements on the same product cannot lose updates. The
// resulting stock is allowed to go negative on SALIDA.
func (r *GormLedgerRepository) RecordMovimiento(mov *domain.MovimientoStock) (*domain.Producto, error) {
	// A ledger entry always carries its recording time.
	if mov.FechaMovimiento.IsZero() {
		mov.FechaMovimiento = time.Now()
	}

	var producto domain.Producto

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND activo = ?", mov.ProductoID, true).
			First(&producto).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrProductoNotFound
			}
			return fmt.Errorf("failed to find producto: %w", err)
		}

		if err := tx.Create(mov).Error; err != nil {
			return fmt.Errorf("failed to create movimiento: %w", err)
		}

		if err := tx.Model(&domain.Producto{}).
			Where("id = ?", mov.ProductoID).
			UpdateColumn("cantidad_stock", gorm.Expr("cantidad_stock + ?", mov.Signed())).
			Error; err != nil {
			return fmt.Errorf("failed to adjust stock: %w", err)
		}

		// Re-read inside the transaction so the caller sees the stock this
		// movement produced.
		if err := tx.First(&producto, mov.ProductoID).Error; err != nil {
			return fmt.Errorf("failed to reload producto: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	mov.ProductoNombre = producto.Nombre
	return &producto, nil
}

// FindMovimientos lists ledger entries newest first, optionally filtered by
// product. productoID 0 means no filter.
func (r *GormLedgerRepository) FindMovimientos(productoID uint) ([]domain.MovimientoStock, error) {
	var movimientos []domain.MovimientoStock
	query := r.db.Table("movimientos_stock").
		Select("movimientos_stock.*, productos.nombre AS producto_nombre").
		Joins("LEFT JOIN productos ON movimientos_stock.producto_id = productos.id").
		Order("movimientos_stock.fecha_movimiento DESC")

	if productoID != 0 {
		query = query.Where("movimientos_stock.producto_id = ?", productoID)
	}

	if err := query.Find(&movimientos).Error; err != nil {
		return nil, fmt.Errorf("failed to find movimientos: %w", err)
	}
	return movimientos, nil
}
