package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gianfig/TecnicasReal/internal/inventory/domain"
)

// reportProductoRepo serves the low-stock report from a fixed product set,
// applying the same threshold and ordering as the real repository.
type reportProductoRepo struct {
	productos []domain.Producto
}

func (r *reportProductoRepo) Create(*domain.Producto) error { return nil }
func (r *reportProductoRepo) FindByID(uint) (*domain.Producto, error) {
	return nil, domain.ErrProductoNotFound
}
func (r *reportProductoRepo) FindAll() ([]domain.Producto, error)         { return r.productos, nil }
func (r *reportProductoRepo) Update(*domain.Producto) error               { return nil }
func (r *reportProductoRepo) Deactivate(uint) error                       { return nil }
func (r *reportProductoRepo) CountActivosByCategoria(uint) (int64, error) { return 0, nil }
func (r *reportProductoRepo) CountActivosByProveedor(uint) (int64, error) { return 0, nil }

func (r *reportProductoRepo) FindBajoStock() ([]domain.ProductoBajoStock, error) {
	rows := []domain.ProductoBajoStock{}
	for _, p := range r.productos {
		if p.Activo && p.CantidadStock <= p.StockMinimo {
			rows = append(rows, domain.ProductoBajoStock{
				ID:            p.ID,
				Nombre:        p.Nombre,
				CantidadStock: p.CantidadStock,
				StockMinimo:   p.StockMinimo,
				Diferencia:    p.CantidadStock - p.StockMinimo,
			})
		}
	}
	// most deficient first
	for i := 0; i < len(rows); i++ {
		for j := i + 1; j < len(rows); j++ {
			if rows[j].Diferencia < rows[i].Diferencia {
				rows[i], rows[j] = rows[j], rows[i]
			}
		}
	}
	return rows, nil
}

func TestReporteStockBajo(t *testing.T) {
	repo := &reportProductoRepo{productos: []domain.Producto{
		{ID: 1, Nombre: "Taladro", CantidadStock: 3, StockMinimo: 5, Activo: true},
		{ID: 2, Nombre: "Martillo", CantidadStock: 20, StockMinimo: 5, Activo: true},
		{ID: 3, Nombre: "Sierra", CantidadStock: 5, StockMinimo: 5, Activo: true},
		{ID: 4, Nombre: "Lija", CantidadStock: 0, StockMinimo: 10, Activo: true},
		{ID: 5, Nombre: "Clavos", CantidadStock: 1, StockMinimo: 5, Activo: false},
	}}
	handler := NewReporteStockBajoHandler(repo)

	reporte, err := handler.Handle()
	require.NoError(t, err)

	// Inactive products and healthy stock excluded; boundary (stock ==
	// minimum) included
	require.Len(t, reporte, 3)

	// Most deficient first
	assert.Equal(t, "Lija", reporte[0].Nombre)
	assert.Equal(t, -10, reporte[0].Diferencia)
	assert.Equal(t, "Taladro", reporte[1].Nombre)
	assert.Equal(t, -2, reporte[1].Diferencia)
	assert.Equal(t, "Sierra", reporte[2].Nombre)
	assert.Equal(t, 0, reporte[2].Diferencia)
}

func TestReporteStockBajoEmpty(t *testing.T) {
	handler := NewReporteStockBajoHandler(&reportProductoRepo{})

	reporte, err := handler.Handle()
	require.NoError(t, err)

	// A bare, non-null array even when nothing is low
	assert.NotNil(t, reporte)
	assert.Empty(t, reporte)
}
