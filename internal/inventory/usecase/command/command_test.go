package command

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gianfig/TecnicasReal/internal/inventory/domain"
	"github.com/gianfig/TecnicasReal/kafka"
)

// fakeLedger applies movements to an in-memory product table exactly the
// way the real ledger does: append the entry, add the signed delta.
type fakeLedger struct {
	productos   map[uint]*domain.Producto
	movimientos []domain.MovimientoStock
	nextID      uint
}

func newFakeLedger(productos ...*domain.Producto) *fakeLedger {
	l := &fakeLedger{
		productos: make(map[uint]*domain.Producto),
		nextID:    1,
	}
	for _, p := range productos {
		l.productos[p.ID] = p
	}
	return l
}

func (l *fakeLedger) RecordMovimiento(mov *domain.MovimientoStock) (*domain.Producto, error) {
	producto, ok := l.productos[mov.ProductoID]
	if !ok || !producto.Activo {
		return nil, domain.ErrProductoNotFound
	}

	mov.ID = l.nextID
	l.nextID++
	mov.ProductoNombre = producto.Nombre
	l.movimientos = append(l.movimientos, *mov)

	producto.CantidadStock += mov.Signed()
	return producto, nil
}

func (l *fakeLedger) FindMovimientos(productoID uint) ([]domain.MovimientoStock, error) {
	if productoID == 0 {
		return l.movimientos, nil
	}
	out := []domain.MovimientoStock{}
	for _, m := range l.movimientos {
		if m.ProductoID == productoID {
			out = append(out, m)
		}
	}
	return out, nil
}

// capturePublisher records published events
type capturePublisher struct {
	events []kafka.StockMovementRecordedEvent
}

func (p *capturePublisher) PublishStockMovementRecorded(ctx context.Context, event kafka.StockMovementRecordedEvent) error {
	p.events = append(p.events, event)
	return nil
}

func testProducto() *domain.Producto {
	return &domain.Producto{
		ID:            1,
		Nombre:        "Taladro",
		CantidadStock: 10,
		StockMinimo:   5,
		CategoriaID:   1,
		Activo:        true,
	}
}

func TestRecordMovimientoEntrada(t *testing.T) {
	ledger := newFakeLedger(testProducto())
	handler := NewRecordMovimientoHandler(ledger, nil)

	result, err := handler.Handle(context.Background(), RecordMovimientoCommand{
		ProductoID:     1,
		TipoMovimiento: domain.MovimientoEntrada,
		Cantidad:       3,
		Motivo:         "compra",
	})
	require.NoError(t, err)

	assert.Equal(t, 13, result.Producto.CantidadStock)
	assert.Equal(t, domain.MovimientoEntrada, result.Movimiento.TipoMovimiento)
	assert.Equal(t, "Taladro", result.Movimiento.ProductoNombre)
	assert.NotZero(t, result.Movimiento.ID)
	assert.False(t, result.Movimiento.FechaMovimiento.IsZero())
	assert.WithinDuration(t, time.Now(), result.Movimiento.FechaMovimiento, time.Minute)
}

func TestRecordMovimientoSalida(t *testing.T) {
	ledger := newFakeLedger(testProducto())
	handler := NewRecordMovimientoHandler(ledger, nil)

	result, err := handler.Handle(context.Background(), RecordMovimientoCommand{
		ProductoID:     1,
		TipoMovimiento: domain.MovimientoSalida,
		Cantidad:       4,
	})
	require.NoError(t, err)

	assert.Equal(t, 6, result.Producto.CantidadStock)
}

// Stock may go negative: an oversized SALIDA records the discrepancy
// instead of being rejected.
func TestRecordMovimientoAllowsNegativeStock(t *testing.T) {
	ledger := newFakeLedger(testProducto())
	handler := NewRecordMovimientoHandler(ledger, nil)

	result, err := handler.Handle(context.Background(), RecordMovimientoCommand{
		ProductoID:     1,
		TipoMovimiento: domain.MovimientoSalida,
		Cantidad:       15,
	})
	require.NoError(t, err)

	assert.Equal(t, -5, result.Producto.CantidadStock)
}

func TestRecordMovimientoRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		cmd  RecordMovimientoCommand
	}{
		{"missing producto_id", RecordMovimientoCommand{TipoMovimiento: domain.MovimientoEntrada, Cantidad: 1}},
		{"zero cantidad", RecordMovimientoCommand{ProductoID: 1, TipoMovimiento: domain.MovimientoEntrada, Cantidad: 0}},
		{"negative cantidad", RecordMovimientoCommand{ProductoID: 1, TipoMovimiento: domain.MovimientoSalida, Cantidad: -2}},
		{"unknown tipo", RecordMovimientoCommand{ProductoID: 1, TipoMovimiento: "AJUSTE", Cantidad: 1}},
		{"lowercase tipo", RecordMovimientoCommand{ProductoID: 1, TipoMovimiento: "entrada", Cantidad: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := newFakeLedger(testProducto())
			handler := NewRecordMovimientoHandler(ledger, nil)

			_, err := handler.Handle(context.Background(), tt.cmd)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)

			// Nothing written on rejection
			assert.Empty(t, ledger.movimientos)
			assert.Equal(t, 10, ledger.productos[1].CantidadStock)
		})
	}
}

func TestRecordMovimientoUnknownProducto(t *testing.T) {
	ledger := newFakeLedger()
	handler := NewRecordMovimientoHandler(ledger, nil)

	_, err := handler.Handle(context.Background(), RecordMovimientoCommand{
		ProductoID:     99,
		TipoMovimiento: domain.MovimientoEntrada,
		Cantidad:       1,
	})
	assert.ErrorIs(t, err, domain.ErrProductoNotFound)
}

func TestRecordMovimientoInactiveProducto(t *testing.T) {
	producto := testProducto()
	producto.Activo = false
	ledger := newFakeLedger(producto)
	handler := NewRecordMovimientoHandler(ledger, nil)

	_, err := handler.Handle(context.Background(), RecordMovimientoCommand{
		ProductoID:     1,
		TipoMovimiento: domain.MovimientoEntrada,
		Cantidad:       1,
	})
	assert.ErrorIs(t, err, domain.ErrProductoNotFound)
}

func TestRecordMovimientoPublishesEvent(t *testing.T) {
	ledger := newFakeLedger(testProducto())
	publisher := &capturePublisher{}
	handler := NewRecordMovimientoHandler(ledger, publisher)

	_, err := handler.Handle(context.Background(), RecordMovimientoCommand{
		ProductoID:     1,
		TipoMovimiento: domain.MovimientoSalida,
		Cantidad:       7,
	})
	require.NoError(t, err)

	require.Len(t, publisher.events, 1)
	event := publisher.events[0]
	assert.Equal(t, uint(1), event.ProductoID)
	assert.Equal(t, domain.MovimientoSalida, event.TipoMovimiento)
	assert.Equal(t, 7, event.Cantidad)
	assert.Equal(t, 3, event.StockResultante)
	assert.Equal(t, 5, event.StockMinimo)
}

// Stock must always equal the signed sum of the product's movements.
func TestStockEqualsSignedSumOfMovements(t *testing.T) {
	ledger := newFakeLedger(testProducto())
	handler := NewRecordMovimientoHandler(ledger, nil)

	steps := []struct {
		tipo     string
		cantidad int
	}{
		{domain.MovimientoEntrada, 20},
		{domain.MovimientoSalida, 8},
		{domain.MovimientoSalida, 8},
		{domain.MovimientoEntrada, 1},
	}

	for _, s := range steps {
		_, err := handler.Handle(context.Background(), RecordMovimientoCommand{
			ProductoID:     1,
			TipoMovimiento: s.tipo,
			Cantidad:       s.cantidad,
		})
		require.NoError(t, err)
	}

	movs, err := ledger.FindMovimientos(1)
	require.NoError(t, err)

	sum := 0
	for i := range movs {
		sum += movs[i].Signed()
	}
	assert.Equal(t, 10+sum, ledger.productos[1].CantidadStock)
	assert.Equal(t, 15, ledger.productos[1].CantidadStock)
}

// fakeCategoriaRepo / fakeProveedorRepo / fakeProductoRepo back the CRUD
// command tests.
type fakeCategoriaRepo struct {
	categorias map[uint]*domain.Categoria
	nextID     uint
	deleted    []uint
}

func newFakeCategoriaRepo() *fakeCategoriaRepo {
	return &fakeCategoriaRepo{categorias: make(map[uint]*domain.Categoria), nextID: 1}
}

func (r *fakeCategoriaRepo) Create(c *domain.Categoria) error {
	c.ID = r.nextID
	r.nextID++
	r.categorias[c.ID] = c
	return nil
}

func (r *fakeCategoriaRepo) FindByID(id uint) (*domain.Categoria, error) {
	if c, ok := r.categorias[id]; ok {
		return c, nil
	}
	return nil, domain.ErrCategoriaNotFound
}

func (r *fakeCategoriaRepo) FindAll() ([]domain.Categoria, error) {
	out := []domain.Categoria{}
	for _, c := range r.categorias {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCategoriaRepo) Delete(id uint) error {
	delete(r.categorias, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeProductoRepo struct {
	productos map[uint]*domain.Producto
	nextID    uint
}

func newFakeProductoRepo(productos ...*domain.Producto) *fakeProductoRepo {
	r := &fakeProductoRepo{productos: make(map[uint]*domain.Producto), nextID: 1}
	for _, p := range productos {
		r.productos[p.ID] = p
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
	}
	return r
}

func (r *fakeProductoRepo) Create(p *domain.Producto) error {
	p.ID = r.nextID
	r.nextID++
	r.productos[p.ID] = p
	return nil
}

func (r *fakeProductoRepo) FindByID(id uint) (*domain.Producto, error) {
	if p, ok := r.productos[id]; ok && p.Activo {
		return p, nil
	}
	return nil, domain.ErrProductoNotFound
}

func (r *fakeProductoRepo) FindAll() ([]domain.Producto, error) {
	out := []domain.Producto{}
	for _, p := range r.productos {
		if p.Activo {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductoRepo) Update(p *domain.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *fakeProductoRepo) Deactivate(id uint) error {
	p, ok := r.productos[id]
	if !ok {
		return domain.ErrProductoNotFound
	}
	p.Activo = false
	return nil
}

func (r *fakeProductoRepo) CountActivosByCategoria(categoriaID uint) (int64, error) {
	var count int64
	for _, p := range r.productos {
		if p.Activo && p.CategoriaID == categoriaID {
			count++
		}
	}
	return count, nil
}

func (r *fakeProductoRepo) CountActivosByProveedor(proveedorID uint) (int64, error) {
	var count int64
	for _, p := range r.productos {
		if p.Activo && p.ProveedorID != nil && *p.ProveedorID == proveedorID {
			count++
		}
	}
	return count, nil
}

func (r *fakeProductoRepo) FindBajoStock() ([]domain.ProductoBajoStock, error) {
	out := []domain.ProductoBajoStock{}
	for _, p := range r.productos {
		if p.Activo && p.CantidadStock <= p.StockMinimo {
			out = append(out, domain.ProductoBajoStock{
				ID:            p.ID,
				Nombre:        p.Nombre,
				CodigoSKU:     p.CodigoSKU,
				CantidadStock: p.CantidadStock,
				StockMinimo:   p.StockMinimo,
				Diferencia:    p.CantidadStock - p.StockMinimo,
			})
		}
	}
	return out, nil
}

func TestCreateCategoria(t *testing.T) {
	repo := newFakeCategoriaRepo()
	handler := NewCreateCategoriaHandler(repo)

	categoria, err := handler.Handle(CreateCategoriaCommand{Nombre: "  Herramientas ", Descripcion: "Taladros y más"})
	require.NoError(t, err)

	assert.NotZero(t, categoria.ID)
	assert.Equal(t, "Herramientas", categoria.Nombre)
	assert.False(t, categoria.FechaCreacion.IsZero())
}

func TestCreateCategoriaRequiresNombre(t *testing.T) {
	handler := NewCreateCategoriaHandler(newFakeCategoriaRepo())

	_, err := handler.Handle(CreateCategoriaCommand{Nombre: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteCategoriaBlockedWhenInUse(t *testing.T) {
	categorias := newFakeCategoriaRepo()
	categoria, err := NewCreateCategoriaHandler(categorias).Handle(CreateCategoriaCommand{Nombre: "Herramientas"})
	require.NoError(t, err)

	producto := testProducto()
	producto.CategoriaID = categoria.ID
	productos := newFakeProductoRepo(producto)

	handler := NewDeleteCategoriaHandler(categorias, productos)
	err = handler.Handle(categoria.ID)
	assert.ErrorIs(t, err, domain.ErrEnUso)
	assert.Empty(t, categorias.deleted)

	// Deactivating the product releases the category
	require.NoError(t, productos.Deactivate(producto.ID))
	require.NoError(t, handler.Handle(categoria.ID))
	assert.Equal(t, []uint{categoria.ID}, categorias.deleted)
}

func TestDeleteCategoriaNotFound(t *testing.T) {
	handler := NewDeleteCategoriaHandler(newFakeCategoriaRepo(), newFakeProductoRepo())

	err := handler.Handle(42)
	assert.ErrorIs(t, err, domain.ErrCategoriaNotFound)
}

func TestCreateProducto(t *testing.T) {
	categorias := newFakeCategoriaRepo()
	categoria, err := NewCreateCategoriaHandler(categorias).Handle(CreateCategoriaCommand{Nombre: "Herramientas"})
	require.NoError(t, err)

	productos := newFakeProductoRepo()
	handler := NewCreateProductoHandler(productos, categorias, fakeProveedorRepo{})

	producto, err := handler.Handle(CreateProductoCommand{
		Nombre:        "Taladro",
		Precio:        129.90,
		CantidadStock: 10,
		CategoriaID:   categoria.ID,
	})
	require.NoError(t, err)

	assert.NotZero(t, producto.ID)
	assert.True(t, producto.Activo)
	assert.Equal(t, domain.DefaultStockMinimo, producto.StockMinimo)
	assert.False(t, producto.FechaCreacion.IsZero())
}

func TestCreateProductoValidation(t *testing.T) {
	categorias := newFakeCategoriaRepo()
	categoria, err := NewCreateCategoriaHandler(categorias).Handle(CreateCategoriaCommand{Nombre: "Herramientas"})
	require.NoError(t, err)

	handler := NewCreateProductoHandler(newFakeProductoRepo(), categorias, fakeProveedorRepo{})

	_, err = handler.Handle(CreateProductoCommand{Precio: 1, CategoriaID: categoria.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "missing nombre")

	_, err = handler.Handle(CreateProductoCommand{Nombre: "X", Precio: -1, CategoriaID: categoria.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "negative precio")

	_, err = handler.Handle(CreateProductoCommand{Nombre: "X", Precio: 1, CategoriaID: 999})
	assert.ErrorIs(t, err, domain.ErrCategoriaNotFound, "unknown categoria")
}

func TestUpdateProductoCannotTouchStock(t *testing.T) {
	categorias := newFakeCategoriaRepo()
	categoria, err := NewCreateCategoriaHandler(categorias).Handle(CreateCategoriaCommand{Nombre: "Herramientas"})
	require.NoError(t, err)

	producto := testProducto()
	producto.CategoriaID = categoria.ID
	productos := newFakeProductoRepo(producto)

	handler := NewUpdateProductoHandler(productos, categorias, fakeProveedorRepo{})

	nuevoPrecio := 99.50
	updated, err := handler.Handle(UpdateProductoCommand{ID: producto.ID, Precio: &nuevoPrecio})
	require.NoError(t, err)

	assert.Equal(t, 99.50, updated.Precio)
	// Stock unchanged: only the ledger moves it
	assert.Equal(t, 10, updated.CantidadStock)
	require.NotNil(t, updated.FechaActualizacion)
	assert.False(t, updated.FechaActualizacion.IsZero())
}

func TestDeleteProductoDeactivates(t *testing.T) {
	producto := testProducto()
	productos := newFakeProductoRepo(producto)
	handler := NewDeleteProductoHandler(productos)

	require.NoError(t, handler.Handle(producto.ID))

	_, err := productos.FindByID(producto.ID)
	assert.ErrorIs(t, err, domain.ErrProductoNotFound)
}

// fakeProveedorRepo is a stub for tests that never reach supplier lookups
type fakeProveedorRepo struct{}

func (fakeProveedorRepo) Create(*domain.Proveedor) error { return nil }
func (fakeProveedorRepo) FindByID(uint) (*domain.Proveedor, error) {
	return nil, domain.ErrProveedorNotFound
}
func (fakeProveedorRepo) FindAll() ([]domain.Proveedor, error) { return nil, nil }
func (fakeProveedorRepo) Delete(uint) error                    { return nil }
