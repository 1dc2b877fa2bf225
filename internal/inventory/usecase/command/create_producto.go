package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/gianfig/TecnicasReal/internal/inventory/domain"
)

// CreateProductoCommand represents the data needed to create a product
type CreateProductoCommand struct {
	Nombre        string  `json:"nombre"`
	Descripcion   string  `json:"descripcion"`
	CodigoSKU     string  `json:"codigo_sku"`
	Precio        float64 `json:"precio"`
	CantidadStock int     `json:"cantidad_stock"`
	StockMinimo   *int    `json:"stock_minimo"`
	CategoriaID   uint    `json:"categoria_id"`
	ProveedorID   *uint   `json:"proveedor_id"`
}

// CreateProductoHandler handles product creation
type CreateProductoHandler struct {
	repo        domain.ProductoRepository
	categorias  domain.CategoriaRepository
	proveedores domain.ProveedorRepository
}

// NewCreateProductoHandler creates a new CreateProductoHandler
func NewCreateProductoHandler(
	repo domain.ProductoRepository,
	categorias domain.CategoriaRepository,
	proveedores domain.ProveedorRepository,
) *CreateProductoHandler {
	return &CreateProductoHandler{repo: repo, categorias: categorias, proveedores: proveedores}
}

// Handle executes the product creation
func (h *CreateProductoHandler) Handle(cmd CreateProductoCommand) (*domain.Producto, error) {
	nombre := strings.TrimSpace(cmd.Nombre)
	if nombre == "" {
		return nil, fmt.Errorf("%w: nombre is required", domain.ErrInvalidInput)
	}
	if cmd.Precio < 0 {
		return nil, fmt.Errorf("%w: precio must not be negative", domain.ErrInvalidInput)
	}
	if cmd.CategoriaID == 0 {
		return nil, fmt.Errorf("%w: categoria_id is required", domain.ErrInvalidInput)
	}

	if _, err := h.categorias.FindByID(cmd.CategoriaID); err != nil {
		return nil, err
	}
	if cmd.ProveedorID != nil {
		if _, err := h.proveedores.FindByID(*cmd.ProveedorID); err != nil {
			return nil, err
		}
	}

	stockMinimo := domain.DefaultStockMinimo
	if cmd.StockMinimo != nil {
		if *cmd.StockMinimo < 0 {
			return nil, fmt.Errorf("%w: stock_minimo must not be negative", domain.ErrInvalidInput)
		}
		stockMinimo = *cmd.StockMinimo
	}

	producto := &domain.Producto{
		Nombre:        nombre,
		Descripcion:   strings.TrimSpace(cmd.Descripcion),
		CodigoSKU:     strings.TrimSpace(cmd.CodigoSKU),
		Precio:        cmd.Precio,
		CantidadStock: cmd.CantidadStock,
		StockMinimo:   stockMinimo,
		CategoriaID:   cmd.CategoriaID,
		ProveedorID:   cmd.ProveedorID,
		Activo:        true,
		FechaCreacion: time.Now(),
	}

	if err := h.repo.Create(producto); err != nil {
		return nil, fmt.Errorf("failed to create producto: %w", err)
	}

	return h.repo.FindByID(producto.ID)
}
