package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/gianfig/TecnicasReal/internal/inventory/domain"
)

// UpdateProductoCommand represents the data needed to update a product.
// cantidad_stock is deliberately absent: stock only moves through the ledger.
type UpdateProductoCommand struct {
	ID          uint     `json:"-"`
	Nombre      *string  `json:"nombre"`
	Descripcion *string  `json:"descripcion"`
	CodigoSKU   *string  `json:"codigo_sku"`
	Precio      *float64 `json:"precio"`
	StockMinimo *int     `json:"stock_minimo"`
	CategoriaID *uint    `json:"categoria_id"`
	ProveedorID *uint    `json:"proveedor_id"`
}

// UpdateProductoHandler handles product updates
type UpdateProductoHandler struct {
	repo        domain.ProductoRepository
	categorias  domain.CategoriaRepository
	proveedores domain.ProveedorRepository
}

// NewUpdateProductoHandler creates a new UpdateProductoHandler
func NewUpdateProductoHandler(
	repo domain.ProductoRepository,
	categorias domain.CategoriaRepository,
	proveedores domain.ProveedorRepository,
) *UpdateProductoHandler {
	return &UpdateProductoHandler{repo: repo, categorias: categorias, proveedores: proveedores}
}

// Handle applies the provided fields to an existing product
func (h *UpdateProductoHandler) Handle(cmd UpdateProductoCommand) (*domain.Producto, error) {
	producto, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.Nombre != nil {
		nombre := strings.TrimSpace(*cmd.Nombre)
		if nombre == "" {
			return nil, fmt.Errorf("%w: nombre must not be empty", domain.ErrInvalidInput)
		}
		producto.Nombre = nombre
	}
	if cmd.Descripcion != nil {
		producto.Descripcion = strings.TrimSpace(*cmd.Descripcion)
	}
	if cmd.CodigoSKU != nil {
		producto.CodigoSKU = strings.TrimSpace(*cmd.CodigoSKU)
	}
	if cmd.Precio != nil {
		if *cmd.Precio < 0 {
			return nil, fmt.Errorf("%w: precio must not be negative", domain.ErrInvalidInput)
		}
		producto.Precio = *cmd.Precio
	}
	if cmd.StockMinimo != nil {
		if *cmd.StockMinimo < 0 {
			return nil, fmt.Errorf("%w: stock_minimo must not be negative", domain.ErrInvalidInput)
		}
		producto.StockMinimo = *cmd.StockMinimo
	}
	if cmd.CategoriaID != nil {
		if _, err := h.categorias.FindByID(*cmd.CategoriaID); err != nil {
			return nil, err
		}
		producto.CategoriaID = *cmd.CategoriaID
	}
	if cmd.ProveedorID != nil {
		if _, err := h.proveedores.FindByID(*cmd.ProveedorID); err != nil {
			return nil, err
		}
		producto.ProveedorID = cmd.ProveedorID
	}

	now := time.Now()
	producto.FechaActualizacion = &now

	if err := h.repo.Update(producto); err != nil {
		return nil, fmt.Errorf("failed to update producto: %w", err)
	}

	return h.repo.FindByID(producto.ID)
}
