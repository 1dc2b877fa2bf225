package domain

import "time"

// DefaultStockMinimo is the reorder threshold assigned when a product
// is created without an explicit stock_minimo.
const DefaultStockMinimo = 5

// Producto represents a product in the Productos table. CantidadStock is
// mutable only through the ledger: its value must always equal the signed
// sum of the product's movements since creation.
type Producto struct {
	ID                 uint       `json:"id" gorm:"primaryKey"`
	Nombre             string     `json:"nombre" gorm:"not null"`
	Descripcion        string     `json:"descripcion"`
	CodigoSKU          string     `json:"codigo_sku" gorm:"column:codigo_sku"`
	Precio             float64    `json:"precio" gorm:"not null;default:0"`
	CantidadStock      int        `json:"cantidad_stock" gorm:"not null;default:0"`
	StockMinimo        int        `json:"stock_minimo" gorm:"not null;default:5"`
	CategoriaID        uint       `json:"categoria_id" gorm:"not null;index"`
	ProveedorID        *uint      `json:"proveedor_id" gorm:"index"`
	Activo             bool       `json:"activo" gorm:"not null;default:true"`
	FechaCreacion      time.Time  `json:"fecha_creacion"`
	FechaActualizacion *time.Time `json:"fecha_actualizacion,omitempty"`

	// Joined display names, filled by list queries only.
	CategoriaNombre string `json:"categoria_nombre" gorm:"->;-:migration"`
	ProveedorNombre string `json:"proveedor_nombre" gorm:"->;-:migration"`
}

// TableName specifies the table name
func (Producto) TableName() string {
	return "productos"
}

// ProductoBajoStock is a row of the low-stock report. Diferencia is
// CantidadStock - StockMinimo; the report sorts most deficient first.
type ProductoBajoStock struct {
	ID              uint   `json:"id"`
	Nombre          string `json:"nombre"`
	CodigoSKU       string `json:"codigo_sku"`
	CantidadStock   int    `json:"cantidad_stock"`
	StockMinimo     int    `json:"stock_minimo"`
	CategoriaNombre string `json:"categoria_nombre"`
	Diferencia      int    `json:"diferencia"`
}

// ProductoRepository defines the contract for product data access.
// There is no stock setter here: stock changes only through LedgerRepository.
type ProductoRepository interface {
	Create(producto *Producto) error
	FindByID(id uint) (*Producto, error)
	FindAll() ([]Producto, error)
	Update(producto *Producto) error
	Deactivate(id uint) error
	CountActivosByCategoria(categoriaID uint) (int64, error)
	CountActivosByProveedor(proveedorID uint) (int64, error)
	FindBajoStock() ([]ProductoBajoStock, error)
}
