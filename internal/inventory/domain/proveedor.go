package domain

import "time"

// Proveedor is a product supplier
type Proveedor struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Nombre        string    `json:"nombre" gorm:"not null"`
	Contacto      string    `json:"contacto"`
	Email         string    `json:"email"`
	Telefono      string    `json:"telefono"`
	Direccion     string    `json:"direccion"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

// TableName specifies the table name
func (Proveedor) TableName() string {
	return "proveedores"
}

// ProveedorRepository defines the contract for supplier data access
type ProveedorRepository interface {
	Create(proveedor *Proveedor) error
	FindByID(id uint) (*Proveedor, error)
	FindAll() ([]Proveedor, error)
	Delete(id uint) error
}
