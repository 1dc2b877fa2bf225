package domain

import "time"

// Categoria groups products
type Categoria struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Nombre        string    `json:"nombre" gorm:"not null"`
	Descripcion   string    `json:"descripcion"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

// TableName specifies the table name
func (Categoria) TableName() string {
	return "categorias"
}

// CategoriaRepository defines the contract for category data access
type CategoriaRepository interface {
	Create(categoria *Categoria) error
	FindByID(id uint) (*Categoria, error)
	FindAll() ([]Categoria, error)
	Delete(id uint) error
}
