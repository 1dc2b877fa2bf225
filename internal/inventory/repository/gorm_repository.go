package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/gianfig/TecnicasReal/internal/inventory/domain"
)

// GormCategoriaRepository implements CategoriaRepository using GORM
type GormCategoriaRepository struct {
	db *gorm.DB
}

// NewGormCategoriaRepository creates a new GORM category repository
func NewGormCategoriaRepository(db *gorm.DB) *GormCategoriaRepository {
	return &GormCategoriaRepository{db: db}
}

func (r *GormCategoriaRepository) Create(categoria *domain.Categoria) error {
	if err := r.db.Create(categoria).Error; err != nil {
		return fmt.Errorf("failed to create categoria: %w", err)
	}
	return nil
}

func (r *GormCategoriaRepository) FindByID(id uint) (*domain.Categoria, error) {
	var categoria domain.Categoria
	if err := r.db.First(&categoria, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoriaNotFound
		}
		return nil, fmt.Errorf("failed to find categoria: %w", err)
	}
	return &categoria, nil
}

func (r *GormCategoriaRepository) FindAll() ([]domain.Categoria, error) {
	var categorias []domain.Categoria
	if err := r.db.Order("nombre").Find(&categorias).Error; err != nil {
		return nil, fmt.Errorf("failed to find categorias: %w", err)
	}
	return categorias, nil
}

func (r *GormCategoriaRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.Categoria{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete categoria: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrCategoriaNotFound
	}
	return nil
}

// GormProveedorRepository implements ProveedorRepository using GORM
type GormProveedorRepository struct {
	db *gorm.DB
}

// NewGormProveedorRepository creates a new GORM supplier repository
func NewGormProveedorRepository(db *gorm.DB) *GormProveedorRepository {
	return &GormProveedorRepository{db: db}
}

func (r *GormProveedorRepository) Create(proveedor *domain.Proveedor) error {
	if err := r.db.Create(proveedor).Error; err != nil {
		return fmt.Errorf("failed to create proveedor: %w", err)
	}
	return nil
}

func (r *GormProveedorRepository) FindByID(id uint) (*domain.Proveedor, error) {
	var proveedor domain.Proveedor
	if err := r.db.First(&proveedor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProveedorNotFound
		}
		return nil, fmt.Errorf("failed to find proveedor: %w", err)
	}
	return &proveedor, nil
}

func (r *GormProveedorRepository) FindAll() ([]domain.Proveedor, error) {
	var proveedores []domain.Proveedor
	if err := r.db.Order("nombre").Find(&proveedores).Error; err != nil {
		return nil, fmt.Errorf("failed to find proveedores: %w", err)
	}
	return proveedores, nil
}

func (r *GormProveedorRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.Proveedor{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete proveedor: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrProveedorNotFound
	}
	return nil
}

// GormProductoRepository implements ProductoRepository using GORM
type GormProductoRepository struct {
	db *gorm.DB
}

// NewGormProductoRepository creates a new GORM product repository
func NewGormProductoRepository(db *gorm.DB) *GormProductoRepository {
	return &GormProductoRepository{db: db}
}

// AutoMigrate runs database migrations for the whole inventory schema
func (r *GormProductoRepository) AutoMigrate() error {
	return r.db.AutoMigrate(
		&domain.Categoria{},
		&domain.Proveedor{},
		&domain.Producto{},
		&domain.MovimientoStock{},
	)
}

func (r *GormProductoRepository) Create(producto *domain.Producto) error {
	if err := r.db.Create(producto).Error; err != nil {
		return fmt.Errorf("failed to create producto: %w", err)
	}
	return nil
}

// FindByID retrieves an active product with its joined category and
// supplier names. Inactive products are reported as not found.
func (r *GormProductoRepository) FindByID(id uint) (*domain.Producto, error) {
	var producto domain.Producto
	err := r.db.Table("productos").
		Select("productos.*, categorias.nombre AS categoria_nombre, proveedores.nombre AS proveedor_nombre").
		Joins("LEFT JOIN categorias ON productos.categoria_id = categorias.id").
		Joins("LEFT JOIN proveedores ON productos.proveedor_id = proveedores.id").
		Where("productos.id = ? AND productos.activo = ?", id, true).
		First(&producto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductoNotFound
		}
		return nil, fmt.Errorf("failed to find producto: %w", err)
	}
	return &producto, nil
}

func (r *GormProductoRepository) FindAll() ([]domain.Producto, error) {
	var productos []domain.Producto
	err := r.db.Table("productos").
		Select("productos.*, categorias.nombre AS categoria_nombre, proveedores.nombre AS proveedor_nombre").
		Joins("LEFT JOIN categorias ON productos.categoria_id = categorias.id").
		Joins("LEFT JOIN proveedores ON productos.proveedor_id = proveedores.id").
		Where("productos.activo = ?", true).
		Order("productos.nombre").
		Find(&productos).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find productos: %w", err)
	}
	return productos, nil
}

// Update saves product fields. CantidadStock is deliberately excluded:
// stock changes only through the ledger.
func (r *GormProductoRepository) Update(producto *domain.Producto) error {
	now := time.Now()
	producto.FechaActualizacion = &now
	err := r.db.Model(&domain.Producto{}).
		Where("id = ?", producto.ID).
		Select("nombre", "descripcion", "codigo_sku", "precio", "stock_minimo",
			"categoria_id", "proveedor_id", "fecha_actualizacion").
		Updates(producto).Error
	if err != nil {
		return fmt.Errorf("failed to update producto: %w", err)
	}
	return nil
}

// Deactivate soft deletes a product by clearing its activo flag
func (r *GormProductoRepository) Deactivate(id uint) error {
	result := r.db.Model(&domain.Producto{}).
		Where("id = ?", id).
		Update("activo", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate producto: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductoNotFound
	}
	return nil
}

func (r *GormProductoRepository) CountActivosByCategoria(categoriaID uint) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Producto{}).
		Where("categoria_id = ? AND activo = ?", categoriaID, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count productos: %w", err)
	}
	return count, nil
}

func (r *GormProductoRepository) CountActivosByProveedor(proveedorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Producto{}).
		Where("proveedor_id = ? AND activo = ?", proveedorID, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count productos: %w", err)
	}
	return count, nil
}

// FindBajoStock returns active products at or below their reorder threshold,
// most deficient first.
func (r *GormProductoRepository) FindBajoStock() ([]domain.ProductoBajoStock, error) {
	var reporte []domain.ProductoBajoStock
	err := r.db.Table("productos").
		Select(`productos.id, productos.nombre, productos.codigo_sku,
			productos.cantidad_stock, productos.stock_minimo,
			categorias.nombre AS categoria_nombre,
			productos.cantidad_stock - productos.stock_minimo AS diferencia`).
		Joins("LEFT JOIN categorias ON productos.categoria_id = categorias.id").
		Where("productos.cantidad_stock <= productos.stock_minimo AND productos.activo = ?", true).
		Order("(productos.cantidad_stock - productos.stock_minimo) ASC").
		Scan(&reporte).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build low stock report: %w", err)
	}
	return reporte, nil
}
