package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateReorderPoint actualiza solo el punto de reorden (pantalla de alertas).
	UpdateReorderPoint(productID string, point decimal.Decimal) error
	List(limit, offset int) ([]*entity.Product, error)
	Count() (int, error)
}
