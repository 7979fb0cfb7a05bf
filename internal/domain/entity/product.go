package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario (multi-bodega).
// ReorderPoint alimenta el cálculo de reposición; el stock por bodega vive en
// StockBalance y se mantiene únicamente vía documentos.
type Product struct {
	ID           string
	SKU          string // código único
	Name         string
	Description  string
	Price        decimal.Decimal // precio de venta
	Cost         decimal.Decimal // costo de referencia
	UnitMeasure  string
	ReorderPoint decimal.Decimal // punto de reorden para alertas de reposición
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
