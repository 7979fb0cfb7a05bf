package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// ReorderItem resultado crudo de la consulta de reposición para un producto
// cuyo saldo está en o bajo su punto de reorden.
type ReorderItem struct {
	ProductID    string
	SKU          string
	ProductName  string
	WarehouseID  string
	Location     string
	CurrentStock decimal.Decimal
	ReorderPoint decimal.Decimal
	UnitCost     decimal.Decimal
}

// StockBalanceRepository define el puerto para consultar/actualizar saldos por
// clave (producto, bodega, ubicación). Las mutaciones siempre ocurren dentro
// de una transacción con la fila bloqueada (GetForUpdate).
type StockBalanceRepository interface {
	// Get devuelve el saldo de la clave; si la fila no existe aún devuelve un
	// saldo en cero (el saldo se materializa con el primer movimiento).
	Get(key entity.BalanceKey) (*entity.StockBalance, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(key entity.BalanceKey) (*entity.StockBalance, error)
	Upsert(balance *entity.StockBalance) error
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.StockBalance, error)
	CountByWarehouse(warehouseID string) (int, error)

	// ListBelowReorder devuelve los productos con 0 < saldo <= punto de reorden
	// en la bodega indicada (vacía = todas), mayor déficit primero.
	ListBelowReorder(warehouseID string) ([]ReorderItem, error)
	// ListOutOfStock devuelve los saldos agotados (cantidad <= 0).
	ListOutOfStock(warehouseID string) ([]ReorderItem, error)
}
