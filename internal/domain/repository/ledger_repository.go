package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// LedgerFilter filtros de consulta del libro de inventario.
type LedgerFilter struct {
	MovementType string
	ProductID    string
	WarehouseID  string
	DocumentID   string
}

// LedgerRepository define el puerto del libro de inventario. Los asientos son
// inmutables: solo se insertan y se consultan, nunca se actualizan ni borran.
type LedgerRepository interface {
	Create(entry *entity.LedgerEntry) error
	List(filter LedgerFilter, limit, offset int) ([]*entity.LedgerEntry, error)
	Count(filter LedgerFilter) (int, error)
	// SumByKey suma las cantidades con signo de todos los asientos de la clave.
	// Debe coincidir en todo momento con StockBalance.Quantity (conciliación).
	SumByKey(key entity.BalanceKey) (decimal.Decimal, error)
}
