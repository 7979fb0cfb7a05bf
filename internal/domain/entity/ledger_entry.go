package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de inventario.
const (
	MovementTypeIN         = "IN"         // entrada
	MovementTypeOUT        = "OUT"        // salida
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste
	MovementTypeTRANSFER   = "TRANSFER"   // traslado entre bodegas
)

// LedgerEntry es un asiento inmutable del libro de inventario (append-only).
// Cada asiento referencia el documento y la línea que lo causó y captura el
// saldo de su clave inmediatamente antes y después del movimiento:
// AfterQty = BeforeQty + Quantity. Para cualquier clave, la suma de Quantity
// de todos sus asientos es igual al saldo actual (invariante de conciliación).
type LedgerEntry struct {
	ID            string
	DocumentID    string
	LineNo        int
	MovementType  string
	ProductID     string
	WarehouseID   string // bodega afectada por este asiento
	Location      string
	FromWarehouse string // origen en TRANSFER ("" en el resto)
	ToWarehouse   string // destino en TRANSFER
	Quantity      decimal.Decimal // con signo: positivo entra, negativo sale
	BeforeQty     decimal.Decimal
	AfterQty      decimal.Decimal
	PerformedBy   string
	CreatedAt     time.Time
}

// Key devuelve la clave de saldo afectada por el asiento.
func (e *LedgerEntry) Key() BalanceKey {
	return BalanceKey{ProductID: e.ProductID, WarehouseID: e.WarehouseID, Location: e.Location}
}
