package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockReservation es el apartado de cantidad disponible que hace la
// aprobación de una línea saliente, y el registro de idempotencia que impide
// reservar o liberar dos veces la misma línea: única por (DocumentID, LineNo).
// Se libera al completar o cancelar el documento.
type StockReservation struct {
	ID          string
	DocumentID  string
	LineNo      int
	ProductID   string
	WarehouseID string
	Location    string
	Quantity    decimal.Decimal
	Released    bool
	CreatedAt   time.Time
	ReleasedAt  *time.Time
}

// Key devuelve la clave de saldo sobre la que pesa la reserva.
func (r *StockReservation) Key() BalanceKey {
	return BalanceKey{ProductID: r.ProductID, WarehouseID: r.WarehouseID, Location: r.Location}
}
