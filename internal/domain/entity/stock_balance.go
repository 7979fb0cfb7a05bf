package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceKey identifica una fila de saldo: producto + bodega + ubicación.
// Location vacío significa "sin ubicación" (bodega sin zonas).
type BalanceKey struct {
	ProductID   string
	WarehouseID string
	Location    string
}

// StockBalance representa el saldo actual de un producto en una bodega/ubicación.
// Invariantes: Quantity >= 0, ReservedQuantity >= 0 y ReservedQuantity <= Quantity.
// Se crea perezosamente con el primer movimiento de su clave.
type StockBalance struct {
	ProductID        string
	WarehouseID      string
	Location         string
	Quantity         decimal.Decimal
	ReservedQuantity decimal.Decimal
	UpdatedAt        time.Time
}

// Key devuelve la clave de saldo de esta fila.
func (s *StockBalance) Key() BalanceKey {
	return BalanceKey{ProductID: s.ProductID, WarehouseID: s.WarehouseID, Location: s.Location}
}

// Available es la cantidad disponible para reservar: Quantity - ReservedQuantity.
func (s *StockBalance) Available() decimal.Decimal {
	return s.Quantity.Sub(s.ReservedQuantity)
}
