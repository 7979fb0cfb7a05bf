package stock

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

// Reserver administra el apartado de cantidad disponible sobre los saldos.
// Reservar y liberar son idempotentes por (documento, línea): la tabla de
// reservas registra qué líneas ya fueron apartadas o liberadas.
type Reserver struct {
	log *logger.Logger
}

// NewReserver construye el administrador de reservas.
func NewReserver(log *logger.Logger) *Reserver {
	return &Reserver{log: log}
}

// Reserve aparta la cantidad de cada línea saliente del documento en su clave
// de origen. Verifica disponible >= cantidad bajo bloqueo de fila; si alguna
// línea no alcanza, devuelve ErrInsufficientStock y el rollback de la
// transacción del caller deshace las reservas parciales. Las líneas que ya
// tienen reserva vigente se omiten (idempotencia).
func (rv *Reserver) Reserve(
	balances repository.StockBalanceRepository,
	reservations repository.ReservationRepository,
	doc *entity.Document,
	now time.Time,
) error {
	existing, err := reservations.ListByDocument(doc.ID)
	if err != nil {
		return fmt.Errorf("listar reservas de %s: %w", doc.ID, err)
	}
	reserved := make(map[int]bool, len(existing))
	for _, r := range existing {
		if !r.Released {
			reserved[r.LineNo] = true
		}
	}

	for _, line := range doc.Lines {
		if !doc.IsOutboundLine(line) || reserved[line.LineNo] {
			continue
		}
		qty := line.Quantity.Abs()
		key := entity.BalanceKey{
			ProductID:   line.ProductID,
			WarehouseID: doc.WarehouseID,
			Location:    doc.FromLocation,
		}

		balance, err := balances.GetForUpdate(key)
		if err != nil {
			return fmt.Errorf("bloquear saldo %s/%s: %w", key.ProductID, key.WarehouseID, err)
		}
		if balance.Available().LessThan(qty) {
			return fmt.Errorf("documento %s línea %d: disponible %s, requerido %s: %w",
				doc.ID, line.LineNo, balance.Available(), qty, domain.ErrInsufficientStock)
		}

		balance.ReservedQuantity = balance.ReservedQuantity.Add(qty)
		balance.UpdatedAt = now
		if err := balances.Upsert(balance); err != nil {
			return fmt.Errorf("reservar saldo %s/%s: %w", key.ProductID, key.WarehouseID, err)
		}

		if err := reservations.Create(&entity.StockReservation{
			ID:          uuid.New().String(),
			DocumentID:  doc.ID,
			LineNo:      line.LineNo,
			ProductID:   key.ProductID,
			WarehouseID: key.WarehouseID,
			Location:    key.Location,
			Quantity:    qty,
			CreatedAt:   now,
		}); err != nil {
			return fmt.Errorf("registrar reserva documento %s línea %d: %w", doc.ID, line.LineNo, err)
		}
	}
	return nil
}

// Release libera todas las reservas vigentes del documento, restando del
// reservado de cada clave con piso en cero. Un reservado que quedaría
// negativo indica un defecto de lógica: se reporta como advertencia de
// consistencia y se ajusta a cero en lugar de propagarse.
func (rv *Reserver) Release(
	balances repository.StockBalanceRepository,
	reservations repository.ReservationRepository,
	documentID string,
	now time.Time,
) error {
	list, err := reservations.ListByDocument(documentID)
	if err != nil {
		return fmt.Errorf("listar reservas de %s: %w", documentID, err)
	}
	for _, res := range list {
		if res.Released {
			continue
		}
		balance, err := balances.GetForUpdate(res.Key())
		if err != nil {
			return fmt.Errorf("bloquear saldo %s/%s: %w", res.ProductID, res.WarehouseID, err)
		}

		newReserved := balance.ReservedQuantity.Sub(res.Quantity)
		if newReserved.IsNegative() {
			rv.log.Warn().
				Str("document_id", documentID).
				Int("line_no", res.LineNo).
				Str("product_id", res.ProductID).
				Str("warehouse_id", res.WarehouseID).
				Str("reserved", balance.ReservedQuantity.String()).
				Str("to_release", res.Quantity.String()).
				Msg("liberación excede lo reservado; se ajusta a cero")
			newReserved = decimal.Zero
		}

		balance.ReservedQuantity = newReserved
		balance.UpdatedAt = now
		if err := balances.Upsert(balance); err != nil {
			return fmt.Errorf("liberar saldo %s/%s: %w", res.ProductID, res.WarehouseID, err)
		}
		if err := reservations.MarkReleased(res.ID); err != nil {
			return fmt.Errorf("marcar reserva liberada %s: %w", res.ID, err)
		}
	}
	return nil
}
