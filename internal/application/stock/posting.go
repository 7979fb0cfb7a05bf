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

// Movement describe un movimiento a asentar contra una clave de saldo.
// Quantity lleva signo: positivo entra, negativo sale.
type Movement struct {
	Key           entity.BalanceKey
	Quantity      decimal.Decimal
	MovementType  string
	DocumentID    string
	LineNo        int
	FromWarehouse string
	ToWarehouse   string
	PerformedBy   string
	At            time.Time
}

// Poster asienta movimientos en el libro y actualiza el saldo de la clave,
// ambos dentro de la transacción del caller. La fila del saldo se bloquea
// (SELECT FOR UPDATE) durante todo el read-modify-write, de modo que dos
// movimientos concurrentes sobre la misma clave quedan serializados.
type Poster struct {
	log *logger.Logger
}

// NewPoster construye el servicio de asientos.
func NewPoster(log *logger.Logger) *Poster {
	return &Poster{log: log}
}

// PostMovement lee el saldo bajo bloqueo de fila, calcula before/after,
// rechaza el movimiento si dejaría el saldo negativo, escribe el asiento en el
// libro y luego actualiza el saldo. El asiento y el saldo viajan en la misma
// transacción: o se persisten ambos o ninguno.
func (p *Poster) PostMovement(
	balances repository.StockBalanceRepository,
	ledger repository.LedgerRepository,
	m Movement,
) (*entity.LedgerEntry, error) {
	balance, err := balances.GetForUpdate(m.Key)
	if err != nil {
		return nil, fmt.Errorf("bloquear saldo %s/%s: %w", m.Key.ProductID, m.Key.WarehouseID, err)
	}

	before := balance.Quantity
	after := before.Add(m.Quantity)
	if after.IsNegative() {
		// Los ajustes negativos llegan aquí sin pasar por reserva.
		return nil, fmt.Errorf("documento %s línea %d, saldo %s/%s quedaría en %s: %w",
			m.DocumentID, m.LineNo, m.Key.ProductID, m.Key.WarehouseID, after, domain.ErrInsufficientStock)
	}

	entry := &entity.LedgerEntry{
		ID:            uuid.New().String(),
		DocumentID:    m.DocumentID,
		LineNo:        m.LineNo,
		MovementType:  m.MovementType,
		ProductID:     m.Key.ProductID,
		WarehouseID:   m.Key.WarehouseID,
		Location:      m.Key.Location,
		FromWarehouse: m.FromWarehouse,
		ToWarehouse:   m.ToWarehouse,
		Quantity:      m.Quantity,
		BeforeQty:     before,
		AfterQty:      after,
		PerformedBy:   m.PerformedBy,
		CreatedAt:     m.At,
	}
	if err := ledger.Create(entry); err != nil {
		return nil, fmt.Errorf("asentar movimiento documento %s línea %d: %w", m.DocumentID, m.LineNo, err)
	}

	balance.Quantity = after
	balance.UpdatedAt = m.At
	if err := balances.Upsert(balance); err != nil {
		return nil, fmt.Errorf("actualizar saldo %s/%s: %w", m.Key.ProductID, m.Key.WarehouseID, err)
	}

	p.log.Debug().
		Str("document_id", m.DocumentID).
		Int("line_no", m.LineNo).
		Str("product_id", m.Key.ProductID).
		Str("warehouse_id", m.Key.WarehouseID).
		Str("type", m.MovementType).
		Str("before", before.String()).
		Str("after", after.String()).
		Msg("movimiento asentado")

	return entry, nil
}
