package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación del libro de inventario sobre PostgreSQL
// (usable con pool o tx). Solo INSERT y SELECT: los asientos son inmutables.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador del libro. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

const ledgerColumns = `id, document_id, line_no, movement_type, product_id, warehouse_id, location,
	from_warehouse, to_warehouse, quantity, before_qty, after_qty, performed_by, created_at`

// Create persiste un asiento del libro.
func (r *LedgerRepo) Create(entry *entity.LedgerEntry) error {
	query := `
		INSERT INTO stock_ledger (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.DocumentID, entry.LineNo, entry.MovementType,
		entry.ProductID, entry.WarehouseID, entry.Location,
		nullIfEmpty(entry.FromWarehouse), nullIfEmpty(entry.ToWarehouse),
		entry.Quantity, entry.BeforeQty, entry.AfterQty,
		nullIfEmpty(entry.PerformedBy), entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// List consulta asientos con filtros, más recientes primero.
func (r *LedgerRepo) List(filter repository.LedgerFilter, limit, offset int) ([]*entity.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM stock_ledger WHERE 1=1`
	args := []any{}
	query, args = appendLedgerFilter(query, args, filter)
	query += fmt.Sprintf(" ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		var fromWh, toWh, performedBy *string
		if err := rows.Scan(&e.ID, &e.DocumentID, &e.LineNo, &e.MovementType,
			&e.ProductID, &e.WarehouseID, &e.Location, &fromWh, &toWh,
			&e.Quantity, &e.BeforeQty, &e.AfterQty, &performedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		e.FromWarehouse = deref(fromWh)
		e.ToWarehouse = deref(toWh)
		e.PerformedBy = deref(performedBy)
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Count cuenta asientos que cumplen el filtro.
func (r *LedgerRepo) Count(filter repository.LedgerFilter) (int, error) {
	query := `SELECT count(*) FROM stock_ledger WHERE 1=1`
	args := []any{}
	query, args = appendLedgerFilter(query, args, filter)
	var total int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count ledger: %w", err)
	}
	return total, nil
}

// SumByKey suma las cantidades con signo de todos los asientos de la clave
// (conciliación contra StockBalance.Quantity).
func (r *LedgerRepo) SumByKey(key entity.BalanceKey) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(quantity), 0)
		FROM stock_ledger
		WHERE product_id = $1 AND warehouse_id = $2 AND location = $3`,
		key.ProductID, key.WarehouseID, key.Location,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum ledger by key: %w", err)
	}
	return sum, nil
}

func appendLedgerFilter(query string, args []any, filter repository.LedgerFilter) (string, []any) {
	if filter.MovementType != "" {
		args = append(args, filter.MovementType)
		query += fmt.Sprintf(" AND movement_type = $%d", len(args))
	}
	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		query += fmt.Sprintf(" AND product_id = $%d", len(args))
	}
	if filter.WarehouseID != "" {
		args = append(args, filter.WarehouseID)
		query += fmt.Sprintf(" AND warehouse_id = $%d", len(args))
	}
	if filter.DocumentID != "" {
		args = append(args, filter.DocumentID)
		query += fmt.Sprintf(" AND document_id = $%d", len(args))
	}
	return query, args
}
