package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.StockBalanceRepository = (*StockBalanceRepo)(nil)

// StockBalanceRepo implementación de StockBalanceRepository sobre PostgreSQL
// (usable con pool o tx). location se guarda como texto no nulo ('' = sin
// ubicación) para que la clave única (product_id, warehouse_id, location)
// funcione sin trucos con NULL.
type StockBalanceRepo struct {
	q Querier
}

// NewStockBalanceRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewStockBalanceRepository(q Querier) *StockBalanceRepo {
	return &StockBalanceRepo{q: q}
}

// Get obtiene el saldo de la clave; fila inexistente = saldo en cero.
func (r *StockBalanceRepo) Get(key entity.BalanceKey) (*entity.StockBalance, error) {
	balance, err := r.getWith(key, "")
	if errors.Is(err, pgx.ErrNoRows) {
		return zeroBalance(key), nil
	}
	return balance, err
}

// GetForUpdate obtiene el saldo y bloquea la fila para update (SELECT FOR UPDATE).
// Si la fila no existe todavía, primero la materializa en cero (INSERT ... ON
// CONFLICT DO NOTHING) y reintenta el bloqueo: devolver un saldo sintético sin
// fila dejaría el primer movimiento de la clave fuera de la sección crítica y
// dos escritores concurrentes leerían ambos before=0.
func (r *StockBalanceRepo) GetForUpdate(key entity.BalanceKey) (*entity.StockBalance, error) {
	balance, err := r.getWith(key, " FOR UPDATE")
	if !errors.Is(err, pgx.ErrNoRows) {
		return balance, err
	}

	insert := `
		INSERT INTO stock_balances (product_id, warehouse_id, location, quantity, reserved_quantity, updated_at)
		VALUES ($1, $2, $3, 0, 0, now())
		ON CONFLICT (product_id, warehouse_id, location) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), insert, key.ProductID, key.WarehouseID, key.Location); err != nil {
		return nil, fmt.Errorf("materialize stock balance: %w", err)
	}

	// Reintento: la fila ya existe (nuestra o del escritor concurrente que
	// ganó el insert) y el SELECT FOR UPDATE espera su commit si hace falta.
	balance, err = r.getWith(key, " FOR UPDATE")
	if err != nil {
		return nil, fmt.Errorf("lock stock balance after materialize: %w", err)
	}
	return balance, nil
}

func (r *StockBalanceRepo) getWith(key entity.BalanceKey, suffix string) (*entity.StockBalance, error) {
	query := `
		SELECT product_id, warehouse_id, location, quantity, reserved_quantity, updated_at
		FROM stock_balances
		WHERE product_id = $1 AND warehouse_id = $2 AND location = $3` + suffix
	var s entity.StockBalance
	err := r.q.QueryRow(context.Background(), query, key.ProductID, key.WarehouseID, key.Location).Scan(
		&s.ProductID, &s.WarehouseID, &s.Location, &s.Quantity, &s.ReservedQuantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("get stock balance: %w", err)
	}
	return &s, nil
}

func zeroBalance(key entity.BalanceKey) *entity.StockBalance {
	return &entity.StockBalance{
		ProductID:        key.ProductID,
		WarehouseID:      key.WarehouseID,
		Location:         key.Location,
		Quantity:         decimal.Zero,
		ReservedQuantity: decimal.Zero,
	}
}

// Upsert inserta o actualiza cantidad y reservado de la clave.
func (r *StockBalanceRepo) Upsert(balance *entity.StockBalance) error {
	query := `
		INSERT INTO stock_balances (product_id, warehouse_id, location, quantity, reserved_quantity, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (product_id, warehouse_id, location)
		DO UPDATE SET quantity = EXCLUDED.quantity, reserved_quantity = EXCLUDED.reserved_quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		balance.ProductID, balance.WarehouseID, balance.Location, balance.Quantity, balance.ReservedQuantity,
	)
	if err != nil {
		return fmt.Errorf("upsert stock balance: %w", err)
	}
	return nil
}

// ListByWarehouse lista los saldos de una bodega, paginados.
func (r *StockBalanceRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.StockBalance, error) {
	query := `
		SELECT product_id, warehouse_id, location, quantity, reserved_quantity, updated_at
		FROM stock_balances WHERE warehouse_id = $1
		ORDER BY product_id, location LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock balances: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockBalance
	for rows.Next() {
		var s entity.StockBalance
		if err := rows.Scan(&s.ProductID, &s.WarehouseID, &s.Location, &s.Quantity, &s.ReservedQuantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock balance: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// CountByWarehouse cuenta los saldos de una bodega.
func (r *StockBalanceRepo) CountByWarehouse(warehouseID string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM stock_balances WHERE warehouse_id = $1`, warehouseID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count stock balances: %w", err)
	}
	return total, nil
}

// ListBelowReorder devuelve los productos con 0 < saldo <= punto de reorden,
// mayor déficit primero. warehouseID vacío considera todas las bodegas.
func (r *StockBalanceRepo) ListBelowReorder(warehouseID string) ([]repository.ReorderItem, error) {
	query := `
		SELECT s.product_id, p.sku, p.name, s.warehouse_id, s.location, s.quantity, p.reorder_point, p.cost
		FROM stock_balances s
		JOIN products p ON p.id = s.product_id
		WHERE s.quantity > 0 AND s.quantity <= p.reorder_point`
	args := []any{}
	if warehouseID != "" {
		args = append(args, warehouseID)
		query += fmt.Sprintf(" AND s.warehouse_id = $%d", len(args))
	}
	query += " ORDER BY (p.reorder_point - s.quantity) DESC"
	return r.queryReorderItems(query, args)
}

// ListOutOfStock devuelve los saldos agotados (cantidad <= 0).
func (r *StockBalanceRepo) ListOutOfStock(warehouseID string) ([]repository.ReorderItem, error) {
	query := `
		SELECT s.product_id, p.sku, p.name, s.warehouse_id, s.location, s.quantity, p.reorder_point, p.cost
		FROM stock_balances s
		JOIN products p ON p.id = s.product_id
		WHERE s.quantity <= 0`
	args := []any{}
	if warehouseID != "" {
		args = append(args, warehouseID)
		query += fmt.Sprintf(" AND s.warehouse_id = $%d", len(args))
	}
	query += " ORDER BY p.sku"
	return r.queryReorderItems(query, args)
}

func (r *StockBalanceRepo) queryReorderItems(query string, args []any) ([]repository.ReorderItem, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reorder items: %w", err)
	}
	defer rows.Close()
	var items []repository.ReorderItem
	for rows.Next() {
		var it repository.ReorderItem
		if err := rows.Scan(&it.ProductID, &it.SKU, &it.ProductName, &it.WarehouseID, &it.Location,
			&it.CurrentStock, &it.ReorderPoint, &it.UnitCost); err != nil {
			return nil, fmt.Errorf("scan reorder item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
