package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.ReservationRepository = (*ReservationRepo)(nil)

// ReservationRepo implementación de ReservationRepository sobre PostgreSQL
// (usable con pool o tx). La clave única (document_id, line_no) en la tabla
// respalda la idempotencia de reservar por línea.
type ReservationRepo struct {
	q Querier
}

// NewReservationRepository construye el adaptador de reservas. Pasar pool o tx (Querier).
func NewReservationRepository(q Querier) *ReservationRepo {
	return &ReservationRepo{q: q}
}

// Create persiste una reserva. Una línea ya reservada viola la clave única:
// domain.ErrDuplicate.
func (r *ReservationRepo) Create(res *entity.StockReservation) error {
	query := `
		INSERT INTO stock_reservations (id, document_id, line_no, product_id, warehouse_id, location, quantity, released, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false, $8)`
	_, err := r.q.Exec(context.Background(), query,
		res.ID, res.DocumentID, res.LineNo, res.ProductID, res.WarehouseID, res.Location,
		res.Quantity, res.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert reservation: %w", err)
	}
	return nil
}

// ListByDocument devuelve todas las reservas del documento, liberadas o no,
// en orden de línea.
func (r *ReservationRepo) ListByDocument(documentID string) ([]*entity.StockReservation, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, document_id, line_no, product_id, warehouse_id, location, quantity, released, created_at, released_at
		FROM stock_reservations WHERE document_id = $1 ORDER BY line_no`, documentID)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockReservation
	for rows.Next() {
		var res entity.StockReservation
		if err := rows.Scan(&res.ID, &res.DocumentID, &res.LineNo, &res.ProductID, &res.WarehouseID,
			&res.Location, &res.Quantity, &res.Released, &res.CreatedAt, &res.ReleasedAt); err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		list = append(list, &res)
	}
	return list, rows.Err()
}

// MarkReleased marca la reserva como liberada.
func (r *ReservationRepo) MarkReleased(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE stock_reservations SET released = true, released_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark reservation released: %w", err)
	}
	return nil
}
