package repository

import "github.com/jhoicas/Bodega-api/internal/domain/entity"

// ReservationRepository define el puerto de persistencia para reservas de
// stock. La unicidad por (document_id, line_no) la garantiza el almacén y es
// la base de la idempotencia de reservar/liberar.
type ReservationRepository interface {
	Create(res *entity.StockReservation) error
	// ListByDocument devuelve todas las reservas del documento, liberadas o no.
	ListByDocument(documentID string) ([]*entity.StockReservation, error)
	MarkReleased(id string) error
}
