package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación de DocumentRepository sobre PostgreSQL (usable con pool o tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador de documentos. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `id, type, reference, status, warehouse_id, to_warehouse_id, from_location, to_location,
	contact_id, created_by, validated_by, canceled_reason, created_at, updated_at, validated_at, completed_at`

// Create persiste el documento y sus líneas.
func (r *DocumentRepo) Create(doc *entity.Document) error {
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		doc.ID, doc.Type, doc.Reference, doc.Status, doc.WarehouseID,
		nullIfEmpty(doc.ToWarehouseID), nullIfEmpty(doc.FromLocation), nullIfEmpty(doc.ToLocation),
		nullIfEmpty(doc.ContactID), nullIfEmpty(doc.CreatedBy), nullIfEmpty(doc.ValidatedBy),
		nullIfEmpty(doc.CanceledReason), doc.CreatedAt, doc.UpdatedAt, doc.ValidatedAt, doc.CompletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert document: %w", err)
	}
	for _, line := range doc.Lines {
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO document_lines (document_id, line_no, product_id, uom, quantity, unit_cost)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			doc.ID, line.LineNo, line.ProductID, line.UOM, line.Quantity, line.UnitCost,
		)
		if err != nil {
			return fmt.Errorf("insert document line %d: %w", line.LineNo, err)
		}
	}
	return nil
}

// GetByID obtiene un documento con sus líneas.
func (r *DocumentRepo) GetByID(id string) (*entity.Document, error) {
	return r.get(`SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)
}

// GetByReference obtiene un documento por su referencia única.
func (r *DocumentRepo) GetByReference(reference string) (*entity.Document, error) {
	return r.get(`SELECT `+documentColumns+` FROM documents WHERE reference = $1`, reference)
}

// GetForUpdate obtiene el documento y bloquea su fila (SELECT FOR UPDATE) para
// serializar transiciones concurrentes sobre el mismo id.
func (r *DocumentRepo) GetForUpdate(id string) (*entity.Document, error) {
	return r.get(`SELECT `+documentColumns+` FROM documents WHERE id = $1 FOR UPDATE`, id)
}

func (r *DocumentRepo) get(query, arg string) (*entity.Document, error) {
	var d entity.Document
	var toWarehouse, fromLoc, toLoc, contact, createdBy, validatedBy, reason *string
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&d.ID, &d.Type, &d.Reference, &d.Status, &d.WarehouseID,
		&toWarehouse, &fromLoc, &toLoc, &contact, &createdBy, &validatedBy, &reason,
		&d.CreatedAt, &d.UpdatedAt, &d.ValidatedAt, &d.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	d.ToWarehouseID = deref(toWarehouse)
	d.FromLocation = deref(fromLoc)
	d.ToLocation = deref(toLoc)
	d.ContactID = deref(contact)
	d.CreatedBy = deref(createdBy)
	d.ValidatedBy = deref(validatedBy)
	d.CanceledReason = deref(reason)

	if err := r.loadLines(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DocumentRepo) loadLines(d *entity.Document) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT line_no, product_id, uom, quantity, unit_cost
		FROM document_lines WHERE document_id = $1 ORDER BY line_no`, d.ID)
	if err != nil {
		return fmt.Errorf("load document lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.DocumentLine
		if err := rows.Scan(&l.LineNo, &l.ProductID, &l.UOM, &l.Quantity, &l.UnitCost); err != nil {
			return fmt.Errorf("scan document line: %w", err)
		}
		d.Lines = append(d.Lines, l)
	}
	return rows.Err()
}

// Update persiste estado y metadatos de transición con compare-and-set sobre
// el estado esperado. Cero filas afectadas significa que otra transición ganó:
// domain.ErrConflict.
func (r *DocumentRepo) Update(doc *entity.Document, expectedStatus string) error {
	query := `
		UPDATE documents
		SET status = $3, validated_by = $4, canceled_reason = $5,
		    validated_at = $6, completed_at = $7, updated_at = $8
		WHERE id = $1 AND status = $2`
	cmd, err := r.q.Exec(context.Background(), query,
		doc.ID, expectedStatus, doc.Status,
		nullIfEmpty(doc.ValidatedBy), nullIfEmpty(doc.CanceledReason),
		doc.ValidatedAt, doc.CompletedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("documento %s ya no está en %s: %w", doc.ID, expectedStatus, domain.ErrConflict)
	}
	return nil
}

// List lista documentos con filtros y paginación, más recientes primero.
func (r *DocumentRepo) List(filter repository.DocumentFilter, limit, offset int) ([]*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE 1=1`
	args := []any{}
	query, args = appendDocumentFilter(query, args, filter)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var list []*entity.Document
	for rows.Next() {
		var d entity.Document
		var toWarehouse, fromLoc, toLoc, contact, createdBy, validatedBy, reason *string
		if err := rows.Scan(
			&d.ID, &d.Type, &d.Reference, &d.Status, &d.WarehouseID,
			&toWarehouse, &fromLoc, &toLoc, &contact, &createdBy, &validatedBy, &reason,
			&d.CreatedAt, &d.UpdatedAt, &d.ValidatedAt, &d.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		d.ToWarehouseID = deref(toWarehouse)
		d.FromLocation = deref(fromLoc)
		d.ToLocation = deref(toLoc)
		d.ContactID = deref(contact)
		d.CreatedBy = deref(createdBy)
		d.ValidatedBy = deref(validatedBy)
		d.CanceledReason = deref(reason)
		list = append(list, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, d := range list {
		if err := r.loadLines(d); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// Count cuenta documentos que cumplen el filtro.
func (r *DocumentRepo) Count(filter repository.DocumentFilter) (int, error) {
	query := `SELECT count(*) FROM documents WHERE 1=1`
	args := []any{}
	query, args = appendDocumentFilter(query, args, filter)
	var total int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return total, nil
}

func appendDocumentFilter(query string, args []any, filter repository.DocumentFilter) (string, []any) {
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.WarehouseID != "" {
		args = append(args, filter.WarehouseID)
		query += fmt.Sprintf(" AND warehouse_id = $%d", len(args))
	}
	return query, args
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
