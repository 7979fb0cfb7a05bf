package repository

import "github.com/jhoicas/Bodega-api/internal/domain/entity"

// DocumentFilter filtros de listado de documentos.
type DocumentFilter struct {
	Type        string
	Status      string
	WarehouseID string
}

// DocumentRepository define el puerto de persistencia para documentos de
// inventario. Las transiciones de estado usan Update con compare-and-set
// sobre el estado esperado; GetForUpdate bloquea la fila del documento para
// serializar transiciones concurrentes sobre el mismo id.
type DocumentRepository interface {
	Create(doc *entity.Document) error
	GetByID(id string) (*entity.Document, error)
	GetByReference(reference string) (*entity.Document, error)
	// GetForUpdate bloquea la fila del documento (SELECT FOR UPDATE) y la
	// devuelve con sus líneas.
	GetForUpdate(id string) (*entity.Document, error)
	// Update persiste estado y metadatos de transición solo si el estado
	// actual en la base coincide con expectedStatus; si no, domain.ErrConflict.
	Update(doc *entity.Document, expectedStatus string) error
	List(filter DocumentFilter, limit, offset int) ([]*entity.Document, error)
	Count(filter DocumentFilter) (int, error)
}
