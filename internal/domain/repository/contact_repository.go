package repository

import "github.com/jhoicas/Bodega-api/internal/domain/entity"

// ContactRepository define el puerto de persistencia para terceros
// (proveedores y clientes de los documentos).
type ContactRepository interface {
	Create(contact *entity.Contact) error
	GetByID(id string) (*entity.Contact, error)
	Update(contact *entity.Contact) error
	List(kind string, limit, offset int) ([]*entity.Contact, error)
}
