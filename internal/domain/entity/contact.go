package entity

import "time"

// Clases de contacto.
const (
	ContactKindVendor   = "vendor"   // proveedor (RECEIPT)
	ContactKindCustomer = "customer" // cliente (DELIVERY)
)

// Contact representa un tercero de los documentos: proveedor o cliente.
type Contact struct {
	ID        string
	Kind      string // vendor | customer
	Name      string
	TaxID     string // NIT o Cédula
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
