package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/domain"
)

// Tipos de documento de inventario.
const (
	DocTypeRECEIPT    = "RECEIPT"    // entrada de mercancía (proveedor)
	DocTypeDELIVERY   = "DELIVERY"   // salida de mercancía (cliente)
	DocTypeTRANSFER   = "TRANSFER"   // traslado entre bodegas
	DocTypeADJUSTMENT = "ADJUSTMENT" // ajuste de inventario
)

// Estados del ciclo de vida de un documento.
// DRAFT → WAITING (opcional) → READY → DONE; CANCELED alcanzable desde
// cualquier estado no terminal.
const (
	DocStatusDRAFT    = "DRAFT"
	DocStatusWAITING  = "WAITING"
	DocStatusREADY    = "READY"
	DocStatusDONE     = "DONE"
	DocStatusCANCELED = "CANCELED"
)

// DocumentLine es una línea de documento: producto, unidad, cantidad y costo.
// Quantity es positiva salvo en ADJUSTMENT, donde el signo indica la dirección
// del ajuste (positivo entra, negativo sale). UnitCost nunca es negativo.
type DocumentLine struct {
	LineNo    int
	ProductID string
	UOM       string
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
}

// Document es la unidad transaccional del motor de inventario.
// Sus campos de estado solo se mutan a través de las transiciones del ciclo
// de vida; fuera de DRAFT únicamente los metadatos son editables.
type Document struct {
	ID              string
	Type            string
	Reference       string // único, legible (ej. RECEIPT-3f9a2c1d)
	Status          string
	WarehouseID     string // bodega principal (origen en TRANSFER)
	ToWarehouseID   string // destino, solo TRANSFER
	FromLocation    string // ubicación origen dentro de la bodega ("" = sin ubicación)
	ToLocation      string // ubicación destino
	ContactID       string // proveedor/cliente, obligatorio en RECEIPT/DELIVERY
	Lines           []DocumentLine
	CreatedBy       string
	ValidatedBy     string
	CanceledReason  string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ValidatedAt     *time.Time
	CompletedAt     *time.Time
}

// IsTerminal indica si el documento está en un estado final.
func (d *Document) IsTerminal() bool {
	return d.Status == DocStatusDONE || d.Status == DocStatusCANCELED
}

// CanSubmit: solo un borrador puede pasar a espera de aprobación.
func (d *Document) CanSubmit() bool {
	return d.Status == DocStatusDRAFT
}

// CanApprove: se aprueba desde DRAFT (aprobación directa) o WAITING.
func (d *Document) CanApprove() bool {
	return d.Status == DocStatusDRAFT || d.Status == DocStatusWAITING
}

// CanReject: solo documentos en espera pueden rechazarse.
func (d *Document) CanReject() bool {
	return d.Status == DocStatusWAITING
}

// CanComplete: únicamente READY → DONE; cualquier otro estado es conflicto.
func (d *Document) CanComplete() bool {
	return d.Status == DocStatusREADY
}

// CanCancel: cancelable desde cualquier estado no terminal.
func (d *Document) CanCancel() bool {
	return !d.IsTerminal()
}

// IsOutboundLine indica si la línea disminuye stock en la bodega origen y por
// tanto requiere reserva al aprobar: DELIVERY, TRANSFER (origen) o línea
// negativa de ADJUSTMENT. RECEIPT y ajustes positivos no reservan.
func (d *Document) IsOutboundLine(line DocumentLine) bool {
	switch d.Type {
	case DocTypeDELIVERY, DocTypeTRANSFER:
		return true
	case DocTypeADJUSTMENT:
		return line.Quantity.IsNegative()
	}
	return false
}

// Validate verifica la estructura del documento antes de crearlo:
// tipo conocido, líneas no vacías, cantidades y costos válidos y las partes
// obligatorias según el tipo.
func (d *Document) Validate() error {
	switch d.Type {
	case DocTypeRECEIPT, DocTypeDELIVERY:
		if d.WarehouseID == "" || d.ContactID == "" {
			return domain.ErrInvalidInput
		}
	case DocTypeTRANSFER:
		if d.WarehouseID == "" || d.ToWarehouseID == "" || d.WarehouseID == d.ToWarehouseID {
			return domain.ErrInvalidInput
		}
	case DocTypeADJUSTMENT:
		if d.WarehouseID == "" {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	if len(d.Lines) == 0 {
		return domain.ErrInvalidInput
	}
	for _, line := range d.Lines {
		if line.ProductID == "" {
			return domain.ErrInvalidInput
		}
		if line.UnitCost.IsNegative() {
			return domain.ErrInvalidInput
		}
		if d.Type == DocTypeADJUSTMENT {
			if line.Quantity.IsZero() {
				return domain.ErrInvalidInput
			}
		} else if !line.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	}
	return nil
}
