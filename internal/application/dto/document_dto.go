package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentLineRequest línea de documento en la creación.
type DocumentLineRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	UOM       string          `json:"uom"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// CreateDocumentRequest cuerpo para crear un documento en DRAFT.
// WarehouseID es la bodega principal (origen en TRANSFER); ToWarehouseID solo
// aplica a TRANSFER; ContactID es obligatorio en RECEIPT/DELIVERY.
type CreateDocumentRequest struct {
	Type          string                `json:"type" validate:"required"`
	Reference     string                `json:"reference"` // vacío = se genera
	WarehouseID   string                `json:"warehouse_id" validate:"required"`
	ToWarehouseID string                `json:"to_warehouse_id"`
	FromLocation  string                `json:"from_location"`
	ToLocation    string                `json:"to_location"`
	ContactID     string                `json:"contact_id"`
	Lines         []DocumentLineRequest `json:"lines" validate:"required,min=1"`
}

// CancelDocumentRequest cuerpo para cancelar o rechazar un documento.
type CancelDocumentRequest struct {
	Reason string `json:"reason"`
}

// DocumentLineResponse línea de documento en respuestas.
type DocumentLineResponse struct {
	LineNo    int             `json:"line_no"`
	ProductID string          `json:"product_id"`
	UOM       string          `json:"uom"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// DocumentResponse representación HTTP de un documento.
type DocumentResponse struct {
	ID             string                 `json:"id"`
	Type           string                 `json:"type"`
	Reference      string                 `json:"reference"`
	Status         string                 `json:"status"`
	WarehouseID    string                 `json:"warehouse_id"`
	ToWarehouseID  string                 `json:"to_warehouse_id,omitempty"`
	FromLocation   string                 `json:"from_location,omitempty"`
	ToLocation     string                 `json:"to_location,omitempty"`
	ContactID      string                 `json:"contact_id,omitempty"`
	Lines          []DocumentLineResponse `json:"lines"`
	CreatedBy      string                 `json:"created_by"`
	ValidatedBy    string                 `json:"validated_by,omitempty"`
	CanceledReason string                 `json:"canceled_reason,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// DocumentListResponse listado paginado de documentos.
type DocumentListResponse struct {
	Documents  []DocumentResponse `json:"documents"`
	Pagination Pagination         `json:"pagination"`
}
