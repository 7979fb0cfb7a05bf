package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBalanceDTO saldo de un producto en una bodega/ubicación.
type StockBalanceDTO struct {
	ProductID         string          `json:"product_id"`
	WarehouseID       string          `json:"warehouse_id"`
	Location          string          `json:"location,omitempty"`
	Quantity          decimal.Decimal `json:"quantity"`
	ReservedQuantity  decimal.Decimal `json:"reserved_quantity"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// StockBalanceListResponse listado paginado de saldos.
type StockBalanceListResponse struct {
	Balances   []StockBalanceDTO `json:"balances"`
	Pagination Pagination        `json:"pagination"`
}

// LedgerEntryDTO asiento del libro de inventario.
type LedgerEntryDTO struct {
	ID            string          `json:"id"`
	DocumentID    string          `json:"document_id"`
	LineNo        int             `json:"line_no"`
	MovementType  string          `json:"movement_type"`
	ProductID     string          `json:"product_id"`
	WarehouseID   string          `json:"warehouse_id"`
	Location      string          `json:"location,omitempty"`
	FromWarehouse string          `json:"from_warehouse,omitempty"`
	ToWarehouse   string          `json:"to_warehouse,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	BeforeQty     decimal.Decimal `json:"before_qty"`
	AfterQty      decimal.Decimal `json:"after_qty"`
	PerformedBy   string          `json:"performed_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// LedgerListResponse listado paginado de asientos.
type LedgerListResponse struct {
	Entries    []LedgerEntryDTO `json:"entries"`
	Pagination Pagination       `json:"pagination"`
}

// ReconciliationDTO resultado de contrastar el saldo contra la suma del libro.
type ReconciliationDTO struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Location    string          `json:"location,omitempty"`
	BalanceQty  decimal.Decimal `json:"balance_qty"`
	LedgerSum   decimal.Decimal `json:"ledger_sum"`
	Consistent  bool            `json:"consistent"`
}

// ReorderSuggestionDTO producto bajo punto de reorden con cantidad sugerida de pedido.
type ReorderSuggestionDTO struct {
	ProductID         string          `json:"product_id"`
	SKU               string          `json:"sku"`
	ProductName       string          `json:"product_name"`
	WarehouseID       string          `json:"warehouse_id"`
	Location          string          `json:"location,omitempty"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	ReorderPoint      decimal.Decimal `json:"reorder_point"`
	IdealStock        decimal.Decimal `json:"ideal_stock"`
	SuggestedOrderQty decimal.Decimal `json:"suggested_order_qty"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	EstimatedCost     decimal.Decimal `json:"estimated_order_cost"`
	Priority          int             `json:"priority"`
}
