package stock

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// QueryUseCase consultas de solo lectura sobre saldos y libro de inventario.
// Lee fuera de transacción (pool): una foto levemente desfasada es aceptable
// para pantallas y reportes.
type QueryUseCase struct {
	balanceRepo repository.StockBalanceRepository
	ledgerRepo  repository.LedgerRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(balanceRepo repository.StockBalanceRepository, ledgerRepo repository.LedgerRepository) *QueryUseCase {
	return &QueryUseCase{balanceRepo: balanceRepo, ledgerRepo: ledgerRepo}
}

// GetBalance devuelve el saldo de una clave (cero si nunca ha tenido movimientos).
func (uc *QueryUseCase) GetBalance(ctx context.Context, key entity.BalanceKey) (*dto.StockBalanceDTO, error) {
	balance, err := uc.balanceRepo.Get(key)
	if err != nil {
		return nil, err
	}
	out := toBalanceDTO(balance)
	return &out, nil
}

// ListBalances lista los saldos de una bodega, paginados.
func (uc *QueryUseCase) ListBalances(ctx context.Context, warehouseID string, page dto.PageRequest) (*dto.StockBalanceListResponse, error) {
	page.DefaultPage()
	total, err := uc.balanceRepo.CountByWarehouse(warehouseID)
	if err != nil {
		return nil, err
	}
	balances, err := uc.balanceRepo.ListByWarehouse(warehouseID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockBalanceDTO, 0, len(balances))
	for _, b := range balances {
		out = append(out, toBalanceDTO(b))
	}
	return &dto.StockBalanceListResponse{
		Balances:   out,
		Pagination: dto.NewPagination(page.Page, page.Limit, total),
	}, nil
}

// ListLedger consulta el libro con filtros {tipo, producto, bodega} y paginación.
func (uc *QueryUseCase) ListLedger(ctx context.Context, filter repository.LedgerFilter, page dto.PageRequest) (*dto.LedgerListResponse, error) {
	page.DefaultPage()
	total, err := uc.ledgerRepo.Count(filter)
	if err != nil {
		return nil, err
	}
	entries, err := uc.ledgerRepo.List(filter, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	out := make([]dto.LedgerEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.LedgerEntryDTO{
			ID:            e.ID,
			DocumentID:    e.DocumentID,
			LineNo:        e.LineNo,
			MovementType:  e.MovementType,
			ProductID:     e.ProductID,
			WarehouseID:   e.WarehouseID,
			Location:      e.Location,
			FromWarehouse: e.FromWarehouse,
			ToWarehouse:   e.ToWarehouse,
			Quantity:      e.Quantity,
			BeforeQty:     e.BeforeQty,
			AfterQty:      e.AfterQty,
			PerformedBy:   e.PerformedBy,
			CreatedAt:     e.CreatedAt,
		})
	}
	return &dto.LedgerListResponse{
		Entries:    out,
		Pagination: dto.NewPagination(page.Page, page.Limit, total),
	}, nil
}

// Reconcile compara el saldo de una clave contra la suma de su libro. Es la
// verificación de auditoría: ambos números deben coincidir siempre.
func (uc *QueryUseCase) Reconcile(ctx context.Context, key entity.BalanceKey) (*dto.ReconciliationDTO, error) {
	balance, err := uc.balanceRepo.Get(key)
	if err != nil {
		return nil, err
	}
	ledgerSum, err := uc.ledgerRepo.SumByKey(key)
	if err != nil {
		return nil, err
	}
	return &dto.ReconciliationDTO{
		ProductID:   key.ProductID,
		WarehouseID: key.WarehouseID,
		Location:    key.Location,
		BalanceQty:  balance.Quantity,
		LedgerSum:   ledgerSum,
		Consistent:  balance.Quantity.Equal(ledgerSum),
	}, nil
}

func toBalanceDTO(b *entity.StockBalance) dto.StockBalanceDTO {
	return dto.StockBalanceDTO{
		ProductID:         b.ProductID,
		WarehouseID:       b.WarehouseID,
		Location:          b.Location,
		Quantity:          b.Quantity,
		ReservedQuantity:  b.ReservedQuantity,
		AvailableQuantity: b.Available(),
		UpdatedAt:         b.UpdatedAt,
	}
}
