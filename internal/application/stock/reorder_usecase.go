package stock

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// ReorderUseCase calcula las vistas derivadas de reposición: productos bajo
// punto de reorden y agotados. Solo lectura; no participa en invariantes y
// puede computarse de una foto desactualizada (alimenta alertas, no stock).
type ReorderUseCase struct {
	balanceRepo repository.StockBalanceRepository
}

// NewReorderUseCase construye el caso de uso de reposición.
func NewReorderUseCase(balanceRepo repository.StockBalanceRepository) *ReorderUseCase {
	return &ReorderUseCase{balanceRepo: balanceRepo}
}

// NeedsReplenishment devuelve los saldos con 0 < cantidad <= punto de reorden
// en la bodega indicada (vacía = todas), con la cantidad sugerida de pedido:
// stock ideal = 1.5 x punto de reorden, pedido = ideal - actual.
// Priorizados por mayor déficit primero.
func (uc *ReorderUseCase) NeedsReplenishment(ctx context.Context, warehouseID string) ([]dto.ReorderSuggestionDTO, error) {
	items, err := uc.balanceRepo.ListBelowReorder(warehouseID)
	if err != nil {
		return nil, err
	}
	return uc.toSuggestions(items), nil
}

// OutOfStock devuelve los saldos agotados (cantidad <= 0).
func (uc *ReorderUseCase) OutOfStock(ctx context.Context, warehouseID string) ([]dto.ReorderSuggestionDTO, error) {
	items, err := uc.balanceRepo.ListOutOfStock(warehouseID)
	if err != nil {
		return nil, err
	}
	return uc.toSuggestions(items), nil
}

func (uc *ReorderUseCase) toSuggestions(items []repository.ReorderItem) []dto.ReorderSuggestionDTO {
	suggestions := make([]dto.ReorderSuggestionDTO, 0, len(items))
	for _, item := range items {
		idealStock := item.ReorderPoint.Mul(decimal.NewFromFloat(1.5))
		suggestedQty := idealStock.Sub(item.CurrentStock)
		if suggestedQty.LessThanOrEqual(decimal.Zero) {
			suggestedQty = decimal.Zero
		}
		suggestions = append(suggestions, dto.ReorderSuggestionDTO{
			ProductID:         item.ProductID,
			SKU:               item.SKU,
			ProductName:       item.ProductName,
			WarehouseID:       item.WarehouseID,
			Location:          item.Location,
			CurrentStock:      item.CurrentStock,
			ReorderPoint:      item.ReorderPoint,
			IdealStock:        idealStock,
			SuggestedOrderQty: suggestedQty,
			UnitCost:          item.UnitCost,
			EstimatedCost:     suggestedQty.Mul(item.UnitCost),
		})
	}

	// Mayor déficit absoluto primero
	sort.SliceStable(suggestions, func(i, j int) bool {
		defA := suggestions[i].ReorderPoint.Sub(suggestions[i].CurrentStock)
		defB := suggestions[j].ReorderPoint.Sub(suggestions[j].CurrentStock)
		return defA.GreaterThan(defB)
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions
}
