package stock_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/application/stock"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// fakeBalanceRepo devuelve resultados enlatados de las consultas de reposición.
type fakeBalanceRepo struct {
	below []repository.ReorderItem
	out   []repository.ReorderItem
}

var _ repository.StockBalanceRepository = (*fakeBalanceRepo)(nil)

func (f *fakeBalanceRepo) Get(key entity.BalanceKey) (*entity.StockBalance, error) {
	return &entity.StockBalance{ProductID: key.ProductID, WarehouseID: key.WarehouseID, Location: key.Location}, nil
}
func (f *fakeBalanceRepo) GetForUpdate(key entity.BalanceKey) (*entity.StockBalance, error) {
	return f.Get(key)
}
func (f *fakeBalanceRepo) Upsert(*entity.StockBalance) error { return nil }
func (f *fakeBalanceRepo) ListByWarehouse(string, int, int) ([]*entity.StockBalance, error) {
	return nil, nil
}
func (f *fakeBalanceRepo) CountByWarehouse(string) (int, error) { return 0, nil }
func (f *fakeBalanceRepo) ListBelowReorder(string) ([]repository.ReorderItem, error) {
	return f.below, nil
}
func (f *fakeBalanceRepo) ListOutOfStock(string) ([]repository.ReorderItem, error) {
	return f.out, nil
}

func item(productID string, current, reorderPoint, cost int64) repository.ReorderItem {
	return repository.ReorderItem{
		ProductID:    productID,
		SKU:          "SKU-" + productID,
		ProductName:  "Producto " + productID,
		WarehouseID:  "wh-1",
		CurrentStock: decimal.NewFromInt(current),
		ReorderPoint: decimal.NewFromInt(reorderPoint),
		UnitCost:     decimal.NewFromInt(cost),
	}
}

func TestNeedsReplenishment_CalculaPedidoSugerido(t *testing.T) {
	repo := &fakeBalanceRepo{below: []repository.ReorderItem{item("p1", 4, 10, 1000)}}
	uc := stock.NewReorderUseCase(repo)

	list, err := uc.NeedsReplenishment(context.Background(), "wh-1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	s := list[0]
	// ideal = 1.5 x punto de reorden = 15; pedido = 15 - 4 = 11
	assert.True(t, decimal.NewFromInt(15).Equal(s.IdealStock), "ideal fue %s", s.IdealStock)
	assert.True(t, decimal.NewFromInt(11).Equal(s.SuggestedOrderQty), "pedido fue %s", s.SuggestedOrderQty)
	assert.True(t, decimal.NewFromInt(11000).Equal(s.EstimatedCost))
	assert.Equal(t, 1, s.Priority)
}

func TestNeedsReplenishment_PriorizaMayorDeficit(t *testing.T) {
	repo := &fakeBalanceRepo{below: []repository.ReorderItem{
		item("casi-lleno", 9, 10, 100), // déficit 1
		item("critico", 1, 10, 100),    // déficit 9
		item("medio", 5, 10, 100),      // déficit 5
	}}
	uc := stock.NewReorderUseCase(repo)

	list, err := uc.NeedsReplenishment(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "critico", list[0].ProductID)
	assert.Equal(t, "medio", list[1].ProductID)
	assert.Equal(t, "casi-lleno", list[2].ProductID)
	assert.Equal(t, []int{1, 2, 3}, []int{list[0].Priority, list[1].Priority, list[2].Priority})
}

func TestNeedsReplenishment_EnElPuntoExactoSugiereMedioPunto(t *testing.T) {
	// current == reorderPoint es el caso borde incluido: pedido = 0.5 x punto
	repo := &fakeBalanceRepo{below: []repository.ReorderItem{item("p1", 10, 10, 200)}}
	uc := stock.NewReorderUseCase(repo)

	list, err := uc.NeedsReplenishment(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, decimal.NewFromInt(5).Equal(list[0].SuggestedOrderQty))
}

func TestNeedsReplenishment_PedidoNuncaNegativo(t *testing.T) {
	// Punto de reorden 2 → ideal 3; si el stock actual ya supera el ideal la
	// sugerencia se recorta a cero en lugar de salir negativa.
	repo := &fakeBalanceRepo{below: []repository.ReorderItem{item("p1", 4, 2, 100)}}
	uc := stock.NewReorderUseCase(repo)

	list, err := uc.NeedsReplenishment(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].SuggestedOrderQty.IsZero())
	assert.True(t, list[0].EstimatedCost.IsZero())
}

func TestOutOfStock_ListaAgotados(t *testing.T) {
	repo := &fakeBalanceRepo{out: []repository.ReorderItem{item("p1", 0, 10, 500)}}
	uc := stock.NewReorderUseCase(repo)

	list, err := uc.OutOfStock(context.Background(), "wh-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].CurrentStock.IsZero())
	// pedido = 1.5 x 10 - 0 = 15
	assert.True(t, decimal.NewFromInt(15).Equal(list[0].SuggestedOrderQty))
}
