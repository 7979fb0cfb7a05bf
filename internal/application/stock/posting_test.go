package stock_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/application/stock"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

// postingBalanceRepo sostiene un único saldo y registra los Upsert recibidos.
type postingBalanceRepo struct {
	balance *entity.StockBalance
	upserts int
}

var _ repository.StockBalanceRepository = (*postingBalanceRepo)(nil)

func (r *postingBalanceRepo) Get(entity.BalanceKey) (*entity.StockBalance, error) {
	return r.balance, nil
}
func (r *postingBalanceRepo) GetForUpdate(entity.BalanceKey) (*entity.StockBalance, error) {
	return r.balance, nil
}
func (r *postingBalanceRepo) Upsert(b *entity.StockBalance) error {
	r.balance = b
	r.upserts++
	return nil
}
func (r *postingBalanceRepo) ListByWarehouse(string, int, int) ([]*entity.StockBalance, error) {
	return nil, nil
}
func (r *postingBalanceRepo) CountByWarehouse(string) (int, error) { return 0, nil }
func (r *postingBalanceRepo) ListBelowReorder(string) ([]repository.ReorderItem, error) {
	return nil, nil
}
func (r *postingBalanceRepo) ListOutOfStock(string) ([]repository.ReorderItem, error) {
	return nil, nil
}

// recordingLedgerRepo acumula los asientos creados.
type recordingLedgerRepo struct {
	entries []*entity.LedgerEntry
}

var _ repository.LedgerRepository = (*recordingLedgerRepo)(nil)

func (r *recordingLedgerRepo) Create(e *entity.LedgerEntry) error {
	r.entries = append(r.entries, e)
	return nil
}
func (r *recordingLedgerRepo) List(repository.LedgerFilter, int, int) ([]*entity.LedgerEntry, error) {
	return r.entries, nil
}
func (r *recordingLedgerRepo) Count(repository.LedgerFilter) (int, error) {
	return len(r.entries), nil
}
func (r *recordingLedgerRepo) SumByKey(key entity.BalanceKey) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, e := range r.entries {
		if e.Key() == key {
			sum = sum.Add(e.Quantity)
		}
	}
	return sum, nil
}

func postingKey() entity.BalanceKey {
	return entity.BalanceKey{ProductID: "prod-1", WarehouseID: "wh-1"}
}

func newPostingRepos(qty int64) (*postingBalanceRepo, *recordingLedgerRepo) {
	key := postingKey()
	balances := &postingBalanceRepo{balance: &entity.StockBalance{
		ProductID:   key.ProductID,
		WarehouseID: key.WarehouseID,
		Quantity:    decimal.NewFromInt(qty),
	}}
	return balances, &recordingLedgerRepo{}
}

// ──────────────────────────────────────────────────────────────────────────────
// PostMovement — última barrera contra saldos negativos
// ──────────────────────────────────────────────────────────────────────────────

// Un movimiento que dejaría el saldo bajo cero se rechaza aunque nunca haya
// pasado por reserva (ajustes negativos entran por aquí directo): el asiento
// no se escribe y el saldo queda intacto.
func TestPostMovement_SaldoQuedariaNegativoRechazaSinAsentar(t *testing.T) {
	balances, ledger := newPostingRepos(5)
	poster := stock.NewPoster(logger.Nop())

	_, err := poster.PostMovement(balances, ledger, stock.Movement{
		Key:          postingKey(),
		Quantity:     decimal.NewFromInt(-8),
		MovementType: entity.MovementTypeADJUSTMENT,
		DocumentID:   "doc-1",
		LineNo:       1,
		PerformedBy:  "user-1",
		At:           time.Now(),
	})

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, ledger.entries, "el rechazo no debe dejar asiento en el libro")
	assert.Equal(t, 0, balances.upserts, "el rechazo no debe tocar el saldo")
	assert.True(t, decimal.NewFromInt(5).Equal(balances.balance.Quantity))
}

// El consumo exacto del saldo (after = 0) es válido.
func TestPostMovement_ConsumirHastaCeroEsValido(t *testing.T) {
	balances, ledger := newPostingRepos(5)
	poster := stock.NewPoster(logger.Nop())

	entry, err := poster.PostMovement(balances, ledger, stock.Movement{
		Key:          postingKey(),
		Quantity:     decimal.NewFromInt(-5),
		MovementType: entity.MovementTypeOUT,
		DocumentID:   "doc-1",
		LineNo:       1,
		PerformedBy:  "user-1",
		At:           time.Now(),
	})

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5).Equal(entry.BeforeQty))
	assert.True(t, entry.AfterQty.IsZero())
	assert.True(t, balances.balance.Quantity.IsZero())
	require.Len(t, ledger.entries, 1)
}

// El asiento y el saldo se mueven juntos: before/after del asiento reflejan el
// saldo previo y el resultante, y la suma del libro coincide con el saldo.
func TestPostMovement_AsientoYSaldoConsistentes(t *testing.T) {
	balances, ledger := newPostingRepos(0)
	poster := stock.NewPoster(logger.Nop())

	entry, err := poster.PostMovement(balances, ledger, stock.Movement{
		Key:          postingKey(),
		Quantity:     decimal.NewFromInt(10),
		MovementType: entity.MovementTypeIN,
		DocumentID:   "doc-1",
		LineNo:       1,
		PerformedBy:  "user-1",
		At:           time.Now(),
	})

	require.NoError(t, err)
	assert.True(t, entry.BeforeQty.IsZero())
	assert.True(t, decimal.NewFromInt(10).Equal(entry.AfterQty))

	sum, err := ledger.SumByKey(postingKey())
	require.NoError(t, err)
	assert.True(t, sum.Equal(balances.balance.Quantity))
}
