package documents

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción de BD.
// El motor solo muta saldos, libro y reservas a través de estos repos.
type TxRepos struct {
	Documents    repository.DocumentRepository
	Balances     repository.StockBalanceRepository
	Ledger       repository.LedgerRepository
	Reservations repository.ReservationRepository
	Products     repository.ProductRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Commit si fn devuelve nil, Rollback si no:
// garantiza que libro, saldo y reserva cambien como una sola unidad atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
