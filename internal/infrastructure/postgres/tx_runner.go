package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/magazzino-pro/magazzino-api/internal/application/inventory"
	"github.com/magazzino-pro/magazzino-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner esegue funzioni applicative dentro una transazione pgx,
// passando repository legati alla tx.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner costruisce il runner transazionale sul pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run apre la transazione, esegue fn con repository tx-bound e committa.
// Qualsiasi errore di fn provoca rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(NewItemRepository(tx), NewMovementRepository(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
