package inventory

import (
	"context"

	"github.com/magazzino-pro/magazzino-api/internal/domain/repository"
)

// TxRunner esegue una funzione dentro una transazione DB, passando repository
// legati a quella tx. Garantisce atomicità alla registrazione dei movimenti.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
	) error) error
}
