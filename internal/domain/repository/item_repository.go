package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magazzino-pro/magazzino-api/internal/domain/entity"
)

// ItemFilter filtri di consultazione per il listato articoli.
type ItemFilter struct {
	Search         string // ricerca parziale sul nome, case-insensitive
	Category       string // corrispondenza esatta
	UnderStockOnly bool
	SortBy         string // name | category | stock_quantity | is_under_min_stock
	SortOrder      string // asc | desc
}

// ItemRepository definisce la porta di persistenza per Item (DIP).
// I campi derivati (giacenza, valore, sotto scorta) sono sempre ricalcolati
// come fold sui movimenti alla lettura, mai materializzati.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	GetByName(ctx context.Context, name string) (*entity.Item, error)
	List(ctx context.Context, filter ItemFilter) ([]*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	UpdateUnitCost(ctx context.Context, itemID string, cost decimal.Decimal) error
	Delete(ctx context.Context, id string) error

	// GetForUpdate legge l'articolo bloccando la riga (SELECT FOR UPDATE):
	// serializza l'applicazione dei movimenti sullo stesso articolo.
	GetForUpdate(ctx context.Context, id string) (*entity.Item, error)

	// CurrentStock calcola la giacenza come somma dei movimenti dell'articolo
	// (zero se non ne esistono).
	CurrentStock(ctx context.Context, itemID string) (decimal.Decimal, error)

	// Categories e Units restituiscono i valori distinti per l'autocomplete.
	Categories(ctx context.Context, search string) ([]string, error)
	Units(ctx context.Context) ([]string, error)

	// CountMovementsSince conta i movimenti dell'articolo da una data in poi
	// (regola di eliminabilità: nessun movimento negli ultimi 12 mesi).
	CountMovementsSince(ctx context.Context, itemID string, since time.Time) (int, error)
}
