package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/magazzino-pro/magazzino-api/internal/domain"
	"github.com/magazzino-pro/magazzino-api/internal/domain/entity"
	"github.com/magazzino-pro/magazzino-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementazione di ItemRepository su PostgreSQL (usabile con pool o tx).
// I campi derivati (giacenza, valore, sotto scorta, ultimo movimento) sono
// calcolati a ogni lettura come fold sulla tabella movements: read model
// event-sourced, nessuna materializzazione.
type ItemRepo struct {
	q Querier
}

// NewItemRepository costruisce l'adattatore di persistenza. Passare pool o tx.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// selectWithStock è la proiezione articolo + derivati condivisa dalle letture.
const selectWithStock = `
	WITH stock AS (
		SELECT item_id,
		       COALESCE(SUM(quantity), 0) AS stock_quantity,
		       MAX(created_at)            AS last_movement_at
		FROM movements
		GROUP BY item_id
	)
	SELECT i.id, i.name, COALESCE(i.category, ''), i.unit, COALESCE(i.notes, ''),
	       i.min_stock, i.unit_cost,
	       COALESCE(s.stock_quantity, 0)                     AS stock_quantity,
	       COALESCE(s.stock_quantity, 0) * i.unit_cost       AS stock_value,
	       COALESCE(s.stock_quantity, 0) < i.min_stock       AS is_under_min_stock,
	       s.last_movement_at, i.created_at, i.updated_at
	FROM items i
	LEFT JOIN stock s ON s.item_id = i.id`

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(
		&it.ID, &it.Name, &it.Category, &it.Unit, &it.Notes,
		&it.MinStock, &it.UnitCost,
		&it.StockQuantity, &it.StockValue, &it.IsUnderMinStock,
		&it.LastMovementAt, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create persiste un nuovo articolo. Il nome è unico case-insensitive
// (indice unico su lower(name)).
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (id, name, category, unit, notes, min_stock, unit_cost, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Category, item.Unit, item.Notes,
		item.MinStock, item.UnitCost, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID legge un articolo con i campi derivati (nil se non esiste).
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, selectWithStock+` WHERE i.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// GetByName legge un articolo per nome, case-insensitive (nil se non esiste).
func (r *ItemRepo) GetByName(ctx context.Context, name string) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, selectWithStock+` WHERE lower(i.name) = lower($1)`, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item by name: %w", err)
	}
	return it, nil
}

// sortColumns whitelist delle chiavi di ordinamento ammesse dal filtro.
var sortColumns = map[string]string{
	"name":               "i.name",
	"category":           "i.category",
	"stock_quantity":     "stock_quantity",
	"is_under_min_stock": "is_under_min_stock",
}

// List restituisce gli articoli filtrati e ordinati con i campi derivati.
func (r *ItemRepo) List(ctx context.Context, filter repository.ItemFilter) ([]*entity.Item, error) {
	query := selectWithStock
	var conds []string
	var args []any

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("i.name ILIKE $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("i.category = $%d", len(args)))
	}
	if filter.UnderStockOnly {
		conds = append(conds, "COALESCE(s.stock_quantity, 0) < i.min_stock")
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "i.name"
	}
	direction := "ASC"
	if filter.SortOrder == "desc" {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", column, direction)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Update aggiorna l'anagrafica. La giacenza non si tocca mai da qui: cambia
// solo attraverso i movimenti.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE items
		SET name = $2, category = NULLIF($3, ''), unit = $4, notes = NULLIF($5, ''),
		    min_stock = $6, unit_cost = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Category, item.Unit, item.Notes,
		item.MinStock, item.UnitCost, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// UpdateUnitCost aggiorna solo il costo unitario (usato dal carico con override).
func (r *ItemRepo) UpdateUnitCost(ctx context.Context, itemID string, cost decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE items SET unit_cost = $2, updated_at = now() WHERE id = $1`,
		itemID, cost,
	)
	if err != nil {
		return fmt.Errorf("update unit cost: %w", err)
	}
	return nil
}

// Delete elimina un articolo. Le regole di eliminabilità stanno nel caso d'uso.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// GetForUpdate legge l'anagrafica bloccando la riga (SELECT FOR UPDATE).
// Serializza l'applicazione di movimenti concorrenti sullo stesso articolo.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	query := `
		SELECT id, name, COALESCE(category, ''), unit, COALESCE(notes, ''),
		       min_stock, unit_cost, created_at, updated_at
		FROM items WHERE id = $1
		FOR UPDATE`
	var it entity.Item
	err := r.q.QueryRow(ctx, query, id).Scan(
		&it.ID, &it.Name, &it.Category, &it.Unit, &it.Notes,
		&it.MinStock, &it.UnitCost, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item for update: %w", err)
	}
	return &it, nil
}

// CurrentStock calcola la giacenza come somma dei movimenti (zero se nessuno).
func (r *ItemRepo) CurrentStock(ctx context.Context, itemID string) (decimal.Decimal, error) {
	var stock decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM movements WHERE item_id = $1`,
		itemID,
	).Scan(&stock)
	if err != nil {
		return decimal.Zero, fmt.Errorf("current stock: %w", err)
	}
	return stock, nil
}

// Categories valori distinti di categoria per l'autocomplete.
func (r *ItemRepo) Categories(ctx context.Context, search string) ([]string, error) {
	query := `SELECT DISTINCT category FROM items WHERE category IS NOT NULL`
	var args []any
	if search != "" {
		args = append(args, "%"+search+"%")
		query += ` AND category ILIKE $1`
	}
	query += ` ORDER BY category`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// Units valori distinti di unità di misura per l'autocomplete.
func (r *ItemRepo) Units(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT DISTINCT unit FROM items ORDER BY unit`)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// CountMovementsSince conta i movimenti dell'articolo da una data in poi.
func (r *ItemRepo) CountMovementsSince(ctx context.Context, itemID string, since time.Time) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM movements WHERE item_id = $1 AND movement_date >= $2`,
		itemID, since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return count, nil
}
