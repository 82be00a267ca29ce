package postgres

import (
	"context"
	"fmt"

	"github.com/magazzino-pro/magazzino-api/internal/domain/entity"
	"github.com/magazzino-pro/magazzino-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementazione append-only di MovementRepository su PostgreSQL.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository costruisce l'adattatore di persistenza movimenti.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserisce il movimento. La quantità arriva già con il segno
// applicato dal caso d'uso (negativa per lo scarico).
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (id, item_id, kind, quantity, movement_date, unit_cost_override, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ItemID, m.Kind, m.Quantity, m.MovementDate,
		m.UnitCostOverride, m.Note, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// List restituisce i movimenti con nome e unità dell'articolo, più il totale
// per la paginazione. Ordine: più recenti prima.
func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.MovementDetail, int, error) {
	base := ` FROM movements m JOIN items i ON i.id = m.item_id`
	var conds []string
	var args []any

	if !filter.FromDate.IsZero() {
		args = append(args, filter.FromDate)
		conds = append(conds, fmt.Sprintf("m.movement_date >= $%d", len(args)))
	}
	if !filter.ToDate.IsZero() {
		args = append(args, filter.ToDate)
		conds = append(conds, fmt.Sprintf("m.movement_date <= $%d", len(args)))
	}
	if filter.ItemID != "" {
		args = append(args, filter.ItemID)
		conds = append(conds, fmt.Sprintf("m.item_id = $%d", len(args)))
	}
	if filter.Kind != "" {
		args = append(args, filter.Kind)
		conds = append(conds, fmt.Sprintf("m.kind = $%d", len(args)))
	}
	for i, cond := range conds {
		if i == 0 {
			base += " WHERE " + cond
		} else {
			base += " AND " + cond
		}
	}

	var total int
	if err := r.q.QueryRow(ctx, "SELECT COUNT(*)"+base, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	query := `
		SELECT m.id, m.item_id, m.kind, m.quantity, m.movement_date,
		       m.unit_cost_override, COALESCE(m.note, ''), m.created_at,
		       i.name, i.unit` + base + `
		ORDER BY m.created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.MovementDetail
	for rows.Next() {
		var d entity.MovementDetail
		err := rows.Scan(
			&d.ID, &d.ItemID, &d.Kind, &d.Quantity, &d.MovementDate,
			&d.UnitCostOverride, &d.Note, &d.CreatedAt,
			&d.ItemName, &d.ItemUnit,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &d)
	}
	return list, total, rows.Err()
}

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultazioni aggregate per il dashboard.
type StatsRepo struct {
	q Querier
}

// NewStatsRepository costruisce l'adattatore delle statistiche.
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

// GetDashboardStats calcola tutti gli indicatori in una sola query sul
// fold delle giacenze.
func (r *StatsRepo) GetDashboardStats(ctx context.Context) (*entity.DashboardStats, error) {
	query := `
		WITH stock AS (
			SELECT i.id,
			       COALESCE(SUM(m.quantity), 0) AS stock_quantity,
			       i.min_stock, i.unit_cost
			FROM items i
			LEFT JOIN movements m ON m.item_id = i.id
			GROUP BY i.id
		)
		SELECT COALESCE(SUM(stock_quantity * unit_cost), 0)            AS total_value,
		       COUNT(*) FILTER (WHERE stock_quantity < min_stock)      AS under_stock,
		       COUNT(*)                                                AS total_items,
		       COUNT(*) FILTER (WHERE stock_quantity = 0)              AS zero_stock
		FROM stock`
	var s entity.DashboardStats
	err := r.q.QueryRow(ctx, query).Scan(
		&s.TotalWarehouseValue, &s.UnderStockCount, &s.TotalItemsCount, &s.ZeroStockCount,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &s, nil
}
