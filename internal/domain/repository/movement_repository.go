package repository

import (
	"context"
	"time"

	"github.com/magazzino-pro/magazzino-api/internal/domain/entity"
)

// MovementFilter finestra e filtri per lo storico movimenti.
type MovementFilter struct {
	FromDate time.Time
	ToDate   time.Time
	ItemID   string // vuoto = tutti
	Kind     string // vuoto = tutti
	Limit    int
	Offset   int
}

// MovementRepository definisce la porta di persistenza per Movement.
// I movimenti sono fatti immutabili append-only: nessun update, nessuna delete.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error

	// List restituisce i movimenti della finestra in ordine cronologico
	// inverso, con il totale per la paginazione.
	List(ctx context.Context, filter MovementFilter) ([]*entity.MovementDetail, int, error)
}

// StatsRepository consultazioni read-only per il dashboard.
type StatsRepository interface {
	// GetDashboardStats calcola valore totale magazzino, articoli sotto
	// scorta, totale articoli e articoli a giacenza zero in una sola query.
	GetDashboardStats(ctx context.Context) (*entity.DashboardStats, error)
}
