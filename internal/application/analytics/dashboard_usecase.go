// Package analytics contiene i casi d'uso di sintesi per il dashboard.
package analytics

import (
	"context"
	"fmt"

	"github.com/magazzino-pro/magazzino-api/internal/application/dto"
	"github.com/magazzino-pro/magazzino-api/internal/domain/repository"
)

// DashboardUseCase calcola gli indicatori aggregati del magazzino.
// Fonte dati: StatsRepository (consultazioni read-only).
type DashboardUseCase struct {
	statsRepo repository.StatsRepository
}

// NewDashboardUseCase costruisce il caso d'uso.
func NewDashboardUseCase(statsRepo repository.StatsRepository) *DashboardUseCase {
	return &DashboardUseCase{statsRepo: statsRepo}
}

// GetStats restituisce valore totale, conteggio sotto scorta, totale articoli
// e articoli a giacenza zero.
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	stats, err := uc.statsRepo.GetDashboardStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: statistiche magazzino: %w", err)
	}
	out := dto.NewDashboardStatsResponse(stats)
	return &out, nil
}
