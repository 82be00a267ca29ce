// Package export contiene il caso d'uso di export: costruzione dello snapshot
// (inventario completo + finestra movimenti 12 mesi) e generazione del
// workbook tramite il motore di dominio.
package export

import (
	"context"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"

	"github.com/magazzino-pro/magazzino-api/internal/application/dto"
	domexport "github.com/magazzino-pro/magazzino-api/internal/domain/export"
	"github.com/magazzino-pro/magazzino-api/internal/domain/repository"
)

// Finestra storico per l'export: ultimi 12 mesi, limite alto da export.
const (
	exportWindowDays   = 365
	exportMaxMovements = 10000
)

// UseCase costruisce snapshot e artefatti di export.
type UseCase struct {
	itemRepo repository.ItemRepository
	movRepo  repository.MovementRepository
	now      func() time.Time
}

// NewUseCase costruisce il caso d'uso. now è iniettabile nei test per un
// nome file deterministico.
func NewUseCase(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) *UseCase {
	return &UseCase{itemRepo: itemRepo, movRepo: movRepo, now: time.Now}
}

// Snapshot legge inventario e movimenti in un'unica passata logica. Ordine
// righe determinato dallo store: articoli per nome ascendente, movimenti in
// ordine cronologico inverso; il motore di export non riordina.
func (uc *UseCase) Snapshot(ctx context.Context) (*domexport.Snapshot, error) {
	today := uc.now()
	periodStart := today.AddDate(0, 0, -exportWindowDays)

	items, err := uc.itemRepo.List(ctx, repository.ItemFilter{SortBy: "name", SortOrder: "asc"})
	if err != nil {
		return nil, err
	}
	movements, _, err := uc.movRepo.List(ctx, repository.MovementFilter{
		FromDate: periodStart,
		ToDate:   today,
		Limit:    exportMaxMovements,
	})
	if err != nil {
		return nil, err
	}

	snap := &domexport.Snapshot{
		ExportDate:  today,
		PeriodStart: periodStart,
		PeriodEnd:   today,
	}
	for _, item := range items {
		snap.Inventory = append(snap.Inventory, *item)
	}
	for _, mov := range movements {
		snap.Movements = append(snap.Movements, *mov)
	}
	return snap, nil
}

// Preview restituisce lo snapshot come DTO per la generazione lato client.
func (uc *UseCase) Preview(ctx context.Context) (*dto.ExportPreviewResponse, error) {
	snap, err := uc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	out := &dto.ExportPreviewResponse{
		ExportDate:  snap.ExportDate.Format("2006-01-02"),
		PeriodStart: snap.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   snap.PeriodEnd.Format("2006-01-02"),
		Inventory:   make([]dto.ItemResponse, 0, len(snap.Inventory)),
		Movements:   make([]dto.MovementResponse, 0, len(snap.Movements)),
	}
	for i := range snap.Inventory {
		out.Inventory = append(out.Inventory, dto.NewItemResponse(&snap.Inventory[i]))
	}
	for i := range snap.Movements {
		out.Movements = append(out.Movements, dto.NewMovementResponse(&snap.Movements[i]))
	}
	return out, nil
}

// Workbook genera il workbook a due fogli e il nome file contrattuale
// (magazzino_YYYYMMDD.xlsx sulla data di generazione).
func (uc *UseCase) Workbook(ctx context.Context, tag language.Tag) (*excelize.File, string, error) {
	snap, err := uc.Snapshot(ctx)
	if err != nil {
		return nil, "", err
	}
	f, err := domexport.BuildWorkbook(*snap, domexport.ForTag(tag))
	if err != nil {
		return nil, "", err
	}
	return f, domexport.Filename(snap.ExportDate), nil
}
