package export

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/magazzino-pro/magazzino-api/internal/domain/entity"
	"github.com/magazzino-pro/magazzino-api/internal/domain/repository"
)

// Test in package per iniettare il clock e verificare la finestra richiesta
// allo store.

type fakeItemRepo struct {
	items      []*entity.Item
	lastFilter repository.ItemFilter
}

func (r *fakeItemRepo) List(_ context.Context, filter repository.ItemFilter) ([]*entity.Item, error) {
	r.lastFilter = filter
	return r.items, nil
}

func (r *fakeItemRepo) Create(context.Context, *entity.Item) error          { return nil }
func (r *fakeItemRepo) GetByID(context.Context, string) (*entity.Item, error)  { return nil, nil }
func (r *fakeItemRepo) GetByName(context.Context, string) (*entity.Item, error) { return nil, nil }
func (r *fakeItemRepo) Update(context.Context, *entity.Item) error          { return nil }
func (r *fakeItemRepo) UpdateUnitCost(context.Context, string, decimal.Decimal) error {
	return nil
}
func (r *fakeItemRepo) Delete(context.Context, string) error { return nil }
func (r *fakeItemRepo) GetForUpdate(context.Context, string) (*entity.Item, error) {
	return nil, nil
}
func (r *fakeItemRepo) CurrentStock(context.Context, string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (r *fakeItemRepo) Categories(context.Context, string) ([]string, error) { return nil, nil }
func (r *fakeItemRepo) Units(context.Context) ([]string, error)              { return nil, nil }
func (r *fakeItemRepo) CountMovementsSince(context.Context, string, time.Time) (int, error) {
	return 0, nil
}

type fakeMovRepo struct {
	movements  []*entity.MovementDetail
	lastFilter repository.MovementFilter
}

func (r *fakeMovRepo) Create(context.Context, *entity.Movement) error { return nil }

func (r *fakeMovRepo) List(_ context.Context, filter repository.MovementFilter) ([]*entity.MovementDetail, int, error) {
	r.lastFilter = filter
	return r.movements, len(r.movements), nil
}

func exportDate() time.Time {
	return time.Date(2026, 3, 25, 10, 30, 0, 0, time.UTC)
}

func newTestUseCase(itemRepo *fakeItemRepo, movRepo *fakeMovRepo) *UseCase {
	uc := NewUseCase(itemRepo, movRepo)
	uc.now = exportDate
	return uc
}

// TestSnapshot_Finestra12Mesi: la finestra movimenti richiesta allo store è
// esattamente un anno a ritroso dalla data di export e l'inventario arriva
// ordinato per nome.
func TestSnapshot_Finestra12Mesi(t *testing.T) {
	itemRepo := &fakeItemRepo{items: []*entity.Item{{ID: "a", Name: "Filtro olio"}}}
	movRepo := &fakeMovRepo{}
	uc := newTestUseCase(itemRepo, movRepo)

	snap, err := uc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, exportDate(), snap.ExportDate)
	assert.Equal(t, exportDate().AddDate(0, 0, -365), snap.PeriodStart)

	assert.Equal(t, "name", itemRepo.lastFilter.SortBy)
	assert.Equal(t, "asc", itemRepo.lastFilter.SortOrder)
	assert.Equal(t, exportDate().AddDate(0, 0, -365), movRepo.lastFilter.FromDate)
	assert.Equal(t, exportDate(), movRepo.lastFilter.ToDate)
	assert.Equal(t, exportMaxMovements, movRepo.lastFilter.Limit)

	require.Len(t, snap.Inventory, 1)
	assert.Equal(t, "Filtro olio", snap.Inventory[0].Name)
}

func TestWorkbook_NomeFileSullaDataDiExport(t *testing.T) {
	uc := newTestUseCase(&fakeItemRepo{}, &fakeMovRepo{})

	f, filename, err := uc.Workbook(context.Background(), language.Italian)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "magazzino_20260325.xlsx", filename)
	assert.Equal(t, []string{"Inventario", "Movimenti_ultimi_12_mesi"}, f.GetSheetList())
}

func TestPreview_StessiDatiDelWorkbook(t *testing.T) {
	qty := decimal.RequireFromString("12.5")
	itemRepo := &fakeItemRepo{items: []*entity.Item{{
		ID: "a", Name: "Filtro olio", Unit: "pz", StockQuantity: qty,
	}}}
	movRepo := &fakeMovRepo{movements: []*entity.MovementDetail{{
		Movement: entity.Movement{
			ID:           "m1",
			ItemID:       "a",
			Kind:         entity.MovementKindIN,
			Quantity:     qty,
			MovementDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		ItemName: "Filtro olio",
		ItemUnit: "pz",
	}}}
	uc := newTestUseCase(itemRepo, movRepo)

	out, err := uc.Preview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2026-03-25", out.ExportDate)
	assert.Equal(t, "2025-03-25", out.PeriodStart)
	require.Len(t, out.Inventory, 1)
	assert.Equal(t, "12.5", out.Inventory[0].StockQuantity)
	require.Len(t, out.Movements, 1)
	assert.Equal(t, "2026-03-10", out.Movements[0].MovementDate)
}
