package items_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magazzino-pro/magazzino-api/internal/application/dto"
	"github.com/magazzino-pro/magazzino-api/internal/application/items"
	"github.com/magazzino-pro/magazzino-api/internal/domain"
	"github.com/magazzino-pro/magazzino-api/internal/domain/entity"
	"github.com/magazzino-pro/magazzino-api/internal/domain/repository"
)

// fakeItemRepo repository articoli in memoria con giacenza e conteggio
// movimenti configurabili per le regole di eliminabilità.
type fakeItemRepo struct {
	items         map[string]*entity.Item
	stock         map[string]decimal.Decimal
	movementCount map[string]int
	deleted       []string
}

func newFakeItemRepo(items ...*entity.Item) *fakeItemRepo {
	r := &fakeItemRepo{
		items:         map[string]*entity.Item{},
		stock:         map[string]decimal.Decimal{},
		movementCount: map[string]int{},
	}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

func (r *fakeItemRepo) Create(_ context.Context, item *entity.Item) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return it, nil
}

func (r *fakeItemRepo) GetByName(_ context.Context, name string) (*entity.Item, error) {
	for _, it := range r.items {
		if strings.EqualFold(it.Name, name) {
			return it, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) List(context.Context, repository.ItemFilter) ([]*entity.Item, error) {
	out := make([]*entity.Item, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	return out, nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *entity.Item) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) UpdateUnitCost(_ context.Context, itemID string, cost decimal.Decimal) error {
	r.items[itemID].UnitCost = cost
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeItemRepo) CurrentStock(_ context.Context, itemID string) (decimal.Decimal, error) {
	return r.stock[itemID], nil
}

func (r *fakeItemRepo) Categories(context.Context, string) ([]string, error) {
	return []string{"Ricambi motore", "Filtri"}, nil
}

func (r *fakeItemRepo) Units(context.Context) ([]string, error) {
	return []string{"kg", "pz"}, nil
}

func (r *fakeItemRepo) CountMovementsSince(_ context.Context, itemID string, _ time.Time) (int, error) {
	return r.movementCount[itemID], nil
}

func esistente() *entity.Item {
	return &entity.Item{
		ID:   "item-1",
		Name: "Filtro olio",
		Unit: "pz",
	}
}

func TestCreate_Normalizzazione(t *testing.T) {
	repo := newFakeItemRepo()
	uc := items.NewUseCase(repo)

	out, fe, err := uc.Create(context.Background(), dto.CreateItemRequest{
		Name:     "  Filtro aria  ",
		MinStock: "10,5",
		UnitCost: "3,20",
	})
	require.Nil(t, fe)
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, "Filtro aria", out.Name)
	assert.Equal(t, "pz", out.Unit, "unità di default quando non indicata")
	assert.Equal(t, "10.5", out.MinStock)
	assert.Equal(t, "3.2", out.UnitCost)
}

func TestCreate_NomeVuoto(t *testing.T) {
	uc := items.NewUseCase(newFakeItemRepo())

	_, fe, _ := uc.Create(context.Background(), dto.CreateItemRequest{Name: "   "})
	require.NotNil(t, fe)
	assert.Contains(t, fe, "name")
}

// TestCreate_NomeDuplicato: l'unicità del nome è case-insensitive.
func TestCreate_NomeDuplicato(t *testing.T) {
	repo := newFakeItemRepo(esistente())
	uc := items.NewUseCase(repo)

	_, fe, err := uc.Create(context.Background(), dto.CreateItemRequest{Name: "FILTRO OLIO"})
	require.Nil(t, fe)
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestCreate_DecimaliNonValidi(t *testing.T) {
	uc := items.NewUseCase(newFakeItemRepo())

	_, fe, _ := uc.Create(context.Background(), dto.CreateItemRequest{
		Name:     "Olio motore",
		MinStock: "-1",
		UnitCost: "abc",
	})
	require.NotNil(t, fe)
	assert.Contains(t, fe, "min_stock")
	assert.Contains(t, fe, "unit_cost")
}

func TestUpdate_CampiOpzionali(t *testing.T) {
	repo := newFakeItemRepo(esistente())
	uc := items.NewUseCase(repo)

	categoria := "Filtri"
	minStock := "5"
	out, fe, err := uc.Update(context.Background(), "item-1", dto.UpdateItemRequest{
		Category: &categoria,
		MinStock: &minStock,
	})
	require.Nil(t, fe)
	require.NoError(t, err)

	assert.Equal(t, "Filtro olio", out.Name, "il nome non indicato resta invariato")
	assert.Equal(t, "Filtri", out.Category)
	assert.Equal(t, "5", out.MinStock)
}

func TestUpdate_ArticoloInesistente(t *testing.T) {
	uc := items.NewUseCase(newFakeItemRepo())

	nome := "Nuovo nome"
	_, _, err := uc.Update(context.Background(), "sconosciuto", dto.UpdateItemRequest{Name: &nome})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

// TestDelete_BloccatoConGiacenza: un articolo con giacenza non nulla non è
// eliminabile; l'errore porta la giacenza per il messaggio utente.
func TestDelete_BloccatoConGiacenza(t *testing.T) {
	repo := newFakeItemRepo(esistente())
	repo.stock["item-1"] = decimal.RequireFromString("12.5")
	uc := items.NewUseCase(repo)

	err := uc.Delete(context.Background(), "item-1")
	var hs *domain.ItemHasStockError
	require.ErrorAs(t, err, &hs)
	assert.True(t, hs.CurrentStock.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, "pz", hs.Unit)
	assert.Empty(t, repo.deleted)
}

// TestDelete_BloccatoConMovimentiRecenti: giacenza zero ma movimenti negli
// ultimi 12 mesi, i fatti immutabili non si cancellano a cascata.
func TestDelete_BloccatoConMovimentiRecenti(t *testing.T) {
	repo := newFakeItemRepo(esistente())
	repo.movementCount["item-1"] = 3
	uc := items.NewUseCase(repo)

	err := uc.Delete(context.Background(), "item-1")
	var hm *domain.ItemHasMovementsError
	require.ErrorAs(t, err, &hm)
	assert.Equal(t, 3, hm.MovementCount)
	assert.Empty(t, repo.deleted)
}

func TestDelete_ArticoloEliminabile(t *testing.T) {
	repo := newFakeItemRepo(esistente())
	uc := items.NewUseCase(repo)

	require.NoError(t, uc.Delete(context.Background(), "item-1"))
	assert.Equal(t, []string{"item-1"}, repo.deleted)
}

func TestAutocomplete(t *testing.T) {
	uc := items.NewUseCase(newFakeItemRepo())

	categorie, err := uc.Categories(context.Background(), "ri")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ricambi motore", "Filtri"}, categorie.Suggestions)

	unita, err := uc.Units(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"kg", "pz"}, unita.Suggestions)
}
