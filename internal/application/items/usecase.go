// Package items contiene i casi d'uso di catalogo: listato con filtri,
// anagrafica articoli e autocomplete di categorie e unità.
package items

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/magazzino-pro/magazzino-api/internal/application/dto"
	"github.com/magazzino-pro/magazzino-api/internal/domain"
	"github.com/magazzino-pro/magazzino-api/internal/domain/entity"
	"github.com/magazzino-pro/magazzino-api/internal/domain/movement"
	"github.com/magazzino-pro/magazzino-api/internal/domain/repository"
)

const defaultUnit = "pz"

// UseCase casi d'uso per Item.
type UseCase struct {
	itemRepo repository.ItemRepository
}

// NewUseCase costruisce il caso d'uso.
func NewUseCase(itemRepo repository.ItemRepository) *UseCase {
	return &UseCase{itemRepo: itemRepo}
}

// List restituisce gli articoli con i campi derivati, filtrati e ordinati.
func (uc *UseCase) List(ctx context.Context, filter repository.ItemFilter) (*dto.ItemListResponse, error) {
	items, err := uc.itemRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := &dto.ItemListResponse{Items: make([]dto.ItemResponse, 0, len(items)), Total: len(items)}
	for _, item := range items {
		out.Items = append(out.Items, dto.NewItemResponse(item))
	}
	return out, nil
}

// GetByID restituisce un articolo (nil se non esiste).
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	resp := dto.NewItemResponse(item)
	return &resp, nil
}

// Create crea un articolo. Nome obbligatorio e unico (case-insensitive);
// scorta minima e costo unitario passano dalla normalizzazione decimale.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, movement.FieldErrors, error) {
	fe := movement.FieldErrors{}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		fe["name"] = "il nome dell'articolo non può essere vuoto"
	}

	minStock, err := movement.NormalizeDecimal(dto.ZeroIfEmpty(in.MinStock), movement.QuantityFractionDigits)
	if err != nil || minStock.LessThan(decimal.Zero) {
		fe["min_stock"] = "la scorta minima deve essere un numero maggiore o uguale a zero"
	}
	unitCost, err := movement.NormalizeDecimal(dto.ZeroIfEmpty(in.UnitCost), movement.MoneyFractionDigits)
	if err != nil || unitCost.LessThan(decimal.Zero) {
		fe["unit_cost"] = "il costo unitario deve essere un numero maggiore o uguale a zero"
	}
	if len(fe) > 0 {
		return nil, fe, nil
	}

	if existing, err := uc.itemRepo.GetByName(ctx, name); err != nil {
		return nil, nil, err
	} else if existing != nil {
		return nil, nil, domain.ErrDuplicateName
	}

	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = defaultUnit
	}
	now := time.Now()
	item := &entity.Item{
		ID:        uuid.New().String(),
		Name:      name,
		Category:  strings.TrimSpace(in.Category),
		Unit:      unit,
		Notes:     strings.TrimSpace(in.Notes),
		MinStock:  minStock,
		UnitCost:  unitCost,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, nil, err
	}

	created, err := uc.itemRepo.GetByID(ctx, item.ID)
	if err != nil {
		return nil, nil, err
	}
	resp := dto.NewItemResponse(created)
	return &resp, nil, nil
}

// Update aggiorna i campi indicati (tutti opzionali). Il nome resta unico.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, movement.FieldErrors, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if item == nil {
		return nil, nil, domain.ErrItemNotFound
	}

	fe := movement.FieldErrors{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			fe["name"] = "il nome dell'articolo non può essere vuoto"
		} else if !strings.EqualFold(name, item.Name) {
			if existing, err := uc.itemRepo.GetByName(ctx, name); err != nil {
				return nil, nil, err
			} else if existing != nil && existing.ID != id {
				return nil, nil, domain.ErrDuplicateName
			}
			item.Name = name
		} else {
			item.Name = name
		}
	}
	if in.Category != nil {
		item.Category = strings.TrimSpace(*in.Category)
	}
	if in.Unit != nil {
		unit := strings.TrimSpace(*in.Unit)
		if unit == "" {
			fe["unit"] = "l'unità di misura non può essere vuota"
		} else {
			item.Unit = unit
		}
	}
	if in.Notes != nil {
		item.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.MinStock != nil {
		minStock, err := movement.NormalizeDecimal(*in.MinStock, movement.QuantityFractionDigits)
		if err != nil || minStock.LessThan(decimal.Zero) {
			fe["min_stock"] = "la scorta minima deve essere un numero maggiore o uguale a zero"
		} else {
			item.MinStock = minStock
		}
	}
	if in.UnitCost != nil {
		unitCost, err := movement.NormalizeDecimal(*in.UnitCost, movement.MoneyFractionDigits)
		if err != nil || unitCost.LessThan(decimal.Zero) {
			fe["unit_cost"] = "il costo unitario deve essere un numero maggiore o uguale a zero"
		} else {
			item.UnitCost = unitCost
		}
	}
	if len(fe) > 0 {
		return nil, fe, nil
	}

	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, nil, err
	}

	updated, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	resp := dto.NewItemResponse(updated)
	return &resp, nil, nil
}

// Delete elimina un articolo. Bloccato se la giacenza non è zero o se
// esistono movimenti negli ultimi 12 mesi: i movimenti sono fatti immutabili
// e non vengono mai cancellati a cascata.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrItemNotFound
	}

	stock, err := uc.itemRepo.CurrentStock(ctx, id)
	if err != nil {
		return err
	}
	if !stock.IsZero() {
		return &domain.ItemHasStockError{CurrentStock: stock, Unit: item.Unit}
	}

	since := time.Now().AddDate(0, 0, -365)
	count, err := uc.itemRepo.CountMovementsSince(ctx, id, since)
	if err != nil {
		return err
	}
	if count > 0 {
		return &domain.ItemHasMovementsError{MovementCount: count}
	}

	return uc.itemRepo.Delete(ctx, id)
}

// Categories suggerimenti di categoria per l'autocomplete.
func (uc *UseCase) Categories(ctx context.Context, search string) (*dto.AutocompleteResponse, error) {
	values, err := uc.itemRepo.Categories(ctx, search)
	if err != nil {
		return nil, err
	}
	return &dto.AutocompleteResponse{Suggestions: values}, nil
}

// Units suggerimenti di unità di misura per l'autocomplete.
func (uc *UseCase) Units(ctx context.Context) (*dto.AutocompleteResponse, error) {
	values, err := uc.itemRepo.Units(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.AutocompleteResponse{Suggestions: values}, nil
}
