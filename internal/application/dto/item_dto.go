package dto

import (
	"time"

	"github.com/magazzino-pro/magazzino-api/internal/domain/entity"
)

// CreateItemRequest body per POST /api/items. MinStock e UnitCost arrivano
// come stringhe grezze e passano dalla normalizzazione decimale del motore.
type CreateItemRequest struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Unit     string `json:"unit,omitempty"`
	Notes    string `json:"notes,omitempty"`
	MinStock string `json:"min_stock,omitempty"`
	UnitCost string `json:"unit_cost,omitempty"`
}

// UpdateItemRequest body per PUT /api/items/:id (campi tutti opzionali).
type UpdateItemRequest struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	Unit     *string `json:"unit,omitempty"`
	Notes    *string `json:"notes,omitempty"`
	MinStock *string `json:"min_stock,omitempty"`
	UnitCost *string `json:"unit_cost,omitempty"`
}

// ItemResponse articolo con i campi derivati dallo store. I decimali viaggiano
// come stringhe canoniche punto-decimale, mai come float binari.
type ItemResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Category        string     `json:"category,omitempty"`
	Unit            string     `json:"unit"`
	Notes           string     `json:"notes,omitempty"`
	MinStock        string     `json:"min_stock"`
	UnitCost        string     `json:"unit_cost"`
	StockQuantity   string     `json:"stock_quantity"`
	StockValue      string     `json:"stock_value"`
	IsUnderMinStock bool       `json:"is_under_min_stock"`
	LastMovementAt  *time.Time `json:"last_movement_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// NewItemResponse converte l'entità in DTO.
func NewItemResponse(item *entity.Item) ItemResponse {
	return ItemResponse{
		ID:              item.ID,
		Name:            item.Name,
		Category:        item.Category,
		Unit:            item.Unit,
		Notes:           item.Notes,
		MinStock:        item.MinStock.String(),
		UnitCost:        item.UnitCost.String(),
		StockQuantity:   item.StockQuantity.String(),
		StockValue:      item.StockValue.String(),
		IsUnderMinStock: item.IsUnderMinStock,
		LastMovementAt:  item.LastMovementAt,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}

// ItemListResponse risposta di GET /api/items.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Total int            `json:"total"`
}

// AutocompleteResponse suggerimenti per categoria/unità.
type AutocompleteResponse struct {
	Suggestions []string `json:"suggestions"`
}

// ZeroIfEmpty applica il default "0" ai campi decimali opzionali.
func ZeroIfEmpty(raw string) string {
	if raw == "" {
		return "0"
	}
	return raw
}
