package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/magazzino-pro/magazzino-api/internal/application/dto"
	"github.com/magazzino-pro/magazzino-api/internal/application/items"
	"github.com/magazzino-pro/magazzino-api/internal/domain"
	"github.com/magazzino-pro/magazzino-api/internal/domain/repository"
)

// ItemHandler gestisce le richieste HTTP del catalogo articoli.
type ItemHandler struct {
	uc *items.UseCase
}

// NewItemHandler costruisce l'handler.
func NewItemHandler(uc *items.UseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// List godoc
// @Summary      Lista articoli con giacenza derivata
// @Tags         items
// @Produce      json
// @Param        search            query  string  false  "Ricerca sul nome (parziale, case-insensitive)"
// @Param        category          query  string  false  "Filtro per categoria esatta"
// @Param        under_stock_only  query  bool    false  "Solo articoli sotto scorta minima"
// @Param        sort_by           query  string  false  "name | category | stock_quantity | is_under_min_stock"
// @Param        sort_order        query  string  false  "asc | desc"
// @Success      200  {object}  dto.ItemListResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	filter := repository.ItemFilter{
		Search:         c.Query("search"),
		Category:       c.Query("category"),
		UnderStockOnly: c.QueryBool("under_stock_only"),
		SortBy:         c.Query("sort_by"),
		SortOrder:      c.Query("sort_order"),
	}
	out, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Dettaglio articolo
// @Tags         items
// @Produce      json
// @Param        id  path  string  true  "ID articolo (UUID)"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return internalError(c, err)
	}
	if out == nil {
		return itemNotFound(c)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crea articolo
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "name obbligatorio; min_stock e unit_cost come stringhe decimali"
// @Success      201  {object}  dto.ItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, fe, err := h.uc.Create(c.Context(), in)
	if fe != nil {
		return validationError(c, fe)
	}
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateName) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code: "DUPLICATE_NAME", Message: domain.ErrDuplicateName.Error(),
			})
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Aggiorna articolo (campi opzionali)
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID articolo (UUID)"
// @Param        body  body  dto.UpdateItemRequest  true  "Campi da aggiornare"
// @Success      200  {object}  dto.ItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, fe, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if fe != nil {
		return validationError(c, fe)
	}
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return itemNotFound(c)
		}
		if errors.Is(err, domain.ErrDuplicateName) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code: "DUPLICATE_NAME", Message: domain.ErrDuplicateName.Error(),
			})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Elimina articolo
// @Description  Bloccato se la giacenza non è zero o se esistono movimenti negli ultimi 12 mesi.
// @Tags         items
// @Produce      json
// @Param        id  path  string  true  "ID articolo (UUID)"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	err := h.uc.Delete(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return itemNotFound(c)
		}
		var hasStock *domain.ItemHasStockError
		if errors.As(err, &hasStock) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code:    "ITEM_HAS_STOCK",
				Message: hasStock.Error(),
				Context: map[string]any{
					"current_stock": hasStock.CurrentStock.String(),
					"unit":          hasStock.Unit,
				},
			})
		}
		var hasMovements *domain.ItemHasMovementsError
		if errors.As(err, &hasMovements) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code:    "ITEM_HAS_MOVEMENTS",
				Message: hasMovements.Error(),
				Context: map[string]any{"movement_count": hasMovements.MovementCount},
			})
		}
		return internalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Categories godoc
// @Summary      Autocomplete categorie
// @Tags         items
// @Produce      json
// @Param        search  query  string  false  "Filtro parziale"
// @Success      200  {object}  dto.AutocompleteResponse
// @Router       /api/items/categories [get]
func (h *ItemHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.Categories(c.Context(), c.Query("search"))
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Units godoc
// @Summary      Autocomplete unità di misura
// @Tags         items
// @Produce      json
// @Success      200  {object}  dto.AutocompleteResponse
// @Router       /api/items/units [get]
func (h *ItemHandler) Units(c *fiber.Ctx) error {
	out, err := h.uc.Units(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}
