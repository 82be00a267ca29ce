package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/magazzino-pro/magazzino-api/internal/application/dto"
	"github.com/magazzino-pro/magazzino-api/internal/application/inventory"
	"github.com/magazzino-pro/magazzino-api/internal/domain"
	"github.com/magazzino-pro/magazzino-api/internal/domain/repository"
)

// MovementHandler gestisce le richieste HTTP dei movimenti di magazzino.
type MovementHandler struct {
	uc      *inventory.RegisterMovementUseCase
	movRepo repository.MovementRepository
}

// NewMovementHandler costruisce l'handler.
func NewMovementHandler(uc *inventory.RegisterMovementUseCase, movRepo repository.MovementRepository) *MovementHandler {
	return &MovementHandler{uc: uc, movRepo: movRepo}
}

// Register godoc
// @Summary      Registra movimento di magazzino
// @Description  IN carica, OUT scarica (richiede confirmed=true), ADJUSTMENT porta la giacenza a target_stock (nota obbligatoria).
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "item_id, kind, quantity (IN/OUT) o target_stock (ADJUSTMENT)"
// @Success      201  {object}  dto.ItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}

	item, fe, err := h.uc.RegisterFromRequest(c.Context(), in)
	if fe != nil {
		return validationError(c, fe)
	}
	if err != nil {
		return h.mapRegisterError(c, err)
	}

	resp := dto.NewItemResponse(item)
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *MovementHandler) mapRegisterError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrItemNotFound) {
		return itemNotFound(c)
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: domain.ErrInvalidInput.Error(),
		})
	}
	if errors.Is(err, domain.ErrConfirmationRequired) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "CONFIRMATION_REQUIRED", Message: domain.ErrConfirmationRequired.Error(),
		})
	}
	if errors.Is(err, domain.ErrInvalidDateRange) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_DATE_RANGE", Message: "la data del movimento non può superare un anno nel passato o nel futuro",
		})
	}
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: insufficient.Error(),
			Context: map[string]any{
				"requested": insufficient.Requested.String(),
				"available": insufficient.Available.String(),
				"unit":      insufficient.Unit,
			},
		})
	}
	var notNeeded *domain.AdjustmentNotNeededError
	if errors.As(err, &notNeeded) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "ADJUSTMENT_NOT_NEEDED",
			Message: notNeeded.Error(),
			Context: map[string]any{
				"current_stock": notNeeded.CurrentStock.String(),
				"unit":          notNeeded.Unit,
			},
		})
	}
	return internalError(c, err)
}

// List godoc
// @Summary      Storico movimenti
// @Tags         movements
// @Produce      json
// @Param        from_date  query  string  false  "AAAA-MM-GG incluso"
// @Param        to_date    query  string  false  "AAAA-MM-GG incluso"
// @Param        item_id    query  string  false  "Filtro per articolo (UUID)"
// @Param        kind       query  string  false  "IN | OUT | ADJUSTMENT"
// @Param        limit      query  int     false  "Default 50, max 500"
// @Param        offset     query  int     false  "Default 0"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	page.DefaultPage()

	filter := repository.MovementFilter{
		ItemID: c.Query("item_id"),
		Kind:   c.Query("kind"),
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	var err error
	if filter.FromDate, err = parseQueryDate(c.Query("from_date")); err != nil {
		return dateQueryError(c, "from_date")
	}
	if filter.ToDate, err = parseQueryDate(c.Query("to_date")); err != nil {
		return dateQueryError(c, "to_date")
	}
	// Finestra di default: ultimi 30 giorni.
	if filter.FromDate.IsZero() && filter.ToDate.IsZero() {
		filter.FromDate = time.Now().AddDate(0, 0, -30)
	}

	movements, total, err := h.movRepo.List(c.Context(), filter)
	if err != nil {
		return internalError(c, err)
	}

	out := dto.MovementListResponse{
		Movements: make([]dto.MovementResponse, 0, len(movements)),
		Total:     total,
		Limit:     page.Limit,
		Offset:    page.Offset,
	}
	for _, m := range movements {
		out.Movements = append(out.Movements, dto.NewMovementResponse(m))
	}
	return c.JSON(out)
}

func parseQueryDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", raw)
}

func dateQueryError(c *fiber.Ctx, field string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code:    "VALIDATION",
		Message: "dati non validi",
		Fields:  map[string]string{field: "la data deve essere nel formato AAAA-MM-GG"},
	})
}
