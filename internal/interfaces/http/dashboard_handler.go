package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/magazzino-pro/magazzino-api/internal/application/analytics"
)

// DashboardHandler espone gli indicatori aggregati del magazzino.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler costruisce l'handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats godoc
// @Summary      Statistiche dashboard
// @Description  Valore totale del magazzino, articoli sotto scorta, totale articoli e articoli a giacenza zero.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.GetStats(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}
