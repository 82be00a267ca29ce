package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"

	appexport "github.com/magazzino-pro/magazzino-api/internal/application/export"
)

// ExportHandler genera il report Excel del magazzino e la sua anteprima JSON.
type ExportHandler struct {
	uc     *appexport.UseCase
	locale language.Tag
}

// NewExportHandler costruisce l'handler con il locale di formattazione di default.
func NewExportHandler(uc *appexport.UseCase, locale language.Tag) *ExportHandler {
	return &ExportHandler{uc: uc, locale: locale}
}

// Preview godoc
// @Summary      Anteprima dell'export
// @Description  Gli stessi dati del workbook (inventario completo + movimenti degli ultimi 12 mesi) in JSON.
// @Tags         export
// @Produce      json
// @Success      200  {object}  dto.ExportPreviewResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/export/preview [get]
func (h *ExportHandler) Preview(c *fiber.Ctx) error {
	out, err := h.uc.Preview(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Excel godoc
// @Summary      Scarica il report Excel
// @Description  Workbook a due fogli (Inventario, Movimenti_ultimi_12_mesi) con formattazione italiana.
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  file
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/export/excel [get]
func (h *ExportHandler) Excel(c *fiber.Ctx) error {
	f, filename, err := h.uc.Workbook(c.Context(), h.locale)
	if err != nil {
		return internalError(c, err)
	}
	defer f.Close()

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := f.Write(c.Response().BodyWriter()); err != nil {
		return internalError(c, err)
	}
	return nil
}
