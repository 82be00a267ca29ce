package http

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"

	"github.com/magazzino-pro/magazzino-api/internal/application/analytics"
	appexport "github.com/magazzino-pro/magazzino-api/internal/application/export"
	"github.com/magazzino-pro/magazzino-api/internal/application/inventory"
	"github.com/magazzino-pro/magazzino-api/internal/application/items"
	"github.com/magazzino-pro/magazzino-api/internal/domain/repository"
)

// RouterDeps dipendenze per il router.
type RouterDeps struct {
	ItemUC           *items.UseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	MovementRepo     repository.MovementRepository
	DashboardUC      *analytics.DashboardUseCase
	ExportUC         *appexport.UseCase
	ExportLocale     language.Tag
}

// Router registra le rotte dell'API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catalogo articoli
	itemsGroup := api.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	itemsGroup.Get("/categories", itemHandler.Categories)
	itemsGroup.Get("/units", itemHandler.Units)
	itemsGroup.Get("/", itemHandler.List)
	itemsGroup.Post("/", itemHandler.Create)
	itemsGroup.Get("/:id", itemHandler.GetByID)
	itemsGroup.Put("/:id", itemHandler.Update)
	itemsGroup.Delete("/:id", itemHandler.Delete)

	// Movimenti di magazzino
	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.RegisterMovement, deps.MovementRepo)
	movements.Post("/", movementHandler.Register)
	movements.Get("/", movementHandler.List)

	// Dashboard
	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/stats", dashboardHandler.Stats)

	// Export Excel
	export := api.Group("/export")
	exportHandler := NewExportHandler(deps.ExportUC, deps.ExportLocale)
	export.Get("/preview", exportHandler.Preview)
	export.Get("/excel", exportHandler.Excel)
}
