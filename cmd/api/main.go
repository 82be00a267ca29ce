package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/text/language"

	"github.com/magazzino-pro/magazzino-api/internal/application/analytics"
	appexport "github.com/magazzino-pro/magazzino-api/internal/application/export"
	"github.com/magazzino-pro/magazzino-api/internal/application/inventory"
	"github.com/magazzino-pro/magazzino-api/internal/application/items"
	"github.com/magazzino-pro/magazzino-api/internal/infrastructure/postgres"
	httpRouter "github.com/magazzino-pro/magazzino-api/internal/interfaces/http"
	"github.com/magazzino-pro/magazzino-api/pkg/config"
	"github.com/magazzino-pro/magazzino-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("caricamento configurazione: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("avvio applicazione")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connessione a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	itemUC := items.NewUseCase(itemRepo)
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, itemRepo)
	dashboardUC := analytics.NewDashboardUseCase(statsRepo)
	exportUC := appexport.NewUseCase(itemRepo, movementRepo)

	exportLocale, err := language.Parse(cfg.Export.Locale)
	if err != nil {
		log.Warn().Str("locale", cfg.Export.Locale).Msg("locale export non valido, uso l'italiano")
		exportLocale = language.Italian
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // la generazione del workbook può superare i 10s
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI in locale: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Magazzino API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:           itemUC,
		RegisterMovement: registerMovementUC,
		MovementRepo:     movementRepo,
		DashboardUC:      dashboardUC,
		ExportUC:         exportUC,
		ExportLocale:     exportLocale,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("server HTTP terminato")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("segnale di arresto ricevuto, chiusura del server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arresto del server")
	}

	log.Info().Msg("applicazione fermata")
}
