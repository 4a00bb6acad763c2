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

	_ "github.com/huseyintonguc/DEPO/docs"
	appinv "github.com/huseyintonguc/DEPO/internal/application/inventory"
	"github.com/huseyintonguc/DEPO/internal/infrastructure/export"
	"github.com/huseyintonguc/DEPO/internal/infrastructure/postgres"
	"github.com/huseyintonguc/DEPO/internal/infrastructure/sheet"
	httpRouter "github.com/huseyintonguc/DEPO/internal/interfaces/http"
	"github.com/huseyintonguc/DEPO/pkg/config"
	"github.com/huseyintonguc/DEPO/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("starting application")

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("resolve timezone")
	}

	ctx := context.Background()
	store, cleanup, err := buildStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("configure table store")
	}
	defer cleanup()

	recorder := appinv.NewRecordMovementUseCase(store, loc)
	reports := appinv.NewReportUseCase(store)
	catalog := appinv.NewCatalogUseCase(store)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Depo API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Recorder: recorder,
		Reports:  reports,
		Catalog:  catalog,
		PDF:      export.NewPDFGenerator(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}

// buildStore wires the TableStore selected by STORE_DRIVER. The returned
// cleanup releases backend resources and is safe to call once.
func buildStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (appinv.TableStore, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreSheet:
		var blob sheet.Blob
		if cfg.Store.RemoteURL != "" {
			blob = sheet.NewHTTPBlob(cfg.Store.RemoteURL, cfg.Store.RemoteToken, cfg.Store.Timeout)
			log.Info().Str("url", cfg.Store.RemoteURL).Msg("using remote workbook")
		} else {
			blob = sheet.NewFileBlob(cfg.Store.SheetPath)
			log.Info().Str("path", cfg.Store.SheetPath).Msg("using local workbook")
		}
		return sheet.NewStore(blob, log), func() {}, nil

	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		store := postgres.NewTableStore(pool, log)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil
	}
	// Unreachable: config.Load validates the driver.
	return nil, nil, cfg.Store.Validate()
}
