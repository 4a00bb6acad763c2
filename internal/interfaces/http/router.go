package http

import (
	"github.com/gofiber/fiber/v2"
	appinv "github.com/huseyintonguc/DEPO/internal/application/inventory"
	"github.com/huseyintonguc/DEPO/internal/infrastructure/export"
)

// RouterDeps holds the wired use cases the handlers depend on.
type RouterDeps struct {
	Recorder *appinv.RecordMovementUseCase
	Reports  *appinv.ReportUseCase
	Catalog  *appinv.CatalogUseCase
	PDF      *export.PDFGenerator
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.Catalog)
	products.Get("/", productHandler.List)

	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.Recorder, deps.Reports)
	movements.Post("/", movementHandler.Record)
	movements.Get("/", movementHandler.List)

	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.Reports, deps.PDF)
	reports.Get("/movements", reportHandler.Movements)
	reports.Get("/movements/export", reportHandler.ExportMovements)
	reports.Get("/stock", reportHandler.Stock)
	reports.Get("/stock/export", reportHandler.ExportStock)
}
