package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/billera-api/internal/application/export"
	"github.com/jhoicas/billera-api/internal/application/wizard"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Session        *wizard.Session
	Exporter       *export.Orchestrator
	LogoMaxBytes   int64
	ImportMaxBytes int64
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	invoiceHandler := NewInvoiceHandler(deps.Session, deps.LogoMaxBytes)
	exportHandler := NewExportHandler(deps.Exporter)

	// Plantillas
	api.Get("/templates", invoiceHandler.Templates)

	// Factura activa
	inv := api.Group("/invoice")
	inv.Get("/", invoiceHandler.Get)
	inv.Post("/reset", invoiceHandler.Reset)
	inv.Put("/details", invoiceHandler.UpdateDetails)
	inv.Put("/template", invoiceHandler.SetTemplate)
	inv.Put("/business", invoiceHandler.UpdateBusiness)
	inv.Post("/business/logo", invoiceHandler.UploadLogo)
	inv.Put("/client", invoiceHandler.UpdateClient)
	inv.Put("/columns", invoiceHandler.UpdateColumns)
	inv.Post("/categories/toggle", invoiceHandler.ToggleCategories)
	inv.Post("/items", invoiceHandler.AddItem)
	inv.Patch("/items/:id", invoiceHandler.UpdateItem)
	inv.Delete("/items/:id", invoiceHandler.RemoveItem)
	inv.Get("/print", exportHandler.Print)

	// Importación CSV
	imp := api.Group("/import")
	importHandler := NewImportHandler(deps.Session, deps.ImportMaxBytes)
	imp.Post("/", importHandler.Begin)
	imp.Get("/", importHandler.Preview)
	imp.Put("/mapping", importHandler.SetMapping)
	imp.Post("/confirm", importHandler.Confirm)
	imp.Post("/cancel", importHandler.Cancel)

	// Lote
	batches := api.Group("/batch")
	batchHandler := NewBatchHandler(deps.Session)
	batches.Post("/", batchHandler.Create)
	batches.Get("/", batchHandler.Get)
	batches.Post("/next", batchHandler.Next)
	batches.Post("/previous", batchHandler.Previous)
	batches.Post("/commit", batchHandler.Commit)

	// Exportación
	exp := api.Group("/export")
	exp.Get("/pdf", exportHandler.PDF)
	exp.Post("/batch", exportHandler.Batch)
	exp.Get("/status", exportHandler.Status)
	exp.Post("/abort", exportHandler.Abort)
}
