package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/billera-api/internal/application/dto"
	"github.com/jhoicas/billera-api/internal/application/export"
)

// ExportHandler descarga de PDF, ZIP del lote e impresión.
type ExportHandler struct {
	exporter *export.Orchestrator
}

// NewExportHandler construye el handler.
func NewExportHandler(exporter *export.Orchestrator) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

// PDF genera el PDF de la factura activa.
// @Summary      Descargar PDF de la factura activa
// @Tags         Export
// @Produce      application/pdf
// @Success      200
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/export/pdf [get]
func (h *ExportHandler) PDF(c *fiber.Ctx) error {
	res, err := h.exporter.ExportCurrent(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(res.Name)
	return c.Send(res.Data)
}

// Batch genera Invoices.zip con un PDF por factura del lote.
// Los encabezados X-Export-* resumen el resultado.
// @Summary      Descargar ZIP del lote
// @Tags         Export
// @Produce      application/zip
// @Success      200
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/export/batch [post]
func (h *ExportHandler) Batch(c *fiber.Ctx) error {
	sum, err := h.exporter.ExportBatch(c.UserContext(), nil)
	if err != nil {
		return writeError(c, err)
	}
	failed := make([]string, 0, len(sum.Failed))
	for _, i := range sum.Failed {
		failed = append(failed, strconv.Itoa(i))
	}
	c.Set("X-Export-Total", strconv.Itoa(sum.Total))
	c.Set("X-Export-Succeeded", strconv.Itoa(sum.Succeeded))
	c.Set("X-Export-Failed", strings.Join(failed, ","))
	c.Set("X-Export-Aborted", strconv.FormatBool(sum.Aborted))
	c.Attachment(sum.ArchiveName)
	return c.Send(sum.Archive)
}

// Status estado de la exportación por lote.
// GET /api/export/status
func (h *ExportHandler) Status(c *fiber.Ctx) error {
	st, p := h.exporter.Status()
	return c.JSON(dto.ExportStatusResponse{
		Generating: st == export.StateGenerating,
		Current:    p.Current,
		Total:      p.Total,
	})
}

// Abort pide detener la exportación por lote en curso.
// POST /api/export/abort
func (h *ExportHandler) Abort(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"aborted": h.exporter.Abort()})
}

// Print devuelve el HTML renderizado de la factura activa.
// GET /api/invoice/print
func (h *ExportHandler) Print(c *fiber.Ctx) error {
	markup, err := h.exporter.PrintCurrent(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Type("html", "utf-8")
	return c.SendString(markup)
}
