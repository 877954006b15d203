package http

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/billera-api/internal/application/dto"
	"github.com/jhoicas/billera-api/internal/application/importer"
	"github.com/jhoicas/billera-api/internal/application/wizard"
	"github.com/jhoicas/billera-api/internal/domain"
)

// DefaultImportMaxBytes tamaño máximo por defecto del CSV.
const DefaultImportMaxBytes int64 = 2 * 1024 * 1024

// ImportHandler importación de líneas y cliente desde CSV.
type ImportHandler struct {
	session  *wizard.Session
	maxBytes int64
}

// NewImportHandler construye el handler. maxBytes <= 0 usa DefaultImportMaxBytes.
func NewImportHandler(session *wizard.Session, maxBytes int64) *ImportHandler {
	if maxBytes <= 0 {
		maxBytes = DefaultImportMaxBytes
	}
	return &ImportHandler{session: session, maxBytes: maxBytes}
}

// Begin recibe el CSV (cuerpo crudo o multipart "file") y propone el mapeo.
// @Summary      Iniciar importación CSV
// @Tags         Import
// @Accept       text/csv
// @Produce      json
// @Success      200  {object}  dto.ImportPreviewResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/import [post]
func (h *ImportHandler) Begin(c *fiber.Ctx) error {
	raw, err := h.readCSV(c)
	if err != nil {
		return writeError(c, err)
	}
	if int64(len(raw)) > h.maxBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "PAYLOAD_TOO_LARGE", Message: "el CSV supera el tamaño máximo"})
	}
	p, err := h.session.BeginImport(raw)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToImportPreviewResponse(p))
}

func (h *ImportHandler) readCSV(c *fiber.Ctx) ([]byte, error) {
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("abrir CSV: %w", err)
		}
		defer f.Close()
		return io.ReadAll(io.LimitReader(f, h.maxBytes+1))
	}
	// El buffer de fasthttp se reutiliza; se copia.
	return append([]byte(nil), c.Body()...), nil
}

// Preview devuelve el mapeo vigente.
// GET /api/import
func (h *ImportHandler) Preview(c *fiber.Ctx) error {
	p, err := h.session.ImportPreview()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToImportPreviewResponse(p))
}

// SetMapping reasigna una columna por índice o por encabezado.
// @Summary      Cambiar mapeo de columna
// @Tags         Import
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ImportMappingRequest  true  "Columna y campo"
// @Success      200   {object}  dto.ImportPreviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/import/mapping [put]
func (h *ImportHandler) SetMapping(c *fiber.Ctx) error {
	var in dto.ImportMappingRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	field, ok := importer.ParseField(in.Field)
	if !ok {
		return writeError(c, fmt.Errorf("%w: campo %q desconocido", domain.ErrInvalidInput, in.Field))
	}
	if in.Column != nil {
		err := h.session.SetImportMapping(*in.Column, field)
		if err != nil {
			return writeError(c, err)
		}
	} else {
		if in.Header == "" {
			return writeError(c, fmt.Errorf("%w: column o header requerido", domain.ErrInvalidInput))
		}
		if err := h.session.SetImportMappingByHeader(in.Header, field); err != nil {
			return writeError(c, err)
		}
	}
	return h.Preview(c)
}

// Confirm aplica la importación a la factura activa.
// @Summary      Confirmar importación
// @Tags         Import
// @Produce      json
// @Success      200  {object}  dto.ImportResultResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/import/confirm [post]
func (h *ImportHandler) Confirm(c *fiber.Ctx) error {
	res, err := h.session.ConfirmImport()
	if err != nil {
		return writeError(c, err)
	}
	groups := res.Groups
	if groups == nil {
		groups = []string{}
	}
	return c.JSON(dto.ImportResultResponse{
		ClientUpdated: res.ClientUpdated,
		Added:         dto.ToLineItemResponses(res.Added),
		Skipped:       res.Skipped,
		Groups:        groups,
	})
}

// Cancel descarta la importación pendiente.
// POST /api/import/cancel
func (h *ImportHandler) Cancel(c *fiber.Ctx) error {
	h.session.CancelImport()
	return c.SendStatus(fiber.StatusNoContent)
}
