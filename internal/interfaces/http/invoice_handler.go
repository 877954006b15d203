package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/billera-api/internal/application/dto"
	"github.com/jhoicas/billera-api/internal/application/wizard"
	"github.com/jhoicas/billera-api/internal/domain/entity"
	"github.com/jhoicas/billera-api/internal/domain/invoice"
	"github.com/jhoicas/billera-api/internal/infrastructure/logo"
)

// InvoiceHandler edición de la factura activa del asistente.
type InvoiceHandler struct {
	session      *wizard.Session
	logoMaxBytes int64
}

// NewInvoiceHandler construye el handler. logoMaxBytes <= 0 usa logo.DefaultMaxBytes.
func NewInvoiceHandler(session *wizard.Session, logoMaxBytes int64) *InvoiceHandler {
	if logoMaxBytes <= 0 {
		logoMaxBytes = logo.DefaultMaxBytes
	}
	return &InvoiceHandler{session: session, logoMaxBytes: logoMaxBytes}
}

func sessionResponse(s wizard.Snapshot) dto.SessionResponse {
	return dto.SessionResponse{
		Invoice:     dto.ToInvoiceResponse(s.Invoice),
		Version:     s.Version,
		BatchIndex:  s.BatchIndex,
		BatchSize:   s.BatchSize,
		ImportState: s.ImportState.String(),
		Exporting:   s.Exporting,
	}
}

// respond devuelve el estado de la sesión tras una mutación exitosa.
func (h *InvoiceHandler) respond(c *fiber.Ctx, err error) error {
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(sessionResponse(h.session.Snapshot()))
}

// Templates lista el catálogo de plantillas.
// @Summary      Catálogo de plantillas
// @Tags         Invoice
// @Produce      json
// @Success      200  {array}  dto.TemplateResponse
// @Router       /api/templates [get]
func (h *InvoiceHandler) Templates(c *fiber.Ctx) error {
	list := invoice.Templates()
	out := make([]dto.TemplateResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.ToTemplateResponse(t))
	}
	return c.JSON(out)
}

// Get devuelve la factura activa y la posición en el lote.
// @Summary      Factura activa
// @Tags         Invoice
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/invoice [get]
func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	return c.JSON(sessionResponse(h.session.Snapshot()))
}

// Reset vuelve a la factura por defecto.
// POST /api/invoice/reset
func (h *InvoiceHandler) Reset(c *fiber.Ctx) error {
	return h.respond(c, h.session.ResetInvoice())
}

// UpdateDetails número, fechas, moneda, idioma, notas y términos.
// @Summary      Actualizar datos generales
// @Tags         Invoice
// @Accept       json
// @Produce      json
// @Param        body  body      dto.UpdateDetailsRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoice/details [put]
func (h *InvoiceHandler) UpdateDetails(c *fiber.Ctx) error {
	var in dto.UpdateDetailsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return h.respond(c, h.session.UpdateDetails(in.Details()))
}

// SetTemplate selecciona la plantilla.
// PUT /api/invoice/template
func (h *InvoiceHandler) SetTemplate(c *fiber.Ctx) error {
	var in dto.SetTemplateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return h.respond(c, h.session.SetTemplate(in.TemplateID))
}

// UpdateBusiness datos del emisor.
// PUT /api/invoice/business
func (h *InvoiceHandler) UpdateBusiness(c *fiber.Ctx) error {
	var in dto.UpdateBusinessInfoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return h.respond(c, h.session.UpdateBusinessInfo(in.Patch()))
}

// UploadLogo recibe el logo (multipart, campo "logo") y lo guarda como data URI.
// @Summary      Subir logo del emisor
// @Tags         Invoice
// @Accept       multipart/form-data
// @Produce      json
// @Param        logo  formData  file  true  "Imagen (máx. 5 MB)"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      413   {object}  dto.ErrorResponse
// @Router       /api/invoice/business/logo [post]
func (h *InvoiceHandler) UploadLogo(c *fiber.Ctx) error {
	fh, err := c.FormFile("logo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "archivo 'logo' requerido"})
	}
	if fh.Size > h.logoMaxBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "LOGO_TOO_LARGE", Message: "el logo supera el tamaño máximo"})
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer f.Close()

	uri, err := logo.Encode(f, h.logoMaxBytes)
	if err != nil {
		return writeError(c, err)
	}
	return h.respond(c, h.session.UpdateBusinessInfo(entity.BusinessInfoPatch{Logo: &uri}))
}

// UpdateClient datos del cliente.
// PUT /api/invoice/client
func (h *InvoiceHandler) UpdateClient(c *fiber.Ctx) error {
	var in dto.ClientInfoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return h.respond(c, h.session.UpdateClientInfo(in.Patch()))
}

// UpdateColumns visibilidad de columnas; descripción y total siempre visibles.
// PUT /api/invoice/columns
func (h *InvoiceHandler) UpdateColumns(c *fiber.Ctx) error {
	var in dto.ColumnVisibilityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return h.respond(c, h.session.UpdateColumnVisibility(in.Patch()))
}

// ToggleCategories alterna la agrupación por categoría.
// POST /api/invoice/categories/toggle
func (h *InvoiceHandler) ToggleCategories(c *fiber.Ctx) error {
	return h.respond(c, h.session.ToggleCategorySeparation())
}

// AddItem agrega una línea.
// @Summary      Agregar línea
// @Tags         Invoice
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LineItemRequest  true  "Línea"
// @Success      201   {object}  dto.LineItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoice/items [post]
func (h *InvoiceHandler) AddItem(c *fiber.Ctx) error {
	var in dto.LineItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	item, err := h.session.AddLineItem(in.Input())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToLineItemResponse(item))
}

// UpdateItem modifica una línea.
// PATCH /api/invoice/items/:id
func (h *InvoiceHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.LineItemPatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	item, err := h.session.UpdateLineItem(c.Params("id"), in.Patch())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToLineItemResponse(item))
}

// RemoveItem elimina una línea; un id desconocido no es error.
// DELETE /api/invoice/items/:id
func (h *InvoiceHandler) RemoveItem(c *fiber.Ctx) error {
	if err := h.session.RemoveLineItem(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
