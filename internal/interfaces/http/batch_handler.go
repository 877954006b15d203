package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/billera-api/internal/application/dto"
	"github.com/jhoicas/billera-api/internal/application/wizard"
	"github.com/jhoicas/billera-api/internal/domain"
)

// BatchHandler lote de facturas y navegación.
type BatchHandler struct {
	session *wizard.Session
}

// NewBatchHandler construye el handler.
func NewBatchHandler(session *wizard.Session) *BatchHandler {
	return &BatchHandler{session: session}
}

// Create crea una factura por entrada a partir de la activa.
// @Summary      Crear lote de facturas
// @Tags         Batch
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateBatchRequest  true  "Entradas"
// @Success      201   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/batch [post]
func (h *BatchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.session.CreateMultipleInvoices(in.BatchEntries()); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sessionResponse(h.session.Snapshot()))
}

// Get devuelve el lote completo.
// GET /api/batch
func (h *BatchHandler) Get(c *fiber.Ctx) error {
	b, ok := h.session.Batch()
	if !ok {
		return writeError(c, domain.ErrNotFound)
	}
	return c.JSON(dto.ToBatchResponse(b))
}

// Next avanza a la siguiente factura; en el último índice no hace nada.
// POST /api/batch/next
func (h *BatchHandler) Next(c *fiber.Ctx) error {
	moved, err := h.session.SelectNextInvoice()
	return h.navigated(c, moved, err)
}

// Previous retrocede a la factura anterior; en el índice 0 no hace nada.
// POST /api/batch/previous
func (h *BatchHandler) Previous(c *fiber.Ctx) error {
	moved, err := h.session.SelectPreviousInvoice()
	return h.navigated(c, moved, err)
}

func (h *BatchHandler) navigated(c *fiber.Ctx, moved bool, err error) error {
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NavigationResponse{Moved: moved, Session: sessionResponse(h.session.Snapshot())})
}

// Commit guarda las ediciones de la factura activa en su posición del lote.
// POST /api/batch/commit
func (h *BatchHandler) Commit(c *fiber.Ctx) error {
	if err := h.session.CommitCurrentEditsToBatch(); err != nil {
		return writeError(c, err)
	}
	return c.JSON(sessionResponse(h.session.Snapshot()))
}
