package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/billera-api/internal/application/dto"
	"github.com/jhoicas/billera-api/internal/domain"
)

// errorStatus traduce los errores del dominio a status HTTP y código de error.
var errorStatus = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUnknownTemplate, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrEmptyData, fiber.StatusBadRequest, "EMPTY_DATA"},
	{domain.ErrMissingClientIdentifier, fiber.StatusBadRequest, "MISSING_CLIENT_IDENTIFIER"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrNoImportInProgress, fiber.StatusConflict, "NO_IMPORT_IN_PROGRESS"},
	{domain.ErrExportInProgress, fiber.StatusConflict, "EXPORT_IN_PROGRESS"},
	{domain.ErrLogoTooLarge, fiber.StatusRequestEntityTooLarge, "LOGO_TOO_LARGE"},
	{domain.ErrNothingArchived, fiber.StatusInternalServerError, "EXPORT_FAILED"},
	{domain.ErrBlankDocument, fiber.StatusInternalServerError, "EXPORT_FAILED"},
}

// writeError responde con dto.ErrorResponse según el error recibido.
func writeError(c *fiber.Ctx, err error) error {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return c.Status(e.status).JSON(dto.ErrorResponse{Code: e.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
