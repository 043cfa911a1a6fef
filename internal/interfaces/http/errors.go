package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/marketplace-identity/internal/application/dto"
	"github.com/jhoicas/marketplace-identity/internal/domain"
)

// errorStatus traduce la categoría de dominio a status HTTP y código.
func errorStatus(err error) (int, string) {
	switch domain.KindOf(err) {
	case domain.ErrValidation:
		return fiber.StatusBadRequest, "VALIDATION"
	case domain.ErrDuplicateEmail:
		return fiber.StatusBadRequest, "DUPLICATE_EMAIL"
	case domain.ErrInvalidCredentials:
		return fiber.StatusUnauthorized, "INVALID_CREDENTIALS"
	case domain.ErrAccountNotApproved:
		return fiber.StatusForbidden, "ACCOUNT_NOT_APPROVED"
	case domain.ErrForbidden:
		return fiber.StatusForbidden, "FORBIDDEN"
	case domain.ErrNotFound:
		return fiber.StatusNotFound, "NOT_FOUND"
	case domain.ErrUpload:
		return fiber.StatusInternalServerError, "UPLOAD_FAILED"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// writeError responde con dto.ErrorResponse. Los errores que no son de dominio
// no exponen su mensaje.
func writeError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	msg := "Internal server error"
	var derr *domain.Error
	if errors.As(err, &derr) {
		msg = derr.Error()
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
