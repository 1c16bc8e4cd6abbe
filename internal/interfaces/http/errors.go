package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/usuarios-api/internal/application/dto"
	"github.com/jhoicas/usuarios-api/internal/domain"
	"github.com/jhoicas/usuarios-api/pkg/logger"
)

// Códigos de error de la API.
const (
	codeInvalidBody = "INVALID_BODY"
	codeInvalidID   = "INVALID_ID"
	codeValidation  = "VALIDATION"
	codeNotFound    = "NOT_FOUND"
	codeDuplicate   = "DUPLICATE"
	codeInternal    = "INTERNAL"
)

// respondError traduce un error de dominio a su status HTTP. Los errores no clasificados
// se registran y se devuelven como 500 sin exponer el detalle.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Code:    codeValidation,
			Message: "Errores de validación",
			Errors:  verr.Fields,
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: codeValidation, Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: codeNotFound, Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: codeDuplicate, Message: err.Error()})
	}
	log.Error().
		Err(err).
		Str("request_id", requestID(c)).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: codeInternal, Message: "error interno del servidor"})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: codeInvalidBody, Message: "cuerpo inválido"})
}

// ErrorHandler responde con dto.ErrorResponse los errores que llegan a Fiber (rutas inexistentes, panics recuperados).
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("request_id", requestID(c)).Str("path", c.Path()).Msg("error no controlado")
			return c.Status(code).JSON(dto.ErrorResponse{Code: codeInternal, Message: "error interno del servidor"})
		}
		return c.Status(code).JSON(dto.ErrorResponse{Code: errorCode(code), Message: err.Error()})
	}
}

func errorCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return codeNotFound
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return codeInvalidBody
	default:
		return "HTTP_ERROR"
	}
}
