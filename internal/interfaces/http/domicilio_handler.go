package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/usuarios-api/internal/application/dto"
	"github.com/jhoicas/usuarios-api/internal/application/usecase"
	"github.com/jhoicas/usuarios-api/internal/domain"
	"github.com/jhoicas/usuarios-api/pkg/logger"
	"github.com/jhoicas/usuarios-api/pkg/validator"
)

// DomicilioHandler maneja el domicilio de un usuario (/api/users/:id/address).
type DomicilioHandler struct {
	uc       *usecase.DomicilioUseCase
	validate *validator.Validator
	log      *logger.Logger
}

// NewDomicilioHandler construye el handler.
func NewDomicilioHandler(uc *usecase.DomicilioUseCase, validate *validator.Validator, log *logger.Logger) *DomicilioHandler {
	return &DomicilioHandler{uc: uc, validate: validate, log: log}
}

// Get godoc
// @Summary      Obtener domicilio de un usuario
// @Tags         domicilios
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  dto.DomicilioResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/address [get]
func (h *DomicilioHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.GetByUsuarioID(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if out == nil {
		return respondError(c, h.log, domain.DomicilioNotFound(id))
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Asignar domicilio
// @Tags         domicilios
// @Accept       json
// @Produce      json
// @Param        id    path  int                   true  "ID del usuario"
// @Param        body  body  dto.DomicilioRequest  true  "Domicilio"
// @Success      201   {object}  dto.DomicilioResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/address [post]
func (h *DomicilioHandler) Create(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var in dto.DomicilioRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	in.Normalize()
	if err := h.validate.Struct(in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Create(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Location(fmt.Sprintf("/api/users/%d/address", id))
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Reemplazar domicilio
// @Description  Reemplaza los cuatro campos; si el usuario no tenía domicilio lo crea.
// @Tags         domicilios
// @Accept       json
// @Produce      json
// @Param        id    path  int                   true  "ID del usuario"
// @Param        body  body  dto.DomicilioRequest  true  "Domicilio"
// @Success      200   {object}  dto.DomicilioResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/address [put]
func (h *DomicilioHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var in dto.DomicilioRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	in.Normalize()
	if err := h.validate.Struct(in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar domicilio
// @Tags         domicilios
// @Param        id   path  int  true  "ID del usuario"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id}/address [delete]
func (h *DomicilioHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
