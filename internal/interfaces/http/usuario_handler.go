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

// UsuarioHandler maneja las peticiones HTTP para Usuario.
type UsuarioHandler struct {
	uc       *usecase.UsuarioUseCase
	validate *validator.Validator
	log      *logger.Logger
}

// NewUsuarioHandler construye el handler.
func NewUsuarioHandler(uc *usecase.UsuarioUseCase, validate *validator.Validator, log *logger.Logger) *UsuarioHandler {
	return &UsuarioHandler{uc: uc, validate: validate, log: log}
}

// GetByID godoc
// @Summary      Obtener usuario por ID
// @Description  Devuelve el usuario con su domicilio (null si no tiene).
// @Tags         usuarios
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  dto.UsuarioResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UsuarioHandler) GetByID(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if out == nil {
		return respondError(c, h.log, domain.UsuarioNotFound(id))
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar usuarios
// @Description  Filtros opcionales por subcadena (sensible a mayúsculas). Sin filtros devuelve todos.
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SearchUsuarioRequest  false  "Filtros"
// @Success      200   {array}   dto.UsuarioResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/users/search [post]
func (h *UsuarioHandler) Search(c *fiber.Ctx) error {
	var in dto.SearchUsuarioRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	out, err := h.uc.Search(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear usuario
// @Description  El domicilio, si se envía, se valida pero no se guarda; se asigna con POST /api/users/{id}/address.
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUsuarioRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.UsuarioResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UsuarioHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUsuarioRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	in.Normalize()
	if err := h.validate.Struct(in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Location(fmt.Sprintf("/api/users/%d", out.ID))
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar usuario
// @Description  Nombre o email vacíos conservan el valor actual. Si viene domicilio se reemplaza (o se crea).
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID del usuario"
// @Param        body  body  dto.UpdateUsuarioRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.UsuarioResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [put]
func (h *UsuarioHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}
	var in dto.UpdateUsuarioRequest
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
// @Summary      Eliminar usuario
// @Description  Elimina también su domicilio.
// @Tags         usuarios
// @Param        id   path  int  true  "ID del usuario"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *UsuarioHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: codeInvalidID, Message: "id debe ser un entero positivo"})
}
