package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/usuarios-api/internal/application/usecase"
	"github.com/jhoicas/usuarios-api/pkg/logger"
	"github.com/jhoicas/usuarios-api/pkg/validator"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	UsuarioUC   *usecase.UsuarioUseCase
	DomicilioUC *usecase.DomicilioUseCase
	Validator   *validator.Validator
	Logger      *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Usuarios
	users := api.Group("/users")
	usuarioHandler := NewUsuarioHandler(deps.UsuarioUC, deps.Validator, deps.Logger)
	users.Post("/search", usuarioHandler.Search)
	users.Post("/", usuarioHandler.Create)
	users.Get("/:id", usuarioHandler.GetByID)
	users.Put("/:id", usuarioHandler.Update)
	users.Delete("/:id", usuarioHandler.Delete)

	// Domicilio del usuario
	domicilioHandler := NewDomicilioHandler(deps.DomicilioUC, deps.Validator, deps.Logger)
	users.Get("/:id/address", domicilioHandler.Get)
	users.Post("/:id/address", domicilioHandler.Create)
	users.Put("/:id/address", domicilioHandler.Update)
	users.Delete("/:id/address", domicilioHandler.Delete)
}
