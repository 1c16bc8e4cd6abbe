package repository

import (
	"context"

	"github.com/jhoicas/usuarios-api/internal/domain/entity"
)

// UsuarioRepository define el puerto de persistencia para Usuario (DIP).
// GetByID, GetByEmail y Search cargan el Domicilio asociado.
type UsuarioRepository interface {
	Repository[entity.Usuario]
	// Create asigna FechaCreacion (UTC) y persiste el usuario, sin su domicilio.
	Create(ctx context.Context, usuario *entity.Usuario) error
	GetByEmail(ctx context.Context, email string) (*entity.Usuario, error)
	Search(ctx context.Context, filter entity.UsuarioFilter) ([]*entity.Usuario, error)
	// EmailExists ignora al usuario excludeID cuando no es nil (permite conservar el propio email).
	EmailExists(ctx context.Context, email string, excludeID *int64) (bool, error)
}
