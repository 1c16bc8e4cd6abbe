package repository

import (
	"context"

	"github.com/jhoicas/usuarios-api/internal/domain/entity"
)

// DomicilioRepository define el puerto de persistencia para Domicilio.
type DomicilioRepository interface {
	Repository[entity.Domicilio]
	// Create asigna FechaCreacion (UTC) y persiste el domicilio.
	Create(ctx context.Context, domicilio *entity.Domicilio) error
	GetByUsuarioID(ctx context.Context, usuarioID int64) (*entity.Domicilio, error)
	DeleteByUsuarioID(ctx context.Context, usuarioID int64) (bool, error)
}
