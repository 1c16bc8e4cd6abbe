package repository

import "context"

// Repository es el puerto genérico de persistencia para una entidad con ID entero generado.
// GetByID devuelve (nil, nil) si la fila no existe.
type Repository[T any] interface {
	Add(ctx context.Context, e *T) error
	GetByID(ctx context.Context, id int64) (*T, error)
	Update(ctx context.Context, e *T) error
	Delete(ctx context.Context, id int64) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
}
