package usecase

import (
	"context"

	"github.com/jhoicas/usuarios-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda ningún cambio aplicado.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		usuarios repository.UsuarioRepository,
		domicilios repository.DomicilioRepository,
	) error) error
}
