package usecase

import (
	"context"
	"errors"

	"github.com/jhoicas/usuarios-api/internal/application/dto"
	"github.com/jhoicas/usuarios-api/internal/domain"
	"github.com/jhoicas/usuarios-api/internal/domain/repository"
)

// UsuarioUseCase casos de uso CRUD y búsqueda de usuarios.
type UsuarioUseCase struct {
	usuarios repository.UsuarioRepository
	tx       TxRunner
}

// NewUsuarioUseCase construye el caso de uso. tx se usa en Update para escribir usuario y domicilio juntos.
func NewUsuarioUseCase(usuarios repository.UsuarioRepository, tx TxRunner) *UsuarioUseCase {
	return &UsuarioUseCase{usuarios: usuarios, tx: tx}
}

// GetByID obtiene un usuario con su domicilio; (nil, nil) si no existe.
func (uc *UsuarioUseCase) GetByID(ctx context.Context, id int64) (*dto.UsuarioResponse, error) {
	u, err := uc.usuarios.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUsuarioResponse(u), nil
}

// Search filtra por nombre, provincia y ciudad (subcadena). Sin filtros devuelve todos.
func (uc *UsuarioUseCase) Search(ctx context.Context, in dto.SearchUsuarioRequest) ([]dto.UsuarioResponse, error) {
	in.Normalize()
	list, err := uc.usuarios.Search(ctx, toUsuarioFilter(in))
	if err != nil {
		return nil, err
	}
	items := make([]dto.UsuarioResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUsuarioResponse(u))
	}
	return items, nil
}

// Create da de alta el usuario. El domicilio del request no se persiste; se asigna por su propio endpoint.
func (uc *UsuarioUseCase) Create(ctx context.Context, in dto.CreateUsuarioRequest) (*dto.UsuarioResponse, error) {
	in.Normalize()
	exists, err := uc.usuarios.EmailExists(ctx, in.Email, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.EmailAlreadyExists(in.Email)
	}
	u := toUsuarioEntity(in)
	if err := uc.usuarios.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, domain.EmailAlreadyExists(in.Email)
		}
		return nil, err
	}
	return toUsuarioResponse(u), nil
}

// Update modifica nombre y email (vacíos conservan el valor) y, si viene domicilio, lo reemplaza.
// Todo ocurre en una transacción; devuelve el usuario releído con su domicilio.
func (uc *UsuarioUseCase) Update(ctx context.Context, id int64, in dto.UpdateUsuarioRequest) (*dto.UsuarioResponse, error) {
	in.Normalize()
	var out *dto.UsuarioResponse
	err := uc.tx.Run(ctx, func(usuarios repository.UsuarioRepository, domicilios repository.DomicilioRepository) error {
		u, err := usuarios.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.UsuarioNotFound(id)
		}
		if in.Email != "" {
			taken, err := usuarios.EmailExists(ctx, in.Email, &id)
			if err != nil {
				return err
			}
			if taken {
				return domain.EmailAlreadyExists(in.Email)
			}
		}
		applyUsuarioUpdate(u, in)

		if in.Domicilio != nil {
			if _, err := NewDomicilioUseCase(usuarios, domicilios).Update(ctx, id, *in.Domicilio); err != nil {
				return err
			}
		}
		if err := usuarios.Update(ctx, u); err != nil {
			if errors.Is(err, domain.ErrEmailAlreadyExists) {
				return domain.EmailAlreadyExists(in.Email)
			}
			if errors.Is(err, domain.ErrNotFound) {
				return domain.UsuarioNotFound(id)
			}
			return err
		}

		refreshed, err := usuarios.GetByID(ctx, id)
		if err != nil {
			return err
		}
		out = toUsuarioResponse(refreshed)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete elimina el usuario y su domicilio.
func (uc *UsuarioUseCase) Delete(ctx context.Context, id int64) error {
	exists, err := uc.usuarios.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.UsuarioNotFound(id)
	}
	deleted, err := uc.usuarios.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.UsuarioNotFound(id)
	}
	return nil
}
