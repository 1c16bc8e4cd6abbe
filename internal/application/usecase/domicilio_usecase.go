package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/jhoicas/usuarios-api/internal/application/dto"
	"github.com/jhoicas/usuarios-api/internal/domain"
	"github.com/jhoicas/usuarios-api/internal/domain/repository"
	"github.com/jhoicas/usuarios-api/pkg/validator"
)

// DomicilioUseCase casos de uso del domicilio de un usuario. Toda operación exige que el usuario exista.
type DomicilioUseCase struct {
	usuarios   repository.UsuarioRepository
	domicilios repository.DomicilioRepository
}

// NewDomicilioUseCase construye el caso de uso.
func NewDomicilioUseCase(usuarios repository.UsuarioRepository, domicilios repository.DomicilioRepository) *DomicilioUseCase {
	return &DomicilioUseCase{usuarios: usuarios, domicilios: domicilios}
}

// GetByUsuarioID devuelve el domicilio del usuario; (nil, nil) si no tiene.
func (uc *DomicilioUseCase) GetByUsuarioID(ctx context.Context, usuarioID int64) (*dto.DomicilioResponse, error) {
	if err := uc.requireUsuario(ctx, usuarioID); err != nil {
		return nil, err
	}
	d, err := uc.domicilios.GetByUsuarioID(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	return toDomicilioResponse(d), nil
}

// Create asigna un domicilio a un usuario que aún no tiene uno.
func (uc *DomicilioUseCase) Create(ctx context.Context, usuarioID int64, in dto.DomicilioRequest) (*dto.DomicilioResponse, error) {
	in.Normalize()
	if err := uc.requireUsuario(ctx, usuarioID); err != nil {
		return nil, err
	}
	existing, err := uc.domicilios.GetByUsuarioID(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.DomicilioAlreadyExists(usuarioID)
	}
	if err := validateDomicilio(in); err != nil {
		return nil, err
	}
	d := toDomicilioEntity(usuarioID, in)
	if err := uc.domicilios.Create(ctx, d); err != nil {
		return nil, uc.translate(usuarioID, err)
	}
	return toDomicilioResponse(d), nil
}

// Update reemplaza el domicilio completo; si el usuario no tenía uno lo crea.
func (uc *DomicilioUseCase) Update(ctx context.Context, usuarioID int64, in dto.DomicilioRequest) (*dto.DomicilioResponse, error) {
	in.Normalize()
	if err := uc.requireUsuario(ctx, usuarioID); err != nil {
		return nil, err
	}
	if err := validateDomicilio(in); err != nil {
		return nil, err
	}
	d, err := uc.domicilios.GetByUsuarioID(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		d = toDomicilioEntity(usuarioID, in)
		if err := uc.domicilios.Create(ctx, d); err != nil {
			return nil, uc.translate(usuarioID, err)
		}
		return toDomicilioResponse(d), nil
	}
	applyDomicilioUpdate(d, in)
	if err := uc.domicilios.Update(ctx, d); err != nil {
		return nil, err
	}
	return toDomicilioResponse(d), nil
}

// Delete elimina el domicilio del usuario.
func (uc *DomicilioUseCase) Delete(ctx context.Context, usuarioID int64) error {
	if err := uc.requireUsuario(ctx, usuarioID); err != nil {
		return err
	}
	deleted, err := uc.domicilios.DeleteByUsuarioID(ctx, usuarioID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.DomicilioNotFound(usuarioID)
	}
	return nil
}

func (uc *DomicilioUseCase) requireUsuario(ctx context.Context, usuarioID int64) error {
	ok, err := uc.usuarios.Exists(ctx, usuarioID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.UsuarioNotFound(usuarioID)
	}
	return nil
}

// translate da mensaje a las violaciones de índice que ganan la carrera a las verificaciones previas.
func (uc *DomicilioUseCase) translate(usuarioID int64, err error) error {
	switch {
	case errors.Is(err, domain.ErrDomicilioAlreadyExists):
		return domain.DomicilioAlreadyExists(usuarioID)
	case errors.Is(err, domain.ErrUsuarioNotFound):
		return domain.UsuarioNotFound(usuarioID)
	default:
		return err
	}
}

// validateDomicilio exige los cuatro campos de texto con contenido.
func validateDomicilio(in dto.DomicilioRequest) error {
	verr := domain.NewValidationError()
	for _, f := range []struct{ name, value string }{
		{"calle", in.Calle},
		{"numero", in.Numero},
		{"provincia", in.Provincia},
		{"ciudad", in.Ciudad},
	} {
		if strings.TrimSpace(f.value) == "" {
			verr.Add(f.name, validator.RequiredMessage(f.name))
		}
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}
