package usecase

import (
	"github.com/jhoicas/usuarios-api/internal/application/dto"
	"github.com/jhoicas/usuarios-api/internal/domain/entity"
)

func toUsuarioEntity(in dto.CreateUsuarioRequest) *entity.Usuario {
	return &entity.Usuario{
		Nombre: in.Nombre,
		Email:  in.Email,
	}
}

// applyUsuarioUpdate solo pisa nombre y email cuando vienen con contenido.
func applyUsuarioUpdate(u *entity.Usuario, in dto.UpdateUsuarioRequest) {
	if in.Nombre != "" {
		u.Nombre = in.Nombre
	}
	if in.Email != "" {
		u.Email = in.Email
	}
}

func toUsuarioFilter(in dto.SearchUsuarioRequest) entity.UsuarioFilter {
	return entity.UsuarioFilter{
		Nombre:    in.Nombre,
		Provincia: in.Provincia,
		Ciudad:    in.Ciudad,
	}
}

func toDomicilioEntity(usuarioID int64, in dto.DomicilioRequest) *entity.Domicilio {
	return &entity.Domicilio{
		UsuarioID: usuarioID,
		Calle:     in.Calle,
		Numero:    in.Numero,
		Provincia: in.Provincia,
		Ciudad:    in.Ciudad,
	}
}

// applyDomicilioUpdate reemplaza los cuatro campos; ID, usuario y fecha de creación se conservan.
func applyDomicilioUpdate(d *entity.Domicilio, in dto.DomicilioRequest) {
	d.Calle = in.Calle
	d.Numero = in.Numero
	d.Provincia = in.Provincia
	d.Ciudad = in.Ciudad
}

func toUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	if u == nil {
		return nil
	}
	return &dto.UsuarioResponse{
		ID:            u.ID,
		Nombre:        u.Nombre,
		Email:         u.Email,
		FechaCreacion: u.FechaCreacion,
		Domicilio:     toDomicilioResponse(u.Domicilio),
	}
}

func toDomicilioResponse(d *entity.Domicilio) *dto.DomicilioResponse {
	if d == nil {
		return nil
	}
	return &dto.DomicilioResponse{
		ID:            d.ID,
		Calle:         d.Calle,
		Numero:        d.Numero,
		Provincia:     d.Provincia,
		Ciudad:        d.Ciudad,
		FechaCreacion: d.FechaCreacion,
	}
}
