package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/usuarios-api/internal/domain"
	"github.com/jhoicas/usuarios-api/internal/domain/entity"
	"github.com/jhoicas/usuarios-api/internal/domain/repository"
)

var _ repository.DomicilioRepository = (*DomicilioRepo)(nil)

var domicilioMapping = Mapping[entity.Domicilio]{
	Table: "domicilios",
	ID:    func(d *entity.Domicilio) *int64 { return &d.ID },
	Columns: []Column[entity.Domicilio]{
		{Name: "usuario_id", Field: func(d *entity.Domicilio) any { return &d.UsuarioID }, Immutable: true},
		{Name: "calle", Field: func(d *entity.Domicilio) any { return &d.Calle }},
		{Name: "numero", Field: func(d *entity.Domicilio) any { return &d.Numero }},
		{Name: "provincia", Field: func(d *entity.Domicilio) any { return &d.Provincia }},
		{Name: "ciudad", Field: func(d *entity.Domicilio) any { return &d.Ciudad }},
		{Name: "fecha_creacion", Field: func(d *entity.Domicilio) any { return &d.FechaCreacion }, Immutable: true},
	},
	Constraints: map[string]error{
		"domicilios_usuario_id_key":  domain.ErrDomicilioAlreadyExists,
		"domicilios_usuario_id_fkey": domain.ErrUsuarioNotFound,
	},
}

// DomicilioRepo implementación de DomicilioRepository (usable con pool o tx).
type DomicilioRepo struct {
	*Table[entity.Domicilio]
}

// NewDomicilioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDomicilioRepository(q Querier) *DomicilioRepo {
	return &DomicilioRepo{Table: NewTable(q, domicilioMapping)}
}

// Create persiste un nuevo domicilio con FechaCreacion del servidor.
func (r *DomicilioRepo) Create(ctx context.Context, domicilio *entity.Domicilio) error {
	domicilio.FechaCreacion = time.Now().UTC()
	return r.Add(ctx, domicilio)
}

// GetByUsuarioID obtiene el domicilio del usuario; (nil, nil) si no tiene.
func (r *DomicilioRepo) GetByUsuarioID(ctx context.Context, usuarioID int64) (*entity.Domicilio, error) {
	return r.findOne(ctx, "usuario_id = $1", usuarioID)
}

// DeleteByUsuarioID elimina el domicilio del usuario; false si no tenía.
func (r *DomicilioRepo) DeleteByUsuarioID(ctx context.Context, usuarioID int64) (bool, error) {
	return r.deleteWhere(ctx, "usuario_id = $1", usuarioID)
}
