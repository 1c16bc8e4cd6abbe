package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/usuarios-api/internal/domain"
	"github.com/jhoicas/usuarios-api/internal/domain/entity"
	"github.com/jhoicas/usuarios-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

var usuarioMapping = Mapping[entity.Usuario]{
	Table: "usuarios",
	ID:    func(u *entity.Usuario) *int64 { return &u.ID },
	Columns: []Column[entity.Usuario]{
		{Name: "nombre", Field: func(u *entity.Usuario) any { return &u.Nombre }},
		{Name: "email", Field: func(u *entity.Usuario) any { return &u.Email }},
		{Name: "fecha_creacion", Field: func(u *entity.Usuario) any { return &u.FechaCreacion }, Immutable: true},
	},
	Constraints: map[string]error{
		"usuarios_email_key": domain.ErrEmailAlreadyExists,
	},
}

// usuarioSelect trae el usuario con su domicilio (si existe) en una sola consulta.
const usuarioSelect = `
	SELECT u.id, u.nombre, u.email, u.fecha_creacion,
	       d.id, d.usuario_id, d.calle, d.numero, d.provincia, d.ciudad, d.fecha_creacion
	FROM usuarios u
	LEFT JOIN domicilios d ON d.usuario_id = u.id`

// UsuarioRepo implementación de UsuarioRepository (usable con pool o tx).
type UsuarioRepo struct {
	*Table[entity.Usuario]
	q Querier
}

// NewUsuarioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{Table: NewTable(q, usuarioMapping), q: q}
}

// Create persiste un nuevo usuario con FechaCreacion del servidor.
func (r *UsuarioRepo) Create(ctx context.Context, usuario *entity.Usuario) error {
	usuario.FechaCreacion = time.Now().UTC()
	return r.Add(ctx, usuario)
}

// GetByID obtiene un usuario por ID con su domicilio.
func (r *UsuarioRepo) GetByID(ctx context.Context, id int64) (*entity.Usuario, error) {
	u, err := scanUsuario(r.q.QueryRow(ctx, usuarioSelect+` WHERE u.id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get usuario by id: %w", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email con su domicilio.
func (r *UsuarioRepo) GetByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	u, err := scanUsuario(r.q.QueryRow(ctx, usuarioSelect+` WHERE u.email = $1`, email))
	if err != nil {
		return nil, fmt.Errorf("get usuario by email: %w", err)
	}
	return u, nil
}

// Search lista los usuarios que cumplen todos los filtros presentes, ordenados por ID.
func (r *UsuarioRepo) Search(ctx context.Context, filter entity.UsuarioFilter) ([]*entity.Usuario, error) {
	query, args := buildSearchQuery(filter)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search usuarios: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Usuario, 0)
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// EmailExists verifica si el email pertenece a algún usuario distinto de excludeID.
func (r *UsuarioRepo) EmailExists(ctx context.Context, email string, excludeID *int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM usuarios
			WHERE email = $1 AND ($2::bigint IS NULL OR id <> $2)
		)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, email, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("email exists: %w", err)
	}
	return exists, nil
}

// buildSearchQuery arma el SELECT de búsqueda. strpos hace coincidencia de subcadena
// sensible a mayúsculas sin interpretar comodines de LIKE.
func buildSearchQuery(filter entity.UsuarioFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(column, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		args = append(args, value)
		conds = append(conds, fmt.Sprintf("strpos(%s, $%d) > 0", column, len(args)))
	}
	add("u.nombre", filter.Nombre)
	add("d.provincia", filter.Provincia)
	add("d.ciudad", filter.Ciudad)

	query := usuarioSelect
	if len(conds) > 0 {
		query += "\n\tWHERE " + strings.Join(conds, " AND ")
	}
	return query + "\n\tORDER BY u.id", args
}

// scanUsuario lee una fila de usuarioSelect; (nil, nil) si no hay filas.
func scanUsuario(row pgx.Row) (*entity.Usuario, error) {
	var (
		u                                entity.Usuario
		domID, domUsuarioID              *int64
		calle, numero, provincia, ciudad *string
		domFecha                         *time.Time
	)
	err := row.Scan(
		&u.ID, &u.Nombre, &u.Email, &u.FechaCreacion,
		&domID, &domUsuarioID, &calle, &numero, &provincia, &ciudad, &domFecha,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if domID != nil {
		u.Domicilio = &entity.Domicilio{
			ID:            *domID,
			UsuarioID:     *domUsuarioID,
			Calle:         *calle,
			Numero:        *numero,
			Provincia:     *provincia,
			Ciudad:        *ciudad,
			FechaCreacion: *domFecha,
		}
	}
	return &u, nil
}
