package memory

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/usuarios-api/internal/application/usecase"
	"github.com/jhoicas/usuarios-api/internal/domain"
	"github.com/jhoicas/usuarios-api/internal/domain/entity"
	"github.com/jhoicas/usuarios-api/internal/domain/repository"
)

var (
	_ repository.UsuarioRepository   = (*UsuarioRepo)(nil)
	_ repository.DomicilioRepository = (*DomicilioRepo)(nil)
	_ usecase.TxRunner               = (*Store)(nil)
)

// Store agrupa las tablas usuarios y domicilios bajo un mismo lock, lo que permite
// el borrado en cascada y las lecturas con join sin estados intermedios.
type Store struct {
	mu         locker
	usuarios   *Table[entity.Usuario]
	domicilios *Table[entity.Domicilio]
	now        func() time.Time
}

// NewStore crea un store vacío.
func NewStore() *Store {
	s := &Store{mu: &sync.RWMutex{}, now: func() time.Time { return time.Now().UTC() }}
	s.usuarios = newTable(s.mu, Mapping[entity.Usuario]{
		Name: "usuarios",
		ID:   func(u *entity.Usuario) *int64 { return &u.ID },
		Unique: []UniqueKey[entity.Usuario]{
			{Key: func(u *entity.Usuario) string { return u.Email }, Err: domain.ErrEmailAlreadyExists},
		},
		Merge: func(stored, src *entity.Usuario) {
			stored.Nombre = src.Nombre
			stored.Email = src.Email
		},
	})
	s.domicilios = newTable(s.mu, Mapping[entity.Domicilio]{
		Name: "domicilios",
		ID:   func(d *entity.Domicilio) *int64 { return &d.ID },
		Unique: []UniqueKey[entity.Domicilio]{
			{Key: func(d *entity.Domicilio) string { return idKey(d.UsuarioID) }, Err: domain.ErrDomicilioAlreadyExists},
		},
		Merge: func(stored, src *entity.Domicilio) {
			stored.Calle = src.Calle
			stored.Numero = src.Numero
			stored.Provincia = src.Provincia
			stored.Ciudad = src.Ciudad
		},
		Check: func(d *entity.Domicilio) error {
			if _, ok := s.usuarios.rows[d.UsuarioID]; !ok {
				return domain.ErrUsuarioNotFound
			}
			return nil
		},
	})
	return s
}

// Usuarios devuelve el repositorio de usuarios del store.
func (s *Store) Usuarios() *UsuarioRepo {
	return &UsuarioRepo{Table: s.usuarios, s: s}
}

// Domicilios devuelve el repositorio de domicilios del store.
func (s *Store) Domicilios() *DomicilioRepo {
	return &DomicilioRepo{Table: s.domicilios, s: s}
}

// Run ejecuta fn con el lock exclusivo del Store tomado durante toda la transacción;
// si fn falla se restauran ambas tablas al estado previo. Los repositorios que recibe fn
// no vuelven a tomar el lock, por eso fn no debe usar los repositorios del Store raíz.
func (s *Store) Run(ctx context.Context, fn func(
	usuarios repository.UsuarioRepository,
	domicilios repository.DomicilioRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	uRows, uSeq := s.usuarios.snapshot()
	dRows, dSeq := s.domicilios.snapshot()

	tx := s.inTx()
	if err := fn(tx.Usuarios(), tx.Domicilios()); err != nil {
		s.usuarios.restore(uRows, uSeq)
		s.domicilios.restore(dRows, dSeq)
		return err
	}
	return nil
}

// inTx devuelve una vista del Store sobre los mismos datos que no toma locks.
func (s *Store) inTx() *Store {
	return &Store{
		mu:         txLock{},
		usuarios:   s.usuarios.withLock(txLock{}),
		domicilios: s.domicilios.withLock(txLock{}),
		now:        s.now,
	}
}

// Ping siempre responde; permite usar el store en el health check.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// UsuarioRepo implementación en memoria de UsuarioRepository.
type UsuarioRepo struct {
	*Table[entity.Usuario]
	s *Store
}

// Create persiste un nuevo usuario con FechaCreacion del servidor (sin domicilio).
func (r *UsuarioRepo) Create(ctx context.Context, usuario *entity.Usuario) error {
	usuario.FechaCreacion = r.s.now()
	row := *usuario
	row.Domicilio = nil
	if err := r.Add(ctx, &row); err != nil {
		return err
	}
	usuario.ID = row.ID
	return nil
}

// GetByID obtiene el usuario con su domicilio.
func (r *UsuarioRepo) GetByID(ctx context.Context, id int64) (*entity.Usuario, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u := r.s.usuarios.get(id)
	if u == nil {
		return nil, nil
	}
	return r.withDomicilio(u), nil
}

// GetByEmail obtiene el usuario con su domicilio por email exacto.
func (r *UsuarioRepo) GetByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u := r.s.usuarios.first(func(u *entity.Usuario) bool { return u.Email == email })
	if u == nil {
		return nil, nil
	}
	return r.withDomicilio(u), nil
}

// Search aplica los filtros presentes como subcadenas sensibles a mayúsculas.
func (r *UsuarioRepo) Search(ctx context.Context, filter entity.UsuarioFilter) ([]*entity.Usuario, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := r.s.usuarios.filter(nil)
	out := make([]*entity.Usuario, 0, len(rows))
	for _, row := range rows {
		u := r.withDomicilio(row)
		if matches(u, filter) {
			out = append(out, u)
		}
	}
	return out, nil
}

// EmailExists verifica si el email pertenece a algún usuario distinto de excludeID.
func (r *UsuarioRepo) EmailExists(ctx context.Context, email string, excludeID *int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u := r.s.usuarios.first(func(u *entity.Usuario) bool {
		return u.Email == email && (excludeID == nil || u.ID != *excludeID)
	})
	return u != nil, nil
}

// Delete elimina el usuario y, en cascada, su domicilio.
func (r *UsuarioRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !r.s.usuarios.remove(id) {
		return false, nil
	}
	if d := r.s.domicilios.first(func(d *entity.Domicilio) bool { return d.UsuarioID == id }); d != nil {
		r.s.domicilios.remove(d.ID)
	}
	return true, nil
}

func (r *UsuarioRepo) withDomicilio(u *entity.Usuario) *entity.Usuario {
	u.Domicilio = r.s.domicilios.first(func(d *entity.Domicilio) bool { return d.UsuarioID == u.ID })
	return u
}

func matches(u *entity.Usuario, f entity.UsuarioFilter) bool {
	if !containsFilter(u.Nombre, f.Nombre) {
		return false
	}
	if strings.TrimSpace(f.Provincia) != "" && (u.Domicilio == nil || !strings.Contains(u.Domicilio.Provincia, f.Provincia)) {
		return false
	}
	if strings.TrimSpace(f.Ciudad) != "" && (u.Domicilio == nil || !strings.Contains(u.Domicilio.Ciudad, f.Ciudad)) {
		return false
	}
	return true
}

func containsFilter(value, filter string) bool {
	return strings.TrimSpace(filter) == "" || strings.Contains(value, filter)
}

// DomicilioRepo implementación en memoria de DomicilioRepository.
type DomicilioRepo struct {
	*Table[entity.Domicilio]
	s *Store
}

// Create persiste un nuevo domicilio con FechaCreacion del servidor.
func (r *DomicilioRepo) Create(ctx context.Context, domicilio *entity.Domicilio) error {
	domicilio.FechaCreacion = r.s.now()
	return r.Add(ctx, domicilio)
}

// GetByUsuarioID obtiene el domicilio del usuario; (nil, nil) si no tiene.
func (r *DomicilioRepo) GetByUsuarioID(ctx context.Context, usuarioID int64) (*entity.Domicilio, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.domicilios.first(func(d *entity.Domicilio) bool { return d.UsuarioID == usuarioID }), nil
}

// DeleteByUsuarioID elimina el domicilio del usuario; false si no tenía.
func (r *DomicilioRepo) DeleteByUsuarioID(ctx context.Context, usuarioID int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d := r.s.domicilios.first(func(d *entity.Domicilio) bool { return d.UsuarioID == usuarioID })
	if d == nil {
		return false, nil
	}
	return r.s.domicilios.remove(d.ID), nil
}

func idKey(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
