package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jhoicas/usuarios-api/internal/domain"
	"github.com/jhoicas/usuarios-api/internal/domain/entity"
	"github.com/jhoicas/usuarios-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUsuario(t *testing.T, s *Store, nombre, email string) *entity.Usuario {
	t.Helper()
	u := &entity.Usuario{Nombre: nombre, Email: email}
	require.NoError(t, s.Usuarios().Create(context.Background(), u))
	return u
}

func TestTable_AddAsignaIDsCrecientes(t *testing.T) {
	s := NewStore()
	a := seedUsuario(t, s, "Ana", "ana@x.com")
	b := seedUsuario(t, s, "Beto", "beto@x.com")
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)
	assert.False(t, a.FechaCreacion.IsZero())
}

func TestTable_DevuelveCopias(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	a := seedUsuario(t, s, "Ana", "ana@x.com")

	got, err := s.Usuarios().GetByID(ctx, a.ID)
	require.NoError(t, err)
	got.Nombre = "modificado"

	again, err := s.Usuarios().GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", again.Nombre)
}

func TestTable_UpdateSoloCamposMutables(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	a := seedUsuario(t, s, "Ana", "ana@x.com")
	created := a.FechaCreacion

	a.Nombre = "Ana María"
	a.FechaCreacion = created.AddDate(-1, 0, 0)
	require.NoError(t, s.Usuarios().Update(ctx, a))

	got, err := s.Usuarios().GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana María", got.Nombre)
	assert.True(t, got.FechaCreacion.Equal(created))
}

func TestTable_UpdateInexistente(t *testing.T) {
	s := NewStore()
	err := s.Usuarios().Update(context.Background(), &entity.Usuario{ID: 9, Nombre: "X", Email: "x@x.com"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestTable_IndiceUnico(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedUsuario(t, s, "Ana", "ana@x.com")
	b := seedUsuario(t, s, "Beto", "beto@x.com")

	err := s.Usuarios().Create(ctx, &entity.Usuario{Nombre: "Otra", Email: "ana@x.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	b.Email = "ana@x.com"
	assert.ErrorIs(t, s.Usuarios().Update(ctx, b), domain.ErrEmailAlreadyExists)
}

func TestDomicilio_ClaveForaneaYUnico(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	a := seedUsuario(t, s, "Ana", "ana@x.com")

	err := s.Domicilios().Create(ctx, &entity.Domicilio{UsuarioID: 77, Calle: "c", Numero: "1", Provincia: "p", Ciudad: "c"})
	assert.ErrorIs(t, err, domain.ErrUsuarioNotFound)

	require.NoError(t, s.Domicilios().Create(ctx, &entity.Domicilio{UsuarioID: a.ID, Calle: "c", Numero: "1", Provincia: "p", Ciudad: "c"}))
	err = s.Domicilios().Create(ctx, &entity.Domicilio{UsuarioID: a.ID, Calle: "c", Numero: "2", Provincia: "p", Ciudad: "c"})
	assert.ErrorIs(t, err, domain.ErrDomicilioAlreadyExists)
}

func TestUsuarios_JoinYCascada(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	a := seedUsuario(t, s, "Ana", "ana@x.com")
	require.NoError(t, s.Domicilios().Create(ctx, &entity.Domicilio{UsuarioID: a.ID, Calle: "c", Numero: "1", Provincia: "Córdoba", Ciudad: "Capital"}))

	got, err := s.Usuarios().GetByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	require.NotNil(t, got.Domicilio)
	assert.Equal(t, "Córdoba", got.Domicilio.Provincia)

	missing, err := s.Usuarios().GetByEmail(ctx, "ANA@x.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	deleted, err := s.Usuarios().Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	d, err := s.Domicilios().GetByUsuarioID(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, d)

	deleted, err = s.Usuarios().Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestUsuarios_EmailExists(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	a := seedUsuario(t, s, "Ana", "ana@x.com")

	ok, err := s.Usuarios().EmailExists(ctx, "ana@x.com", nil)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Usuarios().EmailExists(ctx, "ana@x.com", &a.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_RunRollback(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	a := seedUsuario(t, s, "Ana", "ana@x.com")
	boom := errors.New("boom")

	err := s.Run(ctx, func(usuarios repository.UsuarioRepository, domicilios repository.DomicilioRepository) error {
		a.Nombre = "Cambiado"
		require.NoError(t, usuarios.Update(ctx, a))
		require.NoError(t, domicilios.Create(ctx, &entity.Domicilio{UsuarioID: a.ID, Calle: "c", Numero: "1", Provincia: "p", Ciudad: "c"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.Usuarios().GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Nombre)
	assert.Nil(t, got.Domicilio)

	// Nadie más pudo obtener el ID consumido dentro de la transacción revertida, así que se reutiliza.
	b := seedUsuario(t, s, "Beto", "beto@x.com")
	assert.Equal(t, int64(2), b.ID)
}

func TestStore_RunRollbackConservaEscriturasConcurrentes(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	a := seedUsuario(t, s, "Ana", "ana@x.com")
	boom := errors.New("boom")

	beto := &entity.Usuario{Nombre: "Beto", Email: "beto@x.com"}
	done := make(chan error, 1)
	err := s.Run(ctx, func(usuarios repository.UsuarioRepository, domicilios repository.DomicilioRepository) error {
		a.Nombre = "Cambiado"
		require.NoError(t, usuarios.Update(ctx, a))
		require.NoError(t, usuarios.Create(ctx, &entity.Usuario{Nombre: "Tmp", Email: "tmp@x.com"}))
		go func() { done <- s.Usuarios().Create(ctx, beto) }()
		return boom
	})
	assert.ErrorIs(t, err, boom)
	require.NoError(t, <-done)

	got, err := s.Usuarios().GetByID(ctx, beto.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Beto", got.Nombre)

	ana, err := s.Usuarios().GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", ana.Nombre)

	tmp, err := s.Usuarios().GetByEmail(ctx, "tmp@x.com")
	require.NoError(t, err)
	assert.Nil(t, tmp)

	otro := seedUsuario(t, s, "Carla", "carla@x.com")
	assert.NotEqual(t, beto.ID, otro.ID)
}

func TestStore_ContextoCancelado(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Usuarios().GetByID(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.Ping(ctx), context.Canceled)
}

func TestStore_Concurrencia(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.Usuarios().Create(ctx, &entity.Usuario{Nombre: "Ana", Email: "misma@x.com"})
		}()
	}
	wg.Wait()
	close(errs)

	var ok, conflict int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			conflict++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 49, conflict)
}
