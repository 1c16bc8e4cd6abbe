package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/usuarios-api/internal/application/dto"
	"github.com/jhoicas/usuarios-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomicilioCreate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u := f.crear(t, "Ana", "ana@x.com")

	d, err := f.domicilios.Create(ctx, u.ID, domicilio("Córdoba", "Capital"))
	require.NoError(t, err)
	assert.Positive(t, d.ID)
	assert.False(t, d.FechaCreacion.IsZero())

	got, err := f.domicilios.GetByUsuarioID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, d.ID, got.ID)
	assert.Equal(t, "Córdoba", got.Provincia)
}

func TestDomicilioCreate_SegundoDomicilioConflictua(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u := f.crear(t, "Ana", "ana@x.com")
	_, err := f.domicilios.Create(ctx, u.ID, domicilio("Córdoba", "Capital"))
	require.NoError(t, err)

	_, err = f.domicilios.Create(ctx, u.ID, domicilio("Mendoza", "Capital"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Equal(t, "El usuario 1 ya tiene un domicilio asignado", err.Error())
}

func TestDomicilioCreate_UsuarioInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.domicilios.Create(context.Background(), 5, domicilio("Córdoba", "Capital"))
	assert.True(t, errors.Is(err, domain.ErrUsuarioNotFound))
}

func TestDomicilioCreate_Incompleto(t *testing.T) {
	f := newFixture()
	u := f.crear(t, "Ana", "ana@x.com")

	_, err := f.domicilios.Create(context.Background(), u.ID, dto.DomicilioRequest{Calle: "X", Numero: " "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string][]string{
		"numero":    {"El número es requerido"},
		"provincia": {"La provincia es requerida"},
		"ciudad":    {"La ciudad es requerida"},
	}, verr.Fields)
}

func TestDomicilioUpdate_CreaSiNoExiste(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u := f.crear(t, "Ana", "ana@x.com")

	d, err := f.domicilios.Update(ctx, u.ID, domicilio("Salta", "Cafayate"))
	require.NoError(t, err)
	assert.Positive(t, d.ID)
	assert.Equal(t, "Cafayate", d.Ciudad)
}

func TestDomicilioUpdate_ConservaIDYFecha(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u := f.crear(t, "Ana", "ana@x.com")
	created, err := f.domicilios.Create(ctx, u.ID, domicilio("Córdoba", "Capital"))
	require.NoError(t, err)

	updated, err := f.domicilios.Update(ctx, u.ID, dto.DomicilioRequest{Calle: "Nueva", Numero: "9", Provincia: "Jujuy", Ciudad: "Tilcara"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, created.FechaCreacion.Equal(updated.FechaCreacion))

	got, err := f.domicilios.GetByUsuarioID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nueva", got.Calle)
	assert.Equal(t, "Tilcara", got.Ciudad)
}

func TestDomicilioUpdate_Incompleto(t *testing.T) {
	f := newFixture()
	u := f.crear(t, "Ana", "ana@x.com")
	_, err := f.domicilios.Update(context.Background(), u.ID, dto.DomicilioRequest{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestDomicilioGet_UsuarioInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.domicilios.GetByUsuarioID(context.Background(), 3)
	assert.True(t, errors.Is(err, domain.ErrUsuarioNotFound))
}

func TestDomicilioDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	u := f.crear(t, "Ana", "ana@x.com")
	_, err := f.domicilios.Create(ctx, u.ID, domicilio("Córdoba", "Capital"))
	require.NoError(t, err)

	require.NoError(t, f.domicilios.Delete(ctx, u.ID))

	err = f.domicilios.Delete(ctx, u.ID)
	assert.True(t, errors.Is(err, domain.ErrDomicilioNotFound))

	got, err := f.usuarios.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Domicilio)
}
