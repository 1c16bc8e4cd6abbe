package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/jhoicas/usuarios-api/internal/application/dto"
	"github.com/jhoicas/usuarios-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStruct_Valido(t *testing.T) {
	v := New()
	err := v.Struct(dto.CreateUsuarioRequest{Nombre: "Ana", Email: "ana@x.com"})
	assert.NoError(t, err)
}

func TestStruct_CamposRequeridos(t *testing.T) {
	v := New()
	err := v.Struct(dto.CreateUsuarioRequest{Nombre: "   ", Email: ""})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"El nombre es requerido"}, verr.Fields["nombre"])
	assert.Contains(t, verr.Fields["email"], "El email es requerido")
}

func TestStruct_EmailInvalido(t *testing.T) {
	v := New()
	err := v.Struct(dto.CreateUsuarioRequest{Nombre: "Ana", Email: "no-es-email"})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"Formato de email inválido"}, verr.Fields["email"])
}

func TestStruct_LongitudEnCaracteres(t *testing.T) {
	v := New()
	// 100 runas de dos bytes cada una: válido aunque supere 100 bytes.
	ok := dto.DomicilioRequest{Calle: strings.Repeat("ñ", 100), Numero: "1", Provincia: "P", Ciudad: "C"}
	assert.NoError(t, v.Struct(ok))

	largo := ok
	largo.Calle = strings.Repeat("ñ", 101)
	var verr *domain.ValidationError
	require.True(t, errors.As(v.Struct(largo), &verr))
	assert.Equal(t, []string{"La calle no puede exceder 100 caracteres"}, verr.Fields["calle"])
}

func TestStruct_DomicilioAnidado(t *testing.T) {
	v := New()
	in := dto.CreateUsuarioRequest{
		Nombre:    "Ana",
		Email:     "ana@x.com",
		Domicilio: &dto.DomicilioRequest{Calle: "Av. Siempre Viva", Numero: "742", Provincia: "Córdoba"},
	}
	var verr *domain.ValidationError
	require.True(t, errors.As(v.Struct(in), &verr))
	assert.Equal(t, map[string][]string{"domicilio.ciudad": {"La ciudad es requerida"}}, verr.Fields)
}

func TestStruct_UpdateParcial(t *testing.T) {
	v := New()
	assert.NoError(t, v.Struct(dto.UpdateUsuarioRequest{}))
	assert.NoError(t, v.Struct(dto.UpdateUsuarioRequest{Email: "nuevo@x.com"}))
	assert.Error(t, v.Struct(dto.UpdateUsuarioRequest{Email: "malo"}))
}

func TestRequiredMessage(t *testing.T) {
	assert.Equal(t, "El número es requerido", RequiredMessage("numero"))
	assert.Equal(t, "El campo otro es requerido", RequiredMessage("otro"))
}
