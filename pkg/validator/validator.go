// Package validator valida DTOs con go-playground/validator usando las etiquetas `validate`
// y devuelve los errores agrupados por campo JSON con mensajes en español.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jhoicas/usuarios-api/internal/domain"
)

// Validator envuelve *validator.Validate con las reglas propias de la API.
type Validator struct {
	v *validator.Validate
}

// New registra la etiqueta "notblank" y el uso del nombre JSON como nombre de campo.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", notBlank)
	return &Validator{v: v}
}

// Struct valida s. Devuelve *domain.ValidationError si alguna regla falla.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validar %T: %w", s, err)
	}
	out := domain.NewValidationError()
	for _, fe := range verrs {
		out.Add(fieldPath(fe), message(fe))
	}
	return out
}

// fieldPath quita el nombre del struct raíz: "CreateUsuarioRequest.domicilio.calle" -> "domicilio.calle".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	subject, adj := describe(fe.Field())
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s es %s", subject, adj)
	case "email":
		return "Formato de email inválido"
	case "max":
		return fmt.Sprintf("%s no puede exceder %s caracteres", subject, fe.Param())
	default:
		return fmt.Sprintf("%s no es válido (%s)", subject, fe.Tag())
	}
}

// subjects sujeto y adjetivo "requerido" concordados por campo.
var subjects = map[string][2]string{
	"nombre":    {"El nombre", "requerido"},
	"email":     {"El email", "requerido"},
	"calle":     {"La calle", "requerida"},
	"numero":    {"El número", "requerido"},
	"provincia": {"La provincia", "requerida"},
	"ciudad":    {"La ciudad", "requerida"},
}

func describe(field string) (string, string) {
	if s, ok := subjects[field]; ok {
		return s[0], s[1]
	}
	return "El campo " + field, "requerido"
}

// RequiredMessage devuelve el mensaje de campo requerido para el nombre JSON dado.
func RequiredMessage(field string) string {
	subject, adj := describe(field)
	return subject + " es " + adj
}

// notBlank rechaza cadenas vacías o compuestas solo por espacios; "max" ya cuenta runas.
func notBlank(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(f.String()) != ""
}
