package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrInvalidInput = errors.New("entrada inválida")

	ErrUsuarioNotFound        = fmt.Errorf("usuario no encontrado: %w", ErrNotFound)
	ErrDomicilioNotFound      = fmt.Errorf("domicilio no encontrado: %w", ErrNotFound)
	ErrEmailAlreadyExists     = fmt.Errorf("el email ya está registrado: %w", ErrConflict)
	ErrDomicilioAlreadyExists = fmt.Errorf("el usuario ya tiene un domicilio asignado: %w", ErrConflict)
)

// ValidationError agrupa los mensajes de validación por campo (campo -> mensajes).
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError construye un ValidationError vacío.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add agrega un mensaje para el campo indicado.
func (e *ValidationError) Add(field, msg string) {
	e.Fields[field] = append(e.Fields[field], msg)
}

// HasErrors indica si hay al menos un campo inválido.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], ", "))
	}
	return "entrada inválida: " + strings.Join(parts, "; ")
}

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Error es un error de dominio con mensaje para el cliente; Unwrap devuelve el sentinel que lo clasifica.
type Error struct {
	Msg string
	Err error
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Err }

// UsuarioNotFound construye el error NotFound para el usuario indicado.
func UsuarioNotFound(id int64) error {
	return &Error{Msg: fmt.Sprintf("Usuario con ID %d no encontrado", id), Err: ErrUsuarioNotFound}
}

// DomicilioNotFound construye el error NotFound cuando el usuario no tiene domicilio.
func DomicilioNotFound(usuarioID int64) error {
	return &Error{Msg: fmt.Sprintf("El usuario %d no tiene domicilio asignado", usuarioID), Err: ErrDomicilioNotFound}
}

// DomicilioAlreadyExists construye el error Conflict cuando el usuario ya tiene domicilio.
func DomicilioAlreadyExists(usuarioID int64) error {
	return &Error{Msg: fmt.Sprintf("El usuario %d ya tiene un domicilio asignado", usuarioID), Err: ErrDomicilioAlreadyExists}
}

// EmailAlreadyExists construye el error Conflict para un email en uso.
func EmailAlreadyExists(email string) error {
	return &Error{Msg: fmt.Sprintf("El email %s ya está registrado", email), Err: ErrEmailAlreadyExists}
}
