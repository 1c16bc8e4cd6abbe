package dto

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrorResponse cuerpo de error HTTP 400 con los mensajes por campo.
type ValidationErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// normalize evita que "Córdoba" compuesto y descompuesto se traten como textos distintos.
func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// normalizeFilter no recorta un filtro con contenido: " Córdoba" busca también el espacio.
// Un filtro solo con espacios queda vacío y no filtra.
func normalizeFilter(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return norm.NFC.String(s)
}
