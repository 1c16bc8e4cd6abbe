package dto

import "time"

// CreateUsuarioRequest entrada para crear un usuario. El domicilio se valida pero no se persiste.
type CreateUsuarioRequest struct {
	Nombre    string            `json:"nombre" validate:"notblank,max=100"`
	Email     string            `json:"email" validate:"notblank,email,max=150"`
	Domicilio *DomicilioRequest `json:"domicilio,omitempty" validate:"omitempty"`
}

// Normalize recorta espacios y normaliza a NFC los campos de texto.
func (r *CreateUsuarioRequest) Normalize() {
	r.Nombre = normalize(r.Nombre)
	r.Email = normalize(r.Email)
	if r.Domicilio != nil {
		r.Domicilio.Normalize()
	}
}

// UpdateUsuarioRequest entrada para actualizar un usuario.
// Nombre o email vacíos conservan el valor actual; si viene domicilio se reemplaza completo.
type UpdateUsuarioRequest struct {
	Nombre    string            `json:"nombre" validate:"omitempty,max=100"`
	Email     string            `json:"email" validate:"omitempty,email,max=150"`
	Domicilio *DomicilioRequest `json:"domicilio,omitempty" validate:"omitempty"`
}

// Normalize recorta espacios y normaliza a NFC los campos de texto.
func (r *UpdateUsuarioRequest) Normalize() {
	r.Nombre = normalize(r.Nombre)
	r.Email = normalize(r.Email)
	if r.Domicilio != nil {
		r.Domicilio.Normalize()
	}
}

// SearchUsuarioRequest filtros opcionales de búsqueda (subcadena, sensible a mayúsculas).
type SearchUsuarioRequest struct {
	Nombre    string `json:"nombre,omitempty"`
	Provincia string `json:"provincia,omitempty"`
	Ciudad    string `json:"ciudad,omitempty"`
}

// Normalize normaliza a NFC los filtros sin recortarlos; un filtro solo con espacios queda vacío.
func (r *SearchUsuarioRequest) Normalize() {
	r.Nombre = normalizeFilter(r.Nombre)
	r.Provincia = normalizeFilter(r.Provincia)
	r.Ciudad = normalizeFilter(r.Ciudad)
}

// UsuarioResponse salida de un usuario con su domicilio (si tiene).
type UsuarioResponse struct {
	ID            int64              `json:"id"`
	Nombre        string             `json:"nombre"`
	Email         string             `json:"email"`
	FechaCreacion time.Time          `json:"fechaCreacion"`
	Domicilio     *DomicilioResponse `json:"domicilio"`
}
