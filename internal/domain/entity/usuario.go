package entity

import "time"

// Usuario representa un usuario del sistema. Puede tener como máximo un Domicilio (1:1).
type Usuario struct {
	ID            int64
	Nombre        string
	Email         string // único en todo el sistema
	FechaCreacion time.Time
	Domicilio     *Domicilio // nil si el usuario aún no tiene domicilio
}

// UsuarioFilter criterios opcionales de búsqueda; un campo vacío no filtra.
type UsuarioFilter struct {
	Nombre    string
	Provincia string
	Ciudad    string
}
