package entity

import "time"

// Domicilio representa la dirección postal de un Usuario.
type Domicilio struct {
	ID            int64
	UsuarioID     int64 // único: un domicilio por usuario
	Calle         string
	Numero        string
	Provincia     string
	Ciudad        string
	FechaCreacion time.Time
}
