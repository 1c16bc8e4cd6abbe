package dto

import "time"

// DomicilioRequest datos completos de un domicilio (alta o reemplazo).
type DomicilioRequest struct {
	Calle     string `json:"calle" validate:"notblank,max=100"`
	Numero    string `json:"numero" validate:"notblank,max=20"`
	Provincia string `json:"provincia" validate:"notblank,max=50"`
	Ciudad    string `json:"ciudad" validate:"notblank,max=50"`
}

// Normalize recorta espacios y normaliza a NFC los campos de texto.
func (r *DomicilioRequest) Normalize() {
	r.Calle = normalize(r.Calle)
	r.Numero = normalize(r.Numero)
	r.Provincia = normalize(r.Provincia)
	r.Ciudad = normalize(r.Ciudad)
}

// DomicilioResponse salida de un domicilio.
type DomicilioResponse struct {
	ID            int64     `json:"id"`
	Calle         string    `json:"calle"`
	Numero        string    `json:"numero"`
	Provincia     string    `json:"provincia"`
	Ciudad        string    `json:"ciudad"`
	FechaCreacion time.Time `json:"fechaCreacion"`
}
