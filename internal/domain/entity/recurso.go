package entity

import "github.com/shopspring/decimal"

// Tipos de recurso facturables.
const (
	TipoHardware = "Hardware"
	TipoSoftware = "Software"
)

// TipoRecursoValido indica si el tipo es uno de los admitidos.
func TipoRecursoValido(tipo string) bool {
	return tipo == TipoHardware || tipo == TipoSoftware
}

// Recurso representa una unidad facturable de capacidad (hardware o software)
// con un precio por hora de uso.
type Recurso struct {
	ID          int
	Nombre      string
	Abreviatura string
	Metrica     string // unidad de medida (GB, núcleos, licencias, ...)
	Tipo        string // Hardware | Software
	ValorHora   decimal.Decimal
}
