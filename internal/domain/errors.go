package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrNITInvalido         = errors.New("NIT inválido")
	ErrRangoFechasInvalido = errors.New("Rango de fechas inválido")
	ErrInstanciaCancelada  = errors.New("la instancia no está vigente")
)
