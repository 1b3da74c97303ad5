package dto

import "github.com/shopspring/decimal"

// ErrorResponse respuesta estructurada de error de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MensajeResponse respuesta informativa simple.
type MensajeResponse struct {
	Mensaje string `json:"mensaje"`
}

// ── Snapshot de datos (GET /consultarDatos) ───────────────────────────────────

// RecursoDTO recurso del catálogo.
type RecursoDTO struct {
	ID          int             `json:"id"`
	Nombre      string          `json:"nombre"`
	Abreviatura string          `json:"abreviatura"`
	Metrica     string          `json:"metrica"`
	Tipo        string          `json:"tipo"`
	ValorXHora  decimal.Decimal `json:"valorXhora"`
}

// ConfiguracionDTO configuración con sus asignaciones.
type ConfiguracionDTO struct {
	ID          int                    `json:"id"`
	Nombre      string                 `json:"nombre"`
	Descripcion string                 `json:"descripcion"`
	IDCategoria int                    `json:"idCategoria"`
	Recursos    []AsignacionRecursoDTO `json:"recursos"`
}

// CategoriaDTO categoría con sus configuraciones.
type CategoriaDTO struct {
	ID              int                `json:"id"`
	Nombre          string             `json:"nombre"`
	Descripcion     string             `json:"descripcion"`
	CargaTrabajo    string             `json:"cargaTrabajo"`
	Configuraciones []ConfiguracionDTO `json:"configuraciones"`
}

// ConsumoDTO evento de uso de una instancia.
type ConsumoDTO struct {
	Tiempo    decimal.Decimal `json:"tiempo"`
	FechaHora string          `json:"fechahora"`
}

// InstanciaDTO instancia con su historial de consumo.
type InstanciaDTO struct {
	ID              int          `json:"id"`
	IDConfiguracion int          `json:"idConfiguracion"`
	Nombre          string       `json:"nombre"`
	FechaInicio     string       `json:"fechaInicio"`
	Estado          string       `json:"estado"`
	FechaFinal      string       `json:"fechaFinal,omitempty"`
	NITCliente      string       `json:"nitCliente"`
	Consumos        []ConsumoDTO `json:"consumos"`
}

// ClienteDTO cliente con sus instancias.
type ClienteDTO struct {
	NIT        string         `json:"nit"`
	Nombre     string         `json:"nombre"`
	Usuario    string         `json:"usuario"`
	Direccion  string         `json:"direccion"`
	Correo     string         `json:"correoElectronico"`
	Instancias []InstanciaDTO `json:"instancias"`
}

// DatosDTO snapshot completo de las colecciones del sistema.
type DatosDTO struct {
	Recursos   []RecursoDTO   `json:"recursos"`
	Categorias []CategoriaDTO `json:"categorias"`
	Clientes   []ClienteDTO   `json:"clientes"`
	Facturas   []FacturaDTO   `json:"facturas"`
}
