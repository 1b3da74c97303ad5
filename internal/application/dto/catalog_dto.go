package dto

import "github.com/shopspring/decimal"

// ── Creación directa de entidades de catálogo ─────────────────────────────────

// CrearRecursoRequest cuerpo de POST /crearRecurso.
type CrearRecursoRequest struct {
	ID          int             `json:"id"`
	Nombre      string          `json:"nombre"`
	Abreviatura string          `json:"abreviatura"`
	Metrica     string          `json:"metrica"`
	Tipo        string          `json:"tipo"` // Hardware | Software
	ValorXHora  decimal.Decimal `json:"valorXhora"`
}

// CrearCategoriaRequest cuerpo de POST /crearCategoria.
type CrearCategoriaRequest struct {
	ID           int    `json:"id"`
	Nombre       string `json:"nombre"`
	Descripcion  string `json:"descripcion"`
	CargaTrabajo string `json:"cargaTrabajo"`
}

// AsignacionRecursoDTO par (recurso, cantidad por hora) dentro de una
// configuración.
type AsignacionRecursoDTO struct {
	IDRecurso int             `json:"idRecurso"`
	Cantidad  decimal.Decimal `json:"cantidad"`
}

// CrearConfiguracionRequest cuerpo de POST /crearConfiguracion.
type CrearConfiguracionRequest struct {
	ID          int                    `json:"id"`
	Nombre      string                 `json:"nombre"`
	Descripcion string                 `json:"descripcion"`
	IDCategoria int                    `json:"idCategoria"`
	Recursos    []AsignacionRecursoDTO `json:"recursos"`
}

// CrearClienteRequest cuerpo de POST /crearCliente.
type CrearClienteRequest struct {
	NIT       string `json:"nit"`
	Nombre    string `json:"nombre"`
	Usuario   string `json:"usuario"`
	Clave     string `json:"clave"`
	Direccion string `json:"direccion"`
	Correo    string `json:"correoElectronico"`
}

// CrearInstanciaRequest cuerpo de POST /crearInstancia.
type CrearInstanciaRequest struct {
	ID              int    `json:"id"`
	IDConfiguracion int    `json:"idConfiguracion"`
	Nombre          string `json:"nombre"`
	FechaInicio     string `json:"fechaInicio"` // dd/mm/yyyy
	NITCliente      string `json:"nitCliente"`
}

// ── Operaciones de instancia ──────────────────────────────────────────────────

// CancelarInstanciaRequest cuerpo de POST /cancelarInstancia.
type CancelarInstanciaRequest struct {
	IDInstancia int    `json:"idInstancia"`
	NITCliente  string `json:"nitCliente"`
	FechaFinal  string `json:"fechaFinal"` // dd/mm/yyyy
}

// RegistrarConsumoRequest registro directo de un consumo.
type RegistrarConsumoRequest struct {
	IDInstancia int             `json:"idInstancia"`
	NITCliente  string          `json:"nitCliente"`
	Tiempo      decimal.Decimal `json:"tiempo"`    // horas, > 0
	FechaHora   string          `json:"fechahora"` // dd/mm/yyyy hh:mm
}
