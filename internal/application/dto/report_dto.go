package dto

import "github.com/shopspring/decimal"

// Tipos de reporte analítico admitidos.
const (
	ReporteCategorias = "categorias"
	ReporteRecursos   = "recursos"
)

// ReporteAnaliticoRequest parámetros de POST /reporte/analitico.
type ReporteAnaliticoRequest struct {
	FechaInicio string `json:"fechaInicio"`
	FechaFin    string `json:"fechaFin"`
	TipoReporte string `json:"tipoReporte"` // categorias | recursos
	// Regenerar ejecuta primero la facturación del período y resume ese
	// lote recién generado, con su efecto de anexar facturas al store.
	// En falso el reporte es una consulta pura sobre facturas existentes.
	Regenerar bool `json:"regenerar"`
}

// CategoriaReporteDTO ingresos acumulados de una categoría en el período.
type CategoriaReporteDTO struct {
	ID              int             `json:"id"`
	Nombre          string          `json:"nombre"`
	Configuraciones int             `json:"configuraciones"` // configuraciones distintas vistas
	Instancias      int             `json:"instancias"`      // instancias distintas vistas
	Ingresos        decimal.Decimal `json:"ingresos"`
}

// RecursoReporteDTO ingresos y uso prorrateados a un recurso en el período.
type RecursoReporteDTO struct {
	ID       int             `json:"id"`
	Nombre   string          `json:"nombre"`
	Tipo     string          `json:"tipo"`
	UsoTotal decimal.Decimal `json:"uso_total"`
	Ingresos decimal.Decimal `json:"ingresos"`
}

// DetalleFacturaPDFRequest parámetros de POST /reporte/pdf/detalle-factura.
type DetalleFacturaPDFRequest struct {
	IDFactura int `json:"idFactura"`
}

// RutaReporteDTO respuesta de los endpoints que escriben un PDF en disco.
type RutaReporteDTO struct {
	Mensaje string `json:"mensaje"`
	Ruta    string `json:"ruta"`
}

// ReporteAnaliticoDTO resultado del reporte. Exactamente uno de Mensaje,
// Categorias o Recursos viene poblado: Mensaje distingue "sin datos en
// el período" de un error. Las listas van en orden de primera aparición.
type ReporteAnaliticoDTO struct {
	Mensaje    string                `json:"mensaje,omitempty"`
	Categorias []CategoriaReporteDTO `json:"categorias,omitempty"`
	Recursos   []RecursoReporteDTO   `json:"recursos,omitempty"`
}
