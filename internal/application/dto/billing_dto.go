package dto

import "github.com/shopspring/decimal"

// GenerarFacturasRequest parámetros de POST /generarFactura.
type GenerarFacturasRequest struct {
	FechaInicio string `json:"fechaInicio"` // dd/mm/yyyy
	FechaFin    string `json:"fechaFin"`    // dd/mm/yyyy
}

// DetalleFacturaDTO línea de factura de una instancia.
type DetalleFacturaDTO struct {
	IDInstancia int             `json:"idInstancia"`
	TiempoTotal decimal.Decimal `json:"tiempoTotal"` // horas facturadas
	Monto       decimal.Decimal `json:"monto"`
}

// FacturaDTO factura completa de un cliente para un período.
type FacturaDTO struct {
	ID           int                 `json:"id"`
	NITCliente   string              `json:"nitCliente"`
	FechaEmision string              `json:"fechaEmision"`
	Periodo      string              `json:"periodo"` // "inicio - fin"
	MontoTotal   decimal.Decimal     `json:"montoTotal"`
	Detalles     []DetalleFacturaDTO `json:"detalles"`
}

// OmisionDTO diagnóstico de una unidad de trabajo saltada por referencia
// colgante durante una corrida de facturación. La política es leniente
// (se omite, no se falla); esto conserva la observabilidad.
type OmisionDTO struct {
	Entidad    string `json:"entidad"`    // cliente | configuracion | consumo
	Referencia string `json:"referencia"` // NIT o ID que no resolvió
	Motivo     string `json:"motivo"`
}

// ResultadoFacturacionDTO resultado de una corrida de facturación.
type ResultadoFacturacionDTO struct {
	FacturasGeneradas int          `json:"facturas_generadas"`
	Detalle           []FacturaDTO `json:"detalle"`
	Omitidos          []OmisionDTO `json:"omitidos,omitempty"`
}
