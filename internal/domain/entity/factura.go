package entity

import "github.com/shopspring/decimal"

// DetalleFactura es una línea de factura: lo facturado a una instancia
// en el período.
type DetalleFactura struct {
	IDInstancia int
	TiempoTotal decimal.Decimal // horas facturadas en el período
	Monto       decimal.Decimal
}

// Factura es el artefacto de cobro de un cliente para un rango de
// fechas. Inmutable una vez generada; solo se le agregan detalles
// durante su construcción.
type Factura struct {
	ID           int
	NITCliente   string
	FechaEmision string // dd/mm/yyyy
	Periodo      string // "inicio - fin"
	MontoTotal   decimal.Decimal
	Detalles     []DetalleFactura
}

// AgregarDetalle añade una línea y acumula su monto en el total.
func (f *Factura) AgregarDetalle(d DetalleFactura) {
	f.Detalles = append(f.Detalles, d)
	f.MontoTotal = f.MontoTotal.Add(d.Monto)
}
