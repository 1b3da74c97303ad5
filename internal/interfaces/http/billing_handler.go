package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/tu-usuario/cloud-billing/internal/application/billing"
	"github.com/tu-usuario/cloud-billing/internal/application/dto"
	"github.com/tu-usuario/cloud-billing/internal/application/reports"
	"github.com/tu-usuario/cloud-billing/internal/domain"
	"github.com/tu-usuario/cloud-billing/internal/infrastructure/pdf"
	"github.com/tu-usuario/cloud-billing/internal/infrastructure/xmlstore"
	"github.com/tu-usuario/cloud-billing/internal/store"
)

// BillingHandler maneja la generación de facturas, los reportes
// analíticos y los PDFs.
type BillingHandler struct {
	billing *billing.Service
	reports *reports.Service
	pdf     *pdf.Generator
	st      *store.Store
	xml     *xmlstore.Store
	log     zerolog.Logger
}

// NewBillingHandler construye el handler.
func NewBillingHandler(b *billing.Service, r *reports.Service, g *pdf.Generator, st *store.Store, xml *xmlstore.Store, log zerolog.Logger) *BillingHandler {
	return &BillingHandler{billing: b, reports: r, pdf: g, st: st, xml: xml, log: log}
}

// GenerarFacturas corre la facturación de un período: una factura por
// cliente con instancias vigentes y consumo en el rango.
// POST /generarFactura
func (h *BillingHandler) GenerarFacturas(c *fiber.Ctx) error {
	h.st.Lock()
	defer h.st.Unlock()
	var in dto.GenerarFacturasRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	resultado, err := h.billing.GenerarFacturas(in.FechaInicio, in.FechaFin)
	if err != nil {
		return respuestaError(c, err)
	}
	if err := h.xml.Guardar(h.st); err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(resultado)
}

// ReporteAnalitico resume ingresos del período por categoría o por
// recurso. Con regenerar=true primero corre la facturación del período
// y resume ese lote, lo que anexa facturas al estado.
// POST /reporte/analitico
func (h *BillingHandler) ReporteAnalitico(c *fiber.Ctx) error {
	h.st.Lock()
	defer h.st.Unlock()
	var in dto.ReporteAnaliticoRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	resultado, err := h.reports.Generar(in)
	if err != nil {
		return respuestaError(c, err)
	}
	if in.Regenerar {
		if err := h.xml.Guardar(h.st); err != nil {
			return respuestaError(c, err)
		}
	}
	return c.JSON(resultado)
}

// DetalleFacturaPDF escribe el PDF de una factura y devuelve su ruta.
// POST /reporte/pdf/detalle-factura
func (h *BillingHandler) DetalleFacturaPDF(c *fiber.Ctx) error {
	h.st.Lock()
	defer h.st.Unlock()
	var in dto.DetalleFacturaPDFRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	factura, ok := h.st.Factura(in.IDFactura)
	if !ok {
		return respuestaError(c, domain.ErrNotFound)
	}
	ruta, err := h.pdf.DetalleFactura(factura, h.st)
	if err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(dto.RutaReporteDTO{Mensaje: "PDF generado exitosamente", Ruta: ruta})
}

// AnalisisVentasPDF corre el reporte analítico y escribe su PDF.
// POST /reporte/pdf/analisis-ventas
func (h *BillingHandler) AnalisisVentasPDF(c *fiber.Ctx) error {
	h.st.Lock()
	defer h.st.Unlock()
	var in dto.ReporteAnaliticoRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	resultado, err := h.reports.Generar(in)
	if err != nil {
		return respuestaError(c, err)
	}
	if in.Regenerar {
		if err := h.xml.Guardar(h.st); err != nil {
			return respuestaError(c, err)
		}
	}
	ruta, err := h.pdf.AnalisisVentas(resultado, in.TipoReporte, in.FechaInicio, in.FechaFin)
	if err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(dto.RutaReporteDTO{Mensaje: "PDF generado exitosamente", Ruta: ruta})
}
