package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/tu-usuario/cloud-billing/internal/application/billing"
	"github.com/tu-usuario/cloud-billing/internal/application/catalog"
	"github.com/tu-usuario/cloud-billing/internal/application/reports"
	"github.com/tu-usuario/cloud-billing/internal/application/usage"
	"github.com/tu-usuario/cloud-billing/internal/infrastructure/ingest"
	"github.com/tu-usuario/cloud-billing/internal/infrastructure/pdf"
	"github.com/tu-usuario/cloud-billing/internal/infrastructure/xmlstore"
	"github.com/tu-usuario/cloud-billing/internal/store"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Store    *store.Store
	XMLStore *xmlstore.Store
	Catalog  *catalog.UseCase
	Usage    *usage.UseCase
	Ingest   *ingest.Procesador
	Billing  *billing.Service
	Reports  *reports.Service
	PDF      *pdf.Generator
	Log      zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Carga masiva por XML
	ingestHandler := NewIngestHandler(deps.Ingest, deps.Store, deps.XMLStore, deps.Log)
	app.Post("/configuracion", ingestHandler.Configuracion)
	app.Post("/consumo", ingestHandler.Consumo)

	// Catálogo y estado
	catalogHandler := NewCatalogHandler(deps.Catalog, deps.Store, deps.XMLStore, deps.Log)
	app.Get("/consultarDatos", catalogHandler.ConsultarDatos)
	app.Post("/crearRecurso", catalogHandler.CrearRecurso)
	app.Post("/crearCategoria", catalogHandler.CrearCategoria)
	app.Post("/crearConfiguracion", catalogHandler.CrearConfiguracion)
	app.Post("/crearCliente", catalogHandler.CrearCliente)
	app.Post("/crearInstancia", catalogHandler.CrearInstancia)
	app.Post("/reset", catalogHandler.Reset)

	// Ciclo de vida de instancias
	usageHandler := NewUsageHandler(deps.Usage, deps.Store, deps.XMLStore, deps.Log)
	app.Post("/registrarConsumo", usageHandler.RegistrarConsumo)
	app.Post("/cancelarInstancia", usageHandler.CancelarInstancia)

	// Facturación y reportes
	billingHandler := NewBillingHandler(deps.Billing, deps.Reports, deps.PDF, deps.Store, deps.XMLStore, deps.Log)
	app.Post("/generarFactura", billingHandler.GenerarFacturas)
	app.Post("/reporte/analitico", billingHandler.ReporteAnalitico)
	app.Post("/reporte/pdf/detalle-factura", billingHandler.DetalleFacturaPDF)
	app.Post("/reporte/pdf/analisis-ventas", billingHandler.AnalisisVentasPDF)
}
