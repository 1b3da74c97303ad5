package pdf_test

import (
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/cloud-billing/internal/application/dto"
	"github.com/tu-usuario/cloud-billing/internal/domain/entity"
	"github.com/tu-usuario/cloud-billing/internal/infrastructure/pdf"
	"github.com/tu-usuario/cloud-billing/internal/store"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func leerPDF(t *testing.T, ruta string) []byte {
	t.Helper()
	data, err := os.ReadFile(ruta)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]), "el archivo debe ser un PDF válido")
	return data
}

func TestDetalleFactura_EscribePDF(t *testing.T) {
	s := store.New()
	require.NoError(t, s.AgregarRecurso(&entity.Recurso{
		ID: 1, Nombre: "vCPU", Tipo: entity.TipoHardware, ValorHora: dec("2.00"),
	}))
	require.NoError(t, s.AgregarCategoria(&entity.Categoria{ID: 5, Nombre: "Cómputo"}))
	conf := &entity.Configuracion{ID: 10, Nombre: "Pequeña", IDCategoria: 5}
	conf.AgregarRecurso(entity.AsignacionRecurso{IDRecurso: 1, Cantidad: dec("3")})
	require.NoError(t, s.AgregarConfiguracion(conf))
	require.NoError(t, s.AgregarCliente(&entity.Cliente{
		NIT: "34300-4", Nombre: "ACME", Direccion: "Av. Siempre Viva 1", Correo: "ops@acme.example",
	}))
	require.NoError(t, s.AgregarInstancia(&entity.Instancia{
		ID: 100, IDConfiguracion: 10, Nombre: "acme-web",
		FechaInicio: "01/01/2025", Estado: entity.EstadoVigente, NITCliente: "34300-4",
	}))

	factura := &entity.Factura{
		ID: 1, NITCliente: "34300-4", FechaEmision: "01/02/2025",
		Periodo: "01/01/2025 - 31/01/2025",
	}
	factura.AgregarDetalle(entity.DetalleFactura{IDInstancia: 100, TiempoTotal: dec("5"), Monto: dec("30.00")})

	g, err := pdf.NewGenerator(t.TempDir())
	require.NoError(t, err)

	ruta, err := g.DetalleFactura(factura, s)
	require.NoError(t, err)
	leerPDF(t, ruta)
}

func TestDetalleFactura_ReferenciaColgante(t *testing.T) {
	// Una factura cuya instancia ya no existe se renderiza con "N/A"
	// en lugar de fallar.
	factura := &entity.Factura{ID: 2, NITCliente: "34300-4", Periodo: "01/01/2025 - 31/01/2025"}
	factura.AgregarDetalle(entity.DetalleFactura{IDInstancia: 999, TiempoTotal: dec("1"), Monto: dec("1.00")})

	g, err := pdf.NewGenerator(t.TempDir())
	require.NoError(t, err)

	ruta, err := g.DetalleFactura(factura, store.New())
	require.NoError(t, err)
	leerPDF(t, ruta)
}

func TestAnalisisVentas_PorCategorias(t *testing.T) {
	g, err := pdf.NewGenerator(t.TempDir())
	require.NoError(t, err)

	reporte := &dto.ReporteAnaliticoDTO{
		Categorias: []dto.CategoriaReporteDTO{
			{ID: 5, Nombre: "Cómputo", Configuraciones: 2, Instancias: 3, Ingresos: dec("150.00")},
			{ID: 6, Nombre: "Almacenamiento", Configuraciones: 1, Instancias: 1, Ingresos: dec("40.00")},
		},
	}
	ruta, err := g.AnalisisVentas(reporte, dto.ReporteCategorias, "01/01/2025", "31/01/2025")
	require.NoError(t, err)
	leerPDF(t, ruta)
}

func TestAnalisisVentas_SinDatos(t *testing.T) {
	g, err := pdf.NewGenerator(t.TempDir())
	require.NoError(t, err)

	reporte := &dto.ReporteAnaliticoDTO{Mensaje: "No hay facturas en el período seleccionado"}
	ruta, err := g.AnalisisVentas(reporte, dto.ReporteRecursos, "01/01/2025", "31/01/2025")
	require.NoError(t, err)
	leerPDF(t, ruta)
}
