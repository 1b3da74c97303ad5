// Package pdf genera las representaciones PDF del sistema con Maroto v2:
// el detalle de una factura (cabecera, cliente, líneas por instancia y
// desglose de recursos) y el análisis de ventas por categoría o por
// recurso.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/cloud-billing/internal/application/dto"
	"github.com/tu-usuario/cloud-billing/internal/domain/entity"
	"github.com/tu-usuario/cloud-billing/internal/store"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Generator produce los PDFs del sistema y los guarda en disco.
type Generator struct {
	dir string // directorio de salida de reportes
}

// NewGenerator construye el generador y asegura el directorio de salida.
func NewGenerator(dir string) (*Generator, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de reportes: %w", err)
	}
	return &Generator{dir: dir}, nil
}

// guardar escribe los bytes con un nombre único y devuelve la ruta.
func (g *Generator) guardar(prefijo string, data []byte) (string, error) {
	nombre := fmt.Sprintf("%s_%s.pdf", prefijo, uuid.New().String())
	ruta := filepath.Join(g.dir, nombre)
	if err := os.WriteFile(ruta, data, 0o644); err != nil {
		return "", fmt.Errorf("escribir PDF: %w", err)
	}
	return ruta, nil
}

func nuevoDocumento(titulo string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(titulo, true).
		Build()
	return maroto.New(cfg)
}

// ── Detalle de factura ────────────────────────────────────────────────────────

// DetalleFactura genera el PDF de una factura y devuelve la ruta del
// archivo escrito. Resuelve instancias, configuraciones y recursos
// contra el store; las referencias colgantes se muestran como "N/A".
func (g *Generator) DetalleFactura(f *entity.Factura, s *store.Store) (string, error) {
	m := nuevoDocumento(fmt.Sprintf("Factura %d", f.ID))

	m.AddRows(tituloRow("DETALLE DE FACTURA"))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(parRow("Número de Factura:", fmt.Sprintf("%d", f.ID)))
	m.AddRows(parRow("NIT:", f.NITCliente))
	m.AddRows(parRow("Fecha de Emisión:", f.FechaEmision))
	m.AddRows(parRow("Período Facturado:", f.Periodo))
	m.AddRows(parRow("Monto Total:", "Q"+f.MontoTotal.StringFixed(2)))

	if cliente, ok := s.Cliente(f.NITCliente); ok {
		m.AddRows(line.NewRow(2))
		m.AddRows(seccionRow("CLIENTE"))
		m.AddRows(parRow("Nombre:", cliente.Nombre))
		m.AddRows(parRow("Dirección:", cliente.Direccion))
		m.AddRows(parRow("Email:", cliente.Correo))
	}

	// Detalle por instancia
	m.AddRows(line.NewRow(2))
	m.AddRows(seccionRow("DETALLE POR INSTANCIA"))
	m.AddRows(cabeceraTabla("Instancia", "Configuración", "Tiempo (hrs)", "Monto (Q)"))
	for _, d := range f.Detalles {
		nombreInstancia, nombreConfig := "N/A", "N/A"
		if inst, ok := s.Instancia(d.IDInstancia); ok {
			nombreInstancia = inst.Nombre
			if conf, ok := s.Configuracion(inst.IDConfiguracion); ok {
				nombreConfig = conf.Nombre
			}
		}
		m.AddRows(filaTabla(nombreInstancia, nombreConfig, d.TiempoTotal.StringFixed(2), d.Monto.StringFixed(2)))
	}

	// Desglose de recursos
	m.AddRows(line.NewRow(2))
	m.AddRows(seccionRow("DESGLOSE DE RECURSOS"))
	m.AddRows(cabeceraTabla("Recurso", "Tipo", "Uso Total", "Costo Total (Q)"))
	for _, r := range g.desgloseRecursos(f, s) {
		m.AddRows(filaTabla(r.nombre, r.tipo, r.uso.StringFixed(2), r.costo.StringFixed(2)))
	}

	doc, err := m.Generate()
	if err != nil {
		return "", fmt.Errorf("pdf: generar factura %d: %w", f.ID, err)
	}
	return g.guardar(fmt.Sprintf("factura_%d", f.ID), doc.GetBytes())
}

type recursoAcumulado struct {
	nombre string
	tipo   string
	uso    decimal.Decimal
	costo  decimal.Decimal
}

// desgloseRecursos acumula uso y costo por recurso sobre las líneas de
// la factura, ordenado por costo descendente.
func (g *Generator) desgloseRecursos(f *entity.Factura, s *store.Store) []recursoAcumulado {
	porRecurso := make(map[int]*recursoAcumulado)
	var orden []int

	for _, d := range f.Detalles {
		inst, ok := s.Instancia(d.IDInstancia)
		if !ok {
			continue
		}
		conf, ok := s.Configuracion(inst.IDConfiguracion)
		if !ok {
			continue
		}
		for _, a := range conf.Recursos {
			recurso, ok := s.Recurso(a.IDRecurso)
			if !ok {
				continue
			}
			acc, visto := porRecurso[recurso.ID]
			if !visto {
				acc = &recursoAcumulado{nombre: recurso.Nombre, tipo: recurso.Tipo}
				porRecurso[recurso.ID] = acc
				orden = append(orden, recurso.ID)
			}
			acc.uso = acc.uso.Add(a.Cantidad.Mul(d.TiempoTotal))
			acc.costo = acc.costo.Add(recurso.ValorHora.Mul(a.Cantidad).Mul(d.TiempoTotal))
		}
	}

	out := make([]recursoAcumulado, 0, len(orden))
	for _, id := range orden {
		out = append(out, *porRecurso[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].costo.GreaterThan(out[j].costo)
	})
	return out
}

// ── Análisis de ventas ────────────────────────────────────────────────────────

// AnalisisVentas genera el PDF del reporte analítico (por categorías o
// por recursos) y devuelve la ruta del archivo escrito.
func (g *Generator) AnalisisVentas(reporte *dto.ReporteAnaliticoDTO, tipo, fechaInicio, fechaFin string) (string, error) {
	m := nuevoDocumento("Análisis de ventas")

	m.AddRows(tituloRow("ANÁLISIS DE VENTAS - " + tipo))
	m.AddRows(textoRow(fmt.Sprintf("Período: %s a %s", fechaInicio, fechaFin)))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))

	switch {
	case reporte.Mensaje != "":
		m.AddRows(textoRow(reporte.Mensaje))
	case tipo == dto.ReporteCategorias:
		g.tablaCategorias(m, reporte.Categorias)
	default:
		g.tablaRecursos(m, reporte.Recursos)
	}

	doc, err := m.Generate()
	if err != nil {
		return "", fmt.Errorf("pdf: generar análisis de ventas: %w", err)
	}
	return g.guardar("analisis_ventas_"+tipo, doc.GetBytes())
}

func (g *Generator) tablaCategorias(m core.Maroto, categorias []dto.CategoriaReporteDTO) {
	m.AddRows(seccionRow("INGRESOS POR CATEGORÍA"))
	m.AddRows(cabeceraTabla("Categoría", "Configuraciones", "Instancias", "Ingresos (Q)"))

	totalIngresos := decimal.Zero
	totalConfiguraciones, totalInstancias := 0, 0
	for _, c := range categorias {
		m.AddRows(filaTabla(c.Nombre,
			fmt.Sprintf("%d", c.Configuraciones),
			fmt.Sprintf("%d", c.Instancias),
			c.Ingresos.StringFixed(2)))
		totalIngresos = totalIngresos.Add(c.Ingresos)
		totalConfiguraciones += c.Configuraciones
		totalInstancias += c.Instancias
	}
	m.AddRows(filaTotal("TOTAL",
		fmt.Sprintf("%d", totalConfiguraciones),
		fmt.Sprintf("%d", totalInstancias),
		totalIngresos.StringFixed(2)))
}

func (g *Generator) tablaRecursos(m core.Maroto, recursos []dto.RecursoReporteDTO) {
	m.AddRows(seccionRow("INGRESOS POR RECURSO"))
	m.AddRows(cabeceraTabla("Recurso", "Tipo", "Uso Total", "Ingresos (Q)"))

	totalIngresos, totalUso := decimal.Zero, decimal.Zero
	for _, r := range recursos {
		m.AddRows(filaTabla(r.Nombre, r.Tipo, r.UsoTotal.StringFixed(2), r.Ingresos.StringFixed(2)))
		totalIngresos = totalIngresos.Add(r.Ingresos)
		totalUso = totalUso.Add(r.UsoTotal)
	}
	m.AddRows(filaTotal("TOTAL", "", totalUso.StringFixed(2), totalIngresos.StringFixed(2)))
}

// ── Filas reutilizables ───────────────────────────────────────────────────────

func tituloRow(titulo string) core.Row {
	return row.New(12).Add(
		col.New(12).Add(text.New(titulo, props.Text{
			Style: fontstyle.Bold, Size: 16, Align: align.Center, Color: colorPrimary, Top: 1,
		})),
	)
}

func seccionRow(titulo string) core.Row {
	return row.New(8).Add(
		col.New(12).Add(text.New(titulo, props.Text{
			Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 1,
		})),
	)
}

func textoRow(s string) core.Row {
	return row.New(6).Add(
		col.New(12).Add(text.New(s, props.Text{Size: 9, Top: 1, Color: colorGray})),
	)
}

func parRow(etiqueta, valor string) core.Row {
	return row.New(6).Add(
		col.New(4).Add(text.New(etiqueta, props.Text{Style: fontstyle.Bold, Size: 9, Top: 1})),
		col.New(8).Add(text.New(valor, props.Text{Size: 9, Top: 1})),
	)
}

func cabeceraTabla(c1, c2, c3, c4 string) core.Row {
	h := func(label string) core.Col {
		return col.New(3).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Center, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(7).Add(h(c1), h(c2), h(c3), h(c4))
}

func filaTabla(c1, c2, c3, c4 string) core.Row {
	c := func(valor string) core.Col {
		return col.New(3).Add(text.New(valor, props.Text{Size: 8, Align: align.Center, Top: 1}))
	}
	return row.New(6).Add(c(c1), c(c2), c(c3), c(c4))
}

func filaTotal(c1, c2, c3, c4 string) core.Row {
	c := func(valor string) core.Col {
		return col.New(3).Add(text.New(valor, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Center, Top: 1,
		}))
	}
	return row.New(7).Add(c(c1), c(c2), c(c3), c(c4))
}
