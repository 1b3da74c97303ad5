// Package reports deriva los desgloses de ingresos por categoría y por
// recurso a partir de las facturas del período.
//
// El reporte por defecto es una consulta pura sobre las facturas ya
// persistidas cuyo período se solapa con la ventana pedida. El modo
// Regenerar ejecuta primero la facturación y resume ese lote recién
// generado, con su efecto de anexar facturas al store; existe para
// consumidores que esperan la rederivación en cada consulta.
package reports

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/cloud-billing/internal/application/billing"
	"github.com/tu-usuario/cloud-billing/internal/application/dto"
	"github.com/tu-usuario/cloud-billing/internal/domain"
	"github.com/tu-usuario/cloud-billing/internal/domain/entity"
	"github.com/tu-usuario/cloud-billing/internal/store"
	"github.com/tu-usuario/cloud-billing/pkg/fechas"
)

// MensajeSinDatos respuesta informativa cuando no hay facturas en la
// ventana: no es un error.
const MensajeSinDatos = "No hay facturas en el período seleccionado"

// Service genera los reportes analíticos.
type Service struct {
	store   *store.Store
	billing *billing.Service
	log     zerolog.Logger
}

// New construye el servicio.
func New(s *store.Store, b *billing.Service, log zerolog.Logger) *Service {
	return &Service{store: s, billing: b, log: log}
}

// Generar produce el reporte analítico del período.
func (s *Service) Generar(req dto.ReporteAnaliticoRequest) (*dto.ReporteAnaliticoDTO, error) {
	if req.TipoReporte != dto.ReporteCategorias && req.TipoReporte != dto.ReporteRecursos {
		return nil, domain.ErrInvalidInput
	}
	if !fechas.RangoValido(req.FechaInicio, req.FechaFin) {
		return nil, domain.ErrRangoFechasInvalido
	}

	var facturas []*entity.Factura
	if req.Regenerar {
		antes := len(s.store.Facturas())
		if _, err := s.billing.GenerarFacturas(req.FechaInicio, req.FechaFin); err != nil {
			return nil, err
		}
		facturas = s.store.Facturas()[antes:]
	} else {
		facturas = s.facturasDelPeriodo(req.FechaInicio, req.FechaFin)
	}

	if len(facturas) == 0 {
		return &dto.ReporteAnaliticoDTO{Mensaje: MensajeSinDatos}, nil
	}

	s.log.Info().
		Str("tipo", req.TipoReporte).
		Str("periodo", req.FechaInicio+" - "+req.FechaFin).
		Int("facturas", len(facturas)).
		Bool("regenerar", req.Regenerar).
		Msg("reporte analítico")

	switch req.TipoReporte {
	case dto.ReporteCategorias:
		return &dto.ReporteAnaliticoDTO{Categorias: s.ingresosPorCategoria(facturas)}, nil
	default:
		return &dto.ReporteAnaliticoDTO{Recursos: s.ingresosPorRecurso(facturas)}, nil
	}
}

// facturasDelPeriodo filtra las facturas persistidas cuyo período se
// solapa con [inicio, fin]. La etiqueta de período es "inicio - fin";
// las que no parsean se saltan.
func (s *Service) facturasDelPeriodo(inicio, fin string) []*entity.Factura {
	var out []*entity.Factura
	for _, f := range s.store.Facturas() {
		fInicio, fFin, ok := strings.Cut(f.Periodo, " - ")
		if !ok {
			continue
		}
		ti, err := fechas.Parsear(fInicio)
		if err != nil {
			continue
		}
		tf, err := fechas.Parsear(fFin)
		if err != nil {
			continue
		}
		tInicio, err := fechas.Parsear(inicio)
		if err != nil {
			continue
		}
		tFin, err := fechas.Parsear(fin)
		if err != nil {
			continue
		}
		if !ti.After(tFin) && !tf.Before(tInicio) {
			out = append(out, f)
		}
	}
	return out
}

// ingresosPorCategoria acumula, por categoría, las configuraciones e
// instancias distintas vistas y la suma de montos de las líneas. Las
// referencias colgantes se saltan. El orden es de primera aparición.
func (s *Service) ingresosPorCategoria(facturas []*entity.Factura) []dto.CategoriaReporteDTO {
	type acumulado struct {
		nombre          string
		configuraciones map[int]struct{}
		instancias      map[int]struct{}
		ingresos        decimal.Decimal
	}
	porCategoria := make(map[int]*acumulado)
	var orden []int

	for _, f := range facturas {
		for _, det := range f.Detalles {
			inst, ok := s.store.Instancia(det.IDInstancia)
			if !ok {
				continue
			}
			conf, ok := s.store.Configuracion(inst.IDConfiguracion)
			if !ok {
				continue
			}
			cat, ok := s.store.Categoria(conf.IDCategoria)
			if !ok {
				continue
			}

			acc, visto := porCategoria[cat.ID]
			if !visto {
				acc = &acumulado{
					nombre:          cat.Nombre,
					configuraciones: make(map[int]struct{}),
					instancias:      make(map[int]struct{}),
					ingresos:        decimal.Zero,
				}
				porCategoria[cat.ID] = acc
				orden = append(orden, cat.ID)
			}
			acc.configuraciones[conf.ID] = struct{}{}
			acc.instancias[inst.ID] = struct{}{}
			acc.ingresos = acc.ingresos.Add(det.Monto)
		}
	}

	out := make([]dto.CategoriaReporteDTO, 0, len(orden))
	for _, id := range orden {
		acc := porCategoria[id]
		out = append(out, dto.CategoriaReporteDTO{
			ID:              id,
			Nombre:          acc.nombre,
			Configuraciones: len(acc.configuraciones),
			Instancias:      len(acc.instancias),
			Ingresos:        acc.ingresos,
		})
	}
	return out
}

// ingresosPorRecurso prorratea el monto y las horas de cada línea entre
// los recursos de la configuración de su instancia, según la fracción
// del costo por hora que aporta cada recurso. Configuraciones con costo
// cero se saltan (no hay proporción que repartir).
func (s *Service) ingresosPorRecurso(facturas []*entity.Factura) []dto.RecursoReporteDTO {
	type acumulado struct {
		nombre   string
		tipo     string
		usoTotal decimal.Decimal
		ingresos decimal.Decimal
	}
	porRecurso := make(map[int]*acumulado)
	var orden []int

	for _, f := range facturas {
		for _, det := range f.Detalles {
			inst, ok := s.store.Instancia(det.IDInstancia)
			if !ok {
				continue
			}
			conf, ok := s.store.Configuracion(inst.IDConfiguracion)
			if !ok {
				continue
			}
			costoHora := conf.CostoHora(s.store.Catalogo())
			if !costoHora.IsPositive() || !det.TiempoTotal.IsPositive() {
				continue
			}

			for _, asig := range conf.Recursos {
				recurso, ok := s.store.Recurso(asig.IDRecurso)
				if !ok {
					continue
				}
				costoRecurso := recurso.ValorHora.Mul(asig.Cantidad)
				proporcion := costoRecurso.Div(costoHora)
				montoRecurso := det.Monto.Mul(proporcion)
				usoRecurso := asig.Cantidad.Mul(det.TiempoTotal)

				acc, visto := porRecurso[recurso.ID]
				if !visto {
					acc = &acumulado{
						nombre:   recurso.Nombre,
						tipo:     recurso.Tipo,
						usoTotal: decimal.Zero,
						ingresos: decimal.Zero,
					}
					porRecurso[recurso.ID] = acc
					orden = append(orden, recurso.ID)
				}
				acc.usoTotal = acc.usoTotal.Add(usoRecurso)
				acc.ingresos = acc.ingresos.Add(montoRecurso)
			}
		}
	}

	out := make([]dto.RecursoReporteDTO, 0, len(orden))
	for _, id := range orden {
		acc := porRecurso[id]
		out = append(out, dto.RecursoReporteDTO{
			ID:       id,
			Nombre:   acc.nombre,
			Tipo:     acc.tipo,
			UsoTotal: acc.usoTotal,
			Ingresos: acc.ingresos,
		})
	}
	return out
}
