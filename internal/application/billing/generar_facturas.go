// Package billing implementa el motor de facturación: recorre las
// instancias de cada cliente, filtra su historial de consumo al período
// pedido y produce una factura por cliente con una línea por instancia
// con uso facturable.
package billing

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/cloud-billing/internal/application/catalog"
	"github.com/tu-usuario/cloud-billing/internal/application/dto"
	"github.com/tu-usuario/cloud-billing/internal/domain"
	"github.com/tu-usuario/cloud-billing/internal/domain/entity"
	"github.com/tu-usuario/cloud-billing/internal/store"
	"github.com/tu-usuario/cloud-billing/pkg/fechas"
)

// Options opciones del motor.
type Options struct {
	// LexicographicDates filtra consumos comparando strings dd/mm/yyyy
	// en lugar de fechas calendario. Esa comparación no coincide
	// con el orden cronológico cuando el rango cruza un mes o un año;
	// existe solo para compatibilidad con consumidores que dependan del
	// comportamiento histórico. Por defecto se comparan fechas
	// calendario parseadas.
	LexicographicDates bool
}

// Service genera facturas sobre el agregado de entidades.
type Service struct {
	store *store.Store
	log   zerolog.Logger
	opts  Options
}

// New construye el servicio.
func New(s *store.Store, log zerolog.Logger, opts Options) *Service {
	return &Service{store: s, log: log, opts: opts}
}

// GenerarFacturas factura a todos los clientes con consumo facturable en
// [fechaInicio, fechaFin] (inclusive, dd/mm/yyyy).
//
//   - Un rango mal formado o invertido devuelve ErrRangoFechasInvalido
//     sin crear nada.
//   - Se emite a lo sumo una factura por cliente por corrida, en orden
//     de primera aparición entre las instancias.
//   - Los IDs se asignan como (max existente) + 1 al momento de generar.
//   - Las facturas sin líneas se descartan; las referencias colgantes se
//     omiten y quedan reportadas en el resultado.
//
// Muta el store (anexa facturas); no toca instancias ni consumos.
// Volver a ejecutar con la misma ventana anexa un segundo lote.
func (s *Service) GenerarFacturas(fechaInicio, fechaFin string) (*dto.ResultadoFacturacionDTO, error) {
	if !fechas.RangoValido(fechaInicio, fechaFin) {
		return nil, domain.ErrRangoFechasInvalido
	}

	resultado := &dto.ResultadoFacturacionDTO{Detalle: []dto.FacturaDTO{}}
	procesados := make(map[string]bool)
	facturaID := s.store.SiguienteIDFactura()

	for _, inst := range s.store.Instancias() {
		if procesados[inst.NITCliente] {
			continue
		}
		procesados[inst.NITCliente] = true

		factura := s.facturarCliente(inst.NITCliente, fechaInicio, fechaFin, facturaID, resultado)
		if factura == nil {
			continue
		}
		s.store.AgregarFactura(factura)
		resultado.Detalle = append(resultado.Detalle, catalog.FacturaDTO(factura))
		facturaID++
	}

	resultado.FacturasGeneradas = len(resultado.Detalle)
	s.log.Info().
		Str("periodo", fechaInicio+" - "+fechaFin).
		Int("facturas", resultado.FacturasGeneradas).
		Int("omitidos", len(resultado.Omitidos)).
		Msg("facturación completada")
	return resultado, nil
}

// facturarCliente arma la factura de un cliente; devuelve nil si el
// cliente no resuelve o si ninguna instancia tuvo uso facturable.
func (s *Service) facturarCliente(nitCliente, fechaInicio, fechaFin string, facturaID int, resultado *dto.ResultadoFacturacionDTO) *entity.Factura {
	cliente, ok := s.store.Cliente(nitCliente)
	if !ok {
		s.omitir(resultado, "cliente", nitCliente, "NIT sin cliente registrado")
		return nil
	}

	factura := &entity.Factura{
		ID:           facturaID,
		NITCliente:   nitCliente,
		FechaEmision: fechas.Hoy(),
		Periodo:      fmt.Sprintf("%s - %s", fechaInicio, fechaFin),
	}

	for _, inst := range cliente.Instancias {
		if !inst.Vigente() {
			continue
		}
		conf, ok := s.store.Configuracion(inst.IDConfiguracion)
		if !ok {
			s.omitir(resultado, "configuracion", strconv.Itoa(inst.IDConfiguracion),
				fmt.Sprintf("instancia %d referencia una configuración inexistente", inst.ID))
			continue
		}

		costoHora := conf.CostoHora(s.store.Catalogo())
		tiempoTotal := s.tiempoFacturable(inst, fechaInicio, fechaFin)
		monto := costoHora.Mul(tiempoTotal)
		if monto.IsPositive() {
			factura.AgregarDetalle(entity.DetalleFactura{
				IDInstancia: inst.ID,
				TiempoTotal: tiempoTotal,
				Monto:       monto,
			})
		}
	}

	if len(factura.Detalles) == 0 {
		return nil
	}
	return factura
}

// tiempoFacturable suma las horas de los consumos cuya porción de fecha
// cae dentro del período. Las marcas mal formadas se saltan sin reportar
// error.
func (s *Service) tiempoFacturable(inst *entity.Instancia, fechaInicio, fechaFin string) decimal.Decimal {
	total := decimal.Zero
	for _, c := range inst.Consumos {
		fecha := fechas.FechaDeMarca(c.FechaHora)
		var enRango bool
		if s.opts.LexicographicDates {
			enRango = fechas.EnRangoLexicografico(fecha, fechaInicio, fechaFin)
		} else {
			enRango = fechas.EnRango(fecha, fechaInicio, fechaFin)
		}
		if enRango {
			total = total.Add(c.Tiempo)
		}
	}
	return total
}

func (s *Service) omitir(resultado *dto.ResultadoFacturacionDTO, entidad, referencia, motivo string) {
	resultado.Omitidos = append(resultado.Omitidos, dto.OmisionDTO{
		Entidad:    entidad,
		Referencia: referencia,
		Motivo:     motivo,
	})
	s.log.Debug().
		Str("entidad", entidad).
		Str("referencia", referencia).
		Str("motivo", motivo).
		Msg("unidad omitida en facturación")
}
