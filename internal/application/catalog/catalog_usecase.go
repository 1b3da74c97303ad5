// Package catalog implementa la creación directa de entidades de
// catálogo y de clientes/instancias, con las validaciones de formato y
// de integridad referencial que la ingesta XML aplica por su lado.
package catalog

import (
	"github.com/rs/zerolog"

	"github.com/tu-usuario/cloud-billing/internal/application/dto"
	"github.com/tu-usuario/cloud-billing/internal/domain"
	"github.com/tu-usuario/cloud-billing/internal/domain/entity"
	"github.com/tu-usuario/cloud-billing/internal/store"
	"github.com/tu-usuario/cloud-billing/pkg/fechas"
	"github.com/tu-usuario/cloud-billing/pkg/nit"
)

// UseCase casos de uso de catálogo.
type UseCase struct {
	store *store.Store
	log   zerolog.Logger
}

// New construye el caso de uso.
func New(s *store.Store, log zerolog.Logger) *UseCase {
	return &UseCase{store: s, log: log}
}

// CrearRecurso valida y registra un recurso del catálogo.
func (uc *UseCase) CrearRecurso(in dto.CrearRecursoRequest) error {
	if in.ID <= 0 || in.Nombre == "" || !entity.TipoRecursoValido(in.Tipo) {
		return domain.ErrInvalidInput
	}
	if in.ValorXHora.IsNegative() {
		return domain.ErrInvalidInput
	}
	err := uc.store.AgregarRecurso(&entity.Recurso{
		ID:          in.ID,
		Nombre:      in.Nombre,
		Abreviatura: in.Abreviatura,
		Metrica:     in.Metrica,
		Tipo:        in.Tipo,
		ValorHora:   in.ValorXHora,
	})
	if err != nil {
		return err
	}
	uc.log.Info().Int("id", in.ID).Str("tipo", in.Tipo).Msg("recurso creado")
	return nil
}

// CrearCategoria valida y registra una categoría.
func (uc *UseCase) CrearCategoria(in dto.CrearCategoriaRequest) error {
	if in.ID <= 0 || in.Nombre == "" {
		return domain.ErrInvalidInput
	}
	err := uc.store.AgregarCategoria(&entity.Categoria{
		ID:           in.ID,
		Nombre:       in.Nombre,
		Descripcion:  in.Descripcion,
		CargaTrabajo: in.CargaTrabajo,
	})
	if err != nil {
		return err
	}
	uc.log.Info().Int("id", in.ID).Msg("categoría creada")
	return nil
}

// CrearConfiguracion valida y registra una configuración. Cada
// asignación debe referenciar un recurso existente con cantidad no
// negativa; la categoría debe existir.
func (uc *UseCase) CrearConfiguracion(in dto.CrearConfiguracionRequest) error {
	if in.ID <= 0 || in.Nombre == "" || in.IDCategoria <= 0 {
		return domain.ErrInvalidInput
	}
	conf := &entity.Configuracion{
		ID:          in.ID,
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		IDCategoria: in.IDCategoria,
	}
	for _, a := range in.Recursos {
		if _, ok := uc.store.Recurso(a.IDRecurso); !ok {
			return domain.ErrNotFound
		}
		if a.Cantidad.IsNegative() {
			return domain.ErrInvalidInput
		}
		conf.AgregarRecurso(entity.AsignacionRecurso{IDRecurso: a.IDRecurso, Cantidad: a.Cantidad})
	}
	if err := uc.store.AgregarConfiguracion(conf); err != nil {
		return err
	}
	uc.log.Info().Int("id", in.ID).Int("categoria", in.IDCategoria).Msg("configuración creada")
	return nil
}

// CrearCliente valida el NIT y registra un cliente.
func (uc *UseCase) CrearCliente(in dto.CrearClienteRequest) error {
	if !nit.Valido(in.NIT) {
		return domain.ErrNITInvalido
	}
	if in.Nombre == "" {
		return domain.ErrInvalidInput
	}
	err := uc.store.AgregarCliente(&entity.Cliente{
		NIT:       in.NIT,
		Nombre:    in.Nombre,
		Usuario:   in.Usuario,
		Clave:     in.Clave,
		Direccion: in.Direccion,
		Correo:    in.Correo,
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("nit", in.NIT).Msg("cliente creado")
	return nil
}

// CrearInstancia registra una instancia vigente para un cliente. La
// fecha de inicio puede venir embebida en texto libre; se extrae la
// primera secuencia dd/mm/yyyy válida.
func (uc *UseCase) CrearInstancia(in dto.CrearInstanciaRequest) error {
	if in.ID <= 0 || in.Nombre == "" {
		return domain.ErrInvalidInput
	}
	fechaInicio := fechas.Extraer(in.FechaInicio)
	if fechaInicio == "" {
		return domain.ErrInvalidInput
	}
	err := uc.store.AgregarInstancia(&entity.Instancia{
		ID:              in.ID,
		IDConfiguracion: in.IDConfiguracion,
		Nombre:          in.Nombre,
		FechaInicio:     fechaInicio,
		Estado:          entity.EstadoVigente,
		NITCliente:      in.NITCliente,
	})
	if err != nil {
		return err
	}
	uc.log.Info().Int("id", in.ID).Str("nit", in.NITCliente).Msg("instancia creada")
	return nil
}

// Datos arma el snapshot completo de las colecciones para consulta.
func (uc *UseCase) Datos() dto.DatosDTO {
	out := dto.DatosDTO{
		Recursos:   make([]dto.RecursoDTO, 0, len(uc.store.Recursos())),
		Categorias: make([]dto.CategoriaDTO, 0, len(uc.store.Categorias())),
		Clientes:   make([]dto.ClienteDTO, 0, len(uc.store.Clientes())),
		Facturas:   make([]dto.FacturaDTO, 0, len(uc.store.Facturas())),
	}
	for _, r := range uc.store.Recursos() {
		out.Recursos = append(out.Recursos, dto.RecursoDTO{
			ID:          r.ID,
			Nombre:      r.Nombre,
			Abreviatura: r.Abreviatura,
			Metrica:     r.Metrica,
			Tipo:        r.Tipo,
			ValorXHora:  r.ValorHora,
		})
	}
	for _, c := range uc.store.Categorias() {
		cat := dto.CategoriaDTO{
			ID:              c.ID,
			Nombre:          c.Nombre,
			Descripcion:     c.Descripcion,
			CargaTrabajo:    c.CargaTrabajo,
			Configuraciones: make([]dto.ConfiguracionDTO, 0, len(c.Configuraciones)),
		}
		for _, conf := range c.Configuraciones {
			cat.Configuraciones = append(cat.Configuraciones, configuracionDTO(conf))
		}
		out.Categorias = append(out.Categorias, cat)
	}
	for _, cli := range uc.store.Clientes() {
		out.Clientes = append(out.Clientes, clienteDTO(cli))
	}
	for _, f := range uc.store.Facturas() {
		out.Facturas = append(out.Facturas, FacturaDTO(f))
	}
	return out
}

func configuracionDTO(c *entity.Configuracion) dto.ConfiguracionDTO {
	d := dto.ConfiguracionDTO{
		ID:          c.ID,
		Nombre:      c.Nombre,
		Descripcion: c.Descripcion,
		IDCategoria: c.IDCategoria,
		Recursos:    make([]dto.AsignacionRecursoDTO, 0, len(c.Recursos)),
	}
	for _, a := range c.Recursos {
		d.Recursos = append(d.Recursos, dto.AsignacionRecursoDTO{IDRecurso: a.IDRecurso, Cantidad: a.Cantidad})
	}
	return d
}

func clienteDTO(c *entity.Cliente) dto.ClienteDTO {
	// La clave de acceso no se expone en el snapshot.
	d := dto.ClienteDTO{
		NIT:        c.NIT,
		Nombre:     c.Nombre,
		Usuario:    c.Usuario,
		Direccion:  c.Direccion,
		Correo:     c.Correo,
		Instancias: make([]dto.InstanciaDTO, 0, len(c.Instancias)),
	}
	for _, i := range c.Instancias {
		inst := dto.InstanciaDTO{
			ID:              i.ID,
			IDConfiguracion: i.IDConfiguracion,
			Nombre:          i.Nombre,
			FechaInicio:     i.FechaInicio,
			Estado:          i.Estado,
			FechaFinal:      i.FechaFinal,
			NITCliente:      i.NITCliente,
			Consumos:        make([]dto.ConsumoDTO, 0, len(i.Consumos)),
		}
		for _, co := range i.Consumos {
			inst.Consumos = append(inst.Consumos, dto.ConsumoDTO{Tiempo: co.Tiempo, FechaHora: co.FechaHora})
		}
		d.Instancias = append(d.Instancias, inst)
	}
	return d
}

// FacturaDTO convierte una factura de dominio a su DTO.
func FacturaDTO(f *entity.Factura) dto.FacturaDTO {
	d := dto.FacturaDTO{
		ID:           f.ID,
		NITCliente:   f.NITCliente,
		FechaEmision: f.FechaEmision,
		Periodo:      f.Periodo,
		MontoTotal:   f.MontoTotal,
		Detalles:     make([]dto.DetalleFacturaDTO, 0, len(f.Detalles)),
	}
	for _, det := range f.Detalles {
		d.Detalles = append(d.Detalles, dto.DetalleFacturaDTO{
			IDInstancia: det.IDInstancia,
			TiempoTotal: det.TiempoTotal,
			Monto:       det.Monto,
		})
	}
	return d
}
