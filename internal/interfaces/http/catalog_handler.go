package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/tu-usuario/cloud-billing/internal/application/catalog"
	"github.com/tu-usuario/cloud-billing/internal/application/dto"
	"github.com/tu-usuario/cloud-billing/internal/infrastructure/xmlstore"
	"github.com/tu-usuario/cloud-billing/internal/store"
)

// CatalogHandler maneja las peticiones HTTP del catálogo (recursos,
// categorías, configuraciones, clientes, instancias) y la consulta y el
// reinicio del estado.
type CatalogHandler struct {
	uc  *catalog.UseCase
	st  *store.Store
	xml *xmlstore.Store
	log zerolog.Logger
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.UseCase, st *store.Store, xml *xmlstore.Store, log zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{uc: uc, st: st, xml: xml, log: log}
}

// persistir vuelca el estado completo a XML tras una mutación.
func (h *CatalogHandler) persistir() error {
	return h.xml.Guardar(h.st)
}

// CrearRecurso registra un recurso facturable.
// POST /crearRecurso
func (h *CatalogHandler) CrearRecurso(c *fiber.Ctx) error {
	h.st.Lock()
	defer h.st.Unlock()
	var in dto.CrearRecursoRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	if err := h.uc.CrearRecurso(in); err != nil {
		return respuestaError(c, err)
	}
	if err := h.persistir(); err != nil {
		return respuestaError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MensajeResponse{Mensaje: "Recurso creado exitosamente"})
}

// CrearCategoria registra una categoría de configuraciones.
// POST /crearCategoria
func (h *CatalogHandler) CrearCategoria(c *fiber.Ctx) error {
	h.st.Lock()
	defer h.st.Unlock()
	var in dto.CrearCategoriaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	if err := h.uc.CrearCategoria(in); err != nil {
		return respuestaError(c, err)
	}
	if err := h.persistir(); err != nil {
		return respuestaError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MensajeResponse{Mensaje: "Categoría creada exitosamente"})
}

// CrearConfiguracion registra una configuración dentro de una categoría.
// POST /crearConfiguracion
func (h *CatalogHandler) CrearConfiguracion(c *fiber.Ctx) error {
	h.st.Lock()
	defer h.st.Unlock()
	var in dto.CrearConfiguracionRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	if err := h.uc.CrearConfiguracion(in); err != nil {
		return respuestaError(c, err)
	}
	if err := h.persistir(); err != nil {
		return respuestaError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MensajeResponse{Mensaje: "Configuración creada exitosamente"})
}

// CrearCliente registra un cliente.
// POST /crearCliente
func (h *CatalogHandler) CrearCliente(c *fiber.Ctx) error {
	h.st.Lock()
	defer h.st.Unlock()
	var in dto.CrearClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	if err := h.uc.CrearCliente(in); err != nil {
		return respuestaError(c, err)
	}
	if err := h.persistir(); err != nil {
		return respuestaError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MensajeResponse{Mensaje: "Cliente creado exitosamente"})
}

// CrearInstancia registra una instancia de configuración para un cliente.
// POST /crearInstancia
func (h *CatalogHandler) CrearInstancia(c *fiber.Ctx) error {
	h.st.Lock()
	defer h.st.Unlock()
	var in dto.CrearInstanciaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	if err := h.uc.CrearInstancia(in); err != nil {
		return respuestaError(c, err)
	}
	if err := h.persistir(); err != nil {
		return respuestaError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MensajeResponse{Mensaje: "Instancia creada exitosamente"})
}

// ConsultarDatos devuelve un snapshot completo del estado.
// GET /consultarDatos
func (h *CatalogHandler) ConsultarDatos(c *fiber.Ctx) error {
	h.st.Lock()
	defer h.st.Unlock()
	return c.JSON(h.uc.Datos())
}

// Reset limpia todas las colecciones y los archivos persistidos.
// POST /reset
func (h *CatalogHandler) Reset(c *fiber.Ctx) error {
	h.st.Lock()
	defer h.st.Unlock()
	h.st.Reset()
	if err := h.xml.Borrar(); err != nil {
		return respuestaError(c, err)
	}
	h.log.Info().Msg("estado reiniciado")
	return c.JSON(dto.MensajeResponse{Mensaje: "Datos reiniciados exitosamente"})
}
