package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/tu-usuario/cloud-billing/internal/infrastructure/ingest"
	"github.com/tu-usuario/cloud-billing/internal/infrastructure/xmlstore"
	"github.com/tu-usuario/cloud-billing/internal/store"
)

// IngestHandler maneja la carga masiva por XML: configuración del
// catálogo y consumos de instancias.
type IngestHandler struct {
	proc *ingest.Procesador
	st   *store.Store
	xml  *xmlstore.Store
	log  zerolog.Logger
}

// NewIngestHandler construye el handler.
func NewIngestHandler(proc *ingest.Procesador, st *store.Store, xml *xmlstore.Store, log zerolog.Logger) *IngestHandler {
	return &IngestHandler{proc: proc, st: st, xml: xml, log: log}
}

// Configuracion procesa un documento de configuración (recursos,
// categorías con configuraciones, clientes con instancias). El
// procesamiento es de mejor esfuerzo: los elementos inválidos se
// reportan en la lista de errores sin abortar el documento.
// POST /configuracion
func (h *IngestHandler) Configuracion(c *fiber.Ctx) error {
	h.st.Lock()
	defer h.st.Unlock()
	resultado, err := h.proc.Configuracion(string(c.Body()))
	if err != nil {
		return respuestaError(c, err)
	}
	if err := h.xml.Guardar(h.st); err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(resultado)
}

// Consumo procesa un documento de consumos.
// POST /consumo
func (h *IngestHandler) Consumo(c *fiber.Ctx) error {
	h.st.Lock()
	defer h.st.Unlock()
	resultado, err := h.proc.Consumo(string(c.Body()))
	if err != nil {
		return respuestaError(c, err)
	}
	if err := h.xml.Guardar(h.st); err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(resultado)
}
