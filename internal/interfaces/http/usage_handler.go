package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/tu-usuario/cloud-billing/internal/application/dto"
	"github.com/tu-usuario/cloud-billing/internal/application/usage"
	"github.com/tu-usuario/cloud-billing/internal/infrastructure/xmlstore"
	"github.com/tu-usuario/cloud-billing/internal/store"
)

// UsageHandler maneja el ciclo de vida de instancias y el registro
// directo de consumos.
type UsageHandler struct {
	uc  *usage.UseCase
	st  *store.Store
	xml *xmlstore.Store
	log zerolog.Logger
}

// NewUsageHandler construye el handler.
func NewUsageHandler(uc *usage.UseCase, st *store.Store, xml *xmlstore.Store, log zerolog.Logger) *UsageHandler {
	return &UsageHandler{uc: uc, st: st, xml: xml, log: log}
}

// RegistrarConsumo anexa un consumo a una instancia vigente.
// POST /registrarConsumo
func (h *UsageHandler) RegistrarConsumo(c *fiber.Ctx) error {
	h.st.Lock()
	defer h.st.Unlock()
	var in dto.RegistrarConsumoRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	if err := h.uc.RegistrarConsumo(in); err != nil {
		return respuestaError(c, err)
	}
	if err := h.xml.Guardar(h.st); err != nil {
		return respuestaError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MensajeResponse{Mensaje: "Consumo registrado exitosamente"})
}

// CancelarInstancia marca una instancia como cancelada. Repetir la
// cancelación es un no-op.
// POST /cancelarInstancia
func (h *UsageHandler) CancelarInstancia(c *fiber.Ctx) error {
	h.st.Lock()
	defer h.st.Unlock()
	var in dto.CancelarInstanciaRequest
	if err := c.BodyParser(&in); err != nil {
		return cuerpoInvalido(c)
	}
	if err := h.uc.CancelarInstancia(in); err != nil {
		return respuestaError(c, err)
	}
	if err := h.xml.Guardar(h.st); err != nil {
		return respuestaError(c, err)
	}
	return c.JSON(dto.MensajeResponse{Mensaje: "Instancia cancelada exitosamente"})
}
