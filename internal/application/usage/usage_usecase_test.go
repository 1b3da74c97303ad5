package usage_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/cloud-billing/internal/application/dto"
	"github.com/tu-usuario/cloud-billing/internal/application/usage"
	"github.com/tu-usuario/cloud-billing/internal/domain"
	"github.com/tu-usuario/cloud-billing/internal/domain/entity"
	"github.com/tu-usuario/cloud-billing/internal/store"
)

func escenario(t *testing.T) (*store.Store, *usage.UseCase) {
	t.Helper()
	s := store.New()
	require.NoError(t, s.AgregarRecurso(&entity.Recurso{
		ID: 1, Nombre: "vCPU", Tipo: entity.TipoHardware, ValorHora: decimal.NewFromInt(2),
	}))
	require.NoError(t, s.AgregarCategoria(&entity.Categoria{ID: 5, Nombre: "Cómputo"}))
	require.NoError(t, s.AgregarConfiguracion(&entity.Configuracion{ID: 10, IDCategoria: 5}))
	require.NoError(t, s.AgregarCliente(&entity.Cliente{NIT: "34300-4", Nombre: "ACME"}))
	require.NoError(t, s.AgregarInstancia(&entity.Instancia{
		ID: 100, IDConfiguracion: 10, FechaInicio: "01/01/2025",
		Estado: entity.EstadoVigente, NITCliente: "34300-4",
	}))
	return s, usage.New(s, zerolog.Nop())
}

func TestRegistrarConsumo(t *testing.T) {
	s, uc := escenario(t)
	err := uc.RegistrarConsumo(dto.RegistrarConsumoRequest{
		IDInstancia: 100, NITCliente: "34300-4",
		Tiempo: decimal.NewFromFloat(2.5), FechaHora: "10/01/2025 14:30",
	})
	require.NoError(t, err)

	inst, _ := s.Instancia(100)
	require.Len(t, inst.Consumos, 1)
	assert.Equal(t, "10/01/2025 14:30", inst.Consumos[0].FechaHora)
}

func TestRegistrarConsumo_ExtraeFechaDeTextoLibre(t *testing.T) {
	s, uc := escenario(t)
	err := uc.RegistrarConsumo(dto.RegistrarConsumoRequest{
		IDInstancia: 100, NITCliente: "34300-4",
		Tiempo: decimal.NewFromInt(1), FechaHora: "registrado el 10/01/2025 14:30 UTC",
	})
	require.NoError(t, err)

	inst, _ := s.Instancia(100)
	assert.Equal(t, "10/01/2025 14:30", inst.Consumos[0].FechaHora,
		"la marca se normaliza a dd/mm/yyyy hh:mm")
}

func TestRegistrarConsumo_InstanciaAjena(t *testing.T) {
	_, uc := escenario(t)
	err := uc.RegistrarConsumo(dto.RegistrarConsumoRequest{
		IDInstancia: 100, NITCliente: "99999-9",
		Tiempo: decimal.NewFromInt(1), FechaHora: "10/01/2025 14:30",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"la instancia debe pertenecer al cliente indicado")
}

func TestRegistrarConsumo_TiempoNoPositivo(t *testing.T) {
	_, uc := escenario(t)
	err := uc.RegistrarConsumo(dto.RegistrarConsumoRequest{
		IDInstancia: 100, NITCliente: "34300-4",
		Tiempo: decimal.Zero, FechaHora: "10/01/2025 14:30",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistrarConsumo_SinMarcaValida(t *testing.T) {
	_, uc := escenario(t)
	err := uc.RegistrarConsumo(dto.RegistrarConsumoRequest{
		IDInstancia: 100, NITCliente: "34300-4",
		Tiempo: decimal.NewFromInt(1), FechaHora: "ayer por la tarde",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistrarConsumo_RechazadoTrasCancelar(t *testing.T) {
	s, uc := escenario(t)
	require.NoError(t, uc.CancelarInstancia(dto.CancelarInstanciaRequest{
		IDInstancia: 100, NITCliente: "34300-4", FechaFinal: "15/01/2025",
	}))

	err := uc.RegistrarConsumo(dto.RegistrarConsumoRequest{
		IDInstancia: 100, NITCliente: "34300-4",
		Tiempo: decimal.NewFromInt(1), FechaHora: "16/01/2025 09:00",
	})
	assert.ErrorIs(t, err, domain.ErrInstanciaCancelada,
		"el consumo sobre una instancia cancelada se rechaza, nunca es fatal")

	inst, _ := s.Instancia(100)
	assert.Empty(t, inst.Consumos)
}

func TestCancelarInstancia_Idempotente(t *testing.T) {
	s, uc := escenario(t)
	require.NoError(t, uc.CancelarInstancia(dto.CancelarInstanciaRequest{
		IDInstancia: 100, NITCliente: "34300-4", FechaFinal: "15/01/2025",
	}))
	require.NoError(t, uc.CancelarInstancia(dto.CancelarInstanciaRequest{
		IDInstancia: 100, NITCliente: "34300-4", FechaFinal: "20/01/2025",
	}), "repetir la cancelación es un no-op, no un error")

	inst, _ := s.Instancia(100)
	assert.Equal(t, entity.EstadoCancelada, inst.Estado)
	assert.Equal(t, "15/01/2025", inst.FechaFinal, "la fecha final original se conserva")
}

func TestCancelarInstancia_FechaInvalida(t *testing.T) {
	_, uc := escenario(t)
	err := uc.CancelarInstancia(dto.CancelarInstanciaRequest{
		IDInstancia: 100, NITCliente: "34300-4", FechaFinal: "pronto",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
