package catalog_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/cloud-billing/internal/application/catalog"
	"github.com/tu-usuario/cloud-billing/internal/application/dto"
	"github.com/tu-usuario/cloud-billing/internal/domain"
	"github.com/tu-usuario/cloud-billing/internal/domain/entity"
	"github.com/tu-usuario/cloud-billing/internal/store"
)

func nuevoUseCase() (*store.Store, *catalog.UseCase) {
	s := store.New()
	return s, catalog.New(s, zerolog.Nop())
}

func crearBase(t *testing.T, s *store.Store, uc *catalog.UseCase) {
	t.Helper()
	require.NoError(t, uc.CrearRecurso(dto.CrearRecursoRequest{
		ID: 1, Nombre: "vCPU", Abreviatura: "CPU", Metrica: "unidades",
		Tipo: entity.TipoHardware, ValorXHora: decimal.NewFromInt(2),
	}))
	require.NoError(t, uc.CrearCategoria(dto.CrearCategoriaRequest{ID: 5, Nombre: "Cómputo"}))
	require.NoError(t, uc.CrearConfiguracion(dto.CrearConfiguracionRequest{
		ID: 10, Nombre: "Pequeña", IDCategoria: 5,
		Recursos: []dto.AsignacionRecursoDTO{{IDRecurso: 1, Cantidad: decimal.NewFromInt(3)}},
	}))
	require.NoError(t, uc.CrearCliente(dto.CrearClienteRequest{
		NIT: "34300-4", Nombre: "ACME", Correo: "ops@acme.example",
	}))
}

func TestCrearRecurso_Validaciones(t *testing.T) {
	_, uc := nuevoUseCase()

	err := uc.CrearRecurso(dto.CrearRecursoRequest{ID: 0, Nombre: "x", Tipo: entity.TipoHardware})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el ID debe ser positivo")

	err = uc.CrearRecurso(dto.CrearRecursoRequest{ID: 1, Nombre: "x", Tipo: "Firmware"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el tipo debe ser Hardware o Software")

	err = uc.CrearRecurso(dto.CrearRecursoRequest{
		ID: 1, Nombre: "x", Tipo: entity.TipoHardware, ValorXHora: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el precio no puede ser negativo")
}

func TestCrearRecurso_Duplicado(t *testing.T) {
	s, uc := nuevoUseCase()
	crearBase(t, s, uc)

	err := uc.CrearRecurso(dto.CrearRecursoRequest{
		ID: 1, Nombre: "otro", Tipo: entity.TipoSoftware, ValorXHora: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCrearConfiguracion_RecursoInexistente(t *testing.T) {
	s, uc := nuevoUseCase()
	crearBase(t, s, uc)

	err := uc.CrearConfiguracion(dto.CrearConfiguracionRequest{
		ID: 11, Nombre: "Grande", IDCategoria: 5,
		Recursos: []dto.AsignacionRecursoDTO{{IDRecurso: 99, Cantidad: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCrearConfiguracion_CategoriaInexistente(t *testing.T) {
	s, uc := nuevoUseCase()
	crearBase(t, s, uc)

	err := uc.CrearConfiguracion(dto.CrearConfiguracionRequest{ID: 11, Nombre: "Grande", IDCategoria: 99})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCrearCliente_NITInvalido(t *testing.T) {
	_, uc := nuevoUseCase()
	err := uc.CrearCliente(dto.CrearClienteRequest{NIT: "34300", Nombre: "ACME"})
	assert.ErrorIs(t, err, domain.ErrNITInvalido)
}

func TestCrearInstancia_FechaEnTextoLibre(t *testing.T) {
	s, uc := nuevoUseCase()
	crearBase(t, s, uc)

	require.NoError(t, uc.CrearInstancia(dto.CrearInstanciaRequest{
		ID: 100, IDConfiguracion: 10, Nombre: "acme-web",
		FechaInicio: "contratada el 01/01/2025", NITCliente: "34300-4",
	}))

	inst, ok := s.Instancia(100)
	require.True(t, ok)
	assert.Equal(t, "01/01/2025", inst.FechaInicio, "la fecha se extrae del texto libre")
	assert.Equal(t, entity.EstadoVigente, inst.Estado)
}

func TestCrearInstancia_ClienteInexistente(t *testing.T) {
	s, uc := nuevoUseCase()
	crearBase(t, s, uc)

	err := uc.CrearInstancia(dto.CrearInstanciaRequest{
		ID: 100, IDConfiguracion: 10, Nombre: "x",
		FechaInicio: "01/01/2025", NITCliente: "99999-9",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDatos_Snapshot(t *testing.T) {
	s, uc := nuevoUseCase()
	crearBase(t, s, uc)
	require.NoError(t, uc.CrearInstancia(dto.CrearInstanciaRequest{
		ID: 100, IDConfiguracion: 10, Nombre: "acme-web",
		FechaInicio: "01/01/2025", NITCliente: "34300-4",
	}))

	datos := uc.Datos()
	require.Len(t, datos.Recursos, 1)
	require.Len(t, datos.Categorias, 1)
	require.Len(t, datos.Clientes, 1)
	assert.Len(t, datos.Clientes[0].Instancias, 1)
}
