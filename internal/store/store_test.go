package store_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/cloud-billing/internal/domain"
	"github.com/tu-usuario/cloud-billing/internal/domain/entity"
	"github.com/tu-usuario/cloud-billing/internal/store"
)

func nuevoStoreConCatalogo(t *testing.T) *store.Store {
	t.Helper()
	s := store.New()
	require.NoError(t, s.AgregarRecurso(&entity.Recurso{
		ID: 1, Nombre: "vCPU", Tipo: entity.TipoHardware, ValorHora: decimal.NewFromInt(2),
	}))
	require.NoError(t, s.AgregarCategoria(&entity.Categoria{ID: 5, Nombre: "Cómputo"}))
	conf := &entity.Configuracion{ID: 10, Nombre: "Pequeña", IDCategoria: 5}
	conf.AgregarRecurso(entity.AsignacionRecurso{IDRecurso: 1, Cantidad: decimal.NewFromInt(3)})
	require.NoError(t, s.AgregarConfiguracion(conf))
	require.NoError(t, s.AgregarCliente(&entity.Cliente{NIT: "34300-4", Nombre: "ACME"}))
	return s
}

func TestAgregarRecurso_Duplicado(t *testing.T) {
	s := nuevoStoreConCatalogo(t)
	err := s.AgregarRecurso(&entity.Recurso{ID: 1, Nombre: "otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "un ID repetido debe rechazarse")
	assert.Len(t, s.Recursos(), 1)
}

func TestAgregarConfiguracion_CategoriaInexistente(t *testing.T) {
	s := store.New()
	err := s.AgregarConfiguracion(&entity.Configuracion{ID: 10, IDCategoria: 99})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAgregarConfiguracion_CuelgaDeCategoria(t *testing.T) {
	s := nuevoStoreConCatalogo(t)
	cat, ok := s.Categoria(5)
	require.True(t, ok)
	require.Len(t, cat.Configuraciones, 1)
	assert.Equal(t, 10, cat.Configuraciones[0].ID)
}

func TestAgregarInstancia_ValidaReferencias(t *testing.T) {
	s := nuevoStoreConCatalogo(t)

	err := s.AgregarInstancia(&entity.Instancia{ID: 100, IDConfiguracion: 10, NITCliente: "99999-9"})
	assert.ErrorIs(t, err, domain.ErrNotFound, "el cliente debe existir")

	err = s.AgregarInstancia(&entity.Instancia{ID: 100, IDConfiguracion: 77, NITCliente: "34300-4"})
	assert.ErrorIs(t, err, domain.ErrNotFound, "la configuración debe existir")

	require.NoError(t, s.AgregarInstancia(&entity.Instancia{
		ID: 100, IDConfiguracion: 10, NITCliente: "34300-4", Estado: entity.EstadoVigente,
	}))
	cli, _ := s.Cliente("34300-4")
	require.Len(t, cli.Instancias, 1, "la instancia debe colgar de su cliente")
}

func TestSiguienteIDFactura(t *testing.T) {
	s := store.New()
	assert.Equal(t, 1, s.SiguienteIDFactura(), "sin facturas el primer ID es 1")

	s.AgregarFactura(&entity.Factura{ID: 3})
	s.AgregarFactura(&entity.Factura{ID: 7})
	assert.Equal(t, 8, s.SiguienteIDFactura(), "el siguiente ID es max existente + 1, aunque haya huecos")
}

func TestFactura_PorID(t *testing.T) {
	s := store.New()
	s.AgregarFactura(&entity.Factura{ID: 3})

	f, ok := s.Factura(3)
	require.True(t, ok)
	assert.Equal(t, 3, f.ID)

	_, ok = s.Factura(99)
	assert.False(t, ok)
}

func TestReset_VaciaTodo(t *testing.T) {
	s := nuevoStoreConCatalogo(t)
	s.AgregarFactura(&entity.Factura{ID: 1})

	s.Reset()

	assert.Empty(t, s.Recursos())
	assert.Empty(t, s.Categorias())
	assert.Empty(t, s.Configuraciones())
	assert.Empty(t, s.Clientes())
	assert.Empty(t, s.Instancias())
	assert.Empty(t, s.Facturas())
	_, ok := s.Recurso(1)
	assert.False(t, ok, "los índices también deben vaciarse")
	assert.Equal(t, 1, s.SiguienteIDFactura())
}
