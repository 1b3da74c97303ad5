package ingest_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/cloud-billing/internal/domain/entity"
	"github.com/tu-usuario/cloud-billing/internal/infrastructure/ingest"
	"github.com/tu-usuario/cloud-billing/internal/store"
)

const xmlConfiguracion = `<?xml version="1.0"?>
<configuracion>
  <listaRecursos>
    <recurso id="1">
      <nombre>vCPU</nombre>
      <abreviatura>CPU</abreviatura>
      <metrica>unidades</metrica>
      <tipo>Hardware</tipo>
      <valorXhora>2.00</valorXhora>
    </recurso>
    <recurso id="2">
      <nombre>RAM</nombre>
      <abreviatura>GB</abreviatura>
      <metrica>gigabytes</metrica>
      <tipo>Hardware</tipo>
      <valorXhora>0.50</valorXhora>
    </recurso>
  </listaRecursos>
  <listaCategorias>
    <categoria id="5">
      <nombre>Cómputo</nombre>
      <descripcion>Máquinas de propósito general</descripcion>
      <cargaTrabajo>general</cargaTrabajo>
      <listaConfiguraciones>
        <configuracion id="10">
          <nombre>Pequeña</nombre>
          <descripcion>3 vCPU / 8 GB</descripcion>
          <recursosConfiguracion>
            <recurso id="1">3</recurso>
            <recurso id="2">8</recurso>
          </recursosConfiguracion>
        </configuracion>
      </listaConfiguraciones>
    </categoria>
  </listaCategorias>
  <listaClientes>
    <cliente nit="34300-4">
      <nombre>ACME</nombre>
      <usuario>acme</usuario>
      <clave>secreta</clave>
      <direccion>Av. Siempre Viva 1</direccion>
      <correoElectronico>ops@acme.example</correoElectronico>
      <listaInstancias>
        <instancia id="100">
          <idConfiguracion>10</idConfiguracion>
          <nombre>acme-web</nombre>
          <fechaInicio>contratada el 01/01/2025</fechaInicio>
          <estado>Vigente</estado>
        </instancia>
      </listaInstancias>
    </cliente>
  </listaClientes>
</configuracion>`

func TestConfiguracion_DocumentoCompleto(t *testing.T) {
	s := store.New()
	p := ingest.NewProcesador(s, zerolog.Nop())

	resultado, err := p.Configuracion(xmlConfiguracion)
	require.NoError(t, err)

	assert.Equal(t, 2, resultado.RecursosCreados)
	assert.Equal(t, 1, resultado.CategoriasCreadas)
	assert.Equal(t, 1, resultado.ConfiguracionesCreadas)
	assert.Equal(t, 1, resultado.ClientesCreados)
	assert.Equal(t, 1, resultado.InstanciasCreadas)
	assert.Empty(t, resultado.Errores)

	conf, ok := s.Configuracion(10)
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("10.00").Equal(conf.CostoHora(s.Catalogo())),
		"2.00*3 + 0.50*8 = 10.00 por hora")

	inst, ok := s.Instancia(100)
	require.True(t, ok)
	assert.Equal(t, "01/01/2025", inst.FechaInicio, "la fecha se extrae del texto libre")
	assert.True(t, inst.Vigente())
}

func TestConfiguracion_ReEntrante(t *testing.T) {
	s := store.New()
	p := ingest.NewProcesador(s, zerolog.Nop())

	_, err := p.Configuracion(xmlConfiguracion)
	require.NoError(t, err)
	resultado, err := p.Configuracion(xmlConfiguracion)
	require.NoError(t, err)

	assert.Equal(t, 0, resultado.RecursosCreados, "las entidades existentes se saltan en silencio")
	assert.Equal(t, 0, resultado.InstanciasCreadas)
	assert.Empty(t, resultado.Errores)
	assert.Len(t, s.Recursos(), 2)
}

func TestConfiguracion_ErroresParciales(t *testing.T) {
	s := store.New()
	p := ingest.NewProcesador(s, zerolog.Nop())

	parcial := `<?xml version="1.0"?>
<configuracion>
  <listaRecursos>
    <recurso id="1">
      <nombre>vCPU</nombre>
      <tipo>Firmware</tipo>
      <valorXhora>2.00</valorXhora>
    </recurso>
    <recurso id="2">
      <nombre>RAM</nombre>
      <tipo>Hardware</tipo>
      <valorXhora>0.50</valorXhora>
    </recurso>
  </listaRecursos>
  <listaClientes>
    <cliente nit="sin-guion">
      <nombre>Mala</nombre>
    </cliente>
  </listaClientes>
</configuracion>`

	resultado, err := p.Configuracion(parcial)
	require.NoError(t, err, "los errores por entidad no abortan el documento")

	assert.Equal(t, 1, resultado.RecursosCreados, "el recurso válido sí se crea")
	assert.Equal(t, 0, resultado.ClientesCreados)
	require.Len(t, resultado.Errores, 2)
	assert.Contains(t, resultado.Errores[0], "Tipo de recurso inválido")
	assert.Contains(t, resultado.Errores[1], "NIT inválido")
}

func TestConfiguracion_XMLInvalido(t *testing.T) {
	p := ingest.NewProcesador(store.New(), zerolog.Nop())

	resultado, err := p.Configuracion("esto no es XML <<<")
	require.NoError(t, err)
	require.Len(t, resultado.Errores, 1)
	assert.Contains(t, resultado.Errores[0], "Error XML")

	resultado, err = p.Configuracion("   ")
	require.NoError(t, err)
	assert.Equal(t, []string{"XML vacío"}, resultado.Errores)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consumos.
// ──────────────────────────────────────────────────────────────────────────────

func storeConInstancia(t *testing.T) *store.Store {
	t.Helper()
	s := store.New()
	p := ingest.NewProcesador(s, zerolog.Nop())
	resultado, err := p.Configuracion(xmlConfiguracion)
	require.NoError(t, err)
	require.Empty(t, resultado.Errores)
	return s
}

func TestConsumo_Valido(t *testing.T) {
	s := storeConInstancia(t)
	p := ingest.NewProcesador(s, zerolog.Nop())

	xml := `<listadoConsumos>
  <consumo nitCliente="34300-4" idInstancia="100">
    <tiempo>5</tiempo>
    <fechahora>10/01/2025 08:00</fechahora>
  </consumo>
</listadoConsumos>`

	resultado, err := p.Consumo(xml)
	require.NoError(t, err)
	assert.Equal(t, 1, resultado.ConsumosProcesados)
	assert.Empty(t, resultado.Errores)

	inst, _ := s.Instancia(100)
	require.Len(t, inst.Consumos, 1)
	assert.True(t, decimal.NewFromInt(5).Equal(inst.Consumos[0].Tiempo))
}

func TestConsumo_ErroresPorItem(t *testing.T) {
	s := storeConInstancia(t)
	inst, _ := s.Instancia(100)
	p := ingest.NewProcesador(s, zerolog.Nop())

	xml := `<listadoConsumos>
  <consumo nitCliente="99999-9" idInstancia="100">
    <tiempo>1</tiempo>
    <fechahora>10/01/2025 08:00</fechahora>
  </consumo>
  <consumo nitCliente="34300-4" idInstancia="100">
    <tiempo>-2</tiempo>
    <fechahora>10/01/2025 08:00</fechahora>
  </consumo>
  <consumo nitCliente="34300-4" idInstancia="100">
    <tiempo>3</tiempo>
    <fechahora>10/01/2025 09:00</fechahora>
  </consumo>
</listadoConsumos>`

	resultado, err := p.Consumo(xml)
	require.NoError(t, err)
	assert.Equal(t, 1, resultado.ConsumosProcesados, "solo el consumo válido se procesa")
	assert.Len(t, resultado.Errores, 2)
	assert.Len(t, inst.Consumos, 1)
}

func TestConsumo_InstanciaCancelada(t *testing.T) {
	s := storeConInstancia(t)
	inst, _ := s.Instancia(100)
	inst.Cancelar("15/01/2025")
	p := ingest.NewProcesador(s, zerolog.Nop())

	xml := `<listadoConsumos>
  <consumo nitCliente="34300-4" idInstancia="100">
    <tiempo>2</tiempo>
    <fechahora>16/01/2025 08:00</fechahora>
  </consumo>
</listadoConsumos>`

	resultado, err := p.Consumo(xml)
	require.NoError(t, err)
	assert.Equal(t, 0, resultado.ConsumosProcesados)
	require.Len(t, resultado.Errores, 1, "el consumo sobre una instancia cancelada se reporta, no se descarta en silencio")
	assert.Equal(t, entity.EstadoCancelada, inst.Estado)
	assert.Empty(t, inst.Consumos)
}
