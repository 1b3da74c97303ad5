package dto

// ResultadoConfiguracionDTO resultado de la ingesta del XML de
// configuración completa (POST /configuracion). La ingesta es de mejor
// esfuerzo: las entidades inválidas se reportan en Errores sin abortar
// el documento.
type ResultadoConfiguracionDTO struct {
	RecursosCreados        int      `json:"recursos_creados"`
	CategoriasCreadas      int      `json:"categorias_creadas"`
	ConfiguracionesCreadas int      `json:"configuraciones_creadas"`
	ClientesCreados        int      `json:"clientes_creados"`
	InstanciasCreadas      int      `json:"instancias_creadas"`
	Errores                []string `json:"errores"`
}

// ResultadoConsumoDTO resultado de la ingesta del XML de consumos
// (POST /consumo).
type ResultadoConsumoDTO struct {
	ConsumosProcesados int      `json:"consumos_procesados"`
	Errores            []string `json:"errores"`
}
