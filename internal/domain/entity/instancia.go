package entity

import "github.com/shopspring/decimal"

// Estados del ciclo de vida de una instancia. La transición
// Vigente → Cancelada es terminal.
const (
	EstadoVigente   = "Vigente"
	EstadoCancelada = "Cancelada"
)

// Consumo es un evento de uso registrado contra una instancia vigente.
type Consumo struct {
	Tiempo    decimal.Decimal // horas transcurridas
	FechaHora string          // dd/mm/yyyy hh:mm
}

// Instancia es un despliegue facturable de una configuración para un
// cliente concreto.
type Instancia struct {
	ID              int
	IDConfiguracion int
	Nombre          string
	FechaInicio     string // dd/mm/yyyy
	Estado          string // Vigente | Cancelada
	FechaFinal      string // presente solo si Estado == Cancelada
	NITCliente      string
	// Consumos acumulan monotónicamente; nunca se eliminan.
	Consumos []Consumo
}

// Vigente indica si la instancia sigue activa.
func (i *Instancia) Vigente() bool {
	return i.Estado == EstadoVigente
}

// Cancelar marca la instancia como cancelada con su fecha final.
// Sobre una instancia ya cancelada es un no-op (la primera fecha final
// se conserva).
func (i *Instancia) Cancelar(fechaFinal string) {
	if i.Estado == EstadoCancelada {
		return
	}
	i.Estado = EstadoCancelada
	i.FechaFinal = fechaFinal
}

// AgregarConsumo registra un evento de uso. El control de estado
// (solo instancias vigentes aceptan consumo) lo hace el caso de uso.
func (i *Instancia) AgregarConsumo(c Consumo) {
	i.Consumos = append(i.Consumos, c)
}

// ConsumoTotal suma las horas de todos los consumos registrados.
func (i *Instancia) ConsumoTotal() decimal.Decimal {
	total := decimal.Zero
	for _, c := range i.Consumos {
		total = total.Add(c.Tiempo)
	}
	return total
}
