package entity

import "github.com/shopspring/decimal"

// AsignacionRecurso es la cantidad de un recurso que consume una
// configuración por cada hora de ejecución de una instancia.
type AsignacionRecurso struct {
	IDRecurso int
	Cantidad  decimal.Decimal
}

// Configuracion es un paquete de asignaciones de recursos que define de
// qué está hecha una instancia. Pertenece a exactamente una categoría.
type Configuracion struct {
	ID          int
	Nombre      string
	Descripcion string
	IDCategoria int
	Recursos    []AsignacionRecurso // orden de creación
}

// AgregarRecurso añade una asignación al final de la colección.
func (c *Configuracion) AgregarRecurso(a AsignacionRecurso) {
	c.Recursos = append(c.Recursos, a)
}

// CostoHora calcula el costo por hora de la configuración: la suma de
// valorHora × cantidad sobre todas sus asignaciones. Una asignación cuyo
// recurso no está en el catálogo aporta cero; la integridad referencial
// se valida al crear la asignación, no aquí.
func (c *Configuracion) CostoHora(catalogo map[int]*Recurso) decimal.Decimal {
	total := decimal.Zero
	for _, a := range c.Recursos {
		recurso, ok := catalogo[a.IDRecurso]
		if !ok {
			continue
		}
		total = total.Add(recurso.ValorHora.Mul(a.Cantidad))
	}
	return total
}
