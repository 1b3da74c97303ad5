package entity

// Categoria agrupa configuraciones por clase de carga de trabajo
// (pequeña, mediana, empresarial, ...).
type Categoria struct {
	ID           int
	Nombre       string
	Descripcion  string
	CargaTrabajo string
	// Configuraciones en orden de creación. Cada configuración guarda
	// también la referencia inversa por IDCategoria.
	Configuraciones []*Configuracion
}

// AgregarConfiguracion añade una configuración al final de la colección.
func (c *Categoria) AgregarConfiguracion(conf *Configuracion) {
	c.Configuraciones = append(c.Configuraciones, conf)
}
