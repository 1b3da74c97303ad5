package entity

// Cliente es el titular de instancias facturables, identificado por su
// NIT (formato validado en pkg/nit).
type Cliente struct {
	NIT       string
	Nombre    string
	Usuario   string
	Clave     string
	Direccion string
	Correo    string
	// Instancias en orden de creación.
	Instancias []*Instancia
}

// AgregarInstancia añade una instancia al final de la colección.
func (c *Cliente) AgregarInstancia(inst *Instancia) {
	c.Instancias = append(c.Instancias, inst)
}
