// Package store implementa el agregado de entidades en memoria que se
// inyecta a cada operación. Mantiene, por colección, un slice en orden
// de creación (el orden es significativo para facturación y reportes) y
// un índice por ID/NIT para búsquedas O(1).
//
// El núcleo asume acceso exclusivo durante cada operación; no hay
// locking interno. La capa HTTP serializa las llamadas tomando el mutex
// del store (ver internal/interfaces/http).
package store

import (
	"sync"

	"github.com/tu-usuario/cloud-billing/internal/domain"
	"github.com/tu-usuario/cloud-billing/internal/domain/entity"
)

// Store es el agregado compartido de todas las colecciones.
type Store struct {
	mu sync.Mutex

	recursos        []*entity.Recurso
	categorias      []*entity.Categoria
	configuraciones []*entity.Configuracion
	clientes        []*entity.Cliente
	instancias      []*entity.Instancia
	facturas        []*entity.Factura

	recursoPorID       map[int]*entity.Recurso
	categoriaPorID     map[int]*entity.Categoria
	configuracionPorID map[int]*entity.Configuracion
	clientePorNIT      map[string]*entity.Cliente
	instanciaPorID     map[int]*entity.Instancia
}

// New crea un store vacío.
func New() *Store {
	s := &Store{}
	s.reiniciarIndices()
	return s
}

func (s *Store) reiniciarIndices() {
	s.recursoPorID = make(map[int]*entity.Recurso)
	s.categoriaPorID = make(map[int]*entity.Categoria)
	s.configuracionPorID = make(map[int]*entity.Configuracion)
	s.clientePorNIT = make(map[string]*entity.Cliente)
	s.instanciaPorID = make(map[int]*entity.Instancia)
}

// Lock toma el mutex que serializa operaciones sobre el agregado.
func (s *Store) Lock() { s.mu.Lock() }

// Unlock libera el mutex.
func (s *Store) Unlock() { s.mu.Unlock() }

// Reset vacía todas las colecciones.
func (s *Store) Reset() {
	s.recursos = nil
	s.categorias = nil
	s.configuraciones = nil
	s.clientes = nil
	s.instancias = nil
	s.facturas = nil
	s.reiniciarIndices()
}

// ── Recursos ──────────────────────────────────────────────────────────────────

// AgregarRecurso registra un recurso nuevo; ErrDuplicate si el ID existe.
func (s *Store) AgregarRecurso(r *entity.Recurso) error {
	if _, ok := s.recursoPorID[r.ID]; ok {
		return domain.ErrDuplicate
	}
	s.recursos = append(s.recursos, r)
	s.recursoPorID[r.ID] = r
	return nil
}

// Recurso busca un recurso por ID.
func (s *Store) Recurso(id int) (*entity.Recurso, bool) {
	r, ok := s.recursoPorID[id]
	return r, ok
}

// Recursos devuelve la colección en orden de creación.
func (s *Store) Recursos() []*entity.Recurso { return s.recursos }

// Catalogo devuelve el índice id → recurso que consume el cálculo de
// costos. Los llamadores no deben mutarlo.
func (s *Store) Catalogo() map[int]*entity.Recurso { return s.recursoPorID }

// ── Categorías ────────────────────────────────────────────────────────────────

// AgregarCategoria registra una categoría nueva; ErrDuplicate si el ID existe.
func (s *Store) AgregarCategoria(c *entity.Categoria) error {
	if _, ok := s.categoriaPorID[c.ID]; ok {
		return domain.ErrDuplicate
	}
	s.categorias = append(s.categorias, c)
	s.categoriaPorID[c.ID] = c
	return nil
}

// Categoria busca una categoría por ID.
func (s *Store) Categoria(id int) (*entity.Categoria, bool) {
	c, ok := s.categoriaPorID[id]
	return c, ok
}

// Categorias devuelve la colección en orden de creación.
func (s *Store) Categorias() []*entity.Categoria { return s.categorias }

// ── Configuraciones ───────────────────────────────────────────────────────────

// AgregarConfiguracion registra una configuración y la cuelga de su
// categoría. ErrDuplicate si el ID existe; ErrNotFound si la categoría no.
func (s *Store) AgregarConfiguracion(c *entity.Configuracion) error {
	if _, ok := s.configuracionPorID[c.ID]; ok {
		return domain.ErrDuplicate
	}
	cat, ok := s.categoriaPorID[c.IDCategoria]
	if !ok {
		return domain.ErrNotFound
	}
	s.configuraciones = append(s.configuraciones, c)
	s.configuracionPorID[c.ID] = c
	cat.AgregarConfiguracion(c)
	return nil
}

// Configuracion busca una configuración por ID.
func (s *Store) Configuracion(id int) (*entity.Configuracion, bool) {
	c, ok := s.configuracionPorID[id]
	return c, ok
}

// Configuraciones devuelve la colección en orden de creación.
func (s *Store) Configuraciones() []*entity.Configuracion { return s.configuraciones }

// ── Clientes ──────────────────────────────────────────────────────────────────

// AgregarCliente registra un cliente nuevo; ErrDuplicate si el NIT existe.
func (s *Store) AgregarCliente(c *entity.Cliente) error {
	if _, ok := s.clientePorNIT[c.NIT]; ok {
		return domain.ErrDuplicate
	}
	s.clientes = append(s.clientes, c)
	s.clientePorNIT[c.NIT] = c
	return nil
}

// Cliente busca un cliente por NIT.
func (s *Store) Cliente(nit string) (*entity.Cliente, bool) {
	c, ok := s.clientePorNIT[nit]
	return c, ok
}

// Clientes devuelve la colección en orden de creación.
func (s *Store) Clientes() []*entity.Cliente { return s.clientes }

// ── Instancias ────────────────────────────────────────────────────────────────

// AgregarInstancia registra una instancia y la cuelga de su cliente.
// Las instancias ya cargadas dentro de un cliente (ingesta, XML) también
// deben pasar por aquí para entrar al índice y al orden global.
func (s *Store) AgregarInstancia(i *entity.Instancia) error {
	if _, ok := s.instanciaPorID[i.ID]; ok {
		return domain.ErrDuplicate
	}
	cli, ok := s.clientePorNIT[i.NITCliente]
	if !ok {
		return domain.ErrNotFound
	}
	if _, ok := s.configuracionPorID[i.IDConfiguracion]; !ok {
		return domain.ErrNotFound
	}
	s.instancias = append(s.instancias, i)
	s.instanciaPorID[i.ID] = i
	cli.AgregarInstancia(i)
	return nil
}

// Instancia busca una instancia por ID.
func (s *Store) Instancia(id int) (*entity.Instancia, bool) {
	i, ok := s.instanciaPorID[id]
	return i, ok
}

// Instancias devuelve la colección global en orden de creación.
func (s *Store) Instancias() []*entity.Instancia { return s.instancias }

// ── Facturas ──────────────────────────────────────────────────────────────────

// AgregarFactura anexa una factura generada.
func (s *Store) AgregarFactura(f *entity.Factura) {
	s.facturas = append(s.facturas, f)
}

// Factura busca una factura por su identificador.
func (s *Store) Factura(id int) (*entity.Factura, bool) {
	for _, f := range s.facturas {
		if f.ID == id {
			return f, true
		}
	}
	return nil, false
}

// Facturas devuelve la colección en orden de generación.
func (s *Store) Facturas() []*entity.Factura { return s.facturas }

// SiguienteIDFactura calcula (max ID existente) + 1 recorriendo la
// colección actual, sin contador persistente: re-ejecutar tras un fallo
// parcial no colisiona mientras las facturas previas estén cargadas.
func (s *Store) SiguienteIDFactura() int {
	max := 0
	for _, f := range s.facturas {
		if f.ID > max {
			max = f.ID
		}
	}
	return max + 1
}
