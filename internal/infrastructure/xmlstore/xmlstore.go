// Package xmlstore persiste las colecciones del agregado como archivos
// XML bajo un directorio de datos, con el mismo esquema que consume la
// ingesta: recursos.xml, categorias.xml (configuraciones anidadas),
// clientes.xml (instancias anidadas), consumos.xml (lista plana) y
// facturas.xml. La capa HTTP guarda tras cada operación mutadora y
// carga al arrancar.
package xmlstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/cloud-billing/internal/domain/entity"
	"github.com/tu-usuario/cloud-billing/internal/store"
)

// Nombres de archivo por colección.
const (
	archivoRecursos   = "recursos.xml"
	archivoCategorias = "categorias.xml"
	archivoClientes   = "clientes.xml"
	archivoConsumos   = "consumos.xml"
	archivoFacturas   = "facturas.xml"
)

// Store persistencia XML en disco.
type Store struct {
	dir string
	log zerolog.Logger
}

// New construye el store de archivos y asegura el directorio.
func New(dir string, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de datos: %w", err)
	}
	return &Store{dir: dir, log: log}, nil
}

// Guardar vuelca todas las colecciones a disco.
func (x *Store) Guardar(s *store.Store) error {
	if err := x.guardarRecursos(s.Recursos()); err != nil {
		return err
	}
	if err := x.guardarCategorias(s.Categorias()); err != nil {
		return err
	}
	if err := x.guardarClientes(s.Clientes()); err != nil {
		return err
	}
	if err := x.guardarConsumos(s.Instancias()); err != nil {
		return err
	}
	if err := x.guardarFacturas(s.Facturas()); err != nil {
		return err
	}
	x.log.Debug().Str("dir", x.dir).Msg("colecciones persistidas")
	return nil
}

// Borrar elimina los archivos persistidos (usado por /reset).
func (x *Store) Borrar() error {
	for _, nombre := range []string{archivoRecursos, archivoCategorias, archivoClientes, archivoConsumos, archivoFacturas} {
		if err := os.Remove(filepath.Join(x.dir, nombre)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("borrar %s: %w", nombre, err)
		}
	}
	return nil
}

// ── Guardado ──────────────────────────────────────────────────────────────────

func (x *Store) guardarRecursos(recursos []*entity.Recurso) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("listaRecursos")
	for _, r := range recursos {
		el := root.CreateElement("recurso")
		el.CreateAttr("id", strconv.Itoa(r.ID))
		el.CreateElement("nombre").SetText(r.Nombre)
		el.CreateElement("abreviatura").SetText(r.Abreviatura)
		el.CreateElement("metrica").SetText(r.Metrica)
		el.CreateElement("tipo").SetText(r.Tipo)
		el.CreateElement("valorXhora").SetText(r.ValorHora.String())
	}
	return x.escribir(doc, archivoRecursos)
}

func (x *Store) guardarCategorias(categorias []*entity.Categoria) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("listaCategorias")
	for _, c := range categorias {
		el := root.CreateElement("categoria")
		el.CreateAttr("id", strconv.Itoa(c.ID))
		el.CreateElement("nombre").SetText(c.Nombre)
		el.CreateElement("descripcion").SetText(c.Descripcion)
		el.CreateElement("cargaTrabajo").SetText(c.CargaTrabajo)

		lista := el.CreateElement("listaConfiguraciones")
		for _, conf := range c.Configuraciones {
			confEl := lista.CreateElement("configuracion")
			confEl.CreateAttr("id", strconv.Itoa(conf.ID))
			confEl.CreateElement("nombre").SetText(conf.Nombre)
			confEl.CreateElement("descripcion").SetText(conf.Descripcion)
			recursos := confEl.CreateElement("recursosConfiguracion")
			for _, a := range conf.Recursos {
				recursoEl := recursos.CreateElement("recurso")
				recursoEl.CreateAttr("id", strconv.Itoa(a.IDRecurso))
				recursoEl.SetText(a.Cantidad.String())
			}
		}
	}
	return x.escribir(doc, archivoCategorias)
}

func (x *Store) guardarClientes(clientes []*entity.Cliente) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("listaClientes")
	for _, c := range clientes {
		el := root.CreateElement("cliente")
		el.CreateAttr("nit", c.NIT)
		el.CreateElement("nombre").SetText(c.Nombre)
		el.CreateElement("usuario").SetText(c.Usuario)
		el.CreateElement("clave").SetText(c.Clave)
		el.CreateElement("direccion").SetText(c.Direccion)
		el.CreateElement("correoElectronico").SetText(c.Correo)

		lista := el.CreateElement("listaInstancias")
		for _, i := range c.Instancias {
			instEl := lista.CreateElement("instancia")
			instEl.CreateAttr("id", strconv.Itoa(i.ID))
			instEl.CreateElement("idConfiguracion").SetText(strconv.Itoa(i.IDConfiguracion))
			instEl.CreateElement("nombre").SetText(i.Nombre)
			instEl.CreateElement("fechaInicio").SetText(i.FechaInicio)
			instEl.CreateElement("estado").SetText(i.Estado)
			if i.FechaFinal != "" {
				instEl.CreateElement("fechaFinal").SetText(i.FechaFinal)
			}
		}
	}
	return x.escribir(doc, archivoClientes)
}

// guardarConsumos persiste el historial de consumo plano, referenciando
// instancia y cliente, tal como llega en la ingesta.
func (x *Store) guardarConsumos(instancias []*entity.Instancia) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("listadoConsumos")
	for _, inst := range instancias {
		for _, c := range inst.Consumos {
			el := root.CreateElement("consumo")
			el.CreateAttr("nitCliente", inst.NITCliente)
			el.CreateAttr("idInstancia", strconv.Itoa(inst.ID))
			el.CreateElement("tiempo").SetText(c.Tiempo.String())
			el.CreateElement("fechahora").SetText(c.FechaHora)
		}
	}
	return x.escribir(doc, archivoConsumos)
}

func (x *Store) guardarFacturas(facturas []*entity.Factura) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("listaFacturas")
	for _, f := range facturas {
		el := root.CreateElement("factura")
		el.CreateAttr("id", strconv.Itoa(f.ID))
		el.CreateElement("nitCliente").SetText(f.NITCliente)
		el.CreateElement("fechaEmision").SetText(f.FechaEmision)
		el.CreateElement("periodo").SetText(f.Periodo)
		el.CreateElement("montoTotal").SetText(f.MontoTotal.String())
		detalles := el.CreateElement("detalles")
		for _, d := range f.Detalles {
			detEl := detalles.CreateElement("detalle")
			detEl.CreateElement("idInstancia").SetText(strconv.Itoa(d.IDInstancia))
			detEl.CreateElement("tiempoTotal").SetText(d.TiempoTotal.String())
			detEl.CreateElement("monto").SetText(d.Monto.String())
		}
	}
	return x.escribir(doc, archivoFacturas)
}

func (x *Store) escribir(doc *etree.Document, nombre string) error {
	doc.Indent(2)
	if err := doc.WriteToFile(filepath.Join(x.dir, nombre)); err != nil {
		return fmt.Errorf("escribir %s: %w", nombre, err)
	}
	return nil
}

// ── Carga ─────────────────────────────────────────────────────────────────────

// Cargar reconstruye el agregado desde los archivos del directorio. Los
// archivos ausentes no son error (primer arranque); el orden respeta las
// dependencias referenciales: recursos → categorías → clientes →
// consumos → facturas.
func (x *Store) Cargar(s *store.Store) error {
	if err := x.cargarRecursos(s); err != nil {
		return err
	}
	if err := x.cargarCategorias(s); err != nil {
		return err
	}
	if err := x.cargarClientes(s); err != nil {
		return err
	}
	if err := x.cargarConsumos(s); err != nil {
		return err
	}
	if err := x.cargarFacturas(s); err != nil {
		return err
	}
	x.log.Info().
		Int("recursos", len(s.Recursos())).
		Int("clientes", len(s.Clientes())).
		Int("facturas", len(s.Facturas())).
		Msg("colecciones cargadas desde disco")
	return nil
}

// leer abre un archivo de colección; devuelve (nil, nil) si no existe.
func (x *Store) leer(nombre string) (*etree.Element, error) {
	ruta := filepath.Join(x.dir, nombre)
	if _, err := os.Stat(ruta); os.IsNotExist(err) {
		return nil, nil
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(ruta); err != nil {
		return nil, fmt.Errorf("leer %s: %w", nombre, err)
	}
	return doc.Root(), nil
}

func (x *Store) cargarRecursos(s *store.Store) error {
	root, err := x.leer(archivoRecursos)
	if err != nil || root == nil {
		return err
	}
	for _, el := range root.SelectElements("recurso") {
		id, _ := strconv.Atoi(el.SelectAttrValue("id", ""))
		valor, _ := decimal.NewFromString(texto(el, "valorXhora"))
		_ = s.AgregarRecurso(&entity.Recurso{
			ID:          id,
			Nombre:      texto(el, "nombre"),
			Abreviatura: texto(el, "abreviatura"),
			Metrica:     texto(el, "metrica"),
			Tipo:        texto(el, "tipo"),
			ValorHora:   valor,
		})
	}
	return nil
}

func (x *Store) cargarCategorias(s *store.Store) error {
	root, err := x.leer(archivoCategorias)
	if err != nil || root == nil {
		return err
	}
	for _, el := range root.SelectElements("categoria") {
		id, _ := strconv.Atoi(el.SelectAttrValue("id", ""))
		_ = s.AgregarCategoria(&entity.Categoria{
			ID:           id,
			Nombre:       texto(el, "nombre"),
			Descripcion:  texto(el, "descripcion"),
			CargaTrabajo: texto(el, "cargaTrabajo"),
		})
		lista := el.SelectElement("listaConfiguraciones")
		if lista == nil {
			continue
		}
		for _, confEl := range lista.SelectElements("configuracion") {
			confID, _ := strconv.Atoi(confEl.SelectAttrValue("id", ""))
			conf := &entity.Configuracion{
				ID:          confID,
				Nombre:      texto(confEl, "nombre"),
				Descripcion: texto(confEl, "descripcion"),
				IDCategoria: id,
			}
			if recursos := confEl.SelectElement("recursosConfiguracion"); recursos != nil {
				for _, recursoEl := range recursos.SelectElements("recurso") {
					idRecurso, _ := strconv.Atoi(recursoEl.SelectAttrValue("id", ""))
					cantidad, _ := decimal.NewFromString(strings.TrimSpace(recursoEl.Text()))
					conf.AgregarRecurso(entity.AsignacionRecurso{IDRecurso: idRecurso, Cantidad: cantidad})
				}
			}
			_ = s.AgregarConfiguracion(conf)
		}
	}
	return nil
}

func (x *Store) cargarClientes(s *store.Store) error {
	root, err := x.leer(archivoClientes)
	if err != nil || root == nil {
		return err
	}
	for _, el := range root.SelectElements("cliente") {
		nit := el.SelectAttrValue("nit", "")
		_ = s.AgregarCliente(&entity.Cliente{
			NIT:       nit,
			Nombre:    texto(el, "nombre"),
			Usuario:   texto(el, "usuario"),
			Clave:     texto(el, "clave"),
			Direccion: texto(el, "direccion"),
			Correo:    texto(el, "correoElectronico"),
		})
		lista := el.SelectElement("listaInstancias")
		if lista == nil {
			continue
		}
		for _, instEl := range lista.SelectElements("instancia") {
			id, _ := strconv.Atoi(instEl.SelectAttrValue("id", ""))
			idConf, _ := strconv.Atoi(texto(instEl, "idConfiguracion"))
			inst := &entity.Instancia{
				ID:              id,
				IDConfiguracion: idConf,
				Nombre:          texto(instEl, "nombre"),
				FechaInicio:     texto(instEl, "fechaInicio"),
				Estado:          texto(instEl, "estado"),
				FechaFinal:      texto(instEl, "fechaFinal"),
				NITCliente:      nit,
			}
			if inst.Estado == "" {
				inst.Estado = entity.EstadoVigente
			}
			_ = s.AgregarInstancia(inst)
		}
	}
	return nil
}

func (x *Store) cargarConsumos(s *store.Store) error {
	root, err := x.leer(archivoConsumos)
	if err != nil || root == nil {
		return err
	}
	for _, el := range root.SelectElements("consumo") {
		idInstancia, _ := strconv.Atoi(el.SelectAttrValue("idInstancia", ""))
		inst, ok := s.Instancia(idInstancia)
		if !ok {
			continue
		}
		tiempo, err := decimal.NewFromString(texto(el, "tiempo"))
		if err != nil {
			continue
		}
		inst.AgregarConsumo(entity.Consumo{Tiempo: tiempo, FechaHora: texto(el, "fechahora")})
	}
	return nil
}

func (x *Store) cargarFacturas(s *store.Store) error {
	root, err := x.leer(archivoFacturas)
	if err != nil || root == nil {
		return err
	}
	for _, el := range root.SelectElements("factura") {
		id, _ := strconv.Atoi(el.SelectAttrValue("id", ""))
		f := &entity.Factura{
			ID:           id,
			NITCliente:   texto(el, "nitCliente"),
			FechaEmision: texto(el, "fechaEmision"),
			Periodo:      texto(el, "periodo"),
		}
		if detalles := el.SelectElement("detalles"); detalles != nil {
			for _, detEl := range detalles.SelectElements("detalle") {
				idInstancia, _ := strconv.Atoi(texto(detEl, "idInstancia"))
				tiempo, _ := decimal.NewFromString(texto(detEl, "tiempoTotal"))
				monto, _ := decimal.NewFromString(texto(detEl, "monto"))
				f.AgregarDetalle(entity.DetalleFactura{
					IDInstancia: idInstancia,
					TiempoTotal: tiempo,
					Monto:       monto,
				})
			}
		}
		s.AgregarFactura(f)
	}
	return nil
}

func texto(el *etree.Element, nombre string) string {
	hijo := el.SelectElement(nombre)
	if hijo == nil {
		return ""
	}
	return strings.TrimSpace(hijo.Text())
}
