// Package ingest procesa los dos documentos XML de carga del sistema:
// la configuración completa (recursos, categorías con configuraciones,
// clientes con instancias) y el listado de consumos. El procesamiento
// es de mejor esfuerzo: cada entidad inválida se reporta en la lista de
// errores del resultado sin abortar el documento.
package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/cloud-billing/internal/application/dto"
	"github.com/tu-usuario/cloud-billing/internal/domain/entity"
	"github.com/tu-usuario/cloud-billing/internal/store"
	"github.com/tu-usuario/cloud-billing/pkg/fechas"
	"github.com/tu-usuario/cloud-billing/pkg/nit"
)

// Procesador ingesta documentos XML contra el store.
type Procesador struct {
	store *store.Store
	log   zerolog.Logger
}

// NewProcesador construye el procesador.
func NewProcesador(s *store.Store, log zerolog.Logger) *Procesador {
	return &Procesador{store: s, log: log}
}

// Configuracion procesa el XML de configuración completa. Las entidades
// ya existentes se saltan en silencio (la carga es re-entrante); las
// secciones ausentes simplemente no aportan nada.
func (p *Procesador) Configuracion(xmlData string) (*dto.ResultadoConfiguracionDTO, error) {
	resultado := &dto.ResultadoConfiguracionDTO{Errores: []string{}}

	if strings.TrimSpace(xmlData) == "" {
		resultado.Errores = append(resultado.Errores, "XML vacío")
		return resultado, nil
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlData); err != nil {
		resultado.Errores = append(resultado.Errores, fmt.Sprintf("Error XML: %v", err))
		return resultado, nil
	}
	root := doc.Root()
	if root == nil {
		resultado.Errores = append(resultado.Errores, "XML sin elemento raíz")
		return resultado, nil
	}

	p.procesarRecursos(root, resultado)
	p.procesarCategorias(root, resultado)
	p.procesarClientes(root, resultado)

	p.log.Info().
		Int("recursos", resultado.RecursosCreados).
		Int("categorias", resultado.CategoriasCreadas).
		Int("configuraciones", resultado.ConfiguracionesCreadas).
		Int("clientes", resultado.ClientesCreados).
		Int("instancias", resultado.InstanciasCreadas).
		Int("errores", len(resultado.Errores)).
		Msg("configuración procesada")
	return resultado, nil
}

func (p *Procesador) procesarRecursos(root *etree.Element, resultado *dto.ResultadoConfiguracionDTO) {
	lista := root.SelectElement("listaRecursos")
	if lista == nil {
		return
	}
	for _, el := range lista.SelectElements("recurso") {
		id, err := atributoID(el)
		if err != nil {
			resultado.Errores = append(resultado.Errores, fmt.Sprintf("Error procesando recurso %s: %v", el.SelectAttrValue("id", ""), err))
			continue
		}
		if _, ok := p.store.Recurso(id); ok {
			continue // ya existe
		}
		tipo := textoHijo(el, "tipo")
		if !entity.TipoRecursoValido(tipo) {
			resultado.Errores = append(resultado.Errores, fmt.Sprintf("Tipo de recurso inválido: %s", tipo))
			continue
		}
		valor, err := decimalHijo(el, "valorXhora")
		if err != nil || valor.IsNegative() {
			resultado.Errores = append(resultado.Errores, fmt.Sprintf("Error procesando recurso %d: valorXhora inválido", id))
			continue
		}
		_ = p.store.AgregarRecurso(&entity.Recurso{
			ID:          id,
			Nombre:      textoHijo(el, "nombre"),
			Abreviatura: textoHijo(el, "abreviatura"),
			Metrica:     textoHijo(el, "metrica"),
			Tipo:        tipo,
			ValorHora:   valor,
		})
		resultado.RecursosCreados++
	}
}

func (p *Procesador) procesarCategorias(root *etree.Element, resultado *dto.ResultadoConfiguracionDTO) {
	lista := root.SelectElement("listaCategorias")
	if lista == nil {
		return
	}
	for _, el := range lista.SelectElements("categoria") {
		id, err := atributoID(el)
		if err != nil {
			resultado.Errores = append(resultado.Errores, fmt.Sprintf("Error procesando categoría %s: %v", el.SelectAttrValue("id", ""), err))
			continue
		}
		categoria, existe := p.store.Categoria(id)
		if !existe {
			categoria = &entity.Categoria{
				ID:           id,
				Nombre:       textoHijo(el, "nombre"),
				Descripcion:  textoHijo(el, "descripcion"),
				CargaTrabajo: textoHijo(el, "cargaTrabajo"),
			}
			if err := p.store.AgregarCategoria(categoria); err != nil {
				resultado.Errores = append(resultado.Errores, fmt.Sprintf("Error procesando categoría %d: %v", id, err))
				continue
			}
			resultado.CategoriasCreadas++
		}
		p.procesarConfiguraciones(el, categoria, resultado)
	}
}

func (p *Procesador) procesarConfiguraciones(categoriaElem *etree.Element, categoria *entity.Categoria, resultado *dto.ResultadoConfiguracionDTO) {
	lista := categoriaElem.SelectElement("listaConfiguraciones")
	if lista == nil {
		return
	}
	for _, el := range lista.SelectElements("configuracion") {
		id, err := atributoID(el)
		if err != nil {
			resultado.Errores = append(resultado.Errores, fmt.Sprintf("Error procesando configuración %s: %v", el.SelectAttrValue("id", ""), err))
			continue
		}
		if _, ok := p.store.Configuracion(id); ok {
			continue // ya existe
		}
		conf := &entity.Configuracion{
			ID:          id,
			Nombre:      textoHijo(el, "nombre"),
			Descripcion: textoHijo(el, "descripcion"),
			IDCategoria: categoria.ID,
		}
		// <recursosConfiguracion><recurso id="N">cantidad</recurso>...</recursosConfiguracion>
		if recursos := el.SelectElement("recursosConfiguracion"); recursos != nil {
			for _, recursoEl := range recursos.SelectElements("recurso") {
				idRecurso, err := atributoID(recursoEl)
				if err != nil {
					resultado.Errores = append(resultado.Errores, fmt.Sprintf("Error procesando configuración %d: %v", id, err))
					continue
				}
				if _, ok := p.store.Recurso(idRecurso); !ok {
					resultado.Errores = append(resultado.Errores, fmt.Sprintf("Recurso %d no existe en configuración %d", idRecurso, id))
					continue
				}
				cantidad, err := decimal.NewFromString(strings.TrimSpace(recursoEl.Text()))
				if err != nil || cantidad.IsNegative() {
					resultado.Errores = append(resultado.Errores, fmt.Sprintf("Cantidad inválida para recurso %d en configuración %d", idRecurso, id))
					continue
				}
				conf.AgregarRecurso(entity.AsignacionRecurso{IDRecurso: idRecurso, Cantidad: cantidad})
			}
		}
		if err := p.store.AgregarConfiguracion(conf); err != nil {
			resultado.Errores = append(resultado.Errores, fmt.Sprintf("Error procesando configuración %d: %v", id, err))
			continue
		}
		resultado.ConfiguracionesCreadas++
	}
}

func (p *Procesador) procesarClientes(root *etree.Element, resultado *dto.ResultadoConfiguracionDTO) {
	lista := root.SelectElement("listaClientes")
	if lista == nil {
		return
	}
	for _, el := range lista.SelectElements("cliente") {
		nitCliente := el.SelectAttrValue("nit", "")
		if !nit.Valido(nitCliente) {
			resultado.Errores = append(resultado.Errores, fmt.Sprintf("NIT inválido: %s", nitCliente))
			continue
		}
		cliente, existe := p.store.Cliente(nitCliente)
		if !existe {
			cliente = &entity.Cliente{
				NIT:       nitCliente,
				Nombre:    textoHijo(el, "nombre"),
				Usuario:   textoHijo(el, "usuario"),
				Clave:     textoHijo(el, "clave"),
				Direccion: textoHijo(el, "direccion"),
				Correo:    textoHijo(el, "correoElectronico"),
			}
			if err := p.store.AgregarCliente(cliente); err != nil {
				resultado.Errores = append(resultado.Errores, fmt.Sprintf("Error procesando cliente %s: %v", nitCliente, err))
				continue
			}
			resultado.ClientesCreados++
		}
		p.procesarInstancias(el, cliente, resultado)
	}
}

func (p *Procesador) procesarInstancias(clienteElem *etree.Element, cliente *entity.Cliente, resultado *dto.ResultadoConfiguracionDTO) {
	lista := clienteElem.SelectElement("listaInstancias")
	if lista == nil {
		return
	}
	for _, el := range lista.SelectElements("instancia") {
		id, err := atributoID(el)
		if err != nil {
			resultado.Errores = append(resultado.Errores, fmt.Sprintf("Error procesando instancia %s: %v", el.SelectAttrValue("id", ""), err))
			continue
		}
		if _, ok := p.store.Instancia(id); ok {
			continue // ya existe
		}
		idConfiguracion, err := strconv.Atoi(textoHijo(el, "idConfiguracion"))
		if err != nil {
			resultado.Errores = append(resultado.Errores, fmt.Sprintf("Error procesando instancia %d: idConfiguracion inválido", id))
			continue
		}
		fechaInicio := fechas.Extraer(textoHijo(el, "fechaInicio"))
		if fechaInicio == "" {
			resultado.Errores = append(resultado.Errores, fmt.Sprintf("Fecha inválida en instancia %d: %s", id, textoHijo(el, "fechaInicio")))
			continue
		}
		if _, ok := p.store.Configuracion(idConfiguracion); !ok {
			resultado.Errores = append(resultado.Errores, fmt.Sprintf("Configuración %d no existe para instancia %d", idConfiguracion, id))
			continue
		}

		inst := &entity.Instancia{
			ID:              id,
			IDConfiguracion: idConfiguracion,
			Nombre:          textoHijo(el, "nombre"),
			FechaInicio:     fechaInicio,
			Estado:          entity.EstadoVigente,
			NITCliente:      cliente.NIT,
		}
		// Estado y fecha final opcionales: una instancia puede llegar ya cancelada.
		if textoHijo(el, "estado") == entity.EstadoCancelada {
			if fechaFinal := fechas.Extraer(textoHijo(el, "fechaFinal")); fechaFinal != "" {
				inst.Cancelar(fechaFinal)
			}
		}
		if err := p.store.AgregarInstancia(inst); err != nil {
			resultado.Errores = append(resultado.Errores, fmt.Sprintf("Error procesando instancia %d: %v", id, err))
			continue
		}
		resultado.InstanciasCreadas++
	}
}

// ── Helpers de lectura ────────────────────────────────────────────────────────

func atributoID(el *etree.Element) (int, error) {
	id, err := strconv.Atoi(el.SelectAttrValue("id", ""))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("atributo id inválido")
	}
	return id, nil
}

func textoHijo(el *etree.Element, nombre string) string {
	hijo := el.SelectElement(nombre)
	if hijo == nil {
		return ""
	}
	return strings.TrimSpace(hijo.Text())
}

func decimalHijo(el *etree.Element, nombre string) (decimal.Decimal, error) {
	return decimal.NewFromString(textoHijo(el, nombre))
}
