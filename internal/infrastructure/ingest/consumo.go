package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/cloud-billing/internal/application/dto"
	"github.com/tu-usuario/cloud-billing/internal/domain/entity"
	"github.com/tu-usuario/cloud-billing/pkg/fechas"
	"github.com/tu-usuario/cloud-billing/pkg/nit"
)

// Consumo procesa el XML de listado de consumos. Cada elemento
// <consumo nitCliente idInstancia> con <tiempo> y <fechahora> registra
// un evento de uso contra la instancia indicada; los inválidos se
// reportan sin abortar el documento.
func (p *Procesador) Consumo(xmlData string) (*dto.ResultadoConsumoDTO, error) {
	resultado := &dto.ResultadoConsumoDTO{Errores: []string{}}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlData); err != nil {
		resultado.Errores = append(resultado.Errores, fmt.Sprintf("Error parsing XML: %v", err))
		return resultado, nil
	}
	root := doc.Root()
	if root == nil {
		resultado.Errores = append(resultado.Errores, "XML sin elemento raíz")
		return resultado, nil
	}

	for _, el := range root.SelectElements("consumo") {
		if err := p.procesarConsumo(el); err != nil {
			resultado.Errores = append(resultado.Errores, err.Error())
			continue
		}
		resultado.ConsumosProcesados++
	}

	p.log.Info().
		Int("procesados", resultado.ConsumosProcesados).
		Int("errores", len(resultado.Errores)).
		Msg("consumos procesados")
	return resultado, nil
}

func (p *Procesador) procesarConsumo(el *etree.Element) error {
	nitCliente := el.SelectAttrValue("nitCliente", "")
	if !nit.Valido(nitCliente) {
		return fmt.Errorf("NIT inválido: %s", nitCliente)
	}
	idInstancia, err := strconv.Atoi(el.SelectAttrValue("idInstancia", ""))
	if err != nil {
		return fmt.Errorf("idInstancia inválido: %s", el.SelectAttrValue("idInstancia", ""))
	}

	inst, ok := p.store.Instancia(idInstancia)
	if !ok || inst.NITCliente != nitCliente {
		return fmt.Errorf("Instancia %d no encontrada para cliente %s", idInstancia, nitCliente)
	}
	if !inst.Vigente() {
		return fmt.Errorf("Instancia %d no está vigente", idInstancia)
	}

	tiempoTexto := textoHijo(el, "tiempo")
	if tiempoTexto == "" {
		return fmt.Errorf("Tiempo de consumo no especificado para instancia %d", idInstancia)
	}
	tiempo, err := decimal.NewFromString(tiempoTexto)
	if err != nil {
		return fmt.Errorf("Tiempo de consumo inválido: %s", tiempoTexto)
	}
	if !tiempo.IsPositive() {
		return fmt.Errorf("Tiempo de consumo debe ser positivo: %s", tiempoTexto)
	}

	fechaHoraTexto := textoHijo(el, "fechahora")
	if fechaHoraTexto == "" {
		return fmt.Errorf("Fecha/hora no especificada para instancia %d", idInstancia)
	}
	// La marca puede venir embebida en texto libre; se extrae la primera
	// secuencia dd/mm/yyyy hh:mm válida.
	fechaHora := fechas.ExtraerFechaHora(fechaHoraTexto)
	if fechaHora == "" {
		return fmt.Errorf("Fecha/hora inválida: %s", strings.TrimSpace(fechaHoraTexto))
	}

	inst.AgregarConsumo(entity.Consumo{Tiempo: tiempo, FechaHora: fechaHora})
	return nil
}
