// Package fechas centraliza el manejo de fechas textuales del sistema.
// Todo el intercambio externo usa dd/mm/yyyy (y dd/mm/yyyy hh:mm para
// marcas de consumo); internamente se comparan fechas calendario
// parseadas, nunca strings.
package fechas

import (
	"regexp"
	"strings"
	"time"
)

// Layouts de los formatos textuales del sistema.
const (
	LayoutFecha     = "02/01/2006"
	LayoutFechaHora = "02/01/2006 15:04"
)

var (
	patronFecha     = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)
	patronFechaHora = regexp.MustCompile(`\d{2}/\d{2}/\d{4} \d{2}:\d{2}`)
)

// Parsear convierte un string dd/mm/yyyy a time.Time.
func Parsear(s string) (time.Time, error) {
	return time.Parse(LayoutFecha, s)
}

// Formatear convierte un time.Time a string dd/mm/yyyy.
func Formatear(t time.Time) string {
	return t.Format(LayoutFecha)
}

// Hoy devuelve la fecha actual en formato dd/mm/yyyy.
func Hoy() string {
	return Formatear(time.Now())
}

// RangoValido indica si inicio y fin son fechas dd/mm/yyyy bien formadas
// con inicio <= fin.
func RangoValido(inicio, fin string) bool {
	ti, err := Parsear(inicio)
	if err != nil {
		return false
	}
	tf, err := Parsear(fin)
	if err != nil {
		return false
	}
	return !ti.After(tf)
}

// EnRango indica si fecha cae dentro de [inicio, fin] (inclusive),
// comparando fechas calendario parseadas. Cualquier fecha mal formada
// da false.
func EnRango(fecha, inicio, fin string) bool {
	tf, err := Parsear(fecha)
	if err != nil {
		return false
	}
	ti, err := Parsear(inicio)
	if err != nil {
		return false
	}
	tn, err := Parsear(fin)
	if err != nil {
		return false
	}
	return !tf.Before(ti) && !tf.After(tn)
}

// EnRangoLexicografico compara inicio <= fecha <= fin byte a byte sobre
// strings dd/mm/yyyy. No coincide con el orden cronológico cuando el
// rango cruza un mes o un año; existe solo como modo de compatibilidad
// con el comportamiento histórico de facturación.
func EnRangoLexicografico(fecha, inicio, fin string) bool {
	return inicio <= fecha && fecha <= fin
}

// FechaDeMarca extrae la porción de fecha de una marca
// "dd/mm/yyyy hh:mm" (lo anterior al primer espacio).
func FechaDeMarca(marca string) string {
	fecha, _, _ := strings.Cut(marca, " ")
	return fecha
}

// Extraer busca en un texto libre la primera secuencia dd/mm/yyyy que
// sea una fecha calendario real ("31/02/2025" se descarta). Devuelve ""
// si no hay ninguna.
func Extraer(texto string) string {
	for _, m := range patronFecha.FindAllString(texto, -1) {
		if _, err := Parsear(m); err == nil {
			return m
		}
	}
	return ""
}

// ExtraerFechaHora busca la primera secuencia dd/mm/yyyy hh:mm válida
// dentro de un texto libre. Devuelve "" si no hay ninguna.
func ExtraerFechaHora(texto string) string {
	for _, m := range patronFechaHora.FindAllString(texto, -1) {
		if _, err := time.Parse(LayoutFechaHora, m); err == nil {
			return m
		}
	}
	return ""
}
