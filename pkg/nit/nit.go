// Package nit valida el identificador tributario que usa el sistema
// como llave de cliente: una sucesión de dígitos, un guion y un dígito
// verificador 0-9 o K. Ejemplos válidos: "34300-4", "110339001-K".
package nit

import "regexp"

var patron = regexp.MustCompile(`^\d+-[0-9Kk]$`)

// Valido indica si el NIT cumple el formato documentado.
func Valido(nit string) bool {
	return patron.MatchString(nit)
}
