// Package textsearch implementa la búsqueda por subcadena sin distinguir mayúsculas
// que usan los listados (nombre/marca, cliente/teléfono).
package textsearch

import (
	"strings"

	"golang.org/x/text/cases"
)

// Contains indica si needle aparece en haystack usando case folding Unicode.
// needle vacío siempre coincide.
func Contains(haystack, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return true
	}
	fold := cases.Fold()
	return strings.Contains(fold.String(haystack), fold.String(needle))
}

// AnyContains indica si needle aparece en alguno de los campos.
func AnyContains(needle string, fields ...string) bool {
	for _, f := range fields {
		if Contains(f, needle) {
			return true
		}
	}
	return false
}
