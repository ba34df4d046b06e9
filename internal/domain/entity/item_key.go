package entity

import "strings"

// ItemKey identifica un artículo entre pantallas: (nombre, marca, tamaño/empaque[, color]).
type ItemKey struct {
	Name  string
	Brand string
	Size  string
	Color string
}

// Normalize recorta espacios en todos los campos.
func (k ItemKey) Normalize() ItemKey {
	return ItemKey{
		Name:  strings.TrimSpace(k.Name),
		Brand: strings.TrimSpace(k.Brand),
		Size:  strings.TrimSpace(k.Size),
		Color: strings.TrimSpace(k.Color),
	}
}

// Valid indica si los tres campos obligatorios están presentes.
func (k ItemKey) Valid() bool {
	k = k.Normalize()
	return k.Name != "" && k.Brand != "" && k.Size != ""
}

// SameIdentity compara nombre, marca y tamaño (sin color).
func (k ItemKey) SameIdentity(o ItemKey) bool {
	a, b := k.Normalize(), o.Normalize()
	return a.Name == b.Name && a.Brand == b.Brand && a.Size == b.Size
}

// String devuelve "nombre / marca / tamaño[ / color]", usado como etiqueta en reportes.
func (k ItemKey) String() string {
	k = k.Normalize()
	s := k.Name + " / " + k.Brand + " / " + k.Size
	if k.Color != "" {
		s += " / " + k.Color
	}
	return s
}
