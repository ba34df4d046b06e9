package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem representa un artículo del inventario de la tienda.
// Color vacío significa que el artículo se vende en cualquier color (la tinta se registra en la venta).
type StockItem struct {
	ID        string
	Name      string
	Brand     string
	Size      string          // tamaño o empaque, ej. "5L", "25kg"
	Color     string          // opcional
	Price     decimal.Decimal // precio de venta unitario
	MarginPct decimal.Decimal // porcentaje de ganancia 0..100
	Quantity  int64           // stock disponible
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Key devuelve la clave compuesta del artículo.
func (s *StockItem) Key() ItemKey {
	return ItemKey{Name: s.Name, Brand: s.Brand, Size: s.Size, Color: s.Color}
}

// Matches indica si el artículo atiende la clave pedida.
// Un artículo sin color atiende cualquier color; uno con color solo el suyo.
func (s *StockItem) Matches(k ItemKey) bool {
	if !s.Key().SameIdentity(k) {
		return false
	}
	own := s.Key().Normalize().Color
	return own == "" || own == k.Normalize().Color
}

// PickByKey elige entre candidatos el artículo que atiende la clave.
// Si hay varios, gana el que tiene exactamente el color pedido.
func PickByKey(items []*StockItem, k ItemKey) *StockItem {
	var fallback *StockItem
	want := k.Normalize().Color
	for _, it := range items {
		if it == nil || !it.Matches(k) {
			continue
		}
		if it.Key().Normalize().Color == want {
			return it
		}
		if fallback == nil {
			fallback = it
		}
	}
	return fallback
}
