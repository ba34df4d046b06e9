package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer datos del cliente tal como se capturan en la venta.
type Customer struct {
	Name    string
	Phone   string
	Address string
}

// Sale representa una venta. UnitPrice y MarginPct son copia del artículo al momento de vender.
type Sale struct {
	ID        string
	Customer  Customer
	Item      ItemKey
	Quantity  int64
	UnitPrice decimal.Decimal
	MarginPct decimal.Decimal
	Total     decimal.Decimal // UnitPrice * Quantity
	Profit    decimal.Decimal // Total * MarginPct / 100
	SoldAt    time.Time
	UpdatedAt time.Time
}
