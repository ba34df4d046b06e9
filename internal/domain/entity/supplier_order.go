package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierOrder entrega o pedido de un proveedor con su cuenta de cobro.
// No modifica el stock automáticamente.
type SupplierOrder struct {
	ID           string
	Item         ItemKey // sin color
	Quantity     int64
	SupplierName string
	BilledAmount decimal.Decimal
	DueDate      time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// InMonth indica si el pedido se registró en el mes "YYYY-MM" (truncando CreatedAt).
func (o *SupplierOrder) InMonth(yearMonth string) bool {
	return o.CreatedAt.Format("2006-01") == yearMonth
}
