package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sakti-pos/internal/domain/ledger"
)

// Receivable cuenta por cobrar de un cliente: total facturado, abonado y saldo.
type Receivable struct {
	ID         string
	Customer   Customer
	Item       ItemKey
	Quantity   int64
	Total      decimal.Decimal
	Paid       decimal.Decimal
	Remaining  decimal.Decimal // Total - Paid, recalculado en cada escritura
	PromisedAt time.Time       // fecha prometida de pago
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Recompute actualiza Remaining = Total - Paid.
func (r *Receivable) Recompute() {
	r.Remaining = ledger.Remaining(r.Total, r.Paid)
}

// Settled indica si la cuenta por cobrar ya fue pagada por completo.
func (r *Receivable) Settled() bool {
	return !r.Remaining.IsPositive()
}
