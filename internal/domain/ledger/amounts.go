package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SaleAmounts calcula total y ganancia de una venta (servicio de dominio).
// Total = Precio * Cantidad; Ganancia = Total * Margen / 100
func SaleAmounts(unitPrice, marginPct decimal.Decimal, quantity int64) (total, profit decimal.Decimal) {
	total = unitPrice.Mul(decimal.NewFromInt(quantity))
	profit = total.Mul(marginPct).Div(hundred)
	return total, profit
}

// Remaining saldo pendiente de una cuenta por cobrar.
func Remaining(total, paid decimal.Decimal) decimal.Decimal {
	return total.Sub(paid)
}

// ParseYearMonth valida "YYYY-MM" y devuelve el primer instante del mes en loc.
func ParseYearMonth(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation("2006-01", s, loc)
}

// Sum suma una lista de montos; la lista vacía suma cero.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return decimal.Sum(decimal.Zero, values...)
}
