package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de fecha de los snapshots (un registro por día).
const DateLayout = "2006-01-02"

// FinancialSnapshot resumen financiero capturado explícitamente para una fecha.
type FinancialSnapshot struct {
	ID                 string
	Date               string // YYYY-MM-DD
	TotalSales         decimal.Decimal
	SalesProfit        decimal.Decimal
	MonthSupplierBills decimal.Decimal
	TotalSupplierBills decimal.Decimal
	TotalExpenses      decimal.Decimal
	NetProfit          decimal.Decimal // TotalSales - TotalExpenses
	SalesMinusBills    decimal.Decimal // TotalSales - TotalSupplierBills
	TakenAt            time.Time
}
