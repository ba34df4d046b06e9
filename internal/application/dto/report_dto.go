package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialSummaryDTO resumen financiero calculado al vuelo (no persiste nada).
type FinancialSummaryDTO struct {
	Month              string          `json:"month"` // YYYY-MM usado para MonthSupplierBills
	TotalSales         decimal.Decimal `json:"total_sales"`
	SalesProfit        decimal.Decimal `json:"sales_profit"`
	TotalExpenses      decimal.Decimal `json:"total_expenses"`
	NetProfit          decimal.Decimal `json:"net_profit"` // total_sales - total_expenses
	MonthSupplierBills decimal.Decimal `json:"month_supplier_bills"`
	TotalSupplierBills decimal.Decimal `json:"total_supplier_bills"`
	SalesMinusBills    decimal.Decimal `json:"sales_minus_bills"`
}

// ItemProfitDTO ganancia agregada por clave compuesta.
type ItemProfitDTO struct {
	Item     ItemKeyDTO      `json:"item"`
	Label    string          `json:"label"`
	Quantity int64           `json:"quantity"`
	Profit   decimal.Decimal `json:"profit"`
}

// SnapshotDTO fila del histórico de análisis financiero.
type SnapshotDTO struct {
	ID                 string          `json:"id"`
	Date               string          `json:"date"`
	TotalSales         decimal.Decimal `json:"total_sales"`
	SalesProfit        decimal.Decimal `json:"sales_profit"`
	MonthSupplierBills decimal.Decimal `json:"month_supplier_bills"`
	TotalSupplierBills decimal.Decimal `json:"total_supplier_bills"`
	TotalExpenses      decimal.Decimal `json:"total_expenses"`
	NetProfit          decimal.Decimal `json:"net_profit"`
	SalesMinusBills    decimal.Decimal `json:"sales_minus_bills"`
	TakenAt            time.Time       `json:"taken_at"`
}

// TakeSnapshotRequest fecha opcional del snapshot (por defecto hoy).
type TakeSnapshotRequest struct {
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}
