package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest entrada para registrar un gasto.
type CreateExpenseRequest struct {
	Category string          `json:"category" validate:"required,oneof=salary operations other"`
	Amount   decimal.Decimal `json:"amount"`
	Note     string          `json:"note" validate:"omitempty,max=500"`
}

// ExpenseResponse salida de un gasto.
type ExpenseResponse struct {
	ID        string          `json:"id"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note"`
	CreatedAt time.Time       `json:"created_at"`
}

// ExpenseListResponse lista de gastos.
type ExpenseListResponse struct {
	Items       []ExpenseResponse `json:"items"`
	Total       int               `json:"total"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
}
