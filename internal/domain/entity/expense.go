package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de gasto.
const (
	ExpenseSalary     = "salary"
	ExpenseOperations = "operations"
	ExpenseOther      = "other"
)

// ValidExpenseCategory indica si la categoría es una de las permitidas.
func ValidExpenseCategory(c string) bool {
	switch c {
	case ExpenseSalary, ExpenseOperations, ExpenseOther:
		return true
	}
	return false
}

// ExpenseEntry gasto registrado; solo se agregan, no se editan.
type ExpenseEntry struct {
	ID        string
	Category  string
	Amount    decimal.Decimal
	Note      string
	CreatedAt time.Time
}
