package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpsertReceivableRequest entrada para crear o editar una cuenta por cobrar.
type UpsertReceivableRequest struct {
	Customer   CustomerDTO     `json:"customer"`
	Item       ItemKeyDTO      `json:"item"`
	Quantity   int64           `json:"quantity" validate:"min=1"`
	Total      decimal.Decimal `json:"total"`
	Paid       decimal.Decimal `json:"paid"`
	PromisedAt string          `json:"promised_at" validate:"omitempty,datetime=2006-01-02"`
}

// ReceivableResponse salida de una cuenta por cobrar.
type ReceivableResponse struct {
	ID         string          `json:"id"`
	Customer   CustomerDTO     `json:"customer"`
	Item       ItemKeyDTO      `json:"item"`
	Quantity   int64           `json:"quantity"`
	Total      decimal.Decimal `json:"total"`
	Paid       decimal.Decimal `json:"paid"`
	Remaining  decimal.Decimal `json:"remaining"`
	PromisedAt string          `json:"promised_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ReceivableListResponse lista de cuentas por cobrar con el saldo total pendiente.
type ReceivableListResponse struct {
	Items          []ReceivableResponse `json:"items"`
	Total          int                  `json:"total"`
	TotalRemaining decimal.Decimal      `json:"total_remaining"`
}

// DeleteResponse cantidad de filas borradas.
type DeleteResponse struct {
	Deleted int `json:"deleted"`
}
