package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerDTO datos del cliente capturados en el formulario.
type CustomerDTO struct {
	Name    string `json:"name" validate:"required,max=200"`
	Phone   string `json:"phone" validate:"omitempty,max=30"`
	Address string `json:"address" validate:"omitempty,max=500"`
}

// RecordSaleRequest entrada para registrar o editar una venta.
type RecordSaleRequest struct {
	Customer CustomerDTO `json:"customer"`
	Item     ItemKeyDTO  `json:"item"`
	Quantity int64       `json:"quantity" validate:"min=1"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID        string          `json:"id"`
	Customer  CustomerDTO     `json:"customer"`
	Item      ItemKeyDTO      `json:"item"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
	Profit    decimal.Decimal `json:"profit"`
	SoldAt    time.Time       `json:"sold_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SaleListResponse lista de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Total int            `json:"total"`
}
