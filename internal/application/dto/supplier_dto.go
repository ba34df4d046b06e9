package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpsertSupplierOrderRequest entrada para crear o editar un pedido de proveedor.
type UpsertSupplierOrderRequest struct {
	ItemName     string          `json:"item_name" validate:"required,max=200"`
	Brand        string          `json:"brand" validate:"required,max=100"`
	Size         string          `json:"size" validate:"required,max=50"`
	Quantity     int64           `json:"quantity" validate:"min=0"`
	SupplierName string          `json:"supplier_name" validate:"required,max=200"`
	BilledAmount decimal.Decimal `json:"billed_amount"`
	DueDate      string          `json:"due_date" validate:"required,datetime=2006-01-02"`
}

// SupplierOrderResponse salida de un pedido de proveedor.
type SupplierOrderResponse struct {
	ID           string          `json:"id"`
	ItemName     string          `json:"item_name"`
	Brand        string          `json:"brand"`
	Size         string          `json:"size"`
	Quantity     int64           `json:"quantity"`
	SupplierName string          `json:"supplier_name"`
	BilledAmount decimal.Decimal `json:"billed_amount"`
	DueDate      string          `json:"due_date"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// SupplierOrderListResponse lista de pedidos.
type SupplierOrderListResponse struct {
	Items []SupplierOrderResponse `json:"items"`
	Total int                     `json:"total"`
}
