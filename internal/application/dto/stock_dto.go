package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpsertStockItemRequest entrada para crear o editar un artículo.
// MarginPct solo lo aplica el dueño; si el kasir lo envía se ignora.
type UpsertStockItemRequest struct {
	Name      string           `json:"name" validate:"required,max=200"`
	Brand     string           `json:"brand" validate:"required,max=100"`
	Size      string           `json:"size" validate:"required,max=50"`
	Color     string           `json:"color" validate:"omitempty,max=50"`
	Price     decimal.Decimal  `json:"price"`
	Quantity  int64            `json:"quantity" validate:"min=0"`
	MarginPct *decimal.Decimal `json:"margin_pct"`
}

// AdjustStockRequest ajuste de cantidad por clave compuesta (positivo = reposición).
type AdjustStockRequest struct {
	ItemKeyDTO
	Delta int64 `json:"delta" validate:"required"`
}

// ItemKeyDTO clave compuesta de un artículo.
type ItemKeyDTO struct {
	Name  string `json:"name" validate:"required"`
	Brand string `json:"brand" validate:"required"`
	Size  string `json:"size" validate:"required"`
	Color string `json:"color"`
}

// StockItemResponse salida de un artículo. MarginPct es nil en vistas del kasir.
type StockItemResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Brand     string           `json:"brand"`
	Size      string           `json:"size"`
	Color     string           `json:"color,omitempty"`
	Price     decimal.Decimal  `json:"price"`
	Quantity  int64            `json:"quantity"`
	MarginPct *decimal.Decimal `json:"margin_pct,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// StockItemListResponse lista de artículos.
type StockItemListResponse struct {
	Items []StockItemResponse `json:"items"`
	Total int                 `json:"total"`
}
