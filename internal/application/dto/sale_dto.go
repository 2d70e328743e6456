package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta en el request. Si UnitPrice es cero se usa
// el precio de venta actual del medicamento.
type SaleItemRequest struct {
	MedicineID string          `json:"medicine_id"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	CustomerID string            `json:"customer_id"`
	Items      []SaleItemRequest `json:"items"`
	SaleType   string            `json:"sale_type,omitempty"` // cash | credit
	AmountPaid decimal.Decimal   `json:"amount_paid"`
	SaleDate   *time.Time        `json:"sale_date,omitempty"`
}

// SaleItemResponse línea de venta en la respuesta.
type SaleItemResponse struct {
	MedicineID string          `json:"medicine_id"`
	Name       string          `json:"name"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// SaleResponse venta completa.
type SaleResponse struct {
	ID          string             `json:"id"`
	CustomerID  string             `json:"customer_id"`
	UserID      string             `json:"user_id,omitempty"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	AmountPaid  decimal.Decimal    `json:"amount_paid"`
	Balance     decimal.Decimal    `json:"balance"`
	SaleType    string             `json:"sale_type"`
	SaleDate    time.Time          `json:"sale_date"`
	Items       []SaleItemResponse `json:"items"`
}
