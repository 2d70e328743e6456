package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItemRequest línea de compra en el request.
type PurchaseItemRequest struct {
	MedicineID string          `json:"medicine_id"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseRequest body para POST /api/purchases. La creación NO mueve
// stock (ver reconciliador de inventario).
type CreatePurchaseRequest struct {
	SupplierID string                `json:"supplier_id"`
	Items      []PurchaseItemRequest `json:"items"`
	Status     string                `json:"status,omitempty"`
}

// UpdatePurchaseRequest body para PUT /api/purchases/:id. Reemplaza las
// líneas sin mover stock.
type UpdatePurchaseRequest struct {
	SupplierID string                `json:"supplier_id,omitempty"`
	Status     string                `json:"status,omitempty"`
	Items      []PurchaseItemRequest `json:"items"`
}

// UpdatePurchaseItemRequest body para PUT /api/purchase-items/:id. Este
// camino SÍ mueve stock por la diferencia de cantidad.
type UpdatePurchaseItemRequest struct {
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// PurchaseItemResponse línea de compra.
type PurchaseItemResponse struct {
	ID         string          `json:"id"`
	PurchaseID string          `json:"purchase_id"`
	MedicineID string          `json:"medicine_id"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// PurchaseResponse compra con sus líneas.
type PurchaseResponse struct {
	ID           string                 `json:"id"`
	SupplierID   string                 `json:"supplier_id"`
	UserID       string                 `json:"user_id,omitempty"`
	TotalAmount  decimal.Decimal        `json:"total_amount"`
	Status       string                 `json:"status"`
	PurchaseDate time.Time              `json:"purchase_date"`
	Items        []PurchaseItemResponse `json:"items,omitempty"`
}
