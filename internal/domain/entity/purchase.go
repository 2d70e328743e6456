package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una compra a proveedor.
const (
	PurchaseStatusPaid    = "paid"
	PurchaseStatusPending = "pending"
)

// Purchase es una compra a proveedor. Crear o editar la compra NO mueve
// stock; solo la edición/borrado de ítems y el ajuste manual pasan por el
// reconciliador de inventario.
type Purchase struct {
	ID           string
	SupplierID   string
	UserID       string
	TotalAmount  decimal.Decimal
	Status       string
	PurchaseDate time.Time
}

// PurchaseItem es una línea de compra.
type PurchaseItem struct {
	ID         string
	PurchaseID string
	MedicineID string
	Quantity   int64
	UnitPrice  decimal.Decimal
	Subtotal   decimal.Decimal
}
