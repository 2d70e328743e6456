package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una deuda. Status es derivado (ver domain/debt.Derive), nunca
// se asigna directamente desde un request.
const (
	DebtStatusPending = "pending"
	DebtStatusPartial = "partial"
	DebtStatusCleared = "cleared"
	DebtStatusOverdue = "overdue"
)

// Debt es el saldo pendiente de un cliente, 1:1 con la venta a crédito que lo
// originó. RemainingBalance = max(0, TotalOwed - AmountPaid).
type Debt struct {
	ID               string
	CustomerID       string
	SaleID           string
	TotalOwed        decimal.Decimal
	AmountPaid       decimal.Decimal
	RemainingBalance decimal.Decimal
	DueDate          time.Time
	Status           string
	LastPaymentDate  *time.Time
	CreatedAt        time.Time
}
