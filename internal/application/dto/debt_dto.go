package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayDebtRequest body para POST /api/debts/:id/pay.
type PayDebtRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method,omitempty"` // cash por defecto
}

// UpdateDebtRequest body para PUT /api/debts/:id (corrección administrativa).
type UpdateDebtRequest struct {
	TotalOwed *decimal.Decimal `json:"total_owed,omitempty"`
	DueDate   *time.Time       `json:"due_date,omitempty"`
}

// DebtResponse deuda con su estado derivado.
type DebtResponse struct {
	ID               string          `json:"id"`
	CustomerID       string          `json:"customer_id"`
	SaleID           string          `json:"sale_id"`
	TotalOwed        decimal.Decimal `json:"total_owed"`
	AmountPaid       decimal.Decimal `json:"amount_paid"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	DueDate          time.Time       `json:"due_date"`
	Status           string          `json:"status"`
	LastPaymentDate  *time.Time      `json:"last_payment_date,omitempty"`
}
