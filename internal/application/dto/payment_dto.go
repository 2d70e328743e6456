package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddPaymentRequest body para POST /api/payments. RelatedID apunta a la venta
// (customer_payment) o a la compra (supplier_payment).
type AddPaymentRequest struct {
	CustomerID string          `json:"customer_id"`
	RelatedID  string          `json:"related_id"`
	Type       string          `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method,omitempty"`
}

// PaymentResponse entrada del ledger de pagos.
type PaymentResponse struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id,omitempty"`
	RelatedID  string          `json:"related_id"`
	Type       string          `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	Date       time.Time       `json:"date"`
	UserID     string          `json:"user_id,omitempty"`
	Status     string          `json:"status"`
	Reference  string          `json:"reference"`
}

// PaymentStatsResponse agregados del ledger de pagos.
type PaymentStatsResponse struct {
	TotalPayments int64           `json:"total_payments"`
	TodayPayments int64           `json:"today_payments"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TodayAmount   decimal.Decimal `json:"today_amount"`
}
