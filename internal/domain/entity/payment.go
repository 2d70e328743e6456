package entity

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipos y métodos de pago.
const (
	PaymentTypeCustomer = "customer_payment"
	PaymentTypeSupplier = "supplier_payment"

	PaymentMethodCash   = "cash"
	PaymentMethodCredit = "credit"
	PaymentMethodMobile = "mobile"

	PaymentStatusCompleted = "completed"
	PaymentStatusPending   = "pending"
	PaymentStatusFailed    = "failed"
)

// NewPaymentReference genera una referencia única PAY-<ts36>-<rand> para
// pagos que llegan sin referencia del caller.
func NewPaymentReference(now time.Time) string {
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	rand := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:5])
	return "PAY-" + ts + "-" + rand
}

// Payment es una entrada inmutable del ledger de pagos (auditoría).
// RelatedID apunta a la venta o compra asociada; Reference es única y se
// autogenera si el caller no la envía.
type Payment struct {
	ID         string
	CustomerID string
	RelatedID  string
	Type       string // customer_payment | supplier_payment
	Amount     decimal.Decimal
	Method     string
	Date       time.Time
	UserID     string
	Status     string
	Reference  string
}
