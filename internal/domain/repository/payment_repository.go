package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

// PaymentStats agregados rápidos del ledger de pagos.
type PaymentStats struct {
	TotalPayments int64
	TodayPayments int64
	TotalAmount   decimal.Decimal
	TodayAmount   decimal.Decimal
}

// PaymentRepository define el puerto del ledger de pagos (append-only).
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	GetByID(id string) (*entity.Payment, error)
	List(limit, offset int) ([]*entity.Payment, error)
	ListByCustomer(customerID string, limit, offset int) ([]*entity.Payment, error)
	Stats(todayStart time.Time) (*PaymentStats, error)
}
