package payments

import (
	"context"

	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// PaymentTxRunner ejecuta un abono (pago + deuda + espejo en la venta) en una
// sola transacción.
type PaymentTxRunner interface {
	RunPayment(ctx context.Context, fn func(
		debtRepo repository.DebtRepository,
		saleRepo repository.SaleRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}
