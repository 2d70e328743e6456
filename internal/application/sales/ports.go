package sales

import (
	"context"
	"time"

	"github.com/tu-usuario/farmacia-pro/internal/application/inventory"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// SaleTxRunner ejecuta el registro completo de una venta (venta + líneas +
// débitos de stock + pago + deuda) en una sola transacción.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		medRepo repository.MedicineRepository,
		logRepo repository.StockLogRepository,
		saleRepo repository.SaleRepository,
		debtRepo repository.DebtRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}

// StockChanger es el camino único de mutación de stock (reconciliador de
// inventario) visto desde el motor de ventas.
type StockChanger interface {
	ApplyInTx(
		medRepo repository.MedicineRepository,
		logRepo repository.StockLogRepository,
		input inventory.StockChangeInput,
		now time.Time,
	) (*inventory.StockChangeResult, error)
}
