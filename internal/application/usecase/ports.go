package usecase

import (
	"context"
	"time"

	"github.com/tu-usuario/farmacia-pro/internal/application/inventory"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// PurchaseTxRunner ejecuta fn dentro de una transacción con los repositorios
// necesarios para corregir ítems de compra junto con el stock.
type PurchaseTxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		medRepo repository.MedicineRepository,
		logRepo repository.StockLogRepository,
		purchaseRepo repository.PurchaseRepository,
	) error) error
}

// StockChanger es el único camino permitido para mutar stock dentro de una
// transacción ajena (ver el reconciliador de inventario).
type StockChanger interface {
	ApplyInTx(
		medRepo repository.MedicineRepository,
		logRepo repository.StockLogRepository,
		input inventory.StockChangeInput,
		now time.Time,
	) (*inventory.StockChangeResult, error)
}
