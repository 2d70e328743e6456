package inventory

import (
	"context"

	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el update de stock y el append
// al ledger ocurran juntos o no ocurran.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		medRepo repository.MedicineRepository,
		logRepo repository.StockLogRepository,
	) error) error
}
