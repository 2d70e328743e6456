package repository

import (
	"time"

	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

// StockLogRepository define el puerto del ledger de inventario (append-only:
// no hay Update ni Delete).
type StockLogRepository interface {
	Create(log *entity.StockLog) error
	List(limit, offset int) ([]*entity.StockLog, error)
	ListByMedicine(medicineID string, limit, offset int) ([]*entity.StockLog, error)
	// SumChangesBefore suma quantity_change por medicamento con fecha < t
	// (stock de apertura para reportes).
	SumChangesBefore(t time.Time) (map[string]int64, error)
	// SumPurchasesBetween suma las entradas purchase/update_purchase por
	// medicamento dentro del rango.
	SumPurchasesBetween(from, to time.Time) (map[string]int64, error)
}
