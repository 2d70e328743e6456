package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// StockChangeUseCase aplica deltas de stock de forma transaccional: bloquea
// la fila del medicamento (SELECT FOR UPDATE), valida que el resultado no
// quede negativo, actualiza la foto y agrega una entrada al ledger. Commit o
// Rollback cubren ambos escritos.
type StockChangeUseCase struct {
	txRunner TxRunner
}

// NewStockChangeUseCase construye el caso de uso.
func NewStockChangeUseCase(txRunner TxRunner) *StockChangeUseCase {
	return &StockChangeUseCase{txRunner: txRunner}
}

// StockChangeInput entrada para aplicar un cambio de stock.
type StockChangeInput struct {
	MedicineID     string
	QuantityChange int64 // con signo, distinto de cero
	ChangeType     string
	UserID         string
}

// StockChangeResult nuevo stock y entrada del ledger creada.
type StockChangeResult struct {
	NewQuantity   int64
	LedgerEntryID string
}

// Apply valida la entrada y ejecuta el cambio dentro de su propia transacción.
func (uc *StockChangeUseCase) Apply(ctx context.Context, input StockChangeInput) (*StockChangeResult, error) {
	if input.MedicineID == "" || input.QuantityChange == 0 {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidStockChangeType(input.ChangeType) {
		return nil, domain.ErrInvalidInput
	}

	var result *StockChangeResult
	err := uc.txRunner.Run(ctx, func(
		medRepo repository.MedicineRepository,
		logRepo repository.StockLogRepository,
	) error {
		res, err := uc.ApplyInTx(medRepo, logRepo, input, time.Now())
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ApplyInTx ejecuta el cambio usando los repositorios del caller (misma
// transacción). Lo usan el motor de ventas y las correcciones de ítems de
// compra para que toda mutación de stock pase por un solo camino.
func (uc *StockChangeUseCase) ApplyInTx(
	medRepo repository.MedicineRepository,
	logRepo repository.StockLogRepository,
	input StockChangeInput,
	now time.Time,
) (*StockChangeResult, error) {
	med, err := medRepo.GetForUpdate(input.MedicineID)
	if err != nil {
		return nil, err
	}
	if med == nil {
		return nil, domain.ErrNotFound
	}

	// Chequeo condicional bajo el bloqueo de fila: dos ventas concurrentes no
	// pueden pasar ambas contra stock viejo.
	newQty := med.QuantityInStock + input.QuantityChange
	if newQty < 0 {
		return nil, fmt.Errorf("%w: %s (disponible %d)", domain.ErrInsufficientStock, med.Name, med.QuantityInStock)
	}

	if err := medRepo.UpdateStock(med.ID, newQty); err != nil {
		return nil, err
	}
	log := &entity.StockLog{
		ID:             uuid.New().String(),
		MedicineID:     med.ID,
		ChangeType:     input.ChangeType,
		QuantityChange: input.QuantityChange,
		UserID:         input.UserID,
		Date:           now,
	}
	if err := logRepo.Create(log); err != nil {
		return nil, err
	}
	return &StockChangeResult{NewQuantity: newQty, LedgerEntryID: log.ID}, nil
}
