// Package usecase agrupa los casos de uso de catálogo: medicamentos,
// categorías, proveedores, clientes y compras.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/application/inventory"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// MedicineUseCase CRUD de medicamentos. El stock nunca se edita directo:
// el alta registra el inventario inicial en el ledger y los ajustes pasan
// por el reconciliador.
type MedicineUseCase struct {
	medicineRepo repository.MedicineRepository
	stockLogRepo repository.StockLogRepository
	txRunner     inventory.TxRunner
	stockUC      *inventory.StockChangeUseCase
}

// NewMedicineUseCase construye el caso de uso.
func NewMedicineUseCase(
	medicineRepo repository.MedicineRepository,
	stockLogRepo repository.StockLogRepository,
	txRunner inventory.TxRunner,
	stockUC *inventory.StockChangeUseCase,
) *MedicineUseCase {
	return &MedicineUseCase{
		medicineRepo: medicineRepo,
		stockLogRepo: stockLogRepo,
		txRunner:     txRunner,
		stockUC:      stockUC,
	}
}

// Create da de alta un medicamento. Si trae stock inicial, la entrada de
// ledger correspondiente se escribe en la misma transacción para que el
// inventario derivado del ledger cuadre desde el día cero.
func (uc *MedicineUseCase) Create(ctx context.Context, req dto.CreateMedicineRequest, userID string) (*dto.MedicineResponse, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	if req.QuantityInStock < 0 {
		return nil, fmt.Errorf("%w: quantity_in_stock no puede ser negativo", domain.ErrInvalidInput)
	}
	if req.BuyingPrice.IsNegative() || req.SellingPrice.IsNegative() {
		return nil, fmt.Errorf("%w: los precios no pueden ser negativos", domain.ErrInvalidInput)
	}

	now := time.Now()
	med := &entity.Medicine{
		ID:              uuid.New().String(),
		Name:            req.Name,
		CategoryID:      req.CategoryID,
		SupplierID:      req.SupplierID,
		QuantityInStock: req.QuantityInStock,
		BuyingPrice:     req.BuyingPrice,
		SellingPrice:    req.SellingPrice,
		ExpiryDate:      req.ExpiryDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := uc.txRunner.Run(ctx, func(
		medRepo repository.MedicineRepository,
		logRepo repository.StockLogRepository,
	) error {
		if err := medRepo.Create(med); err != nil {
			return err
		}
		if req.QuantityInStock == 0 {
			return nil
		}
		return logRepo.Create(&entity.StockLog{
			ID:             uuid.New().String(),
			MedicineID:     med.ID,
			ChangeType:     entity.StockChangePurchase,
			QuantityChange: req.QuantityInStock,
			UserID:         userID,
			Date:           now,
		})
	})
	if err != nil {
		return nil, err
	}
	resp := dto.MedicineFromEntity(med)
	return &resp, nil
}

// GetByID busca un medicamento.
func (uc *MedicineUseCase) GetByID(id string) (*dto.MedicineResponse, error) {
	med, err := uc.medicineRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if med == nil {
		return nil, fmt.Errorf("%w: medicamento %s", domain.ErrNotFound, id)
	}
	resp := dto.MedicineFromEntity(med)
	return &resp, nil
}

// List lista el catálogo paginado.
func (uc *MedicineUseCase) List(page dto.PageRequest) ([]dto.MedicineResponse, error) {
	meds, err := uc.medicineRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MedicineResponse, 0, len(meds))
	for _, m := range meds {
		out = append(out, dto.MedicineFromEntity(m))
	}
	return out, nil
}

// Update edita los datos del medicamento. El stock queda fuera: solo el
// reconciliador lo mueve.
func (uc *MedicineUseCase) Update(id string, req dto.UpdateMedicineRequest) (*dto.MedicineResponse, error) {
	med, err := uc.medicineRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if med == nil {
		return nil, fmt.Errorf("%w: medicamento %s", domain.ErrNotFound, id)
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
		}
		med.Name = *req.Name
	}
	if req.CategoryID != nil {
		med.CategoryID = *req.CategoryID
	}
	if req.SupplierID != nil {
		med.SupplierID = *req.SupplierID
	}
	if req.BuyingPrice != nil {
		if req.BuyingPrice.IsNegative() {
			return nil, fmt.Errorf("%w: buying_price no puede ser negativo", domain.ErrInvalidInput)
		}
		med.BuyingPrice = *req.BuyingPrice
	}
	if req.SellingPrice != nil {
		if req.SellingPrice.IsNegative() {
			return nil, fmt.Errorf("%w: selling_price no puede ser negativo", domain.ErrInvalidInput)
		}
		med.SellingPrice = *req.SellingPrice
	}
	if req.ExpiryDate != nil {
		med.ExpiryDate = *req.ExpiryDate
	}
	med.UpdatedAt = time.Now()

	if err := uc.medicineRepo.Update(med); err != nil {
		return nil, err
	}
	resp := dto.MedicineFromEntity(med)
	return &resp, nil
}

// Delete elimina un medicamento del catálogo.
func (uc *MedicineUseCase) Delete(id string) error {
	med, err := uc.medicineRepo.GetByID(id)
	if err != nil {
		return err
	}
	if med == nil {
		return fmt.Errorf("%w: medicamento %s", domain.ErrNotFound, id)
	}
	return uc.medicineRepo.Delete(id)
}

// AdjustStock aplica un ajuste manual vía el reconciliador de inventario.
func (uc *MedicineUseCase) AdjustStock(ctx context.Context, id string, req dto.AdjustStockRequest, userID string) (*dto.AdjustStockResponse, error) {
	changeType := req.ChangeType
	if changeType == "" {
		changeType = entity.StockChangeAdjustment
	}
	result, err := uc.stockUC.Apply(ctx, inventory.StockChangeInput{
		MedicineID:     id,
		QuantityChange: req.QuantityChange,
		ChangeType:     changeType,
		UserID:         userID,
	})
	if err != nil {
		return nil, err
	}
	return &dto.AdjustStockResponse{
		Message:       "stock actualizado",
		Stock:         result.NewQuantity,
		LedgerEntryID: result.LedgerEntryID,
	}, nil
}

// ListStockLogs lista el ledger completo, el movimiento más reciente primero.
func (uc *MedicineUseCase) ListStockLogs(page dto.PageRequest) ([]dto.StockLogResponse, error) {
	logs, err := uc.stockLogRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toStockLogResponses(logs), nil
}

// ListStockLogsByMedicine lista el ledger de un medicamento.
func (uc *MedicineUseCase) ListStockLogsByMedicine(medicineID string, page dto.PageRequest) ([]dto.StockLogResponse, error) {
	logs, err := uc.stockLogRepo.ListByMedicine(medicineID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toStockLogResponses(logs), nil
}

func toStockLogResponses(logs []*entity.StockLog) []dto.StockLogResponse {
	out := make([]dto.StockLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.StockLogResponse{
			ID:             l.ID,
			MedicineID:     l.MedicineID,
			ChangeType:     l.ChangeType,
			QuantityChange: l.QuantityChange,
			UserID:         l.UserID,
			Date:           l.Date,
		})
	}
	return out
}
