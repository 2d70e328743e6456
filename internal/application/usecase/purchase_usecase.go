package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/application/inventory"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// PurchaseUseCase compras a proveedor. Crear y editar la compra NO mueve
// stock; la corrección o borrado de un ítem SÍ, vía el reconciliador, con
// change_type update_purchase.
type PurchaseUseCase struct {
	purchaseRepo repository.PurchaseRepository
	supplierRepo repository.SupplierRepository
	medicineRepo repository.MedicineRepository
	txRunner     PurchaseTxRunner
	stockUC      StockChanger
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	purchaseRepo repository.PurchaseRepository,
	supplierRepo repository.SupplierRepository,
	medicineRepo repository.MedicineRepository,
	txRunner PurchaseTxRunner,
	stockUC StockChanger,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		purchaseRepo: purchaseRepo,
		supplierRepo: supplierRepo,
		medicineRepo: medicineRepo,
		txRunner:     txRunner,
		stockUC:      stockUC,
	}
}

// Create registra una compra con sus líneas. El stock NO se toca aquí: el
// inventario entra por el alta del medicamento o por ajustes manuales.
func (uc *PurchaseUseCase) Create(req dto.CreatePurchaseRequest, userID string) (*dto.PurchaseResponse, error) {
	if err := uc.validateItems(req.Items); err != nil {
		return nil, err
	}
	if req.SupplierID != "" {
		sup, err := uc.supplierRepo.GetByID(req.SupplierID)
		if err != nil {
			return nil, err
		}
		if sup == nil {
			return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, req.SupplierID)
		}
	}
	status := req.Status
	if status == "" {
		status = entity.PurchaseStatusPending
	}
	if status != entity.PurchaseStatusPaid && status != entity.PurchaseStatusPending {
		return nil, fmt.Errorf("%w: status desconocido %q", domain.ErrInvalidInput, req.Status)
	}

	purchase := &entity.Purchase{
		ID:           uuid.New().String(),
		SupplierID:   req.SupplierID,
		UserID:       userID,
		Status:       status,
		PurchaseDate: time.Now(),
	}
	items, total, err := uc.buildItems(purchase.ID, req.Items)
	if err != nil {
		return nil, err
	}
	purchase.TotalAmount = total

	if err := uc.purchaseRepo.Create(purchase); err != nil {
		return nil, err
	}
	for _, item := range items {
		if err := uc.purchaseRepo.CreateItem(item); err != nil {
			return nil, err
		}
	}
	return toPurchaseResponse(purchase, items), nil
}

// GetByID devuelve la compra con sus líneas.
func (uc *PurchaseUseCase) GetByID(id string) (*dto.PurchaseResponse, error) {
	purchase, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, fmt.Errorf("%w: compra %s", domain.ErrNotFound, id)
	}
	items, err := uc.purchaseRepo.GetItems(id)
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase, items), nil
}

// List lista compras paginadas, sin líneas.
func (uc *PurchaseUseCase) List(page dto.PageRequest) ([]dto.PurchaseResponse, error) {
	purchases, err := uc.purchaseRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, *toPurchaseResponse(p, nil))
	}
	return out, nil
}

// Update reemplaza cabecera y líneas de la compra sin mover stock.
func (uc *PurchaseUseCase) Update(id string, req dto.UpdatePurchaseRequest) (*dto.PurchaseResponse, error) {
	purchase, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, fmt.Errorf("%w: compra %s", domain.ErrNotFound, id)
	}
	if err := uc.validateItems(req.Items); err != nil {
		return nil, err
	}
	if req.SupplierID != "" {
		purchase.SupplierID = req.SupplierID
	}
	if req.Status != "" {
		if req.Status != entity.PurchaseStatusPaid && req.Status != entity.PurchaseStatusPending {
			return nil, fmt.Errorf("%w: status desconocido %q", domain.ErrInvalidInput, req.Status)
		}
		purchase.Status = req.Status
	}

	items, total, err := uc.buildItems(purchase.ID, req.Items)
	if err != nil {
		return nil, err
	}
	purchase.TotalAmount = total

	if err := uc.purchaseRepo.DeleteItemsByPurchase(purchase.ID); err != nil {
		return nil, err
	}
	for _, item := range items {
		if err := uc.purchaseRepo.CreateItem(item); err != nil {
			return nil, err
		}
	}
	if err := uc.purchaseRepo.Update(purchase); err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase, items), nil
}

// UpdateItem corrige cantidad o precio de una línea. La diferencia de
// cantidad sí mueve stock, en la misma transacción que la línea y el total.
func (uc *PurchaseUseCase) UpdateItem(ctx context.Context, itemID string, req dto.UpdatePurchaseItemRequest, userID string) (*dto.PurchaseItemResponse, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if req.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit_price no puede ser negativo", domain.ErrInvalidInput)
	}

	var updated *entity.PurchaseItem
	err := uc.txRunner.RunPurchase(ctx, func(
		medRepo repository.MedicineRepository,
		logRepo repository.StockLogRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		item, err := purchaseRepo.GetItem(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("%w: línea de compra %s", domain.ErrNotFound, itemID)
		}

		if diff := req.Quantity - item.Quantity; diff != 0 {
			_, err := uc.stockUC.ApplyInTx(medRepo, logRepo, inventory.StockChangeInput{
				MedicineID:     item.MedicineID,
				QuantityChange: diff,
				ChangeType:     entity.StockChangeUpdatePurchase,
				UserID:         userID,
			}, time.Now())
			if err != nil {
				return err
			}
		}

		item.Quantity = req.Quantity
		item.UnitPrice = req.UnitPrice
		item.Subtotal = req.UnitPrice.Mul(decimal.NewFromInt(req.Quantity))
		if err := purchaseRepo.UpdateItem(item); err != nil {
			return err
		}
		if err := recomputePurchaseTotal(purchaseRepo, item.PurchaseID); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toPurchaseItemResponse(updated)
	return &resp, nil
}

// DeleteItem elimina una línea y revierte su cantidad del stock.
func (uc *PurchaseUseCase) DeleteItem(ctx context.Context, itemID string, userID string) error {
	return uc.txRunner.RunPurchase(ctx, func(
		medRepo repository.MedicineRepository,
		logRepo repository.StockLogRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		item, err := purchaseRepo.GetItem(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("%w: línea de compra %s", domain.ErrNotFound, itemID)
		}

		_, err = uc.stockUC.ApplyInTx(medRepo, logRepo, inventory.StockChangeInput{
			MedicineID:     item.MedicineID,
			QuantityChange: -item.Quantity,
			ChangeType:     entity.StockChangeUpdatePurchase,
			UserID:         userID,
		}, time.Now())
		if err != nil {
			return err
		}
		if err := purchaseRepo.DeleteItem(itemID); err != nil {
			return err
		}
		return recomputePurchaseTotal(purchaseRepo, item.PurchaseID)
	})
}

func (uc *PurchaseUseCase) validateItems(items []dto.PurchaseItemRequest) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: la compra necesita al menos una línea", domain.ErrInvalidInput)
	}
	for _, it := range items {
		if it.MedicineID == "" {
			return fmt.Errorf("%w: medicine_id es requerido en cada línea", domain.ErrInvalidInput)
		}
		if it.Quantity <= 0 {
			return fmt.Errorf("%w: quantity debe ser mayor que cero", domain.ErrInvalidInput)
		}
		if it.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: unit_price no puede ser negativo", domain.ErrInvalidInput)
		}
	}
	return nil
}

func (uc *PurchaseUseCase) buildItems(purchaseID string, reqs []dto.PurchaseItemRequest) ([]*entity.PurchaseItem, decimal.Decimal, error) {
	total := decimal.Zero
	items := make([]*entity.PurchaseItem, 0, len(reqs))
	for _, it := range reqs {
		med, err := uc.medicineRepo.GetByID(it.MedicineID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if med == nil {
			return nil, decimal.Zero, fmt.Errorf("%w: medicamento %s", domain.ErrNotFound, it.MedicineID)
		}
		subtotal := it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity))
		items = append(items, &entity.PurchaseItem{
			ID:         uuid.New().String(),
			PurchaseID: purchaseID,
			MedicineID: it.MedicineID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			Subtotal:   subtotal,
		})
		total = total.Add(subtotal)
	}
	return items, total, nil
}

func recomputePurchaseTotal(purchaseRepo repository.PurchaseRepository, purchaseID string) error {
	purchase, err := purchaseRepo.GetByID(purchaseID)
	if err != nil {
		return err
	}
	if purchase == nil {
		return fmt.Errorf("%w: compra %s", domain.ErrNotFound, purchaseID)
	}
	items, err := purchaseRepo.GetItems(purchaseID)
	if err != nil {
		return err
	}
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal)
	}
	purchase.TotalAmount = total
	return purchaseRepo.Update(purchase)
}

func toPurchaseResponse(p *entity.Purchase, items []*entity.PurchaseItem) *dto.PurchaseResponse {
	resp := &dto.PurchaseResponse{
		ID:           p.ID,
		SupplierID:   p.SupplierID,
		UserID:       p.UserID,
		TotalAmount:  p.TotalAmount,
		Status:       p.Status,
		PurchaseDate: p.PurchaseDate,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, toPurchaseItemResponse(it))
	}
	return resp
}

func toPurchaseItemResponse(it *entity.PurchaseItem) dto.PurchaseItemResponse {
	return dto.PurchaseItemResponse{
		ID:         it.ID,
		PurchaseID: it.PurchaseID,
		MedicineID: it.MedicineID,
		Quantity:   it.Quantity,
		UnitPrice:  it.UnitPrice,
		Subtotal:   it.Subtotal,
	}
}
