package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/application/inventory"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	debtstatus "github.com/tu-usuario/farmacia-pro/internal/domain/debt"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// Plazo por defecto de una venta a crédito.
const debtTermDays = 30

// CreateSaleUseCase registra una venta completa: valida stock bajo bloqueo de
// fila, crea la venta y sus líneas, debita inventario vía el reconciliador,
// registra el pago inicial y crea la deuda si queda saldo. Todo dentro de una
// sola transacción: cualquier falla revierte el conjunto.
type CreateSaleUseCase struct {
	txRunner     SaleTxRunner
	stockUC      StockChanger
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(
	txRunner SaleTxRunner,
	stockUC StockChanger,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:     txRunner,
		stockUC:      stockUC,
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
	}
}

// CreateSale registra la venta para el usuario indicado.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.CustomerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.AmountPaid.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	saleType := in.SaleType
	if saleType == "" {
		saleType = entity.SaleTypeCash
	}
	if saleType != entity.SaleTypeCash && saleType != entity.SaleTypeCredit {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.MedicineID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if item.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	// Cliente validado fuera de la tx (solo lectura).
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.CustomerID)
	}

	now := time.Now()
	saleDate := now
	if in.SaleDate != nil {
		saleDate = *in.SaleDate
	}

	var sale *entity.Sale
	err = uc.txRunner.RunSale(ctx, func(
		medRepo repository.MedicineRepository,
		logRepo repository.StockLogRepository,
		saleRepo repository.SaleRepository,
		debtRepo repository.DebtRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		// 1) Validar todas las líneas con la fila bloqueada; congelar nombre y
		// precio. Nada se escribe hasta que todas pasen.
		items := make([]entity.SaleItem, 0, len(in.Items))
		total := decimal.Zero
		for _, reqItem := range in.Items {
			med, err := medRepo.GetForUpdate(reqItem.MedicineID)
			if err != nil {
				return err
			}
			if med == nil {
				return fmt.Errorf("%w: medicamento %s", domain.ErrNotFound, reqItem.MedicineID)
			}
			if reqItem.Quantity > med.QuantityInStock {
				return fmt.Errorf("%w: la cantidad de %s excede el stock disponible (%d)",
					domain.ErrInsufficientStock, med.Name, med.QuantityInStock)
			}
			unitPrice := reqItem.UnitPrice
			if unitPrice.IsZero() {
				unitPrice = med.SellingPrice
			}
			subtotal := unitPrice.Mul(decimal.NewFromInt(reqItem.Quantity))
			items = append(items, entity.SaleItem{
				ID:         uuid.New().String(),
				MedicineID: med.ID,
				Name:       med.Name,
				Quantity:   reqItem.Quantity,
				UnitPrice:  unitPrice,
				Subtotal:   subtotal,
			})
			total = total.Add(subtotal)
		}

		if in.AmountPaid.GreaterThan(total) {
			return fmt.Errorf("%w: el abono excede el total de la venta", domain.ErrInvalidInput)
		}
		balance := total.Sub(in.AmountPaid)

		// 2) Cabecera y líneas de la venta.
		sale = &entity.Sale{
			ID:          uuid.New().String(),
			CustomerID:  in.CustomerID,
			UserID:      userID,
			TotalAmount: total,
			AmountPaid:  in.AmountPaid,
			Balance:     balance,
			SaleType:    saleType,
			SaleDate:    saleDate,
			CreatedAt:   now,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for i := range items {
			items[i].SaleID = sale.ID
			if err := saleRepo.CreateItem(&items[i]); err != nil {
				return err
			}
		}
		sale.Items = items

		// 3) Débito de stock por línea, siempre vía el reconciliador.
		for _, item := range items {
			if _, err := uc.stockUC.ApplyInTx(medRepo, logRepo, inventory.StockChangeInput{
				MedicineID:     item.MedicineID,
				QuantityChange: -item.Quantity,
				ChangeType:     entity.StockChangeSale,
				UserID:         userID,
			}, now); err != nil {
				return err
			}
		}

		// 4) Pago inicial, si lo hubo.
		if in.AmountPaid.GreaterThan(decimal.Zero) {
			payment := &entity.Payment{
				ID:         uuid.New().String(),
				CustomerID: in.CustomerID,
				RelatedID:  sale.ID,
				Type:       entity.PaymentTypeCustomer,
				Amount:     in.AmountPaid,
				Method:     entity.PaymentMethodCash,
				Date:       now,
				UserID:     userID,
				Status:     entity.PaymentStatusCompleted,
				Reference:  entity.NewPaymentReference(now),
			}
			if err := paymentRepo.Create(payment); err != nil {
				return err
			}
		}

		// 5) Deuda si quedó saldo.
		if balance.GreaterThan(decimal.Zero) {
			dueDate := saleDate.AddDate(0, 0, debtTermDays)
			debt := &entity.Debt{
				ID:               uuid.New().String(),
				CustomerID:       in.CustomerID,
				SaleID:           sale.ID,
				TotalOwed:        total,
				AmountPaid:       in.AmountPaid,
				RemainingBalance: balance,
				DueDate:          dueDate,
				Status:           debtstatus.Derive(total, in.AmountPaid, dueDate, now),
				CreatedAt:        now,
			}
			if err := debtRepo.Create(debt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toSaleResponse(sale), nil
}

// GetSale devuelve una venta con sus líneas.
func (uc *CreateSaleUseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("%w: venta %s", domain.ErrNotFound, id)
	}
	out, err := uc.withItems([]*entity.Sale{sale})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// ListSales lista las ventas más recientes.
func (uc *CreateSaleUseCase) ListSales(ctx context.Context, limit, offset int) ([]*dto.SaleResponse, error) {
	list, err := uc.saleRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.withItems(list)
}

// ListSalesByCustomer lista las ventas de un cliente.
func (uc *CreateSaleUseCase) ListSalesByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*dto.SaleResponse, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.saleRepo.ListByCustomer(customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.withItems(list)
}

func (uc *CreateSaleUseCase) withItems(list []*entity.Sale) ([]*dto.SaleResponse, error) {
	out := make([]*dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items, err := uc.saleRepo.GetItems(s.ID)
		if err != nil {
			return nil, err
		}
		s.Items = make([]entity.SaleItem, 0, len(items))
		for _, it := range items {
			s.Items = append(s.Items, *it)
		}
		out = append(out, toSaleResponse(s))
	}
	return out, nil
}

func toSaleResponse(sale *entity.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:          sale.ID,
		CustomerID:  sale.CustomerID,
		UserID:      sale.UserID,
		TotalAmount: sale.TotalAmount,
		AmountPaid:  sale.AmountPaid,
		Balance:     sale.Balance,
		SaleType:    sale.SaleType,
		SaleDate:    sale.SaleDate,
		Items:       make([]dto.SaleItemResponse, 0, len(sale.Items)),
	}
	for _, item := range sale.Items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			MedicineID: item.MedicineID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			Subtotal:   item.Subtotal,
		})
	}
	return resp
}
