package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	debtstatus "github.com/tu-usuario/farmacia-pro/internal/domain/debt"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
	"github.com/tu-usuario/farmacia-pro/pkg/logger"
)

// ReconcileUseCase aplica abonos sobre deudas y mantiene consistentes los
// campos espejo de la venta. El endpoint dedicado de "pagar deuda" y el
// endpoint general de pagos convergen en la misma rutina de mutación
// (settleInTx) para que no haya deriva entre ambos caminos.
type ReconcileUseCase struct {
	txRunner     PaymentTxRunner
	debtRepo     repository.DebtRepository
	paymentRepo  repository.PaymentRepository
	customerRepo repository.CustomerRepository
	log          *logger.Logger
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(
	txRunner PaymentTxRunner,
	debtRepo repository.DebtRepository,
	paymentRepo repository.PaymentRepository,
	customerRepo repository.CustomerRepository,
	log *logger.Logger,
) *ReconcileUseCase {
	return &ReconcileUseCase{
		txRunner:     txRunner,
		debtRepo:     debtRepo,
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		log:          log,
	}
}

// ApplyPayment abona `amount` a la deuda indicada: agrega la entrada al
// ledger de pagos, actualiza montos y estado de la deuda y refleja el abono
// en la venta origen. Todo en una transacción con la fila de la deuda
// bloqueada.
func (uc *ReconcileUseCase) ApplyPayment(ctx context.Context, debtID string, amount decimal.Decimal, method, userID string) (*dto.DebtResponse, error) {
	if debtID == "" || !amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if method == "" {
		method = entity.PaymentMethodCash
	}

	now := time.Now()
	var debt *entity.Debt
	err := uc.txRunner.RunPayment(ctx, func(
		debtRepo repository.DebtRepository,
		saleRepo repository.SaleRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		var err error
		debt, err = debtRepo.GetForUpdate(debtID)
		if err != nil {
			return err
		}
		if debt == nil {
			return fmt.Errorf("%w: deuda %s", domain.ErrNotFound, debtID)
		}
		payment := &entity.Payment{
			ID:         uuid.New().String(),
			CustomerID: debt.CustomerID,
			RelatedID:  debt.SaleID,
			Type:       entity.PaymentTypeCustomer,
			Amount:     amount,
			Method:     method,
			Date:       now,
			UserID:     userID,
			Status:     entity.PaymentStatusCompleted,
			Reference:  entity.NewPaymentReference(now),
		}
		if err := paymentRepo.Create(payment); err != nil {
			return err
		}
		return settleInTx(debtRepo, saleRepo, debt, amount, now)
	})
	if err != nil {
		return nil, err
	}

	uc.remindIfOutstanding(debt)
	return toDebtResponse(debt), nil
}

// AddPayment registra un pago genérico. Si es un pago de cliente se aplica a
// la deuda de la venta referenciada por el mismo camino que ApplyPayment.
func (uc *ReconcileUseCase) AddPayment(ctx context.Context, userID string, in dto.AddPaymentRequest) (*dto.PaymentResponse, error) {
	if in.CustomerID == "" || in.RelatedID == "" || in.Type == "" || !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.PaymentTypeCustomer && in.Type != entity.PaymentTypeSupplier {
		return nil, domain.ErrInvalidInput
	}
	method := in.Method
	if method == "" {
		method = entity.PaymentMethodCash
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, in.CustomerID)
	}

	now := time.Now()
	payment := &entity.Payment{
		ID:         uuid.New().String(),
		CustomerID: in.CustomerID,
		RelatedID:  in.RelatedID,
		Type:       in.Type,
		Amount:     in.Amount,
		Method:     method,
		Date:       now,
		UserID:     userID,
		Status:     entity.PaymentStatusCompleted,
		Reference:  entity.NewPaymentReference(now),
	}

	var debt *entity.Debt
	err = uc.txRunner.RunPayment(ctx, func(
		debtRepo repository.DebtRepository,
		saleRepo repository.SaleRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		if err := paymentRepo.Create(payment); err != nil {
			return err
		}
		if payment.Type != entity.PaymentTypeCustomer {
			return nil
		}
		// Pago de cliente: aplicar sobre la deuda de la venta si existe; si la
		// venta no tiene deuda, reflejar solo el espejo de la venta.
		var err error
		debt, err = debtRepo.GetBySaleIDForUpdate(in.RelatedID)
		if err != nil {
			return err
		}
		if debt != nil {
			return settleInTx(debtRepo, saleRepo, debt, in.Amount, now)
		}
		return mirrorSaleInTx(saleRepo, in.RelatedID, in.Amount)
	})
	if err != nil {
		return nil, err
	}

	uc.remindIfOutstanding(debt)
	return toPaymentResponse(payment), nil
}

// UpdateDebtTerms corrige total adeudado y/o vencimiento de una deuda y
// recalcula saldo y estado desde los nuevos valores.
func (uc *ReconcileUseCase) UpdateDebtTerms(ctx context.Context, debtID string, in dto.UpdateDebtRequest) (*dto.DebtResponse, error) {
	if debtID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.TotalOwed != nil && in.TotalOwed.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var debt *entity.Debt
	err := uc.txRunner.RunPayment(ctx, func(
		debtRepo repository.DebtRepository,
		_ repository.SaleRepository,
		_ repository.PaymentRepository,
	) error {
		var err error
		debt, err = debtRepo.GetForUpdate(debtID)
		if err != nil {
			return err
		}
		if debt == nil {
			return fmt.Errorf("%w: deuda %s", domain.ErrNotFound, debtID)
		}
		if in.TotalOwed != nil {
			debt.TotalOwed = *in.TotalOwed
		}
		if in.DueDate != nil {
			debt.DueDate = *in.DueDate
		}
		debt.RemainingBalance = debtstatus.RemainingBalance(debt.TotalOwed, debt.AmountPaid)
		debt.Status = debtstatus.Derive(debt.TotalOwed, debt.AmountPaid, debt.DueDate, now)
		return debtRepo.Update(debt)
	})
	if err != nil {
		return nil, err
	}
	return toDebtResponse(debt), nil
}

// DeleteDebt elimina una deuda (corrección administrativa).
func (uc *ReconcileUseCase) DeleteDebt(ctx context.Context, debtID string) error {
	debt, err := uc.debtRepo.GetByID(debtID)
	if err != nil {
		return err
	}
	if debt == nil {
		return fmt.Errorf("%w: deuda %s", domain.ErrNotFound, debtID)
	}
	return uc.debtRepo.Delete(debtID)
}

// ListDebts lista deudas ordenadas por vencimiento.
func (uc *ReconcileUseCase) ListDebts(ctx context.Context, limit, offset int) ([]*dto.DebtResponse, error) {
	list, err := uc.debtRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DebtResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toDebtResponse(d))
	}
	return out, nil
}

// ListPayments lista el ledger de pagos.
func (uc *ReconcileUseCase) ListPayments(ctx context.Context, limit, offset int) ([]*dto.PaymentResponse, error) {
	list, err := uc.paymentRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPaymentResponse(p))
	}
	return out, nil
}

// ListPaymentsByCustomer lista los pagos de un cliente.
func (uc *ReconcileUseCase) ListPaymentsByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*dto.PaymentResponse, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.paymentRepo.ListByCustomer(customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPaymentResponse(p))
	}
	return out, nil
}

// GetPaymentStats devuelve agregados del ledger (totales e importes de hoy).
func (uc *ReconcileUseCase) GetPaymentStats(ctx context.Context) (*dto.PaymentStatsResponse, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	stats, err := uc.paymentRepo.Stats(todayStart)
	if err != nil {
		return nil, err
	}
	return &dto.PaymentStatsResponse{
		TotalPayments: stats.TotalPayments,
		TodayPayments: stats.TodayPayments,
		TotalAmount:   stats.TotalAmount,
		TodayAmount:   stats.TodayAmount,
	}, nil
}

// settleInTx es la rutina única de mutación de deuda: suma el abono, fija el
// saldo (piso en cero: el sobrepago no se rechaza), deriva el estado y
// refleja los campos espejo de la venta origen.
func settleInTx(
	debtRepo repository.DebtRepository,
	saleRepo repository.SaleRepository,
	debt *entity.Debt,
	amount decimal.Decimal,
	now time.Time,
) error {
	debt.AmountPaid = debt.AmountPaid.Add(amount)
	debt.RemainingBalance = debtstatus.RemainingBalance(debt.TotalOwed, debt.AmountPaid)
	debt.Status = debtstatus.Derive(debt.TotalOwed, debt.AmountPaid, debt.DueDate, now)
	debt.LastPaymentDate = &now
	if err := debtRepo.Update(debt); err != nil {
		return err
	}
	return mirrorSaleInTx(saleRepo, debt.SaleID, amount)
}

// mirrorSaleInTx actualiza amount_paid/balance de la venta origen.
func mirrorSaleInTx(saleRepo repository.SaleRepository, saleID string, amount decimal.Decimal) error {
	sale, err := saleRepo.GetForUpdate(saleID)
	if err != nil {
		return err
	}
	if sale == nil {
		return nil // pagos sin venta asociada no tienen espejo que mantener
	}
	newPaid := sale.AmountPaid.Add(amount)
	return saleRepo.UpdatePaid(sale.ID, newPaid, sale.TotalAmount.Sub(newPaid))
}

// remindIfOutstanding registra un recordatorio de cobro. Es best-effort:
// solo log, nunca afecta el registro del pago.
func (uc *ReconcileUseCase) remindIfOutstanding(debt *entity.Debt) {
	if debt == nil || uc.log == nil {
		return
	}
	if debt.RemainingBalance.GreaterThan(decimal.Zero) {
		uc.log.Warn().
			Str("debt_id", debt.ID).
			Str("customer_id", debt.CustomerID).
			Str("remaining_balance", debt.RemainingBalance.String()).
			Msg("recordatorio de cobro: la deuda sigue con saldo pendiente")
	}
}

func toDebtResponse(d *entity.Debt) *dto.DebtResponse {
	return &dto.DebtResponse{
		ID:               d.ID,
		CustomerID:       d.CustomerID,
		SaleID:           d.SaleID,
		TotalOwed:        d.TotalOwed,
		AmountPaid:       d.AmountPaid,
		RemainingBalance: d.RemainingBalance,
		DueDate:          d.DueDate,
		Status:           d.Status,
		LastPaymentDate:  d.LastPaymentDate,
	}
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:         p.ID,
		CustomerID: p.CustomerID,
		RelatedID:  p.RelatedID,
		Type:       p.Type,
		Amount:     p.Amount,
		Method:     p.Method,
		Date:       p.Date,
		UserID:     p.UserID,
		Status:     p.Status,
		Reference:  p.Reference,
	}
}
