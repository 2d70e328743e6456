package payments_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/application/payments"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	debtstatus "github.com/tu-usuario/farmacia-pro/internal/domain/debt"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/testutil"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// fixture: venta a crédito de 100 con abono inicial de 20 y su deuda de 80.
func newDebtFixture(t *testing.T) (*payments.ReconcileUseCase, *testutil.Store) {
	t.Helper()
	store := testutil.NewStore()
	require.NoError(t, store.Customers.Create(&entity.Customer{ID: "cust-1", Name: "Ana"}))

	now := time.Now()
	due := now.AddDate(0, 0, 30)
	require.NoError(t, store.Sales.Create(&entity.Sale{
		ID: "sale-1", CustomerID: "cust-1", TotalAmount: d(100),
		AmountPaid: d(20), Balance: d(80), SaleType: entity.SaleTypeCredit, SaleDate: now,
	}))
	require.NoError(t, store.Debts.Create(&entity.Debt{
		ID: "debt-1", CustomerID: "cust-1", SaleID: "sale-1",
		TotalOwed: d(100), AmountPaid: d(20), RemainingBalance: d(80),
		DueDate: due, Status: debtstatus.Derive(d(100), d(20), due, now),
	}))

	uc := payments.NewReconcileUseCase(&testutil.TxRunner{S: store},
		store.Debts, store.Payments, store.Customers, nil)
	return uc, store
}

func TestApplyPayment_AbonoParcial(t *testing.T) {
	uc, store := newDebtFixture(t)

	resp, err := uc.ApplyPayment(context.Background(), "debt-1", d(30), "", "user-1")
	require.NoError(t, err)
	assert.True(t, resp.AmountPaid.Equal(d(50)))
	assert.True(t, resp.RemainingBalance.Equal(d(50)))
	assert.Equal(t, entity.DebtStatusPartial, resp.Status)
	assert.NotNil(t, resp.LastPaymentDate)

	// Entrada en el ledger de pagos con método por defecto
	require.Len(t, store.Payments.Entries, 1)
	p := store.Payments.Entries[0]
	assert.Equal(t, entity.PaymentMethodCash, p.Method)
	assert.Equal(t, "sale-1", p.RelatedID)
	assert.NotEmpty(t, p.Reference)

	// Espejo en la venta origen
	sale, _ := store.Sales.GetByID("sale-1")
	assert.True(t, sale.AmountPaid.Equal(d(50)))
	assert.True(t, sale.Balance.Equal(d(50)))
}

func TestApplyPayment_SaldarDejaCleared(t *testing.T) {
	uc, store := newDebtFixture(t)

	resp, err := uc.ApplyPayment(context.Background(), "debt-1", d(80), entity.PaymentMethodMobile, "user-1")
	require.NoError(t, err)
	assert.True(t, resp.RemainingBalance.IsZero())
	assert.Equal(t, entity.DebtStatusCleared, resp.Status)

	sale, _ := store.Sales.GetByID("sale-1")
	assert.True(t, sale.Balance.IsZero())
}

func TestApplyPayment_SobrepagoRecortaElSaldoACero(t *testing.T) {
	uc, store := newDebtFixture(t)

	resp, err := uc.ApplyPayment(context.Background(), "debt-1", d(500), "", "user-1")
	require.NoError(t, err)
	assert.True(t, resp.RemainingBalance.IsZero(), "el sobrepago no se rechaza: saldo piso en cero")
	assert.Equal(t, entity.DebtStatusCleared, resp.Status)
	// El monto del pago sí queda íntegro en el ledger (auditoría)
	require.Len(t, store.Payments.Entries, 1)
	assert.True(t, store.Payments.Entries[0].Amount.Equal(d(500)))
}

func TestApplyPayment_DeudaVencidaQuedaOverdueSiNoSalda(t *testing.T) {
	uc, store := newDebtFixture(t)
	// Forzar vencimiento pasado
	debt, _ := store.Debts.GetByID("debt-1")
	debt.DueDate = time.Now().AddDate(0, 0, -5)
	require.NoError(t, store.Debts.Update(debt))

	resp, err := uc.ApplyPayment(context.Background(), "debt-1", d(10), "", "user-1")
	require.NoError(t, err)
	assert.Equal(t, entity.DebtStatusOverdue, resp.Status, "overdue pisa a partial si venció")
}

func TestApplyPayment_MontoInvalidoODeudaInexistente(t *testing.T) {
	uc, _ := newDebtFixture(t)
	ctx := context.Background()

	_, err := uc.ApplyPayment(ctx, "debt-1", d(0), "", "u")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ApplyPayment(ctx, "debt-1", d(-5), "", "u")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ApplyPayment(ctx, "ghost", d(10), "", "u")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddPayment_PagoDeClienteSeAplicaALaDeuda(t *testing.T) {
	uc, store := newDebtFixture(t)

	resp, err := uc.AddPayment(context.Background(), "user-1", dto.AddPaymentRequest{
		CustomerID: "cust-1",
		RelatedID:  "sale-1",
		Type:       entity.PaymentTypeCustomer,
		Amount:     d(80),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusCompleted, resp.Status)

	debt, _ := store.Debts.GetByID("debt-1")
	assert.Equal(t, entity.DebtStatusCleared, debt.Status)
	assert.True(t, debt.RemainingBalance.IsZero())
}

func TestAddPayment_VentaSinDeudaSoloActualizaElEspejo(t *testing.T) {
	uc, store := newDebtFixture(t)
	require.NoError(t, store.Sales.Create(&entity.Sale{
		ID: "sale-2", CustomerID: "cust-1", TotalAmount: d(50),
		AmountPaid: d(0), Balance: d(50), SaleType: entity.SaleTypeCash, SaleDate: time.Now(),
	}))

	_, err := uc.AddPayment(context.Background(), "user-1", dto.AddPaymentRequest{
		CustomerID: "cust-1",
		RelatedID:  "sale-2",
		Type:       entity.PaymentTypeCustomer,
		Amount:     d(50),
	})
	require.NoError(t, err)

	sale, _ := store.Sales.GetByID("sale-2")
	assert.True(t, sale.AmountPaid.Equal(d(50)))
	assert.True(t, sale.Balance.IsZero())
	debts, _ := store.Debts.List(0, 0)
	assert.Len(t, debts, 1, "no se creó deuda nueva")
}

func TestAddPayment_PagoAProveedorNoTocaDeudas(t *testing.T) {
	uc, store := newDebtFixture(t)

	_, err := uc.AddPayment(context.Background(), "user-1", dto.AddPaymentRequest{
		CustomerID: "cust-1",
		RelatedID:  "purchase-1",
		Type:       entity.PaymentTypeSupplier,
		Amount:     d(200),
	})
	require.NoError(t, err)

	debt, _ := store.Debts.GetByID("debt-1")
	assert.True(t, debt.RemainingBalance.Equal(d(80)), "un pago a proveedor no concilia deudas de clientes")
}

func TestAddPayment_Validaciones(t *testing.T) {
	uc, _ := newDebtFixture(t)
	ctx := context.Background()

	cases := []dto.AddPaymentRequest{
		{RelatedID: "sale-1", Type: entity.PaymentTypeCustomer, Amount: d(10)}, // sin cliente
		{CustomerID: "cust-1", Type: entity.PaymentTypeCustomer, Amount: d(10)},
		{CustomerID: "cust-1", RelatedID: "sale-1", Type: "refund", Amount: d(10)},
		{CustomerID: "cust-1", RelatedID: "sale-1", Type: entity.PaymentTypeCustomer, Amount: d(0)},
	}
	for _, in := range cases {
		_, err := uc.AddPayment(ctx, "u", in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	_, err := uc.AddPayment(ctx, "u", dto.AddPaymentRequest{
		CustomerID: "ghost", RelatedID: "sale-1", Type: entity.PaymentTypeCustomer, Amount: d(10),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateDebtTerms_RecalculaSaldoYEstado(t *testing.T) {
	uc, _ := newDebtFixture(t)

	newTotal := d(20) // por debajo de lo ya abonado
	resp, err := uc.UpdateDebtTerms(context.Background(), "debt-1", dto.UpdateDebtRequest{
		TotalOwed: &newTotal,
	})
	require.NoError(t, err)
	assert.True(t, resp.RemainingBalance.IsZero(), "saldo piso en cero al reducir el total")
	assert.Equal(t, entity.DebtStatusCleared, resp.Status)
}

func TestUpdateDebtTerms_VencimientoPasadoDerivaOverdue(t *testing.T) {
	uc, _ := newDebtFixture(t)

	past := time.Now().AddDate(0, 0, -1)
	resp, err := uc.UpdateDebtTerms(context.Background(), "debt-1", dto.UpdateDebtRequest{
		DueDate: &past,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DebtStatusOverdue, resp.Status)
}

func TestDeleteDebt(t *testing.T) {
	uc, store := newDebtFixture(t)

	require.NoError(t, uc.DeleteDebt(context.Background(), "debt-1"))
	debts, _ := store.Debts.List(0, 0)
	assert.Empty(t, debts)

	assert.ErrorIs(t, uc.DeleteDebt(context.Background(), "debt-1"), domain.ErrNotFound)
}

func TestGetPaymentStats_SeparaHoyDelTotal(t *testing.T) {
	uc, store := newDebtFixture(t)
	yesterday := time.Now().Add(-24 * time.Hour)
	require.NoError(t, store.Payments.Create(&entity.Payment{
		ID: "p-old", Amount: d(40), Date: yesterday, Reference: "REF-OLD",
	}))
	require.NoError(t, store.Payments.Create(&entity.Payment{
		ID: "p-today", Amount: d(60), Date: time.Now(), Reference: "REF-TODAY",
	}))

	stats, err := uc.GetPaymentStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalPayments)
	assert.Equal(t, int64(1), stats.TodayPayments)
	assert.True(t, stats.TotalAmount.Equal(d(100)))
	assert.True(t, stats.TodayAmount.Equal(d(60)))
}
