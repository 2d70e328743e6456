package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/application/inventory"
	"github.com/tu-usuario/farmacia-pro/internal/application/payments"
	"github.com/tu-usuario/farmacia-pro/internal/application/sales"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/testutil"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// fixture: cliente + dos medicamentos con stock.
func newSaleFixture(t *testing.T) (*sales.CreateSaleUseCase, *testutil.Store) {
	t.Helper()
	store := testutil.NewStore()
	require.NoError(t, store.Customers.Create(&entity.Customer{ID: "cust-1", Name: "Ana"}))
	require.NoError(t, store.Medicines.Create(&entity.Medicine{
		ID: "med-1", Name: "Amoxicilina 500mg", QuantityInStock: 10,
		BuyingPrice: d(6), SellingPrice: d(10),
	}))
	require.NoError(t, store.Medicines.Create(&entity.Medicine{
		ID: "med-2", Name: "Ibuprofeno 400mg", QuantityInStock: 3,
		BuyingPrice: d(2), SellingPrice: d(5),
	}))
	runner := &testutil.TxRunner{S: store}
	uc := sales.NewCreateSaleUseCase(runner, inventory.NewStockChangeUseCase(runner), store.Customers, store.Sales)
	return uc, store
}

func TestCreateSale_ContadoPagoCompleto(t *testing.T) {
	uc, store := newSaleFixture(t)

	resp, err := uc.CreateSale(context.Background(), "user-1", dto.CreateSaleRequest{
		CustomerID: "cust-1",
		Items: []dto.SaleItemRequest{
			{MedicineID: "med-1", Quantity: 2}, // precio congelado del catálogo: 10
		},
		SaleType:   entity.SaleTypeCash,
		AmountPaid: d(20),
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(d(20)))
	assert.True(t, resp.Balance.IsZero())
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Amoxicilina 500mg", resp.Items[0].Name)
	assert.True(t, resp.Items[0].UnitPrice.Equal(d(10)), "unit price debe congelarse del catálogo")

	// Stock debitado vía ledger
	med, _ := store.Medicines.GetByID("med-1")
	assert.Equal(t, int64(8), med.QuantityInStock)
	require.Len(t, store.StockLogs.Entries, 1)
	assert.Equal(t, entity.StockChangeSale, store.StockLogs.Entries[0].ChangeType)
	assert.Equal(t, int64(-2), store.StockLogs.Entries[0].QuantityChange)

	// Pago inicial registrado, sin deuda
	require.Len(t, store.Payments.Entries, 1)
	assert.True(t, store.Payments.Entries[0].Amount.Equal(d(20)))
	debts, _ := store.Debts.List(0, 0)
	assert.Empty(t, debts, "una venta pagada completa no genera deuda")
}

func TestCreateSale_CreditoParcialCreaDeudaYPago(t *testing.T) {
	uc, store := newSaleFixture(t)

	resp, err := uc.CreateSale(context.Background(), "user-1", dto.CreateSaleRequest{
		CustomerID: "cust-1",
		Items: []dto.SaleItemRequest{
			{MedicineID: "med-1", Quantity: 3, UnitPrice: d(10)},
		},
		SaleType:   entity.SaleTypeCredit,
		AmountPaid: d(10),
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(d(30)))
	assert.True(t, resp.Balance.Equal(d(20)))

	debts, _ := store.Debts.List(0, 0)
	require.Len(t, debts, 1)
	debt := debts[0]
	assert.Equal(t, resp.ID, debt.SaleID)
	assert.True(t, debt.TotalOwed.Equal(d(30)))
	assert.True(t, debt.AmountPaid.Equal(d(10)))
	assert.True(t, debt.RemainingBalance.Equal(d(20)))
	assert.Equal(t, entity.DebtStatusPartial, debt.Status, "con abono inicial el estado derivado es partial")

	require.Len(t, store.Payments.Entries, 1)
	assert.Equal(t, entity.PaymentTypeCustomer, store.Payments.Entries[0].Type)
	assert.Equal(t, resp.ID, store.Payments.Entries[0].RelatedID)
}

func TestCreateSale_CreditoSinAbonoQuedaPending(t *testing.T) {
	uc, store := newSaleFixture(t)

	_, err := uc.CreateSale(context.Background(), "user-1", dto.CreateSaleRequest{
		CustomerID: "cust-1",
		Items:      []dto.SaleItemRequest{{MedicineID: "med-2", Quantity: 1}},
		SaleType:   entity.SaleTypeCredit,
	})
	require.NoError(t, err)

	debts, _ := store.Debts.List(0, 0)
	require.Len(t, debts, 1)
	assert.Equal(t, entity.DebtStatusPending, debts[0].Status)
	assert.Empty(t, store.Payments.Entries, "sin abono inicial no hay entrada de pago")
}

func TestCreateSale_StockInsuficienteNombraElMedicamentoYNoEscribe(t *testing.T) {
	uc, store := newSaleFixture(t)

	_, err := uc.CreateSale(context.Background(), "user-1", dto.CreateSaleRequest{
		CustomerID: "cust-1",
		Items: []dto.SaleItemRequest{
			{MedicineID: "med-1", Quantity: 1},
			{MedicineID: "med-2", Quantity: 4}, // solo hay 3
		},
		SaleType: entity.SaleTypeCash,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Ibuprofeno 400mg")

	// Las líneas se validan antes de escribir: ni venta, ni ledger, ni stock
	salesList, _ := store.Sales.List(0, 0)
	assert.Empty(t, salesList)
	assert.Empty(t, store.StockLogs.Entries)
	med, _ := store.Medicines.GetByID("med-1")
	assert.Equal(t, int64(10), med.QuantityInStock)
}

func TestCreateSale_AbonoMayorAlTotalEsInvalido(t *testing.T) {
	uc, _ := newSaleFixture(t)

	_, err := uc.CreateSale(context.Background(), "user-1", dto.CreateSaleRequest{
		CustomerID: "cust-1",
		Items:      []dto.SaleItemRequest{{MedicineID: "med-2", Quantity: 1}},
		AmountPaid: d(100),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateSale_ClienteInexistente(t *testing.T) {
	uc, _ := newSaleFixture(t)

	_, err := uc.CreateSale(context.Background(), "user-1", dto.CreateSaleRequest{
		CustomerID: "ghost",
		Items:      []dto.SaleItemRequest{{MedicineID: "med-1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateSale_ValidacionesDeRequest(t *testing.T) {
	uc, _ := newSaleFixture(t)
	ctx := context.Background()

	cases := []dto.CreateSaleRequest{
		{},                        // sin cliente ni líneas
		{CustomerID: "cust-1"},    // sin líneas
		{CustomerID: "cust-1", Items: []dto.SaleItemRequest{{MedicineID: "med-1", Quantity: 0}}},
		{CustomerID: "cust-1", Items: []dto.SaleItemRequest{{MedicineID: "med-1", Quantity: 1}}, SaleType: "barter"},
		{CustomerID: "cust-1", Items: []dto.SaleItemRequest{{MedicineID: "med-1", Quantity: 1}}, AmountPaid: d(-1)},
	}
	for _, in := range cases {
		_, err := uc.CreateSale(ctx, "user-1", in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestGetSale_DevuelveLineas(t *testing.T) {
	uc, _ := newSaleFixture(t)

	created, err := uc.CreateSale(context.Background(), "user-1", dto.CreateSaleRequest{
		CustomerID: "cust-1",
		Items:      []dto.SaleItemRequest{{MedicineID: "med-1", Quantity: 2}},
		AmountPaid: d(20),
	})
	require.NoError(t, err)

	got, err := uc.GetSale(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "med-1", got.Items[0].MedicineID)
}

func TestListSalesByCustomer_FiltraPorCliente(t *testing.T) {
	uc, store := newSaleFixture(t)
	require.NoError(t, store.Customers.Create(&entity.Customer{ID: "cust-2", Name: "Luis"}))

	saleDate := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	_, err := uc.CreateSale(context.Background(), "u", dto.CreateSaleRequest{
		CustomerID: "cust-1",
		Items:      []dto.SaleItemRequest{{MedicineID: "med-1", Quantity: 1}},
		AmountPaid: d(10),
		SaleDate:   &saleDate,
	})
	require.NoError(t, err)
	_, err = uc.CreateSale(context.Background(), "u", dto.CreateSaleRequest{
		CustomerID: "cust-2",
		Items:      []dto.SaleItemRequest{{MedicineID: "med-2", Quantity: 1}},
		AmountPaid: d(5),
	})
	require.NoError(t, err)

	list, err := uc.ListSalesByCustomer(context.Background(), "cust-1", 50, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "cust-1", list[0].CustomerID)
}

// Flujo completo crédito -> abono: la venta genera deuda parcial, el abono
// posterior la liquida y espeja la venta, y el stock sigue cuadrando contra
// la suma del ledger.
func TestCreateSale_CreditoLiquidadoPorAbonoCuadraLedger(t *testing.T) {
	uc, store := newSaleFixture(t)
	ctx := context.Background()
	runner := &testutil.TxRunner{S: store}
	paymentsUC := payments.NewReconcileUseCase(runner, store.Debts, store.Payments, store.Customers, nil)

	saleDate := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	resp, err := uc.CreateSale(ctx, "user-1", dto.CreateSaleRequest{
		CustomerID: "cust-1",
		Items:      []dto.SaleItemRequest{{MedicineID: "med-1", Quantity: 4, UnitPrice: d(5)}},
		SaleType:   entity.SaleTypeCredit,
		AmountPaid: d(5),
		SaleDate:   &saleDate,
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(d(20)))

	debts, _ := store.Debts.List(0, 0)
	require.Len(t, debts, 1)
	debt := debts[0]
	assert.Equal(t, entity.DebtStatusPartial, debt.Status)
	assert.True(t, debt.RemainingBalance.Equal(d(15)))
	assert.Equal(t, saleDate.AddDate(0, 0, 30), debt.DueDate, "vencimiento a 30 días de la venta")

	// Abono por el saldo completo
	out, err := paymentsUC.ApplyPayment(ctx, debt.ID, d(15), "", "user-1")
	require.NoError(t, err)
	assert.Equal(t, entity.DebtStatusCleared, out.Status)
	assert.True(t, out.RemainingBalance.IsZero())

	// La venta queda espejada y hay dos entradas de pago (inicial + abono)
	sale, _ := store.Sales.GetByID(resp.ID)
	assert.True(t, sale.Balance.IsZero())
	assert.True(t, sale.AmountPaid.Equal(d(20)))
	assert.Len(t, store.Payments.Entries, 2)

	// Invariante del ledger: stock == stock inicial + suma de movimientos
	var delta int64
	for _, l := range store.StockLogs.Entries {
		if l.MedicineID == "med-1" {
			delta += l.QuantityChange
		}
	}
	med, _ := store.Medicines.GetByID("med-1")
	assert.Equal(t, int64(10)+delta, med.QuantityInStock)
	assert.Equal(t, int64(6), med.QuantityInStock)
}
