package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/application/inventory"
	"github.com/tu-usuario/farmacia-pro/internal/application/usecase"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/testutil"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func newMedicineFixture() (*usecase.MedicineUseCase, *testutil.Store) {
	store := testutil.NewStore()
	runner := &testutil.TxRunner{S: store}
	uc := usecase.NewMedicineUseCase(store.Medicines, store.StockLogs, runner,
		inventory.NewStockChangeUseCase(runner))
	return uc, store
}

func TestMedicineCreate_StockInicialEntraAlLedger(t *testing.T) {
	uc, store := newMedicineFixture()

	resp, err := uc.Create(context.Background(), dto.CreateMedicineRequest{
		Name:            "Loratadina 10mg",
		QuantityInStock: 30,
		BuyingPrice:     d(2),
		SellingPrice:    d(5),
	}, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(30), resp.QuantityInStock)

	require.Len(t, store.StockLogs.Entries, 1)
	log := store.StockLogs.Entries[0]
	assert.Equal(t, resp.ID, log.MedicineID)
	assert.Equal(t, entity.StockChangePurchase, log.ChangeType)
	assert.Equal(t, int64(30), log.QuantityChange)
	assert.Equal(t, "user-1", log.UserID)
}

func TestMedicineCreate_SinStockNoEscribeLedger(t *testing.T) {
	uc, store := newMedicineFixture()

	_, err := uc.Create(context.Background(), dto.CreateMedicineRequest{
		Name: "Loratadina 10mg", BuyingPrice: d(2), SellingPrice: d(5),
	}, "user-1")
	require.NoError(t, err)
	assert.Empty(t, store.StockLogs.Entries)
}

func TestMedicineCreate_Validaciones(t *testing.T) {
	uc, _ := newMedicineFixture()
	cases := []struct {
		name string
		req  dto.CreateMedicineRequest
	}{
		{"sin nombre", dto.CreateMedicineRequest{QuantityInStock: 1}},
		{"stock negativo", dto.CreateMedicineRequest{Name: "X", QuantityInStock: -1}},
		{"precio compra negativo", dto.CreateMedicineRequest{Name: "X", BuyingPrice: d(-1)}},
		{"precio venta negativo", dto.CreateMedicineRequest{Name: "X", SellingPrice: d(-1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), tc.req, "u")
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestMedicineCreate_NombreDuplicado(t *testing.T) {
	uc, _ := newMedicineFixture()
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateMedicineRequest{Name: "Loratadina 10mg"}, "u")
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateMedicineRequest{Name: "Loratadina 10mg"}, "u")
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestMedicineUpdate_NoTocaStock(t *testing.T) {
	uc, store := newMedicineFixture()
	resp, err := uc.Create(context.Background(), dto.CreateMedicineRequest{
		Name: "Loratadina 10mg", QuantityInStock: 30, BuyingPrice: d(2), SellingPrice: d(5),
	}, "u")
	require.NoError(t, err)

	name := "Loratadina 10mg x10"
	price := d(6)
	updated, err := uc.Update(resp.ID, dto.UpdateMedicineRequest{
		Name: &name, SellingPrice: &price,
	})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.True(t, updated.SellingPrice.Equal(d(6)))
	assert.Equal(t, int64(30), updated.QuantityInStock)

	// El ledger sigue con solo la entrada del alta
	assert.Len(t, store.StockLogs.Entries, 1)
}

func TestMedicineUpdate_NoEncontrado(t *testing.T) {
	uc, _ := newMedicineFixture()
	name := "X"
	_, err := uc.Update("ghost", dto.UpdateMedicineRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMedicineAdjustStock_AjusteManual(t *testing.T) {
	uc, store := newMedicineFixture()
	resp, err := uc.Create(context.Background(), dto.CreateMedicineRequest{
		Name: "Loratadina 10mg", QuantityInStock: 10, BuyingPrice: d(2), SellingPrice: d(5),
	}, "u")
	require.NoError(t, err)

	out, err := uc.AdjustStock(context.Background(), resp.ID,
		dto.AdjustStockRequest{QuantityChange: -4}, "user-2")
	require.NoError(t, err)
	assert.Equal(t, int64(6), out.Stock)
	assert.NotEmpty(t, out.LedgerEntryID)

	// Sin change_type explícito el movimiento queda como adjustment
	last := store.StockLogs.Entries[len(store.StockLogs.Entries)-1]
	assert.Equal(t, entity.StockChangeAdjustment, last.ChangeType)
	assert.Equal(t, int64(-4), last.QuantityChange)
	assert.Equal(t, "user-2", last.UserID)
}

func TestMedicineAdjustStock_NoDejaStockNegativo(t *testing.T) {
	uc, _ := newMedicineFixture()
	resp, err := uc.Create(context.Background(), dto.CreateMedicineRequest{
		Name: "Loratadina 10mg", QuantityInStock: 3,
	}, "u")
	require.NoError(t, err)

	_, err = uc.AdjustStock(context.Background(), resp.ID,
		dto.AdjustStockRequest{QuantityChange: -5}, "u")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestMedicineDelete(t *testing.T) {
	uc, _ := newMedicineFixture()
	resp, err := uc.Create(context.Background(), dto.CreateMedicineRequest{Name: "X"}, "u")
	require.NoError(t, err)

	require.NoError(t, uc.Delete(resp.ID))
	_, err = uc.GetByID(resp.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(resp.ID), domain.ErrNotFound)
}

func TestMedicineListStockLogsByMedicine_Filtra(t *testing.T) {
	uc, _ := newMedicineFixture()
	ctx := context.Background()
	a, err := uc.Create(ctx, dto.CreateMedicineRequest{Name: "A", QuantityInStock: 5}, "u")
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateMedicineRequest{Name: "B", QuantityInStock: 7}, "u")
	require.NoError(t, err)

	logs, err := uc.ListStockLogsByMedicine(a.ID, dto.PageRequest{Limit: 50})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, a.ID, logs[0].MedicineID)

	all, err := uc.ListStockLogs(dto.PageRequest{Limit: 50})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
