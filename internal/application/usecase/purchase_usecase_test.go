package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/application/inventory"
	"github.com/tu-usuario/farmacia-pro/internal/application/usecase"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/testutil"
)

func newPurchaseFixture(t *testing.T) (*usecase.PurchaseUseCase, *testutil.Store) {
	t.Helper()
	store := testutil.NewStore()
	require.NoError(t, store.Suppliers.Create(&entity.Supplier{ID: "sup-1", Name: "Droguería Central"}))
	require.NoError(t, store.Medicines.Create(&entity.Medicine{
		ID: "med-1", Name: "Amoxicilina 500mg", QuantityInStock: 20,
		BuyingPrice: d(6), SellingPrice: d(10),
	}))
	require.NoError(t, store.Medicines.Create(&entity.Medicine{
		ID: "med-2", Name: "Ibuprofeno 400mg", QuantityInStock: 5,
		BuyingPrice: d(2), SellingPrice: d(5),
	}))

	runner := &testutil.TxRunner{S: store}
	uc := usecase.NewPurchaseUseCase(store.Purchases, store.Suppliers, store.Medicines,
		runner, inventory.NewStockChangeUseCase(runner))
	return uc, store
}

func TestPurchaseCreate_CalculaTotalSinMoverStock(t *testing.T) {
	uc, store := newPurchaseFixture(t)

	resp, err := uc.Create(dto.CreatePurchaseRequest{
		SupplierID: "sup-1",
		Items: []dto.PurchaseItemRequest{
			{MedicineID: "med-1", Quantity: 10, UnitPrice: d(6)},
			{MedicineID: "med-2", Quantity: 4, UnitPrice: d(2)},
		},
	}, "user-1")
	require.NoError(t, err)

	assert.True(t, resp.TotalAmount.Equal(d(68)), "10x6 + 4x2")
	assert.Equal(t, entity.PurchaseStatusPending, resp.Status, "sin status explícito queda pending")
	require.Len(t, resp.Items, 2)
	assert.True(t, resp.Items[0].Subtotal.Equal(d(60)))

	// Registrar la compra no toca inventario ni ledger
	med, _ := store.Medicines.GetByID("med-1")
	assert.Equal(t, int64(20), med.QuantityInStock)
	assert.Empty(t, store.StockLogs.Entries)
}

func TestPurchaseCreate_Validaciones(t *testing.T) {
	uc, _ := newPurchaseFixture(t)
	item := dto.PurchaseItemRequest{MedicineID: "med-1", Quantity: 1, UnitPrice: d(6)}

	cases := []struct {
		name    string
		req     dto.CreatePurchaseRequest
		wantErr error
	}{
		{"sin líneas", dto.CreatePurchaseRequest{SupplierID: "sup-1"}, domain.ErrInvalidInput},
		{"cantidad cero", dto.CreatePurchaseRequest{Items: []dto.PurchaseItemRequest{{MedicineID: "med-1"}}}, domain.ErrInvalidInput},
		{"precio negativo", dto.CreatePurchaseRequest{Items: []dto.PurchaseItemRequest{{MedicineID: "med-1", Quantity: 1, UnitPrice: d(-1)}}}, domain.ErrInvalidInput},
		{"status desconocido", dto.CreatePurchaseRequest{Status: "cancelled", Items: []dto.PurchaseItemRequest{item}}, domain.ErrInvalidInput},
		{"proveedor fantasma", dto.CreatePurchaseRequest{SupplierID: "ghost", Items: []dto.PurchaseItemRequest{item}}, domain.ErrNotFound},
		{"medicamento fantasma", dto.CreatePurchaseRequest{Items: []dto.PurchaseItemRequest{{MedicineID: "ghost", Quantity: 1, UnitPrice: d(1)}}}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(tc.req, "u")
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestPurchaseUpdate_ReemplazaLineasSinMoverStock(t *testing.T) {
	uc, store := newPurchaseFixture(t)
	created, err := uc.Create(dto.CreatePurchaseRequest{
		SupplierID: "sup-1",
		Items:      []dto.PurchaseItemRequest{{MedicineID: "med-1", Quantity: 10, UnitPrice: d(6)}},
	}, "u")
	require.NoError(t, err)

	updated, err := uc.Update(created.ID, dto.UpdatePurchaseRequest{
		Status: entity.PurchaseStatusPaid,
		Items:  []dto.PurchaseItemRequest{{MedicineID: "med-2", Quantity: 3, UnitPrice: d(2)}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusPaid, updated.Status)
	assert.True(t, updated.TotalAmount.Equal(d(6)))
	require.Len(t, updated.Items, 1)
	assert.Equal(t, "med-2", updated.Items[0].MedicineID)

	assert.Empty(t, store.StockLogs.Entries)
}

func TestPurchaseUpdateItem_LaDiferenciaMueveStock(t *testing.T) {
	uc, store := newPurchaseFixture(t)
	created, err := uc.Create(dto.CreatePurchaseRequest{
		SupplierID: "sup-1",
		Items:      []dto.PurchaseItemRequest{{MedicineID: "med-1", Quantity: 10, UnitPrice: d(6)}},
	}, "u")
	require.NoError(t, err)
	itemID := created.Items[0].ID

	// 10 -> 7: la corrección descuenta 3 del stock
	item, err := uc.UpdateItem(context.Background(), itemID,
		dto.UpdatePurchaseItemRequest{Quantity: 7, UnitPrice: d(5)}, "user-2")
	require.NoError(t, err)
	assert.Equal(t, int64(7), item.Quantity)
	assert.True(t, item.Subtotal.Equal(d(35)))

	med, _ := store.Medicines.GetByID("med-1")
	assert.Equal(t, int64(17), med.QuantityInStock)

	require.Len(t, store.StockLogs.Entries, 1)
	log := store.StockLogs.Entries[0]
	assert.Equal(t, entity.StockChangeUpdatePurchase, log.ChangeType)
	assert.Equal(t, int64(-3), log.QuantityChange)
	assert.Equal(t, "user-2", log.UserID)

	// El total de la cabecera se recalcula con la línea corregida
	got, err := uc.GetByID(created.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalAmount.Equal(d(35)))
}

func TestPurchaseUpdateItem_MismaCantidadNoEscribeLedger(t *testing.T) {
	uc, store := newPurchaseFixture(t)
	created, err := uc.Create(dto.CreatePurchaseRequest{
		Items: []dto.PurchaseItemRequest{{MedicineID: "med-1", Quantity: 10, UnitPrice: d(6)}},
	}, "u")
	require.NoError(t, err)

	_, err = uc.UpdateItem(context.Background(), created.Items[0].ID,
		dto.UpdatePurchaseItemRequest{Quantity: 10, UnitPrice: d(7)}, "u")
	require.NoError(t, err)
	assert.Empty(t, store.StockLogs.Entries, "solo cambió el precio")
}

func TestPurchaseUpdateItem_Validaciones(t *testing.T) {
	uc, _ := newPurchaseFixture(t)
	ctx := context.Background()

	_, err := uc.UpdateItem(ctx, "x", dto.UpdatePurchaseItemRequest{Quantity: 0, UnitPrice: d(1)}, "u")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateItem(ctx, "ghost", dto.UpdatePurchaseItemRequest{Quantity: 1, UnitPrice: d(1)}, "u")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPurchaseDeleteItem_RevierteStock(t *testing.T) {
	uc, store := newPurchaseFixture(t)
	created, err := uc.Create(dto.CreatePurchaseRequest{
		Items: []dto.PurchaseItemRequest{
			{MedicineID: "med-1", Quantity: 10, UnitPrice: d(6)},
			{MedicineID: "med-2", Quantity: 4, UnitPrice: d(2)},
		},
	}, "u")
	require.NoError(t, err)

	var med2Item string
	for _, it := range created.Items {
		if it.MedicineID == "med-2" {
			med2Item = it.ID
		}
	}
	require.NotEmpty(t, med2Item)

	require.NoError(t, uc.DeleteItem(context.Background(), med2Item, "u"))

	med, _ := store.Medicines.GetByID("med-2")
	assert.Equal(t, int64(1), med.QuantityInStock, "5 - 4 revertidos")

	got, err := uc.GetByID(created.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalAmount.Equal(d(60)), "queda solo la línea de med-1")
	assert.Len(t, got.Items, 1)
}

func TestPurchaseDeleteItem_FallaSiRevertirDejaStockNegativo(t *testing.T) {
	uc, store := newPurchaseFixture(t)
	created, err := uc.Create(dto.CreatePurchaseRequest{
		Items: []dto.PurchaseItemRequest{{MedicineID: "med-2", Quantity: 4, UnitPrice: d(2)}},
	}, "u")
	require.NoError(t, err)

	// El stock ya se vendió: revertir la compra dejaría inventario negativo
	require.NoError(t, store.Medicines.UpdateStock("med-2", 2))

	err = uc.DeleteItem(context.Background(), created.Items[0].ID, "u")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}
