package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/farmacia-pro/internal/application/inventory"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/testutil"
)

func seedMedicine(t *testing.T, s *testutil.Store, id string, stock int64) {
	t.Helper()
	require.NoError(t, s.Medicines.Create(&entity.Medicine{
		ID:              id,
		Name:            "Paracetamol 500mg",
		QuantityInStock: stock,
		BuyingPrice:     decimal.NewFromInt(6),
		SellingPrice:    decimal.NewFromInt(10),
	}))
}

func TestApply_EntradaActualizaFotoYLedger(t *testing.T) {
	store := testutil.NewStore()
	seedMedicine(t, store, "med-1", 5)
	uc := inventory.NewStockChangeUseCase(&testutil.TxRunner{S: store})

	res, err := uc.Apply(context.Background(), inventory.StockChangeInput{
		MedicineID:     "med-1",
		QuantityChange: 10,
		ChangeType:     entity.StockChangeAdjustment,
		UserID:         "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15), res.NewQuantity)
	assert.NotEmpty(t, res.LedgerEntryID)

	med, _ := store.Medicines.GetByID("med-1")
	assert.Equal(t, int64(15), med.QuantityInStock)

	require.Len(t, store.StockLogs.Entries, 1)
	log := store.StockLogs.Entries[0]
	assert.Equal(t, "med-1", log.MedicineID)
	assert.Equal(t, int64(10), log.QuantityChange)
	assert.Equal(t, entity.StockChangeAdjustment, log.ChangeType)
	assert.Equal(t, "user-1", log.UserID)
}

func TestApply_SalidaDejaLedgerConsistenteConLaFoto(t *testing.T) {
	store := testutil.NewStore()
	seedMedicine(t, store, "med-1", 8)
	uc := inventory.NewStockChangeUseCase(&testutil.TxRunner{S: store})

	_, err := uc.Apply(context.Background(), inventory.StockChangeInput{
		MedicineID: "med-1", QuantityChange: -3, ChangeType: entity.StockChangeSale, UserID: "u",
	})
	require.NoError(t, err)
	_, err = uc.Apply(context.Background(), inventory.StockChangeInput{
		MedicineID: "med-1", QuantityChange: -5, ChangeType: entity.StockChangeSale, UserID: "u",
	})
	require.NoError(t, err)

	med, _ := store.Medicines.GetByID("med-1")
	assert.Equal(t, int64(0), med.QuantityInStock)

	// La suma del ledger + el stock inicial reconstruye la foto
	var sum int64
	for _, e := range store.StockLogs.Entries {
		sum += e.QuantityChange
	}
	assert.Equal(t, int64(-8), sum)
}

func TestApply_StockInsuficienteNombraElMedicamento(t *testing.T) {
	store := testutil.NewStore()
	seedMedicine(t, store, "med-1", 2)
	uc := inventory.NewStockChangeUseCase(&testutil.TxRunner{S: store})

	_, err := uc.Apply(context.Background(), inventory.StockChangeInput{
		MedicineID: "med-1", QuantityChange: -3, ChangeType: entity.StockChangeSale, UserID: "u",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Paracetamol 500mg")

	// Nada se escribió
	med, _ := store.Medicines.GetByID("med-1")
	assert.Equal(t, int64(2), med.QuantityInStock)
	assert.Empty(t, store.StockLogs.Entries)
}

func TestApply_DeltaCeroEsInvalido(t *testing.T) {
	store := testutil.NewStore()
	seedMedicine(t, store, "med-1", 2)
	uc := inventory.NewStockChangeUseCase(&testutil.TxRunner{S: store})

	_, err := uc.Apply(context.Background(), inventory.StockChangeInput{
		MedicineID: "med-1", QuantityChange: 0, ChangeType: entity.StockChangeAdjustment,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApply_TipoDeCambioInvalido(t *testing.T) {
	store := testutil.NewStore()
	seedMedicine(t, store, "med-1", 2)
	uc := inventory.NewStockChangeUseCase(&testutil.TxRunner{S: store})

	_, err := uc.Apply(context.Background(), inventory.StockChangeInput{
		MedicineID: "med-1", QuantityChange: 1, ChangeType: "donation",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApply_MedicamentoInexistente(t *testing.T) {
	store := testutil.NewStore()
	uc := inventory.NewStockChangeUseCase(&testutil.TxRunner{S: store})

	_, err := uc.Apply(context.Background(), inventory.StockChangeInput{
		MedicineID: "nope", QuantityChange: 1, ChangeType: entity.StockChangeAdjustment,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApplyInTx_VaciarElStockEsValido(t *testing.T) {
	store := testutil.NewStore()
	seedMedicine(t, store, "med-1", 4)
	uc := inventory.NewStockChangeUseCase(&testutil.TxRunner{S: store})

	res, err := uc.ApplyInTx(store.Medicines, store.StockLogs, inventory.StockChangeInput{
		MedicineID: "med-1", QuantityChange: -4, ChangeType: entity.StockChangeSale,
	}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.NewQuantity)
}
