package reports_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/application/reports"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/testutil"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

var (
	periodStart = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	periodEnd   = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	inPeriod    = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
)

// fixture: un medicamento (compra 6, venta 10, stock actual 2) con una venta
// de 2 unidades dentro del período.
func newReportFixture(t *testing.T) (*reports.GenerateUseCase, *testutil.Store) {
	t.Helper()
	store := testutil.NewStore()
	require.NoError(t, store.Categories.Create(&entity.Category{ID: "cat-1", Name: "Analgésicos"}))
	require.NoError(t, store.Medicines.Create(&entity.Medicine{
		ID: "med-1", Name: "Paracetamol 500mg", CategoryID: "cat-1",
		QuantityInStock: 2, BuyingPrice: d(6), SellingPrice: d(10),
	}))
	// Ledger: compra inicial de 4 antes del período, venta de 2 dentro.
	require.NoError(t, store.StockLogs.Create(&entity.StockLog{
		ID: "log-1", MedicineID: "med-1", ChangeType: entity.StockChangePurchase,
		QuantityChange: 4, Date: periodStart.AddDate(0, -1, 0),
	}))
	require.NoError(t, store.StockLogs.Create(&entity.StockLog{
		ID: "log-2", MedicineID: "med-1", ChangeType: entity.StockChangeSale,
		QuantityChange: -2, Date: inPeriod,
	}))
	require.NoError(t, store.Sales.Create(&entity.Sale{
		ID: "sale-1", CustomerID: "cust-1", TotalAmount: d(20), SaleDate: inPeriod,
	}))
	require.NoError(t, store.Sales.CreateItem(&entity.SaleItem{
		ID: "item-1", SaleID: "sale-1", MedicineID: "med-1",
		Quantity: 2, UnitPrice: d(10), Subtotal: d(20),
	}))

	uc := reports.NewGenerateUseCase(store.Reports, store.Sales, store.StockLogs,
		store.Medicines, store.Categories)
	return uc, store
}

func TestGenerate_CalculaFilaYTotales(t *testing.T) {
	uc, _ := newReportFixture(t)

	resp, err := uc.Generate(dto.GenerateReportRequest{
		StartDate: periodStart,
		EndDate:   periodEnd,
	}, "user-1")
	require.NoError(t, err)

	require.Len(t, resp.ByMedicine, 1)
	row := resp.ByMedicine[0]
	assert.True(t, row.SoldRevenue.Equal(d(20)), "ingreso: 2 x 10")
	// El costo se valora contra el stock ACTUAL: 6 x 2 = 12
	assert.True(t, row.TotalBuyingCost.Equal(d(12)))
	assert.True(t, row.Profit.Equal(d(8)))
	assert.True(t, row.ProfitMargin.Equal(d(40)), "margen: 8/20*100")
	assert.Equal(t, entity.RowStatusProfit, row.Status)
	assert.Equal(t, entity.PerformanceGood, row.Performance, "margen 40 cae en el tier good")

	// Apertura/cierre derivados del ledger: abrió con 4, no compró, vendió 2
	assert.Equal(t, int64(4), row.OpeningStock)
	assert.Equal(t, int64(0), row.PurchasedQty)
	assert.Equal(t, int64(2), row.ClosingStock)

	assert.True(t, resp.Totals.TotalRevenue.Equal(d(20)))
	assert.True(t, resp.Totals.GrossProfit.Equal(d(8)))
	assert.Equal(t, 1, resp.Totals.ProfitableCount)
	assert.Equal(t, int64(2), resp.Totals.TotalSoldQty)
}

func TestGenerate_PersisteSnapshotInmutable(t *testing.T) {
	uc, store := newReportFixture(t)

	resp, err := uc.Generate(dto.GenerateReportRequest{
		StartDate: periodStart, EndDate: periodEnd,
	}, "user-1")
	require.NoError(t, err)

	saved, err := store.Reports.GetByID(resp.ID)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "user-1", saved.GeneratedBy)
	assert.Equal(t, "custom", saved.Type, "sin tipo explícito el reporte es custom")

	// Regenerar el mismo rango crea un snapshot nuevo, no pisa el anterior
	resp2, err := uc.Generate(dto.GenerateReportRequest{
		StartDate: periodStart, EndDate: periodEnd,
	}, "user-1")
	require.NoError(t, err)
	assert.NotEqual(t, resp.ID, resp2.ID)
	list, _ := store.Reports.List(0, 0)
	assert.Len(t, list, 2)
}

func TestGenerate_FinDeDiaIncluyeVentasDeLaFechaFinal(t *testing.T) {
	uc, store := newReportFixture(t)
	// Venta a las 18:00 del último día del rango
	lastDaySale := time.Date(2025, 6, 30, 18, 0, 0, 0, time.UTC)
	require.NoError(t, store.Sales.Create(&entity.Sale{
		ID: "sale-2", CustomerID: "cust-1", TotalAmount: d(10), SaleDate: lastDaySale,
	}))
	require.NoError(t, store.Sales.CreateItem(&entity.SaleItem{
		ID: "item-2", SaleID: "sale-2", MedicineID: "med-1",
		Quantity: 1, UnitPrice: d(10), Subtotal: d(10),
	}))

	resp, err := uc.Generate(dto.GenerateReportRequest{
		StartDate: periodStart, EndDate: periodEnd,
	}, "u")
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Totals.TotalSoldQty,
		"la fecha final se extiende al fin del día")
}

func TestGenerate_SinVentasCeroExcluyeMedicamentosSinMovimiento(t *testing.T) {
	uc, store := newReportFixture(t)
	require.NoError(t, store.Medicines.Create(&entity.Medicine{
		ID: "med-idle", Name: "Omeprazol 20mg", QuantityInStock: 50,
		BuyingPrice: d(3), SellingPrice: d(7),
	}))

	resp, err := uc.Generate(dto.GenerateReportRequest{
		StartDate: periodStart, EndDate: periodEnd,
	}, "u")
	require.NoError(t, err)
	require.Len(t, resp.ByMedicine, 1)
	assert.Equal(t, "med-1", resp.ByMedicine[0].MedicineID)
}

func TestGenerate_ConVentasCeroIncluyeTodoElCatalogo(t *testing.T) {
	uc, store := newReportFixture(t)
	require.NoError(t, store.Medicines.Create(&entity.Medicine{
		ID: "med-idle", Name: "Omeprazol 20mg", QuantityInStock: 50,
		BuyingPrice: d(3), SellingPrice: d(7),
	}))

	resp, err := uc.Generate(dto.GenerateReportRequest{
		StartDate: periodStart, EndDate: periodEnd, IncludeZeroSales: true,
	}, "u")
	require.NoError(t, err)
	require.Len(t, resp.ByMedicine, 2)

	// El medicamento sin ventas carga su costo de stock como pérdida
	var idle *entity.MedicineReportRow
	for i := range resp.ByMedicine {
		if resp.ByMedicine[i].MedicineID == "med-idle" {
			idle = &resp.ByMedicine[i]
		}
	}
	require.NotNil(t, idle)
	assert.True(t, idle.SoldRevenue.IsZero())
	assert.True(t, idle.TotalBuyingCost.Equal(d(150)))
	assert.Equal(t, entity.RowStatusLoss, idle.Status)
	assert.Equal(t, 1, resp.Totals.LossCount)
}

func TestGenerate_AgrupaPorCategoriaConFallback(t *testing.T) {
	uc, store := newReportFixture(t)
	// Medicamento sin categoría con una venta en el período
	require.NoError(t, store.Medicines.Create(&entity.Medicine{
		ID: "med-2", Name: "Suero Oral", QuantityInStock: 1,
		BuyingPrice: d(1), SellingPrice: d(4),
	}))
	require.NoError(t, store.Sales.Create(&entity.Sale{
		ID: "sale-3", CustomerID: "cust-1", TotalAmount: d(4), SaleDate: inPeriod,
	}))
	require.NoError(t, store.Sales.CreateItem(&entity.SaleItem{
		ID: "item-3", SaleID: "sale-3", MedicineID: "med-2",
		Quantity: 1, UnitPrice: d(4), Subtotal: d(4),
	}))

	resp, err := uc.Generate(dto.GenerateReportRequest{
		StartDate: periodStart, EndDate: periodEnd,
	}, "u")
	require.NoError(t, err)
	require.Len(t, resp.ByCategory, 2)

	byID := map[string]entity.CategoryReportRow{}
	for _, c := range resp.ByCategory {
		byID[c.CategoryID] = c
	}
	assert.Equal(t, "Analgésicos", byID["cat-1"].Name)
	assert.Equal(t, "Sin categoría", byID["uncategorized"].Name)
	assert.True(t, byID["uncategorized"].SoldRevenue.Equal(d(4)))
}

func TestGenerate_ResumenEjecutivo(t *testing.T) {
	uc, store := newReportFixture(t)
	require.NoError(t, store.Medicines.Create(&entity.Medicine{
		ID: "med-idle", Name: "Omeprazol 20mg", QuantityInStock: 50,
		BuyingPrice: d(3), SellingPrice: d(7),
	}))

	resp, err := uc.Generate(dto.GenerateReportRequest{
		StartDate: periodStart, EndDate: periodEnd, IncludeZeroSales: true,
	}, "u")
	require.NoError(t, err)

	sum := resp.ExecutiveSummary
	require.Len(t, sum.TopPerformers, 1)
	assert.Equal(t, "med-1", sum.TopPerformers[0].MedicineID)
	require.Len(t, sum.AreasOfConcern, 1)
	assert.Equal(t, "med-idle", sum.AreasOfConcern[0].MedicineID)
	assert.NotEmpty(t, sum.KeyInsights)
	assert.NotEmpty(t, sum.OverallPerformance)
}

func TestGenerate_ValidaRango(t *testing.T) {
	uc, _ := newReportFixture(t)

	_, err := uc.Generate(dto.GenerateReportRequest{EndDate: periodEnd}, "u")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Generate(dto.GenerateReportRequest{
		StartDate: periodEnd, EndDate: periodStart,
	}, "u")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetByID_NoEncontrado(t *testing.T) {
	uc, _ := newReportFixture(t)
	_, err := uc.GetByID("ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
