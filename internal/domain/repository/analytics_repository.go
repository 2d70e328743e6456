package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

// SalesMetrics agregados de ventas de un rango.
type SalesMetrics struct {
	SaleCount    int64
	CashSales    int64
	CreditSales  int64
	TotalRevenue decimal.Decimal
	// GrossProfit = Σ (precio_línea - precio_compra_actual) × cantidad.
	GrossProfit decimal.Decimal
}

// StockStatus distribución del inventario según el umbral de stock bajo.
type StockStatus struct {
	LowStockCount   int64
	OutOfStockCount int64
	InStockCount    int64
	LowStock        []*entity.Medicine
}

// DebtTotals agregados del libro de deudas.
type DebtTotals struct {
	TotalOutstanding decimal.Decimal
	TotalPaid        decimal.Decimal
	PendingBalance   decimal.Decimal
	OverdueBalance   decimal.Decimal
}

// AnalyticsRepository consultas read-only para el dashboard.
type AnalyticsRepository interface {
	CountMedicines(ctx context.Context) (int64, error)
	CountCustomers(ctx context.Context) (int64, error)
	GetStockStatus(ctx context.Context, lowThreshold int64) (*StockStatus, error)
	GetSalesMetrics(ctx context.Context, from, to time.Time) (*SalesMetrics, error)
	GetPurchaseExpenses(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	GetDebtTotals(ctx context.Context) (*DebtTotals, error)
	CountActiveCustomers(ctx context.Context, from, to time.Time) (int64, error)
}
