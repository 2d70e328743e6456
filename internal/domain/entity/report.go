package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados y tiers de una fila del reporte.
const (
	RowStatusProfit    = "profit"
	RowStatusLoss      = "loss"
	RowStatusBreakEven = "break_even"

	PerformanceExcellent = "excellent"
	PerformanceGood      = "good"
	PerformanceAverage   = "average"
	PerformancePoor      = "poor"
)

// Report es un snapshot inmutable de rentabilidad para un período.
// Se crea una vez por generación y nunca se recalcula en sitio.
type Report struct {
	ID               string
	Title            string
	Type             string // daily | weekly | monthly | custom
	PeriodStart      time.Time
	PeriodEnd        time.Time
	GeneratedAt      time.Time
	GeneratedBy      string
	Totals           ReportTotals
	ByMedicine       []MedicineReportRow
	ByCategory       []CategoryReportRow
	ExecutiveSummary ExecutiveSummary
	IncludeZeroSales bool
}

// ReportTotals agregados globales del período.
type ReportTotals struct {
	TotalSoldQty      int64           `json:"total_sold_qty"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalBuyingCost   decimal.Decimal `json:"total_buying_cost"`
	TotalPurchasedQty int64           `json:"total_purchased_qty"`
	GrossProfit       decimal.Decimal `json:"gross_profit"`
	GrossMargin       decimal.Decimal `json:"gross_margin"` // porcentaje
	ProfitableCount   int             `json:"profitable_count"`
	LossCount         int             `json:"loss_count"`
	BreakEvenCount    int             `json:"break_even_count"`
}

// MedicineReportRow es la rentabilidad de un medicamento en el período.
// TotalBuyingCost valora el stock ACTUAL, no lo vendido: mide el capital
// inmovilizado que respalda el ingreso. OpeningStock/ClosingStock son
// informativos, derivados del ledger.
type MedicineReportRow struct {
	MedicineID      string          `json:"medicine_id"`
	Name            string          `json:"name"`
	CategoryID      string          `json:"category_id"`
	OpeningStock    int64           `json:"opening_stock"`
	PurchasedQty    int64           `json:"purchased_qty"`
	SoldQty         int64           `json:"sold_qty"`
	SoldRevenue     decimal.Decimal `json:"sold_revenue"`
	TotalBuyingCost decimal.Decimal `json:"total_buying_cost"`
	Profit          decimal.Decimal `json:"profit"`
	ProfitMargin    decimal.Decimal `json:"profit_margin"`
	ClosingStock    int64           `json:"closing_stock"`
	Status          string          `json:"status"`      // profit | loss | break_even
	Performance     string          `json:"performance"` // excellent | good | average | poor
}

// CategoryReportRow agrega las filas de medicamentos por categoría.
type CategoryReportRow struct {
	CategoryID      string          `json:"category_id"`
	Name            string          `json:"name"`
	SoldQty         int64           `json:"sold_qty"`
	SoldRevenue     decimal.Decimal `json:"sold_revenue"`
	TotalBuyingCost decimal.Decimal `json:"total_buying_cost"`
	Profit          decimal.Decimal `json:"profit"`
	ProfitMargin    decimal.Decimal `json:"profit_margin"`
}

// ExecutiveSummary resumen cualitativo del período.
type ExecutiveSummary struct {
	TopPerformers      []MedicineReportRow `json:"top_performers"`   // top 5 por utilidad
	AreasOfConcern     []MedicineReportRow `json:"areas_of_concern"` // top 5 pérdidas por magnitud
	KeyInsights        []string            `json:"key_insights"`
	OverallPerformance string              `json:"overall_performance"` // Excellent | Good | Fair | Poor
}
