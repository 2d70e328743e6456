package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard.
// KPIs del rango pedido (daily/weekly/monthly/yearly) más la foto de stock y
// deudas al momento de la consulta.
type DashboardSummaryDTO struct {
	MedicineCount int64 `json:"medicine_count"`
	CustomerCount int64 `json:"customer_count"`

	// Ventas del rango
	TotalSales   int64           `json:"total_sales"`
	CashSales    int64           `json:"cash_sales"`
	CreditSales  int64           `json:"credit_sales"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
	// NetProfit = TotalProfit - TotalExpenses (compras del rango)
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetProfit     decimal.Decimal `json:"net_profit"`

	// Foto de stock
	LowStockCount   int64              `json:"low_stock_count"`
	OutOfStockCount int64              `json:"out_of_stock_count"`
	InStockCount    int64              `json:"in_stock_count"`
	LowStock        []MedicineResponse `json:"low_stock"`

	// Deudas
	TotalDebt   decimal.Decimal `json:"total_debt"`
	DebtPaid    decimal.Decimal `json:"debt_paid"`
	DebtPending decimal.Decimal `json:"debt_pending"`
	DebtOverdue decimal.Decimal `json:"debt_overdue"`

	ActiveCustomers int64  `json:"active_customers"`
	Range           string `json:"range"`
}
