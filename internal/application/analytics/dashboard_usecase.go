// Package analytics contiene el caso de uso del dashboard de la farmacia.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// lowStockThreshold stock por debajo del cual un medicamento se considera bajo.
const lowStockThreshold = 10

// DashboardUseCase genera el resumen de KPIs para el rango pedido.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
// No accede directamente a las tablas de ventas; delega todo en el repositorio.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary construye el DashboardSummaryDTO para el rango indicado
// (daily, weekly, monthly o yearly; monthly por defecto).
//
// Cinco consultas en paralelo: conteos, ventas del rango, gastos de compras,
// estado de stock y totales de deuda.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, rangeName string) (*dto.DashboardSummaryDTO, error) {
	from, to, normalized, err := resolveRange(rangeName, time.Now())
	if err != nil {
		return nil, err
	}

	type countsResult struct {
		medicines int64
		customers int64
		active    int64
		err       error
	}
	type salesResult struct {
		metrics *repository.SalesMetrics
		err     error
	}
	type expensesResult struct {
		total decimal.Decimal
		err   error
	}
	type stockResult struct {
		status *repository.StockStatus
		err    error
	}
	type debtResult struct {
		totals *repository.DebtTotals
		err    error
	}

	countsCh := make(chan countsResult, 1)
	salesCh := make(chan salesResult, 1)
	expensesCh := make(chan expensesResult, 1)
	stockCh := make(chan stockResult, 1)
	debtCh := make(chan debtResult, 1)

	go func() {
		var r countsResult
		r.medicines, r.err = uc.analyticsRepo.CountMedicines(ctx)
		if r.err == nil {
			r.customers, r.err = uc.analyticsRepo.CountCustomers(ctx)
		}
		if r.err == nil {
			r.active, r.err = uc.analyticsRepo.CountActiveCustomers(ctx, from, to)
		}
		countsCh <- r
	}()
	go func() {
		m, err := uc.analyticsRepo.GetSalesMetrics(ctx, from, to)
		salesCh <- salesResult{m, err}
	}()
	go func() {
		e, err := uc.analyticsRepo.GetPurchaseExpenses(ctx, from, to)
		expensesCh <- expensesResult{e, err}
	}()
	go func() {
		s, err := uc.analyticsRepo.GetStockStatus(ctx, lowStockThreshold)
		stockCh <- stockResult{s, err}
	}()
	go func() {
		d, err := uc.analyticsRepo.GetDebtTotals(ctx)
		debtCh <- debtResult{d, err}
	}()

	counts := <-countsCh
	sales := <-salesCh
	expenses := <-expensesCh
	stock := <-stockCh
	debts := <-debtCh

	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: conteos: %w", counts.err)
	}
	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: métricas de ventas: %w", sales.err)
	}
	if expenses.err != nil {
		return nil, fmt.Errorf("dashboard: gastos de compras: %w", expenses.err)
	}
	if stock.err != nil {
		return nil, fmt.Errorf("dashboard: estado de stock: %w", stock.err)
	}
	if debts.err != nil {
		return nil, fmt.Errorf("dashboard: deudas: %w", debts.err)
	}

	lowStock := make([]dto.MedicineResponse, 0, len(stock.status.LowStock))
	for _, m := range stock.status.LowStock {
		lowStock = append(lowStock, dto.MedicineFromEntity(m))
	}

	netProfit := sales.metrics.GrossProfit.Sub(expenses.total)

	return &dto.DashboardSummaryDTO{
		MedicineCount:   counts.medicines,
		CustomerCount:   counts.customers,
		TotalSales:      sales.metrics.SaleCount,
		CashSales:       sales.metrics.CashSales,
		CreditSales:     sales.metrics.CreditSales,
		TotalRevenue:    sales.metrics.TotalRevenue.Round(2),
		TotalProfit:     sales.metrics.GrossProfit.Round(2),
		TotalExpenses:   expenses.total.Round(2),
		NetProfit:       netProfit.Round(2),
		LowStockCount:   stock.status.LowStockCount,
		OutOfStockCount: stock.status.OutOfStockCount,
		InStockCount:    stock.status.InStockCount,
		LowStock:        lowStock,
		TotalDebt:       debts.totals.TotalOutstanding.Round(2),
		DebtPaid:        debts.totals.TotalPaid.Round(2),
		DebtPending:     debts.totals.PendingBalance.Round(2),
		DebtOverdue:     debts.totals.OverdueBalance.Round(2),
		ActiveCustomers: counts.active,
		Range:           normalized,
	}, nil
}

// resolveRange traduce el nombre del rango a [from, to] sobre el reloj dado.
func resolveRange(name string, now time.Time) (from, to time.Time, normalized string, err error) {
	to = now
	switch name {
	case "", "monthly":
		normalized = "monthly"
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case "daily":
		normalized = "daily"
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case "weekly":
		normalized = "weekly"
		from = now.AddDate(0, 0, -7)
	case "yearly":
		normalized = "yearly"
		from = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	default:
		err = fmt.Errorf("%w: rango desconocido %q", domain.ErrInvalidInput, name)
	}
	return from, to, normalized, err
}
