// Package report contiene los cálculos puros de rentabilidad del reporte.
package report

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Margin devuelve profit/revenue*100; cero si no hubo ingresos.
func Margin(profit, revenue decimal.Decimal) decimal.Decimal {
	if !revenue.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}
	return profit.Div(revenue).Mul(hundred)
}

// RowStatus clasifica una fila según el signo de la utilidad.
func RowStatus(profit decimal.Decimal) string {
	switch {
	case profit.GreaterThan(decimal.Zero):
		return entity.RowStatusProfit
	case profit.LessThan(decimal.Zero):
		return entity.RowStatusLoss
	default:
		return entity.RowStatusBreakEven
	}
}

// PerformanceTier clasifica el margen de una fila.
// >50 excellent, >25 good, <0 poor, resto average.
func PerformanceTier(margin decimal.Decimal) string {
	switch {
	case margin.GreaterThan(decimal.NewFromInt(50)):
		return entity.PerformanceExcellent
	case margin.GreaterThan(decimal.NewFromInt(25)):
		return entity.PerformanceGood
	case margin.LessThan(decimal.Zero):
		return entity.PerformancePoor
	default:
		return entity.PerformanceAverage
	}
}

// OverallPerformance etiqueta el período completo según el margen bruto.
func OverallPerformance(grossMargin decimal.Decimal) string {
	switch {
	case grossMargin.GreaterThanOrEqual(decimal.NewFromInt(50)):
		return "Excellent"
	case grossMargin.GreaterThanOrEqual(decimal.NewFromInt(25)):
		return "Good"
	case grossMargin.GreaterThanOrEqual(decimal.Zero):
		return "Fair"
	default:
		return "Poor"
	}
}
