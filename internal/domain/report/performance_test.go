package report_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/report"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestMargin(t *testing.T) {
	assert.True(t, report.Margin(d(8), d(20)).Equal(d(40)), "8/20 = 40%%")
	assert.True(t, report.Margin(d(5), d(0)).IsZero(), "sin ingresos el margen es 0")
	assert.True(t, report.Margin(d(-3), d(10)).Equal(d(-30)))
}

func TestRowStatus(t *testing.T) {
	assert.Equal(t, entity.RowStatusProfit, report.RowStatus(d(1)))
	assert.Equal(t, entity.RowStatusLoss, report.RowStatus(d(-1)))
	assert.Equal(t, entity.RowStatusBreakEven, report.RowStatus(decimal.Zero))
}

func TestPerformanceTier(t *testing.T) {
	cases := []struct {
		margin float64
		want   string
	}{
		{60, entity.PerformanceExcellent},
		{50, entity.PerformanceGood}, // el umbral excellent es estricto (>50)
		{26, entity.PerformanceGood},
		{25, entity.PerformanceAverage},
		{0, entity.PerformanceAverage},
		{-1, entity.PerformancePoor},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, report.PerformanceTier(d(tc.margin)), "margen %v", tc.margin)
	}
}

func TestOverallPerformance(t *testing.T) {
	assert.Equal(t, "Excellent", report.OverallPerformance(d(50)))
	assert.Equal(t, "Good", report.OverallPerformance(d(30)))
	assert.Equal(t, "Fair", report.OverallPerformance(d(10)))
	assert.Equal(t, "Poor", report.OverallPerformance(d(-5)))
}
