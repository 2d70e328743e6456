// Package pdf implementa la versión imprimible del reporte de rentabilidad.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + período  │  Generado el + desempeño global │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Ingresos / Costo / Utilidad / Margen               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Medicamento | Vendido | Ingreso | Costo | Utilidad   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN EJECUTIVO: top rentables, pérdidas, observaciones   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appreports "github.com/tu-usuario/farmacia-pro/internal/application/reports"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 102, Blue: 84}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLoss    = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var _ appreports.ReportPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa reports.ReportPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateReportPDF genera el PDF del snapshot y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateReportPDF(_ context.Context, report *entity.Report) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(report.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalsRow(report.Totals))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(report.ByMedicine) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range summaryRows(report.ExecutiveSummary) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + período (izq), fecha de generación + desempeño (der).
func headerRow(report *entity.Report) core.Row {
	periodo := fmt.Sprintf("%s — %s",
		report.PeriodStart.Format("02/01/2006"), report.PeriodEnd.Format("02/01/2006"))

	return row.New(18).Add(
		col.New(7).Add(
			text.New("REPORTE DE RENTABILIDAD", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Período: "+periodo, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			}),
			text.New("Desempeño: "+report.ExecutiveSummary.OverallPerformance, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 8, Color: colorPrimary,
			}),
		),
	)
}

// totalsRow: bloque de agregados del período.
func totalsRow(t entity.ReportTotals) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
		)
	}
	return row.New(12).Add(
		cell("INGRESOS", "$"+t.TotalRevenue.StringFixed(2)),
		cell("COSTO DE INVENTARIO", "$"+t.TotalBuyingCost.StringFixed(2)),
		cell("UTILIDAD BRUTA", "$"+t.GrossProfit.StringFixed(2)),
		cell("MARGEN", t.GrossMargin.StringFixed(2)+"%"),
	)
}

// tableHeaderRow: cabecera de la tabla por medicamento.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Medicamento", 4, align.Left),
		h("Vendido", 1, align.Center),
		h("Ingreso", 2, align.Right),
		h("Costo", 2, align.Right),
		h("Utilidad", 2, align.Right),
		h("Margen", 1, align.Right),
	)
}

// tableRows: una fila por medicamento; las pérdidas van en rojo.
func tableRows(rows []entity.MedicineReportRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		profitColor := colorPrimary
		if r.Status == entity.RowStatusLoss {
			profitColor = colorLoss
		}
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(r.Name, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", r.SoldQty), props.Text{
				Size: 8, Align: align.Center, Top: 1,
			})),
			col.New(2).Add(text.New("$"+r.SoldRevenue.StringFixed(2), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New("$"+r.TotalBuyingCost.StringFixed(2), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New("$"+r.Profit.StringFixed(2), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1, Color: profitColor,
			})),
			col.New(1).Add(text.New(r.ProfitMargin.StringFixed(1)+"%", props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

// summaryRows: resumen ejecutivo al pie del reporte.
func summaryRows(s entity.ExecutiveSummary) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("RESUMEN EJECUTIVO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}

	if len(s.TopPerformers) > 0 {
		rows = append(rows, labelRow("Más rentables:"))
		for _, p := range s.TopPerformers {
			rows = append(rows, itemRow(fmt.Sprintf("%s — utilidad $%s (%s%%)",
				p.Name, p.Profit.StringFixed(2), p.ProfitMargin.StringFixed(1)), colorGray))
		}
	}
	if len(s.AreasOfConcern) > 0 {
		rows = append(rows, labelRow("Requieren atención:"))
		for _, p := range s.AreasOfConcern {
			rows = append(rows, itemRow(fmt.Sprintf("%s — pérdida $%s",
				p.Name, p.Profit.Abs().StringFixed(2)), colorLoss))
		}
	}
	if len(s.KeyInsights) > 0 {
		rows = append(rows, labelRow("Observaciones:"))
		for _, insight := range s.KeyInsights {
			rows = append(rows, itemRow(insight, colorGray))
		}
	}
	return rows
}

func labelRow(label string) core.Row {
	return row.New(5).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 7.5, Top: 1}),
	))
}

func itemRow(s string, color *props.Color) core.Row {
	return row.New(4).Add(col.New(12).Add(
		text.New("• "+s, props.Text{Size: 7.5, Color: color, Top: 0.5, Left: 2}),
	))
}
