// Package reports genera instantáneas inmutables de rendimiento por medicamento.
package reports

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/report"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

const topListSize = 5

// GenerateUseCase arma el reporte a partir de ventas, compras y catálogo
// y lo persiste como snapshot: regenerar el mismo rango crea un reporte
// nuevo y nunca modifica los anteriores.
type GenerateUseCase struct {
	reportRepo   repository.ReportRepository
	saleRepo     repository.SaleRepository
	stockLogRepo repository.StockLogRepository
	medicineRepo repository.MedicineRepository
	categoryRepo repository.CategoryRepository
}

func NewGenerateUseCase(
	reportRepo repository.ReportRepository,
	saleRepo repository.SaleRepository,
	stockLogRepo repository.StockLogRepository,
	medicineRepo repository.MedicineRepository,
	categoryRepo repository.CategoryRepository,
) *GenerateUseCase {
	return &GenerateUseCase{
		reportRepo:   reportRepo,
		saleRepo:     saleRepo,
		stockLogRepo: stockLogRepo,
		medicineRepo: medicineRepo,
		categoryRepo: categoryRepo,
	}
}

// Generate calcula y persiste un reporte para el rango [start, end].
// La fecha final se extiende al fin del día para incluir las ventas de esa fecha.
func (uc *GenerateUseCase) Generate(req dto.GenerateReportRequest, userID string) (*dto.ReportResponse, error) {
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: start_date y end_date son requeridos", domain.ErrInvalidInput)
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: end_date no puede ser anterior a start_date", domain.ErrInvalidInput)
	}

	start := req.StartDate
	end := endOfDay(req.EndDate)

	reportType := req.Type
	if reportType == "" {
		reportType = "custom"
	}

	sales, err := uc.saleRepo.AggregateItemsByMedicine(start, end)
	if err != nil {
		return nil, fmt.Errorf("agregando ventas del período: %w", err)
	}
	purchased, err := uc.stockLogRepo.SumPurchasesBetween(start, end)
	if err != nil {
		return nil, fmt.Errorf("agregando compras del período: %w", err)
	}
	opening, err := uc.stockLogRepo.SumChangesBefore(start)
	if err != nil {
		return nil, fmt.Errorf("calculando stock de apertura: %w", err)
	}

	medicines, err := uc.medicinesForReport(sales, purchased, req.IncludeZeroSales)
	if err != nil {
		return nil, err
	}

	categoryNames, err := uc.categoryNames()
	if err != nil {
		return nil, err
	}

	rows := make([]entity.MedicineReportRow, 0, len(medicines))
	totals := entity.ReportTotals{
		TotalRevenue:    decimal.Zero,
		TotalBuyingCost: decimal.Zero,
		GrossProfit:     decimal.Zero,
		GrossMargin:     decimal.Zero,
	}
	categories := map[string]*entity.CategoryReportRow{}

	for _, med := range medicines {
		agg := sales[med.ID]
		// El costo se valora contra el stock ACTUAL, no contra lo vendido:
		// mide cuánto capital inmovilizado respalda el ingreso del período.
		buyingCost := med.BuyingPrice.Mul(decimal.NewFromInt(med.QuantityInStock))
		profit := agg.SoldRevenue.Sub(buyingCost)
		margin := report.Margin(profit, agg.SoldRevenue)
		status := report.RowStatus(profit)

		openingStock := opening[med.ID]
		purchasedQty := purchased[med.ID]

		row := entity.MedicineReportRow{
			MedicineID:      med.ID,
			Name:            med.Name,
			CategoryID:      med.CategoryID,
			OpeningStock:    openingStock,
			PurchasedQty:    purchasedQty,
			SoldQty:         agg.SoldQty,
			SoldRevenue:     agg.SoldRevenue,
			TotalBuyingCost: buyingCost,
			Profit:          profit,
			ProfitMargin:    margin,
			ClosingStock:    openingStock + purchasedQty - agg.SoldQty,
			Status:          status,
			Performance:     report.PerformanceTier(margin),
		}
		rows = append(rows, row)

		totals.TotalSoldQty += agg.SoldQty
		totals.TotalPurchasedQty += purchasedQty
		totals.TotalRevenue = totals.TotalRevenue.Add(agg.SoldRevenue)
		totals.TotalBuyingCost = totals.TotalBuyingCost.Add(buyingCost)
		totals.GrossProfit = totals.GrossProfit.Add(profit)
		switch status {
		case entity.RowStatusProfit:
			totals.ProfitableCount++
		case entity.RowStatusLoss:
			totals.LossCount++
		default:
			totals.BreakEvenCount++
		}

		accumulateCategory(categories, categoryNames, med.CategoryID, row)
	}

	totals.GrossMargin = report.Margin(totals.GrossProfit, totals.TotalRevenue)

	sort.Slice(rows, func(i, j int) bool { return rows[i].Profit.GreaterThan(rows[j].Profit) })

	rep := &entity.Report{
		ID:               uuid.New().String(),
		Title:            fmt.Sprintf("Report %s -> %s", start.Format("2006-01-02"), req.EndDate.Format("2006-01-02")),
		Type:             reportType,
		PeriodStart:      start,
		PeriodEnd:        end,
		GeneratedAt:      time.Now(),
		GeneratedBy:      userID,
		Totals:           totals,
		ByMedicine:       rows,
		ByCategory:       flattenCategories(categories),
		ExecutiveSummary: buildSummary(rows, totals),
		IncludeZeroSales: req.IncludeZeroSales,
	}

	if err := uc.reportRepo.Create(rep); err != nil {
		return nil, fmt.Errorf("guardando reporte: %w", err)
	}
	return toReportResponse(rep), nil
}

// GetByID recupera un snapshot ya generado.
func (uc *GenerateUseCase) GetByID(id string) (*dto.ReportResponse, error) {
	rep, err := uc.getEntity(id)
	if err != nil {
		return nil, err
	}
	return toReportResponse(rep), nil
}

// GetEntity expone la entidad cruda, usada por el generador de PDF.
func (uc *GenerateUseCase) GetEntity(id string) (*entity.Report, error) {
	return uc.getEntity(id)
}

// List devuelve el historial de reportes, el más reciente primero.
func (uc *GenerateUseCase) List(page dto.PageRequest) ([]dto.ReportListItem, error) {
	reps, err := uc.reportRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReportListItem, 0, len(reps))
	for _, r := range reps {
		items = append(items, dto.ReportListItem{
			ID:          r.ID,
			Title:       r.Title,
			Type:        r.Type,
			PeriodStart: r.PeriodStart,
			PeriodEnd:   r.PeriodEnd,
			GeneratedAt: r.GeneratedAt,
			GeneratedBy: r.GeneratedBy,
			Totals:      r.Totals,
		})
	}
	return items, nil
}

func (uc *GenerateUseCase) getEntity(id string) (*entity.Report, error) {
	rep, err := uc.reportRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, fmt.Errorf("%w: reporte %s", domain.ErrNotFound, id)
	}
	return rep, nil
}

func (uc *GenerateUseCase) medicinesForReport(
	sales map[string]repository.MedicineSales,
	purchased map[string]int64,
	includeZeroSales bool,
) ([]*entity.Medicine, error) {
	if includeZeroSales {
		meds, err := uc.medicineRepo.ListAll()
		if err != nil {
			return nil, fmt.Errorf("listando catálogo: %w", err)
		}
		return meds, nil
	}
	seen := map[string]struct{}{}
	ids := make([]string, 0, len(sales)+len(purchased))
	for id := range sales {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for id := range purchased {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}
	meds, err := uc.medicineRepo.ListByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("listando medicamentos con movimiento: %w", err)
	}
	return meds, nil
}

func (uc *GenerateUseCase) categoryNames() (map[string]string, error) {
	cats, err := uc.categoryRepo.List()
	if err != nil {
		return nil, fmt.Errorf("listando categorías: %w", err)
	}
	names := make(map[string]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}
	return names, nil
}

func accumulateCategory(
	acc map[string]*entity.CategoryReportRow,
	names map[string]string,
	categoryID string,
	row entity.MedicineReportRow,
) {
	key := categoryID
	name := names[categoryID]
	if key == "" || name == "" {
		key = "uncategorized"
		name = "Sin categoría"
	}
	cat, ok := acc[key]
	if !ok {
		cat = &entity.CategoryReportRow{
			CategoryID:      key,
			Name:            name,
			SoldRevenue:     decimal.Zero,
			TotalBuyingCost: decimal.Zero,
			Profit:          decimal.Zero,
		}
		acc[key] = cat
	}
	cat.SoldQty += row.SoldQty
	cat.SoldRevenue = cat.SoldRevenue.Add(row.SoldRevenue)
	cat.TotalBuyingCost = cat.TotalBuyingCost.Add(row.TotalBuyingCost)
	cat.Profit = cat.Profit.Add(row.Profit)
}

func flattenCategories(acc map[string]*entity.CategoryReportRow) []entity.CategoryReportRow {
	out := make([]entity.CategoryReportRow, 0, len(acc))
	for _, c := range acc {
		c.ProfitMargin = report.Margin(c.Profit, c.SoldRevenue)
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Profit.GreaterThan(out[j].Profit) })
	return out
}

// buildSummary arma el resumen ejecutivo: top 5 rentables, top 5 pérdidas y
// observaciones del período. Recibe las filas ordenadas por utilidad descendente.
func buildSummary(rows []entity.MedicineReportRow, totals entity.ReportTotals) entity.ExecutiveSummary {
	summary := entity.ExecutiveSummary{
		TopPerformers:      []entity.MedicineReportRow{},
		AreasOfConcern:     []entity.MedicineReportRow{},
		KeyInsights:        []string{},
		OverallPerformance: report.OverallPerformance(totals.GrossMargin),
	}

	for _, r := range rows {
		if r.Status != entity.RowStatusProfit || len(summary.TopPerformers) >= topListSize {
			break
		}
		summary.TopPerformers = append(summary.TopPerformers, r)
	}
	// Las pérdidas más grandes quedan al final del orden descendente.
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].Status != entity.RowStatusLoss || len(summary.AreasOfConcern) >= topListSize {
			break
		}
		summary.AreasOfConcern = append(summary.AreasOfConcern, rows[i])
	}

	if len(rows) > 0 {
		summary.KeyInsights = append(summary.KeyInsights,
			fmt.Sprintf("%d de %d medicamentos fueron rentables en el período", totals.ProfitableCount, len(rows)))
	}
	summary.KeyInsights = append(summary.KeyInsights,
		fmt.Sprintf("Margen bruto del período: %s%%", totals.GrossMargin.StringFixed(2)))
	if totals.LossCount > 0 {
		summary.KeyInsights = append(summary.KeyInsights,
			fmt.Sprintf("%d medicamentos vendieron con pérdida y requieren revisión de precios", totals.LossCount))
	}
	if totals.TotalSoldQty == 0 {
		summary.KeyInsights = append(summary.KeyInsights, "Sin ventas registradas en el período")
	}
	return summary
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}

func toReportResponse(r *entity.Report) *dto.ReportResponse {
	return &dto.ReportResponse{
		ID:               r.ID,
		Title:            r.Title,
		Type:             r.Type,
		PeriodStart:      r.PeriodStart,
		PeriodEnd:        r.PeriodEnd,
		GeneratedAt:      r.GeneratedAt,
		GeneratedBy:      r.GeneratedBy,
		Totals:           r.Totals,
		ByMedicine:       r.ByMedicine,
		ByCategory:       r.ByCategory,
		ExecutiveSummary: r.ExecutiveSummary,
		IncludeZeroSales: r.IncludeZeroSales,
	}
}
