package dto

import (
	"time"

	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

// GenerateReportRequest body para POST /api/reports.
type GenerateReportRequest struct {
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	Type             string    `json:"type,omitempty"` // daily | weekly | monthly | custom
	IncludeZeroSales bool      `json:"include_zero_sales,omitempty"`
}

// ReportResponse snapshot completo. Las estructuras internas son las del
// dominio: el snapshot se sirve tal cual se persistió.
type ReportResponse struct {
	ID               string                     `json:"id"`
	Title            string                     `json:"title"`
	Type             string                     `json:"type"`
	PeriodStart      time.Time                  `json:"period_start"`
	PeriodEnd        time.Time                  `json:"period_end"`
	GeneratedAt      time.Time                  `json:"generated_at"`
	GeneratedBy      string                     `json:"generated_by,omitempty"`
	Totals           entity.ReportTotals        `json:"totals"`
	ByMedicine       []entity.MedicineReportRow `json:"by_medicine"`
	ByCategory       []entity.CategoryReportRow `json:"by_category"`
	ExecutiveSummary entity.ExecutiveSummary    `json:"executive_summary"`
	IncludeZeroSales bool                       `json:"include_zero_sales"`
}

// ReportListItem resumen para el listado de reportes (sin filas).
type ReportListItem struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Type        string              `json:"type"`
	PeriodStart time.Time           `json:"period_start"`
	PeriodEnd   time.Time           `json:"period_end"`
	GeneratedAt time.Time           `json:"generated_at"`
	GeneratedBy string              `json:"generated_by,omitempty"`
	Totals      entity.ReportTotals `json:"totals"`
}
