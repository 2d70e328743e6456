package reports

import (
	"context"

	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

// ReportPDFGenerator renderiza un snapshot de reporte como PDF.
type ReportPDFGenerator interface {
	GenerateReportPDF(ctx context.Context, report *entity.Report) ([]byte, error)
}
