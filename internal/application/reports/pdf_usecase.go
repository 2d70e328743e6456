package reports

import (
	"context"
	"fmt"

	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// PDFUseCase genera la versión descargable (PDF) de un reporte ya persistido.
type PDFUseCase struct {
	reportRepo repository.ReportRepository
	generator  ReportPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(reportRepo repository.ReportRepository, generator ReportPDFGenerator) *PDFUseCase {
	return &PDFUseCase{reportRepo: reportRepo, generator: generator}
}

// DownloadReportPDF carga el snapshot y lo renderiza. El PDF siempre sale del
// snapshot guardado, nunca se recalcula.
func (uc *PDFUseCase) DownloadReportPDF(ctx context.Context, reportID string) (pdfBytes []byte, filename string, err error) {
	rep, err := uc.reportRepo.GetByID(reportID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener reporte: %w", err)
	}
	if rep == nil {
		return nil, "", fmt.Errorf("%w: reporte %s", domain.ErrNotFound, reportID)
	}

	pdfBytes, err = uc.generator.GenerateReportPDF(ctx, rep)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("reporte_%s_%s.pdf",
		rep.PeriodStart.Format("20060102"), rep.PeriodEnd.Format("20060102"))
	return pdfBytes, filename, nil
}
