package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo persistencia de snapshots de reporte. Las filas y el resumen se
// guardan como JSONB: el snapshot se sirve tal cual se generó, sin joins.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// Create persiste el snapshot completo.
func (r *ReportRepo) Create(report *entity.Report) error {
	totals, err := json.Marshal(report.Totals)
	if err != nil {
		return fmt.Errorf("marshal report totals: %w", err)
	}
	byMedicine, err := json.Marshal(report.ByMedicine)
	if err != nil {
		return fmt.Errorf("marshal report medicines: %w", err)
	}
	byCategory, err := json.Marshal(report.ByCategory)
	if err != nil {
		return fmt.Errorf("marshal report categories: %w", err)
	}
	summary, err := json.Marshal(report.ExecutiveSummary)
	if err != nil {
		return fmt.Errorf("marshal report summary: %w", err)
	}

	query := `
		INSERT INTO reports (id, title, type, period_start, period_end, generated_at, generated_by,
		                     include_zero_sales, totals, by_medicine, by_category, executive_summary)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.q.Exec(context.Background(), query,
		report.ID, report.Title, report.Type, report.PeriodStart, report.PeriodEnd,
		report.GeneratedAt, report.GeneratedBy, report.IncludeZeroSales,
		totals, byMedicine, byCategory, summary,
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// GetByID recupera y deserializa un snapshot. Devuelve nil si no existe.
func (r *ReportRepo) GetByID(id string) (*entity.Report, error) {
	query := `
		SELECT id, title, type, period_start, period_end, generated_at, generated_by,
		       include_zero_sales, totals, by_medicine, by_category, executive_summary
		FROM reports WHERE id = $1`

	var rep entity.Report
	var totals, byMedicine, byCategory, summary []byte
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&rep.ID, &rep.Title, &rep.Type, &rep.PeriodStart, &rep.PeriodEnd,
		&rep.GeneratedAt, &rep.GeneratedBy, &rep.IncludeZeroSales,
		&totals, &byMedicine, &byCategory, &summary,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get report: %w", err)
	}

	if err := json.Unmarshal(totals, &rep.Totals); err != nil {
		return nil, fmt.Errorf("unmarshal report totals: %w", err)
	}
	if err := json.Unmarshal(byMedicine, &rep.ByMedicine); err != nil {
		return nil, fmt.Errorf("unmarshal report medicines: %w", err)
	}
	if err := json.Unmarshal(byCategory, &rep.ByCategory); err != nil {
		return nil, fmt.Errorf("unmarshal report categories: %w", err)
	}
	if err := json.Unmarshal(summary, &rep.ExecutiveSummary); err != nil {
		return nil, fmt.Errorf("unmarshal report summary: %w", err)
	}
	return &rep, nil
}

// List lista snapshots con cabecera y totales, el más reciente primero.
// Las filas por medicamento no se cargan en el listado.
func (r *ReportRepo) List(limit, offset int) ([]*entity.Report, error) {
	query := `
		SELECT id, title, type, period_start, period_end, generated_at, generated_by,
		       include_zero_sales, totals
		FROM reports ORDER BY generated_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []*entity.Report
	for rows.Next() {
		var rep entity.Report
		var totals []byte
		err := rows.Scan(
			&rep.ID, &rep.Title, &rep.Type, &rep.PeriodStart, &rep.PeriodEnd,
			&rep.GeneratedAt, &rep.GeneratedBy, &rep.IncludeZeroSales, &totals,
		)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		if err := json.Unmarshal(totals, &rep.Totals); err != nil {
			return nil, fmt.Errorf("unmarshal report totals: %w", err)
		}
		out = append(out, &rep)
	}
	return out, rows.Err()
}
