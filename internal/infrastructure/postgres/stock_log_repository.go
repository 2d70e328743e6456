package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

var _ repository.StockLogRepository = (*StockLogRepo)(nil)

// StockLogRepo ledger de inventario sobre PostgreSQL. Solo INSERT y lecturas:
// el historial nunca se edita.
type StockLogRepo struct {
	q Querier
}

// NewStockLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLogRepository(q Querier) *StockLogRepo {
	return &StockLogRepo{q: q}
}

// Create agrega una entrada al ledger.
func (r *StockLogRepo) Create(log *entity.StockLog) error {
	query := `
		INSERT INTO stock_logs (id, medicine_id, change_type, quantity_change, user_id, date)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		log.ID, log.MedicineID, log.ChangeType, log.QuantityChange, log.UserID, log.Date,
	)
	if err != nil {
		return fmt.Errorf("insert stock log: %w", err)
	}
	return nil
}

// List lista el ledger completo, lo más reciente primero.
func (r *StockLogRepo) List(limit, offset int) ([]*entity.StockLog, error) {
	query := `
		SELECT id, medicine_id, change_type, quantity_change, user_id, date
		FROM stock_logs ORDER BY date DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock logs: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListByMedicine lista el ledger de un medicamento.
func (r *StockLogRepo) ListByMedicine(medicineID string, limit, offset int) ([]*entity.StockLog, error) {
	query := `
		SELECT id, medicine_id, change_type, quantity_change, user_id, date
		FROM stock_logs WHERE medicine_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, medicineID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock logs by medicine: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// SumChangesBefore suma quantity_change por medicamento con fecha anterior a t
// (stock de apertura para reportes).
func (r *StockLogRepo) SumChangesBefore(t time.Time) (map[string]int64, error) {
	query := `
		SELECT medicine_id, COALESCE(SUM(quantity_change), 0)
		FROM stock_logs WHERE date < $1 GROUP BY medicine_id`
	rows, err := r.q.Query(context.Background(), query, t)
	if err != nil {
		return nil, fmt.Errorf("sum stock changes before: %w", err)
	}
	defer rows.Close()
	return scanSums(rows)
}

// SumPurchasesBetween suma las entradas purchase/update_purchase por
// medicamento dentro del rango.
func (r *StockLogRepo) SumPurchasesBetween(from, to time.Time) (map[string]int64, error) {
	query := `
		SELECT medicine_id, COALESCE(SUM(quantity_change), 0)
		FROM stock_logs
		WHERE change_type IN ($1, $2) AND date >= $3 AND date <= $4
		GROUP BY medicine_id`
	rows, err := r.q.Query(context.Background(), query,
		entity.StockChangePurchase, entity.StockChangeUpdatePurchase, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("sum purchases between: %w", err)
	}
	defer rows.Close()
	return scanSums(rows)
}

func (r *StockLogRepo) scanMany(rows pgx.Rows) ([]*entity.StockLog, error) {
	var out []*entity.StockLog
	for rows.Next() {
		var l entity.StockLog
		if err := rows.Scan(&l.ID, &l.MedicineID, &l.ChangeType, &l.QuantityChange, &l.UserID, &l.Date); err != nil {
			return nil, fmt.Errorf("scan stock log: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

func scanSums(rows pgx.Rows) (map[string]int64, error) {
	sums := map[string]int64{}
	for rows.Next() {
		var id string
		var sum int64
		if err := rows.Scan(&id, &sum); err != nil {
			return nil, fmt.Errorf("scan sum: %w", err)
		}
		sums[id] = sum
	}
	return sums, rows.Err()
}
