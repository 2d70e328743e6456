package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

const paymentColumns = `id, customer_id, related_id, type, amount, method, date, user_id, status, reference`

// PaymentRepo ledger de pagos sobre PostgreSQL. Append-only: sin Update ni Delete.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create agrega un pago al ledger. La referencia es única.
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.CustomerID, payment.RelatedID, payment.Type, payment.Amount,
		payment.Method, payment.Date, payment.UserID, payment.Status, payment.Reference,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: referencia %s", domain.ErrDuplicate, payment.Reference)
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID obtiene un pago por ID. Devuelve nil si no existe.
func (r *PaymentRepo) GetByID(id string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	var p entity.Payment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.CustomerID, &p.RelatedID, &p.Type, &p.Amount,
		&p.Method, &p.Date, &p.UserID, &p.Status, &p.Reference,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}

// List lista pagos, el más reciente primero.
func (r *PaymentRepo) List(limit, offset int) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments ORDER BY date DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListByCustomer lista los pagos de un cliente.
func (r *PaymentRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.Payment, error) {
	query := `
		SELECT ` + paymentColumns + ` FROM payments
		WHERE customer_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list payments by customer: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// Stats agrega conteos y montos globales y del día (desde todayStart).
func (r *PaymentRepo) Stats(todayStart time.Time) (*repository.PaymentStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE date >= $1),
		       COALESCE(SUM(amount), 0),
		       COALESCE(SUM(amount) FILTER (WHERE date >= $1), 0)
		FROM payments`
	var stats repository.PaymentStats
	err := r.q.QueryRow(context.Background(), query, todayStart).Scan(
		&stats.TotalPayments, &stats.TodayPayments, &stats.TotalAmount, &stats.TodayAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("payment stats: %w", err)
	}
	return &stats, nil
}

func (r *PaymentRepo) scanMany(rows pgx.Rows) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		err := rows.Scan(
			&p.ID, &p.CustomerID, &p.RelatedID, &p.Type, &p.Amount,
			&p.Method, &p.Date, &p.UserID, &p.Status, &p.Reference,
		)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
