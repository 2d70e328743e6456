package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

var _ repository.DebtRepository = (*DebtRepo)(nil)

const debtColumns = `id, customer_id, sale_id, total_owed, amount_paid, remaining_balance, due_date, status, last_payment_date, created_at`

// DebtRepo implementación de DebtRepository sobre PostgreSQL (usable con pool o tx).
type DebtRepo struct {
	q Querier
}

// NewDebtRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDebtRepository(q Querier) *DebtRepo {
	return &DebtRepo{q: q}
}

// Create persiste una deuda nueva. sale_id es único: una venta a crédito
// tiene exactamente una deuda.
func (r *DebtRepo) Create(debt *entity.Debt) error {
	query := `
		INSERT INTO debts (` + debtColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		debt.ID, debt.CustomerID, debt.SaleID, debt.TotalOwed, debt.AmountPaid,
		debt.RemainingBalance, debt.DueDate, debt.Status, debt.LastPaymentDate, debt.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: deuda para venta %s", domain.ErrDuplicate, debt.SaleID)
		}
		return fmt.Errorf("insert debt: %w", err)
	}
	return nil
}

// GetByID obtiene una deuda por ID. Devuelve nil si no existe.
func (r *DebtRepo) GetByID(id string) (*entity.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get debt")
}

// GetForUpdate obtiene la deuda bloqueando la fila durante un abono.
func (r *DebtRepo) GetForUpdate(id string) (*entity.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get debt for update")
}

// GetBySaleID resuelve la deuda 1:1 de una venta a crédito.
func (r *DebtRepo) GetBySaleID(saleID string) (*entity.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE sale_id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, saleID), "get debt by sale")
}

// GetBySaleIDForUpdate igual que GetBySaleID pero con bloqueo de fila.
func (r *DebtRepo) GetBySaleIDForUpdate(saleID string) (*entity.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE sale_id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, saleID), "get debt by sale for update")
}

// Update guarda los campos mutables de la deuda.
func (r *DebtRepo) Update(debt *entity.Debt) error {
	query := `
		UPDATE debts
		SET total_owed = $2, amount_paid = $3, remaining_balance = $4,
		    due_date = $5, status = $6, last_payment_date = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		debt.ID, debt.TotalOwed, debt.AmountPaid, debt.RemainingBalance,
		debt.DueDate, debt.Status, debt.LastPaymentDate,
	)
	if err != nil {
		return fmt.Errorf("update debt: %w", err)
	}
	return nil
}

// List lista deudas, la más reciente primero.
func (r *DebtRepo) List(limit, offset int) ([]*entity.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	defer rows.Close()

	var out []*entity.Debt
	for rows.Next() {
		var d entity.Debt
		err := rows.Scan(
			&d.ID, &d.CustomerID, &d.SaleID, &d.TotalOwed, &d.AmountPaid,
			&d.RemainingBalance, &d.DueDate, &d.Status, &d.LastPaymentDate, &d.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan debt: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

// Delete elimina una deuda. Los pagos asociados quedan en el ledger.
func (r *DebtRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM debts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete debt: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: deuda %s", domain.ErrNotFound, id)
	}
	return nil
}

func (r *DebtRepo) scanOne(row pgx.Row, op string) (*entity.Debt, error) {
	var d entity.Debt
	err := row.Scan(
		&d.ID, &d.CustomerID, &d.SaleID, &d.TotalOwed, &d.AmountPaid,
		&d.RemainingBalance, &d.DueDate, &d.Status, &d.LastPaymentDate, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &d, nil
}
