package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// lowStockListLimit máximo de medicamentos con stock bajo devueltos al dashboard.
const lowStockListLimit = 20

// AnalyticsRepo consultas read-only de agregados para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// CountMedicines cuenta los medicamentos del catálogo.
func (r *AnalyticsRepo) CountMedicines(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM medicines`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count medicines: %w", err)
	}
	return n, nil
}

// CountCustomers cuenta los clientes registrados.
func (r *AnalyticsRepo) CountCustomers(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}

// GetStockStatus clasifica el inventario según el umbral de stock bajo y
// devuelve los medicamentos con stock bajo (hasta lowStockListLimit).
func (r *AnalyticsRepo) GetStockStatus(ctx context.Context, lowThreshold int64) (*repository.StockStatus, error) {
	query := `
		SELECT COUNT(*) FILTER (WHERE quantity_in_stock = 0),
		       COUNT(*) FILTER (WHERE quantity_in_stock > 0 AND quantity_in_stock <= $1),
		       COUNT(*) FILTER (WHERE quantity_in_stock > $1)
		FROM medicines`
	var status repository.StockStatus
	err := r.q.QueryRow(ctx, query, lowThreshold).Scan(
		&status.OutOfStockCount, &status.LowStockCount, &status.InStockCount,
	)
	if err != nil {
		return nil, fmt.Errorf("stock status: %w", err)
	}

	listQuery := `
		SELECT ` + medicineColumns + ` FROM medicines
		WHERE quantity_in_stock <= $1
		ORDER BY quantity_in_stock, name LIMIT $2`
	rows, err := r.q.Query(ctx, listQuery, lowThreshold, lowStockListLimit)
	if err != nil {
		return nil, fmt.Errorf("low stock list: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m entity.Medicine
		err := rows.Scan(
			&m.ID, &m.Name, &m.CategoryID, &m.SupplierID, &m.QuantityInStock,
			&m.BuyingPrice, &m.SellingPrice, &m.ExpiryDate, &m.CreatedAt, &m.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan low stock medicine: %w", err)
		}
		status.LowStock = append(status.LowStock, &m)
	}
	return &status, rows.Err()
}

// GetSalesMetrics agrega las ventas del rango. La utilidad bruta se estima
// contra el precio de compra ACTUAL del medicamento.
func (r *AnalyticsRepo) GetSalesMetrics(ctx context.Context, from, to time.Time) (*repository.SalesMetrics, error) {
	headerQuery := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE sale_type = $3),
		       COUNT(*) FILTER (WHERE sale_type = $4),
		       COALESCE(SUM(total_amount), 0)
		FROM sales WHERE sale_date >= $1 AND sale_date <= $2`
	var m repository.SalesMetrics
	err := r.q.QueryRow(ctx, headerQuery, from, to, entity.SaleTypeCash, entity.SaleTypeCredit).Scan(
		&m.SaleCount, &m.CashSales, &m.CreditSales, &m.TotalRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("sales metrics: %w", err)
	}

	profitQuery := `
		SELECT COALESCE(SUM((si.unit_price - med.buying_price) * si.quantity), 0)
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		JOIN medicines med ON med.id = si.medicine_id
		WHERE s.sale_date >= $1 AND s.sale_date <= $2`
	if err := r.q.QueryRow(ctx, profitQuery, from, to).Scan(&m.GrossProfit); err != nil {
		return nil, fmt.Errorf("sales profit: %w", err)
	}
	return &m, nil
}

// GetPurchaseExpenses suma las compras a proveedor del rango.
func (r *AnalyticsRepo) GetPurchaseExpenses(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM purchases WHERE purchase_date >= $1 AND purchase_date <= $2`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("purchase expenses: %w", err)
	}
	return total, nil
}

// GetDebtTotals agrega el libro de deudas completo.
func (r *AnalyticsRepo) GetDebtTotals(ctx context.Context) (*repository.DebtTotals, error) {
	query := `
		SELECT COALESCE(SUM(remaining_balance), 0),
		       COALESCE(SUM(amount_paid), 0),
		       COALESCE(SUM(remaining_balance) FILTER (WHERE status IN ($1, $2)), 0),
		       COALESCE(SUM(remaining_balance) FILTER (WHERE status = $3), 0)
		FROM debts`
	var t repository.DebtTotals
	err := r.q.QueryRow(ctx, query,
		entity.DebtStatusPending, entity.DebtStatusPartial, entity.DebtStatusOverdue,
	).Scan(&t.TotalOutstanding, &t.TotalPaid, &t.PendingBalance, &t.OverdueBalance)
	if err != nil {
		return nil, fmt.Errorf("debt totals: %w", err)
	}
	return &t, nil
}

// CountActiveCustomers cuenta los clientes con al menos una venta en el rango.
func (r *AnalyticsRepo) CountActiveCustomers(ctx context.Context, from, to time.Time) (int64, error) {
	query := `
		SELECT COUNT(DISTINCT customer_id)
		FROM sales WHERE sale_date >= $1 AND sale_date <= $2`
	var n int64
	if err := r.q.QueryRow(ctx, query, from, to).Scan(&n); err != nil {
		return 0, fmt.Errorf("count active customers: %w", err)
	}
	return n, nil
}
