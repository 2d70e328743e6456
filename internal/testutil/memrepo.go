// Package testutil ofrece repositorios en memoria y un TxRunner sin
// transacciones reales para probar los casos de uso sin PostgreSQL.
// Las implementaciones respetan los contratos de los puertos (nil si no
// existe, ErrDuplicate en claves únicas) pero no hay bloqueo de filas:
// los tests son secuenciales.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/farmacia-pro/internal/domain"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pro/internal/domain/repository"
)

// Store agrupa todos los repos en memoria que comparte un test.
type Store struct {
	Medicines  *MemMedicineRepo
	StockLogs  *MemStockLogRepo
	Sales      *MemSaleRepo
	Debts      *MemDebtRepo
	Payments   *MemPaymentRepo
	Customers  *MemCustomerRepo
	Suppliers  *MemSupplierRepo
	Categories *MemCategoryRepo
	Purchases  *MemPurchaseRepo
	Reports    *MemReportRepo
}

// NewStore construye un Store vacío.
func NewStore() *Store {
	return &Store{
		Medicines:  &MemMedicineRepo{byID: map[string]*entity.Medicine{}},
		StockLogs:  &MemStockLogRepo{},
		Sales:      &MemSaleRepo{byID: map[string]*entity.Sale{}},
		Debts:      &MemDebtRepo{byID: map[string]*entity.Debt{}},
		Payments:   &MemPaymentRepo{refs: map[string]bool{}},
		Customers:  &MemCustomerRepo{byID: map[string]*entity.Customer{}},
		Suppliers:  &MemSupplierRepo{byID: map[string]*entity.Supplier{}},
		Categories: &MemCategoryRepo{byID: map[string]*entity.Category{}},
		Purchases:  &MemPurchaseRepo{byID: map[string]*entity.Purchase{}, items: map[string]*entity.PurchaseItem{}},
		Reports:    &MemReportRepo{byID: map[string]*entity.Report{}},
	}
}

// TxRunner implementa los cuatro runners transaccionales invocando fn con los
// repos del Store. Si fn falla no hay rollback: cada test usa un Store nuevo.
type TxRunner struct {
	S *Store
}

func (r *TxRunner) Run(_ context.Context, fn func(
	repository.MedicineRepository, repository.StockLogRepository) error) error {
	return fn(r.S.Medicines, r.S.StockLogs)
}

func (r *TxRunner) RunSale(_ context.Context, fn func(
	repository.MedicineRepository, repository.StockLogRepository,
	repository.SaleRepository, repository.DebtRepository, repository.PaymentRepository) error) error {
	return fn(r.S.Medicines, r.S.StockLogs, r.S.Sales, r.S.Debts, r.S.Payments)
}

func (r *TxRunner) RunPayment(_ context.Context, fn func(
	repository.DebtRepository, repository.SaleRepository, repository.PaymentRepository) error) error {
	return fn(r.S.Debts, r.S.Sales, r.S.Payments)
}

func (r *TxRunner) RunPurchase(_ context.Context, fn func(
	repository.MedicineRepository, repository.StockLogRepository,
	repository.PurchaseRepository) error) error {
	return fn(r.S.Medicines, r.S.StockLogs, r.S.Purchases)
}

// ── Medicines ───────────────────────────────────────────────────────────────

type MemMedicineRepo struct {
	byID map[string]*entity.Medicine
}

func (r *MemMedicineRepo) Create(med *entity.Medicine) error {
	for _, m := range r.byID {
		if m.Name == med.Name {
			return fmt.Errorf("%w: medicamento %s", domain.ErrDuplicate, med.Name)
		}
	}
	cp := *med
	r.byID[med.ID] = &cp
	return nil
}

func (r *MemMedicineRepo) GetByID(id string) (*entity.Medicine, error) {
	m, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *MemMedicineRepo) GetForUpdate(id string) (*entity.Medicine, error) {
	return r.GetByID(id)
}

func (r *MemMedicineRepo) Update(med *entity.Medicine) error {
	existing, ok := r.byID[med.ID]
	if !ok {
		return domain.ErrNotFound
	}
	// El stock no se toca por Update: solo UpdateStock lo muta.
	stock := existing.QuantityInStock
	cp := *med
	cp.QuantityInStock = stock
	r.byID[med.ID] = &cp
	return nil
}

func (r *MemMedicineRepo) UpdateStock(id string, quantity int64) error {
	m, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	m.QuantityInStock = quantity
	return nil
}

func (r *MemMedicineRepo) List(limit, offset int) ([]*entity.Medicine, error) {
	all, _ := r.ListAll()
	return paginate(all, limit, offset), nil
}

func (r *MemMedicineRepo) ListAll() ([]*entity.Medicine, error) {
	out := make([]*entity.Medicine, 0, len(r.byID))
	for _, m := range r.byID {
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemMedicineRepo) ListByIDs(ids []string) ([]*entity.Medicine, error) {
	out := make([]*entity.Medicine, 0, len(ids))
	for _, id := range ids {
		if m, ok := r.byID[id]; ok {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemMedicineRepo) Delete(id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// ── Stock logs ──────────────────────────────────────────────────────────────

type MemStockLogRepo struct {
	Entries []*entity.StockLog
}

func (r *MemStockLogRepo) Create(log *entity.StockLog) error {
	cp := *log
	r.Entries = append(r.Entries, &cp)
	return nil
}

func (r *MemStockLogRepo) List(limit, offset int) ([]*entity.StockLog, error) {
	return paginate(r.Entries, limit, offset), nil
}

func (r *MemStockLogRepo) ListByMedicine(medicineID string, limit, offset int) ([]*entity.StockLog, error) {
	var out []*entity.StockLog
	for _, e := range r.Entries {
		if e.MedicineID == medicineID {
			out = append(out, e)
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *MemStockLogRepo) SumChangesBefore(t time.Time) (map[string]int64, error) {
	out := map[string]int64{}
	for _, e := range r.Entries {
		if e.Date.Before(t) {
			out[e.MedicineID] += e.QuantityChange
		}
	}
	return out, nil
}

func (r *MemStockLogRepo) SumPurchasesBetween(from, to time.Time) (map[string]int64, error) {
	out := map[string]int64{}
	for _, e := range r.Entries {
		if e.ChangeType != entity.StockChangePurchase && e.ChangeType != entity.StockChangeUpdatePurchase {
			continue
		}
		if !e.Date.Before(from) && !e.Date.After(to) {
			out[e.MedicineID] += e.QuantityChange
		}
	}
	return out, nil
}

// ── Sales ───────────────────────────────────────────────────────────────────

type MemSaleRepo struct {
	byID  map[string]*entity.Sale
	Items []*entity.SaleItem
}

func (r *MemSaleRepo) Create(sale *entity.Sale) error {
	cp := *sale
	cp.Items = nil
	r.byID[sale.ID] = &cp
	return nil
}

func (r *MemSaleRepo) CreateItem(item *entity.SaleItem) error {
	cp := *item
	r.Items = append(r.Items, &cp)
	return nil
}

func (r *MemSaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *MemSaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	return r.GetByID(id)
}

func (r *MemSaleRepo) UpdatePaid(id string, amountPaid, balance decimal.Decimal) error {
	s, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.AmountPaid = amountPaid
	s.Balance = balance
	return nil
}

func (r *MemSaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	out := make([]*entity.Sale, 0, len(r.byID))
	for _, s := range r.byID {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SaleDate.After(out[j].SaleDate) })
	return paginate(out, limit, offset), nil
}

func (r *MemSaleRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.Sale, error) {
	all, _ := r.List(0, 0)
	var out []*entity.Sale
	for _, s := range all {
		if s.CustomerID == customerID {
			out = append(out, s)
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *MemSaleRepo) GetItems(saleID string) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for _, it := range r.Items {
		if it.SaleID == saleID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MemSaleRepo) AggregateItemsByMedicine(from, to time.Time) (map[string]repository.MedicineSales, error) {
	out := map[string]repository.MedicineSales{}
	for _, it := range r.Items {
		sale, ok := r.byID[it.SaleID]
		if !ok {
			continue
		}
		if sale.SaleDate.Before(from) || sale.SaleDate.After(to) {
			continue
		}
		agg := out[it.MedicineID]
		agg.SoldQty += it.Quantity
		agg.SoldRevenue = agg.SoldRevenue.Add(it.Subtotal)
		out[it.MedicineID] = agg
	}
	return out, nil
}

// ── Debts ───────────────────────────────────────────────────────────────────

type MemDebtRepo struct {
	byID map[string]*entity.Debt
}

func (r *MemDebtRepo) Create(debt *entity.Debt) error {
	for _, d := range r.byID {
		if d.SaleID == debt.SaleID {
			return fmt.Errorf("%w: deuda para venta %s", domain.ErrDuplicate, debt.SaleID)
		}
	}
	cp := *debt
	r.byID[debt.ID] = &cp
	return nil
}

func (r *MemDebtRepo) GetByID(id string) (*entity.Debt, error) {
	d, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *MemDebtRepo) GetForUpdate(id string) (*entity.Debt, error) {
	return r.GetByID(id)
}

func (r *MemDebtRepo) GetBySaleID(saleID string) (*entity.Debt, error) {
	for _, d := range r.byID {
		if d.SaleID == saleID {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemDebtRepo) GetBySaleIDForUpdate(saleID string) (*entity.Debt, error) {
	return r.GetBySaleID(saleID)
}

func (r *MemDebtRepo) Update(debt *entity.Debt) error {
	if _, ok := r.byID[debt.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *debt
	r.byID[debt.ID] = &cp
	return nil
}

func (r *MemDebtRepo) List(limit, offset int) ([]*entity.Debt, error) {
	out := make([]*entity.Debt, 0, len(r.byID))
	for _, d := range r.byID {
		cp := *d
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return paginate(out, limit, offset), nil
}

func (r *MemDebtRepo) Delete(id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// ── Payments ────────────────────────────────────────────────────────────────

type MemPaymentRepo struct {
	Entries []*entity.Payment
	refs    map[string]bool
}

func (r *MemPaymentRepo) Create(payment *entity.Payment) error {
	if r.refs[payment.Reference] {
		return fmt.Errorf("%w: referencia %s", domain.ErrDuplicate, payment.Reference)
	}
	r.refs[payment.Reference] = true
	cp := *payment
	r.Entries = append(r.Entries, &cp)
	return nil
}

func (r *MemPaymentRepo) GetByID(id string) (*entity.Payment, error) {
	for _, p := range r.Entries {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemPaymentRepo) List(limit, offset int) ([]*entity.Payment, error) {
	return paginate(r.Entries, limit, offset), nil
}

func (r *MemPaymentRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.Entries {
		if p.CustomerID == customerID {
			out = append(out, p)
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *MemPaymentRepo) Stats(todayStart time.Time) (*repository.PaymentStats, error) {
	stats := &repository.PaymentStats{TotalAmount: decimal.Zero, TodayAmount: decimal.Zero}
	for _, p := range r.Entries {
		stats.TotalPayments++
		stats.TotalAmount = stats.TotalAmount.Add(p.Amount)
		if !p.Date.Before(todayStart) {
			stats.TodayPayments++
			stats.TodayAmount = stats.TodayAmount.Add(p.Amount)
		}
	}
	return stats, nil
}

// ── Customers / Suppliers / Categories ──────────────────────────────────────

type MemCustomerRepo struct {
	byID map[string]*entity.Customer
}

func (r *MemCustomerRepo) Create(customer *entity.Customer) error {
	cp := *customer
	r.byID[customer.ID] = &cp
	return nil
}

func (r *MemCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *MemCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	out := make([]*entity.Customer, 0, len(r.byID))
	for _, c := range r.byID {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

func (r *MemCustomerRepo) Update(customer *entity.Customer) error {
	if _, ok := r.byID[customer.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *customer
	r.byID[customer.ID] = &cp
	return nil
}

func (r *MemCustomerRepo) Delete(id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type MemSupplierRepo struct {
	byID map[string]*entity.Supplier
}

func (r *MemSupplierRepo) Create(supplier *entity.Supplier) error {
	cp := *supplier
	r.byID[supplier.ID] = &cp
	return nil
}

func (r *MemSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *MemSupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	out := make([]*entity.Supplier, 0, len(r.byID))
	for _, s := range r.byID {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

func (r *MemSupplierRepo) Update(supplier *entity.Supplier) error {
	if _, ok := r.byID[supplier.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *supplier
	r.byID[supplier.ID] = &cp
	return nil
}

func (r *MemSupplierRepo) Delete(id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type MemCategoryRepo struct {
	byID map[string]*entity.Category
}

func (r *MemCategoryRepo) Create(category *entity.Category) error {
	for _, c := range r.byID {
		if c.Name == category.Name {
			return fmt.Errorf("%w: categoría %s", domain.ErrDuplicate, category.Name)
		}
	}
	cp := *category
	r.byID[category.ID] = &cp
	return nil
}

func (r *MemCategoryRepo) GetByID(id string) (*entity.Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *MemCategoryRepo) List() ([]*entity.Category, error) {
	out := make([]*entity.Category, 0, len(r.byID))
	for _, c := range r.byID {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemCategoryRepo) Update(category *entity.Category) error {
	if _, ok := r.byID[category.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *category
	r.byID[category.ID] = &cp
	return nil
}

func (r *MemCategoryRepo) Delete(id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// ── Purchases ───────────────────────────────────────────────────────────────

type MemPurchaseRepo struct {
	byID  map[string]*entity.Purchase
	items map[string]*entity.PurchaseItem
}

func (r *MemPurchaseRepo) Create(purchase *entity.Purchase) error {
	cp := *purchase
	r.byID[purchase.ID] = &cp
	return nil
}

func (r *MemPurchaseRepo) CreateItem(item *entity.PurchaseItem) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *MemPurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *MemPurchaseRepo) Update(purchase *entity.Purchase) error {
	if _, ok := r.byID[purchase.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *purchase
	r.byID[purchase.ID] = &cp
	return nil
}

func (r *MemPurchaseRepo) List(limit, offset int) ([]*entity.Purchase, error) {
	out := make([]*entity.Purchase, 0, len(r.byID))
	for _, p := range r.byID {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PurchaseDate.After(out[j].PurchaseDate) })
	return paginate(out, limit, offset), nil
}

func (r *MemPurchaseRepo) GetItems(purchaseID string) ([]*entity.PurchaseItem, error) {
	var out []*entity.PurchaseItem
	for _, it := range r.items {
		if it.PurchaseID == purchaseID {
			cp := *it
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemPurchaseRepo) GetItem(itemID string) (*entity.PurchaseItem, error) {
	it, ok := r.items[itemID]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *MemPurchaseRepo) UpdateItem(item *entity.PurchaseItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *MemPurchaseRepo) DeleteItem(itemID string) error {
	if _, ok := r.items[itemID]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, itemID)
	return nil
}

func (r *MemPurchaseRepo) DeleteItemsByPurchase(purchaseID string) error {
	for id, it := range r.items {
		if it.PurchaseID == purchaseID {
			delete(r.items, id)
		}
	}
	return nil
}

// ── Reports ─────────────────────────────────────────────────────────────────

type MemReportRepo struct {
	byID map[string]*entity.Report
}

func (r *MemReportRepo) Create(report *entity.Report) error {
	cp := *report
	r.byID[report.ID] = &cp
	return nil
}

func (r *MemReportRepo) GetByID(id string) (*entity.Report, error) {
	rep, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *rep
	return &cp, nil
}

func (r *MemReportRepo) List(limit, offset int) ([]*entity.Report, error) {
	out := make([]*entity.Report, 0, len(r.byID))
	for _, rep := range r.byID {
		cp := *rep
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GeneratedAt.After(out[j].GeneratedAt) })
	return paginate(out, limit, offset), nil
}

// paginate aplica limit/offset sobre el slice; limit <= 0 devuelve todo.
func paginate[T any](in []T, limit, offset int) []T {
	if offset >= len(in) {
		return nil
	}
	out := in[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}
