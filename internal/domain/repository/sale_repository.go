package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

// MedicineSales agrega las líneas de venta de un medicamento en un rango.
type MedicineSales struct {
	SoldQty     int64
	SoldRevenue decimal.Decimal
}

// SaleRepository define el puerto de persistencia para Sale y sus líneas.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	// GetForUpdate bloquea la cabecera de la venta (espejo de pagos).
	GetForUpdate(id string) (*entity.Sale, error)
	// UpdatePaid actualiza los campos espejo amount_paid/balance.
	UpdatePaid(id string, amountPaid, balance decimal.Decimal) error
	List(limit, offset int) ([]*entity.Sale, error)
	ListByCustomer(customerID string, limit, offset int) ([]*entity.Sale, error)
	GetItems(saleID string) ([]*entity.SaleItem, error)
	// AggregateItemsByMedicine suma qty y revenue por medicamento con
	// sale_date dentro del rango (insumo del reporte).
	AggregateItemsByMedicine(from, to time.Time) (map[string]MedicineSales, error)
}
