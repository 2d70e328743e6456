package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medicine representa un medicamento del catálogo de la farmacia.
// QuantityInStock es la foto actual; el historial vive en stock_logs y
// ambos deben coincidir siempre (ledger + snapshot).
type Medicine struct {
	ID              string
	Name            string
	CategoryID      string
	SupplierID      string
	QuantityInStock int64 // nunca negativo tras una venta confirmada
	BuyingPrice     decimal.Decimal
	SellingPrice    decimal.Decimal
	ExpiryDate      time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
