package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de venta.
const (
	SaleTypeCash   = "cash"
	SaleTypeCredit = "credit"
)

// Sale es una venta registrada. Se crea una sola vez; después solo el
// reconciliador de pagos muta AmountPaid/Balance cuando llegan abonos.
type Sale struct {
	ID          string
	CustomerID  string
	UserID      string
	TotalAmount decimal.Decimal
	AmountPaid  decimal.Decimal
	Balance     decimal.Decimal // TotalAmount - AmountPaid
	SaleType    string          // cash | credit
	SaleDate    time.Time
	Items       []SaleItem
	CreatedAt   time.Time
}

// SaleItem es una línea de la venta. Name y UnitPrice se congelan al momento
// de vender para que el histórico no cambie si el catálogo cambia.
type SaleItem struct {
	ID         string
	SaleID     string
	MedicineID string
	Name       string
	Quantity   int64
	UnitPrice  decimal.Decimal
	Subtotal   decimal.Decimal
}
