package entity

import "time"

// Tipos de cambio de stock (ledger).
const (
	StockChangePurchase       = "purchase"        // entrada por compra
	StockChangeUpdatePurchase = "update_purchase" // corrección de ítem de compra
	StockChangeSale           = "sale"            // salida por venta
	StockChangeAdjustment     = "adjustment"      // ajuste manual
)

// ValidStockChangeType indica si el tipo pertenece al enum del ledger.
func ValidStockChangeType(t string) bool {
	switch t {
	case StockChangePurchase, StockChangeUpdatePurchase, StockChangeSale, StockChangeAdjustment:
		return true
	}
	return false
}

// StockLog es una entrada inmutable del ledger de inventario (append-only).
// La suma de QuantityChange de un medicamento hasta T reconstruye su stock en T.
type StockLog struct {
	ID             string
	MedicineID     string
	ChangeType     string
	QuantityChange int64 // con signo: +entrada, -salida
	UserID         string
	Date           time.Time
}
