package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

// CreateMedicineRequest body para POST /api/medicines.
type CreateMedicineRequest struct {
	Name            string          `json:"name"`
	CategoryID      string          `json:"category_id,omitempty"`
	SupplierID      string          `json:"supplier_id,omitempty"`
	QuantityInStock int64           `json:"quantity_in_stock"`
	BuyingPrice     decimal.Decimal `json:"buying_price"`
	SellingPrice    decimal.Decimal `json:"selling_price"`
	ExpiryDate      time.Time       `json:"expiry_date"`
}

// UpdateMedicineRequest body para PUT /api/medicines/:id. Los punteros
// distinguen "no enviado" de "valor cero"; el stock NO se edita por aquí,
// solo vía el reconciliador de inventario.
type UpdateMedicineRequest struct {
	Name         *string          `json:"name,omitempty"`
	CategoryID   *string          `json:"category_id,omitempty"`
	SupplierID   *string          `json:"supplier_id,omitempty"`
	BuyingPrice  *decimal.Decimal `json:"buying_price,omitempty"`
	SellingPrice *decimal.Decimal `json:"selling_price,omitempty"`
	ExpiryDate   *time.Time       `json:"expiry_date,omitempty"`
}

// AdjustStockRequest body para POST /api/medicines/:id/stock.
type AdjustStockRequest struct {
	QuantityChange int64  `json:"quantity_change"`
	ChangeType     string `json:"change_type,omitempty"` // adjustment por defecto
}

// AdjustStockResponse confirma el ajuste con el nuevo stock y la entrada del
// ledger generada.
type AdjustStockResponse struct {
	Message       string `json:"message"`
	Stock         int64  `json:"stock"`
	LedgerEntryID string `json:"ledger_entry_id"`
}

// MedicineResponse medicamento del catálogo.
type MedicineResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	CategoryID      string          `json:"category_id,omitempty"`
	SupplierID      string          `json:"supplier_id,omitempty"`
	QuantityInStock int64           `json:"quantity_in_stock"`
	BuyingPrice     decimal.Decimal `json:"buying_price"`
	SellingPrice    decimal.Decimal `json:"selling_price"`
	ExpiryDate      time.Time       `json:"expiry_date"`
}

// MedicineFromEntity mapea la entidad al DTO de respuesta.
func MedicineFromEntity(m *entity.Medicine) MedicineResponse {
	return MedicineResponse{
		ID:              m.ID,
		Name:            m.Name,
		CategoryID:      m.CategoryID,
		SupplierID:      m.SupplierID,
		QuantityInStock: m.QuantityInStock,
		BuyingPrice:     m.BuyingPrice,
		SellingPrice:    m.SellingPrice,
		ExpiryDate:      m.ExpiryDate,
	}
}

// StockLogResponse entrada del ledger de inventario.
type StockLogResponse struct {
	ID             string    `json:"id"`
	MedicineID     string    `json:"medicine_id"`
	ChangeType     string    `json:"change_type"`
	QuantityChange int64     `json:"quantity_change"`
	UserID         string    `json:"user_id,omitempty"`
	Date           time.Time `json:"date"`
}
