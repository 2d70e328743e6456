package repository

import "github.com/tu-usuario/farmacia-pro/internal/domain/entity"

// PurchaseRepository define el puerto de persistencia para Purchase e ítems.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	CreateItem(item *entity.PurchaseItem) error
	GetByID(id string) (*entity.Purchase, error)
	Update(purchase *entity.Purchase) error
	List(limit, offset int) ([]*entity.Purchase, error)
	GetItems(purchaseID string) ([]*entity.PurchaseItem, error)
	GetItem(itemID string) (*entity.PurchaseItem, error)
	UpdateItem(item *entity.PurchaseItem) error
	DeleteItem(itemID string) error
	DeleteItemsByPurchase(purchaseID string) error
}
