package repository

import "github.com/tu-usuario/farmacia-pro/internal/domain/entity"

// MedicineRepository define el puerto de persistencia para Medicine (DIP).
type MedicineRepository interface {
	Create(med *entity.Medicine) error
	GetByID(id string) (*entity.Medicine, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE); usado por
	// el reconciliador de inventario para serializar los cambios de stock.
	GetForUpdate(id string) (*entity.Medicine, error)
	Update(med *entity.Medicine) error
	// UpdateStock fija la cantidad en stock (ya validada por el caller).
	UpdateStock(id string, quantity int64) error
	List(limit, offset int) ([]*entity.Medicine, error)
	// ListAll devuelve el catálogo completo (reportes con ventas cero).
	ListAll() ([]*entity.Medicine, error)
	// ListByIDs devuelve solo los medicamentos indicados (para reportes sin
	// ventas cero).
	ListByIDs(ids []string) ([]*entity.Medicine, error)
	Delete(id string) error
}
