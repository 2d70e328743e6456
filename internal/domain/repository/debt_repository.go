package repository

import "github.com/tu-usuario/farmacia-pro/internal/domain/entity"

// DebtRepository define el puerto de persistencia para Debt.
type DebtRepository interface {
	Create(debt *entity.Debt) error
	GetByID(id string) (*entity.Debt, error)
	// GetForUpdate bloquea la fila de la deuda durante un abono.
	GetForUpdate(id string) (*entity.Debt, error)
	// GetBySaleID resuelve la deuda 1:1 de una venta a crédito.
	GetBySaleID(saleID string) (*entity.Debt, error)
	// GetBySaleIDForUpdate igual que GetBySaleID pero con bloqueo de fila.
	GetBySaleIDForUpdate(saleID string) (*entity.Debt, error)
	Update(debt *entity.Debt) error
	List(limit, offset int) ([]*entity.Debt, error)
	Delete(id string) error
}
