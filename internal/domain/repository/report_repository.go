package repository

import "github.com/tu-usuario/farmacia-pro/internal/domain/entity"

// ReportRepository define el puerto de persistencia para snapshots de
// reporte. Los snapshots son inmutables: solo Create y lecturas.
type ReportRepository interface {
	Create(report *entity.Report) error
	GetByID(id string) (*entity.Report, error)
	List(limit, offset int) ([]*entity.Report, error)
}
