package repository

import "github.com/jhoicas/Flota-api/internal/domain/entity"

// Puertos de las colecciones hijas de una orden. En actualizaciones las
// colecciones se reemplazan completas (DeleteByOrder + CreateBatch), no se
// mezclan con las existentes.

// MaintenanceWorkerRepository persiste los empleados asignados a una orden.
type MaintenanceWorkerRepository interface {
	CreateBatch(workers []*entity.MaintenanceWorker) error
	DeleteByOrder(orderID string) error
	ListByOrder(orderID string) ([]*entity.MaintenanceWorker, error)
}

// MaintenanceServiceRepository persiste los servicios de mano de obra de una orden.
type MaintenanceServiceRepository interface {
	CreateBatch(services []*entity.MaintenanceService) error
	DeleteByOrder(orderID string) error
	ListByOrder(orderID string) ([]*entity.MaintenanceService, error)
}

// MaintenanceMaterialRepository persiste los materiales consumidos por una orden.
type MaintenanceMaterialRepository interface {
	CreateBatch(materials []*entity.MaintenanceMaterial) error
	DeleteByOrder(orderID string) error
	ListByOrder(orderID string) ([]*entity.MaintenanceMaterial, error)
}
