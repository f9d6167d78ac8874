package repository

import (
	"time"

	"github.com/jhoicas/Flota-api/internal/domain/entity"
)

// MaintenanceOrderRepository define el puerto de persistencia para órdenes de mantenimiento.
// GetByID excluye órdenes con borrado lógico.
type MaintenanceOrderRepository interface {
	Create(order *entity.MaintenanceOrder) error
	GetByID(id string) (*entity.MaintenanceOrder, error)
	// GetForUpdate bloquea la fila de la orden (SELECT FOR UPDATE). Las
	// transiciones de estado releen y revalidan bajo este bloqueo.
	GetForUpdate(id string) (*entity.MaintenanceOrder, error)
	Update(order *entity.MaintenanceOrder) error
	SoftDelete(id string, at time.Time) error
	ListByBranch(branchID string, limit, offset int) ([]*entity.MaintenanceOrder, error)
}
