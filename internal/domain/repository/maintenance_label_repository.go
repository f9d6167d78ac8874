package repository

import "github.com/jhoicas/Flota-api/internal/domain/entity"

// MaintenanceLabelRepository persiste las etiquetas de cambio por kilometraje.
type MaintenanceLabelRepository interface {
	Create(label *entity.MaintenanceLabel, items []*entity.MaintenanceLabelItem) error
	GetByOrder(orderID string) (*entity.MaintenanceLabel, []*entity.MaintenanceLabelItem, error)
}
