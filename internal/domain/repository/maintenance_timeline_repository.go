package repository

import "github.com/jhoicas/Flota-api/internal/domain/entity"

// MaintenanceTimelineRepository define el puerto del log de eventos de la orden.
// Solo inserta y lista: las filas nunca se actualizan ni se borran.
type MaintenanceTimelineRepository interface {
	Create(event *entity.MaintenanceTimeline) error
	// ListByOrder devuelve los eventos ordenados por fecha de creación ascendente.
	ListByOrder(orderID string) ([]*entity.MaintenanceTimeline, error)
}
