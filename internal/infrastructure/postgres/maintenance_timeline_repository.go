package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/Flota-api/internal/domain/entity"
	"github.com/jhoicas/Flota-api/internal/domain/repository"
)

var _ repository.MaintenanceTimelineRepository = (*MaintenanceTimelineRepo)(nil)

// MaintenanceTimelineRepo implementación sobre PostgreSQL (usable con pool o tx).
// Solo INSERT y SELECT: las filas de la línea de tiempo nunca se modifican.
type MaintenanceTimelineRepo struct {
	q Querier
}

// NewMaintenanceTimelineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaintenanceTimelineRepository(q Querier) *MaintenanceTimelineRepo {
	return &MaintenanceTimelineRepo{q: q}
}

// Create persiste un evento del ciclo de vida.
func (r *MaintenanceTimelineRepo) Create(event *entity.MaintenanceTimeline) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	query := `
		INSERT INTO maintenance_timeline (id, order_id, event, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		event.ID, event.OrderID, event.Event, event.Notes, event.CreatedAt, event.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert timeline event: %w", err)
	}
	return nil
}

// ListByOrder devuelve los eventos de una orden ordenados por fecha ascendente,
// con la secuencia de inserción como desempate para timestamps iguales. El
// cálculo de minutos depende de un orden estricto; no se deduplica ni se reordena.
func (r *MaintenanceTimelineRepo) ListByOrder(orderID string) ([]*entity.MaintenanceTimeline, error) {
	query := `
		SELECT id, order_id, event, notes, created_at, created_by
		FROM maintenance_timeline WHERE order_id = $1
		ORDER BY created_at ASC, seq ASC`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list timeline: %w", err)
	}
	defer rows.Close()

	var events []*entity.MaintenanceTimeline
	for rows.Next() {
		var ev entity.MaintenanceTimeline
		if err := rows.Scan(&ev.ID, &ev.OrderID, &ev.Event, &ev.Notes, &ev.CreatedAt, &ev.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan timeline event: %w", err)
		}
		events = append(events, &ev)
	}
	return events, rows.Err()
}
