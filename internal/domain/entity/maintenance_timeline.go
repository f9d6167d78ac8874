package entity

import "time"

// Eventos de la línea de tiempo de una orden.
const (
	TimelineEventStarted   = "STARTED"
	TimelineEventPaused    = "PAUSED"
	TimelineEventResumed   = "RESUMED"
	TimelineEventCompleted = "COMPLETED"
	TimelineEventCancelled = "CANCELLED"
)

// MaintenanceTimeline es un evento del ciclo de vida de la orden (append-only).
// Las filas nunca se actualizan ni se borran: son la única fuente para el
// cálculo del tiempo transcurrido, ordenadas estrictamente por CreatedAt.
type MaintenanceTimeline struct {
	ID        string
	OrderID   string
	Event     string // STARTED, PAUSED, RESUMED, COMPLETED, CANCELLED
	Notes     string
	CreatedAt time.Time
	CreatedBy string
}
