package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de orden de mantenimiento.
const (
	OrderTypePreventive = "PREVENTIVE" // mantenimiento programado
	OrderTypeCorrective = "CORRECTIVE" // reparación por falla
)

// Estados del ciclo de vida de una orden de mantenimiento.
// OPEN -> IN_PROGRESS <-> PAUSED -> COMPLETED | CANCELLED.
// COMPLETED y CANCELLED son terminales; desde OPEN también se puede
// completar o cancelar directamente.
const (
	OrderStatusOpen       = "OPEN"
	OrderStatusInProgress = "IN_PROGRESS"
	OrderStatusPaused     = "PAUSED"
	OrderStatusCompleted  = "COMPLETED"
	OrderStatusCancelled  = "CANCELLED"
)

// MaintenanceOrder representa una orden de mantenimiento de un vehículo (raíz del agregado).
// TotalCost y TotalTimeMinutes se congelan al completar; antes de eso el costo
// se estima en vivo desde servicios y materiales (ver domain/maintenance).
type MaintenanceOrder struct {
	ID               string
	OrderNumber      string // "OM-YYYY-NNN", único por sucursal y año
	CompanyID        string
	BranchID         string
	VehicleID        string
	Type             string // PREVENTIVE, CORRECTIVE
	Status           string
	OdometerKM       *decimal.Decimal // kilometraje del vehículo al ingresar
	Description      string
	Observations     string
	TotalCost        decimal.Decimal // congelado al completar; 0 mientras está abierta
	TotalTimeMinutes int64           // congelado al completar
	AttachmentURL    string
	CreatedBy        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time // borrado lógico
}

// IsTerminal indica si la orden ya no admite transiciones (COMPLETED o CANCELLED).
func (o *MaintenanceOrder) IsTerminal() bool {
	return o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled
}
