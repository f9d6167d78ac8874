package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaintenanceOrderRequest cuerpo para crear una orden de mantenimiento.
type CreateMaintenanceOrderRequest struct {
	VehicleID    string                     `json:"vehicle_id"`
	BranchID     string                     `json:"branch_id"`
	Type         string                     `json:"type"` // PREVENTIVE, CORRECTIVE
	OdometerKM   *decimal.Decimal           `json:"odometer_km,omitempty"`
	Description  string                     `json:"description"`
	Observations string                     `json:"observations"`
	Workers      []MaintenanceWorkerInput   `json:"workers"`
	Services     []MaintenanceServiceInput  `json:"services"`
	Materials    []MaintenanceMaterialInput `json:"materials"`
}

// UpdateMaintenanceOrderRequest cuerpo para actualizar una orden no terminal.
// Las colecciones hijas son punteros: nil = no tocar, vacío = dejar sin hijos.
type UpdateMaintenanceOrderRequest struct {
	Description  *string                     `json:"description,omitempty"`
	Observations *string                     `json:"observations,omitempty"`
	Workers      *[]MaintenanceWorkerInput   `json:"workers,omitempty"`
	Services     *[]MaintenanceServiceInput  `json:"services,omitempty"`
	Materials    *[]MaintenanceMaterialInput `json:"materials,omitempty"`
}

// MaintenanceWorkerInput empleado asignado a la orden.
type MaintenanceWorkerInput struct {
	EmployeeID    string `json:"employee_id"`
	IsResponsible bool   `json:"is_responsible"`
}

// MaintenanceServiceInput servicio de mano de obra.
type MaintenanceServiceInput struct {
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
}

// MaintenanceMaterialInput material a consumir del inventario de la sucursal.
// UnitCost opcional: si viene en cero se resuelve contra el costo promedio del
// stock o el precio de lista del producto.
type MaintenanceMaterialInput struct {
	ProductID         string          `json:"product_id"`
	ReplacementItemID *string         `json:"replacement_item_id,omitempty"`
	Quantity          decimal.Decimal `json:"quantity"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
}

// TransitionRequest cuerpo opcional para start/pause/complete/cancel.
type TransitionRequest struct {
	Notes string `json:"notes"`
}

// MaintenanceOrderResponse vista reconstruida de una orden.
// TotalCost es el valor congelado si la orden se completó; si no, una
// estimación viva (CostFrozen lo distingue). TotalTimeMinutes crece en vivo
// mientras la orden está en progreso.
type MaintenanceOrderResponse struct {
	ID               string                       `json:"id"`
	OrderNumber      string                       `json:"order_number"`
	CompanyID        string                       `json:"company_id"`
	BranchID         string                       `json:"branch_id"`
	VehicleID        string                       `json:"vehicle_id"`
	Type             string                       `json:"type"`
	Status           string                       `json:"status"`
	OdometerKM       *decimal.Decimal             `json:"odometer_km,omitempty"`
	Description      string                       `json:"description"`
	Observations     string                       `json:"observations"`
	TotalCost        decimal.Decimal              `json:"total_cost"`
	CostFrozen       bool                         `json:"cost_frozen"`
	TotalTimeMinutes int64                        `json:"total_time_minutes"`
	Workers          []MaintenanceWorkerDTO       `json:"workers"`
	Services         []MaintenanceServiceDTO      `json:"services"`
	Materials        []MaintenanceMaterialDTO     `json:"materials"`
	Timeline         []MaintenanceTimelineDTO     `json:"timeline"`
	ReplacementItems []VehicleReplacementItemDTO  `json:"replacement_items"`
	CreatedAt        time.Time                    `json:"created_at"`
	UpdatedAt        time.Time                    `json:"updated_at"`
}

// MaintenanceOrderSummaryDTO fila de listado de órdenes (sin colecciones hijas).
type MaintenanceOrderSummaryDTO struct {
	ID          string          `json:"id"`
	OrderNumber string          `json:"order_number"`
	VehicleID   string          `json:"vehicle_id"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
	Description string          `json:"description"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	CreatedAt   time.Time       `json:"created_at"`
}

// MaintenanceWorkerDTO empleado asignado.
type MaintenanceWorkerDTO struct {
	EmployeeID    string `json:"employee_id"`
	IsResponsible bool   `json:"is_responsible"`
}

// MaintenanceServiceDTO servicio de mano de obra.
type MaintenanceServiceDTO struct {
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
}

// MaintenanceMaterialDTO material consumido.
type MaintenanceMaterialDTO struct {
	ProductID         string          `json:"product_id"`
	ReplacementItemID *string         `json:"replacement_item_id,omitempty"`
	Quantity          decimal.Decimal `json:"quantity"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	TotalCost         decimal.Decimal `json:"total_cost"`
}

// MaintenanceTimelineDTO evento del ciclo de vida.
type MaintenanceTimelineDTO struct {
	Event     string    `json:"event"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by,omitempty"`
}

// VehicleReplacementItemDTO ítem de cambio por kilometraje tocado por la orden.
type VehicleReplacementItemDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	IntervalKM   decimal.Decimal `json:"interval_km"`
	LastChangeKM decimal.Decimal `json:"last_change_km"`
}
