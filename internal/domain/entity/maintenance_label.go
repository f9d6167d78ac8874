package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaintenanceLabel agrupa los cambios de ítems por kilometraje realizados en
// una orden, con el odómetro al momento del cambio (la "etiqueta" que se pega
// en el parabrisas del vehículo).
type MaintenanceLabel struct {
	ID         string
	OrderID    string
	VehicleID  string
	OdometerKM decimal.Decimal
	CreatedAt  time.Time
}

// MaintenanceLabelItem asocia un ítem de cambio a una etiqueta.
type MaintenanceLabelItem struct {
	ID                string
	LabelID           string
	ReplacementItemID string
}
