package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// VehicleReplacementItem es un ítem de cambio por kilometraje de un vehículo
// (aceite, filtros, correas). LastChangeKM se actualiza cuando una orden de
// mantenimiento marca el ítem como cambiado.
type VehicleReplacementItem struct {
	ID           string
	VehicleID    string
	Name         string
	IntervalKM   decimal.Decimal // cada cuántos km debe cambiarse
	LastChangeKM decimal.Decimal // kilometraje del último cambio
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
