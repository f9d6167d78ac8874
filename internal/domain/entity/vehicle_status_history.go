package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// VehicleStatusHistory registra cada cambio de estado de un vehículo (append-only).
type VehicleStatusHistory struct {
	ID         string
	VehicleID  string
	Status     string
	OdometerKM *decimal.Decimal
	Notes      string
	CreatedAt  time.Time
	CreatedBy  string
}
