package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados operativos de un vehículo de la flota.
const (
	VehicleStatusActive      = "ACTIVE"
	VehicleStatusMaintenance = "MAINTENANCE"
)

// Vehicle representa un vehículo de la flota.
type Vehicle struct {
	ID         string
	CompanyID  string
	BranchID   string
	Plate      string
	Model      string
	Status     string // ACTIVE, MAINTENANCE
	OdometerKM decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
