package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Flota-api/internal/domain/entity"
)

// VehicleRepository define el puerto de persistencia para vehículos de la flota,
// sus ítems de cambio por kilometraje y el historial de estados.
type VehicleRepository interface {
	GetByID(id string) (*entity.Vehicle, error)
	// UpdateStatus cambia el estado del vehículo; si odometerKM no es nil
	// también actualiza el kilometraje.
	UpdateStatus(id, status string, odometerKM *decimal.Decimal, at time.Time) error
	CreateStatusHistory(h *entity.VehicleStatusHistory) error

	GetReplacementItem(id string) (*entity.VehicleReplacementItem, error)
	ListReplacementItems(vehicleID string) ([]*entity.VehicleReplacementItem, error)
	// UpdateReplacementItemChange registra el cambio del ítem al kilometraje dado.
	UpdateReplacementItemChange(id string, km decimal.Decimal, at time.Time) error
}
