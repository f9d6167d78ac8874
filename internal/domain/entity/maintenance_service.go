package entity

import "github.com/shopspring/decimal"

// MaintenanceService es un servicio de mano de obra asociado a una orden.
type MaintenanceService struct {
	ID          string
	OrderID     string
	Description string
	Cost        decimal.Decimal
}
