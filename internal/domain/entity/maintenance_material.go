package entity

import "github.com/shopspring/decimal"

// MaintenanceMaterial es un material (producto de inventario) consumido por una orden.
// Quantity se redondea a 3 decimales y UnitCost a 2 antes de multiplicar,
// para evitar deriva de punto flotante en TotalCost.
type MaintenanceMaterial struct {
	ID                string
	OrderID           string
	ProductID         string
	ReplacementItemID *string // ítem de cambio por kilometraje del vehículo (opcional)
	Quantity          decimal.Decimal
	UnitCost          decimal.Decimal
	TotalCost         decimal.Decimal // Quantity * UnitCost redondeado a moneda
}
