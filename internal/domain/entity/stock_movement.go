package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeEntry = "ENTRY" // entrada (compra, ajuste positivo)
	MovementTypeExit  = "EXIT"  // salida (consumo de una orden de mantenimiento)
)

// StockMovement es una entrada del libro mayor de inventario (append-only).
// Nunca se actualiza después de creada: es el registro durable que concilia
// contra los saldos de Stock.
type StockMovement struct {
	ID          string
	ProductID   string
	WarehouseID string
	Type        string // ENTRY, EXIT
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal
	TotalCost   decimal.Decimal
	OrderID     *string // orden de mantenimiento que originó el movimiento (opcional)
	Notes       string
	CreatedAt   time.Time
	CreatedBy   string
}
