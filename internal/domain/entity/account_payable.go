package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Orígenes y estados de cuentas por pagar.
const (
	PayableOriginMaintenance = "MAINTENANCE"

	PayableStatusPending = "PENDING"
	PayableStatusPaid    = "PAID"
)

// AccountPayable es una cuenta por pagar. Las de origen MAINTENANCE se crean
// automáticamente al completar una orden con costo mayor a cero, en la misma
// transacción que completa la orden.
type AccountPayable struct {
	ID          string
	CompanyID   string
	BranchID    string
	Description string
	Amount      decimal.Decimal
	DueDate     time.Time
	OriginType  string  // MAINTENANCE
	OriginID    *string // ID de la orden que la originó
	Status      string  // PENDING, PAID
	CreatedAt   time.Time
	CreatedBy   string
}
