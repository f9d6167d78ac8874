package entity

import "time"

// Warehouse representa la bodega de repuestos de una sucursal.
type Warehouse struct {
	ID        string
	CompanyID string
	BranchID  string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
