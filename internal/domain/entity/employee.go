package entity

import "time"

// Employee representa un empleado (mecánico u operario) asignable a órdenes.
type Employee struct {
	ID        string
	CompanyID string
	BranchID  string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
