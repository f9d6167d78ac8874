package entity

import "time"

// Branch representa una sucursal de la empresa. Cada sucursal tiene su propia
// bodega de repuestos (ver Warehouse.BranchID) y su propio consecutivo de
// órdenes de mantenimiento por año.
type Branch struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
