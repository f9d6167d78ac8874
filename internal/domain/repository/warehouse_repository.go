package repository

import "github.com/jhoicas/Flota-api/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para bodegas.
type WarehouseRepository interface {
	GetByID(id string) (*entity.Warehouse, error)
	// GetByBranch devuelve la bodega de repuestos de una sucursal.
	GetByBranch(branchID string) (*entity.Warehouse, error)
}
