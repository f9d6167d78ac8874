package repository

import "github.com/jhoicas/Flota-api/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar stock por bodega+producto.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	Get(productID, warehouseID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	// EnsureRow crea la fila en cero si no existe (INSERT ... DO NOTHING).
	// Las entradas la llaman antes de GetForUpdate: sobre una fila ausente
	// no hay nada que bloquear.
	EnsureRow(productID, warehouseID string) error
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(productID, warehouseID string) (*entity.Stock, error)
	ListByWarehouse(warehouseID string) ([]*entity.Stock, error)
}
