package repository

import (
	"time"

	"github.com/jhoicas/Flota-api/internal/domain/entity"
)

// StockMovementRepository define el puerto del libro mayor de inventario (append-only).
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByOrder(orderID string) ([]*entity.StockMovement, error)
}
