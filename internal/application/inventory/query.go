package inventory

import (
	"context"

	"github.com/jhoicas/Flota-api/internal/domain"
	"github.com/jhoicas/Flota-api/internal/domain/entity"
	"github.com/jhoicas/Flota-api/internal/domain/repository"
)

// StockQueryUseCase consultas de solo lectura sobre stock y movimientos.
type StockQueryUseCase struct {
	stockRepo     repository.StockRepository
	movementRepo  repository.StockMovementRepository
	warehouseRepo repository.WarehouseRepository
}

// NewStockQueryUseCase construye el caso de uso de consulta.
func NewStockQueryUseCase(
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
	warehouseRepo repository.WarehouseRepository,
) *StockQueryUseCase {
	return &StockQueryUseCase{
		stockRepo:     stockRepo,
		movementRepo:  movementRepo,
		warehouseRepo: warehouseRepo,
	}
}

// StockByWarehouse devuelve los saldos de una bodega de la empresa.
func (uc *StockQueryUseCase) StockByWarehouse(ctx context.Context, companyID, warehouseID string) ([]*entity.Stock, error) {
	wh, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil || wh.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return uc.stockRepo.ListByWarehouse(warehouseID)
}

// MovementsByOrder devuelve los movimientos generados por una orden de mantenimiento.
func (uc *StockQueryUseCase) MovementsByOrder(ctx context.Context, orderID string) ([]*entity.StockMovement, error) {
	return uc.movementRepo.ListByOrder(orderID)
}
