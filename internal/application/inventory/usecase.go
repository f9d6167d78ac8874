package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Flota-api/internal/domain"
	"github.com/jhoicas/Flota-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Flota-api/internal/domain/inventory"
	"github.com/jhoicas/Flota-api/internal/domain/maintenance"
	"github.com/jhoicas/Flota-api/internal/domain/repository"
)

// StockLedgerUseCase es el libro de stock: todo cambio de cantidad o costeo
// pasa por aquí, siempre con bloqueo de fila (SELECT FOR UPDATE) y dentro de
// una transacción. Las entradas recalculan el costo promedio ponderado; las
// salidas lo dejan intacto y la cantidad nunca queda negativa.
type StockLedgerUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewStockLedgerUseCase construye el caso de uso.
func NewStockLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *StockLedgerUseCase {
	return &StockLedgerUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// EntryInput entrada para registrar una entrada de inventario.
type EntryInput struct {
	CompanyID   string
	UserID      string
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal
	Notes       string
}

// ReceiveEntry registra una entrada: bloquea la fila de stock (creándola si no
// existe), recalcula el costo promedio ponderado, suma la cantidad y deja un
// movimiento ENTRY en el libro. Todo en una transacción propia.
func (uc *StockLedgerUseCase) ReceiveEntry(ctx context.Context, in EntryInput) error {
	if in.ProductID == "" || in.WarehouseID == "" {
		return domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) || in.UnitCost.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil || product == nil {
		return domain.ErrNotFound
	}
	if product.CompanyID != in.CompanyID {
		return domain.ErrForbidden
	}
	wh, _ := uc.warehouseRepo.GetByID(in.WarehouseID)
	if wh == nil || wh.CompanyID != in.CompanyID {
		return domain.ErrNotFound
	}

	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error {
		// La fila se crea antes de bloquear: GetForUpdate sobre fila ausente
		// no bloquea nada y dos primeras entradas se pisarían entre sí.
		if err := stockRepo.EnsureRow(in.ProductID, in.WarehouseID); err != nil {
			return err
		}
		stock, err := stockRepo.GetForUpdate(in.ProductID, in.WarehouseID)
		if err != nil {
			return err
		}
		unitCost := maintenance.RoundMoney(in.UnitCost)
		newCost := domaininv.CostCalculator(stock.Quantity, stock.AverageCost, in.Quantity, unitCost)

		stock.Quantity = stock.Quantity.Add(in.Quantity)
		stock.AverageCost = newCost
		stock.UpdatedAt = now
		if err := stockRepo.Upsert(stock); err != nil {
			return err
		}
		// El costo promedio del producto sigue al de su stock
		if err := productRepo.UpdateCost(in.ProductID, newCost); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			ID:          uuid.New().String(),
			ProductID:   in.ProductID,
			WarehouseID: in.WarehouseID,
			Type:        entity.MovementTypeEntry,
			Quantity:    maintenance.RoundQuantity(in.Quantity),
			UnitCost:    unitCost,
			TotalCost:   maintenance.MaterialTotal(in.Quantity, unitCost),
			Notes:       in.Notes,
			CreatedAt:   now,
			CreatedBy:   in.UserID,
		}
		return movRepo.Create(mov)
	})
}

// ConsumeForOrderInTx ejecuta una salida (EXIT) para una orden de mantenimiento
// usando los repositorios de la transacción del caller. Bloquea la fila de
// stock, verifica que la cantidad solicitada no exceda la disponible, resta y
// deja el movimiento EXIT referenciando la orden. El costo promedio no cambia.
//
// El costo unitario se resuelve al momento de la llamada: el del material si
// viene informado, si no el costo promedio del stock, si no el precio de lista
// del producto, si no cero. Devuelve el costo resuelto para que el caller
// costee la fila de material.
func (uc *StockLedgerUseCase) ConsumeForOrderInTx(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	product *entity.Product,
	warehouseID, orderID, userID string,
	quantity, unitCost decimal.Decimal,
	now time.Time,
) (decimal.Decimal, error) {
	if !quantity.GreaterThan(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	stock, err := stockRepo.GetForUpdate(product.ID, warehouseID)
	if err != nil {
		return decimal.Zero, err
	}
	if stock.Quantity.LessThan(quantity) {
		return decimal.Zero, domain.ErrInsufficientStock
	}

	resolved := unitCost
	if !resolved.GreaterThan(decimal.Zero) {
		resolved = stock.AverageCost
	}
	if !resolved.GreaterThan(decimal.Zero) {
		resolved = product.Price
	}
	if !resolved.GreaterThan(decimal.Zero) {
		resolved = decimal.Zero
	}
	resolved = maintenance.RoundMoney(resolved)

	stock.Quantity = stock.Quantity.Sub(quantity)
	stock.UpdatedAt = now
	if err := stockRepo.Upsert(stock); err != nil {
		return decimal.Zero, err
	}
	mov := &entity.StockMovement{
		ID:          uuid.New().String(),
		ProductID:   product.ID,
		WarehouseID: warehouseID,
		Type:        entity.MovementTypeExit,
		Quantity:    maintenance.RoundQuantity(quantity),
		UnitCost:    resolved,
		TotalCost:   maintenance.MaterialTotal(quantity, resolved),
		OrderID:     &orderID,
		CreatedAt:   now,
		CreatedBy:   userID,
	}
	if err := movRepo.Create(mov); err != nil {
		return decimal.Zero, err
	}
	return resolved, nil
}
