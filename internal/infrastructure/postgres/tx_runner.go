package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	appinventory "github.com/jhoicas/Flota-api/internal/application/inventory"
	appmaint "github.com/jhoicas/Flota-api/internal/application/maintenance"
	"github.com/jhoicas/Flota-api/internal/domain/repository"
)

// Ensure TxRunner implements los puertos de transacción de la aplicación.
var _ appinventory.TxRunner = (*TxRunner)(nil)
var _ appmaint.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Atomicidad del libro de stock.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockMovementRepository(tx), NewStockRepository(tx), NewProductRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunMaintenance inicia una transacción con todos los repositorios del motor de
// mantenimiento. Cada operación del ciclo de vida de una orden corre aquí:
// orden, hijos, stock, vehículo, línea de tiempo y cuentas por pagar se
// confirman juntos o no se confirma nada.
func (r *TxRunner) RunMaintenance(ctx context.Context, fn func(repos appmaint.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := appmaint.Repos{
		Orders:    NewMaintenanceOrderRepository(tx),
		Timeline:  NewMaintenanceTimelineRepository(tx),
		Workers:   NewMaintenanceWorkerRepository(tx),
		Services:  NewMaintenanceServiceRepository(tx),
		Materials: NewMaintenanceMaterialRepository(tx),
		Stock:     NewStockRepository(tx),
		Movements: NewStockMovementRepository(tx),
		Products:  NewProductRepository(tx),
		Vehicles:  NewVehicleRepository(tx),
		Counters:  NewOrderCounterRepository(tx),
		Labels:    NewMaintenanceLabelRepository(tx),
		Payables:  NewAccountPayableRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
