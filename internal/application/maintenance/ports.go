package maintenance

import (
	"context"

	"github.com/jhoicas/Flota-api/internal/domain/repository"
)

// Repos agrupa los repositorios atados a la transacción del motor de
// mantenimiento. Cada operación del ciclo de vida (crear, actualizar, iniciar,
// pausar, completar, cancelar) muta orden, hijos, stock, vehículo y línea de
// tiempo a través de este paquete de repos, dentro de una sola transacción.
type Repos struct {
	Orders    repository.MaintenanceOrderRepository
	Timeline  repository.MaintenanceTimelineRepository
	Workers   repository.MaintenanceWorkerRepository
	Services  repository.MaintenanceServiceRepository
	Materials repository.MaintenanceMaterialRepository
	Stock     repository.StockRepository
	Movements repository.StockMovementRepository
	Products  repository.ProductRepository
	Vehicles  repository.VehicleRepository
	Counters  repository.OrderCounterRepository
	Labels    repository.MaintenanceLabelRepository
	Payables  repository.AccountPayableRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD con los repos atados a
// esa tx. Commit si fn retorna nil; Rollback en caso contrario.
type TxRunner interface {
	RunMaintenance(ctx context.Context, fn func(r Repos) error) error
}
