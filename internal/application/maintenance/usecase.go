package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Flota-api/internal/application/dto"
	appinventory "github.com/jhoicas/Flota-api/internal/application/inventory"
	"github.com/jhoicas/Flota-api/internal/application/payables"
	"github.com/jhoicas/Flota-api/internal/domain"
	"github.com/jhoicas/Flota-api/internal/domain/entity"
	domainmaint "github.com/jhoicas/Flota-api/internal/domain/maintenance"
	"github.com/jhoicas/Flota-api/internal/domain/repository"
)

// OrderUseCase es la máquina de estados de órdenes de mantenimiento: dueña del
// estado de la orden y de su línea de tiempo, orquesta empleados, servicios,
// materiales, stock, vehículo y cuentas por pagar como una transacción por
// operación.
type OrderUseCase struct {
	txRunner      TxRunner
	orderRepo     repository.MaintenanceOrderRepository
	timelineRepo  repository.MaintenanceTimelineRepository
	workerRepo    repository.MaintenanceWorkerRepository
	serviceRepo   repository.MaintenanceServiceRepository
	materialRepo  repository.MaintenanceMaterialRepository
	stockRepo     repository.StockRepository
	branchRepo    repository.BranchRepository
	warehouseRepo repository.WarehouseRepository
	vehicleRepo   repository.VehicleRepository
	employeeRepo  repository.EmployeeRepository
	productRepo   repository.ProductRepository
	ledger        *appinventory.StockLedgerUseCase
	dispatcher    *payables.Dispatcher
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.MaintenanceOrderRepository,
	timelineRepo repository.MaintenanceTimelineRepository,
	workerRepo repository.MaintenanceWorkerRepository,
	serviceRepo repository.MaintenanceServiceRepository,
	materialRepo repository.MaintenanceMaterialRepository,
	stockRepo repository.StockRepository,
	branchRepo repository.BranchRepository,
	warehouseRepo repository.WarehouseRepository,
	vehicleRepo repository.VehicleRepository,
	employeeRepo repository.EmployeeRepository,
	productRepo repository.ProductRepository,
	ledger *appinventory.StockLedgerUseCase,
	dispatcher *payables.Dispatcher,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:      txRunner,
		orderRepo:     orderRepo,
		timelineRepo:  timelineRepo,
		workerRepo:    workerRepo,
		serviceRepo:   serviceRepo,
		materialRepo:  materialRepo,
		stockRepo:     stockRepo,
		branchRepo:    branchRepo,
		warehouseRepo: warehouseRepo,
		vehicleRepo:   vehicleRepo,
		employeeRepo:  employeeRepo,
		productRepo:   productRepo,
		ledger:        ledger,
		dispatcher:    dispatcher,
	}
}

// CreateOrder valida vehículo, sucursal, empleados y materiales; asigna el
// consecutivo; y en una sola transacción inserta la orden (OPEN) con sus hijos,
// consume el stock de cada material, deja el evento STARTED en la línea de
// tiempo, pasa el vehículo a MAINTENANCE y registra la etiqueta de cambios por
// kilometraje. Cualquier falla (p. ej. stock insuficiente al consumir) revierte
// todo.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, companyID, userID string, in CreateOrderInput) (*dto.MaintenanceOrderResponse, error) {
	if in.VehicleID == "" || in.BranchID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.OrderTypePreventive && in.Type != entity.OrderTypeCorrective {
		return nil, domain.ErrInvalidInput
	}

	branch, err := uc.branchRepo.GetByID(in.BranchID)
	if err != nil || branch == nil {
		return nil, domain.ErrNotFound
	}
	if branch.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	vehicle, err := uc.vehicleRepo.GetByID(in.VehicleID)
	if err != nil || vehicle == nil {
		return nil, domain.ErrNotFound
	}
	if vehicle.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	wh, _ := uc.warehouseRepo.GetByBranch(in.BranchID)
	if wh == nil {
		return nil, domain.ErrNotFound
	}

	if err := uc.validateWorkers(companyID, in.Workers); err != nil {
		return nil, err
	}
	productsByID, err := uc.validateMaterials(companyID, in.VehicleID, wh.ID, in.Materials)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var order *entity.MaintenanceOrder

	err = uc.txRunner.RunMaintenance(ctx, func(r Repos) error {
		seq, err := r.Counters.NextSequence(companyID, in.BranchID, now.Year())
		if err != nil {
			return err
		}
		order = &entity.MaintenanceOrder{
			ID:           uuid.New().String(),
			OrderNumber:  domainmaint.FormatOrderNumber(now.Year(), seq),
			CompanyID:    companyID,
			BranchID:     in.BranchID,
			VehicleID:    in.VehicleID,
			Type:         in.Type,
			Status:       entity.OrderStatusOpen,
			OdometerKM:   in.OdometerKM,
			Description:  in.Description,
			Observations: in.Observations,
			TotalCost:    decimal.Zero,
			CreatedBy:    userID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := r.Orders.Create(order); err != nil {
			return err
		}
		if err := r.Workers.CreateBatch(buildWorkers(order.ID, in.Workers)); err != nil {
			return err
		}
		if err := r.Services.CreateBatch(buildServices(order.ID, in.Services)); err != nil {
			return err
		}
		if err := uc.consumeAndCreateMaterials(r, order.ID, userID, wh.ID, in.Materials, productsByID, now); err != nil {
			return err
		}
		if err := r.Timeline.Create(&entity.MaintenanceTimeline{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			Event:     entity.TimelineEventStarted,
			CreatedAt: now,
			CreatedBy: userID,
		}); err != nil {
			return err
		}
		// Vehículo entra a mantenimiento; el odómetro de ingreso se registra si vino
		if err := r.Vehicles.UpdateStatus(vehicle.ID, entity.VehicleStatusMaintenance, in.OdometerKM, now); err != nil {
			return err
		}
		if err := r.Vehicles.CreateStatusHistory(&entity.VehicleStatusHistory{
			ID:         uuid.New().String(),
			VehicleID:  vehicle.ID,
			Status:     entity.VehicleStatusMaintenance,
			OdometerKM: in.OdometerKM,
			Notes:      "Ingreso a mantenimiento " + order.OrderNumber,
			CreatedAt:  now,
			CreatedBy:  userID,
		}); err != nil {
			return err
		}
		return uc.createLabel(r, order, vehicle, in.OdometerKM, in.Materials, now)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, companyID, order.ID)
}

// UpdateOrder reemplaza descripción/observaciones y, si vienen, las colecciones
// hijas completas (borrar y recrear, no mezclar). Los materiales nuevos se
// revalidan contra el stock de la sucursal de la orden y consumen inventario;
// el consumo previo no se revierte.
func (uc *OrderUseCase) UpdateOrder(ctx context.Context, companyID, userID, orderID string, in UpdateOrderInput) (*dto.MaintenanceOrderResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if order.IsTerminal() {
		return nil, fmt.Errorf("%w: no se puede modificar una orden completada o cancelada", domain.ErrPreconditionFailed)
	}

	wh, _ := uc.warehouseRepo.GetByBranch(order.BranchID)
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	if in.Workers != nil {
		if err := uc.validateWorkers(companyID, *in.Workers); err != nil {
			return nil, err
		}
	}
	var productsByID map[string]*entity.Product
	if in.Materials != nil {
		productsByID, err = uc.validateMaterials(companyID, order.VehicleID, wh.ID, *in.Materials)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	err = uc.txRunner.RunMaintenance(ctx, func(r Repos) error {
		order, err = lockOrder(r, companyID, orderID)
		if err != nil {
			return err
		}
		if order.IsTerminal() {
			return fmt.Errorf("%w: no se puede modificar una orden completada o cancelada", domain.ErrPreconditionFailed)
		}
		if in.Description != nil {
			order.Description = *in.Description
		}
		if in.Observations != nil {
			order.Observations = *in.Observations
		}
		order.UpdatedAt = now
		if err := r.Orders.Update(order); err != nil {
			return err
		}
		if in.Workers != nil {
			if err := r.Workers.DeleteByOrder(order.ID); err != nil {
				return err
			}
			if err := r.Workers.CreateBatch(buildWorkers(order.ID, *in.Workers)); err != nil {
				return err
			}
		}
		if in.Services != nil {
			if err := r.Services.DeleteByOrder(order.ID); err != nil {
				return err
			}
			if err := r.Services.CreateBatch(buildServices(order.ID, *in.Services)); err != nil {
				return err
			}
		}
		if in.Materials != nil {
			if err := r.Materials.DeleteByOrder(order.ID); err != nil {
				return err
			}
			if err := uc.consumeAndCreateMaterials(r, order.ID, userID, wh.ID, *in.Materials, productsByID, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, companyID, order.ID)
}

// validateWorkers verifica que los empleados existan, estén activos y sean de la empresa.
func (uc *OrderUseCase) validateWorkers(companyID string, workers []WorkerInput) error {
	for _, w := range workers {
		if w.EmployeeID == "" {
			return domain.ErrInvalidInput
		}
		emp, err := uc.employeeRepo.GetByID(w.EmployeeID)
		if err != nil || emp == nil || !emp.Active {
			return domain.ErrNotFound
		}
		if emp.CompanyID != companyID {
			return domain.ErrForbidden
		}
	}
	return nil
}

// validateMaterials verifica productos (existen, activos, de la empresa),
// pertenencia de los ítems de cambio al vehículo, y hace una pre-verificación
// de stock de solo lectura. La verificación que vale es la que se repite bajo
// bloqueo de fila dentro de la transacción; esta solo corta temprano.
func (uc *OrderUseCase) validateMaterials(companyID, vehicleID, warehouseID string, materials []MaterialInput) (map[string]*entity.Product, error) {
	productsByID := make(map[string]*entity.Product, len(materials))
	for _, m := range materials {
		if m.ProductID == "" || !m.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(m.ProductID)
		if err != nil || product == nil || !product.Active {
			return nil, domain.ErrNotFound
		}
		if product.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		productsByID[m.ProductID] = product

		if m.ReplacementItemID != nil {
			item, err := uc.vehicleRepo.GetReplacementItem(*m.ReplacementItemID)
			if err != nil || item == nil {
				return nil, domain.ErrNotFound
			}
			if item.VehicleID != vehicleID {
				return nil, fmt.Errorf("%w: el ítem de cambio no pertenece al vehículo de la orden", domain.ErrInvalidInput)
			}
		}

		stock, err := uc.stockRepo.Get(m.ProductID, warehouseID)
		if err != nil {
			return nil, err
		}
		if stock.Quantity.LessThan(m.Quantity) {
			return nil, domain.ErrInsufficientStock
		}
	}
	return productsByID, nil
}

// consumeAndCreateMaterials consume stock por cada material (bloqueo de fila,
// dentro de la tx del caller) y crea las filas de material costeadas con el
// costo unitario resuelto por el libro de stock.
func (uc *OrderUseCase) consumeAndCreateMaterials(
	r Repos,
	orderID, userID, warehouseID string,
	materials []MaterialInput,
	productsByID map[string]*entity.Product,
	now time.Time,
) error {
	rows := make([]*entity.MaintenanceMaterial, 0, len(materials))
	for _, m := range materials {
		product := productsByID[m.ProductID]
		resolved, err := uc.ledger.ConsumeForOrderInTx(
			r.Movements, r.Stock,
			product, warehouseID, orderID, userID,
			m.Quantity, m.UnitCost, now,
		)
		if err != nil {
			return err
		}
		rows = append(rows, &entity.MaintenanceMaterial{
			ID:                uuid.New().String(),
			OrderID:           orderID,
			ProductID:         m.ProductID,
			ReplacementItemID: m.ReplacementItemID,
			Quantity:          domainmaint.RoundQuantity(m.Quantity),
			UnitCost:          resolved,
			TotalCost:         domainmaint.MaterialTotal(m.Quantity, resolved),
		})
	}
	return r.Materials.CreateBatch(rows)
}

// createLabel registra la etiqueta de cambios por kilometraje si algún material
// vino marcado con un ítem de cambio, y actualiza el último cambio de cada ítem.
func (uc *OrderUseCase) createLabel(
	r Repos,
	order *entity.MaintenanceOrder,
	vehicle *entity.Vehicle,
	odometerKM *decimal.Decimal,
	materials []MaterialInput,
	now time.Time,
) error {
	seen := make(map[string]bool)
	var itemIDs []string
	for _, m := range materials {
		if m.ReplacementItemID == nil || seen[*m.ReplacementItemID] {
			continue
		}
		seen[*m.ReplacementItemID] = true
		itemIDs = append(itemIDs, *m.ReplacementItemID)
	}
	if len(itemIDs) == 0 {
		return nil
	}

	odo := vehicle.OdometerKM
	if odometerKM != nil {
		odo = *odometerKM
	}
	label := &entity.MaintenanceLabel{
		ID:         uuid.New().String(),
		OrderID:    order.ID,
		VehicleID:  vehicle.ID,
		OdometerKM: odo,
		CreatedAt:  now,
	}
	items := make([]*entity.MaintenanceLabelItem, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		items = append(items, &entity.MaintenanceLabelItem{
			ID:                uuid.New().String(),
			LabelID:           label.ID,
			ReplacementItemID: itemID,
		})
		if err := r.Vehicles.UpdateReplacementItemChange(itemID, odo, now); err != nil {
			return err
		}
	}
	return r.Labels.Create(label, items)
}

func buildWorkers(orderID string, in []WorkerInput) []*entity.MaintenanceWorker {
	out := make([]*entity.MaintenanceWorker, 0, len(in))
	for _, w := range in {
		out = append(out, &entity.MaintenanceWorker{
			ID:            uuid.New().String(),
			OrderID:       orderID,
			EmployeeID:    w.EmployeeID,
			IsResponsible: w.IsResponsible,
		})
	}
	return out
}

func buildServices(orderID string, in []ServiceInput) []*entity.MaintenanceService {
	out := make([]*entity.MaintenanceService, 0, len(in))
	for _, s := range in {
		out = append(out, &entity.MaintenanceService{
			ID:          uuid.New().String(),
			OrderID:     orderID,
			Description: s.Description,
			Cost:        domainmaint.RoundMoney(s.Cost),
		})
	}
	return out
}
