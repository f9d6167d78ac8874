package maintenance_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	appinventory "github.com/jhoicas/Flota-api/internal/application/inventory"
	"github.com/jhoicas/Flota-api/internal/application/maintenance"
	"github.com/jhoicas/Flota-api/internal/application/payables"
	"github.com/jhoicas/Flota-api/internal/domain/entity"
	"github.com/jhoicas/Flota-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Mundo en memoria: un estado compartido y fakes de repositorio encima. El
// txRunner falso no abre transacciones reales; ejecuta los callbacks contra el
// mismo estado, que es suficiente para verificar la lógica de negocio.
// ──────────────────────────────────────────────────────────────────────────────

type world struct {
	orders    map[string]*entity.MaintenanceOrder
	timeline  map[string][]*entity.MaintenanceTimeline
	workers   map[string][]*entity.MaintenanceWorker
	services  map[string][]*entity.MaintenanceService
	materials map[string][]*entity.MaintenanceMaterial
	stock     map[string]*entity.Stock
	movements []*entity.StockMovement
	products  map[string]*entity.Product
	branches  map[string]*entity.Branch
	wares     map[string]*entity.Warehouse
	vehicles  map[string]*entity.Vehicle
	repItems  map[string]*entity.VehicleReplacementItem
	history   []*entity.VehicleStatusHistory
	employees map[string]*entity.Employee
	counters  map[string]int
	labels    map[string]*entity.MaintenanceLabel
	labelItem map[string][]*entity.MaintenanceLabelItem
	payables  []*entity.AccountPayable
}

func newWorld() *world {
	return &world{
		orders:    map[string]*entity.MaintenanceOrder{},
		timeline:  map[string][]*entity.MaintenanceTimeline{},
		workers:   map[string][]*entity.MaintenanceWorker{},
		services:  map[string][]*entity.MaintenanceService{},
		materials: map[string][]*entity.MaintenanceMaterial{},
		stock:     map[string]*entity.Stock{},
		products:  map[string]*entity.Product{},
		branches:  map[string]*entity.Branch{},
		wares:     map[string]*entity.Warehouse{},
		vehicles:  map[string]*entity.Vehicle{},
		repItems:  map[string]*entity.VehicleReplacementItem{},
		employees: map[string]*entity.Employee{},
		counters:  map[string]int{},
		labels:    map[string]*entity.MaintenanceLabel{},
		labelItem: map[string][]*entity.MaintenanceLabelItem{},
	}
}

func stockKey(productID, warehouseID string) string { return productID + "|" + warehouseID }

// ── repos falsos ──────────────────────────────────────────────────────────────

type fakeOrderRepo struct{ w *world }

func (r *fakeOrderRepo) Create(o *entity.MaintenanceOrder) error {
	cp := *o
	r.w.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.MaintenanceOrder, error) {
	o, ok := r.w.orders[id]
	if !ok || o.DeletedAt != nil {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) GetForUpdate(id string) (*entity.MaintenanceOrder, error) {
	return r.GetByID(id)
}

func (r *fakeOrderRepo) Update(o *entity.MaintenanceOrder) error {
	cp := *o
	r.w.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) SoftDelete(id string, at time.Time) error {
	if o, ok := r.w.orders[id]; ok {
		o.DeletedAt = &at
	}
	return nil
}

func (r *fakeOrderRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.MaintenanceOrder, error) {
	var out []*entity.MaintenanceOrder
	for _, o := range r.w.orders {
		if o.BranchID == branchID && o.DeletedAt == nil {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeTimelineRepo struct{ w *world }

func (r *fakeTimelineRepo) Create(ev *entity.MaintenanceTimeline) error {
	r.w.timeline[ev.OrderID] = append(r.w.timeline[ev.OrderID], ev)
	return nil
}

func (r *fakeTimelineRepo) ListByOrder(orderID string) ([]*entity.MaintenanceTimeline, error) {
	return r.w.timeline[orderID], nil
}

type fakeWorkerRepo struct{ w *world }

func (r *fakeWorkerRepo) CreateBatch(ws []*entity.MaintenanceWorker) error {
	for _, wk := range ws {
		r.w.workers[wk.OrderID] = append(r.w.workers[wk.OrderID], wk)
	}
	return nil
}
func (r *fakeWorkerRepo) DeleteByOrder(orderID string) error { delete(r.w.workers, orderID); return nil }
func (r *fakeWorkerRepo) ListByOrder(orderID string) ([]*entity.MaintenanceWorker, error) {
	return r.w.workers[orderID], nil
}

type fakeServiceRepo struct{ w *world }

func (r *fakeServiceRepo) CreateBatch(ss []*entity.MaintenanceService) error {
	for _, s := range ss {
		r.w.services[s.OrderID] = append(r.w.services[s.OrderID], s)
	}
	return nil
}
func (r *fakeServiceRepo) DeleteByOrder(orderID string) error {
	delete(r.w.services, orderID)
	return nil
}
func (r *fakeServiceRepo) ListByOrder(orderID string) ([]*entity.MaintenanceService, error) {
	return r.w.services[orderID], nil
}

type fakeMaterialRepo struct{ w *world }

func (r *fakeMaterialRepo) CreateBatch(ms []*entity.MaintenanceMaterial) error {
	for _, m := range ms {
		r.w.materials[m.OrderID] = append(r.w.materials[m.OrderID], m)
	}
	return nil
}
func (r *fakeMaterialRepo) DeleteByOrder(orderID string) error {
	delete(r.w.materials, orderID)
	return nil
}
func (r *fakeMaterialRepo) ListByOrder(orderID string) ([]*entity.MaintenanceMaterial, error) {
	return r.w.materials[orderID], nil
}

type fakeStockRepo struct{ w *world }

func (r *fakeStockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	if s, ok := r.w.stock[stockKey(productID, warehouseID)]; ok {
		cp := *s
		return &cp, nil
	}
	// fila ausente = stock cero, igual que el adaptador de PostgreSQL
	return &entity.Stock{ProductID: productID, WarehouseID: warehouseID,
		Quantity: decimal.Zero, AverageCost: decimal.Zero}, nil
}

func (r *fakeStockRepo) EnsureRow(productID, warehouseID string) error {
	key := stockKey(productID, warehouseID)
	if _, ok := r.w.stock[key]; !ok {
		r.w.stock[key] = &entity.Stock{ProductID: productID, WarehouseID: warehouseID,
			Quantity: decimal.Zero, AverageCost: decimal.Zero}
	}
	return nil
}

func (r *fakeStockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	return r.Get(productID, warehouseID)
}

func (r *fakeStockRepo) Upsert(s *entity.Stock) error {
	cp := *s
	r.w.stock[stockKey(s.ProductID, s.WarehouseID)] = &cp
	return nil
}

func (r *fakeStockRepo) ListByWarehouse(warehouseID string) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for _, s := range r.w.stock {
		if s.WarehouseID == warehouseID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeMovementRepo struct{ w *world }

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.w.movements = append(r.w.movements, m)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.w.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByOrder(orderID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.w.movements {
		if m.OrderID != nil && *m.OrderID == orderID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeProductRepo struct{ w *world }

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.w.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) UpdateCost(productID string, cost decimal.Decimal) error {
	if p, ok := r.w.products[productID]; ok {
		p.Cost = cost
	}
	return nil
}

func (r *fakeProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.w.products {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeBranchRepo struct{ w *world }

func (r *fakeBranchRepo) GetByID(id string) (*entity.Branch, error) {
	b, ok := r.w.branches[id]
	if !ok {
		return nil, nil
	}
	return b, nil
}

type fakeWarehouseRepo struct{ w *world }

func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	wh, ok := r.w.wares[id]
	if !ok {
		return nil, nil
	}
	return wh, nil
}

func (r *fakeWarehouseRepo) GetByBranch(branchID string) (*entity.Warehouse, error) {
	for _, wh := range r.w.wares {
		if wh.BranchID == branchID {
			return wh, nil
		}
	}
	return nil, nil
}

type fakeEmployeeRepo struct{ w *world }

func (r *fakeEmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	e, ok := r.w.employees[id]
	if !ok {
		return nil, nil
	}
	return e, nil
}

type fakeVehicleRepo struct{ w *world }

func (r *fakeVehicleRepo) GetByID(id string) (*entity.Vehicle, error) {
	v, ok := r.w.vehicles[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVehicleRepo) UpdateStatus(id, status string, odometerKM *decimal.Decimal, at time.Time) error {
	v, ok := r.w.vehicles[id]
	if !ok {
		return fmt.Errorf("vehículo %s no existe", id)
	}
	v.Status = status
	if odometerKM != nil {
		v.OdometerKM = *odometerKM
	}
	v.UpdatedAt = at
	return nil
}

func (r *fakeVehicleRepo) CreateStatusHistory(h *entity.VehicleStatusHistory) error {
	r.w.history = append(r.w.history, h)
	return nil
}

func (r *fakeVehicleRepo) GetReplacementItem(id string) (*entity.VehicleReplacementItem, error) {
	item, ok := r.w.repItems[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r *fakeVehicleRepo) ListReplacementItems(vehicleID string) ([]*entity.VehicleReplacementItem, error) {
	var out []*entity.VehicleReplacementItem
	for _, item := range r.w.repItems {
		if item.VehicleID == vehicleID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeVehicleRepo) UpdateReplacementItemChange(id string, km decimal.Decimal, at time.Time) error {
	if item, ok := r.w.repItems[id]; ok {
		item.LastChangeKM = km
		item.UpdatedAt = at
	}
	return nil
}

type fakeCounterRepo struct{ w *world }

func (r *fakeCounterRepo) NextSequence(companyID, branchID string, year int) (int, error) {
	key := fmt.Sprintf("%s|%s|%d", companyID, branchID, year)
	r.w.counters[key]++
	return r.w.counters[key], nil
}

type fakeLabelRepo struct{ w *world }

func (r *fakeLabelRepo) Create(label *entity.MaintenanceLabel, items []*entity.MaintenanceLabelItem) error {
	r.w.labels[label.OrderID] = label
	r.w.labelItem[label.ID] = items
	return nil
}

func (r *fakeLabelRepo) GetByOrder(orderID string) (*entity.MaintenanceLabel, []*entity.MaintenanceLabelItem, error) {
	label, ok := r.w.labels[orderID]
	if !ok {
		return nil, nil, nil
	}
	return label, r.w.labelItem[label.ID], nil
}

type fakePayableRepo struct{ w *world }

func (r *fakePayableRepo) Create(p *entity.AccountPayable) error {
	r.w.payables = append(r.w.payables, p)
	return nil
}

func (r *fakePayableRepo) ListByOrigin(originType, originID string) ([]*entity.AccountPayable, error) {
	var out []*entity.AccountPayable
	for _, p := range r.w.payables {
		if p.OriginType == originType && p.OriginID != nil && *p.OriginID == originID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePayableRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.AccountPayable, error) {
	var out []*entity.AccountPayable
	for _, p := range r.w.payables {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

// fakeTxRunner implementa los dos puertos de transacción sin transacciones:
// el rollback no se simula, pero los tests solo ejercitan caminos donde la
// atomicidad no está en juego o donde la falla corta antes de escribir.
type fakeTxRunner struct{ w *world }

func (t *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(&fakeMovementRepo{t.w}, &fakeStockRepo{t.w}, &fakeProductRepo{t.w})
}

func (t *fakeTxRunner) RunMaintenance(ctx context.Context, fn func(r maintenance.Repos) error) error {
	return fn(maintenance.Repos{
		Orders:    &fakeOrderRepo{t.w},
		Timeline:  &fakeTimelineRepo{t.w},
		Workers:   &fakeWorkerRepo{t.w},
		Services:  &fakeServiceRepo{t.w},
		Materials: &fakeMaterialRepo{t.w},
		Stock:     &fakeStockRepo{t.w},
		Movements: &fakeMovementRepo{t.w},
		Products:  &fakeProductRepo{t.w},
		Vehicles:  &fakeVehicleRepo{t.w},
		Counters:  &fakeCounterRepo{t.w},
		Labels:    &fakeLabelRepo{t.w},
		Payables:  &fakePayableRepo{t.w},
	})
}

// gatedTxRunner retrasa cada transacción hasta que todos los llamadores pasaron
// su validación previa (la barrera) y luego las ejecuta en serie, que es el
// intercalado que PostgreSQL permite cuando la validación corre fuera de la
// transacción: todos leen el mismo estado viejo antes de que alguien escriba.
type gatedTxRunner struct {
	*fakeTxRunner
	barrier *sync.WaitGroup
	mu      sync.Mutex
}

func (t *gatedTxRunner) RunMaintenance(ctx context.Context, fn func(r maintenance.Repos) error) error {
	t.barrier.Done()
	t.barrier.Wait()
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fakeTxRunner.RunMaintenance(ctx, fn)
}

// hookTxRunner ejecuta un hook entre la validación previa y la transacción,
// para simular escrituras de otro llamador en esa ventana.
type hookTxRunner struct {
	*fakeTxRunner
	before func()
}

func (t *hookTxRunner) RunMaintenance(ctx context.Context, fn func(r maintenance.Repos) error) error {
	if t.before != nil {
		t.before()
	}
	return t.fakeTxRunner.RunMaintenance(ctx, fn)
}

// ── armado del caso de uso sobre el mundo ─────────────────────────────────────

const (
	companyID   = "c-1"
	otherCoID   = "c-2"
	branchID    = "b-1"
	warehouseID = "w-1"
	vehicleID   = "v-1"
	employeeID  = "e-1"
	productID   = "p-1"
	repItemID   = "ri-1"
	userID      = "u-1"
)

// seedWorld crea la empresa mínima: una sucursal con bodega, un vehículo con un
// ítem de cambio, un empleado activo y un producto con 10 unidades a costo
// promedio $8 y precio de lista $10.
func seedWorld() *world {
	w := newWorld()
	w.branches[branchID] = &entity.Branch{ID: branchID, CompanyID: companyID, Name: "Principal"}
	w.wares[warehouseID] = &entity.Warehouse{ID: warehouseID, CompanyID: companyID, BranchID: branchID, Name: "Repuestos"}
	w.vehicles[vehicleID] = &entity.Vehicle{
		ID: vehicleID, CompanyID: companyID, BranchID: branchID,
		Plate: "ABC123", Status: entity.VehicleStatusActive,
		OdometerKM: decimal.NewFromInt(50000),
	}
	w.repItems[repItemID] = &entity.VehicleReplacementItem{
		ID: repItemID, VehicleID: vehicleID, Name: "Aceite motor",
		IntervalKM:   decimal.NewFromInt(10000),
		LastChangeKM: decimal.NewFromInt(40000),
	}
	w.employees[employeeID] = &entity.Employee{ID: employeeID, CompanyID: companyID, BranchID: branchID, Name: "Mecánico", Active: true}
	w.products[productID] = &entity.Product{
		ID: productID, CompanyID: companyID, SKU: "FIL-01", Name: "Filtro aceite",
		Price: decimal.NewFromInt(10), Cost: decimal.NewFromInt(8), Active: true,
	}
	w.stock[stockKey(productID, warehouseID)] = &entity.Stock{
		ProductID: productID, WarehouseID: warehouseID,
		Quantity: decimal.NewFromInt(10), AverageCost: decimal.NewFromInt(8),
	}
	return w
}

func buildUseCase(w *world) *maintenance.OrderUseCase {
	return buildUseCaseWithRunner(w, &fakeTxRunner{w})
}

func buildUseCaseWithRunner(w *world, tx maintenance.TxRunner) *maintenance.OrderUseCase {
	ledger := appinventory.NewStockLedgerUseCase(&fakeTxRunner{w}, &fakeProductRepo{w}, &fakeWarehouseRepo{w})
	return maintenance.NewOrderUseCase(
		tx,
		&fakeOrderRepo{w}, &fakeTimelineRepo{w}, &fakeWorkerRepo{w},
		&fakeServiceRepo{w}, &fakeMaterialRepo{w}, &fakeStockRepo{w},
		&fakeBranchRepo{w}, &fakeWarehouseRepo{w}, &fakeVehicleRepo{w},
		&fakeEmployeeRepo{w}, &fakeProductRepo{w},
		ledger, payables.NewDispatcher(),
	)
}
