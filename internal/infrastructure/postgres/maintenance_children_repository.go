package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Flota-api/internal/domain/entity"
	"github.com/jhoicas/Flota-api/internal/domain/repository"
)

var _ repository.MaintenanceWorkerRepository = (*MaintenanceWorkerRepo)(nil)
var _ repository.MaintenanceServiceRepository = (*MaintenanceServiceRepo)(nil)
var _ repository.MaintenanceMaterialRepository = (*MaintenanceMaterialRepo)(nil)

// Adaptadores de las colecciones hijas de una orden. En actualizaciones se
// reemplazan completas: DeleteByOrder + CreateBatch dentro de la misma tx.

// MaintenanceWorkerRepo implementación sobre PostgreSQL (usable con pool o tx).
type MaintenanceWorkerRepo struct {
	q Querier
}

// NewMaintenanceWorkerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaintenanceWorkerRepository(q Querier) *MaintenanceWorkerRepo {
	return &MaintenanceWorkerRepo{q: q}
}

// CreateBatch inserta los empleados asignados a la orden.
func (r *MaintenanceWorkerRepo) CreateBatch(workers []*entity.MaintenanceWorker) error {
	query := `
		INSERT INTO maintenance_workers (id, order_id, employee_id, is_responsible)
		VALUES ($1, $2, $3, $4)`
	for _, w := range workers {
		if _, err := r.q.Exec(context.Background(), query, w.ID, w.OrderID, w.EmployeeID, w.IsResponsible); err != nil {
			return fmt.Errorf("insert maintenance worker: %w", err)
		}
	}
	return nil
}

// DeleteByOrder borra los empleados asignados (reemplazo completo).
func (r *MaintenanceWorkerRepo) DeleteByOrder(orderID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM maintenance_workers WHERE order_id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("delete maintenance workers: %w", err)
	}
	return nil
}

// ListByOrder lista los empleados asignados a la orden.
func (r *MaintenanceWorkerRepo) ListByOrder(orderID string) ([]*entity.MaintenanceWorker, error) {
	query := `
		SELECT id, order_id, employee_id, is_responsible
		FROM maintenance_workers WHERE order_id = $1`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list maintenance workers: %w", err)
	}
	defer rows.Close()

	var workers []*entity.MaintenanceWorker
	for rows.Next() {
		var w entity.MaintenanceWorker
		if err := rows.Scan(&w.ID, &w.OrderID, &w.EmployeeID, &w.IsResponsible); err != nil {
			return nil, fmt.Errorf("scan maintenance worker: %w", err)
		}
		workers = append(workers, &w)
	}
	return workers, rows.Err()
}

// MaintenanceServiceRepo implementación sobre PostgreSQL (usable con pool o tx).
type MaintenanceServiceRepo struct {
	q Querier
}

// NewMaintenanceServiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaintenanceServiceRepository(q Querier) *MaintenanceServiceRepo {
	return &MaintenanceServiceRepo{q: q}
}

// CreateBatch inserta los servicios de mano de obra de la orden.
func (r *MaintenanceServiceRepo) CreateBatch(services []*entity.MaintenanceService) error {
	query := `
		INSERT INTO maintenance_services (id, order_id, description, cost)
		VALUES ($1, $2, $3, $4)`
	for _, s := range services {
		if _, err := r.q.Exec(context.Background(), query, s.ID, s.OrderID, s.Description, s.Cost); err != nil {
			return fmt.Errorf("insert maintenance service: %w", err)
		}
	}
	return nil
}

// DeleteByOrder borra los servicios (reemplazo completo).
func (r *MaintenanceServiceRepo) DeleteByOrder(orderID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM maintenance_services WHERE order_id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("delete maintenance services: %w", err)
	}
	return nil
}

// ListByOrder lista los servicios de la orden.
func (r *MaintenanceServiceRepo) ListByOrder(orderID string) ([]*entity.MaintenanceService, error) {
	query := `
		SELECT id, order_id, description, cost
		FROM maintenance_services WHERE order_id = $1`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list maintenance services: %w", err)
	}
	defer rows.Close()

	var services []*entity.MaintenanceService
	for rows.Next() {
		var s entity.MaintenanceService
		if err := rows.Scan(&s.ID, &s.OrderID, &s.Description, &s.Cost); err != nil {
			return nil, fmt.Errorf("scan maintenance service: %w", err)
		}
		services = append(services, &s)
	}
	return services, rows.Err()
}

// MaintenanceMaterialRepo implementación sobre PostgreSQL (usable con pool o tx).
type MaintenanceMaterialRepo struct {
	q Querier
}

// NewMaintenanceMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaintenanceMaterialRepository(q Querier) *MaintenanceMaterialRepo {
	return &MaintenanceMaterialRepo{q: q}
}

// CreateBatch inserta los materiales consumidos por la orden.
func (r *MaintenanceMaterialRepo) CreateBatch(materials []*entity.MaintenanceMaterial) error {
	query := `
		INSERT INTO maintenance_materials (id, order_id, product_id, replacement_item_id, quantity, unit_cost, total_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, m := range materials {
		if _, err := r.q.Exec(context.Background(), query,
			m.ID, m.OrderID, m.ProductID, m.ReplacementItemID, m.Quantity, m.UnitCost, m.TotalCost,
		); err != nil {
			return fmt.Errorf("insert maintenance material: %w", err)
		}
	}
	return nil
}

// DeleteByOrder borra los materiales (reemplazo completo; el consumo de stock
// previo no se revierte).
func (r *MaintenanceMaterialRepo) DeleteByOrder(orderID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM maintenance_materials WHERE order_id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("delete maintenance materials: %w", err)
	}
	return nil
}

// ListByOrder lista los materiales de la orden.
func (r *MaintenanceMaterialRepo) ListByOrder(orderID string) ([]*entity.MaintenanceMaterial, error) {
	query := `
		SELECT id, order_id, product_id, replacement_item_id, quantity, unit_cost, total_cost
		FROM maintenance_materials WHERE order_id = $1`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list maintenance materials: %w", err)
	}
	defer rows.Close()

	var materials []*entity.MaintenanceMaterial
	for rows.Next() {
		var m entity.MaintenanceMaterial
		if err := rows.Scan(&m.ID, &m.OrderID, &m.ProductID, &m.ReplacementItemID, &m.Quantity, &m.UnitCost, &m.TotalCost); err != nil {
			return nil, fmt.Errorf("scan maintenance material: %w", err)
		}
		materials = append(materials, &m)
	}
	return materials, rows.Err()
}
