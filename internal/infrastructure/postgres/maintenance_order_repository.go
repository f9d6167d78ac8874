package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Flota-api/internal/domain"
	"github.com/jhoicas/Flota-api/internal/domain/entity"
	"github.com/jhoicas/Flota-api/internal/domain/repository"
)

var _ repository.MaintenanceOrderRepository = (*MaintenanceOrderRepo)(nil)

// MaintenanceOrderRepo implementación sobre PostgreSQL (usable con pool o tx).
type MaintenanceOrderRepo struct {
	q Querier
}

// NewMaintenanceOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaintenanceOrderRepository(q Querier) *MaintenanceOrderRepo {
	return &MaintenanceOrderRepo{q: q}
}

const orderColumns = `id, order_number, company_id, branch_id, vehicle_id, type, status,
		odometer_km, description, observations, total_cost, total_time_minutes,
		attachment_url, created_by, created_at, updated_at, deleted_at`

// Create persiste una nueva orden. El número de orden es único por sucursal+año.
func (r *MaintenanceOrderRepo) Create(order *entity.MaintenanceOrder) error {
	query := `
		INSERT INTO maintenance_orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.OrderNumber, order.CompanyID, order.BranchID, order.VehicleID,
		order.Type, order.Status, order.OdometerKM, order.Description, order.Observations,
		order.TotalCost, order.TotalTimeMinutes, nullIfEmpty(order.AttachmentURL),
		order.CreatedBy, order.CreatedAt, order.UpdatedAt, order.DeletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert maintenance order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID, excluyendo las borradas lógicamente.
func (r *MaintenanceOrderRepo) GetByID(id string) (*entity.MaintenanceOrder, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM maintenance_orders WHERE id = $1 AND deleted_at IS NULL`
	return scanOrder(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene la orden bloqueando su fila (SELECT FOR UPDATE). Dos
// transiciones concurrentes sobre la misma orden se serializan aquí.
func (r *MaintenanceOrderRepo) GetForUpdate(id string) (*entity.MaintenanceOrder, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM maintenance_orders WHERE id = $1 AND deleted_at IS NULL
		FOR UPDATE`
	return scanOrder(r.q.QueryRow(context.Background(), query, id))
}

// Update actualiza los campos mutables de la orden.
func (r *MaintenanceOrderRepo) Update(order *entity.MaintenanceOrder) error {
	query := `
		UPDATE maintenance_orders
		SET status = $2, odometer_km = $3, description = $4, observations = $5,
		    total_cost = $6, total_time_minutes = $7, attachment_url = $8, updated_at = $9
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Status, order.OdometerKM, order.Description, order.Observations,
		order.TotalCost, order.TotalTimeMinutes, nullIfEmpty(order.AttachmentURL), order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update maintenance order: %w", err)
	}
	return nil
}

// SoftDelete marca la orden como borrada. No toca hijos, movimientos ni cuentas.
func (r *MaintenanceOrderRepo) SoftDelete(id string, at time.Time) error {
	query := `UPDATE maintenance_orders SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query, id, at)
	if err != nil {
		return fmt.Errorf("soft delete maintenance order: %w", err)
	}
	return nil
}

// ListByBranch lista las órdenes activas de una sucursal, más recientes primero.
func (r *MaintenanceOrderRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.MaintenanceOrder, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM maintenance_orders
		WHERE branch_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list maintenance orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.MaintenanceOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.MaintenanceOrder, error) {
	var o entity.MaintenanceOrder
	var attachment *string
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.CompanyID, &o.BranchID, &o.VehicleID, &o.Type, &o.Status,
		&o.OdometerKM, &o.Description, &o.Observations, &o.TotalCost, &o.TotalTimeMinutes,
		&attachment, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt, &o.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan maintenance order: %w", err)
	}
	if attachment != nil {
		o.AttachmentURL = *attachment
	}
	return &o, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
