package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Flota-api/internal/domain/entity"
	"github.com/jhoicas/Flota-api/internal/domain/repository"
)

var _ repository.VehicleRepository = (*VehicleRepo)(nil)

// VehicleRepo implementación del puerto VehicleRepository sobre PostgreSQL
// (usable con pool o tx). Cubre vehículos, ítems de cambio por kilometraje y
// el historial de estados.
type VehicleRepo struct {
	q Querier
}

// NewVehicleRepository construye el adaptador de persistencia para vehículos.
func NewVehicleRepository(q Querier) *VehicleRepo {
	return &VehicleRepo{q: q}
}

// GetByID obtiene un vehículo por ID.
func (r *VehicleRepo) GetByID(id string) (*entity.Vehicle, error) {
	query := `
		SELECT id, company_id, branch_id, plate, model, status, odometer_km, created_at, updated_at
		FROM vehicles WHERE id = $1`
	var v entity.Vehicle
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.CompanyID, &v.BranchID, &v.Plate, &v.Model, &v.Status,
		&v.OdometerKM, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return &v, nil
}

// UpdateStatus cambia el estado del vehículo; si odometerKM no es nil también
// actualiza el kilometraje.
func (r *VehicleRepo) UpdateStatus(id, status string, odometerKM *decimal.Decimal, at time.Time) error {
	query := `
		UPDATE vehicles
		SET status = $2, odometer_km = COALESCE($3, odometer_km), updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status, odometerKM, at)
	if err != nil {
		return fmt.Errorf("update vehicle status: %w", err)
	}
	return nil
}

// CreateStatusHistory registra un cambio de estado (append-only).
func (r *VehicleRepo) CreateStatusHistory(h *entity.VehicleStatusHistory) error {
	query := `
		INSERT INTO vehicle_status_history (id, vehicle_id, status, odometer_km, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		h.ID, h.VehicleID, h.Status, h.OdometerKM, h.Notes, h.CreatedAt, h.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert vehicle status history: %w", err)
	}
	return nil
}

// GetReplacementItem obtiene un ítem de cambio por ID.
func (r *VehicleRepo) GetReplacementItem(id string) (*entity.VehicleReplacementItem, error) {
	query := `
		SELECT id, vehicle_id, name, interval_km, last_change_km, created_at, updated_at
		FROM vehicle_replacement_items WHERE id = $1`
	var item entity.VehicleReplacementItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&item.ID, &item.VehicleID, &item.Name, &item.IntervalKM, &item.LastChangeKM,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get replacement item: %w", err)
	}
	return &item, nil
}

// ListReplacementItems lista los ítems de cambio de un vehículo.
func (r *VehicleRepo) ListReplacementItems(vehicleID string) ([]*entity.VehicleReplacementItem, error) {
	query := `
		SELECT id, vehicle_id, name, interval_km, last_change_km, created_at, updated_at
		FROM vehicle_replacement_items WHERE vehicle_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("list replacement items: %w", err)
	}
	defer rows.Close()

	var items []*entity.VehicleReplacementItem
	for rows.Next() {
		var item entity.VehicleReplacementItem
		if err := rows.Scan(
			&item.ID, &item.VehicleID, &item.Name, &item.IntervalKM, &item.LastChangeKM,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan replacement item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// UpdateReplacementItemChange registra el cambio del ítem al kilometraje dado.
func (r *VehicleRepo) UpdateReplacementItemChange(id string, km decimal.Decimal, at time.Time) error {
	query := `
		UPDATE vehicle_replacement_items
		SET last_change_km = $2, updated_at = $3
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, km, at)
	if err != nil {
		return fmt.Errorf("update replacement item: %w", err)
	}
	return nil
}
