package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Flota-api/internal/domain/entity"
	"github.com/jhoicas/Flota-api/internal/domain/repository"
)

var _ repository.MaintenanceLabelRepository = (*MaintenanceLabelRepo)(nil)

// MaintenanceLabelRepo implementación sobre PostgreSQL (usable con pool o tx).
type MaintenanceLabelRepo struct {
	q Querier
}

// NewMaintenanceLabelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaintenanceLabelRepository(q Querier) *MaintenanceLabelRepo {
	return &MaintenanceLabelRepo{q: q}
}

// Create persiste la etiqueta con sus ítems.
func (r *MaintenanceLabelRepo) Create(label *entity.MaintenanceLabel, items []*entity.MaintenanceLabelItem) error {
	query := `
		INSERT INTO maintenance_labels (id, order_id, vehicle_id, odometer_km, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(context.Background(), query,
		label.ID, label.OrderID, label.VehicleID, label.OdometerKM, label.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert maintenance label: %w", err)
	}
	itemQuery := `
		INSERT INTO maintenance_label_items (id, label_id, replacement_item_id)
		VALUES ($1, $2, $3)`
	for _, item := range items {
		if _, err := r.q.Exec(context.Background(), itemQuery, item.ID, item.LabelID, item.ReplacementItemID); err != nil {
			return fmt.Errorf("insert maintenance label item: %w", err)
		}
	}
	return nil
}

// GetByOrder obtiene la etiqueta de una orden con sus ítems (nil si no hay).
func (r *MaintenanceLabelRepo) GetByOrder(orderID string) (*entity.MaintenanceLabel, []*entity.MaintenanceLabelItem, error) {
	query := `
		SELECT id, order_id, vehicle_id, odometer_km, created_at
		FROM maintenance_labels WHERE order_id = $1`
	var label entity.MaintenanceLabel
	err := r.q.QueryRow(context.Background(), query, orderID).Scan(
		&label.ID, &label.OrderID, &label.VehicleID, &label.OdometerKM, &label.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get maintenance label: %w", err)
	}

	rows, err := r.q.Query(context.Background(),
		`SELECT id, label_id, replacement_item_id FROM maintenance_label_items WHERE label_id = $1`, label.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list label items: %w", err)
	}
	defer rows.Close()

	var items []*entity.MaintenanceLabelItem
	for rows.Next() {
		var item entity.MaintenanceLabelItem
		if err := rows.Scan(&item.ID, &item.LabelID, &item.ReplacementItemID); err != nil {
			return nil, nil, fmt.Errorf("scan label item: %w", err)
		}
		items = append(items, &item)
	}
	return &label, items, rows.Err()
}
