package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Flota-api/internal/domain/repository"
)

var _ repository.OrderCounterRepository = (*OrderCounterRepo)(nil)

// OrderCounterRepo asigna consecutivos de órdenes por sucursal y año sobre una
// tabla de contadores. El UPSERT incrementa de forma atómica: dos creaciones
// concurrentes en la misma sucursal/año se serializan en la fila del contador
// y nunca reciben el mismo número.
type OrderCounterRepo struct {
	q Querier
}

// NewOrderCounterRepository construye el adaptador. Pasar la tx de creación de la orden.
func NewOrderCounterRepository(q Querier) *OrderCounterRepo {
	return &OrderCounterRepo{q: q}
}

// NextSequence devuelve el siguiente consecutivo para (empresa, sucursal, año).
func (r *OrderCounterRepo) NextSequence(companyID, branchID string, year int) (int, error) {
	query := `
		INSERT INTO maintenance_order_counters (company_id, branch_id, year, last_seq)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (company_id, branch_id, year)
		DO UPDATE SET last_seq = maintenance_order_counters.last_seq + 1
		RETURNING last_seq`
	var seq int
	err := r.q.QueryRow(context.Background(), query, companyID, branchID, year).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next order sequence: %w", err)
	}
	return seq, nil
}
