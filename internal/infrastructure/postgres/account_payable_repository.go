package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Flota-api/internal/domain/entity"
	"github.com/jhoicas/Flota-api/internal/domain/repository"
)

var _ repository.AccountPayableRepository = (*AccountPayableRepo)(nil)

// AccountPayableRepo implementación sobre PostgreSQL (usable con pool o tx).
type AccountPayableRepo struct {
	q Querier
}

// NewAccountPayableRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountPayableRepository(q Querier) *AccountPayableRepo {
	return &AccountPayableRepo{q: q}
}

const payableColumns = `id, company_id, branch_id, description, amount, due_date, origin_type, origin_id, status, created_at, created_by`

// Create persiste una cuenta por pagar.
func (r *AccountPayableRepo) Create(payable *entity.AccountPayable) error {
	query := `
		INSERT INTO account_payables (` + payableColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		payable.ID, payable.CompanyID, payable.BranchID, payable.Description,
		payable.Amount, payable.DueDate, payable.OriginType, payable.OriginID,
		payable.Status, payable.CreatedAt, payable.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert account payable: %w", err)
	}
	return nil
}

// ListByOrigin lista las cuentas generadas por un origen (ej. una orden de mantenimiento).
func (r *AccountPayableRepo) ListByOrigin(originType, originID string) ([]*entity.AccountPayable, error) {
	query := `
		SELECT ` + payableColumns + `
		FROM account_payables WHERE origin_type = $1 AND origin_id = $2
		ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, originType, originID)
	if err != nil {
		return nil, fmt.Errorf("list payables by origin: %w", err)
	}
	defer rows.Close()
	return scanPayables(rows)
}

// ListByCompany lista las cuentas por pagar de una empresa (paginado).
func (r *AccountPayableRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.AccountPayable, error) {
	query := `
		SELECT ` + payableColumns + `
		FROM account_payables WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list payables: %w", err)
	}
	defer rows.Close()
	return scanPayables(rows)
}

func scanPayables(rows pgx.Rows) ([]*entity.AccountPayable, error) {
	var payables []*entity.AccountPayable
	for rows.Next() {
		var p entity.AccountPayable
		if err := rows.Scan(
			&p.ID, &p.CompanyID, &p.BranchID, &p.Description,
			&p.Amount, &p.DueDate, &p.OriginType, &p.OriginID,
			&p.Status, &p.CreatedAt, &p.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan account payable: %w", err)
		}
		payables = append(payables, &p)
	}
	return payables, rows.Err()
}
