package repository

import "github.com/jhoicas/Flota-api/internal/domain/entity"

// AccountPayableRepository define el puerto de persistencia para cuentas por pagar.
type AccountPayableRepository interface {
	Create(payable *entity.AccountPayable) error
	ListByOrigin(originType, originID string) ([]*entity.AccountPayable, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.AccountPayable, error)
}
