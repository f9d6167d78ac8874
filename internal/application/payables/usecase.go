package payables

import (
	"context"

	"github.com/jhoicas/Flota-api/internal/domain/entity"
	"github.com/jhoicas/Flota-api/internal/domain/repository"
)

// PayablesUseCase consultas de cuentas por pagar.
type PayablesUseCase struct {
	payableRepo repository.AccountPayableRepository
}

// NewPayablesUseCase construye el caso de uso.
func NewPayablesUseCase(payableRepo repository.AccountPayableRepository) *PayablesUseCase {
	return &PayablesUseCase{payableRepo: payableRepo}
}

// ListByCompany lista las cuentas por pagar de la empresa.
func (uc *PayablesUseCase) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.AccountPayable, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.payableRepo.ListByCompany(companyID, limit, offset)
}

// ListByOrder lista las cuentas por pagar originadas por una orden de mantenimiento.
func (uc *PayablesUseCase) ListByOrder(ctx context.Context, orderID string) ([]*entity.AccountPayable, error) {
	return uc.payableRepo.ListByOrigin(entity.PayableOriginMaintenance, orderID)
}
