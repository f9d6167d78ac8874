package payables

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Flota-api/internal/domain/entity"
	"github.com/jhoicas/Flota-api/internal/domain/repository"
)

// Dispatcher crea la cuenta por pagar que genera una orden de mantenimiento
// completada. Se invoca únicamente dentro de la transacción que completa la
// orden: si la cuenta no puede crearse, la orden tampoco queda completada.
type Dispatcher struct{}

// NewDispatcher construye el despachador.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// CreateForOrderInTx crea la cuenta por pagar (origen MAINTENANCE, vencimiento
// inmediato) usando el repositorio atado a la transacción del caller.
func (d *Dispatcher) CreateForOrderInTx(
	payableRepo repository.AccountPayableRepository,
	order *entity.MaintenanceOrder,
	amount decimal.Decimal,
	now time.Time,
	userID string,
) (*entity.AccountPayable, error) {
	orderID := order.ID
	payable := &entity.AccountPayable{
		ID:          uuid.New().String(),
		CompanyID:   order.CompanyID,
		BranchID:    order.BranchID,
		Description: fmt.Sprintf("Orden de mantenimiento %s", order.OrderNumber),
		Amount:      amount,
		DueDate:     now,
		OriginType:  entity.PayableOriginMaintenance,
		OriginID:    &orderID,
		Status:      entity.PayableStatusPending,
		CreatedAt:   now,
		CreatedBy:   userID,
	}
	if err := payableRepo.Create(payable); err != nil {
		return nil, err
	}
	return payable, nil
}
