package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Flota-api/internal/application/dto"
	"github.com/jhoicas/Flota-api/internal/domain"
	"github.com/jhoicas/Flota-api/internal/domain/entity"
	domainmaint "github.com/jhoicas/Flota-api/internal/domain/maintenance"
)

// loadOrder obtiene la orden validando empresa. nil con ErrNotFound si no existe
// o está borrada lógicamente.
func (uc *OrderUseCase) loadOrder(companyID, orderID string) (*entity.MaintenanceOrder, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// lockOrder relee la orden bajo bloqueo de fila, dentro de la transacción del
// caller. La lectura previa fuera de la transacción es solo consultiva: la
// precondición que vale es la que se revalida sobre esta fila bloqueada, igual
// que con el stock.
func lockOrder(r Repos, companyID, orderID string) (*entity.MaintenanceOrder, error) {
	order, err := r.Orders.GetForUpdate(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// Start pasa la orden a IN_PROGRESS. Desde OPEN deja un evento STARTED; desde
// PAUSED deja RESUMED. Cualquier otro estado es una transición ilegal.
func (uc *OrderUseCase) Start(ctx context.Context, companyID, userID, orderID, notes string) (*dto.MaintenanceOrderResponse, error) {
	order, err := uc.loadOrder(companyID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.OrderStatusOpen && order.Status != entity.OrderStatusPaused {
		return nil, fmt.Errorf("%w: solo órdenes abiertas o pausadas pueden iniciarse", domain.ErrPreconditionFailed)
	}

	now := time.Now()
	err = uc.txRunner.RunMaintenance(ctx, func(r Repos) error {
		order, err = lockOrder(r, companyID, orderID)
		if err != nil {
			return err
		}
		if order.Status != entity.OrderStatusOpen && order.Status != entity.OrderStatusPaused {
			return fmt.Errorf("%w: solo órdenes abiertas o pausadas pueden iniciarse", domain.ErrPreconditionFailed)
		}
		event := entity.TimelineEventStarted
		if order.Status == entity.OrderStatusPaused {
			event = entity.TimelineEventResumed
		}
		order.Status = entity.OrderStatusInProgress
		order.UpdatedAt = now
		if err := r.Orders.Update(order); err != nil {
			return err
		}
		return r.Timeline.Create(&entity.MaintenanceTimeline{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			Event:     event,
			Notes:     notes,
			CreatedAt: now,
			CreatedBy: userID,
		})
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, companyID, order.ID)
}

// Pause detiene el conteo de tiempo de una orden en progreso.
func (uc *OrderUseCase) Pause(ctx context.Context, companyID, userID, orderID, notes string) (*dto.MaintenanceOrderResponse, error) {
	order, err := uc.loadOrder(companyID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != entity.OrderStatusInProgress {
		return nil, fmt.Errorf("%w: solo órdenes en progreso pueden pausarse", domain.ErrPreconditionFailed)
	}

	now := time.Now()
	err = uc.txRunner.RunMaintenance(ctx, func(r Repos) error {
		order, err = lockOrder(r, companyID, orderID)
		if err != nil {
			return err
		}
		if order.Status != entity.OrderStatusInProgress {
			return fmt.Errorf("%w: solo órdenes en progreso pueden pausarse", domain.ErrPreconditionFailed)
		}
		order.Status = entity.OrderStatusPaused
		order.UpdatedAt = now
		if err := r.Orders.Update(order); err != nil {
			return err
		}
		return r.Timeline.Create(&entity.MaintenanceTimeline{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			Event:     entity.TimelineEventPaused,
			Notes:     notes,
			CreatedAt: now,
			CreatedBy: userID,
		})
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, companyID, order.ID)
}

// Complete cierra la orden: congela minutos y costo total, devuelve el vehículo
// a ACTIVE (conservando el odómetro de ingreso si lo hubo) y, si el costo
// congelado es mayor a cero, crea la cuenta por pagar en la misma transacción.
// Si la cuenta no puede crearse, la orden no queda completada.
func (uc *OrderUseCase) Complete(ctx context.Context, companyID, userID, orderID, notes string) (*dto.MaintenanceOrderResponse, error) {
	order, err := uc.loadOrder(companyID, orderID)
	if err != nil {
		return nil, err
	}
	if order.IsTerminal() {
		return nil, fmt.Errorf("%w: la orden ya está completada o cancelada", domain.ErrPreconditionFailed)
	}

	now := time.Now()
	err = uc.txRunner.RunMaintenance(ctx, func(r Repos) error {
		order, err = lockOrder(r, companyID, orderID)
		if err != nil {
			return err
		}
		if order.IsTerminal() {
			return fmt.Errorf("%w: la orden ya está completada o cancelada", domain.ErrPreconditionFailed)
		}
		if err := r.Timeline.Create(&entity.MaintenanceTimeline{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			Event:     entity.TimelineEventCompleted,
			Notes:     notes,
			CreatedAt: now,
			CreatedBy: userID,
		}); err != nil {
			return err
		}
		events, err := r.Timeline.ListByOrder(order.ID)
		if err != nil {
			return err
		}
		services, err := r.Services.ListByOrder(order.ID)
		if err != nil {
			return err
		}
		materials, err := r.Materials.ListByOrder(order.ID)
		if err != nil {
			return err
		}
		productsByID, err := productsForMaterials(r.Products, materials)
		if err != nil {
			return err
		}
		cost := domainmaint.TotalCost(order, services, materials, productsByID)

		order.Status = entity.OrderStatusCompleted
		order.TotalCost = cost.Amount
		order.TotalTimeMinutes = domainmaint.ElapsedMinutes(events, now)
		order.UpdatedAt = now
		if err := r.Orders.Update(order); err != nil {
			return err
		}
		// Vehículo vuelve a ACTIVE; se conserva el odómetro de ingreso si existe
		if err := r.Vehicles.UpdateStatus(order.VehicleID, entity.VehicleStatusActive, order.OdometerKM, now); err != nil {
			return err
		}
		if err := r.Vehicles.CreateStatusHistory(&entity.VehicleStatusHistory{
			ID:         uuid.New().String(),
			VehicleID:  order.VehicleID,
			Status:     entity.VehicleStatusActive,
			OdometerKM: order.OdometerKM,
			Notes:      "Mantenimiento " + order.OrderNumber + " completado",
			CreatedAt:  now,
			CreatedBy:  userID,
		}); err != nil {
			return err
		}
		if cost.Amount.GreaterThan(decimal.Zero) {
			if _, err := uc.dispatcher.CreateForOrderInTx(r.Payables, order, cost.Amount, now, userID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, companyID, order.ID)
}

// Cancel cancela la orden y devuelve el vehículo a ACTIVE. El stock ya
// consumido NO se repone: los materiales se consideran usados desde que la
// orden los descontó (política de negocio, no un olvido).
func (uc *OrderUseCase) Cancel(ctx context.Context, companyID, userID, orderID, notes string) (*dto.MaintenanceOrderResponse, error) {
	order, err := uc.loadOrder(companyID, orderID)
	if err != nil {
		return nil, err
	}
	if order.IsTerminal() {
		return nil, fmt.Errorf("%w: la orden ya está completada o cancelada", domain.ErrPreconditionFailed)
	}

	now := time.Now()
	err = uc.txRunner.RunMaintenance(ctx, func(r Repos) error {
		order, err = lockOrder(r, companyID, orderID)
		if err != nil {
			return err
		}
		if order.IsTerminal() {
			return fmt.Errorf("%w: la orden ya está completada o cancelada", domain.ErrPreconditionFailed)
		}
		if err := r.Timeline.Create(&entity.MaintenanceTimeline{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			Event:     entity.TimelineEventCancelled,
			Notes:     notes,
			CreatedAt: now,
			CreatedBy: userID,
		}); err != nil {
			return err
		}
		order.Status = entity.OrderStatusCancelled
		order.UpdatedAt = now
		if err := r.Orders.Update(order); err != nil {
			return err
		}
		if err := r.Vehicles.UpdateStatus(order.VehicleID, entity.VehicleStatusActive, nil, now); err != nil {
			return err
		}
		return r.Vehicles.CreateStatusHistory(&entity.VehicleStatusHistory{
			ID:        uuid.New().String(),
			VehicleID: order.VehicleID,
			Status:    entity.VehicleStatusActive,
			Notes:     "Mantenimiento " + order.OrderNumber + " cancelado",
			CreatedAt: now,
			CreatedBy: userID,
		})
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, companyID, order.ID)
}

// Remove hace borrado lógico de la orden, en cualquier estado. No borra hijos,
// movimientos de stock ni cuentas por pagar.
func (uc *OrderUseCase) Remove(ctx context.Context, companyID, orderID string) error {
	order, err := uc.loadOrder(companyID, orderID)
	if err != nil {
		return err
	}
	return uc.orderRepo.SoftDelete(order.ID, time.Now())
}
