package maintenance

import (
	"context"
	"time"

	"github.com/jhoicas/Flota-api/internal/application/dto"
	"github.com/jhoicas/Flota-api/internal/domain"
	"github.com/jhoicas/Flota-api/internal/domain/entity"
	domainmaint "github.com/jhoicas/Flota-api/internal/domain/maintenance"
	"github.com/jhoicas/Flota-api/internal/domain/repository"
)

// GetByID reconstruye la vista de la orden: hijos, línea de tiempo, costo
// (congelado si la orden se completó, estimación viva si no), minutos
// transcurridos (vivos para órdenes en curso) y la lista sin duplicados de
// ítems de cambio por kilometraje tocados por los materiales.
func (uc *OrderUseCase) GetByID(ctx context.Context, companyID, orderID string) (*dto.MaintenanceOrderResponse, error) {
	order, err := uc.loadOrder(companyID, orderID)
	if err != nil {
		return nil, err
	}
	workers, err := uc.workerRepo.ListByOrder(order.ID)
	if err != nil {
		return nil, err
	}
	services, err := uc.serviceRepo.ListByOrder(order.ID)
	if err != nil {
		return nil, err
	}
	materials, err := uc.materialRepo.ListByOrder(order.ID)
	if err != nil {
		return nil, err
	}
	timeline, err := uc.timelineRepo.ListByOrder(order.ID)
	if err != nil {
		return nil, err
	}
	productsByID, err := productsForMaterials(uc.productRepo, materials)
	if err != nil {
		return nil, err
	}

	cost := domainmaint.TotalCost(order, services, materials, productsByID)
	// Órdenes terminales devuelven siempre los minutos congelados, aunque sean
	// cero; solo las órdenes en curso recalculan en vivo desde la línea de tiempo.
	minutes := order.TotalTimeMinutes
	if !order.IsTerminal() {
		minutes = domainmaint.ElapsedMinutes(timeline, time.Now())
	}

	items, err := uc.replacementItemsTouched(materials)
	if err != nil {
		return nil, err
	}

	resp := &dto.MaintenanceOrderResponse{
		ID:               order.ID,
		OrderNumber:      order.OrderNumber,
		CompanyID:        order.CompanyID,
		BranchID:         order.BranchID,
		VehicleID:        order.VehicleID,
		Type:             order.Type,
		Status:           order.Status,
		OdometerKM:       order.OdometerKM,
		Description:      order.Description,
		Observations:     order.Observations,
		TotalCost:        cost.Amount,
		CostFrozen:       cost.Frozen,
		TotalTimeMinutes: minutes,
		Workers:          make([]dto.MaintenanceWorkerDTO, 0, len(workers)),
		Services:         make([]dto.MaintenanceServiceDTO, 0, len(services)),
		Materials:        make([]dto.MaintenanceMaterialDTO, 0, len(materials)),
		Timeline:         make([]dto.MaintenanceTimelineDTO, 0, len(timeline)),
		ReplacementItems: items,
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
	}
	for _, w := range workers {
		resp.Workers = append(resp.Workers, dto.MaintenanceWorkerDTO{
			EmployeeID:    w.EmployeeID,
			IsResponsible: w.IsResponsible,
		})
	}
	for _, s := range services {
		resp.Services = append(resp.Services, dto.MaintenanceServiceDTO{
			Description: s.Description,
			Cost:        s.Cost,
		})
	}
	for _, m := range materials {
		resp.Materials = append(resp.Materials, dto.MaintenanceMaterialDTO{
			ProductID:         m.ProductID,
			ReplacementItemID: m.ReplacementItemID,
			Quantity:          m.Quantity,
			UnitCost:          m.UnitCost,
			TotalCost:         m.TotalCost,
		})
	}
	for _, ev := range timeline {
		resp.Timeline = append(resp.Timeline, dto.MaintenanceTimelineDTO{
			Event:     ev.Event,
			Notes:     ev.Notes,
			CreatedAt: ev.CreatedAt,
			CreatedBy: ev.CreatedBy,
		})
	}
	return resp, nil
}

// ListByBranch lista órdenes de una sucursal (paginado).
func (uc *OrderUseCase) ListByBranch(ctx context.Context, companyID, branchID string, limit, offset int) ([]*entity.MaintenanceOrder, error) {
	branch, err := uc.branchRepo.GetByID(branchID)
	if err != nil || branch == nil {
		return nil, domain.ErrNotFound
	}
	if branch.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.orderRepo.ListByBranch(branchID, limit, offset)
}

// replacementItemsTouched devuelve, sin duplicados, los ítems de cambio por
// kilometraje referenciados por los materiales de la orden.
func (uc *OrderUseCase) replacementItemsTouched(materials []*entity.MaintenanceMaterial) ([]dto.VehicleReplacementItemDTO, error) {
	seen := make(map[string]bool)
	out := make([]dto.VehicleReplacementItemDTO, 0)
	for _, m := range materials {
		if m.ReplacementItemID == nil || seen[*m.ReplacementItemID] {
			continue
		}
		seen[*m.ReplacementItemID] = true
		item, err := uc.vehicleRepo.GetReplacementItem(*m.ReplacementItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			continue
		}
		out = append(out, dto.VehicleReplacementItemDTO{
			ID:           item.ID,
			Name:         item.Name,
			IntervalKM:   item.IntervalKM,
			LastChangeKM: item.LastChangeKM,
		})
	}
	return out, nil
}

// productsForMaterials carga los productos referenciados por los materiales (sin repetir).
func productsForMaterials(productRepo repository.ProductRepository, materials []*entity.MaintenanceMaterial) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(materials))
	for _, m := range materials {
		if _, ok := out[m.ProductID]; ok {
			continue
		}
		p, err := productRepo.GetByID(m.ProductID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			out[m.ProductID] = p
		}
	}
	return out, nil
}
