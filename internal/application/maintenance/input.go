package maintenance

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Flota-api/internal/application/dto"
)

// WorkerInput empleado asignado a la orden.
type WorkerInput struct {
	EmployeeID    string
	IsResponsible bool
}

// ServiceInput servicio de mano de obra.
type ServiceInput struct {
	Description string
	Cost        decimal.Decimal
}

// MaterialInput material a consumir del stock de la sucursal. UnitCost en cero
// significa "resolver al momento del consumo" (costo promedio o precio de lista).
type MaterialInput struct {
	ProductID         string
	ReplacementItemID *string
	Quantity          decimal.Decimal
	UnitCost          decimal.Decimal
}

// CreateOrderInput entrada para crear una orden de mantenimiento.
type CreateOrderInput struct {
	VehicleID    string
	BranchID     string
	Type         string
	OdometerKM   *decimal.Decimal
	Description  string
	Observations string
	Workers      []WorkerInput
	Services     []ServiceInput
	Materials    []MaterialInput
}

// UpdateOrderInput entrada para actualizar una orden no terminal. Las
// colecciones hijas en nil no se tocan; si vienen (aunque vacías) se
// reemplazan completas.
type UpdateOrderInput struct {
	Description  *string
	Observations *string
	Workers      *[]WorkerInput
	Services     *[]ServiceInput
	Materials    *[]MaterialInput
}

// CreateInputFromRequest adapta el request HTTP al caso de uso.
func CreateInputFromRequest(in dto.CreateMaintenanceOrderRequest) CreateOrderInput {
	return CreateOrderInput{
		VehicleID:    in.VehicleID,
		BranchID:     in.BranchID,
		Type:         in.Type,
		OdometerKM:   in.OdometerKM,
		Description:  in.Description,
		Observations: in.Observations,
		Workers:      workersFromRequest(in.Workers),
		Services:     servicesFromRequest(in.Services),
		Materials:    materialsFromRequest(in.Materials),
	}
}

// UpdateInputFromRequest adapta el request HTTP al caso de uso.
func UpdateInputFromRequest(in dto.UpdateMaintenanceOrderRequest) UpdateOrderInput {
	out := UpdateOrderInput{
		Description:  in.Description,
		Observations: in.Observations,
	}
	if in.Workers != nil {
		w := workersFromRequest(*in.Workers)
		out.Workers = &w
	}
	if in.Services != nil {
		s := servicesFromRequest(*in.Services)
		out.Services = &s
	}
	if in.Materials != nil {
		m := materialsFromRequest(*in.Materials)
		out.Materials = &m
	}
	return out
}

func workersFromRequest(in []dto.MaintenanceWorkerInput) []WorkerInput {
	out := make([]WorkerInput, 0, len(in))
	for _, w := range in {
		out = append(out, WorkerInput{EmployeeID: w.EmployeeID, IsResponsible: w.IsResponsible})
	}
	return out
}

func servicesFromRequest(in []dto.MaintenanceServiceInput) []ServiceInput {
	out := make([]ServiceInput, 0, len(in))
	for _, s := range in {
		out = append(out, ServiceInput{Description: s.Description, Cost: s.Cost})
	}
	return out
}

func materialsFromRequest(in []dto.MaintenanceMaterialInput) []MaterialInput {
	out := make([]MaterialInput, 0, len(in))
	for _, m := range in {
		out = append(out, MaterialInput{
			ProductID:         m.ProductID,
			ReplacementItemID: m.ReplacementItemID,
			Quantity:          m.Quantity,
			UnitCost:          m.UnitCost,
		})
	}
	return out
}
