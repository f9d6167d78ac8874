package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Flota-api/internal/application/dto"
	"github.com/jhoicas/Flota-api/internal/application/maintenance"
)

// MaintenanceHandler maneja las peticiones HTTP de órdenes de mantenimiento (protegido).
type MaintenanceHandler struct {
	uc *maintenance.OrderUseCase
}

// NewMaintenanceHandler construye el handler.
func NewMaintenanceHandler(uc *maintenance.OrderUseCase) *MaintenanceHandler {
	return &MaintenanceHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de mantenimiento
// @Description  Crea la orden en estado OPEN, asigna el consecutivo OM-año-seq,
//
//	consume los materiales del stock de la sucursal y pone el vehículo
//	en mantenimiento.
//
// @Tags         maintenance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMaintenanceOrderRequest  true  "vehicle_id, branch_id, type, workers, services, materials"
// @Success      201   {object}  dto.MaintenanceOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/maintenance/orders [post]
func (h *MaintenanceHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateMaintenanceOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.CreateOrder(c.Context(), companyID, userID, maintenance.CreateInputFromRequest(in))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID godoc
// @Summary      Detalle de una orden
// @Description  Devuelve la orden con trabajadores, servicios, materiales, línea
//
//	de tiempo, costo (congelado o estimado) y minutos acumulados en vivo.
//
// @Tags         maintenance
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.MaintenanceOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/maintenance/orders/{id} [get]
func (h *MaintenanceHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	resp, err := h.uc.GetByID(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(resp)
}

// List godoc
// @Summary      Listar órdenes por sucursal
// @Tags         maintenance
// @Security     Bearer
// @Produce      json
// @Param        branch_id  query  string  true   "Sucursal"
// @Param        limit      query  int     false  "Máximo de filas (default 50)"
// @Param        offset     query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.MaintenanceOrderSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/maintenance/orders [get]
func (h *MaintenanceHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	branchID := c.Query("branch_id")
	if branchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "branch_id requerido"})
	}
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	orders, err := h.uc.ListByBranch(c.Context(), companyID, branchID, limit, offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.MaintenanceOrderSummaryDTO, 0, len(orders))
	for _, o := range orders {
		out = append(out, dto.MaintenanceOrderSummaryDTO{
			ID:          o.ID,
			OrderNumber: o.OrderNumber,
			VehicleID:   o.VehicleID,
			Type:        o.Type,
			Status:      o.Status,
			Description: o.Description,
			TotalCost:   o.TotalCost,
			CreatedAt:   o.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "orders": out})
}

// Update godoc
// @Summary      Actualizar una orden no terminal
// @Description  Reemplaza las colecciones hijas enviadas; los materiales nuevos
//
//	se consumen del stock. Órdenes COMPLETED o CANCELLED no se editan.
//
// @Tags         maintenance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                             true  "ID de la orden"
// @Param        body  body  dto.UpdateMaintenanceOrderRequest  true  "Campos a actualizar"
// @Success      200  {object}  dto.MaintenanceOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/maintenance/orders/{id} [put]
func (h *MaintenanceHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.UpdateMaintenanceOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.UpdateOrder(c.Context(), companyID, userID, c.Params("id"), maintenance.UpdateInputFromRequest(in))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(resp)
}

// Start godoc
// @Summary      Iniciar o reanudar una orden
// @Description  OPEN pasa a IN_PROGRESS con evento STARTED; PAUSED reanuda con RESUMED.
// @Tags         maintenance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true   "ID de la orden"
// @Param        body  body  dto.TransitionRequest  false  "Notas opcionales"
// @Success      200  {object}  dto.MaintenanceOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/maintenance/orders/{id}/start [post]
func (h *MaintenanceHandler) Start(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Start)
}

// Pause godoc
// @Summary      Pausar una orden en progreso
// @Tags         maintenance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true   "ID de la orden"
// @Param        body  body  dto.TransitionRequest  false  "Notas opcionales"
// @Success      200  {object}  dto.MaintenanceOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/maintenance/orders/{id}/pause [post]
func (h *MaintenanceHandler) Pause(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Pause)
}

// Complete godoc
// @Summary      Completar una orden
// @Description  Congela costo total y minutos, devuelve el vehículo a servicio y,
//
//	si el costo es mayor que cero, genera la cuenta por pagar.
//
// @Tags         maintenance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true   "ID de la orden"
// @Param        body  body  dto.TransitionRequest  false  "Notas opcionales"
// @Success      200  {object}  dto.MaintenanceOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/maintenance/orders/{id}/complete [post]
func (h *MaintenanceHandler) Complete(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Complete)
}

// Cancel godoc
// @Summary      Cancelar una orden
// @Description  Cancela sin reponer los materiales ya consumidos; el vehículo
//
//	vuelve a servicio.
//
// @Tags         maintenance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true   "ID de la orden"
// @Param        body  body  dto.TransitionRequest  false  "Notas opcionales"
// @Success      200  {object}  dto.MaintenanceOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/maintenance/orders/{id}/cancel [post]
func (h *MaintenanceHandler) Cancel(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Cancel)
}

// Remove godoc
// @Summary      Eliminar una orden (borrado lógico)
// @Tags         maintenance
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/maintenance/orders/{id} [delete]
func (h *MaintenanceHandler) Remove(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Remove(c.Context(), companyID, c.Params("id")); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "orden eliminada"})
}

// transition factoriza el patrón común de start/pause/complete/cancel.
func (h *MaintenanceHandler) transition(
	c *fiber.Ctx,
	fn func(ctx context.Context, companyID, userID, orderID, notes string) (*dto.MaintenanceOrderResponse, error),
) error {
	companyID := GetCompanyID(c)
	userID := GetUserID(c)
	if companyID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.TransitionRequest
	_ = c.BodyParser(&in) // cuerpo opcional

	resp, err := fn(c.Context(), companyID, userID, c.Params("id"), in.Notes)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(resp)
}
