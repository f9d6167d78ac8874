package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Flota-api/internal/application/dto"
	"github.com/jhoicas/Flota-api/internal/application/payables"
	"github.com/jhoicas/Flota-api/internal/domain/entity"
)

// PayablesHandler maneja las consultas de cuentas por pagar (protegido).
type PayablesHandler struct {
	uc *payables.PayablesUseCase
}

// NewPayablesHandler construye el handler.
func NewPayablesHandler(uc *payables.PayablesUseCase) *PayablesHandler {
	return &PayablesHandler{uc: uc}
}

// List godoc
// @Summary      Listar cuentas por pagar
// @Tags         payables
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máximo de filas (default 50)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}   dto.AccountPayableDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/payables [get]
func (h *PayablesHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	list, err := h.uc.ListByCompany(c.Context(), companyID, limit, offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "payables": toPayableDTOs(list)})
}

// ListByOrder godoc
// @Summary      Cuentas por pagar generadas por una orden
// @Tags         payables
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden de mantenimiento"
// @Success      200  {array}  dto.AccountPayableDTO
// @Router       /api/maintenance/orders/{id}/payables [get]
func (h *PayablesHandler) ListByOrder(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	list, err := h.uc.ListByOrder(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "payables": toPayableDTOs(list)})
}

func toPayableDTOs(list []*entity.AccountPayable) []dto.AccountPayableDTO {
	out := make([]dto.AccountPayableDTO, 0, len(list))
	for _, p := range list {
		out = append(out, dto.AccountPayableDTO{
			ID:          p.ID,
			CompanyID:   p.CompanyID,
			BranchID:    p.BranchID,
			Description: p.Description,
			Amount:      p.Amount,
			DueDate:     p.DueDate,
			OriginType:  p.OriginType,
			OriginID:    p.OriginID,
			Status:      p.Status,
			CreatedAt:   p.CreatedAt,
		})
	}
	return out
}
