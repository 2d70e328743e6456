package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/farmacia-pro/internal/application/dto"
	"github.com/tu-usuario/farmacia-pro/internal/application/payments"
)

// DebtHandler maneja las peticiones HTTP de deudas de clientes.
type DebtHandler struct {
	uc *payments.ReconcileUseCase
}

// NewDebtHandler construye el handler.
func NewDebtHandler(uc *payments.ReconcileUseCase) *DebtHandler {
	return &DebtHandler{uc: uc}
}

// List godoc
// @Summary      Listar deudas
// @Tags         debts
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(50)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.DebtResponse
// @Router       /api/debts [get]
func (h *DebtHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	out, err := h.uc.ListDebts(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Pay godoc
// @Summary      Abonar a una deuda
// @Description  Aplica el pago sobre la deuda y la venta asociada en una transacción. El excedente se recorta al saldo.
// @Tags         debts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la deuda"
// @Param        body  body  dto.PayDebtRequest  true  "Monto del abono"
// @Success      200   {object}  dto.DebtResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/debts/{id}/pay [post]
func (h *DebtHandler) Pay(c *fiber.Ctx) error {
	var in dto.PayDebtRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ApplyPayment(c.Context(), c.Params("id"), in.Amount, in.Method, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar términos de una deuda
// @Tags         debts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la deuda"
// @Param        body  body  dto.UpdateDebtRequest  true  "Nuevos términos"
// @Success      200   {object}  dto.DebtResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/debts/{id} [put]
func (h *DebtHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDebtRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateDebtTerms(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar una deuda
// @Tags         debts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la deuda"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/debts/{id} [delete]
func (h *DebtHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteDebt(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "deuda eliminada"})
}
