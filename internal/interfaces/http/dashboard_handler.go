package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/farmacia-pro/internal/application/analytics"
)

// DashboardHandler maneja las peticiones HTTP del tablero operativo.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen del tablero
// @Description  Conteos, métricas de ventas y gastos del rango, deudas pendientes y stock bajo.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        range  query  string  false  "daily | weekly | monthly | yearly"  default(monthly)
// @Success      200    {object}  dto.DashboardSummaryDTO
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.Context(), c.Query("range"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
