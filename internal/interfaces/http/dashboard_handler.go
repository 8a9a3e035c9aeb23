package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/alpsistemas/oficina-api/internal/application/analytics"
	"github.com/alpsistemas/oficina-api/internal/application/dto"
)

// DashboardHandler painéis gerenciais da oficina.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler constrói o handler do dashboard.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Indicadores do topo do painel
// @Description  OS por status, receita dos últimos 30 dias, agenda de hoje e estoque crítico.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/v1/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id obrigatório"})
	}
	out, err := h.uc.GetSummary(c.Context(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Data godoc
// @Summary      Painel completo
// @Description  Série de lucro de 12 meses, carga por mecânico, destaques e recorrência.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardDataDTO
// @Router       /api/v1/dashboard/data [get]
func (h *DashboardHandler) Data(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id obrigatório"})
	}
	out, err := h.uc.GetData(c.Context(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
