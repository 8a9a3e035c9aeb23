package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/alpsistemas/oficina-api/internal/application/analytics"
	"github.com/alpsistemas/oficina-api/internal/application/dto"
)

// ReportHandler fechamento de movimento por período.
type ReportHandler struct {
	uc *appanalytics.ReportUseCase
}

// NewReportHandler constrói o handler de relatórios.
func NewReportHandler(uc *appanalytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Get godoc
// @Summary      Relatório do período
// @Description  OS abertas, finalizadas e canceladas, receita x despesa e pendências de clientes.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Início (2006-01-02); padrão: 30 dias atrás"
// @Param        to    query  string  false  "Fim; padrão: hoje"
// @Success      200   {object}  dto.ReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/reports [get]
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id obrigatório"})
	}
	out, err := h.uc.GetReport(c.Context(), companyID, c.Query("from"), c.Query("to"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
