package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/alpsistemas/oficina-api/internal/application/dto"
	"github.com/alpsistemas/oficina-api/internal/application/usecase"
)

// CashHandler caixa da oficina: entradas das OS, despesas avulsas e gráficos.
type CashHandler struct {
	uc *usecase.CashUseCase
}

// NewCashHandler constrói o handler do caixa.
func NewCashHandler(uc *usecase.CashUseCase) *CashHandler {
	return &CashHandler{uc: uc}
}

// Summary godoc
// @Summary      Movimento do caixa no período
// @Description  Sem from/to, o mês corrente. Entradas são os pagamentos das OS.
// @Tags         cash
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Início (2006-01-02)"
// @Param        to    query  string  false  "Fim"
// @Success      200   {object}  dto.CashSummaryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/cash [get]
func (h *CashHandler) Summary(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id obrigatório"})
	}
	out, err := h.uc.Summary(c.Context(), companyID, c.Query("from"), c.Query("to"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Charts godoc
// @Summary      Séries do caixa para gráficos
// @Description  Receita x despesa por dia, mês ou ano, e a quebra por forma de pagamento.
// @Tags         cash
// @Security     Bearer
// @Produce      json
// @Param        granularity  query  string  false  "day | month | year"  default(day)
// @Param        from         query  string  false  "Início (2006-01-02)"
// @Param        to           query  string  false  "Fim"
// @Success      200          {object}  dto.CashChartsResponse
// @Failure      400          {object}  dto.ErrorResponse
// @Router       /api/v1/cash/charts [get]
func (h *CashHandler) Charts(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id obrigatório"})
	}
	out, err := h.uc.Charts(c.Context(), companyID, c.Query("granularity"), c.Query("from"), c.Query("to"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateExpense godoc
// @Summary      Lançar despesa
// @Tags         cash
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseRequest  true  "Descrição, valor e data"
// @Success      201   {object}  dto.ExpenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/cash/expenses [post]
func (h *CashHandler) CreateExpense(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id obrigatório"})
	}
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "description é obrigatório"})
	}
	if in.Amount.Sign() <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "amount deve ser maior que zero"})
	}
	out, err := h.uc.CreateExpense(companyID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateExpense godoc
// @Summary      Editar despesa
// @Tags         cash
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da despesa"
// @Param        body  body  dto.UpdateExpenseRequest  true  "Campos a atualizar"
// @Success      200   {object}  dto.ExpenseResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/cash/expenses/{id} [put]
func (h *CashHandler) UpdateExpense(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id obrigatório"})
	}
	var in dto.UpdateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.UpdateExpense(companyID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteExpense godoc
// @Summary      Excluir despesa
// @Tags         cash
// @Security     Bearer
// @Param        id   path  string  true  "ID da despesa"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/cash/expenses/{id} [delete]
func (h *CashHandler) DeleteExpense(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id obrigatório"})
	}
	if err := h.uc.DeleteExpense(companyID, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
