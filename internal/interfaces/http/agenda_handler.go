package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/alpsistemas/oficina-api/internal/application/dto"
	"github.com/alpsistemas/oficina-api/internal/application/usecase"
)

// AgendaHandler agenda de entregas, retiradas e lembretes da oficina.
type AgendaHandler struct {
	uc *usecase.AgendaUseCase
}

// NewAgendaHandler constrói o handler da agenda.
func NewAgendaHandler(uc *usecase.AgendaUseCase) *AgendaHandler {
	return &AgendaHandler{uc: uc}
}

// List godoc
// @Summary      Listar compromissos do período
// @Description  Usa from/to ("2006-01-02") ou date para um único dia; sem filtro, o dia de hoje.
// @Tags         agenda
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Início do período"
// @Param        to    query  string  false  "Fim do período"
// @Param        date  query  string  false  "Atalho para from=to=date"
// @Success      200   {object}  dto.AppointmentListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/appointments [get]
func (h *AgendaHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id obrigatório"})
	}
	from, to := c.Query("from"), c.Query("to")
	if date := c.Query("date"); date != "" {
		from, to = date, date
	}
	out, err := h.uc.List(companyID, from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Agendar compromisso
// @Description  Cliente e veículo precisam estar cadastrados na oficina.
// @Tags         agenda
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAppointmentRequest  true  "Dados do compromisso"
// @Success      201   {object}  dto.AppointmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/appointments [post]
func (h *AgendaHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id obrigatório"})
	}
	var in dto.CreateAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.ClientID == "" || in.VehicleID == "" || in.Date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "client_id, vehicle_id e date são obrigatórios"})
	}
	out, err := h.uc.Create(companyID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// QuickCreate godoc
// @Summary      Agendamento rápido
// @Description  Texto livre: reaproveita ou cria cliente e veículo na hora e já agenda.
// @Tags         agenda
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.QuickAppointmentRequest  true  "Nome do cliente, data e hora"
// @Success      201   {object}  dto.AppointmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/appointments/quick [post]
func (h *AgendaHandler) QuickCreate(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id obrigatório"})
	}
	var in dto.QuickAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.ClientName == "" || in.Date == "" || in.Time == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "client_name, date e time são obrigatórios"})
	}
	out, err := h.uc.QuickCreate(c.Context(), companyID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Remarcar ou editar compromisso
// @Tags         agenda
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do compromisso"
// @Param        body  body  dto.UpdateAppointmentRequest  true  "Campos a atualizar"
// @Success      200   {object}  dto.AppointmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/appointments/{id} [patch]
func (h *AgendaHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id obrigatório"})
	}
	var in dto.UpdateAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Update(companyID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir compromisso
// @Tags         agenda
// @Security     Bearer
// @Param        id   path  string  true  "ID do compromisso"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/appointments/{id} [delete]
func (h *AgendaHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id obrigatório"})
	}
	if err := h.uc.Delete(companyID, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
