package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/alpsistemas/oficina-api/internal/application/dto"
	"github.com/alpsistemas/oficina-api/internal/application/usecase"
)

// CompanyHandler perfil da própria oficina (gerente) e administração da
// plataforma (admin): aprovação, renovação e ativação de contas.
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler constrói o handler de empresas.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Get godoc
// @Summary      Dados da própria oficina
// @Tags         company
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/company [get]
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id obrigatório"})
	}
	out, err := h.uc.Get(companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar o perfil da oficina
// @Tags         company
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateCompanyRequest  true  "Campos a atualizar"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/company [put]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id obrigatório"})
	}
	var in dto.UpdateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Update(companyID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UploadLogo godoc
// @Summary      Enviar a logomarca da oficina
// @Description  Multipart com o campo "logo"; aceita jpg, jpeg, png e webp.
// @Tags         company
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        logo  formData  file  true  "Imagem da logomarca"
// @Success      200   {object}  dto.LogoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/company/logo [put]
func (h *CompanyHandler) UploadLogo(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id obrigatório"})
	}
	fh, err := c.FormFile("logo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "arquivo 'logo' é obrigatório"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "não foi possível ler o arquivo"})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "não foi possível ler o arquivo"})
	}
	out, err := h.uc.UploadLogo(companyID, fh.Filename, data)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RequestRenewal godoc
// @Summary      Pedir renovação do plano
// @Tags         company
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RenewalRequest  true  "Período desejado (30D, 6M, 12M)"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/company/renewal [post]
func (h *CompanyHandler) RequestRenewal(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id obrigatório"})
	}
	var in dto.RenewalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Period == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "period é obrigatório"})
	}
	out, err := h.uc.RequestRenewal(companyID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AdminList godoc
// @Summary      Listar empresas da plataforma
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "all | pending | renewal"  default(all)
// @Param        q       query  string  false  "Busca em nome e documento"
// @Param        limit   query  int     false  "Limite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.CompanyListResponse
// @Router       /api/v1/admin/companies [get]
func (h *CompanyHandler) AdminList(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginação inválida"})
	}
	out, err := h.uc.AdminList(c.Query("status"), c.Query("q"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AdminApprove godoc
// @Summary      Confirmar o pagamento e liberar o acesso
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/v1/admin/companies/{id}/approve [post]
func (h *CompanyHandler) AdminApprove(c *fiber.Ctx) error {
	out, err := h.uc.AdminApprove(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AdminRenew godoc
// @Summary      Aplicar renovação de plano
// @Description  Sem period no corpo, usa o pedido pendente da empresa.
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da empresa"
// @Param        body  body  dto.AdminRenewRequest  false  "Período e plano opcionais"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/admin/companies/{id}/renew [post]
func (h *CompanyHandler) AdminRenew(c *fiber.Ctx) error {
	var in dto.AdminRenewRequest
	// Corpo vazio é válido: renova com o pedido pendente.
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
		}
	}
	out, err := h.uc.AdminRenew(c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AdminDeactivate godoc
// @Summary      Desativar uma empresa
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/admin/companies/{id}/deactivate [post]
func (h *CompanyHandler) AdminDeactivate(c *fiber.Ctx) error {
	out, err := h.uc.AdminSetActive(c.Params("id"), false)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AdminActivate godoc
// @Summary      Reativar uma empresa
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/admin/companies/{id}/activate [post]
func (h *CompanyHandler) AdminActivate(c *fiber.Ctx) error {
	out, err := h.uc.AdminSetActive(c.Params("id"), true)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
