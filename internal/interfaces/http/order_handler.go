package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/alpsistemas/oficina-api/internal/application/dto"
	"github.com/alpsistemas/oficina-api/internal/application/usecase"
)

// OrderHandler ordens de serviço: abertura, fluxo de status, itens,
// pagamentos e o PDF para impressão.
type OrderHandler struct {
	uc *usecase.OrderUseCase
}

// NewOrderHandler constrói o handler de OS.
func NewOrderHandler(uc *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// List godoc
// @Summary      Listar ordens de serviço
// @Description  q busca em nome do cliente e placa; from/to filtram a data de entrada.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "ABERTA | EXECUCAO | AGUARDANDO_PECA | FINALIZADA | CANCELADA"
// @Param        q       query  string  false  "Texto da busca"
// @Param        from    query  string  false  "Entrada a partir de (2006-01-02)"
// @Param        to      query  string  false  "Entrada até"
// @Param        limit   query  int     false  "Limite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.OrderListResponse
// @Router       /api/v1/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id obrigatório"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginação inválida"})
	}
	out, err := h.uc.List(companyID, c.Query("status"), c.Query("q"), c.Query("from"), c.Query("to"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Abrir ordem de serviço
// @Description  Nasce ABERTA com numeração sequencial da oficina.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Dados da OS"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id obrigatório"})
	}
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.ClientID == "" || in.VehicleID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "client_id e vehicle_id são obrigatórios"})
	}
	out, err := h.uc.Create(GetUserID(c), companyID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Detalhe da OS
// @Description  Itens, pagamentos, totais e histórico de auditoria.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da OS"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/orders/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id obrigatório"})
	}
	out, err := h.uc.Get(companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar OS e/ou mudar a situação
// @Description  Transições válidas: ABERTA→EXECUCAO→AGUARDANDO_PECA⇄EXECUCAO→FINALIZADA;
// @Description  cancelar é permitido antes de finalizar. FINALIZADA e CANCELADA são terminais.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da OS"
// @Param        body  body  dto.UpdateOrderRequest  true  "Campos e/ou novo status"
// @Success      200   {object}  dto.OrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/v1/orders/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id obrigatório"})
	}
	var in dto.UpdateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Update(GetUserID(c), companyID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Lançar item na OS
// @Description  Com product_id o estoque é baixado na mesma transação;
// @Description  sem product_id é uma linha livre de serviço.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da OS"
// @Param        body  body  dto.AddOrderItemRequest  true  "Item a lançar"
// @Success      200   {object}  dto.OrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/v1/orders/{id}/items [post]
func (h *OrderHandler) AddItem(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id obrigatório"})
	}
	var in dto.AddOrderItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Quantity.Sign() <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity deve ser maior que zero"})
	}
	out, err := h.uc.AddItem(c.Context(), companyID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemoveItem godoc
// @Summary      Remover item da OS
// @Description  Item de produto com estoque controlado devolve a quantidade ao estoque.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID da OS"
// @Param        itemID  path  string  true  "ID do item"
// @Success      200     {object}  dto.OrderResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Router       /api/v1/orders/{id}/items/{itemID} [delete]
func (h *OrderHandler) RemoveItem(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id obrigatório"})
	}
	out, err := h.uc.RemoveItem(c.Context(), companyID, c.Params("id"), c.Params("itemID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddPayment godoc
// @Summary      Registrar pagamento na OS
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da OS"
// @Param        body  body  dto.AddPaymentRequest  true  "Forma, valor e data"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/orders/{id}/payments [post]
func (h *OrderHandler) AddPayment(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id obrigatório"})
	}
	var in dto.AddPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Method == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "method é obrigatório"})
	}
	if in.Amount.Sign() <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "amount deve ser maior que zero"})
	}
	out, err := h.uc.AddPayment(companyID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemovePayment godoc
// @Summary      Estornar pagamento da OS
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id         path  string  true  "ID da OS"
// @Param        paymentID  path  string  true  "ID do pagamento"
// @Success      200        {object}  dto.OrderResponse
// @Failure      403        {object}  dto.ErrorResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Router       /api/v1/orders/{id}/payments/{paymentID} [delete]
func (h *OrderHandler) RemovePayment(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id obrigatório"})
	}
	out, err := h.uc.RemovePayment(companyID, c.Params("id"), c.Params("paymentID"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetPDF godoc
// @Summary      PDF da OS para impressão
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID da OS"
// @Success      200  {string}  string  "Documento PDF"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/orders/{id}/pdf [get]
func (h *OrderHandler) GetPDF(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id obrigatório"})
	}
	data, filename, err := h.uc.GetPDF(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
