package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/alpsistemas/oficina-api/internal/application/dto"
	"github.com/alpsistemas/oficina-api/internal/application/usecase"
)

// SupportHandler formulário público de contato do site.
type SupportHandler struct {
	uc *usecase.SupportUseCase
}

// NewSupportHandler constrói o handler de suporte.
func NewSupportHandler(uc *usecase.SupportUseCase) *SupportHandler {
	return &SupportHandler{uc: uc}
}

// Contact godoc
// @Summary      Enviar mensagem de contato
// @Description  Entrega a mensagem ao e-mail de contato da plataforma com reply_to do remetente.
// @Tags         support
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ContactRequest  true  "Nome, e-mail e mensagem"
// @Success      200   {object}  dto.ContactResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/support/contact [post]
func (h *SupportHandler) Contact(c *fiber.Ctx) error {
	var in dto.ContactRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Name == "" || in.Email == "" || in.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name, email e message são obrigatórios"})
	}
	out, err := h.uc.Contact(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
