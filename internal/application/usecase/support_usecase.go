package usecase

import (
	"strings"

	"github.com/alpsistemas/oficina-api/internal/application/dto"
	"github.com/alpsistemas/oficina-api/internal/domain"
)

// SupportUseCase formulário público de contato, entregue no e-mail da plataforma.
type SupportUseCase struct {
	mailer Mailer
}

// NewSupportUseCase constrói o caso de uso de suporte.
func NewSupportUseCase(mailer Mailer) *SupportUseCase {
	return &SupportUseCase{mailer: mailer}
}

// Contact envia o formulário de contato. Aqui o e-mail é a própria operação,
// então a falha de envio vira erro para o chamador.
func (uc *SupportUseCase) Contact(in dto.ContactRequest) (*dto.ContactResponse, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	message := strings.TrimSpace(in.Message)
	if name == "" || email == "" || message == "" {
		return nil, domain.ErrInvalidInput
	}

	if err := uc.mailer.SendContactForm(name, email, strings.TrimSpace(in.Phone), message); err != nil {
		return nil, err
	}
	return &dto.ContactResponse{Message: "mensagem enviada; retornaremos em breve"}, nil
}
