package dto

// ContactRequest mensagem enviada pelo formulário público de contato.
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" validate:"required"`
}

// ContactResponse confirmação de recebimento do contato.
type ContactResponse struct {
	Message string `json:"message"`
}
