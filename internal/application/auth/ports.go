package auth

import (
	"context"
	"time"

	"github.com/alpsistemas/oficina-api/internal/domain/repository"
)

// TxRunner executa o cadastro da oficina (empresa + primeiro gerente) dentro
// de uma transação.
type TxRunner interface {
	RunSignup(ctx context.Context, fn func(
		companyRepo repository.CompanyRepository,
		userRepo repository.UserRepository,
	) error) error
}

// Mailer envia as notificações de conta dos fluxos de autenticação.
// Falha de e-mail nunca derruba a operação de negócio: o chamador loga e segue.
type Mailer interface {
	// SendSignupPending boas-vindas ao gerente recém cadastrado, avisando que
	// o acesso libera após a confirmação do pagamento.
	SendSignupPending(to, userName, companyName string) error
	// SendSignupNotice aviso de novo cadastro para o e-mail da plataforma.
	SendSignupNotice(companyName, taxID, plan, period string) error
	// SendPasswordReset link de redefinição com o token de uso único.
	SendPasswordReset(to, userName, token string, ttl time.Duration) error
}
