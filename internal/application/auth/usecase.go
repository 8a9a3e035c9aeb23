package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alpsistemas/oficina-api/internal/application/dto"
	"github.com/alpsistemas/oficina-api/internal/domain"
	"github.com/alpsistemas/oficina-api/internal/domain/entity"
	"github.com/alpsistemas/oficina-api/internal/domain/repository"
	"github.com/alpsistemas/oficina-api/pkg/brdoc"
	"github.com/alpsistemas/oficina-api/pkg/jwt"
	"github.com/alpsistemas/oficina-api/pkg/logger"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// resetTokenTTL validade do token de redefinição de senha.
const resetTokenTTL = 30 * time.Minute

// minPasswordLen tamanho mínimo de senha aceito em cadastro e troca.
const minPasswordLen = 8

// JWTConfig parâmetros de emissão do token de acesso.
type JWTConfig struct {
	Secret   string
	ExpHours int
	Issuer   string
}

// AuthUseCase casos de uso de autenticação e conta: cadastro da oficina,
// login com as travas de assinatura e os fluxos de senha.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	tx          TxRunner
	mailer      Mailer
	log         *logger.Logger
	jwtCfg      JWTConfig
}

// NewAuthUseCase constrói o caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	tx TxRunner,
	mailer Mailer,
	log *logger.Logger,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, companyRepo: companyRepo, tx: tx, mailer: mailer, log: log, jwtCfg: jwtCfg}
}

// Signup cadastra a oficina e o primeiro gerente numa transação só.
// A conta nasce com pagamento pendente: o login fica bloqueado até o
// administrador da plataforma confirmar o pagamento, por isso a resposta
// nunca inclui token.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.SignupResponse, error) {
	companyName := strings.TrimSpace(in.CompanyName)
	name := strings.TrimSpace(in.Name)
	username := strings.ToLower(strings.TrimSpace(in.Username))

	if companyName == "" || name == "" || username == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: a senha deve ter no mínimo %d caracteres", domain.ErrInvalidInput, minPasswordLen)
	}
	if !entity.ValidPlan(in.Plan) {
		return nil, fmt.Errorf("%w: plano desconhecido %q", domain.ErrInvalidInput, in.Plan)
	}
	if _, ok := entity.PlanPeriodDuration(in.PlanPeriod); !ok {
		return nil, fmt.Errorf("%w: período desconhecido %q", domain.ErrInvalidInput, in.PlanPeriod)
	}
	taxID, err := brdoc.NormalizeTaxID(in.TaxID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if existing, err := uc.userRepo.GetByUsername(username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	if taxID != "" {
		if existing, err := uc.companyRepo.GetByTaxID(taxID); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, fmt.Errorf("%w: documento já cadastrado", domain.ErrDuplicate)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	company := &entity.Company{
		ID:         uuid.New().String(),
		Name:       companyName,
		TaxID:      taxID,
		Phone:      strings.TrimSpace(in.Phone),
		Plan:       in.Plan,
		PlanPeriod: in.PlanPeriod,
		Active:     true,
		// PaymentConfirmed só vira true na aprovação do admin
		CreatedAt: now,
		UpdatedAt: now,
	}
	user := &entity.User{
		ID:            uuid.New().String(),
		CompanyID:     company.ID,
		Username:      username,
		Name:          name,
		PasswordHash:  string(hash),
		Role:          entity.RoleGerente,
		RecoveryEmail: strings.TrimSpace(in.RecoveryEmail),
		RecoveryPhone: strings.TrimSpace(in.RecoveryPhone),
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = uc.tx.RunSignup(ctx, func(companyRepo repository.CompanyRepository, userRepo repository.UserRepository) error {
		if err := companyRepo.Create(company); err != nil {
			return err
		}
		return userRepo.Create(user)
	})
	if err != nil {
		return nil, err
	}

	// Falha de e-mail não desfaz o cadastro: loga e segue.
	if user.RecoveryEmail != "" {
		if err := uc.mailer.SendSignupPending(user.RecoveryEmail, user.Name, company.Name); err != nil {
			uc.log.Warn().Err(err).Str("company_id", company.ID).Msg("falha ao enviar boas-vindas do cadastro")
		}
	}
	if err := uc.mailer.SendSignupNotice(company.Name, company.TaxID, company.Plan, company.PlanPeriod); err != nil {
		uc.log.Warn().Err(err).Str("company_id", company.ID).Msg("falha ao avisar novo cadastro")
	}

	return &dto.SignupResponse{
		CompanyID: company.ID,
		UserID:    user.ID,
		Message:   "cadastro recebido; o acesso será liberado após a confirmação do pagamento",
	}, nil
}

// Login autentica por username (sem diferenciar maiúsculas) e aplica as
// travas da assinatura: pagamento pendente, empresa inativa e plano vencido.
// Administradores da plataforma não têm empresa e não passam pelas travas.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	user, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}

	if user.CompanyID != "" {
		company, err := uc.companyRepo.GetByID(user.CompanyID)
		if err != nil {
			return nil, err
		}
		if company == nil || !company.Active {
			return nil, domain.ErrForbidden
		}
		if !company.PaymentConfirmed {
			return nil, domain.ErrPaymentPending
		}
		if company.PlanExpired(time.Now()) {
			return nil, domain.ErrPlanExpired
		}
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpHours)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

// Me devolve o usuário autenticado com o resumo da empresa (nil para admins).
func (uc *AuthUseCase) Me(userID string) (*dto.MeResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	out := &dto.MeResponse{User: *toUserResponse(user)}
	if user.CompanyID != "" {
		company, err := uc.companyRepo.GetByID(user.CompanyID)
		if err != nil {
			return nil, err
		}
		if company != nil {
			out.Company = toCompanySummary(company)
		}
	}
	return out, nil
}

// Recover inicia a recuperação de senha por username ou e-mail de recuperação.
// A resposta é sempre a mesma, exista ou não a conta; quando o envio acontece,
// Hint traz o destino mascarado para orientar o usuário.
func (uc *AuthUseCase) Recover(in dto.RecoverRequest) (*dto.RecoverResponse, error) {
	login := strings.ToLower(strings.TrimSpace(in.Login))
	if login == "" {
		return nil, domain.ErrInvalidInput
	}

	out := &dto.RecoverResponse{
		Message: "se a conta existir, as instruções foram enviadas ao e-mail de recuperação",
	}

	user, err := uc.userRepo.GetByUsername(login)
	if err != nil {
		return nil, err
	}
	if user == nil && strings.Contains(login, "@") {
		if user, err = uc.userRepo.GetByRecoveryEmail(login); err != nil {
			return nil, err
		}
	}
	if user == nil || !user.Active || user.RecoveryEmail == "" {
		return out, nil
	}

	token, err := jwt.GenerateReset(uc.jwtCfg.Secret, user.ID, uc.jwtCfg.Issuer, resetTokenTTL)
	if err != nil {
		return nil, err
	}
	if err := uc.mailer.SendPasswordReset(user.RecoveryEmail, user.Name, token, resetTokenTTL); err != nil {
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("falha ao enviar e-mail de recuperação")
		return out, nil
	}
	out.Hint = maskEmail(user.RecoveryEmail)
	return out, nil
}

// Reset consome o token de redefinição e grava a nova senha.
func (uc *AuthUseCase) Reset(in dto.ResetRequest) error {
	if len(in.Password) < minPasswordLen {
		return fmt.Errorf("%w: a senha deve ter no mínimo %d caracteres", domain.ErrInvalidInput, minPasswordLen)
	}
	userID, err := jwt.ParseReset(uc.jwtCfg.Secret, in.Token)
	if err != nil {
		return domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(user)
}

// ChangePassword troca a senha do próprio usuário conferindo a senha atual.
func (uc *AuthUseCase) ChangePassword(userID string, in dto.ChangePasswordRequest) error {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrUnauthorized
	}
	if len(in.NewPassword) < minPasswordLen {
		return fmt.Errorf("%w: a senha deve ter no mínimo %d caracteres", domain.ErrInvalidInput, minPasswordLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(user)
}

// maskEmail esconde o endereço mantendo as iniciais: "jose@gmail.com" vira "j***@g***.com".
func maskEmail(addr string) string {
	at := strings.Index(addr, "@")
	if at <= 0 {
		return "***"
	}
	local, host := addr[:at], addr[at+1:]
	dot := strings.LastIndex(host, ".")
	if dot <= 0 {
		return local[:1] + "***@***"
	}
	return local[:1] + "***@" + host[:1] + "***" + host[dot:]
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:            u.ID,
		CompanyID:     u.CompanyID,
		Username:      u.Username,
		Email:         u.Email,
		Name:          u.Name,
		Role:          u.Role,
		RecoveryEmail: u.RecoveryEmail,
		RecoveryPhone: u.RecoveryPhone,
		Active:        u.Active,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func toCompanySummary(c *entity.Company) *dto.CompanySummary {
	if c == nil {
		return nil
	}
	days, _ := c.DaysToExpiry(time.Now())
	return &dto.CompanySummary{
		ID:               c.ID,
		Name:             c.Name,
		Plan:             c.Plan,
		PlanPeriod:       c.PlanPeriod,
		PlanExpiresAt:    c.PlanExpiresAt,
		DaysToExpiry:     days,
		PaymentConfirmed: c.PaymentConfirmed,
		Active:           c.Active,
		LogoPath:         c.LogoPath,
	}
}
