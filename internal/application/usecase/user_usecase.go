package usecase

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/alpsistemas/oficina-api/internal/application/dto"
	"github.com/alpsistemas/oficina-api/internal/domain"
	"github.com/alpsistemas/oficina-api/internal/domain/entity"
	"github.com/alpsistemas/oficina-api/internal/domain/repository"
	"github.com/alpsistemas/oficina-api/pkg/logger"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// passwordAlphabet sem caracteres ambíguos (0/O, 1/l/I).
const passwordAlphabet = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ23456789"

// minPasswordLen tamanho mínimo aceito quando o gerente informa a senha.
const minPasswordLen = 8

// UserUseCase equipe da oficina: criação respeitando os limites do plano,
// edição e ativação de usuários.
type UserUseCase struct {
	repo        repository.UserRepository
	companyRepo repository.CompanyRepository
	mailer      Mailer
	log         *logger.Logger
}

// NewUserUseCase constrói o caso de uso de usuários.
func NewUserUseCase(repo repository.UserRepository, companyRepo repository.CompanyRepository, mailer Mailer, log *logger.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, companyRepo: companyRepo, mailer: mailer, log: log}
}

// List pagina os usuários da empresa.
func (uc *UserUseCase) List(companyID string, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Create cadastra um usuário da equipe (gerente ou atendente) contando os
// ativos contra o limite do plano. Sem senha informada, uma é gerada e
// devolvida uma única vez; com e-mail de recuperação, as credenciais também
// seguem por e-mail.
func (uc *UserUseCase) Create(companyID string, in dto.CreateUserRequest) (*dto.CreateUserResponse, error) {
	name := strings.TrimSpace(in.Name)
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if name == "" || username == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidCompanyRole(in.Role) {
		return nil, fmt.Errorf("%w: perfil desconhecido %q", domain.ErrInvalidInput, in.Role)
	}
	if in.Password != "" && len(in.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: a senha deve ter no mínimo %d caracteres", domain.ErrInvalidInput, minPasswordLen)
	}

	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkPlanLimits(company, in.Role == entity.RoleGerente); err != nil {
		return nil, err
	}

	if existing, err := uc.repo.GetByUsername(username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrUsernameTaken
	}

	password := in.Password
	generated := ""
	if password == "" {
		if password, err = generatePassword(); err != nil {
			return nil, err
		}
		generated = password
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		Username:      username,
		Email:         strings.TrimSpace(in.Email),
		Name:          name,
		PasswordHash:  string(hash),
		Role:          in.Role,
		RecoveryEmail: strings.TrimSpace(in.RecoveryEmail),
		RecoveryPhone: strings.TrimSpace(in.RecoveryPhone),
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}

	if user.RecoveryEmail != "" {
		if err := uc.mailer.SendUserCredentials(user.RecoveryEmail, user.Name, user.Username, password, company.Name); err != nil {
			uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("falha ao enviar credenciais do novo usuário")
		}
	}
	return &dto.CreateUserResponse{User: *toUserResponse(user), GeneratedPassword: generated}, nil
}

// Update altera nome, e-mail, perfil e dados de recuperação. Subir um
// atendente ativo a gerente passa de novo pelo limite de gerentes.
func (uc *UserUseCase) Update(companyID, userID string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	if in.Role != nil && *in.Role != user.Role {
		if !entity.ValidCompanyRole(*in.Role) {
			return nil, fmt.Errorf("%w: perfil desconhecido %q", domain.ErrInvalidInput, *in.Role)
		}
		if *in.Role == entity.RoleGerente && user.Active {
			company, err := uc.companyRepo.GetByID(companyID)
			if err != nil {
				return nil, err
			}
			if company == nil {
				return nil, domain.ErrNotFound
			}
			_, managers, err := uc.repo.CountActiveByCompany(companyID)
			if err != nil {
				return nil, err
			}
			if managers >= company.ManagerLimit() {
				return nil, domain.ErrPlanLimitReached
			}
		}
		user.Role = *in.Role
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		user.Name = name
	}
	if in.Email != nil {
		user.Email = strings.TrimSpace(*in.Email)
	}
	if in.RecoveryEmail != nil {
		user.RecoveryEmail = strings.TrimSpace(*in.RecoveryEmail)
	}
	if in.RecoveryPhone != nil {
		user.RecoveryPhone = strings.TrimSpace(*in.RecoveryPhone)
	}
	user.UpdatedAt = time.Now()

	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// SetActive ativa ou desativa um usuário da equipe. Ninguém desativa a si
// mesmo, e reativar volta a contar contra o limite do plano.
func (uc *UserUseCase) SetActive(companyID, actorID, userID string, active bool) (*dto.UserResponse, error) {
	if !active && actorID == userID {
		return nil, fmt.Errorf("%w: não é possível desativar o próprio usuário", domain.ErrInvalidInput)
	}
	user, err := uc.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if user.Active == active {
		return toUserResponse(user), nil
	}

	if active {
		company, err := uc.companyRepo.GetByID(companyID)
		if err != nil {
			return nil, err
		}
		if company == nil {
			return nil, domain.ErrNotFound
		}
		if err := uc.checkPlanLimits(company, user.IsManager()); err != nil {
			return nil, err
		}
	}

	user.Active = active
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// checkPlanLimits confere se cabe mais um usuário ativo (e mais um gerente,
// quando for o caso) dentro do plano da empresa.
func (uc *UserUseCase) checkPlanLimits(company *entity.Company, manager bool) error {
	total, managers, err := uc.repo.CountActiveByCompany(company.ID)
	if err != nil {
		return err
	}
	if total >= company.UserLimit() {
		return domain.ErrPlanLimitReached
	}
	if manager && managers >= company.ManagerLimit() {
		return domain.ErrPlanLimitReached
	}
	return nil
}

// generatePassword sorteia uma senha de 10 caracteres para usuários criados sem senha.
func generatePassword() (string, error) {
	const size = 10
	out := make([]byte, size)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = passwordAlphabet[idx.Int64()]
	}
	return string(out), nil
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
