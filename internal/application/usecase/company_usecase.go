package usecase

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/alpsistemas/oficina-api/internal/application/dto"
	"github.com/alpsistemas/oficina-api/internal/domain"
	"github.com/alpsistemas/oficina-api/internal/domain/entity"
	"github.com/alpsistemas/oficina-api/internal/domain/repository"
	"github.com/alpsistemas/oficina-api/pkg/brdoc"
	"github.com/alpsistemas/oficina-api/pkg/logger"
)

// logoExtensions extensões aceitas no upload da logomarca.
var logoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// CompanyUseCase perfil da empresa (visão do gerente) e administração da
// plataforma: aprovação de pagamento, renovação e ativação de contas.
type CompanyUseCase struct {
	repo      repository.CompanyRepository
	userRepo  repository.UserRepository
	mailer    Mailer
	logoStore LogoStore
	log       *logger.Logger
}

// NewCompanyUseCase constrói o caso de uso de empresas.
func NewCompanyUseCase(
	repo repository.CompanyRepository,
	userRepo repository.UserRepository,
	mailer Mailer,
	logoStore LogoStore,
	log *logger.Logger,
) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, userRepo: userRepo, mailer: mailer, logoStore: logoStore, log: log}
}

// Get devolve a própria empresa com limites do plano e dias até o vencimento.
func (uc *CompanyUseCase) Get(companyID string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

// CheckAccess reavalia a situação da empresa a cada requisição: conta
// desativada, pagamento ainda não confirmado ou plano vencido bloqueiam o
// acesso. É o mesmo critério aplicado no login, repetido aqui para que a
// mudança de situação derrube sessões já abertas.
func (uc *CompanyUseCase) CheckAccess(companyID string) error {
	company, err := uc.repo.GetByID(companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	if !company.Active {
		return domain.ErrCompanyInactive
	}
	if !company.PaymentConfirmed {
		return domain.ErrPaymentPending
	}
	if company.PlanExpired(time.Now()) {
		return domain.ErrPlanExpired
	}
	return nil
}

// Update altera o perfil da empresa. O documento é revalidado e a duplicidade
// verificada contra as demais empresas.
func (uc *CompanyUseCase) Update(companyID string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		company.Name = name
	}
	if in.TaxID != nil {
		taxID, err := brdoc.NormalizeTaxID(*in.TaxID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		if taxID != "" && taxID != company.TaxID {
			existing, err := uc.repo.GetByTaxID(taxID)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != company.ID {
				return nil, fmt.Errorf("%w: documento já cadastrado", domain.ErrDuplicate)
			}
		}
		company.TaxID = taxID
	}
	if in.Phone != nil {
		company.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.CEP != nil {
		company.CEP = strings.TrimSpace(*in.CEP)
	}
	if in.Street != nil {
		company.Street = strings.TrimSpace(*in.Street)
	}
	if in.Number != nil {
		company.Number = strings.TrimSpace(*in.Number)
	}
	if in.District != nil {
		company.District = strings.TrimSpace(*in.District)
	}
	if in.City != nil {
		company.City = strings.TrimSpace(*in.City)
	}
	company.UpdatedAt = time.Now()

	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// UploadLogo grava a logomarca no storage e salva o caminho na empresa.
// Somente jpg, jpeg, png e webp são aceitos.
func (uc *CompanyUseCase) UploadLogo(companyID, filename string, data []byte) (*dto.LogoResponse, error) {
	if len(data) == 0 {
		return nil, domain.ErrInvalidInput
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !logoExtensions[ext] {
		return nil, fmt.Errorf("%w: extensão %q não aceita para logomarca", domain.ErrInvalidInput, ext)
	}

	company, err := uc.repo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	path, err := uc.logoStore.Save(companyID, filename, data)
	if err != nil {
		return nil, err
	}
	company.LogoPath = path
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}
	return &dto.LogoResponse{LogoPath: path}, nil
}

// RequestRenewal registra o pedido de renovação do plano e avisa a plataforma.
// A renovação só passa a valer quando o admin aplicá-la.
func (uc *CompanyUseCase) RequestRenewal(companyID string, in dto.RenewalRequest) (*dto.CompanyResponse, error) {
	if _, ok := entity.PlanPeriodDuration(in.Period); !ok {
		return nil, fmt.Errorf("%w: período desconhecido %q", domain.ErrInvalidInput, in.Period)
	}
	company, err := uc.repo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	company.RenewalPeriod = in.Period
	company.RenewalRequestedAt = &now
	company.UpdatedAt = now
	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}

	if err := uc.mailer.SendRenewalRequested(company.Name, in.Period); err != nil {
		uc.log.Warn().Err(err).Str("company_id", company.ID).Msg("falha ao avisar pedido de renovação")
	}
	return toCompanyResponse(company), nil
}

// ── administração da plataforma ──────────────────────────────────────

// AdminList lista empresas por situação (all, pending, renewal) com busca
// livre em nome e documento.
func (uc *CompanyUseCase) AdminList(filter, q string, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	page.DefaultPage()
	switch filter {
	case "", repository.CompanyFilterAll:
		filter = repository.CompanyFilterAll
	case repository.CompanyFilterPending, repository.CompanyFilterRenewal:
	default:
		return nil, fmt.Errorf("%w: filtro desconhecido %q", domain.ErrInvalidInput, filter)
	}

	list, err := uc.repo.List(filter, strings.TrimSpace(q), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// AdminApprove confirma o pagamento da empresa: libera o login e inicia a
// contagem do plano a partir de agora. Aprovar duas vezes é conflito; para
// estender o prazo existe AdminRenew.
func (uc *CompanyUseCase) AdminApprove(companyID string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if company.PaymentConfirmed {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	expires := now.Add(planDuration(company.PlanPeriod))
	company.PaymentConfirmed = true
	company.PlanUpdatedAt = &now
	company.PlanExpiresAt = &expires
	company.UpdatedAt = now
	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}

	uc.notifyManagers(company, func(u *entity.User) error {
		return uc.mailer.SendAccountApproved(u.RecoveryEmail, u.Name, company.Name, expires)
	}, "falha ao avisar aprovação da conta")
	return toCompanyResponse(company), nil
}

// AdminRenew aplica a renovação do plano: usa o período pedido pela empresa
// ou o informado na chamada, podendo também trocar o plano. Zera o pedido
// pendente e reinicia a contagem do vencimento.
func (uc *CompanyUseCase) AdminRenew(companyID string, in dto.AdminRenewRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	period := in.Period
	if period == "" {
		period = company.RenewalPeriod
	}
	if period == "" {
		return nil, fmt.Errorf("%w: empresa sem pedido de renovação e sem período informado", domain.ErrInvalidInput)
	}
	if _, ok := entity.PlanPeriodDuration(period); !ok {
		return nil, fmt.Errorf("%w: período desconhecido %q", domain.ErrInvalidInput, period)
	}
	if in.Plan != "" {
		if !entity.ValidPlan(in.Plan) {
			return nil, fmt.Errorf("%w: plano desconhecido %q", domain.ErrInvalidInput, in.Plan)
		}
		company.Plan = in.Plan
	}

	now := time.Now()
	expires := now.Add(planDuration(period))
	company.PlanPeriod = period
	company.PlanUpdatedAt = &now
	company.PlanExpiresAt = &expires
	company.PaymentConfirmed = true
	company.RenewalPeriod = ""
	company.RenewalRequestedAt = nil
	company.UpdatedAt = now
	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}

	uc.notifyManagers(company, func(u *entity.User) error {
		return uc.mailer.SendRenewalApplied(u.RecoveryEmail, u.Name, company.Name, expires)
	}, "falha ao avisar renovação aplicada")
	return toCompanyResponse(company), nil
}

// AdminSetActive ativa ou desativa a empresa. Desativada, nenhum usuário dela
// consegue logar nem usar a API.
func (uc *CompanyUseCase) AdminSetActive(companyID string, active bool) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	company.Active = active
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// notifyManagers envia o aviso a cada gerente ativo com e-mail de recuperação.
// Falha de e-mail só gera log.
func (uc *CompanyUseCase) notifyManagers(company *entity.Company, send func(*entity.User) error, logMsg string) {
	managers, err := uc.userRepo.ListManagersByCompany(company.ID)
	if err != nil {
		uc.log.Warn().Err(err).Str("company_id", company.ID).Msg("falha ao listar gerentes para aviso")
		return
	}
	for _, m := range managers {
		if m.RecoveryEmail == "" {
			continue
		}
		if err := send(m); err != nil {
			uc.log.Warn().Err(err).Str("company_id", company.ID).Str("user_id", m.ID).Msg(logMsg)
		}
	}
}

// planDuration assume período já validado; devolve a duração corrida.
func planDuration(period string) time.Duration {
	d, _ := entity.PlanPeriodDuration(period)
	return d
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	days, _ := c.DaysToExpiry(time.Now())
	return &dto.CompanyResponse{
		ID:                 c.ID,
		Name:               c.Name,
		TaxID:              c.TaxID,
		Phone:              c.Phone,
		LogoPath:           c.LogoPath,
		CEP:                c.CEP,
		Street:             c.Street,
		Number:             c.Number,
		District:           c.District,
		City:               c.City,
		Plan:               c.Plan,
		PlanPeriod:         c.PlanPeriod,
		PlanUpdatedAt:      c.PlanUpdatedAt,
		PlanExpiresAt:      c.PlanExpiresAt,
		DaysToExpiry:       days,
		UserLimit:          c.UserLimit(),
		ManagerLimit:       c.ManagerLimit(),
		Active:             c.Active,
		PaymentConfirmed:   c.PaymentConfirmed,
		RenewalPeriod:      c.RenewalPeriod,
		RenewalRequestedAt: c.RenewalRequestedAt,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}
