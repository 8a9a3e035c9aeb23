package entity

import "time"

// Planos de assinatura disponíveis (devem coincidir com o CHECK da tabela companies).
const (
	PlanBasico = "BASICO"
	PlanPlus   = "PLUS"
)

// Períodos de cobrança do plano.
const (
	PlanPeriod30D = "30D" // mensal
	PlanPeriod6M  = "6M"  // semestral
	PlanPeriod12M = "12M" // anual
)

// Company representa uma oficina assinante do sistema (tenant multi-empresa).
// Todo dado operacional (clientes, veículos, OS, caixa) pertence a exatamente uma Company.
type Company struct {
	ID       string
	Name     string
	TaxID    string // CNPJ (14 dígitos) ou CPF (11), sem máscara
	Phone    string
	LogoPath string // caminho no storage (local ou S3); vazio = sem logomarca

	CEP      string
	Street   string
	Number   string
	District string
	City     string

	Plan          string // BASICO, PLUS
	PlanPeriod    string // 30D, 6M, 12M
	PlanUpdatedAt *time.Time
	PlanExpiresAt *time.Time // nil enquanto o pagamento não for confirmado

	Active           bool
	PaymentConfirmed bool // liberado pelo admin da plataforma após conferir o pagamento

	RenewalPeriod      string     // pedido de renovação pendente; vazio = nenhum
	RenewalRequestedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserLimit devolve o máximo de usuários ativos permitido pelo plano.
func (c Company) UserLimit() int {
	if c.Plan == PlanPlus {
		return 30
	}
	return 6
}

// ManagerLimit devolve o máximo de gerentes ativos permitido pelo plano.
func (c Company) ManagerLimit() int {
	if c.Plan == PlanPlus {
		return 3
	}
	return 1
}

// PlanExpired informa se o plano está vencido em relação a now.
// Sem data de vencimento (pagamento ainda não confirmado) não conta como vencido.
func (c Company) PlanExpired(now time.Time) bool {
	return c.PlanExpiresAt != nil && now.After(*c.PlanExpiresAt)
}

// DaysToExpiry devolve os dias restantes até o vencimento (mínimo 0).
// ok=false quando não há vencimento definido.
func (c Company) DaysToExpiry(now time.Time) (int, bool) {
	if c.PlanExpiresAt == nil {
		return 0, false
	}
	days := int(c.PlanExpiresAt.Sub(now).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days, true
}

// PlanPeriodDuration traduz o período de cobrança em duração corrida.
// 6M usa 182 dias e 12M 365, a mesma tabela usada desde o primeiro deploy.
func PlanPeriodDuration(period string) (time.Duration, bool) {
	switch period {
	case PlanPeriod30D:
		return 30 * 24 * time.Hour, true
	case PlanPeriod6M:
		return 182 * 24 * time.Hour, true
	case PlanPeriod12M:
		return 365 * 24 * time.Hour, true
	default:
		return 0, false
	}
}

// ValidPlan informa se o plano é um dos aceitos.
func ValidPlan(plan string) bool {
	return plan == PlanBasico || plan == PlanPlus
}
