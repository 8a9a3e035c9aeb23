package dto

import "time"

// CompanySummary resumo da empresa embutido em /auth/me e no login.
type CompanySummary struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Plan             string     `json:"plan"`
	PlanPeriod       string     `json:"plan_period"`
	PlanExpiresAt    *time.Time `json:"plan_expires_at,omitempty"`
	DaysToExpiry     int        `json:"days_to_expiry"`
	PaymentConfirmed bool       `json:"payment_confirmed"`
	Active           bool       `json:"active"`
	LogoPath         string     `json:"logo_path,omitempty"`
}

// CompanyResponse detalhe completo da empresa com limites do plano.
type CompanyResponse struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	TaxID              string     `json:"tax_id"`
	Phone              string     `json:"phone"`
	LogoPath           string     `json:"logo_path,omitempty"`
	CEP                string     `json:"cep"`
	Street             string     `json:"street"`
	Number             string     `json:"number"`
	District           string     `json:"district"`
	City               string     `json:"city"`
	Plan               string     `json:"plan"`
	PlanPeriod         string     `json:"plan_period"`
	PlanUpdatedAt      *time.Time `json:"plan_updated_at,omitempty"`
	PlanExpiresAt      *time.Time `json:"plan_expires_at,omitempty"`
	DaysToExpiry       int        `json:"days_to_expiry"`
	UserLimit          int        `json:"user_limit"`
	ManagerLimit       int        `json:"manager_limit"`
	Active             bool       `json:"active"`
	PaymentConfirmed   bool       `json:"payment_confirmed"`
	RenewalPeriod      string     `json:"renewal_period,omitempty"`
	RenewalRequestedAt *time.Time `json:"renewal_requested_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// UpdateCompanyRequest atualização do perfil (campos opcionais).
type UpdateCompanyRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	TaxID    *string `json:"tax_id"`
	Phone    *string `json:"phone"`
	CEP      *string `json:"cep"`
	Street   *string `json:"street"`
	Number   *string `json:"number"`
	District *string `json:"district"`
	City     *string `json:"city"`
}

// RenewalRequest pedido de renovação do plano pelo gerente.
type RenewalRequest struct {
	Period string `json:"period" validate:"required,oneof=30D 6M 12M"`
}

// AdminRenewRequest aplicação de renovação pelo admin. Period vazio usa o
// pedido pendente da empresa; Plan permite subir ou descer de plano.
type AdminRenewRequest struct {
	Period string `json:"period" validate:"omitempty,oneof=30D 6M 12M"`
	Plan   string `json:"plan" validate:"omitempty,oneof=BASICO PLUS"`
}

// LogoResponse caminho salvo após o upload do logo.
type LogoResponse struct {
	LogoPath string `json:"logo_path"`
}

// CompanyListResponse lista paginada de empresas (visão do admin).
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
