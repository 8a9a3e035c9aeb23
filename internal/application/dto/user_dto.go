package dto

import "time"

// SignupRequest cadastro público da oficina com o primeiro gerente.
type SignupRequest struct {
	CompanyName   string `json:"company_name" validate:"required,min=1,max=200"`
	TaxID         string `json:"tax_id"` // CNPJ ou CPF, com ou sem máscara
	Phone         string `json:"phone"`
	Plan          string `json:"plan" validate:"required,oneof=BASICO PLUS"`
	PlanPeriod    string `json:"plan_period" validate:"required,oneof=30D 6M 12M"`
	Name          string `json:"name" validate:"required,min=1,max=200"`
	Username      string `json:"username" validate:"required,min=3,max=60"`
	Password      string `json:"password" validate:"required,min=8"`
	RecoveryEmail string `json:"recovery_email" validate:"omitempty,email"`
	RecoveryPhone string `json:"recovery_phone"`
}

// SignupResponse ids criados. Nunca devolve token: o login fica bloqueado até
// a aprovação do pagamento.
type SignupResponse struct {
	CompanyID string `json:"company_id"`
	UserID    string `json:"user_id"`
	Message   string `json:"message"`
}

// LoginRequest entrada de login por usuário e senha.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT + usuário autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse saída de um usuário (sem hash de senha).
type UserResponse struct {
	ID            string    `json:"id"`
	CompanyID     string    `json:"company_id,omitempty"`
	Username      string    `json:"username"`
	Email         string    `json:"email,omitempty"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	RecoveryEmail string    `json:"recovery_email,omitempty"`
	RecoveryPhone string    `json:"recovery_phone,omitempty"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// MeResponse usuário atual com o resumo da empresa (nil para admins).
type MeResponse struct {
	User    UserResponse    `json:"user"`
	Company *CompanySummary `json:"company,omitempty"`
}

// RecoverRequest pedido de recuperação por usuário ou e-mail de recuperação.
type RecoverRequest struct {
	Login string `json:"login" validate:"required"`
}

// RecoverResponse sempre 202; Hint é o e-mail mascarado quando o envio ocorreu.
type RecoverResponse struct {
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

// ResetRequest consome o token de redefinição e grava a nova senha.
type ResetRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// ChangePasswordRequest troca de senha do usuário autenticado.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// CreateUserRequest gerente cria um usuário da equipe. Senha vazia = gerada.
type CreateUserRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=200"`
	Username      string `json:"username" validate:"required,min=3,max=60"`
	Password      string `json:"password" validate:"omitempty,min=8"`
	Role          string `json:"role" validate:"required,oneof=gerente atendente"`
	Email         string `json:"email" validate:"omitempty,email"`
	RecoveryEmail string `json:"recovery_email" validate:"omitempty,email"`
	RecoveryPhone string `json:"recovery_phone"`
}

// CreateUserResponse usuário criado. GeneratedPassword só vem preenchido
// quando a senha foi gerada pelo sistema, para o gerente repassar uma vez.
type CreateUserResponse struct {
	User              UserResponse `json:"user"`
	GeneratedPassword string       `json:"generated_password,omitempty"`
}

// UpdateUserRequest campos opcionais; role volta a passar pelo limite do plano.
type UpdateUserRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Role          *string `json:"role" validate:"omitempty,oneof=gerente atendente"`
	RecoveryEmail *string `json:"recovery_email" validate:"omitempty,email"`
	RecoveryPhone *string `json:"recovery_phone"`
}

// UserListResponse lista paginada de usuários da empresa.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
