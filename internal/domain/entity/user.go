package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"     // administrador da plataforma, sem empresa
	RoleGerente   = "gerente"   // gestor da oficina
	RoleAtendente = "atendente" // operação do dia a dia
)

// User representa um usuário que faz login no sistema.
// Administradores da plataforma têm CompanyID vazio; os demais pertencem a uma Company.
type User struct {
	ID            string
	CompanyID     string
	Username      string // único no sistema, sempre minúsculo
	Email         string
	Name          string
	PasswordHash  string // hash bcrypt, nunca texto plano depois de persistir
	Role          string // admin, gerente, atendente
	RecoveryEmail string // destino do link de recuperação de senha
	RecoveryPhone string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsManager informa se o usuário conta contra o limite de gerentes do plano.
func (u User) IsManager() bool {
	return u.Role == RoleGerente
}

// ValidCompanyRole valida roles atribuíveis dentro de uma empresa (admin fica de fora).
func ValidCompanyRole(role string) bool {
	return role == RoleGerente || role == RoleAtendente
}
