package domain

import "errors"

// Erros de domínio (sem dependências externas). Os handlers HTTP mapeiam
// cada sentinela para o status correspondente.
var (
	ErrNotFound            = errors.New("recurso não encontrado")
	ErrUserNotFound        = errors.New("usuário não encontrado")
	ErrUsernameTaken       = errors.New("nome de usuário já cadastrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("não autorizado")
	ErrForbidden           = errors.New("acesso negado")
	ErrConflict            = errors.New("conflito com o estado atual")
	ErrInsufficientStock   = errors.New("estoque insuficiente")
	ErrPlanLimitReached    = errors.New("limite do plano atingido")
	ErrPlanExpired         = errors.New("plano vencido")
	ErrPaymentPending      = errors.New("pagamento aguardando confirmação")
	ErrCompanyInactive     = errors.New("empresa desativada")
	ErrInvalidStatusChange = errors.New("mudança de status inválida")
)
