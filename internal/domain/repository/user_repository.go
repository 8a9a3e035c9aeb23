package repository

import "github.com/alpsistemas/oficina-api/internal/domain/entity"

// UserRepository define o porto de persistência para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	// GetByUsername busca sem diferenciar maiúsculas (login e recuperação).
	GetByUsername(username string) (*entity.User, error)
	GetByRecoveryEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.User, error)
	// CountActiveByCompany devolve usuários ativos no total e quantos deles são gerentes,
	// para validar os limites do plano numa consulta só.
	CountActiveByCompany(companyID string) (total, managers int, err error)
	// ListManagersByCompany devolve os gerentes ativos (avisos de aprovação/renovação).
	ListManagersByCompany(companyID string) ([]*entity.User, error)
}
