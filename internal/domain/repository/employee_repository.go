package repository

import "github.com/alpsistemas/oficina-api/internal/domain/entity"

// EmployeeRepository define o porto de persistência para Employee (mecânicos).
type EmployeeRepository interface {
	Create(employee *entity.Employee) error
	GetByID(id string) (*entity.Employee, error)
	Update(employee *entity.Employee) error
	// ListByCompany com activeOnly devolve apenas funcionários ativos (atribuíveis a OS).
	ListByCompany(companyID string, activeOnly bool) ([]*entity.Employee, error)
}
