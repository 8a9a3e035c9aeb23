package repository

import (
	"time"

	"github.com/alpsistemas/oficina-api/internal/domain/entity"
)

// ExpenseRepository define o porto de persistência para Expense (despesas do caixa).
type ExpenseRepository interface {
	Create(expense *entity.Expense) error
	GetByID(id string) (*entity.Expense, error)
	Update(expense *entity.Expense) error
	Delete(id string) error
	// ListBetween devolve as despesas com data em [from, to], mais recentes primeiro.
	ListBetween(companyID string, from, to time.Time) ([]*entity.Expense, error)
}
