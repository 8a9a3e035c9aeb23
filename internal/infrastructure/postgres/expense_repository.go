package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/alpsistemas/oficina-api/internal/domain/entity"
	"github.com/alpsistemas/oficina-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo implementação de ExpenseRepository (usável com pool ou tx).
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository constrói o adaptador de persistência de despesas avulsas.
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

// Create persiste uma despesa.
func (r *ExpenseRepo) Create(expense *entity.Expense) error {
	query := `
		INSERT INTO expenses (id, company_id, description, amount, spent_on, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		expense.ID, expense.CompanyID, expense.Description, expense.Amount,
		expense.SpentOn, expense.CreatedAt, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// GetByID busca uma despesa por ID.
func (r *ExpenseRepo) GetByID(id string) (*entity.Expense, error) {
	query := `SELECT id, company_id, description, amount, spent_on, created_at, updated_at
		FROM expenses WHERE id = $1`
	var e entity.Expense
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.CompanyID, &e.Description, &e.Amount, &e.SpentOn, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return &e, nil
}

// Update regrava descrição, valor e data da despesa.
func (r *ExpenseRepo) Update(expense *entity.Expense) error {
	query := `
		UPDATE expenses SET description = $2, amount = $3, spent_on = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		expense.ID, expense.Description, expense.Amount, expense.SpentOn, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return nil
}

// Delete remove uma despesa.
func (r *ExpenseRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

// ListBetween devolve as despesas com data em [from, to], mais recentes primeiro.
func (r *ExpenseRepo) ListBetween(companyID string, from, to time.Time) ([]*entity.Expense, error) {
	query := `SELECT id, company_id, description, amount, spent_on, created_at, updated_at
		FROM expenses WHERE company_id = $1 AND spent_on BETWEEN $2 AND $3
		ORDER BY spent_on DESC, created_at DESC`
	rows, err := r.q.Query(context.Background(), query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var list []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.Description, &e.Amount, &e.SpentOn,
			&e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
