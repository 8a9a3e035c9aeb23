package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/alpsistemas/oficina-api/internal/domain/entity"
	"github.com/alpsistemas/oficina-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implementação de EmployeeRepository (usável com pool ou tx).
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// Create persiste um novo funcionário.
func (r *EmployeeRepo) Create(employee *entity.Employee) error {
	query := `
		INSERT INTO employees (id, company_id, name, phone, email, hired_on, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		employee.ID, employee.CompanyID, employee.Name, employee.Phone, employee.Email,
		employee.HiredOn, employee.Active, employee.CreatedAt, employee.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByID busca um funcionário por ID.
func (r *EmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	query := `
		SELECT id, company_id, name, phone, email, hired_on, active, created_at, updated_at
		FROM employees WHERE id = $1`
	var e entity.Employee
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.CompanyID, &e.Name, &e.Phone, &e.Email, &e.HiredOn, &e.Active,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}

// Update atualiza um funcionário.
func (r *EmployeeRepo) Update(employee *entity.Employee) error {
	query := `
		UPDATE employees SET name = $2, phone = $3, email = $4, hired_on = $5, active = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		employee.ID, employee.Name, employee.Phone, employee.Email, employee.HiredOn,
		employee.Active, employee.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	return nil
}

// ListByCompany lista os funcionários da empresa, ordenados por nome.
func (r *EmployeeRepo) ListByCompany(companyID string, activeOnly bool) ([]*entity.Employee, error) {
	query := `
		SELECT id, company_id, name, phone, email, hired_on, active, created_at, updated_at
		FROM employees WHERE company_id = $1`
	if activeOnly {
		query += ` AND active = true`
	}
	query += ` ORDER BY name`

	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var list []*entity.Employee
	for rows.Next() {
		var e entity.Employee
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.Name, &e.Phone, &e.Email, &e.HiredOn,
			&e.Active, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
