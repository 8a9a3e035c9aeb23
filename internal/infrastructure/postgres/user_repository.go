package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/alpsistemas/oficina-api/internal/domain"
	"github.com/alpsistemas/oficina-api/internal/domain/entity"
	"github.com/alpsistemas/oficina-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `
	id, COALESCE(company_id::text, ''), username, email, name, password_hash, role,
	recovery_email, recovery_phone, active, created_at, updated_at`

// UserRepo implementação do porto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository constrói o adaptador de persistência para usuários.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste um novo usuário. company_id vazio (admin) vira NULL.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, company_id, username, email, name, password_hash, role,
			recovery_email, recovery_phone, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, nilIfEmpty(user.CompanyID), user.Username, user.Email, user.Name,
		user.PasswordHash, user.Role, user.RecoveryEmail, user.RecoveryPhone, user.Active,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID busca um usuário por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByUsername busca sem diferenciar maiúsculas.
func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE lower(username) = lower($1)`
	return r.scanOne(r.q.QueryRow(context.Background(), query, username))
}

// GetByRecoveryEmail busca pelo email de recuperação (fluxo de esqueci a senha).
func (r *UserRepo) GetByRecoveryEmail(email string) (*entity.User, error) {
	query := `SELECT` + userColumns + `
		FROM users WHERE lower(recovery_email) = lower($1) AND recovery_email <> ''
		ORDER BY created_at LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, email))
}

// Update atualiza os campos mutáveis do usuário.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users SET username = $2, email = $3, name = $4, password_hash = $5, role = $6,
			recovery_email = $7, recovery_phone = $8, active = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Username, user.Email, user.Name, user.PasswordHash, user.Role,
		user.RecoveryEmail, user.RecoveryPhone, user.Active, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// ListByCompany lista os usuários da empresa com paginação.
func (r *UserRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.User, error) {
	query := `SELECT` + userColumns + `
		FROM users WHERE company_id = $1 ORDER BY name, username LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// CountActiveByCompany conta usuários ativos e gerentes ativos numa consulta só.
func (r *UserRepo) CountActiveByCompany(companyID string) (total, managers int, err error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE role = 'gerente')
		FROM users WHERE company_id = $1 AND active = true`
	err = r.q.QueryRow(context.Background(), query, companyID).Scan(&total, &managers)
	if err != nil {
		return 0, 0, fmt.Errorf("count users: %w", err)
	}
	return total, managers, nil
}

// ListManagersByCompany devolve os gerentes ativos (avisos por email).
func (r *UserRepo) ListManagersByCompany(companyID string) ([]*entity.User, error) {
	query := `SELECT` + userColumns + `
		FROM users WHERE company_id = $1 AND role = 'gerente' AND active = true ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list managers: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func (r *UserRepo) scanOne(row pgx.Row) (*entity.User, error) {
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.CompanyID, &u.Username, &u.Email, &u.Name, &u.PasswordHash, &u.Role,
		&u.RecoveryEmail, &u.RecoveryPhone, &u.Active, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
