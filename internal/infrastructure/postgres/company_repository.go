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

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `
	id, name, tax_id, phone, logo_path, cep, street, number, district, city,
	plan, plan_period, plan_updated_at, plan_expires_at,
	active, payment_confirmed, renewal_period, renewal_requested_at,
	created_at, updated_at`

// CompanyRepo implementação de CompanyRepository (usável com pool ou tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste uma nova empresa.
func (r *CompanyRepo) Create(company *entity.Company) error {
	query := `
		INSERT INTO companies (
			id, name, tax_id, phone, logo_path, cep, street, number, district, city,
			plan, plan_period, plan_updated_at, plan_expires_at,
			active, payment_confirmed, renewal_period, renewal_requested_at,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.Name, company.TaxID, company.Phone, company.LogoPath,
		company.CEP, company.Street, company.Number, company.District, company.City,
		company.Plan, company.PlanPeriod, company.PlanUpdatedAt, company.PlanExpiresAt,
		company.Active, company.PaymentConfirmed, company.RenewalPeriod, company.RenewalRequestedAt,
		company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID busca uma empresa por ID.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	query := `SELECT` + companyColumns + ` FROM companies WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByTaxID busca uma empresa pelo CNPJ/CPF (sem máscara).
func (r *CompanyRepo) GetByTaxID(taxID string) (*entity.Company, error) {
	query := `SELECT` + companyColumns + ` FROM companies WHERE tax_id = $1 AND tax_id <> ''`
	return r.scanOne(r.q.QueryRow(context.Background(), query, taxID))
}

// Update atualiza todos os campos mutáveis da empresa.
func (r *CompanyRepo) Update(company *entity.Company) error {
	query := `
		UPDATE companies SET
			name = $2, tax_id = $3, phone = $4, logo_path = $5,
			cep = $6, street = $7, number = $8, district = $9, city = $10,
			plan = $11, plan_period = $12, plan_updated_at = $13, plan_expires_at = $14,
			active = $15, payment_confirmed = $16, renewal_period = $17, renewal_requested_at = $18,
			updated_at = $19
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		company.ID, company.Name, company.TaxID, company.Phone, company.LogoPath,
		company.CEP, company.Street, company.Number, company.District, company.City,
		company.Plan, company.PlanPeriod, company.PlanUpdatedAt, company.PlanExpiresAt,
		company.Active, company.PaymentConfirmed, company.RenewalPeriod, company.RenewalRequestedAt,
		company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// List filtra empresas para o painel administrativo.
func (r *CompanyRepo) List(filter, q string, limit, offset int) ([]*entity.Company, error) {
	query := `SELECT` + companyColumns + ` FROM companies WHERE 1=1`
	args := []any{}
	switch filter {
	case repository.CompanyFilterPending:
		query += ` AND payment_confirmed = false`
	case repository.CompanyFilterRenewal:
		query += ` AND renewal_period <> ''`
	}
	if q != "" {
		args = append(args, "%"+q+"%")
		query += fmt.Sprintf(` AND (name ILIKE $%d OR tax_id ILIKE $%d)`, len(args), len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CompanyRepo) scanOne(row pgx.Row) (*entity.Company, error) {
	c, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.TaxID, &c.Phone, &c.LogoPath,
		&c.CEP, &c.Street, &c.Number, &c.District, &c.City,
		&c.Plan, &c.PlanPeriod, &c.PlanUpdatedAt, &c.PlanExpiresAt,
		&c.Active, &c.PaymentConfirmed, &c.RenewalPeriod, &c.RenewalRequestedAt,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
