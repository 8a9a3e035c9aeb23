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

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `
	id, company_id, name, phone, email, document, cep, street, number, district, city,
	created_at, updated_at`

// ClientRepo implementação de ClientRepository (usável com pool ou tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste um novo cliente.
func (r *ClientRepo) Create(client *entity.Client) error {
	query := `
		INSERT INTO clients (id, company_id, name, phone, email, document,
			cep, street, number, district, city, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.CompanyID, client.Name, client.Phone, client.Email, client.Document,
		client.CEP, client.Street, client.Number, client.District, client.City,
		client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID busca um cliente por ID.
func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	query := `SELECT` + clientColumns + ` FROM clients WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByNameAndPhone reutiliza o cadastro na agenda rápida: casa pelo nome
// (já em maiúsculas) e prefere o telefone igual quando há homônimos.
func (r *ClientRepo) GetByNameAndPhone(companyID, name, phone string) (*entity.Client, error) {
	query := `SELECT` + clientColumns + `
		FROM clients WHERE company_id = $1 AND name = $2
		ORDER BY (phone = $3) DESC, created_at LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, name, phone))
}

// Update atualiza um cliente.
func (r *ClientRepo) Update(client *entity.Client) error {
	query := `
		UPDATE clients SET name = $2, phone = $3, email = $4, document = $5,
			cep = $6, street = $7, number = $8, district = $9, city = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, client.Phone, client.Email, client.Document,
		client.CEP, client.Street, client.Number, client.District, client.City,
		client.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// Search busca por nome, telefone, documento ou placa de veículo do cliente.
func (r *ClientRepo) Search(companyID, q string, limit, offset int) ([]*entity.Client, error) {
	query := `SELECT` + clientColumns + ` FROM clients c WHERE c.company_id = $1`
	args := []any{companyID}
	if q != "" {
		args = append(args, "%"+q+"%")
		query += fmt.Sprintf(searchClientClause, len(args), len(args), len(args), len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY c.name LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("search clients: %w", err)
	}
	defer rows.Close()

	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// CountSearch conta o total da busca para a paginação.
func (r *ClientRepo) CountSearch(companyID, q string) (int, error) {
	query := `SELECT COUNT(*) FROM clients c WHERE c.company_id = $1`
	args := []any{companyID}
	if q != "" {
		args = append(args, "%"+q+"%")
		query += fmt.Sprintf(searchClientClause, len(args), len(args), len(args), len(args))
	}
	var total int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	return total, nil
}

// searchClientClause filtra por nome/telefone/documento ou placa de veículo do cliente.
const searchClientClause = ` AND (c.name ILIKE $%d OR c.phone ILIKE $%d OR c.document ILIKE $%d
		OR EXISTS (SELECT 1 FROM vehicles v WHERE v.client_id = c.id AND v.plate ILIKE $%d))`

func (r *ClientRepo) scanOne(row pgx.Row) (*entity.Client, error) {
	c, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.Phone, &c.Email, &c.Document,
		&c.CEP, &c.Street, &c.Number, &c.District, &c.City,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
