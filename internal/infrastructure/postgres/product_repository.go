package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/alpsistemas/oficina-api/internal/domain"
	"github.com/alpsistemas/oficina-api/internal/domain/entity"
	"github.com/alpsistemas/oficina-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `
	id, company_id, name, description, code, cost, price, stock, min_stock, created_at, updated_at`

// ProductRepo implementação de ProductRepository sobre PostgreSQL (usável com pool ou tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository constrói o adaptador de persistência de produtos. Passar pool ou tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste um novo produto. Nome duplicado na empresa vira ErrDuplicate.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, company_id, name, description, code, cost, price, stock, min_stock,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.CompanyID, product.Name, product.Description, product.Code,
		product.Cost, product.Price, product.Stock, product.MinStock,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID busca um produto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT` + productColumns + ` FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByIDForUpdate busca um produto travando a linha (FOR UPDATE). Usar dentro de transação
// ao baixar estoque, para serializar itens concorrentes da mesma peça.
func (r *ProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	query := `SELECT` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByName busca um produto pelo nome exato dentro da empresa (case-insensitive).
// Usado pelo upsert da importação CSV.
func (r *ProductRepo) GetByName(companyID, name string) (*entity.Product, error) {
	query := `SELECT` + productColumns + ` FROM products WHERE company_id = $1 AND lower(name) = lower($2)`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, name))
}

// Update atualiza os dados cadastrais e de preço do produto.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, code = $4, cost = $5, price = $6,
			stock = $7, min_stock = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Code, product.Cost,
		product.Price, product.Stock, product.MinStock, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock grava apenas o saldo de estoque (nil = sem controle).
func (r *ProductRepo) UpdateStock(productID string, stock *decimal.Decimal) error {
	query := `UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, productID, stock)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// Search lista produtos da empresa com filtro textual opcional (nome, código) e
// filtro de estoque crítico, paginado, ordenado por nome.
func (r *ProductRepo) Search(companyID, q string, criticalOnly bool, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT` + productColumns + ` FROM products WHERE company_id = $1`
	args := []any{companyID}
	query, args = appendProductFilters(query, args, q, criticalOnly)
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// CountSearch conta os produtos que a mesma busca de Search devolveria.
func (r *ProductRepo) CountSearch(companyID, q string, criticalOnly bool) (int, error) {
	query := `SELECT COUNT(*) FROM products WHERE company_id = $1`
	args := []any{companyID}
	query, args = appendProductFilters(query, args, q, criticalOnly)

	var total int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return total, nil
}

// ListByCompany devolve todos os produtos da empresa ordenados por nome (exportação CSV).
func (r *ProductRepo) ListByCompany(companyID string) ([]*entity.Product, error) {
	query := `SELECT` + productColumns + ` FROM products WHERE company_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

func appendProductFilters(query string, args []any, q string, criticalOnly bool) (string, []any) {
	if q != "" {
		n := len(args) + 1
		query += fmt.Sprintf(" AND (name ILIKE $%d OR code ILIKE $%d)", n, n)
		args = append(args, "%"+q+"%")
	}
	if criticalOnly {
		query += " AND stock IS NOT NULL AND stock <= min_stock"
	}
	return query, args
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.Description, &p.Code, &p.Cost, &p.Price,
		&p.Stock, &p.MinStock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Name, &p.Description, &p.Code, &p.Cost,
			&p.Price, &p.Stock, &p.MinStock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
