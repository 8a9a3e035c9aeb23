package repository

import (
	"github.com/shopspring/decimal"

	"github.com/alpsistemas/oficina-api/internal/domain/entity"
)

// ProductRepository define o porto de persistência para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByIDForUpdate trava a linha (SELECT ... FOR UPDATE) para a baixa de estoque na transação.
	GetByIDForUpdate(id string) (*entity.Product, error)
	// GetByName busca pelo nome exato sem diferenciar maiúsculas (unicidade e import CSV).
	GetByName(companyID, name string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock grava o novo estoque; nil desliga o controle de estoque do produto.
	UpdateStock(productID string, stock *decimal.Decimal) error
	// Search busca por nome ou código; criticalOnly devolve só os com estoque <= mínimo.
	Search(companyID, q string, criticalOnly bool, limit, offset int) ([]*entity.Product, error)
	CountSearch(companyID, q string, criticalOnly bool) (int, error)
	// ListByCompany devolve todos os produtos para a exportação CSV, ordenados por nome.
	ListByCompany(companyID string) ([]*entity.Product, error)
}
