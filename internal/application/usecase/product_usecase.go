package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/alpsistemas/oficina-api/internal/application/dto"
	"github.com/alpsistemas/oficina-api/internal/domain"
	"github.com/alpsistemas/oficina-api/internal/domain/entity"
	"github.com/alpsistemas/oficina-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductUseCase cadastro de produtos/peças e importação e exportação da
// planilha de estoque.
type ProductUseCase struct {
	repo repository.ProductRepository
	csv  ProductCSVCodec
}

// NewProductUseCase constrói o caso de uso de produtos.
func NewProductUseCase(repo repository.ProductRepository, csv ProductCSVCodec) *ProductUseCase {
	return &ProductUseCase{repo: repo, csv: csv}
}

// Search busca produtos por nome ou código; criticalOnly devolve só os com
// estoque no nível crítico.
func (uc *ProductUseCase) Search(companyID, q string, criticalOnly bool, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	q = strings.TrimSpace(q)

	list, err := uc.repo.Search(companyID, q, criticalOnly, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.CountSearch(companyID, q, criticalOnly)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Create cadastra um produto. O nome é único por empresa, sem diferenciar
// maiúsculas.
func (uc *ProductUseCase) Create(companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := validateProductValues(in.Cost, in.Price, in.Stock, in.MinStock); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByName(companyID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: produto %s já cadastrado", domain.ErrDuplicate, name)
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Name:        name,
		Code:        strings.TrimSpace(in.Code),
		Description: strings.TrimSpace(in.Description),
		Cost:        in.Cost,
		Price:       in.Price,
		Stock:       in.Stock,
		MinStock:    in.MinStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Get devolve um produto da empresa.
func (uc *ProductUseCase) Get(companyID, productID string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update altera um produto. Trocar o nome revalida a unicidade.
func (uc *ProductUseCase) Update(companyID, productID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		if !strings.EqualFold(name, product.Name) {
			existing, err := uc.repo.GetByName(companyID, name)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != product.ID {
				return nil, fmt.Errorf("%w: produto %s já cadastrado", domain.ErrDuplicate, name)
			}
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = strings.TrimSpace(*in.Description)
	}
	if in.Code != nil {
		product.Code = strings.TrimSpace(*in.Code)
	}
	if in.Cost != nil {
		product.Cost = in.Cost
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Stock != nil {
		product.Stock = in.Stock
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	if err := validateProductValues(product.Cost, product.Price, product.Stock, product.MinStock); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now()

	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// ImportCSV importa a planilha de produtos. As linhas válidas entram mesmo
// quando outras falham; o upsert é pelo nome, sem diferenciar maiúsculas.
func (uc *ProductUseCase) ImportCSV(companyID string, data []byte) (*dto.ImportReport, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: arquivo vazio", domain.ErrInvalidInput)
	}
	rows, lineErrs, err := uc.csv.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	report := &dto.ImportReport{Errors: lineErrs}
	for _, row := range rows {
		existing, err := uc.repo.GetByName(companyID, row.Name)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			now := time.Now()
			product := &entity.Product{
				ID:          uuid.New().String(),
				CompanyID:   companyID,
				Name:        row.Name,
				Code:        row.Code,
				Description: row.Description,
				Cost:        row.Cost,
				Price:       row.Price,
				Stock:       row.Stock,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := uc.repo.Create(product); err != nil {
				return nil, err
			}
			report.Created++
			continue
		}
		if sameProductRow(existing, row) {
			report.Skipped++
			continue
		}
		// A grafia da planilha vence; MinStock não vem na planilha e fica como está.
		existing.Name = row.Name
		existing.Description = row.Description
		existing.Code = row.Code
		existing.Cost = row.Cost
		existing.Price = row.Price
		existing.Stock = row.Stock
		existing.UpdatedAt = time.Now()
		if err := uc.repo.Update(existing); err != nil {
			return nil, err
		}
		report.Updated++
	}
	return report, nil
}

// ExportCSV gera a planilha com todos os produtos da empresa, no mesmo layout
// aceito pela importação.
func (uc *ProductUseCase) ExportCSV(companyID string) ([]byte, error) {
	products, err := uc.repo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	return uc.csv.Render(products)
}

// validateProductValues rejeita valores monetários ou de estoque negativos.
func validateProductValues(cost *decimal.Decimal, price decimal.Decimal, stock *decimal.Decimal, minStock decimal.Decimal) error {
	negative := price.IsNegative() || minStock.IsNegative() ||
		(cost != nil && cost.IsNegative()) ||
		(stock != nil && stock.IsNegative())
	if negative {
		return fmt.Errorf("%w: valores não podem ser negativos", domain.ErrInvalidInput)
	}
	return nil
}

// sameProductRow diz se a linha importada não muda nada no produto existente.
func sameProductRow(p *entity.Product, row ProductCSVRow) bool {
	return p.Name == row.Name &&
		p.Description == row.Description &&
		p.Code == row.Code &&
		p.Price.Equal(row.Price) &&
		equalNullDecimal(p.Cost, row.Cost) &&
		equalNullDecimal(p.Stock, row.Stock)
}

func equalNullDecimal(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Code:        p.Code,
		Cost:        p.Cost,
		Price:       p.Price,
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		Critical:    p.CriticalStock(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
