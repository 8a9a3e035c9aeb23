package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest cadastro de produto/peça. Stock nil = sem controle de
// estoque; Cost nil = custo não informado.
type CreateProductRequest struct {
	Name        string           `json:"name" validate:"required,min=1,max=200"`
	Description string           `json:"description"`
	Code        string           `json:"code"`
	Cost        *decimal.Decimal `json:"cost"`
	Price       decimal.Decimal  `json:"price"`
	Stock       *decimal.Decimal `json:"stock"`
	MinStock    decimal.Decimal  `json:"min_stock"`
}

// UpdateProductRequest atualização parcial do produto.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	Code        *string          `json:"code"`
	Cost        *decimal.Decimal `json:"cost"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *decimal.Decimal `json:"stock"`
	MinStock    *decimal.Decimal `json:"min_stock"`
}

// ProductResponse saída de um produto; Critical marca estoque no nível mínimo.
type ProductResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Code        string           `json:"code,omitempty"`
	Cost        *decimal.Decimal `json:"cost,omitempty"`
	Price       decimal.Decimal  `json:"price"`
	Stock       *decimal.Decimal `json:"stock,omitempty"`
	MinStock    decimal.Decimal  `json:"min_stock"`
	Critical    bool             `json:"critical"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ProductListResponse lista paginada de produtos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ImportLineError erro de uma linha da planilha importada.
type ImportLineError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ImportReport resultado da importação CSV de produtos.
type ImportReport struct {
	Created int               `json:"created"`
	Updated int               `json:"updated"`
	Skipped int               `json:"skipped"`
	Errors  []ImportLineError `json:"errors,omitempty"`
}
