package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa um produto ou peça do estoque da oficina.
// Stock nil significa item sem controle de estoque (serviços, peças sob encomenda);
// nesses o consumo em OS não valida nem baixa quantidade.
type Product struct {
	ID          string
	CompanyID   string
	Name        string // único por empresa
	Code        string // código interno ou de barras, opcional
	Description string
	Cost        *decimal.Decimal // custo de compra, opcional
	Price       decimal.Decimal  // preço de venda
	Stock       *decimal.Decimal // quantidade atual; nil = sem controle
	MinStock    decimal.Decimal  // abaixo ou igual disto o produto entra na lista crítica
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StockTracked informa se o produto controla estoque.
func (p Product) StockTracked() bool {
	return p.Stock != nil
}

// CriticalStock informa se o produto está no nível crítico (estoque <= mínimo).
func (p Product) CriticalStock() bool {
	return p.Stock != nil && p.Stock.LessThanOrEqual(p.MinStock)
}
