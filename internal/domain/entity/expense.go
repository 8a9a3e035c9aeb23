package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense representa uma despesa lançada no caixa (aluguel, peças, contas).
type Expense struct {
	ID          string
	CompanyID   string
	Description string
	Amount      decimal.Decimal
	SpentOn     time.Time // data da despesa
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
