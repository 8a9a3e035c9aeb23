package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashEntryResponse entrada do caixa: um pagamento com a OS resolvida.
type CashEntryResponse struct {
	PaymentID    string          `json:"payment_id"`
	OrderID      string          `json:"order_id"`
	ClientName   string          `json:"client_name"`
	VehiclePlate string          `json:"vehicle_plate"`
	Method       string          `json:"method"`
	Amount       decimal.Decimal `json:"amount"`
	PaidOn       string          `json:"paid_on"`
}

// CreateExpenseRequest lançamento de despesa avulsa.
type CreateExpenseRequest struct {
	Description string          `json:"description" validate:"required,min=1,max=300"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	SpentOn     string          `json:"spent_on"` // vazio = hoje
}

// UpdateExpenseRequest edição de despesa.
type UpdateExpenseRequest struct {
	Description *string          `json:"description" validate:"omitempty,min=1,max=300"`
	Amount      *decimal.Decimal `json:"amount"`
	SpentOn     *string          `json:"spent_on"`
}

// ExpenseResponse saída de uma despesa.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	SpentOn     string          `json:"spent_on"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CashSummaryResponse o caixa do período: entradas, despesas e totais.
type CashSummaryResponse struct {
	From     string              `json:"from"`
	To       string              `json:"to"`
	Income   decimal.Decimal     `json:"income"`
	Expense  decimal.Decimal     `json:"expense"`
	Balance  decimal.Decimal     `json:"balance"`
	Entries  []CashEntryResponse `json:"entries"`
	Expenses []ExpenseResponse   `json:"expenses"`
}

// CashSeriesPoint ponto das séries do gráfico, alinhado pela chave do período.
type CashSeriesPoint struct {
	Key     string          `json:"key"` // "2025-06-03", "2025-06" ou "2025"
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// CashMethodSlice fatia do gráfico por forma de pagamento.
type CashMethodSlice struct {
	Method string          `json:"method"`
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

// CashChartsResponse séries e quebra por forma de pagamento do caixa.
type CashChartsResponse struct {
	Granularity string            `json:"granularity"`
	From        string            `json:"from"`
	To          string            `json:"to"`
	Series      []CashSeriesPoint `json:"series"`
	Methods     []CashMethodSlice `json:"methods"`
}
