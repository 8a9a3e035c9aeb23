package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Granularidades das séries do caixa.
const (
	GranularityDay   = "day"
	GranularityMonth = "month"
	GranularityYear  = "year"
)

// CashIncomeResult linha de entrada do caixa: pagamento com OS e cliente resolvidos.
type CashIncomeResult struct {
	PaymentID    string
	OrderID      string
	ClientName   string
	VehiclePlate string
	Method       string
	Amount       decimal.Decimal
	PaidOn       time.Time
}

// PeriodTotalResult total agregado por período (chave "2025-06-03", "2025-06" ou "2025").
type PeriodTotalResult struct {
	Key   string
	Total decimal.Decimal
}

// MethodTotalResult total por forma de pagamento no período.
type MethodTotalResult struct {
	Method string
	Count  int
	Total  decimal.Decimal
}

// StatusCountResult contagem de OS por status.
type StatusCountResult struct {
	Status string
	Count  int
}

// MechanicCountResult OS atribuídas por funcionário executor.
type MechanicCountResult struct {
	MechanicID   string
	MechanicName string
	Count        int
}

// ProductUsageResult consumo de produto em itens de OS no período.
type ProductUsageResult struct {
	ProductID string
	Name      string
	Quantity  decimal.Decimal
	Revenue   decimal.Decimal
}

// ClientSpendResult gasto acumulado de um cliente no período.
type ClientSpendResult struct {
	ClientID   string
	Name       string
	OrderCount int
	Spend      decimal.Decimal
}

// ClientBalanceResult cliente com saldo em aberto (pendências).
type ClientBalanceResult struct {
	ClientID   string
	Name       string
	Phone      string
	OpenOrders int
	Balance    decimal.Decimal
}

// AnalyticsRepository define as consultas de leitura para caixa, relatórios e dashboard.
// As implementações são read-only (não modificam dados).
type AnalyticsRepository interface {
	// ListCashIncome devolve os pagamentos do período com OS e cliente resolvidos,
	// mais recentes primeiro.
	ListCashIncome(ctx context.Context, companyID string, from, to time.Time) ([]CashIncomeResult, error)

	// GetFinanceTotals devolve receita (pagamentos) e despesa do período.
	// Usa COALESCE para devolver zero quando não há lançamentos.
	GetFinanceTotals(ctx context.Context, companyID string, from, to time.Time) (income, expense decimal.Decimal, err error)

	// GetIncomeSeries e GetExpenseSeries agrupam os totais pela granularidade
	// (ver constantes Granularity*), em ordem cronológica.
	GetIncomeSeries(ctx context.Context, companyID string, from, to time.Time, granularity string) ([]PeriodTotalResult, error)
	GetExpenseSeries(ctx context.Context, companyID string, from, to time.Time, granularity string) ([]PeriodTotalResult, error)

	// GetPaymentMethodBreakdown agrupa os pagamentos do período por forma de pagamento.
	GetPaymentMethodBreakdown(ctx context.Context, companyID string, from, to time.Time) ([]MethodTotalResult, error)

	// GetOrderStatusCounts conta OS por status; período zero considera todas.
	GetOrderStatusCounts(ctx context.Context, companyID string, from, to time.Time) ([]StatusCountResult, error)

	// GetOrderFlowCounts devolve quantas OS abriram, finalizaram e cancelaram no período.
	GetOrderFlowCounts(ctx context.Context, companyID string, from, to time.Time) (opened, closed, cancelled int, err error)

	// GetOrdersPerMechanic conta OS por funcionário executor no período.
	GetOrdersPerMechanic(ctx context.Context, companyID string, from, to time.Time) ([]MechanicCountResult, error)

	// GetAverageCompletionDays devolve a média em dias entre criação e finalização
	// das OS finalizadas no período (0 quando não houve nenhuma).
	GetAverageCompletionDays(ctx context.Context, companyID string, from, to time.Time) (float64, error)

	// GetTopProducts devolve os produtos mais consumidos em itens de OS no período.
	GetTopProducts(ctx context.Context, companyID string, from, to time.Time, limit int) ([]ProductUsageResult, error)

	// GetTopClients devolve os clientes que mais gastaram (pagamentos) no período.
	GetTopClients(ctx context.Context, companyID string, from, to time.Time, limit int) ([]ClientSpendResult, error)

	// GetClientRecurrence devolve o total de clientes com OS e quantos voltaram (>= 2 OS).
	GetClientRecurrence(ctx context.Context, companyID string) (total, returning int, err error)

	// ListClientsWithOpenBalance devolve clientes com OS abertas e saldo devedor positivo.
	ListClientsWithOpenBalance(ctx context.Context, companyID string, limit int) ([]ClientBalanceResult, error)

	// CountAppointmentsOn conta os compromissos da agenda numa data.
	CountAppointmentsOn(ctx context.Context, companyID string, date time.Time) (int, error)

	// CountCriticalStock conta produtos com estoque no nível crítico.
	CountCriticalStock(ctx context.Context, companyID string) (int, error)
}
