package analytics_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alpsistemas/oficina-api/internal/domain/repository"
)

// stubAnalytics devolve valores pré-configurados e captura alguns argumentos
// das chamadas para os testes conferirem a janela consultada.
type stubAnalytics struct {
	statusCounts []repository.StatusCountResult
	statusErr    error

	income     decimal.Decimal
	expense    decimal.Decimal
	financeErr error

	incomeSeries  []repository.PeriodTotalResult
	expenseSeries []repository.PeriodTotalResult
	methods       []repository.MethodTotalResult

	flowOpened    int
	flowClosed    int
	flowCancelled int
	flowErr       error

	mechanics []repository.MechanicCountResult
	avgDays   float64

	topProducts []repository.ProductUsageResult
	topClients  []repository.ClientSpendResult

	recurrenceTotal     int
	recurrenceReturning int

	openBalances      []repository.ClientBalanceResult
	appointmentsToday int
	criticalStock     int

	financeFrom       time.Time
	financeTo         time.Time
	seriesGranularity string
}

var _ repository.AnalyticsRepository = (*stubAnalytics)(nil)

func newStubAnalytics() *stubAnalytics {
	return &stubAnalytics{income: decimal.Zero, expense: decimal.Zero}
}

func (s *stubAnalytics) ListCashIncome(_ context.Context, _ string, _, _ time.Time) ([]repository.CashIncomeResult, error) {
	return nil, nil
}

func (s *stubAnalytics) GetFinanceTotals(_ context.Context, _ string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	s.financeFrom, s.financeTo = from, to
	return s.income, s.expense, s.financeErr
}

func (s *stubAnalytics) GetIncomeSeries(_ context.Context, _ string, _, _ time.Time, granularity string) ([]repository.PeriodTotalResult, error) {
	s.seriesGranularity = granularity
	return s.incomeSeries, nil
}

func (s *stubAnalytics) GetExpenseSeries(_ context.Context, _ string, _, _ time.Time, _ string) ([]repository.PeriodTotalResult, error) {
	return s.expenseSeries, nil
}

func (s *stubAnalytics) GetPaymentMethodBreakdown(_ context.Context, _ string, _, _ time.Time) ([]repository.MethodTotalResult, error) {
	return s.methods, nil
}

func (s *stubAnalytics) GetOrderStatusCounts(_ context.Context, _ string, _, _ time.Time) ([]repository.StatusCountResult, error) {
	return s.statusCounts, s.statusErr
}

func (s *stubAnalytics) GetOrderFlowCounts(_ context.Context, _ string, _, _ time.Time) (int, int, int, error) {
	return s.flowOpened, s.flowClosed, s.flowCancelled, s.flowErr
}

func (s *stubAnalytics) GetOrdersPerMechanic(_ context.Context, _ string, _, _ time.Time) ([]repository.MechanicCountResult, error) {
	return s.mechanics, nil
}

func (s *stubAnalytics) GetAverageCompletionDays(_ context.Context, _ string, _, _ time.Time) (float64, error) {
	return s.avgDays, nil
}

func (s *stubAnalytics) GetTopProducts(_ context.Context, _ string, _, _ time.Time, _ int) ([]repository.ProductUsageResult, error) {
	return s.topProducts, nil
}

func (s *stubAnalytics) GetTopClients(_ context.Context, _ string, _, _ time.Time, _ int) ([]repository.ClientSpendResult, error) {
	return s.topClients, nil
}

func (s *stubAnalytics) GetClientRecurrence(_ context.Context, _ string) (int, int, error) {
	return s.recurrenceTotal, s.recurrenceReturning, nil
}

func (s *stubAnalytics) ListClientsWithOpenBalance(_ context.Context, _ string, _ int) ([]repository.ClientBalanceResult, error) {
	return s.openBalances, nil
}

func (s *stubAnalytics) CountAppointmentsOn(_ context.Context, _ string, _ time.Time) (int, error) {
	return s.appointmentsToday, nil
}

func (s *stubAnalytics) CountCriticalStock(_ context.Context, _ string) (int, error) {
	return s.criticalStock, nil
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}
