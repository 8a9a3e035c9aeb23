package analytics_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpsistemas/oficina-api/internal/application/analytics"
	"github.com/alpsistemas/oficina-api/internal/domain/entity"
	"github.com/alpsistemas/oficina-api/internal/domain/repository"
)

const testCompanyID = "11111111-1111-1111-1111-111111111111"

// ── GetSummary ──────────────────────────────────────────────────────

func TestDashboardGetSummary_KPIsDoTopo(t *testing.T) {
	stub := newStubAnalytics()
	stub.statusCounts = []repository.StatusCountResult{
		{Status: entity.OrderStatusAberta, Count: 2},
		{Status: entity.OrderStatusExecucao, Count: 1},
	}
	stub.income = dec("1500.555")
	stub.appointmentsToday = 3
	stub.criticalStock = 2

	uc := analytics.NewDashboardUseCase(stub)

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	out, err := uc.GetSummary(context.Background(), testCompanyID)
	require.NoError(t, err)

	require.Len(t, out.StatusCounts, 2)
	assert.Equal(t, entity.OrderStatusAberta, out.StatusCounts[0].Status)
	assert.Equal(t, 2, out.StatusCounts[0].Count)
	assert.True(t, dec("1500.56").Equal(out.Income30Days), "receita arredondada em 2 casas")
	assert.Equal(t, 3, out.AppointmentsToday)
	assert.Equal(t, 2, out.CriticalStock)
	assert.Contains(t, out.DateLabel, fmt.Sprint(now.Year()))

	// a receita considera os últimos 30 dias, hoje incluso
	assert.WithinDuration(t, dayStart.AddDate(0, 0, -29), stub.financeFrom, time.Minute)
	assert.WithinDuration(t, dayStart.Add(24*time.Hour-time.Nanosecond), stub.financeTo, time.Minute)
}

func TestDashboardGetSummary_FalhaDeConsultaSobe(t *testing.T) {
	stub := newStubAnalytics()
	stub.statusErr = assert.AnError

	_, err := analytics.NewDashboardUseCase(stub).GetSummary(context.Background(), testCompanyID)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "status das OS")

	stub = newStubAnalytics()
	stub.financeErr = assert.AnError

	_, err = analytics.NewDashboardUseCase(stub).GetSummary(context.Background(), testCompanyID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "receita de 30 dias")
}

// ── GetData ─────────────────────────────────────────────────────────

func TestDashboardGetData_MontaOPainelCompleto(t *testing.T) {
	stub := newStubAnalytics()
	stub.incomeSeries = []repository.PeriodTotalResult{
		{Key: "2026-07", Total: dec("1000")},
		{Key: "2026-08", Total: dec("500.40")},
	}
	stub.expenseSeries = []repository.PeriodTotalResult{
		{Key: "2026-08", Total: dec("200.10")},
	}
	stub.income = dec("800.556")
	stub.expense = dec("300.10")
	stub.mechanics = []repository.MechanicCountResult{
		{MechanicID: "mec-1", MechanicName: "Carlos Souza", Count: 5},
		{MechanicID: "", MechanicName: "", Count: 2},
	}
	stub.statusCounts = []repository.StatusCountResult{
		{Status: entity.OrderStatusFinalizada, Count: 8},
	}
	stub.avgDays = 2.35
	stub.topProducts = []repository.ProductUsageResult{
		{ProductID: "prod-1", Name: "Filtro de óleo", Quantity: dec("4"), Revenue: dec("103.596")},
	}
	stub.criticalStock = 3
	stub.topClients = []repository.ClientSpendResult{
		{ClientID: "cli-1", Name: "João da Silva", OrderCount: 4, Spend: dec("999.999")},
	}
	stub.recurrenceTotal = 3
	stub.recurrenceReturning = 1

	out, err := analytics.NewDashboardUseCase(stub).GetData(context.Background(), testCompanyID)
	require.NoError(t, err)

	// série mensal: união das chaves em ordem cronológica, lado ausente zera
	require.Len(t, out.MonthlyProfit, 2)
	julho := out.MonthlyProfit[0]
	assert.Equal(t, "2026-07", julho.Key)
	assert.Equal(t, "Jul/2026", julho.Label)
	assert.True(t, dec("1000").Equal(julho.Income))
	assert.True(t, julho.Expense.IsZero())
	assert.True(t, dec("1000").Equal(julho.Profit))

	agosto := out.MonthlyProfit[1]
	assert.Equal(t, "Ago/2026", agosto.Label)
	assert.True(t, dec("300.30").Equal(agosto.Profit), "lucro = receita - despesa")

	assert.True(t, dec("500.46").Equal(out.MonthBalance), "saldo do mês arredondado")
	assert.Equal(t, repository.GranularityMonth, stub.seriesGranularity)

	require.Len(t, out.OrdersPerMechanic, 2)
	assert.Equal(t, "Carlos Souza", out.OrdersPerMechanic[0].Name)
	assert.Equal(t, 5, out.OrdersPerMechanic[0].Orders)
	assert.Equal(t, "Sem executor", out.OrdersPerMechanic[1].Name, "OS sem mecânico entra no rótulo padrão")

	require.Len(t, out.StatusCounts, 1)
	assert.Equal(t, entity.OrderStatusFinalizada, out.StatusCounts[0].Status)
	assert.True(t, dec("2.4").Equal(out.AvgCompletionDays))

	require.Len(t, out.TopProducts, 1)
	assert.Equal(t, "Filtro de óleo", out.TopProducts[0].Name)
	assert.True(t, dec("4").Equal(out.TopProducts[0].Quantity))
	assert.True(t, dec("103.60").Equal(out.TopProducts[0].Total))
	assert.Equal(t, 3, out.CriticalProducts)

	require.Len(t, out.TopClients, 1)
	assert.Equal(t, 4, out.TopClients[0].Orders)
	assert.True(t, dec("1000.00").Equal(out.TopClients[0].Total))

	assert.True(t, dec("33.3").Equal(out.RecurrenceRate), "1 de 3 clientes voltou")
	assert.Contains(t, out.DateLabel, fmt.Sprint(time.Now().Year()))
}

func TestDashboardGetData_SemMovimentoNaoDivide(t *testing.T) {
	stub := newStubAnalytics()

	out, err := analytics.NewDashboardUseCase(stub).GetData(context.Background(), testCompanyID)
	require.NoError(t, err)

	assert.Empty(t, out.MonthlyProfit)
	assert.True(t, out.MonthBalance.IsZero())
	assert.True(t, out.RecurrenceRate.IsZero(), "sem clientes a taxa fica em zero")
	assert.True(t, out.AvgCompletionDays.IsZero())
}

func TestDashboardGetData_FalhaDeConsultaSobe(t *testing.T) {
	stub := newStubAnalytics()
	stub.financeErr = assert.AnError

	_, err := analytics.NewDashboardUseCase(stub).GetData(context.Background(), testCompanyID)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "financeiro")
}
