package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpsistemas/oficina-api/internal/application/analytics"
	"github.com/alpsistemas/oficina-api/internal/application/dto"
	"github.com/alpsistemas/oficina-api/internal/domain"
	"github.com/alpsistemas/oficina-api/internal/domain/entity"
	"github.com/alpsistemas/oficina-api/internal/domain/repository"
)

func TestReportGetReport_FechaOMovimentoDoIntervalo(t *testing.T) {
	stub := newStubAnalytics()
	stub.flowOpened, stub.flowClosed, stub.flowCancelled = 12, 8, 1
	stub.income = dec("5000.005")
	stub.expense = dec("1200")
	stub.statusCounts = []repository.StatusCountResult{
		{Status: entity.OrderStatusAberta, Count: 3},
		{Status: entity.OrderStatusFinalizada, Count: 8},
	}
	stub.openBalances = []repository.ClientBalanceResult{
		{ClientID: "cli-1", Name: "Ana Prado", Phone: "11 97777-1111", OpenOrders: 2, Balance: dec("350.456")},
	}

	out, err := analytics.NewReportUseCase(stub).GetReport(context.Background(), testCompanyID, "2026-08-01", "2026-08-31")
	require.NoError(t, err)

	assert.Equal(t, "2026-08-01", out.From)
	assert.Equal(t, "2026-08-31", out.To)
	assert.Equal(t, 12, out.Opened)
	assert.Equal(t, 8, out.Closed)
	assert.Equal(t, 1, out.Cancelled)

	assert.True(t, dec("5000.01").Equal(out.Income))
	assert.True(t, dec("1200.00").Equal(out.Expense))
	assert.True(t, dec("3800.01").Equal(out.Balance), "saldo calculado antes do arredondamento")

	require.Len(t, out.StatusCounts, 2)
	assert.Equal(t, entity.OrderStatusAberta, out.StatusCounts[0].Status)

	require.Len(t, out.Pendencias, 1)
	pendencia := out.Pendencias[0]
	assert.Equal(t, "Ana Prado", pendencia.Name)
	assert.Equal(t, "11 97777-1111", pendencia.Phone)
	assert.Equal(t, 2, pendencia.OpenOrders)
	assert.True(t, dec("350.46").Equal(pendencia.Balance))
}

func TestReportGetReport_SemIntervaloUsaOMesCorrente(t *testing.T) {
	stub := newStubAnalytics()

	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := first.AddDate(0, 1, -1)

	out, err := analytics.NewReportUseCase(stub).GetReport(context.Background(), testCompanyID, "", "")
	require.NoError(t, err)

	assert.Equal(t, first.Format(dto.DateLayout), out.From)
	assert.Equal(t, last.Format(dto.DateLayout), out.To)
	assert.Empty(t, out.Pendencias)
	assert.True(t, out.Balance.IsZero())
}

func TestReportGetReport_UmaPontaValePelasDuas(t *testing.T) {
	stub := newStubAnalytics()
	uc := analytics.NewReportUseCase(stub)

	out, err := uc.GetReport(context.Background(), testCompanyID, "2026-08-10", "")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-10", out.From)
	assert.Equal(t, "2026-08-10", out.To)

	out, err = uc.GetReport(context.Background(), testCompanyID, "", "2026-08-20")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-20", out.From)
	assert.Equal(t, "2026-08-20", out.To)
}

func TestReportGetReport_IntervaloInvalidoFalha(t *testing.T) {
	stub := newStubAnalytics()
	uc := analytics.NewReportUseCase(stub)

	_, err := uc.GetReport(context.Background(), testCompanyID, "2026-08-31", "2026-08-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "intervalo invertido")

	_, err = uc.GetReport(context.Background(), testCompanyID, "10/08/2026", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "data fora do layout")
}

func TestReportGetReport_FalhaDeConsultaSobe(t *testing.T) {
	stub := newStubAnalytics()
	stub.flowErr = assert.AnError

	_, err := analytics.NewReportUseCase(stub).GetReport(context.Background(), testCompanyID, "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "fluxo de OS")
}
