package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpsistemas/oficina-api/internal/application/dto"
	"github.com/alpsistemas/oficina-api/internal/application/usecase"
	"github.com/alpsistemas/oficina-api/internal/domain"
	"github.com/alpsistemas/oficina-api/internal/domain/repository"
)

type cashFixture struct {
	uc        *usecase.CashUseCase
	analytics *fakeAnalyticsRepo
	expenses  *fakeExpenseRepo
}

func newCashFixture(t *testing.T) *cashFixture {
	t.Helper()
	analytics := newFakeAnalyticsRepo()
	expenses := newFakeExpenseRepo()
	return &cashFixture{
		uc:        usecase.NewCashUseCase(analytics, expenses),
		analytics: analytics,
		expenses:  expenses,
	}
}

func TestCashCreateExpense_LancaDespesa(t *testing.T) {
	f := newCashFixture(t)

	out, err := f.uc.CreateExpense(testCompanyID, dto.CreateExpenseRequest{
		Description: "  Aluguel do galpão  ",
		Amount:      dec("1200.50"),
		SpentOn:     "2026-08-05",
	})
	require.NoError(t, err)
	assert.Equal(t, "Aluguel do galpão", out.Description)
	assert.True(t, out.Amount.Equal(dec("1200.50")))
	assert.Equal(t, "2026-08-05", out.SpentOn)
}

func TestCashCreateExpense_SemDataUsaHoje(t *testing.T) {
	f := newCashFixture(t)

	out, err := f.uc.CreateExpense(testCompanyID, dto.CreateExpenseRequest{
		Description: "Café da copa",
		Amount:      dec("35"),
	})
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format(dto.DateLayout), out.SpentOn)
}

func TestCashCreateExpense_Validacoes(t *testing.T) {
	f := newCashFixture(t)

	_, err := f.uc.CreateExpense(testCompanyID, dto.CreateExpenseRequest{Description: "   ", Amount: dec("10")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "descrição em branco")

	_, err = f.uc.CreateExpense(testCompanyID, dto.CreateExpenseRequest{Description: "Peça", Amount: dec("0")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "valor zero")

	_, err = f.uc.CreateExpense(testCompanyID, dto.CreateExpenseRequest{Description: "Peça", Amount: dec("-5")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "valor negativo")

	_, err = f.uc.CreateExpense(testCompanyID, dto.CreateExpenseRequest{
		Description: "Peça", Amount: dec("10"), SpentOn: "05/08/2026",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "data fora do layout")
}

func TestCashUpdateExpense_EditaEConfereAEmpresa(t *testing.T) {
	f := newCashFixture(t)
	created, err := f.uc.CreateExpense(testCompanyID, dto.CreateExpenseRequest{
		Description: "Aluguel",
		Amount:      dec("1200"),
		SpentOn:     "2026-08-05",
	})
	require.NoError(t, err)

	out, err := f.uc.UpdateExpense(testCompanyID, created.ID, dto.UpdateExpenseRequest{
		Amount:  decPtr("1350"),
		SpentOn: strPtr("2026-08-06"),
	})
	require.NoError(t, err)
	assert.True(t, out.Amount.Equal(dec("1350")))
	assert.Equal(t, "2026-08-06", out.SpentOn)

	_, err = f.uc.UpdateExpense(testCompanyID, created.ID, dto.UpdateExpenseRequest{Amount: decPtr("0")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.UpdateExpense("outra-empresa", created.ID, dto.UpdateExpenseRequest{Amount: decPtr("10")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCashDeleteExpense_SoDentroDaEmpresa(t *testing.T) {
	f := newCashFixture(t)
	created, err := f.uc.CreateExpense(testCompanyID, dto.CreateExpenseRequest{
		Description: "Descartáveis",
		Amount:      dec("40"),
	})
	require.NoError(t, err)

	assert.ErrorIs(t, f.uc.DeleteExpense("outra-empresa", created.ID), domain.ErrNotFound)
	require.NoError(t, f.uc.DeleteExpense(testCompanyID, created.ID))
	assert.ErrorIs(t, f.uc.DeleteExpense(testCompanyID, created.ID), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fechamento e gráficos
// ──────────────────────────────────────────────────────────────────────────────

func TestCashSummary_FechaOCaixaDoPeriodo(t *testing.T) {
	f := newCashFixture(t)
	f.analytics.incomeTotal = dec("300")
	f.analytics.expenseTotal = dec("120")
	f.analytics.income = []repository.CashIncomeResult{{
		PaymentID:    "pag-1",
		OrderID:      "os-1",
		ClientName:   "JOÃO DA SILVA",
		VehiclePlate: "ABC1D23",
		Method:       "PIX",
		Amount:       dec("300"),
		PaidOn:       time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
	}}

	for _, e := range []struct{ desc, amount, date string }{
		{"Aluguel", "100", "2026-08-05"},
		{"Material de limpeza", "20", "2026-08-12"},
		{"Fora do período", "999", "2026-07-01"},
	} {
		_, err := f.uc.CreateExpense(testCompanyID, dto.CreateExpenseRequest{
			Description: e.desc, Amount: dec(e.amount), SpentOn: e.date,
		})
		require.NoError(t, err)
	}

	out, err := f.uc.Summary(context.Background(), testCompanyID, "2026-08-01", "2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-01", out.From)
	assert.Equal(t, "2026-08-31", out.To)
	assert.True(t, out.Income.Equal(dec("300")))
	assert.True(t, out.Expense.Equal(dec("120")))
	assert.True(t, out.Balance.Equal(dec("180")), "saldo = entradas menos despesas")

	require.Len(t, out.Entries, 1)
	assert.Equal(t, "PIX", out.Entries[0].Method)
	assert.Equal(t, "2026-08-10", out.Entries[0].PaidOn)

	require.Len(t, out.Expenses, 2, "despesa de julho fica de fora")
	assert.Equal(t, "Material de limpeza", out.Expenses[0].Description, "mais recentes primeiro")
}

func TestCashSummary_IntervaloInvertidoFalha(t *testing.T) {
	f := newCashFixture(t)

	_, err := f.uc.Summary(context.Background(), testCompanyID, "2026-08-31", "2026-08-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCashCharts_UneAsSeriesPelaChave(t *testing.T) {
	f := newCashFixture(t)
	f.analytics.incomeSeries = []repository.PeriodTotalResult{
		{Key: "2026-08-01", Total: dec("100")},
		{Key: "2026-08-03", Total: dec("50")},
	}
	f.analytics.expenseSeries = []repository.PeriodTotalResult{
		{Key: "2026-08-02", Total: dec("30")},
		{Key: "2026-08-03", Total: dec("20")},
	}
	f.analytics.methods = []repository.MethodTotalResult{
		{Method: "PIX", Count: 2, Total: dec("120")},
		{Method: "DINHEIRO", Count: 1, Total: dec("30")},
	}

	out, err := f.uc.Charts(context.Background(), testCompanyID, "", "2026-08-01", "2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, repository.GranularityDay, out.Granularity, "sem granularidade vale o dia")

	require.Len(t, out.Series, 3, "união das chaves das duas séries")
	assert.Equal(t, "2026-08-01", out.Series[0].Key)
	assert.True(t, out.Series[0].Income.Equal(dec("100")))
	assert.True(t, out.Series[0].Expense.IsZero(), "dia sem despesa entra zerado")
	assert.True(t, out.Series[1].Income.IsZero())
	assert.True(t, out.Series[1].Expense.Equal(dec("30")))
	assert.True(t, out.Series[2].Income.Equal(dec("50")))
	assert.True(t, out.Series[2].Expense.Equal(dec("20")))

	require.Len(t, out.Methods, 2)
	assert.Equal(t, "PIX", out.Methods[0].Method)
	assert.Equal(t, 2, out.Methods[0].Count)
}

func TestCashCharts_GranularidadeDesconhecidaFalha(t *testing.T) {
	f := newCashFixture(t)

	for _, g := range []string{repository.GranularityMonth, repository.GranularityYear} {
		out, err := f.uc.Charts(context.Background(), testCompanyID, g, "2026-01-01", "2026-12-31")
		require.NoError(t, err)
		assert.Equal(t, g, out.Granularity)
	}

	_, err := f.uc.Charts(context.Background(), testCompanyID, "week", "2026-01-01", "2026-12-31")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
