package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alpsistemas/oficina-api/internal/application/dto"
	"github.com/alpsistemas/oficina-api/internal/domain"
	"github.com/alpsistemas/oficina-api/internal/domain/entity"
	"github.com/alpsistemas/oficina-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashUseCase o caixa da oficina: entradas (pagamentos de OS), despesas
// avulsas e os gráficos do período.
type CashUseCase struct {
	analytics   repository.AnalyticsRepository
	expenseRepo repository.ExpenseRepository
}

// NewCashUseCase constrói o caso de uso do caixa.
func NewCashUseCase(analytics repository.AnalyticsRepository, expenseRepo repository.ExpenseRepository) *CashUseCase {
	return &CashUseCase{analytics: analytics, expenseRepo: expenseRepo}
}

// Summary devolve o movimento do período: entradas, despesas e totais.
// Sem intervalo informado, o mês corrente.
func (uc *CashUseCase) Summary(ctx context.Context, companyID, from, to string) (*dto.CashSummaryResponse, error) {
	fromDate, toDate, err := resolvePeriod(from, to)
	if err != nil {
		return nil, err
	}

	income, err := uc.analytics.ListCashIncome(ctx, companyID, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	expenses, err := uc.expenseRepo.ListBetween(companyID, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	incomeTotal, expenseTotal, err := uc.analytics.GetFinanceTotals(ctx, companyID, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.CashEntryResponse, 0, len(income))
	for _, r := range income {
		entries = append(entries, dto.CashEntryResponse{
			PaymentID:    r.PaymentID,
			OrderID:      r.OrderID,
			ClientName:   r.ClientName,
			VehiclePlate: r.VehiclePlate,
			Method:       r.Method,
			Amount:       r.Amount,
			PaidOn:       r.PaidOn.Format(dto.DateLayout),
		})
	}
	outgoing := make([]dto.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		outgoing = append(outgoing, *toExpenseResponse(e))
	}

	return &dto.CashSummaryResponse{
		From:     fromDate.Format(dto.DateLayout),
		To:       toDate.Format(dto.DateLayout),
		Income:   incomeTotal,
		Expense:  expenseTotal,
		Balance:  incomeTotal.Sub(expenseTotal),
		Entries:  entries,
		Expenses: outgoing,
	}, nil
}

// Charts devolve as séries de entrada e saída alinhadas pela chave do período
// e a quebra por forma de pagamento.
func (uc *CashUseCase) Charts(ctx context.Context, companyID, granularity, from, to string) (*dto.CashChartsResponse, error) {
	switch granularity {
	case "":
		granularity = repository.GranularityDay
	case repository.GranularityDay, repository.GranularityMonth, repository.GranularityYear:
	default:
		return nil, fmt.Errorf("%w: granularidade desconhecida %q", domain.ErrInvalidInput, granularity)
	}
	fromDate, toDate, err := resolvePeriod(from, to)
	if err != nil {
		return nil, err
	}

	incomeSeries, err := uc.analytics.GetIncomeSeries(ctx, companyID, fromDate, toDate, granularity)
	if err != nil {
		return nil, err
	}
	expenseSeries, err := uc.analytics.GetExpenseSeries(ctx, companyID, fromDate, toDate, granularity)
	if err != nil {
		return nil, err
	}
	breakdown, err := uc.analytics.GetPaymentMethodBreakdown(ctx, companyID, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	// União das duas séries pela chave; as chaves ("2025-06-03", "2025-06",
	// "2025") ordenam cronologicamente em ordem lexicográfica.
	points := make(map[string]*dto.CashSeriesPoint)
	point := func(key string) *dto.CashSeriesPoint {
		if p, ok := points[key]; ok {
			return p
		}
		p := &dto.CashSeriesPoint{Key: key, Income: decimal.Zero, Expense: decimal.Zero}
		points[key] = p
		return p
	}
	for _, r := range incomeSeries {
		point(r.Key).Income = r.Total
	}
	for _, r := range expenseSeries {
		point(r.Key).Expense = r.Total
	}
	keys := make([]string, 0, len(points))
	for k := range points {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	series := make([]dto.CashSeriesPoint, 0, len(keys))
	for _, k := range keys {
		series = append(series, *points[k])
	}
	methods := make([]dto.CashMethodSlice, 0, len(breakdown))
	for _, m := range breakdown {
		methods = append(methods, dto.CashMethodSlice{Method: m.Method, Count: m.Count, Total: m.Total})
	}

	return &dto.CashChartsResponse{
		Granularity: granularity,
		From:        fromDate.Format(dto.DateLayout),
		To:          toDate.Format(dto.DateLayout),
		Series:      series,
		Methods:     methods,
	}, nil
}

// CreateExpense lança uma despesa avulsa no caixa.
func (uc *CashUseCase) CreateExpense(companyID string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: valor deve ser maior que zero", domain.ErrInvalidInput)
	}
	spentOn := today()
	if in.SpentOn != "" {
		var err error
		if spentOn, err = parseDate(in.SpentOn); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	expense := &entity.Expense{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Description: description,
		Amount:      in.Amount,
		SpentOn:     spentOn,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.expenseRepo.Create(expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// UpdateExpense edita uma despesa da empresa.
func (uc *CashUseCase) UpdateExpense(companyID, expenseID string, in dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	expense, err := uc.expenseRepo.GetByID(expenseID)
	if err != nil {
		return nil, err
	}
	if expense == nil || expense.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		if description == "" {
			return nil, domain.ErrInvalidInput
		}
		expense.Description = description
	}
	if in.Amount != nil {
		if in.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: valor deve ser maior que zero", domain.ErrInvalidInput)
		}
		expense.Amount = *in.Amount
	}
	if in.SpentOn != nil {
		spentOn, err := parseDate(*in.SpentOn)
		if err != nil {
			return nil, err
		}
		expense.SpentOn = spentOn
	}
	expense.UpdatedAt = time.Now()

	if err := uc.expenseRepo.Update(expense); err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// DeleteExpense remove uma despesa da empresa.
func (uc *CashUseCase) DeleteExpense(companyID, expenseID string) error {
	expense, err := uc.expenseRepo.GetByID(expenseID)
	if err != nil {
		return err
	}
	if expense == nil || expense.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return uc.expenseRepo.Delete(expense.ID)
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	if e == nil {
		return nil
	}
	return &dto.ExpenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		SpentOn:     e.SpentOn.Format(dto.DateLayout),
		CreatedAt:   e.CreatedAt,
	}
}
