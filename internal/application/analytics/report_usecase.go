package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alpsistemas/oficina-api/internal/application/dto"
	"github.com/alpsistemas/oficina-api/internal/domain"
	"github.com/alpsistemas/oficina-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// reportPendingLimit máximo de clientes com pendência listados no relatório.
const reportPendingLimit = 50

// ReportUseCase fecha o movimento de um intervalo de datas: fluxo de OS,
// receita contra despesa e as pendências de cobrança.
type ReportUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewReportUseCase constrói o caso de uso.
func NewReportUseCase(analyticsRepo repository.AnalyticsRepository) *ReportUseCase {
	return &ReportUseCase{analyticsRepo: analyticsRepo}
}

// GetReport monta o relatório do período; sem intervalo, o mês corrente.
func (uc *ReportUseCase) GetReport(ctx context.Context, companyID, from, to string) (*dto.ReportResponse, error) {
	fromDate, toDate, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}

	type flowResult struct {
		opened    int
		closed    int
		cancelled int
		err       error
	}
	type financeResult struct {
		income  decimal.Decimal
		expense decimal.Decimal
		err     error
	}
	type statusResult struct {
		rows []repository.StatusCountResult
		err  error
	}
	type pendingResult struct {
		rows []repository.ClientBalanceResult
		err  error
	}

	flowCh := make(chan flowResult, 1)
	financeCh := make(chan financeResult, 1)
	statusCh := make(chan statusResult, 1)
	pendingCh := make(chan pendingResult, 1)

	go func() {
		opened, closed, cancelled, err := uc.analyticsRepo.GetOrderFlowCounts(ctx, companyID, fromDate, toDate)
		flowCh <- flowResult{opened, closed, cancelled, err}
	}()
	go func() {
		income, expense, err := uc.analyticsRepo.GetFinanceTotals(ctx, companyID, fromDate, toDate)
		financeCh <- financeResult{income, expense, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetOrderStatusCounts(ctx, companyID, fromDate, toDate)
		statusCh <- statusResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.ListClientsWithOpenBalance(ctx, companyID, reportPendingLimit)
		pendingCh <- pendingResult{rows, err}
	}()

	flow := <-flowCh
	finance := <-financeCh
	status := <-statusCh
	pending := <-pendingCh

	if flow.err != nil {
		return nil, fmt.Errorf("relatório: fluxo de OS: %w", flow.err)
	}
	if finance.err != nil {
		return nil, fmt.Errorf("relatório: financeiro: %w", finance.err)
	}
	if status.err != nil {
		return nil, fmt.Errorf("relatório: status das OS: %w", status.err)
	}
	if pending.err != nil {
		return nil, fmt.Errorf("relatório: pendências: %w", pending.err)
	}

	pendencias := make([]dto.PendingClientDTO, 0, len(pending.rows))
	for _, r := range pending.rows {
		pendencias = append(pendencias, dto.PendingClientDTO{
			ClientID:   r.ClientID,
			Name:       r.Name,
			Phone:      r.Phone,
			OpenOrders: r.OpenOrders,
			Balance:    r.Balance.Round(2),
		})
	}

	return &dto.ReportResponse{
		From:         fromDate.Format(dto.DateLayout),
		To:           toDate.Format(dto.DateLayout),
		Opened:       flow.opened,
		Closed:       flow.closed,
		Cancelled:    flow.cancelled,
		Income:       finance.income.Round(2),
		Expense:      finance.expense.Round(2),
		Balance:      finance.income.Sub(finance.expense).Round(2),
		StatusCounts: toStatusCounts(status.rows),
		Pendencias:   pendencias,
	}, nil
}

// parseRange interpreta o intervalo pedido; vazio vira o mês corrente e uma
// ponta só vale pelas duas.
func parseRange(from, to string) (time.Time, time.Time, error) {
	if from == "" && to == "" {
		now := time.Now()
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
		return first, first.AddDate(0, 1, -1), nil
	}
	if from == "" {
		from = to
	}
	if to == "" {
		to = from
	}
	fromDate, err := time.Parse(dto.DateLayout, strings.TrimSpace(from))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: data inválida %q (use %s)", domain.ErrInvalidInput, from, dto.DateLayout)
	}
	toDate, err := time.Parse(dto.DateLayout, strings.TrimSpace(to))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: data inválida %q (use %s)", domain.ErrInvalidInput, to, dto.DateLayout)
	}
	if fromDate.After(toDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: intervalo invertido", domain.ErrInvalidInput)
	}
	return fromDate, toDate, nil
}
