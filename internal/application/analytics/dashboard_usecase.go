// Package analytics reúne os casos de uso de leitura do painel e dos
// relatórios gerenciais da oficina.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/alpsistemas/oficina-api/internal/application/dto"
	"github.com/alpsistemas/oficina-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Limites e janela dos widgets do painel.
const (
	dashboardTopProducts = 10
	dashboardTopClients  = 10
	dashboardMonths      = 12
)

var (
	hundred = decimal.NewFromInt(100)

	monthShort = [...]string{
		"Jan", "Fev", "Mar", "Abr", "Mai", "Jun",
		"Jul", "Ago", "Set", "Out", "Nov", "Dez",
	}
	monthFull = [...]string{
		"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	}
)

// DashboardUseCase monta o painel da oficina a partir do AnalyticsRepository
// (consultas read-only); não toca nas tabelas diretamente.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase constrói o caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary constrói os KPIs leves do topo do painel.
//
// Quatro consultas em paralelo:
//  1. GetOrderStatusCounts (todas)   → carga atual por status
//  2. GetFinanceTotals (30 dias)     → receita recebida
//  3. CountAppointmentsOn (hoje)     → agenda do dia
//  4. CountCriticalStock             → produtos no nível crítico
func (uc *DashboardUseCase) GetSummary(ctx context.Context, companyID string) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	incomeFrom := todayStart.AddDate(0, 0, -29) // últimos 30 dias, hoje incluso

	type statusResult struct {
		rows []repository.StatusCountResult
		err  error
	}
	type incomeResult struct {
		income decimal.Decimal
		err    error
	}
	type countResult struct {
		n   int
		err error
	}

	statusCh := make(chan statusResult, 1)
	incomeCh := make(chan incomeResult, 1)
	agendaCh := make(chan countResult, 1)
	stockCh := make(chan countResult, 1)

	go func() {
		rows, err := uc.analyticsRepo.GetOrderStatusCounts(ctx, companyID, time.Time{}, time.Time{})
		statusCh <- statusResult{rows, err}
	}()
	go func() {
		income, _, err := uc.analyticsRepo.GetFinanceTotals(ctx, companyID, incomeFrom, todayEnd)
		incomeCh <- incomeResult{income, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountAppointmentsOn(ctx, companyID, todayStart)
		agendaCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountCriticalStock(ctx, companyID)
		stockCh <- countResult{n, err}
	}()

	status := <-statusCh
	income := <-incomeCh
	agenda := <-agendaCh
	stock := <-stockCh

	if status.err != nil {
		return nil, fmt.Errorf("dashboard: status das OS: %w", status.err)
	}
	if income.err != nil {
		return nil, fmt.Errorf("dashboard: receita de 30 dias: %w", income.err)
	}
	if agenda.err != nil {
		return nil, fmt.Errorf("dashboard: agenda de hoje: %w", agenda.err)
	}
	if stock.err != nil {
		return nil, fmt.Errorf("dashboard: estoque crítico: %w", stock.err)
	}

	return &dto.DashboardSummaryDTO{
		StatusCounts:      toStatusCounts(status.rows),
		Income30Days:      income.income.Round(2),
		AppointmentsToday: agenda.n,
		CriticalStock:     stock.n,
		DateLabel:         monthLabel(now),
	}, nil
}

// GetData constrói o painel completo: série de lucro dos últimos 12 meses,
// distribuição de carga, produtos e clientes destaque e recorrência.
//
// As consultas rodam em quatro goroutines agrupadas por assunto (financeiro,
// operação, produtos, clientes).
func (uc *DashboardUseCase) GetData(ctx context.Context, companyID string) (*dto.DashboardDataDTO, error) {
	now := time.Now()
	todayEnd := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		Add(24*time.Hour - time.Nanosecond)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	seriesFrom := monthStart.AddDate(0, -(dashboardMonths - 1), 0)

	type financeResult struct {
		income       []repository.PeriodTotalResult
		expense      []repository.PeriodTotalResult
		monthIncome  decimal.Decimal
		monthExpense decimal.Decimal
		err          error
	}
	type opsResult struct {
		mechanics []repository.MechanicCountResult
		statuses  []repository.StatusCountResult
		avgDays   float64
		err       error
	}
	type productsResult struct {
		top      []repository.ProductUsageResult
		critical int
		err      error
	}
	type clientsResult struct {
		top       []repository.ClientSpendResult
		total     int
		returning int
		err       error
	}

	financeCh := make(chan financeResult, 1)
	opsCh := make(chan opsResult, 1)
	productsCh := make(chan productsResult, 1)
	clientsCh := make(chan clientsResult, 1)

	go func() {
		var r financeResult
		r.income, r.err = uc.analyticsRepo.GetIncomeSeries(ctx, companyID, seriesFrom, todayEnd, repository.GranularityMonth)
		if r.err == nil {
			r.expense, r.err = uc.analyticsRepo.GetExpenseSeries(ctx, companyID, seriesFrom, todayEnd, repository.GranularityMonth)
		}
		if r.err == nil {
			r.monthIncome, r.monthExpense, r.err = uc.analyticsRepo.GetFinanceTotals(ctx, companyID, monthStart, todayEnd)
		}
		financeCh <- r
	}()
	go func() {
		var r opsResult
		r.mechanics, r.err = uc.analyticsRepo.GetOrdersPerMechanic(ctx, companyID, seriesFrom, todayEnd)
		if r.err == nil {
			r.statuses, r.err = uc.analyticsRepo.GetOrderStatusCounts(ctx, companyID, seriesFrom, todayEnd)
		}
		if r.err == nil {
			r.avgDays, r.err = uc.analyticsRepo.GetAverageCompletionDays(ctx, companyID, seriesFrom, todayEnd)
		}
		opsCh <- r
	}()
	go func() {
		var r productsResult
		r.top, r.err = uc.analyticsRepo.GetTopProducts(ctx, companyID, seriesFrom, todayEnd, dashboardTopProducts)
		if r.err == nil {
			r.critical, r.err = uc.analyticsRepo.CountCriticalStock(ctx, companyID)
		}
		productsCh <- r
	}()
	go func() {
		var r clientsResult
		r.top, r.err = uc.analyticsRepo.GetTopClients(ctx, companyID, seriesFrom, todayEnd, dashboardTopClients)
		if r.err == nil {
			r.total, r.returning, r.err = uc.analyticsRepo.GetClientRecurrence(ctx, companyID)
		}
		clientsCh <- r
	}()

	finance := <-financeCh
	ops := <-opsCh
	products := <-productsCh
	clients := <-clientsCh

	if finance.err != nil {
		return nil, fmt.Errorf("dashboard: financeiro: %w", finance.err)
	}
	if ops.err != nil {
		return nil, fmt.Errorf("dashboard: operação: %w", ops.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("dashboard: produtos: %w", products.err)
	}
	if clients.err != nil {
		return nil, fmt.Errorf("dashboard: clientes: %w", clients.err)
	}

	mechanics := make([]dto.MechanicLoadDTO, 0, len(ops.mechanics))
	for _, m := range ops.mechanics {
		name := m.MechanicName
		if name == "" {
			name = "Sem executor"
		}
		mechanics = append(mechanics, dto.MechanicLoadDTO{
			EmployeeID: m.MechanicID,
			Name:       name,
			Orders:     m.Count,
		})
	}
	topProducts := make([]dto.TopProductDTO, 0, len(products.top))
	for _, p := range products.top {
		topProducts = append(topProducts, dto.TopProductDTO{
			ProductID: p.ProductID,
			Name:      p.Name,
			Quantity:  p.Quantity,
			Total:     p.Revenue.Round(2),
		})
	}
	topClients := make([]dto.TopClientDTO, 0, len(clients.top))
	for _, c := range clients.top {
		topClients = append(topClients, dto.TopClientDTO{
			ClientID: c.ClientID,
			Name:     c.Name,
			Orders:   c.OrderCount,
			Total:    c.Spend.Round(2),
		})
	}

	recurrence := decimal.Zero
	if clients.total > 0 {
		recurrence = decimal.NewFromInt(int64(clients.returning)).
			Div(decimal.NewFromInt(int64(clients.total))).
			Mul(hundred).Round(1)
	}

	return &dto.DashboardDataDTO{
		MonthlyProfit:     mergeMonthlyProfit(finance.income, finance.expense),
		MonthBalance:      finance.monthIncome.Sub(finance.monthExpense).Round(2),
		OrdersPerMechanic: mechanics,
		StatusCounts:      toStatusCounts(ops.statuses),
		AvgCompletionDays: decimal.NewFromFloat(ops.avgDays).Round(1),
		TopProducts:       topProducts,
		CriticalProducts:  products.critical,
		TopClients:        topClients,
		RecurrenceRate:    recurrence,
		DateLabel:         monthLabel(now),
	}, nil
}

// mergeMonthlyProfit junta entradas e despesas pela chave "2006-01" em ordem
// cronológica, calculando o lucro de cada mês. Meses sem movimento não
// aparecem.
func mergeMonthlyProfit(income, expense []repository.PeriodTotalResult) []dto.MonthProfitDTO {
	points := make(map[string]*dto.MonthProfitDTO)
	point := func(key string) *dto.MonthProfitDTO {
		if p, ok := points[key]; ok {
			return p
		}
		p := &dto.MonthProfitDTO{Key: key, Label: monthKeyLabel(key)}
		points[key] = p
		return p
	}
	for _, r := range income {
		point(r.Key).Income = r.Total
	}
	for _, r := range expense {
		point(r.Key).Expense = r.Total
	}

	keys := make([]string, 0, len(points))
	for k := range points {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]dto.MonthProfitDTO, 0, len(keys))
	for _, k := range keys {
		p := points[k]
		p.Profit = p.Income.Sub(p.Expense)
		out = append(out, *p)
	}
	return out
}

func toStatusCounts(rows []repository.StatusCountResult) []dto.StatusCountDTO {
	out := make([]dto.StatusCountDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StatusCountDTO{Status: r.Status, Count: r.Count})
	}
	return out
}

// monthKeyLabel converte "2026-08" em "Ago/2026".
func monthKeyLabel(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return fmt.Sprintf("%s/%d", monthShort[t.Month()-1], t.Year())
}

// monthLabel devolve o rótulo do mês corrente, ex: "Agosto 2026".
func monthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", monthFull[t.Month()-1], t.Year())
}
