package dto

import "github.com/shopspring/decimal"

// StatusCountDTO quantidade de ordens em um status.
type StatusCountDTO struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// DashboardSummaryDTO resposta de GET /api/v1/dashboard.
// KPIs leves para o topo do painel: carga atual da oficina, receita
// dos últimos 30 dias, agenda de hoje e estoque crítico.
type DashboardSummaryDTO struct {
	StatusCounts []StatusCountDTO `json:"status_counts"` // ordens abertas por status

	Income30Days decimal.Decimal `json:"income_30_days"` // receita recebida nos últimos 30 dias

	AppointmentsToday int `json:"appointments_today"` // compromissos agendados para hoje
	CriticalStock     int `json:"critical_stock"`     // produtos com estoque <= mínimo

	DateLabel string `json:"date_label"` // ex: "Agosto 2026"
}

// MonthProfitDTO ponto da série mensal de lucro.
type MonthProfitDTO struct {
	Key     string          `json:"key"`   // "2026-08"
	Label   string          `json:"label"` // "Ago/2026"
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Profit  decimal.Decimal `json:"profit"` // income - expense
}

// MechanicLoadDTO ordens atribuídas por mecânico no período.
type MechanicLoadDTO struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Orders     int    `json:"orders"`
}

// TopProductDTO produto mais usado em ordens do período.
type TopProductDTO struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
}

// TopClientDTO cliente que mais pagou no período.
type TopClientDTO struct {
	ClientID string          `json:"client_id"`
	Name     string          `json:"name"`
	Orders   int             `json:"orders"`
	Total    decimal.Decimal `json:"total"`
}

// PendingClientDTO cliente com saldo devedor em ordens não canceladas.
type PendingClientDTO struct {
	ClientID   string          `json:"client_id"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone"`
	OpenOrders int             `json:"open_orders"`
	Balance    decimal.Decimal `json:"balance"`
}

// DashboardDataDTO resposta de GET /api/v1/dashboard/data.
// Painel completo: série de lucro dos últimos 12 meses, distribuição de
// carga, produtos e clientes destaque e indicadores de recorrência.
type DashboardDataDTO struct {
	MonthlyProfit []MonthProfitDTO `json:"monthly_profit"` // últimos 12 meses, do mais antigo ao atual
	MonthBalance  decimal.Decimal  `json:"month_balance"`  // lucro do mês corrente

	OrdersPerMechanic []MechanicLoadDTO `json:"orders_per_mechanic"`
	StatusCounts      []StatusCountDTO  `json:"status_counts"`
	AvgCompletionDays decimal.Decimal   `json:"avg_completion_days"`

	TopProducts      []TopProductDTO `json:"top_products"`
	CriticalProducts int             `json:"critical_products"`

	TopClients     []TopClientDTO  `json:"top_clients"`
	RecurrenceRate decimal.Decimal `json:"recurrence_rate"` // % de clientes com 2+ ordens

	DateLabel string `json:"date_label"`
}

// ReportResponse resposta de GET /api/v1/reports.
// Fecha o movimento de um intervalo arbitrário de datas.
type ReportResponse struct {
	From string `json:"from"`
	To   string `json:"to"`

	Opened    int `json:"opened"`    // ordens abertas no intervalo
	Closed    int `json:"closed"`    // ordens finalizadas no intervalo
	Cancelled int `json:"cancelled"` // ordens canceladas no intervalo

	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`

	StatusCounts []StatusCountDTO   `json:"status_counts"`
	Pendencias   []PendingClientDTO `json:"pendencias"`
}
