package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/alpsistemas/oficina-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de leitura para caixa, relatórios e dashboards.
// Sempre sobre o pool: nenhuma dessas consultas participa de transação.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository constrói o adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// ListCashIncome devolve as entradas do caixa: cada pagamento do período com a
// OS, o cliente e a placa já resolvidos, mais recentes primeiro.
func (r *AnalyticsRepo) ListCashIncome(
	ctx context.Context,
	companyID string,
	from, to time.Time,
) ([]repository.CashIncomeResult, error) {
	const query = `
	SELECT
	    p.id,
	    p.order_id,
	    c.name,
	    v.plate,
	    p.method,
	    p.amount,
	    p.paid_on
	FROM payments p
	JOIN service_orders o ON o.id = p.order_id
	JOIN clients        c ON c.id = o.client_id
	JOIN vehicles       v ON v.id = o.vehicle_id
	WHERE p.company_id = $1
	  AND p.paid_on BETWEEN $2::date AND $3::date
	ORDER BY p.paid_on DESC, p.created_at DESC`

	rows, err := r.pool.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.ListCashIncome: %w", err)
	}
	defer rows.Close()

	var results []repository.CashIncomeResult
	for rows.Next() {
		var row repository.CashIncomeResult
		if err := rows.Scan(
			&row.PaymentID,
			&row.OrderID,
			&row.ClientName,
			&row.VehiclePlate,
			&row.Method,
			&row.Amount,
			&row.PaidOn,
		); err != nil {
			return nil, fmt.Errorf("analytics.ListCashIncome scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetFinanceTotals devolve receita (pagamentos) e despesa do período.
// Usa COALESCE para devolver zero em período sem lançamentos.
func (r *AnalyticsRepo) GetFinanceTotals(
	ctx context.Context,
	companyID string,
	from, to time.Time,
) (income, expense decimal.Decimal, err error) {
	const query = `
	SELECT
	    COALESCE((SELECT SUM(amount) FROM payments
	              WHERE company_id = $1 AND paid_on  BETWEEN $2::date AND $3::date), 0) AS income,
	    COALESCE((SELECT SUM(amount) FROM expenses
	              WHERE company_id = $1 AND spent_on BETWEEN $2::date AND $3::date), 0) AS expense`

	err = r.pool.QueryRow(ctx, query, companyID, from, to).Scan(&income, &expense)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("analytics.GetFinanceTotals: %w", err)
	}
	return income, expense, nil
}

// GetIncomeSeries agrupa os pagamentos pela granularidade, em ordem cronológica.
func (r *AnalyticsRepo) GetIncomeSeries(
	ctx context.Context,
	companyID string,
	from, to time.Time,
	granularity string,
) ([]repository.PeriodTotalResult, error) {
	const query = `
	SELECT to_char(paid_on, $4) AS key, SUM(amount) AS total
	FROM payments
	WHERE company_id = $1
	  AND paid_on BETWEEN $2::date AND $3::date
	GROUP BY 1
	ORDER BY 1`
	return r.periodSeries(ctx, "GetIncomeSeries", query, companyID, from, to, granularity)
}

// GetExpenseSeries agrupa as despesas pela granularidade, em ordem cronológica.
func (r *AnalyticsRepo) GetExpenseSeries(
	ctx context.Context,
	companyID string,
	from, to time.Time,
	granularity string,
) ([]repository.PeriodTotalResult, error) {
	const query = `
	SELECT to_char(spent_on, $4) AS key, SUM(amount) AS total
	FROM expenses
	WHERE company_id = $1
	  AND spent_on BETWEEN $2::date AND $3::date
	GROUP BY 1
	ORDER BY 1`
	return r.periodSeries(ctx, "GetExpenseSeries", query, companyID, from, to, granularity)
}

func (r *AnalyticsRepo) periodSeries(
	ctx context.Context,
	method, query, companyID string,
	from, to time.Time,
	granularity string,
) ([]repository.PeriodTotalResult, error) {
	rows, err := r.pool.Query(ctx, query, companyID, from, to, granularityFormat(granularity))
	if err != nil {
		return nil, fmt.Errorf("analytics.%s: %w", method, err)
	}
	defer rows.Close()

	var results []repository.PeriodTotalResult
	for rows.Next() {
		var row repository.PeriodTotalResult
		if err := rows.Scan(&row.Key, &row.Total); err != nil {
			return nil, fmt.Errorf("analytics.%s scan: %w", method, err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetPaymentMethodBreakdown agrupa os pagamentos do período por forma de pagamento,
// maior total primeiro.
func (r *AnalyticsRepo) GetPaymentMethodBreakdown(
	ctx context.Context,
	companyID string,
	from, to time.Time,
) ([]repository.MethodTotalResult, error) {
	const query = `
	SELECT method, COUNT(*) AS count, SUM(amount) AS total
	FROM payments
	WHERE company_id = $1
	  AND paid_on BETWEEN $2::date AND $3::date
	GROUP BY method
	ORDER BY total DESC`

	rows, err := r.pool.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetPaymentMethodBreakdown: %w", err)
	}
	defer rows.Close()

	var results []repository.MethodTotalResult
	for rows.Next() {
		var row repository.MethodTotalResult
		if err := rows.Scan(&row.Method, &row.Count, &row.Total); err != nil {
			return nil, fmt.Errorf("analytics.GetPaymentMethodBreakdown scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetOrderStatusCounts conta OS por status. Período zerado considera todas.
func (r *AnalyticsRepo) GetOrderStatusCounts(
	ctx context.Context,
	companyID string,
	from, to time.Time,
) ([]repository.StatusCountResult, error) {
	query := `SELECT status, COUNT(*) FROM service_orders WHERE company_id = $1`
	args := []any{companyID}
	if !from.IsZero() {
		query += ` AND opened_on BETWEEN $2::date AND $3::date`
		args = append(args, from, to)
	}
	query += ` GROUP BY status`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetOrderStatusCounts: %w", err)
	}
	defer rows.Close()

	var results []repository.StatusCountResult
	for rows.Next() {
		var row repository.StatusCountResult
		if err := rows.Scan(&row.Status, &row.Count); err != nil {
			return nil, fmt.Errorf("analytics.GetOrderStatusCounts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetOrderFlowCounts devolve quantas OS abriram, finalizaram e cancelaram no período.
// Abertura conta por opened_on; encerramentos contam por closed_at.
func (r *AnalyticsRepo) GetOrderFlowCounts(
	ctx context.Context,
	companyID string,
	from, to time.Time,
) (opened, closed, cancelled int, err error) {
	const query = `
	SELECT
	    COUNT(*) FILTER (WHERE opened_on BETWEEN $2::date AND $3::date)                   AS opened,
	    COUNT(*) FILTER (WHERE status = 'FINALIZADA' AND closed_at BETWEEN $2 AND $3)     AS closed,
	    COUNT(*) FILTER (WHERE status = 'CANCELADA'  AND closed_at BETWEEN $2 AND $3)     AS cancelled
	FROM service_orders
	WHERE company_id = $1`

	err = r.pool.QueryRow(ctx, query, companyID, from, to).Scan(&opened, &closed, &cancelled)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("analytics.GetOrderFlowCounts: %w", err)
	}
	return opened, closed, cancelled, nil
}

// GetOrdersPerMechanic conta OS por funcionário executor no período.
// OS sem mecânico atribuído ficam de fora.
func (r *AnalyticsRepo) GetOrdersPerMechanic(
	ctx context.Context,
	companyID string,
	from, to time.Time,
) ([]repository.MechanicCountResult, error) {
	const query = `
	SELECT e.id, e.name, COUNT(*) AS count
	FROM service_orders o
	JOIN employees e ON e.id = o.mechanic_id
	WHERE o.company_id = $1
	  AND o.opened_on BETWEEN $2::date AND $3::date
	GROUP BY e.id, e.name
	ORDER BY count DESC`

	rows, err := r.pool.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetOrdersPerMechanic: %w", err)
	}
	defer rows.Close()

	var results []repository.MechanicCountResult
	for rows.Next() {
		var row repository.MechanicCountResult
		if err := rows.Scan(&row.MechanicID, &row.MechanicName, &row.Count); err != nil {
			return nil, fmt.Errorf("analytics.GetOrdersPerMechanic scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetAverageCompletionDays devolve a média em dias entre criação e finalização
// das OS finalizadas no período (0 quando não houve nenhuma).
func (r *AnalyticsRepo) GetAverageCompletionDays(
	ctx context.Context,
	companyID string,
	from, to time.Time,
) (float64, error) {
	const query = `
	SELECT COALESCE(AVG(EXTRACT(EPOCH FROM (closed_at - created_at)) / 86400.0), 0)
	FROM service_orders
	WHERE company_id = $1
	  AND status = 'FINALIZADA'
	  AND closed_at BETWEEN $2 AND $3`

	var avg float64
	if err := r.pool.QueryRow(ctx, query, companyID, from, to).Scan(&avg); err != nil {
		return 0, fmt.Errorf("analytics.GetAverageCompletionDays: %w", err)
	}
	return avg, nil
}

// GetTopProducts devolve os produtos mais consumidos em itens de OS no período.
// OS canceladas não contam consumo.
func (r *AnalyticsRepo) GetTopProducts(
	ctx context.Context,
	companyID string,
	from, to time.Time,
	limit int,
) ([]repository.ProductUsageResult, error) {
	const query = `
	SELECT
	    p.id,
	    p.name,
	    SUM(i.quantity) AS quantity,
	    SUM(i.subtotal) AS revenue
	FROM service_order_items i
	JOIN service_orders o ON o.id = i.order_id
	JOIN products       p ON p.id = i.product_id
	WHERE i.company_id = $1
	  AND o.opened_on BETWEEN $2::date AND $3::date
	  AND o.status <> 'CANCELADA'
	GROUP BY p.id, p.name
	ORDER BY quantity DESC
	LIMIT $4`

	rows, err := r.pool.Query(ctx, query, companyID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductUsageResult
	for rows.Next() {
		var row repository.ProductUsageResult
		if err := rows.Scan(&row.ProductID, &row.Name, &row.Quantity, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.GetTopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetTopClients devolve os clientes que mais pagaram no período.
func (r *AnalyticsRepo) GetTopClients(
	ctx context.Context,
	companyID string,
	from, to time.Time,
	limit int,
) ([]repository.ClientSpendResult, error) {
	const query = `
	SELECT
	    c.id,
	    c.name,
	    COUNT(DISTINCT o.id) AS order_count,
	    SUM(p.amount)        AS spend
	FROM payments p
	JOIN service_orders o ON o.id = p.order_id
	JOIN clients        c ON c.id = o.client_id
	WHERE p.company_id = $1
	  AND p.paid_on BETWEEN $2::date AND $3::date
	GROUP BY c.id, c.name
	ORDER BY spend DESC
	LIMIT $4`

	rows, err := r.pool.Query(ctx, query, companyID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopClients: %w", err)
	}
	defer rows.Close()

	var results []repository.ClientSpendResult
	for rows.Next() {
		var row repository.ClientSpendResult
		if err := rows.Scan(&row.ClientID, &row.Name, &row.OrderCount, &row.Spend); err != nil {
			return nil, fmt.Errorf("analytics.GetTopClients scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetClientRecurrence devolve o total de clientes com OS e quantos voltaram (>= 2 OS).
func (r *AnalyticsRepo) GetClientRecurrence(
	ctx context.Context,
	companyID string,
) (total, returning int, err error) {
	const query = `
	SELECT COUNT(*), COUNT(*) FILTER (WHERE orders >= 2)
	FROM (
	    SELECT client_id, COUNT(*) AS orders
	    FROM service_orders
	    WHERE company_id = $1
	    GROUP BY client_id
	) t`

	err = r.pool.QueryRow(ctx, query, companyID).Scan(&total, &returning)
	if err != nil {
		return 0, 0, fmt.Errorf("analytics.GetClientRecurrence: %w", err)
	}
	return total, returning, nil
}

// ListClientsWithOpenBalance devolve clientes com OS abertas e saldo devedor
// positivo, maior dívida primeiro.
func (r *AnalyticsRepo) ListClientsWithOpenBalance(
	ctx context.Context,
	companyID string,
	limit int,
) ([]repository.ClientBalanceResult, error) {
	const query = `
	SELECT
	    c.id,
	    c.name,
	    c.phone,
	    COUNT(o.id)                            AS open_orders,
	    SUM(o.total - COALESCE(p.paid, 0))     AS balance
	FROM service_orders o
	JOIN clients c ON c.id = o.client_id
	LEFT JOIN (SELECT order_id, SUM(amount) AS paid FROM payments GROUP BY order_id) p ON p.order_id = o.id
	WHERE o.company_id = $1
	  AND o.status NOT IN ('FINALIZADA', 'CANCELADA')
	GROUP BY c.id, c.name, c.phone
	HAVING SUM(o.total - COALESCE(p.paid, 0)) > 0
	ORDER BY balance DESC
	LIMIT $2`

	rows, err := r.pool.Query(ctx, query, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.ListClientsWithOpenBalance: %w", err)
	}
	defer rows.Close()

	var results []repository.ClientBalanceResult
	for rows.Next() {
		var row repository.ClientBalanceResult
		if err := rows.Scan(&row.ClientID, &row.Name, &row.Phone, &row.OpenOrders, &row.Balance); err != nil {
			return nil, fmt.Errorf("analytics.ListClientsWithOpenBalance scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// CountAppointmentsOn conta os compromissos da agenda numa data.
func (r *AnalyticsRepo) CountAppointmentsOn(ctx context.Context, companyID string, date time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM appointments WHERE company_id = $1 AND date = $2::date`
	var count int
	if err := r.pool.QueryRow(ctx, query, companyID, date).Scan(&count); err != nil {
		return 0, fmt.Errorf("analytics.CountAppointmentsOn: %w", err)
	}
	return count, nil
}

// CountCriticalStock conta produtos controlados com estoque no nível crítico.
func (r *AnalyticsRepo) CountCriticalStock(ctx context.Context, companyID string) (int, error) {
	const query = `
	SELECT COUNT(*) FROM products
	WHERE company_id = $1 AND stock IS NOT NULL AND stock <= min_stock`
	var count int
	if err := r.pool.QueryRow(ctx, query, companyID).Scan(&count); err != nil {
		return 0, fmt.Errorf("analytics.CountCriticalStock: %w", err)
	}
	return count, nil
}

// granularityFormat devolve o padrão de to_char que gera a chave do período
// ("2025-06-03", "2025-06" ou "2025"). Granularidade desconhecida cai em mês.
func granularityFormat(granularity string) string {
	switch granularity {
	case repository.GranularityDay:
		return "YYYY-MM-DD"
	case repository.GranularityYear:
		return "YYYY"
	default:
		return "YYYY-MM"
	}
}
