package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/alpsistemas/oficina-api/internal/domain/entity"
	"github.com/alpsistemas/oficina-api/internal/domain/repository"
)

var _ repository.ServiceOrderRepository = (*ServiceOrderRepo)(nil)

const orderColumns = `
	o.id, o.number, o.company_id, o.client_id, o.vehicle_id,
	COALESCE(o.assignee_id::text, ''), COALESCE(o.mechanic_id::text, ''),
	COALESCE(o.created_by_id::text, ''), COALESCE(o.closed_by_id::text, ''),
	o.status, o.opened_on, o.due_on, o.started_at, o.closed_at,
	o.problem, o.diagnosis, o.notes, o.labor_cost, o.discount, o.total,
	o.created_at, o.updated_at`

const orderSearchFrom = `
	FROM service_orders o
	JOIN clients c ON c.id = o.client_id
	JOIN vehicles v ON v.id = o.vehicle_id`

// ServiceOrderRepo implementação de ServiceOrderRepository sobre PostgreSQL
// (usável com pool ou tx). Cobre a OS e seus filhos: itens, pagamentos e histórico.
type ServiceOrderRepo struct {
	q Querier
}

// NewServiceOrderRepository constrói o adaptador de persistência de ordens de serviço.
func NewServiceOrderRepository(q Querier) *ServiceOrderRepo {
	return &ServiceOrderRepo{q: q}
}

// Create persiste a OS e preenche order.Number com o sequencial gerado pelo banco.
func (r *ServiceOrderRepo) Create(order *entity.ServiceOrder) error {
	query := `
		INSERT INTO service_orders (id, company_id, client_id, vehicle_id, assignee_id, mechanic_id,
			created_by_id, closed_by_id, status, opened_on, due_on, started_at, closed_at,
			problem, diagnosis, notes, labor_cost, discount, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING number`
	err := r.q.QueryRow(context.Background(), query,
		order.ID, order.CompanyID, order.ClientID, order.VehicleID,
		nilIfEmpty(order.AssigneeID), nilIfEmpty(order.MechanicID),
		nilIfEmpty(order.CreatedByID), nilIfEmpty(order.ClosedByID),
		order.Status, order.OpenedOn, order.DueOn, order.StartedAt, order.ClosedAt,
		order.Problem, order.Diagnosis, order.Notes,
		order.LaborCost, order.Discount, order.Total,
		order.CreatedAt, order.UpdatedAt,
	).Scan(&order.Number)
	if err != nil {
		return fmt.Errorf("insert service order: %w", err)
	}
	return nil
}

// GetByID busca a OS por ID, sem itens e pagamentos.
func (r *ServiceOrderRepo) GetByID(id string) (*entity.ServiceOrder, error) {
	query := `SELECT` + orderColumns + ` FROM service_orders o WHERE o.id = $1`
	var o entity.ServiceOrder
	err := scanOrder(r.q.QueryRow(context.Background(), query, id), &o)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service order: %w", err)
	}
	return &o, nil
}

// Update regrava os campos mutáveis da OS. Number, empresa e datas de criação não mudam.
func (r *ServiceOrderRepo) Update(order *entity.ServiceOrder) error {
	query := `
		UPDATE service_orders SET client_id = $2, vehicle_id = $3, assignee_id = $4, mechanic_id = $5,
			closed_by_id = $6, status = $7, opened_on = $8, due_on = $9, started_at = $10,
			closed_at = $11, problem = $12, diagnosis = $13, notes = $14, labor_cost = $15,
			discount = $16, total = $17, updated_at = $18
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.ClientID, order.VehicleID,
		nilIfEmpty(order.AssigneeID), nilIfEmpty(order.MechanicID), nilIfEmpty(order.ClosedByID),
		order.Status, order.OpenedOn, order.DueOn, order.StartedAt, order.ClosedAt,
		order.Problem, order.Diagnosis, order.Notes,
		order.LaborCost, order.Discount, order.Total, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update service order: %w", err)
	}
	return nil
}

// UpdateTotal regrava apenas o cache de total, após mexer em itens ou valores.
func (r *ServiceOrderRepo) UpdateTotal(orderID string, total decimal.Decimal) error {
	query := `UPDATE service_orders SET total = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, orderID, total)
	if err != nil {
		return fmt.Errorf("update service order total: %w", err)
	}
	return nil
}

// List devolve as OS da empresa com nomes e agregados resolvidos pelo SQL,
// mais recentes primeiro, com filtros opcionais de status, período e busca textual.
func (r *ServiceOrderRepo) List(companyID string, filter repository.OrderFilter) ([]*repository.OrderSummary, error) {
	query := `SELECT` + orderColumns + `,
		c.name, v.plate, v.model, COALESCE(u.name, ''), COALESCE(e.name, ''),
		COALESCE(p.paid, 0), o.total - COALESCE(p.paid, 0)` + orderSearchFrom + `
	LEFT JOIN users u ON u.id = o.assignee_id
	LEFT JOIN employees e ON e.id = o.mechanic_id
	LEFT JOIN (SELECT order_id, SUM(amount) AS paid FROM payments GROUP BY order_id) p ON p.order_id = o.id
	WHERE o.company_id = $1`
	args := []any{companyID}
	query, args = appendOrderFilters(query, args, filter)
	query += fmt.Sprintf(" ORDER BY o.number DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list service orders: %w", err)
	}
	defer rows.Close()

	var list []*repository.OrderSummary
	for rows.Next() {
		var s repository.OrderSummary
		if err := scanOrder(rows, &s.Order, &s.ClientName, &s.VehiclePlate, &s.VehicleModel,
			&s.AssigneeName, &s.MechanicName, &s.PaidTotal, &s.Balance); err != nil {
			return nil, fmt.Errorf("scan service order summary: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Count conta as OS que a mesma busca de List devolveria.
func (r *ServiceOrderRepo) Count(companyID string, filter repository.OrderFilter) (int, error) {
	query := `SELECT COUNT(*)` + orderSearchFrom + ` WHERE o.company_id = $1`
	args := []any{companyID}
	query, args = appendOrderFilters(query, args, filter)

	var total int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count service orders: %w", err)
	}
	return total, nil
}

// AddItem insere uma linha na OS. O subtotal já chega congelado pelo caso de uso.
func (r *ServiceOrderRepo) AddItem(item *entity.ServiceOrderItem) error {
	query := `
		INSERT INTO service_order_items (id, company_id, order_id, product_id, description,
			quantity, unit_price, subtotal, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CompanyID, item.OrderID, nilIfEmpty(item.ProductID), item.Description,
		item.Quantity, item.UnitPrice, item.Subtotal, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert service order item: %w", err)
	}
	return nil
}

// GetItem busca uma linha da OS por ID.
func (r *ServiceOrderRepo) GetItem(id string) (*entity.ServiceOrderItem, error) {
	query := `
		SELECT id, company_id, order_id, COALESCE(product_id::text, ''), description,
			quantity, unit_price, subtotal, created_at
		FROM service_order_items WHERE id = $1`
	var it entity.ServiceOrderItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&it.ID, &it.CompanyID, &it.OrderID, &it.ProductID, &it.Description,
		&it.Quantity, &it.UnitPrice, &it.Subtotal, &it.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service order item: %w", err)
	}
	return &it, nil
}

// DeleteItem remove uma linha da OS.
func (r *ServiceOrderRepo) DeleteItem(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM service_order_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete service order item: %w", err)
	}
	return nil
}

// ListItems devolve as linhas da OS na ordem de inserção.
func (r *ServiceOrderRepo) ListItems(orderID string) ([]entity.ServiceOrderItem, error) {
	query := `
		SELECT id, company_id, order_id, COALESCE(product_id::text, ''), description,
			quantity, unit_price, subtotal, created_at
		FROM service_order_items WHERE order_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list service order items: %w", err)
	}
	defer rows.Close()

	var items []entity.ServiceOrderItem
	for rows.Next() {
		var it entity.ServiceOrderItem
		if err := rows.Scan(&it.ID, &it.CompanyID, &it.OrderID, &it.ProductID, &it.Description,
			&it.Quantity, &it.UnitPrice, &it.Subtotal, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan service order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// AddPayment insere um pagamento da OS.
func (r *ServiceOrderRepo) AddPayment(payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, company_id, order_id, method, amount, paid_on, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.CompanyID, payment.OrderID, payment.Method,
		payment.Amount, payment.PaidOn, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetPayment busca um pagamento por ID.
func (r *ServiceOrderRepo) GetPayment(id string) (*entity.Payment, error) {
	query := `SELECT id, company_id, order_id, method, amount, paid_on, created_at FROM payments WHERE id = $1`
	var p entity.Payment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.CompanyID, &p.OrderID, &p.Method, &p.Amount, &p.PaidOn, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}

// DeletePayment estorna (remove) um pagamento.
func (r *ServiceOrderRepo) DeletePayment(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return nil
}

// ListPayments devolve os pagamentos da OS por data de recebimento.
func (r *ServiceOrderRepo) ListPayments(orderID string) ([]entity.Payment, error) {
	query := `
		SELECT id, company_id, order_id, method, amount, paid_on, created_at
		FROM payments WHERE order_id = $1 ORDER BY paid_on, created_at`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var payments []entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.OrderID, &p.Method, &p.Amount,
			&p.PaidOn, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// AddLog registra uma entrada no histórico de auditoria da OS.
func (r *ServiceOrderRepo) AddLog(log *entity.ServiceOrderLog) error {
	query := `
		INSERT INTO service_order_logs (id, company_id, order_id, user_id, action, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		log.ID, log.CompanyID, log.OrderID, nilIfEmpty(log.UserID), log.Action, log.Note, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert service order log: %w", err)
	}
	return nil
}

// ListLogs devolve o histórico da OS em ordem cronológica.
func (r *ServiceOrderRepo) ListLogs(orderID string) ([]entity.ServiceOrderLog, error) {
	query := `
		SELECT id, company_id, order_id, COALESCE(user_id::text, ''), action, note, created_at
		FROM service_order_logs WHERE order_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list service order logs: %w", err)
	}
	defer rows.Close()

	var logs []entity.ServiceOrderLog
	for rows.Next() {
		var l entity.ServiceOrderLog
		if err := rows.Scan(&l.ID, &l.CompanyID, &l.OrderID, &l.UserID, &l.Action,
			&l.Note, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan service order log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// CountOpenByClient conta as OS não terminais do cliente e soma o saldo em aberto delas.
func (r *ServiceOrderRepo) CountOpenByClient(clientID string) (int, decimal.Decimal, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(o.total - COALESCE(p.paid, 0)), 0)
		FROM service_orders o
		LEFT JOIN (SELECT order_id, SUM(amount) AS paid FROM payments GROUP BY order_id) p ON p.order_id = o.id
		WHERE o.client_id = $1 AND o.status NOT IN ($2, $3)`
	var count int
	var balance decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, clientID,
		entity.OrderStatusFinalizada, entity.OrderStatusCancelada).Scan(&count, &balance)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("count open service orders: %w", err)
	}
	return count, balance, nil
}

// appendOrderFilters aplica os filtros de OrderFilter às queries de List e Count.
// O filtro textual pressupõe os joins de clients (c) e vehicles (v).
func appendOrderFilters(query string, args []any, filter repository.OrderFilter) (string, []any) {
	if filter.Status != "" {
		query += fmt.Sprintf(" AND o.status = $%d", len(args)+1)
		args = append(args, filter.Status)
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND o.opened_on >= $%d::date", len(args)+1)
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND o.opened_on <= $%d::date", len(args)+1)
		args = append(args, *filter.To)
	}
	if filter.Q != "" {
		n := len(args) + 1
		query += fmt.Sprintf(" AND (c.name ILIKE $%d OR v.plate ILIKE $%d)", n, n)
		args = append(args, "%"+filter.Q+"%")
	}
	return query, args
}

// scanOrder lê as colunas de orderColumns para a entidade, seguidas das colunas
// extras do chamador (os agregados da listagem).
func scanOrder(row pgx.Row, o *entity.ServiceOrder, extra ...any) error {
	dest := []any{
		&o.ID, &o.Number, &o.CompanyID, &o.ClientID, &o.VehicleID,
		&o.AssigneeID, &o.MechanicID, &o.CreatedByID, &o.ClosedByID,
		&o.Status, &o.OpenedOn, &o.DueOn, &o.StartedAt, &o.ClosedAt,
		&o.Problem, &o.Diagnosis, &o.Notes, &o.LaborCost, &o.Discount, &o.Total,
		&o.CreatedAt, &o.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}
