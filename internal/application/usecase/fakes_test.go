package usecase_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/alpsistemas/oficina-api/internal/application/usecase"
	"github.com/alpsistemas/oficina-api/internal/domain"
	"github.com/alpsistemas/oficina-api/internal/domain/entity"
	"github.com/alpsistemas/oficina-api/internal/domain/repository"
	"github.com/alpsistemas/oficina-api/pkg/logger"
)

// Fakes em memória dos portos de persistência. Guardam tudo em maps e seguem
// os contratos dos portos: nil quando não encontram, ponteiros copiados na
// leitura para o teste poder mexer sem afetar o "banco".

const (
	testCompanyID = "11111111-1111-1111-1111-111111111111"
	testManagerID = "22222222-2222-2222-2222-222222222222"
)

// testLogger logger silencioso para os casos de uso em teste.
func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func decPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func strPtr(s string) *string { return &s }

// ── empresas ──────────────────────────────────────────────────────────────────

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

var _ repository.CompanyRepository = (*fakeCompanyRepo)(nil)

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[string]*entity.Company)}
}

func (r *fakeCompanyRepo) Create(c *entity.Company) error {
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCompanyRepo) GetByTaxID(taxID string) (*entity.Company, error) {
	for _, c := range r.companies {
		if c.TaxID == taxID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCompanyRepo) Update(c *entity.Company) error {
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) List(filter, q string, limit, offset int) ([]*entity.Company, error) {
	out := make([]*entity.Company, 0, len(r.companies))
	for _, c := range r.companies {
		switch filter {
		case repository.CompanyFilterPending:
			if c.PaymentConfirmed {
				continue
			}
		case repository.CompanyFilterRenewal:
			if c.RenewalPeriod == "" {
				continue
			}
		}
		if q != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(q)) && !strings.Contains(c.TaxID, q) {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return pageSlice(out, limit, offset), nil
}

// ── usuários ──────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByRecoveryEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.RecoveryEmail, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.User, error) {
	out := make([]*entity.User, 0)
	for _, u := range r.users {
		if u.CompanyID == companyID {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return pageSlice(out, limit, offset), nil
}

func (r *fakeUserRepo) CountActiveByCompany(companyID string) (int, int, error) {
	total, managers := 0, 0
	for _, u := range r.users {
		if u.CompanyID != companyID || !u.Active {
			continue
		}
		total++
		if u.IsManager() {
			managers++
		}
	}
	return total, managers, nil
}

func (r *fakeUserRepo) ListManagersByCompany(companyID string) ([]*entity.User, error) {
	out := make([]*entity.User, 0)
	for _, u := range r.users {
		if u.CompanyID == companyID && u.Active && u.IsManager() {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// ── clientes e veículos ───────────────────────────────────────────────────────

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

var _ repository.ClientRepository = (*fakeClientRepo)(nil)

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[string]*entity.Client)}
}

func (r *fakeClientRepo) Create(c *entity.Client) error {
	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClientRepo) GetByNameAndPhone(companyID, name, phone string) (*entity.Client, error) {
	for _, c := range r.clients {
		if c.CompanyID == companyID && strings.EqualFold(c.Name, name) && c.Phone == phone {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) Update(c *entity.Client) error {
	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r *fakeClientRepo) Search(companyID, q string, limit, offset int) ([]*entity.Client, error) {
	out := make([]*entity.Client, 0)
	for _, c := range r.clients {
		if c.CompanyID != companyID {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(q)) {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return pageSlice(out, limit, offset), nil
}

func (r *fakeClientRepo) CountSearch(companyID, q string) (int, error) {
	list, _ := r.Search(companyID, q, 0, 0)
	return len(list), nil
}

type fakeVehicleRepo struct {
	vehicles map[string]*entity.Vehicle
}

var _ repository.VehicleRepository = (*fakeVehicleRepo)(nil)

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{vehicles: make(map[string]*entity.Vehicle)}
}

func (r *fakeVehicleRepo) Create(v *entity.Vehicle) error {
	for _, other := range r.vehicles {
		if other.CompanyID == v.CompanyID && other.Plate == v.Plate {
			return domain.ErrDuplicate
		}
	}
	cp := *v
	r.vehicles[v.ID] = &cp
	return nil
}

func (r *fakeVehicleRepo) GetByID(id string) (*entity.Vehicle, error) {
	v, ok := r.vehicles[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVehicleRepo) GetByPlate(companyID, plate string) (*entity.Vehicle, error) {
	for _, v := range r.vehicles {
		if v.CompanyID == companyID && v.Plate == plate {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeVehicleRepo) Update(v *entity.Vehicle) error {
	cp := *v
	r.vehicles[v.ID] = &cp
	return nil
}

func (r *fakeVehicleRepo) ListByClient(clientID string) ([]*entity.Vehicle, error) {
	out := make([]*entity.Vehicle, 0)
	for _, v := range r.vehicles {
		if v.ClientID == clientID {
			cp := *v
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Plate < out[j].Plate })
	return out, nil
}

func (r *fakeVehicleRepo) Search(companyID, q, clientID string, limit, offset int) ([]*entity.Vehicle, error) {
	out := make([]*entity.Vehicle, 0)
	for _, v := range r.vehicles {
		if v.CompanyID != companyID {
			continue
		}
		if clientID != "" && v.ClientID != clientID {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(v.Plate+v.Model), strings.ToLower(q)) {
			continue
		}
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Plate < out[j].Plate })
	return pageSlice(out, limit, offset), nil
}

func (r *fakeVehicleRepo) CountSearch(companyID, q, clientID string) (int, error) {
	list, _ := r.Search(companyID, q, clientID, 0, 0)
	return len(list), nil
}

// ── funcionários ──────────────────────────────────────────────────────────────

type fakeEmployeeRepo struct {
	employees map[string]*entity.Employee
}

var _ repository.EmployeeRepository = (*fakeEmployeeRepo)(nil)

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[string]*entity.Employee)}
}

func (r *fakeEmployeeRepo) Create(e *entity.Employee) error {
	cp := *e
	r.employees[e.ID] = &cp
	return nil
}

func (r *fakeEmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEmployeeRepo) Update(e *entity.Employee) error {
	cp := *e
	r.employees[e.ID] = &cp
	return nil
}

func (r *fakeEmployeeRepo) ListByCompany(companyID string, activeOnly bool) ([]*entity.Employee, error) {
	out := make([]*entity.Employee, 0)
	for _, e := range r.employees {
		if e.CompanyID != companyID {
			continue
		}
		if activeOnly && !e.Active {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ── produtos ──────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByIDForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) GetByName(companyID, name string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.CompanyID == companyID && strings.EqualFold(p.Name, name) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateStock(productID string, stock *decimal.Decimal) error {
	p, ok := r.products[productID]
	if !ok {
		return nil
	}
	if stock == nil {
		p.Stock = nil
		return nil
	}
	s := *stock
	p.Stock = &s
	return nil
}

func (r *fakeProductRepo) Search(companyID, q string, criticalOnly bool, limit, offset int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0)
	for _, p := range r.products {
		if p.CompanyID != companyID {
			continue
		}
		if criticalOnly && !p.CriticalStock() {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name+p.Code), strings.ToLower(q)) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return pageSlice(out, limit, offset), nil
}

func (r *fakeProductRepo) CountSearch(companyID, q string, criticalOnly bool) (int, error) {
	list, _ := r.Search(companyID, q, criticalOnly, 0, 0)
	return len(list), nil
}

func (r *fakeProductRepo) ListByCompany(companyID string) ([]*entity.Product, error) {
	return r.Search(companyID, "", false, 0, 0)
}

// ── ordens de serviço ─────────────────────────────────────────────────────────

type fakeOrderRepo struct {
	orders     map[string]*entity.ServiceOrder
	items      map[string]*entity.ServiceOrderItem
	payments   map[string]*entity.Payment
	logs       []entity.ServiceOrderLog
	nextNumber int64
}

var _ repository.ServiceOrderRepository = (*fakeOrderRepo)(nil)

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:   make(map[string]*entity.ServiceOrder),
		items:    make(map[string]*entity.ServiceOrderItem),
		payments: make(map[string]*entity.Payment),
	}
}

func (r *fakeOrderRepo) Create(o *entity.ServiceOrder) error {
	r.nextNumber++
	o.Number = r.nextNumber
	cp := *o
	cp.Items, cp.Payments = nil, nil
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.ServiceOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	cp.Items, cp.Payments = nil, nil
	return &cp, nil
}

func (r *fakeOrderRepo) Update(o *entity.ServiceOrder) error {
	cp := *o
	cp.Items, cp.Payments = nil, nil
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) UpdateTotal(orderID string, total decimal.Decimal) error {
	if o, ok := r.orders[orderID]; ok {
		o.Total = total
	}
	return nil
}

func (r *fakeOrderRepo) List(companyID string, filter repository.OrderFilter) ([]*repository.OrderSummary, error) {
	out := make([]*repository.OrderSummary, 0)
	for _, o := range r.orders {
		if o.CompanyID != companyID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.From != nil && o.OpenedOn.Before(*filter.From) {
			continue
		}
		if filter.To != nil && o.OpenedOn.After(*filter.To) {
			continue
		}
		cp := *o
		paid := decimal.Zero
		for _, p := range r.payments {
			if p.OrderID == o.ID {
				paid = paid.Add(p.Amount)
			}
		}
		out = append(out, &repository.OrderSummary{
			Order:     cp,
			PaidTotal: paid,
			Balance:   cp.Total.Sub(paid),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order.Number > out[j].Order.Number })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *fakeOrderRepo) Count(companyID string, filter repository.OrderFilter) (int, error) {
	noPage := filter
	noPage.Limit, noPage.Offset = 0, 0
	list, _ := r.List(companyID, noPage)
	return len(list), nil
}

func (r *fakeOrderRepo) AddItem(item *entity.ServiceOrderItem) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetItem(id string) (*entity.ServiceOrderItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeOrderRepo) DeleteItem(id string) error {
	delete(r.items, id)
	return nil
}

func (r *fakeOrderRepo) ListItems(orderID string) ([]entity.ServiceOrderItem, error) {
	out := make([]entity.ServiceOrderItem, 0)
	for _, it := range r.items {
		if it.OrderID == orderID {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeOrderRepo) AddPayment(p *entity.Payment) error {
	cp := *p
	r.payments[p.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetPayment(id string) (*entity.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeOrderRepo) DeletePayment(id string) error {
	delete(r.payments, id)
	return nil
}

func (r *fakeOrderRepo) ListPayments(orderID string) ([]entity.Payment, error) {
	out := make([]entity.Payment, 0)
	for _, p := range r.payments {
		if p.OrderID == orderID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeOrderRepo) AddLog(l *entity.ServiceOrderLog) error {
	r.logs = append(r.logs, *l)
	return nil
}

func (r *fakeOrderRepo) ListLogs(orderID string) ([]entity.ServiceOrderLog, error) {
	out := make([]entity.ServiceOrderLog, 0)
	for _, l := range r.logs {
		if l.OrderID == orderID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) CountOpenByClient(clientID string) (int, decimal.Decimal, error) {
	count, balance := 0, decimal.Zero
	for _, o := range r.orders {
		if o.ClientID != clientID || o.Status == entity.OrderStatusFinalizada || o.Status == entity.OrderStatusCancelada {
			continue
		}
		count++
		paid := decimal.Zero
		for _, p := range r.payments {
			if p.OrderID == o.ID {
				paid = paid.Add(p.Amount)
			}
		}
		balance = balance.Add(o.Total.Sub(paid))
	}
	return count, balance, nil
}

// logActions devolve as ações do histórico de uma OS, na ordem de gravação.
func (r *fakeOrderRepo) logActions(orderID string) []string {
	out := make([]string, 0)
	for _, l := range r.logs {
		if l.OrderID == orderID {
			out = append(out, l.Action)
		}
	}
	return out
}

// ── agenda ────────────────────────────────────────────────────────────────────

type fakeAppointmentRepo struct {
	appointments map[string]*entity.Appointment
	clientRepo   *fakeClientRepo
	vehicleRepo  *fakeVehicleRepo
}

var _ repository.AppointmentRepository = (*fakeAppointmentRepo)(nil)

func newFakeAppointmentRepo(clients *fakeClientRepo, vehicles *fakeVehicleRepo) *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		appointments: make(map[string]*entity.Appointment),
		clientRepo:   clients,
		vehicleRepo:  vehicles,
	}
}

func (r *fakeAppointmentRepo) Create(a *entity.Appointment) error {
	cp := *a
	r.appointments[a.ID] = &cp
	return nil
}

func (r *fakeAppointmentRepo) GetByID(id string) (*entity.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAppointmentRepo) Update(a *entity.Appointment) error {
	cp := *a
	r.appointments[a.ID] = &cp
	return nil
}

func (r *fakeAppointmentRepo) Delete(id string) error {
	delete(r.appointments, id)
	return nil
}

func (r *fakeAppointmentRepo) ListBetween(companyID string, from, to time.Time) ([]repository.AppointmentSummary, error) {
	out := make([]repository.AppointmentSummary, 0)
	for _, a := range r.appointments {
		if a.CompanyID != companyID || a.Date.Before(from) || a.Date.After(to) {
			continue
		}
		s := repository.AppointmentSummary{Appointment: *a}
		if c, _ := r.clientRepo.GetByID(a.ClientID); c != nil {
			s.ClientName, s.ClientPhone = c.Name, c.Phone
		}
		if v, _ := r.vehicleRepo.GetByID(a.VehicleID); v != nil {
			s.VehiclePlate, s.VehicleModel = v.Plate, v.Model
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Appointment.Date.Equal(out[j].Appointment.Date) {
			return out[i].Appointment.Date.Before(out[j].Appointment.Date)
		}
		return out[i].Appointment.TimeOfDay < out[j].Appointment.TimeOfDay
	})
	return out, nil
}

// ── despesas ──────────────────────────────────────────────────────────────────

type fakeExpenseRepo struct {
	expenses map[string]*entity.Expense
}

var _ repository.ExpenseRepository = (*fakeExpenseRepo)(nil)

func newFakeExpenseRepo() *fakeExpenseRepo {
	return &fakeExpenseRepo{expenses: make(map[string]*entity.Expense)}
}

func (r *fakeExpenseRepo) Create(e *entity.Expense) error {
	cp := *e
	r.expenses[e.ID] = &cp
	return nil
}

func (r *fakeExpenseRepo) GetByID(id string) (*entity.Expense, error) {
	e, ok := r.expenses[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeExpenseRepo) Update(e *entity.Expense) error {
	cp := *e
	r.expenses[e.ID] = &cp
	return nil
}

func (r *fakeExpenseRepo) Delete(id string) error {
	delete(r.expenses, id)
	return nil
}

func (r *fakeExpenseRepo) ListBetween(companyID string, from, to time.Time) ([]*entity.Expense, error) {
	out := make([]*entity.Expense, 0)
	for _, e := range r.expenses {
		if e.CompanyID != companyID || e.SpentOn.Before(from) || e.SpentOn.After(to) {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SpentOn.After(out[j].SpentOn) })
	return out, nil
}

// ── analytics ─────────────────────────────────────────────────────────────────

// fakeAnalyticsRepo devolve valores pré-configurados pelos testes.
type fakeAnalyticsRepo struct {
	income        []repository.CashIncomeResult
	incomeTotal   decimal.Decimal
	expenseTotal  decimal.Decimal
	incomeSeries  []repository.PeriodTotalResult
	expenseSeries []repository.PeriodTotalResult
	methods       []repository.MethodTotalResult
}

var _ repository.AnalyticsRepository = (*fakeAnalyticsRepo)(nil)

func newFakeAnalyticsRepo() *fakeAnalyticsRepo {
	return &fakeAnalyticsRepo{incomeTotal: decimal.Zero, expenseTotal: decimal.Zero}
}

func (r *fakeAnalyticsRepo) ListCashIncome(_ context.Context, _ string, _, _ time.Time) ([]repository.CashIncomeResult, error) {
	return r.income, nil
}

func (r *fakeAnalyticsRepo) GetFinanceTotals(_ context.Context, _ string, _, _ time.Time) (decimal.Decimal, decimal.Decimal, error) {
	return r.incomeTotal, r.expenseTotal, nil
}

func (r *fakeAnalyticsRepo) GetIncomeSeries(_ context.Context, _ string, _, _ time.Time, _ string) ([]repository.PeriodTotalResult, error) {
	return r.incomeSeries, nil
}

func (r *fakeAnalyticsRepo) GetExpenseSeries(_ context.Context, _ string, _, _ time.Time, _ string) ([]repository.PeriodTotalResult, error) {
	return r.expenseSeries, nil
}

func (r *fakeAnalyticsRepo) GetPaymentMethodBreakdown(_ context.Context, _ string, _, _ time.Time) ([]repository.MethodTotalResult, error) {
	return r.methods, nil
}

func (r *fakeAnalyticsRepo) GetOrderStatusCounts(_ context.Context, _ string, _, _ time.Time) ([]repository.StatusCountResult, error) {
	return nil, nil
}

func (r *fakeAnalyticsRepo) GetOrderFlowCounts(_ context.Context, _ string, _, _ time.Time) (int, int, int, error) {
	return 0, 0, 0, nil
}

func (r *fakeAnalyticsRepo) GetOrdersPerMechanic(_ context.Context, _ string, _, _ time.Time) ([]repository.MechanicCountResult, error) {
	return nil, nil
}

func (r *fakeAnalyticsRepo) GetAverageCompletionDays(_ context.Context, _ string, _, _ time.Time) (float64, error) {
	return 0, nil
}

func (r *fakeAnalyticsRepo) GetTopProducts(_ context.Context, _ string, _, _ time.Time, _ int) ([]repository.ProductUsageResult, error) {
	return nil, nil
}

func (r *fakeAnalyticsRepo) GetTopClients(_ context.Context, _ string, _, _ time.Time, _ int) ([]repository.ClientSpendResult, error) {
	return nil, nil
}

func (r *fakeAnalyticsRepo) GetClientRecurrence(_ context.Context, _ string) (int, int, error) {
	return 0, 0, nil
}

func (r *fakeAnalyticsRepo) ListClientsWithOpenBalance(_ context.Context, _ string, _ int) ([]repository.ClientBalanceResult, error) {
	return nil, nil
}

func (r *fakeAnalyticsRepo) CountAppointmentsOn(_ context.Context, _ string, _ time.Time) (int, error) {
	return 0, nil
}

func (r *fakeAnalyticsRepo) CountCriticalStock(_ context.Context, _ string) (int, error) {
	return 0, nil
}

// ── transações, eventos, e-mail, PDF e storage ────────────────────────────────

// fakeOrderTx entrega os próprios fakes ao callback; sem atomicidade, que os
// testes unitários não cobrem.
type fakeOrderTx struct {
	orderRepo   *fakeOrderRepo
	productRepo *fakeProductRepo
}

var _ usecase.OrderTxRunner = (*fakeOrderTx)(nil)

func (t *fakeOrderTx) RunOrder(_ context.Context, fn func(repository.ServiceOrderRepository, repository.ProductRepository) error) error {
	return fn(t.orderRepo, t.productRepo)
}

type fakeAgendaTx struct {
	clientRepo      *fakeClientRepo
	vehicleRepo     *fakeVehicleRepo
	appointmentRepo *fakeAppointmentRepo
}

var _ usecase.AgendaTxRunner = (*fakeAgendaTx)(nil)

func (t *fakeAgendaTx) RunAgenda(_ context.Context, fn func(repository.ClientRepository, repository.VehicleRepository, repository.AppointmentRepository) error) error {
	return fn(t.clientRepo, t.vehicleRepo, t.appointmentRepo)
}

type publishedEvent struct {
	Type      string
	CompanyID string
	Payload   any
}

type fakeEvents struct {
	published []publishedEvent
}

var _ usecase.EventPublisher = (*fakeEvents)(nil)

func (e *fakeEvents) Publish(_ context.Context, eventType, companyID string, payload any) error {
	e.published = append(e.published, publishedEvent{Type: eventType, CompanyID: companyID, Payload: payload})
	return nil
}

func (e *fakeEvents) types() []string {
	out := make([]string, 0, len(e.published))
	for _, ev := range e.published {
		out = append(out, ev.Type)
	}
	return out
}

// fakeMailer registra cada envio para os testes conferirem destino e assunto.
type fakeMailer struct {
	approved    []string // destinos de SendAccountApproved
	credentials []string // destinos de SendUserCredentials
	renewals    []string // períodos de SendRenewalRequested
	applied     []string // destinos de SendRenewalApplied
	contacts    []string // remetentes de SendContactForm

	sendErr error // quando setado, SendContactForm falha
}

var _ usecase.Mailer = (*fakeMailer)(nil)

func (m *fakeMailer) SendAccountApproved(to, _, _ string, _ time.Time) error {
	m.approved = append(m.approved, to)
	return nil
}

func (m *fakeMailer) SendUserCredentials(to, _, _, _, _ string) error {
	m.credentials = append(m.credentials, to)
	return nil
}

func (m *fakeMailer) SendRenewalRequested(_, period string) error {
	m.renewals = append(m.renewals, period)
	return nil
}

func (m *fakeMailer) SendRenewalApplied(to, _, _ string, _ time.Time) error {
	m.applied = append(m.applied, to)
	return nil
}

func (m *fakeMailer) SendContactForm(_, email, _, _ string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.contacts = append(m.contacts, email)
	return nil
}

type fakePDF struct{}

var _ usecase.OrderPDFGenerator = (*fakePDF)(nil)

func (fakePDF) GenerateOrderPDF(_ context.Context, _ *usecase.OrderPDFData) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}

type fakeLogos struct {
	files map[string][]byte
}

var _ usecase.LogoStore = (*fakeLogos)(nil)

func newFakeLogos() *fakeLogos {
	return &fakeLogos{files: make(map[string][]byte)}
}

func (s *fakeLogos) Save(companyID, filename string, data []byte) (string, error) {
	path := companyID + "/" + filename
	s.files[path] = data
	return path, nil
}

func (s *fakeLogos) Open(path string) ([]byte, error) {
	return s.files[path], nil
}

// ── sementes ──────────────────────────────────────────────────────────────────

// seedCompany empresa ativa, paga e com plano vigente.
func seedCompany(repo *fakeCompanyRepo, plan string) *entity.Company {
	now := time.Now()
	expires := now.Add(30 * 24 * time.Hour)
	c := &entity.Company{
		ID:               testCompanyID,
		Name:             "Oficina Teste",
		TaxID:            "11222333000181",
		Plan:             plan,
		PlanPeriod:       entity.PlanPeriod30D,
		PlanExpiresAt:    &expires,
		Active:           true,
		PaymentConfirmed: true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	_ = repo.Create(c)
	return c
}

func seedUser(repo *fakeUserRepo, id, role string) *entity.User {
	now := time.Now()
	u := &entity.User{
		ID:        id,
		CompanyID: testCompanyID,
		Username:  "user-" + id[:8],
		Name:      "Usuário " + id[:8],
		Role:      role,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_ = repo.Create(u)
	return u
}

func seedClient(repo *fakeClientRepo, name string) *entity.Client {
	now := time.Now()
	c := &entity.Client{
		ID:        uuid.New().String(),
		CompanyID: testCompanyID,
		Name:      strings.ToUpper(name),
		Phone:     "11 99999-0000",
		CreatedAt: now,
		UpdatedAt: now,
	}
	_ = repo.Create(c)
	return c
}

func seedVehicle(repo *fakeVehicleRepo, clientID, plate string) *entity.Vehicle {
	now := time.Now()
	v := &entity.Vehicle{
		ID:        uuid.New().String(),
		CompanyID: testCompanyID,
		ClientID:  clientID,
		Type:      entity.VehicleCarro,
		Plate:     strings.ToUpper(plate),
		Model:     "Uno Mille",
		CreatedAt: now,
		UpdatedAt: now,
	}
	_ = repo.Create(v)
	return v
}

func seedProduct(repo *fakeProductRepo, name string, price string, stock *decimal.Decimal) *entity.Product {
	now := time.Now()
	p := &entity.Product{
		ID:        uuid.New().String(),
		CompanyID: testCompanyID,
		Name:      name,
		Price:     dec(price),
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_ = repo.Create(p)
	return p
}

// pageSlice aplica limit/offset sobre a lista já ordenada.
func pageSlice[T any](list []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(list) {
			return nil
		}
		list = list[offset:]
	}
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list
}
