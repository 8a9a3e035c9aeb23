package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alpsistemas/oficina-api/internal/application/dto"
	"github.com/alpsistemas/oficina-api/internal/domain"
	"github.com/alpsistemas/oficina-api/internal/domain/entity"
	"github.com/alpsistemas/oficina-api/internal/domain/repository"
	"github.com/alpsistemas/oficina-api/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// orderEventPayload corpo dos eventos de ciclo de vida da OS.
type orderEventPayload struct {
	OrderID string          `json:"order_id"`
	Number  int64           `json:"number"`
	Status  string          `json:"status"`
	From    string          `json:"from,omitempty"`
	Total   decimal.Decimal `json:"total"`
}

// OrderUseCaseParams dependências do caso de uso de OS.
type OrderUseCaseParams struct {
	Repo         repository.ServiceOrderRepository
	ClientRepo   repository.ClientRepository
	VehicleRepo  repository.VehicleRepository
	UserRepo     repository.UserRepository
	EmployeeRepo repository.EmployeeRepository
	CompanyRepo  repository.CompanyRepository
	Tx           OrderTxRunner
	Events       EventPublisher
	PDF          OrderPDFGenerator
	Logos        LogoStore
	Log          *logger.Logger
}

// OrderUseCase ciclo de vida completo da ordem de serviço: abertura, execução,
// itens com baixa de estoque, pagamentos, histórico e PDF.
type OrderUseCase struct {
	repo         repository.ServiceOrderRepository
	clientRepo   repository.ClientRepository
	vehicleRepo  repository.VehicleRepository
	userRepo     repository.UserRepository
	employeeRepo repository.EmployeeRepository
	companyRepo  repository.CompanyRepository
	tx           OrderTxRunner
	events       EventPublisher
	pdf          OrderPDFGenerator
	logos        LogoStore
	log          *logger.Logger
}

// NewOrderUseCase constrói o caso de uso de ordens de serviço.
func NewOrderUseCase(p OrderUseCaseParams) *OrderUseCase {
	return &OrderUseCase{
		repo:         p.Repo,
		clientRepo:   p.ClientRepo,
		vehicleRepo:  p.VehicleRepo,
		userRepo:     p.UserRepo,
		employeeRepo: p.EmployeeRepo,
		companyRepo:  p.CompanyRepo,
		tx:           p.Tx,
		events:       p.Events,
		pdf:          p.PDF,
		logos:        p.Logos,
		log:          p.Log,
	}
}

// Create abre uma OS para um veículo do cliente. Sem responsável informado,
// quem abriu assume o atendimento.
func (uc *OrderUseCase) Create(userID, companyID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil || client.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	vehicle, err := uc.vehicleRepo.GetByID(in.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil || vehicle.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if vehicle.ClientID != client.ID {
		return nil, fmt.Errorf("%w: veículo não pertence ao cliente", domain.ErrInvalidInput)
	}

	assigneeID := in.AssigneeID
	if assigneeID == "" {
		assigneeID = userID
	}
	assignee, err := uc.userRepo.GetByID(assigneeID)
	if err != nil {
		return nil, err
	}
	if assignee == nil || assignee.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	mechanicID := ""
	if in.MechanicID != "" {
		mechanic, err := uc.employeeRepo.GetByID(in.MechanicID)
		if err != nil {
			return nil, err
		}
		if mechanic == nil || mechanic.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
		if !mechanic.Active {
			return nil, fmt.Errorf("%w: funcionário inativo", domain.ErrInvalidInput)
		}
		mechanicID = mechanic.ID
	}

	if in.LaborCost.IsNegative() || in.Discount.IsNegative() {
		return nil, fmt.Errorf("%w: valores não podem ser negativos", domain.ErrInvalidInput)
	}

	openedOn := today()
	if in.OpenedOn != "" {
		if openedOn, err = parseDate(in.OpenedOn); err != nil {
			return nil, err
		}
	}
	var dueOn *time.Time
	if in.DueOn != "" {
		d, err := parseDate(in.DueOn)
		if err != nil {
			return nil, err
		}
		dueOn = &d
	}

	now := time.Now()
	order := &entity.ServiceOrder{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		ClientID:    client.ID,
		VehicleID:   vehicle.ID,
		AssigneeID:  assignee.ID,
		MechanicID:  mechanicID,
		CreatedByID: userID,
		Status:      entity.OrderStatusAberta,
		OpenedOn:    openedOn,
		DueOn:       dueOn,
		Problem:     strings.TrimSpace(in.Problem),
		Diagnosis:   strings.TrimSpace(in.Diagnosis),
		Notes:       strings.TrimSpace(in.Notes),
		LaborCost:   in.LaborCost,
		Discount:    in.Discount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	order.Total = order.ComputeTotal()

	if err := uc.repo.Create(order); err != nil {
		return nil, err
	}

	uc.addLog(order, userID, entity.ActionCriar, "")
	uc.addLog(order, userID, entity.ActionAtribuir, "Atribuída para "+assignee.Name)
	uc.publish(EventOrderCreated, companyID, orderEventPayload{
		OrderID: order.ID, Number: order.Number, Status: order.Status, Total: order.Total,
	})
	return uc.Get(companyID, order.ID)
}

// List devolve as OS da empresa filtradas por status, período e busca livre.
func (uc *OrderUseCase) List(companyID, status, q, from, to string, page dto.PageRequest) (*dto.OrderListResponse, error) {
	page.DefaultPage()
	if status != "" && !entity.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: status desconhecido %q", domain.ErrInvalidInput, status)
	}

	filter := repository.OrderFilter{
		Status: status,
		Q:      strings.TrimSpace(q),
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	if from != "" {
		d, err := parseDate(from)
		if err != nil {
			return nil, err
		}
		filter.From = &d
	}
	if to != "" {
		d, err := parseDate(to)
		if err != nil {
			return nil, err
		}
		filter.To = &d
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, fmt.Errorf("%w: intervalo invertido", domain.ErrInvalidInput)
	}

	list, err := uc.repo.List(companyID, filter)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(companyID, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.OrderSummaryResponse, 0, len(list))
	for _, s := range list {
		items = append(items, toOrderSummaryResponse(s))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Get devolve o detalhe completo da OS: itens, pagamentos, histórico e totais.
func (uc *OrderUseCase) Get(companyID, orderID string) (*dto.OrderResponse, error) {
	order, err := uc.loadOrder(companyID, orderID)
	if err != nil {
		return nil, err
	}
	logs, err := uc.repo.ListLogs(order.ID)
	if err != nil {
		return nil, err
	}
	return uc.buildOrderResponse(order, logs)
}

// Update edita campos e/ou move o status da OS, gravando o histórico de cada
// mudança. Estados terminais não saem.
func (uc *OrderUseCase) Update(userID, companyID, orderID string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	order, err := uc.repo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	// Itens carregados para o recálculo do total ao fim.
	if order.Items, err = uc.repo.ListItems(order.ID); err != nil {
		return nil, err
	}

	var changed []string
	assigneeName := "" // preenchido quando há reatribuição

	if in.AssigneeID != nil && *in.AssigneeID != order.AssigneeID {
		assignee, err := uc.userRepo.GetByID(*in.AssigneeID)
		if err != nil {
			return nil, err
		}
		if assignee == nil || assignee.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
		if !assignee.Active {
			return nil, fmt.Errorf("%w: usuário inativo não assume atendimento", domain.ErrInvalidInput)
		}
		order.AssigneeID = assignee.ID
		assigneeName = assignee.Name
	}
	if in.MechanicID != nil && *in.MechanicID != order.MechanicID {
		if *in.MechanicID == "" {
			order.MechanicID = ""
		} else {
			mechanic, err := uc.employeeRepo.GetByID(*in.MechanicID)
			if err != nil {
				return nil, err
			}
			if mechanic == nil || mechanic.CompanyID != companyID {
				return nil, domain.ErrNotFound
			}
			if !mechanic.Active {
				return nil, fmt.Errorf("%w: funcionário inativo", domain.ErrInvalidInput)
			}
			order.MechanicID = mechanic.ID
		}
		changed = append(changed, "mecânico")
	}
	if in.DueOn != nil {
		if *in.DueOn == "" {
			if order.DueOn != nil {
				changed = append(changed, "previsão")
			}
			order.DueOn = nil
		} else {
			d, err := parseDate(*in.DueOn)
			if err != nil {
				return nil, err
			}
			if order.DueOn == nil || !order.DueOn.Equal(d) {
				changed = append(changed, "previsão")
			}
			order.DueOn = &d
		}
	}
	if in.Problem != nil {
		v := strings.TrimSpace(*in.Problem)
		if v != order.Problem {
			changed = append(changed, "problema")
		}
		order.Problem = v
	}
	if in.Diagnosis != nil {
		v := strings.TrimSpace(*in.Diagnosis)
		if v != order.Diagnosis {
			changed = append(changed, "diagnóstico")
		}
		order.Diagnosis = v
	}
	if in.Notes != nil {
		v := strings.TrimSpace(*in.Notes)
		if v != order.Notes {
			changed = append(changed, "observações")
		}
		order.Notes = v
	}
	if in.LaborCost != nil {
		if in.LaborCost.IsNegative() {
			return nil, fmt.Errorf("%w: valores não podem ser negativos", domain.ErrInvalidInput)
		}
		if !in.LaborCost.Equal(order.LaborCost) {
			changed = append(changed, "mão de obra")
		}
		order.LaborCost = *in.LaborCost
	}
	if in.Discount != nil {
		if in.Discount.IsNegative() {
			return nil, fmt.Errorf("%w: valores não podem ser negativos", domain.ErrInvalidInput)
		}
		if !in.Discount.Equal(order.Discount) {
			changed = append(changed, "desconto")
		}
		order.Discount = *in.Discount
	}

	statusFrom := order.Status
	statusAction := ""
	if in.Status != nil && *in.Status != order.Status {
		newStatus := *in.Status
		if !entity.ValidOrderStatus(newStatus) {
			return nil, fmt.Errorf("%w: status desconhecido %q", domain.ErrInvalidInput, newStatus)
		}
		if !entity.CanTransition(order.Status, newStatus) {
			return nil, fmt.Errorf("%w: %s não pode ir para %s", domain.ErrInvalidStatusChange, order.Status, newStatus)
		}

		statusAction = entity.TransitionAction(order.Status, newStatus)
		now := time.Now()
		switch statusAction {
		case entity.ActionIniciar:
			if order.StartedAt == nil {
				order.StartedAt = &now
			} else {
				// Retomada de execução: já iniciada antes, vira edição.
				statusAction = entity.ActionEditar
			}
		case entity.ActionFinalizar:
			order.ClosedAt = &now
			order.ClosedByID = userID
			if order.DueOn == nil {
				d := today()
				order.DueOn = &d
			}
		case entity.ActionCancelar:
			order.ClosedAt = &now
			order.ClosedByID = userID
		}
		order.Status = newStatus
	}

	order.Total = order.ComputeTotal()
	order.UpdatedAt = time.Now()
	if err := uc.repo.Update(order); err != nil {
		return nil, err
	}

	if statusAction != "" {
		note := strings.TrimSpace(in.StatusNote)
		if note == "" && statusAction == entity.ActionEditar {
			note = fmt.Sprintf("Status %s para %s", statusFrom, order.Status)
		}
		uc.addLog(order, userID, statusAction, note)
	}
	if assigneeName != "" {
		uc.addLog(order, userID, entity.ActionAtribuir, "Atribuída para "+assigneeName)
	}
	if len(changed) > 0 {
		uc.addLog(order, userID, entity.ActionEditar, "Campos: "+strings.Join(changed, ", "))
	}

	if statusAction != "" {
		uc.publish(EventOrderStatusChanged, companyID, orderEventPayload{
			OrderID: order.ID, Number: order.Number, Status: order.Status, From: statusFrom, Total: order.Total,
		})
		if order.Status == entity.OrderStatusFinalizada {
			uc.publish(EventOrderFinished, companyID, orderEventPayload{
				OrderID: order.ID, Number: order.Number, Status: order.Status, Total: order.Total,
			})
		}
	}
	return uc.Get(companyID, order.ID)
}

// AddItem lança uma linha na OS. Produto com controle de estoque exige
// quantidade inteira dentro do disponível e baixa o saldo na mesma transação.
func (uc *OrderUseCase) AddItem(ctx context.Context, companyID, orderID string, in dto.AddOrderItemRequest) (*dto.OrderResponse, error) {
	if in.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: quantidade deve ser maior que zero", domain.ErrInvalidInput)
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: valores não podem ser negativos", domain.ErrInvalidInput)
	}

	err := uc.tx.RunOrder(ctx, func(
		orderRepo repository.ServiceOrderRepository,
		productRepo repository.ProductRepository,
	) error {
		order, err := orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil || order.CompanyID != companyID {
			return domain.ErrNotFound
		}
		if order.IsFinal() {
			return fmt.Errorf("%w: OS %s não recebe itens", domain.ErrConflict, order.Status)
		}

		description := strings.TrimSpace(in.Description)
		unitPrice := decimal.Zero
		if in.UnitPrice != nil {
			unitPrice = *in.UnitPrice
		}
		productID := ""

		if in.ProductID != "" {
			product, err := productRepo.GetByIDForUpdate(in.ProductID)
			if err != nil {
				return err
			}
			if product == nil || product.CompanyID != companyID {
				return domain.ErrNotFound
			}
			productID = product.ID
			if description == "" {
				description = product.Name
			}
			if in.UnitPrice == nil {
				unitPrice = product.Price
			}
			if product.StockTracked() {
				if !in.Quantity.IsInteger() {
					return fmt.Errorf("%w: quantidade de item de estoque deve ser inteira", domain.ErrInvalidInput)
				}
				if in.Quantity.GreaterThan(*product.Stock) {
					return fmt.Errorf("%w: %s tem %s em estoque", domain.ErrInsufficientStock, product.Name, product.Stock)
				}
				newStock := product.Stock.Sub(in.Quantity)
				if err := productRepo.UpdateStock(product.ID, &newStock); err != nil {
					return err
				}
			}
		}
		if description == "" {
			return fmt.Errorf("%w: informe a descrição do item", domain.ErrInvalidInput)
		}

		item := &entity.ServiceOrderItem{
			ID:          uuid.New().String(),
			CompanyID:   companyID,
			OrderID:     order.ID,
			ProductID:   productID,
			Description: description,
			Quantity:    in.Quantity,
			UnitPrice:   unitPrice,
			Subtotal:    in.Quantity.Mul(unitPrice),
			CreatedAt:   time.Now(),
		}
		if err := orderRepo.AddItem(item); err != nil {
			return err
		}
		return refreshOrderTotal(orderRepo, order)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(companyID, orderID)
}

// RemoveItem tira uma linha da OS devolvendo o estoque na mesma transação.
func (uc *OrderUseCase) RemoveItem(ctx context.Context, companyID, orderID, itemID string) (*dto.OrderResponse, error) {
	err := uc.tx.RunOrder(ctx, func(
		orderRepo repository.ServiceOrderRepository,
		productRepo repository.ProductRepository,
	) error {
		order, err := orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil || order.CompanyID != companyID {
			return domain.ErrNotFound
		}
		if order.IsFinal() {
			return fmt.Errorf("%w: OS %s não aceita alteração de itens", domain.ErrConflict, order.Status)
		}
		item, err := orderRepo.GetItem(itemID)
		if err != nil {
			return err
		}
		if item == nil || item.OrderID != order.ID {
			return domain.ErrNotFound
		}

		if item.ProductID != "" {
			product, err := productRepo.GetByIDForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product != nil && product.StockTracked() {
				newStock := product.Stock.Add(item.Quantity)
				if err := productRepo.UpdateStock(product.ID, &newStock); err != nil {
					return err
				}
			}
		}
		if err := orderRepo.DeleteItem(item.ID); err != nil {
			return err
		}
		return refreshOrderTotal(orderRepo, order)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(companyID, orderID)
}

// AddPayment registra um recebimento. Pagar a mais é permitido e vira crédito
// (saldo negativo); só OS cancelada não recebe.
func (uc *OrderUseCase) AddPayment(companyID, orderID string, in dto.AddPaymentRequest) (*dto.OrderResponse, error) {
	order, err := uc.repo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if order.Status == entity.OrderStatusCancelada {
		return nil, fmt.Errorf("%w: OS cancelada não recebe pagamento", domain.ErrConflict)
	}
	if !entity.ValidPaymentMethod(in.Method) {
		return nil, fmt.Errorf("%w: forma de pagamento desconhecida %q", domain.ErrInvalidInput, in.Method)
	}
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: valor deve ser maior que zero", domain.ErrInvalidInput)
	}
	paidOn := today()
	if in.PaidOn != "" {
		if paidOn, err = parseDate(in.PaidOn); err != nil {
			return nil, err
		}
	}

	payment := &entity.Payment{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		OrderID:   order.ID,
		Method:    in.Method,
		Amount:    in.Amount,
		PaidOn:    paidOn,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.AddPayment(payment); err != nil {
		return nil, err
	}
	return uc.Get(companyID, orderID)
}

// RemovePayment estorna um pagamento lançado errado.
func (uc *OrderUseCase) RemovePayment(companyID, orderID, paymentID string) (*dto.OrderResponse, error) {
	order, err := uc.repo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	payment, err := uc.repo.GetPayment(paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil || payment.OrderID != order.ID {
		return nil, domain.ErrNotFound
	}
	if err := uc.repo.DeletePayment(payment.ID); err != nil {
		return nil, err
	}
	return uc.Get(companyID, orderID)
}

// GetPDF renderiza a OS em PDF; devolve os bytes e o nome do arquivo.
func (uc *OrderUseCase) GetPDF(ctx context.Context, companyID, orderID string) ([]byte, string, error) {
	order, err := uc.loadOrder(companyID, orderID)
	if err != nil {
		return nil, "", err
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, "", err
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}
	client, err := uc.clientRepo.GetByID(order.ClientID)
	if err != nil {
		return nil, "", err
	}
	vehicle, err := uc.vehicleRepo.GetByID(order.VehicleID)
	if err != nil {
		return nil, "", err
	}

	assigneeName := ""
	if order.AssigneeID != "" {
		assignee, err := uc.userRepo.GetByID(order.AssigneeID)
		if err != nil {
			return nil, "", err
		}
		if assignee != nil {
			assigneeName = assignee.Name
		}
	}
	mechanicName := ""
	if order.MechanicID != "" {
		mechanic, err := uc.employeeRepo.GetByID(order.MechanicID)
		if err != nil {
			return nil, "", err
		}
		if mechanic != nil {
			mechanicName = mechanic.Name
		}
	}

	var logo []byte
	if company.LogoPath != "" {
		logo, err = uc.logos.Open(company.LogoPath)
		if err != nil {
			// PDF sai sem logomarca; não trava a impressão.
			uc.log.Warn().Err(err).Str("path", company.LogoPath).Msg("logo indisponível para o PDF")
			logo = nil
		}
	}

	data := &OrderPDFData{
		Order:        order,
		Company:      company,
		Client:       client,
		Vehicle:      vehicle,
		AssigneeName: assigneeName,
		MechanicName: mechanicName,
		Logo:         logo,
	}
	pdfBytes, err := uc.pdf.GenerateOrderPDF(ctx, data)
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, fmt.Sprintf("os-%d.pdf", order.Number), nil
}

// ── apoio ──

// loadOrder carrega a OS da empresa com itens e pagamentos.
func (uc *OrderUseCase) loadOrder(companyID, orderID string) (*entity.ServiceOrder, error) {
	order, err := uc.repo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if order.Items, err = uc.repo.ListItems(order.ID); err != nil {
		return nil, err
	}
	if order.Payments, err = uc.repo.ListPayments(order.ID); err != nil {
		return nil, err
	}
	return order, nil
}

// refreshOrderTotal recarrega os itens e regrava o cache de total da OS.
func refreshOrderTotal(orderRepo repository.ServiceOrderRepository, order *entity.ServiceOrder) error {
	items, err := orderRepo.ListItems(order.ID)
	if err != nil {
		return err
	}
	order.Items = items
	return orderRepo.UpdateTotal(order.ID, order.ComputeTotal())
}

// addLog grava uma entrada do histórico; falha não derruba a operação já feita.
func (uc *OrderUseCase) addLog(order *entity.ServiceOrder, userID, action, note string) {
	entry := &entity.ServiceOrderLog{
		ID:        uuid.New().String(),
		CompanyID: order.CompanyID,
		OrderID:   order.ID,
		UserID:    userID,
		Action:    action,
		Note:      note,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.AddLog(entry); err != nil {
		uc.log.Warn().Err(err).Str("order_id", order.ID).Str("action", action).Msg("falha ao gravar histórico da OS")
	}
}

// publish emite um evento de ciclo de vida; falha vira log, nunca erro da operação.
func (uc *OrderUseCase) publish(eventType, companyID string, payload orderEventPayload) {
	if err := uc.events.Publish(context.Background(), eventType, companyID, payload); err != nil {
		uc.log.Warn().Err(err).Str("event", eventType).Str("order_id", payload.OrderID).Msg("falha ao publicar evento")
	}
}

func (uc *OrderUseCase) buildOrderResponse(order *entity.ServiceOrder, logs []entity.ServiceOrderLog) (*dto.OrderResponse, error) {
	client, err := uc.clientRepo.GetByID(order.ClientID)
	if err != nil {
		return nil, err
	}
	vehicle, err := uc.vehicleRepo.GetByID(order.VehicleID)
	if err != nil {
		return nil, err
	}

	// Nomes de usuário do responsável e do histórico numa passada só.
	names := make(map[string]string)
	ids := make([]string, 0, len(logs)+1)
	ids = append(ids, order.AssigneeID)
	for _, l := range logs {
		ids = append(ids, l.UserID)
	}
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := names[id]; ok {
			continue
		}
		u, err := uc.userRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if u != nil {
			names[id] = u.Name
		}
	}

	mechanicName := ""
	if order.MechanicID != "" {
		mechanic, err := uc.employeeRepo.GetByID(order.MechanicID)
		if err != nil {
			return nil, err
		}
		if mechanic != nil {
			mechanicName = mechanic.Name
		}
	}

	resp := &dto.OrderResponse{
		ID:           order.ID,
		Number:       order.Number,
		Status:       order.Status,
		OpenedOn:     order.OpenedOn.Format(dto.DateLayout),
		StartedAt:    order.StartedAt,
		ClosedAt:     order.ClosedAt,
		ClientID:     order.ClientID,
		VehicleID:    order.VehicleID,
		AssigneeID:   order.AssigneeID,
		AssigneeName: names[order.AssigneeID],
		MechanicID:   order.MechanicID,
		MechanicName: mechanicName,
		Problem:      order.Problem,
		Diagnosis:    order.Diagnosis,
		Notes:        order.Notes,
		ItemsTotal:   order.ItemsTotal(),
		LaborCost:    order.LaborCost,
		Discount:     order.Discount,
		Total:        order.ComputeTotal(),
		PaidTotal:    order.PaidTotal(),
		Balance:      order.Balance(),
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
	if order.DueOn != nil {
		resp.DueOn = order.DueOn.Format(dto.DateLayout)
	}
	if client != nil {
		resp.ClientName = client.Name
	}
	if vehicle != nil {
		resp.VehiclePlate = vehicle.Plate
		resp.VehicleModel = vehicle.Model
	}

	resp.Items = make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, it := range order.Items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	resp.Payments = make([]dto.OrderPaymentResponse, 0, len(order.Payments))
	for _, p := range order.Payments {
		resp.Payments = append(resp.Payments, dto.OrderPaymentResponse{
			ID:        p.ID,
			Method:    p.Method,
			Amount:    p.Amount,
			PaidOn:    p.PaidOn.Format(dto.DateLayout),
			CreatedAt: p.CreatedAt,
		})
	}
	resp.Logs = make([]dto.OrderLogResponse, 0, len(logs))
	for _, l := range logs {
		resp.Logs = append(resp.Logs, dto.OrderLogResponse{
			ID:        l.ID,
			UserID:    l.UserID,
			UserName:  names[l.UserID],
			Action:    l.Action,
			Note:      l.Note,
			CreatedAt: l.CreatedAt,
		})
	}
	return resp, nil
}

func toOrderSummaryResponse(s *repository.OrderSummary) dto.OrderSummaryResponse {
	o := s.Order
	resp := dto.OrderSummaryResponse{
		ID:           o.ID,
		Number:       o.Number,
		Status:       o.Status,
		OpenedOn:     o.OpenedOn.Format(dto.DateLayout),
		ClientName:   s.ClientName,
		VehiclePlate: s.VehiclePlate,
		VehicleModel: s.VehicleModel,
		AssigneeName: s.AssigneeName,
		MechanicName: s.MechanicName,
		Total:        o.Total,
		PaidTotal:    s.PaidTotal,
		Balance:      s.Balance,
	}
	if o.DueOn != nil {
		resp.DueOn = o.DueOn.Format(dto.DateLayout)
	}
	return resp
}

// today devolve a data de hoje zerada no horário local.
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}
