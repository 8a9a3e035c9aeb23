package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de uma ordem de serviço (devem coincidir com o CHECK da tabela service_orders).
const (
	OrderStatusAberta         = "ABERTA"          // recém criada, aguardando início
	OrderStatusExecucao       = "EXECUCAO"        // em execução na oficina
	OrderStatusAguardandoPeca = "AGUARDANDO_PECA" // parada por falta de peça
	OrderStatusFinalizada     = "FINALIZADA"      // entregue, terminal
	OrderStatusCancelada      = "CANCELADA"       // cancelada, terminal
)

// Ações registradas no histórico da OS.
const (
	ActionCriar     = "CRIAR"
	ActionAtribuir  = "ATRIBUIR"
	ActionIniciar   = "INICIAR"
	ActionFinalizar = "FINALIZAR"
	ActionCancelar  = "CANCELAR"
	ActionEditar    = "EDITAR"
)

// ServiceOrder representa uma ordem de serviço (OS) de um veículo.
// Total é o cache mantido a cada escrita de itens/mão de obra/desconto; as
// leituras de detalhe recalculam a partir de Items e Payments carregados.
type ServiceOrder struct {
	ID        string
	Number    int64 // sequencial exibido ao cliente ("OS Nº 1042"), gerado pelo banco
	CompanyID string
	ClientID  string
	VehicleID string

	AssigneeID  string // usuário responsável pelo atendimento
	MechanicID  string // funcionário executor, vazio = não atribuído
	CreatedByID string
	ClosedByID  string // preenchido ao finalizar

	Status    string
	OpenedOn  time.Time  // data de entrada do veículo
	DueOn     *time.Time // previsão de entrega
	StartedAt *time.Time // quando entrou em execução
	ClosedAt  *time.Time // quando foi encerrada (finalizada ou cancelada)

	Problem   string // relato do cliente
	Diagnosis string
	Notes     string

	LaborCost decimal.Decimal // mão de obra
	Discount  decimal.Decimal
	Total     decimal.Decimal // cache: ItemsTotal + LaborCost - Discount

	Items    []ServiceOrderItem
	Payments []Payment

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ServiceOrderItem representa uma linha da OS (peça do estoque ou serviço avulso).
type ServiceOrderItem struct {
	ID          string
	CompanyID   string
	OrderID     string
	ProductID   string // vazio = linha livre, sem vínculo com o estoque
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal // Quantity * UnitPrice, congelado na inserção
	CreatedAt   time.Time
}

// ServiceOrderLog representa uma entrada do histórico de auditoria da OS.
type ServiceOrderLog struct {
	ID        string
	CompanyID string
	OrderID   string
	UserID    string
	Action    string // ver constantes Action*
	Note      string
	CreatedAt time.Time
}

// ItemsTotal soma os subtotais dos itens carregados.
func (o *ServiceOrder) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal)
	}
	return total
}

// ComputeTotal devolve ItemsTotal + LaborCost - Discount.
// Pode ficar negativo quando o desconto supera os itens; a oficina decide.
func (o *ServiceOrder) ComputeTotal() decimal.Decimal {
	return o.ItemsTotal().Add(o.LaborCost).Sub(o.Discount)
}

// PaidTotal soma os pagamentos carregados.
func (o *ServiceOrder) PaidTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range o.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// Balance devolve o saldo devedor: total menos pagamentos.
// Negativo indica pagamento a maior (crédito do cliente).
func (o *ServiceOrder) Balance() decimal.Decimal {
	return o.ComputeTotal().Sub(o.PaidTotal())
}

// IsFinal informa se o status é terminal.
func (o *ServiceOrder) IsFinal() bool {
	return o.Status == OrderStatusFinalizada || o.Status == OrderStatusCancelada
}

// ValidOrderStatus informa se o status é um dos aceitos.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusAberta, OrderStatusExecucao, OrderStatusAguardandoPeca,
		OrderStatusFinalizada, OrderStatusCancelada:
		return true
	}
	return false
}

// CanTransition valida a mudança de status: estados terminais não saem,
// os demais circulam livremente entre si e podem finalizar ou cancelar.
func CanTransition(from, to string) bool {
	if !ValidOrderStatus(from) || !ValidOrderStatus(to) {
		return false
	}
	if from == to {
		return true
	}
	if from == OrderStatusFinalizada || from == OrderStatusCancelada {
		return false
	}
	return true
}

// TransitionAction devolve a ação de auditoria correspondente à mudança de status.
func TransitionAction(from, to string) string {
	switch {
	case from != OrderStatusExecucao && to == OrderStatusExecucao:
		return ActionIniciar
	case to == OrderStatusFinalizada:
		return ActionFinalizar
	case to == OrderStatusCancelada:
		return ActionCancelar
	default:
		return ActionEditar
	}
}
