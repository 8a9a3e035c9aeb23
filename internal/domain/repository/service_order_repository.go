package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/alpsistemas/oficina-api/internal/domain/entity"
)

// OrderFilter filtra a listagem de ordens de serviço.
type OrderFilter struct {
	Status string     // vazio = todos
	From   *time.Time // filtra OpenedOn >= From
	To     *time.Time // filtra OpenedOn <= To
	Q      string     // nome do cliente ou placa
	Limit  int
	Offset int
}

// OrderSummary é a linha da listagem: a OS com os agregados e nomes já resolvidos
// pelo SQL, sem carregar itens e pagamentos.
type OrderSummary struct {
	Order        entity.ServiceOrder
	ClientName   string
	VehiclePlate string
	VehicleModel string
	AssigneeName string
	MechanicName string
	PaidTotal    decimal.Decimal
	Balance      decimal.Decimal
}

// ServiceOrderRepository define o porto de persistência para ServiceOrder e seus filhos.
type ServiceOrderRepository interface {
	Create(order *entity.ServiceOrder) error
	// GetByID devolve a OS sem itens/pagamentos; use Load* para o detalhe.
	GetByID(id string) (*entity.ServiceOrder, error)
	Update(order *entity.ServiceOrder) error
	// UpdateTotal regrava o cache de total depois de mexer em itens/valores.
	UpdateTotal(orderID string, total decimal.Decimal) error
	List(companyID string, filter OrderFilter) ([]*OrderSummary, error)
	Count(companyID string, filter OrderFilter) (int, error)

	AddItem(item *entity.ServiceOrderItem) error
	GetItem(id string) (*entity.ServiceOrderItem, error)
	DeleteItem(id string) error
	ListItems(orderID string) ([]entity.ServiceOrderItem, error)

	AddPayment(payment *entity.Payment) error
	GetPayment(id string) (*entity.Payment, error)
	DeletePayment(id string) error
	ListPayments(orderID string) ([]entity.Payment, error)

	AddLog(log *entity.ServiceOrderLog) error
	ListLogs(orderID string) ([]entity.ServiceOrderLog, error)

	// CountOpenByClient devolve OS não terminais e o saldo em aberto do cliente.
	CountOpenByClient(clientID string) (count int, openBalance decimal.Decimal, err error)
}
