package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest abertura de OS. Status inicial é sempre ABERTA;
// AssigneeID vazio cai no usuário que criou.
type CreateOrderRequest struct {
	ClientID   string          `json:"client_id" validate:"required,uuid"`
	VehicleID  string          `json:"vehicle_id" validate:"required,uuid"`
	AssigneeID string          `json:"assignee_id" validate:"omitempty,uuid"`
	MechanicID string          `json:"mechanic_id" validate:"omitempty,uuid"`
	OpenedOn   string          `json:"opened_on"` // "2006-01-02", vazio = hoje
	DueOn      string          `json:"due_on"`
	Problem    string          `json:"problem"`
	Diagnosis  string          `json:"diagnosis"`
	Notes      string          `json:"notes"`
	LaborCost  decimal.Decimal `json:"labor_cost"`
	Discount   decimal.Decimal `json:"discount"`
}

// UpdateOrderRequest edição de campos e/ou mudança de status da OS.
// StatusNote acompanha a mudança de status no histórico.
type UpdateOrderRequest struct {
	Status     *string          `json:"status" validate:"omitempty,oneof=ABERTA EXECUCAO AGUARDANDO_PECA FINALIZADA CANCELADA"`
	StatusNote string           `json:"status_note"`
	AssigneeID *string          `json:"assignee_id"`
	MechanicID *string          `json:"mechanic_id"`
	DueOn      *string          `json:"due_on"`
	Problem    *string          `json:"problem"`
	Diagnosis  *string          `json:"diagnosis"`
	Notes      *string          `json:"notes"`
	LaborCost  *decimal.Decimal `json:"labor_cost"`
	Discount   *decimal.Decimal `json:"discount"`
}

// AddOrderItemRequest nova linha da OS. ProductID vazio = linha livre
// (serviço); com produto, Description vazia cai no nome do produto e
// UnitPrice nil cai no preço de tabela.
type AddOrderItemRequest struct {
	ProductID   string           `json:"product_id" validate:"omitempty,uuid"`
	Description string           `json:"description"`
	Quantity    decimal.Decimal  `json:"quantity" validate:"required"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}

// AddPaymentRequest registro de pagamento recebido.
type AddPaymentRequest struct {
	Method string          `json:"method" validate:"required,oneof=DEBITO CREDITO DINHEIRO PIX CHEQUE OUTRO"`
	Amount decimal.Decimal `json:"amount" validate:"required"`
	PaidOn string          `json:"paid_on"` // vazio = hoje
}

// OrderItemResponse linha da OS.
type OrderItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderPaymentResponse pagamento da OS.
type OrderPaymentResponse struct {
	ID        string          `json:"id"`
	Method    string          `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
	PaidOn    string          `json:"paid_on"`
	CreatedAt time.Time       `json:"created_at"`
}

// OrderLogResponse entrada do histórico de auditoria.
type OrderLogResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	UserName  string    `json:"user_name,omitempty"`
	Action    string    `json:"action"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderResponse detalhe completo da OS com itens, pagamentos e histórico.
type OrderResponse struct {
	ID           string          `json:"id"`
	Number       int64           `json:"number"`
	Status       string          `json:"status"`
	OpenedOn     string          `json:"opened_on"`
	DueOn        string          `json:"due_on,omitempty"`
	StartedAt    *time.Time      `json:"started_at,omitempty"`
	ClosedAt     *time.Time      `json:"closed_at,omitempty"`
	ClientID     string          `json:"client_id"`
	ClientName   string          `json:"client_name"`
	VehicleID    string          `json:"vehicle_id"`
	VehiclePlate string          `json:"vehicle_plate"`
	VehicleModel string          `json:"vehicle_model,omitempty"`
	AssigneeID   string          `json:"assignee_id,omitempty"`
	AssigneeName string          `json:"assignee_name,omitempty"`
	MechanicID   string          `json:"mechanic_id,omitempty"`
	MechanicName string          `json:"mechanic_name,omitempty"`
	Problem      string          `json:"problem,omitempty"`
	Diagnosis    string          `json:"diagnosis,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	ItemsTotal   decimal.Decimal `json:"items_total"`
	LaborCost    decimal.Decimal `json:"labor_cost"`
	Discount     decimal.Decimal `json:"discount"`
	Total        decimal.Decimal `json:"total"`
	PaidTotal    decimal.Decimal `json:"paid_total"`
	Balance      decimal.Decimal `json:"balance"`

	Items    []OrderItemResponse    `json:"items"`
	Payments []OrderPaymentResponse `json:"payments"`
	Logs     []OrderLogResponse     `json:"logs,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderSummaryResponse linha da listagem de OS.
type OrderSummaryResponse struct {
	ID           string          `json:"id"`
	Number       int64           `json:"number"`
	Status       string          `json:"status"`
	OpenedOn     string          `json:"opened_on"`
	DueOn        string          `json:"due_on,omitempty"`
	ClientName   string          `json:"client_name"`
	VehiclePlate string          `json:"vehicle_plate"`
	VehicleModel string          `json:"vehicle_model,omitempty"`
	AssigneeName string          `json:"assignee_name,omitempty"`
	MechanicName string          `json:"mechanic_name,omitempty"`
	Total        decimal.Decimal `json:"total"`
	PaidTotal    decimal.Decimal `json:"paid_total"`
	Balance      decimal.Decimal `json:"balance"`
}

// OrderListResponse lista paginada de OS.
type OrderListResponse struct {
	Items []OrderSummaryResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}
