package usecase

import (
	"context"
	"time"

	"github.com/alpsistemas/oficina-api/internal/application/dto"
	"github.com/alpsistemas/oficina-api/internal/domain/entity"
	"github.com/alpsistemas/oficina-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Tipos de evento publicados no exchange (routing key).
const (
	EventOrderCreated       = "os.criada"
	EventOrderStatusChanged = "os.status_alterada"
	EventOrderFinished      = "os.finalizada"
)

// OrderTxRunner executa escritas de OS que mexem em estoque (itens) dentro
// de uma transação.
type OrderTxRunner interface {
	RunOrder(ctx context.Context, fn func(
		orderRepo repository.ServiceOrderRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// AgendaTxRunner executa a criação rápida de compromisso (get-or-create de
// cliente e veículo + agendamento) dentro de uma transação.
type AgendaTxRunner interface {
	RunAgenda(ctx context.Context, fn func(
		clientRepo repository.ClientRepository,
		vehicleRepo repository.VehicleRepository,
		appointmentRepo repository.AppointmentRepository,
	) error) error
}

// EventPublisher publica eventos de ciclo de vida da OS. Implementações:
// events.Publisher (RabbitMQ) e events.Noop quando não há broker configurado.
type EventPublisher interface {
	Publish(ctx context.Context, eventType, companyID string, payload any) error
}

// Mailer notificações de plano, usuários e suporte. Os fluxos de auth usam
// auth.Mailer; a implementação Resend atende os dois portos.
type Mailer interface {
	// SendAccountApproved avisa um gerente que o pagamento foi confirmado.
	SendAccountApproved(to, userName, companyName string, expiresAt time.Time) error
	// SendUserCredentials envia login e senha inicial de um usuário novo.
	SendUserCredentials(to, userName, username, password, companyName string) error
	// SendRenewalRequested aviso de pedido de renovação para a plataforma.
	SendRenewalRequested(companyName, period string) error
	// SendRenewalApplied confirma a renovação aplicada para um gerente.
	SendRenewalApplied(to, userName, companyName string, expiresAt time.Time) error
	// SendContactForm entrega o formulário de contato ao e-mail da plataforma.
	SendContactForm(name, email, phone, message string) error
}

// LogoStore guarda e serve o logo da empresa (disco local ou S3).
type LogoStore interface {
	// Save grava os bytes e devolve o caminho persistido na empresa.
	Save(companyID, filename string, data []byte) (string, error)
	// Open lê os bytes de um caminho salvo (para embutir no PDF da OS).
	Open(path string) ([]byte, error)
}

// OrderPDFData dados já resolvidos para o render do PDF da OS.
type OrderPDFData struct {
	Order        *entity.ServiceOrder
	Company      *entity.Company
	Client       *entity.Client
	Vehicle      *entity.Vehicle
	AssigneeName string
	MechanicName string
	Logo         []byte // PNG/JPEG; vazio = sem logo no cabeçalho
}

// OrderPDFGenerator renderiza a OS em PDF (A4).
type OrderPDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, data *OrderPDFData) ([]byte, error)
}

// ProductCSVRow linha já tipada da planilha de produtos.
type ProductCSVRow struct {
	Line        int // número da linha no arquivo, para as mensagens de erro
	Name        string
	Description string
	Code        string
	Cost        *decimal.Decimal
	Price       decimal.Decimal
	Stock       *decimal.Decimal // sempre inteiro; nil = coluna vazia (sem controle)
}

// ProductCSVCodec lê e gera a planilha de produtos no layout
// nome;descricao;codigo;custo;preco;estoque.
type ProductCSVCodec interface {
	// Parse decodifica o arquivo (UTF-8 com ou sem BOM, ou Latin-1) e separa
	// as linhas válidas dos erros por linha. O error fica para arquivo ilegível.
	Parse(data []byte) ([]ProductCSVRow, []dto.ImportLineError, error)
	// Render monta o CSV de exportação com os produtos da empresa.
	Render(products []*entity.Product) ([]byte, error)
}
