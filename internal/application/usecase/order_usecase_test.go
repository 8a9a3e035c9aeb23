package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpsistemas/oficina-api/internal/application/dto"
	"github.com/alpsistemas/oficina-api/internal/application/usecase"
	"github.com/alpsistemas/oficina-api/internal/domain"
	"github.com/alpsistemas/oficina-api/internal/domain/entity"
)

// orderFixture monta o caso de uso de OS com todos os fakes e uma empresa
// semeada com gerente, cliente e veículo.
type orderFixture struct {
	uc        *usecase.OrderUseCase
	orders    *fakeOrderRepo
	products  *fakeProductRepo
	clients   *fakeClientRepo
	vehicles  *fakeVehicleRepo
	employees *fakeEmployeeRepo
	events    *fakeEvents
	client    *entity.Client
	vehicle   *entity.Vehicle
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	companies := newFakeCompanyRepo()
	users := newFakeUserRepo()
	clients := newFakeClientRepo()
	vehicles := newFakeVehicleRepo()
	employees := newFakeEmployeeRepo()
	products := newFakeProductRepo()
	orders := newFakeOrderRepo()
	events := &fakeEvents{}

	seedCompany(companies, entity.PlanBasico)
	seedUser(users, testManagerID, entity.RoleGerente)
	client := seedClient(clients, "João da Silva")
	vehicle := seedVehicle(vehicles, client.ID, "ABC1D23")

	uc := usecase.NewOrderUseCase(usecase.OrderUseCaseParams{
		Repo:         orders,
		ClientRepo:   clients,
		VehicleRepo:  vehicles,
		UserRepo:     users,
		EmployeeRepo: employees,
		CompanyRepo:  companies,
		Tx:           &fakeOrderTx{orderRepo: orders, productRepo: products},
		Events:       events,
		PDF:          fakePDF{},
		Logos:        newFakeLogos(),
		Log:          testLogger(),
	})
	return &orderFixture{
		uc:        uc,
		orders:    orders,
		products:  products,
		clients:   clients,
		vehicles:  vehicles,
		employees: employees,
		events:    events,
		client:    client,
		vehicle:   vehicle,
	}
}

// createOrder abre uma OS simples com mão de obra 100 e desconto 10.
func (f *orderFixture) createOrder(t *testing.T) *dto.OrderResponse {
	t.Helper()
	out, err := f.uc.Create(testManagerID, testCompanyID, dto.CreateOrderRequest{
		ClientID:  f.client.ID,
		VehicleID: f.vehicle.ID,
		Problem:   "Barulho na suspensão",
		LaborCost: dec("100"),
		Discount:  dec("10"),
	})
	require.NoError(t, err)
	return out
}

// setStatus move a OS de status pelo caminho normal de atualização.
func (f *orderFixture) setStatus(t *testing.T, orderID, status string) *dto.OrderResponse {
	t.Helper()
	out, err := f.uc.Update(testManagerID, testCompanyID, orderID, dto.UpdateOrderRequest{Status: strPtr(status)})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Abertura
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderCreate_QuemAbriuAssumeOAtendimento(t *testing.T) {
	f := newOrderFixture(t)

	out := f.createOrder(t)

	assert.Equal(t, entity.OrderStatusAberta, out.Status)
	assert.Equal(t, int64(1), out.Number, "primeira OS recebe o número 1")
	assert.Equal(t, testManagerID, out.AssigneeID, "sem responsável informado, quem abriu assume")
	assert.Equal(t, f.client.Name, out.ClientName)
	assert.Equal(t, "ABC1D23", out.VehiclePlate)
	assert.True(t, out.Total.Equal(dec("90")), "total = 0 itens + 100 mão de obra - 10 desconto")

	assert.Equal(t, []string{entity.ActionCriar, entity.ActionAtribuir}, f.orders.logActions(out.ID),
		"abertura grava CRIAR e ATRIBUIR no histórico")
	assert.Equal(t, []string{usecase.EventOrderCreated}, f.events.types())
}

func TestOrderCreate_VeiculoDeOutroClienteFalha(t *testing.T) {
	f := newOrderFixture(t)
	outro := seedClient(f.clients, "Maria Souza")

	_, err := f.uc.Create(testManagerID, testCompanyID, dto.CreateOrderRequest{
		ClientID:  outro.ID,
		VehicleID: f.vehicle.ID, // veículo do João
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderCreate_ClienteDeOutraEmpresaNaoAparece(t *testing.T) {
	f := newOrderFixture(t)
	forasteiro := &entity.Client{ID: uuid.New().String(), CompanyID: "outra-empresa", Name: "ALHEIO"}
	require.NoError(t, f.clients.Create(forasteiro))

	_, err := f.uc.Create(testManagerID, testCompanyID, dto.CreateOrderRequest{
		ClientID:  forasteiro.ID,
		VehicleID: f.vehicle.ID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "cliente de outra empresa responde como inexistente")
}

func TestOrderCreate_MecanicoInativoFalha(t *testing.T) {
	f := newOrderFixture(t)
	mecanico := &entity.Employee{ID: uuid.New().String(), CompanyID: testCompanyID, Name: "Carlos", Active: false}
	require.NoError(t, f.employees.Create(mecanico))

	_, err := f.uc.Create(testManagerID, testCompanyID, dto.CreateOrderRequest{
		ClientID:   f.client.ID,
		VehicleID:  f.vehicle.ID,
		MechanicID: mecanico.ID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderCreate_ValoresNegativosFalham(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.uc.Create(testManagerID, testCompanyID, dto.CreateOrderRequest{
		ClientID:  f.client.ID,
		VehicleID: f.vehicle.ID,
		LaborCost: dec("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de status
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderUpdate_IniciarExecucaoMarcaInicio(t *testing.T) {
	f := newOrderFixture(t)
	os := f.createOrder(t)

	out := f.setStatus(t, os.ID, entity.OrderStatusExecucao)

	assert.Equal(t, entity.OrderStatusExecucao, out.Status)
	require.NotNil(t, out.StartedAt, "entrar em execução registra o início")
	assert.Contains(t, f.orders.logActions(os.ID), entity.ActionIniciar)
	assert.Contains(t, f.events.types(), usecase.EventOrderStatusChanged)
}

func TestOrderUpdate_RetomadaNaoRepeteInicio(t *testing.T) {
	f := newOrderFixture(t)
	os := f.createOrder(t)

	emExecucao := f.setStatus(t, os.ID, entity.OrderStatusExecucao)
	primeiroInicio := *emExecucao.StartedAt

	f.setStatus(t, os.ID, entity.OrderStatusAguardandoPeca)
	retomada := f.setStatus(t, os.ID, entity.OrderStatusExecucao)

	require.NotNil(t, retomada.StartedAt)
	assert.True(t, retomada.StartedAt.Equal(primeiroInicio), "retomar execução preserva o início original")

	actions := f.orders.logActions(os.ID)
	iniciar := 0
	for _, a := range actions {
		if a == entity.ActionIniciar {
			iniciar++
		}
	}
	assert.Equal(t, 1, iniciar, "INICIAR só aparece na primeira entrada em execução")
}

func TestOrderUpdate_FinalizarPreencheEncerramento(t *testing.T) {
	f := newOrderFixture(t)
	os := f.createOrder(t)
	f.setStatus(t, os.ID, entity.OrderStatusExecucao)

	out := f.setStatus(t, os.ID, entity.OrderStatusFinalizada)

	assert.Equal(t, entity.OrderStatusFinalizada, out.Status)
	require.NotNil(t, out.ClosedAt)
	assert.Equal(t, time.Now().Format(dto.DateLayout), out.DueOn,
		"finalizar sem previsão assume a data de hoje como entrega")
	assert.Contains(t, f.orders.logActions(os.ID), entity.ActionFinalizar)
	assert.Contains(t, f.events.types(), usecase.EventOrderFinished)

	stored := f.orders.orders[os.ID]
	assert.Equal(t, testManagerID, stored.ClosedByID)
}

func TestOrderUpdate_EstadoTerminalNaoSai(t *testing.T) {
	f := newOrderFixture(t)
	os := f.createOrder(t)
	f.setStatus(t, os.ID, entity.OrderStatusFinalizada)

	_, err := f.uc.Update(testManagerID, testCompanyID, os.ID, dto.UpdateOrderRequest{
		Status: strPtr(entity.OrderStatusExecucao),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatusChange)
}

func TestOrderUpdate_CancelarAntesDeFinalizar(t *testing.T) {
	f := newOrderFixture(t)
	os := f.createOrder(t)
	f.setStatus(t, os.ID, entity.OrderStatusAguardandoPeca)

	out := f.setStatus(t, os.ID, entity.OrderStatusCancelada)

	assert.Equal(t, entity.OrderStatusCancelada, out.Status)
	require.NotNil(t, out.ClosedAt, "cancelar também encerra a OS")
	assert.Contains(t, f.orders.logActions(os.ID), entity.ActionCancelar)
}

func TestOrderUpdate_CamposEditadosViramHistorico(t *testing.T) {
	f := newOrderFixture(t)
	os := f.createOrder(t)

	out, err := f.uc.Update(testManagerID, testCompanyID, os.ID, dto.UpdateOrderRequest{
		Diagnosis: strPtr("Amortecedor dianteiro vencido"),
		LaborCost: decPtr("150"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Amortecedor dianteiro vencido", out.Diagnosis)
	assert.True(t, out.Total.Equal(dec("140")), "total acompanha a nova mão de obra (150 - 10)")

	logs, err := f.orders.ListLogs(os.ID)
	require.NoError(t, err)
	last := logs[len(logs)-1]
	assert.Equal(t, entity.ActionEditar, last.Action)
	assert.Contains(t, last.Note, "diagnóstico")
	assert.Contains(t, last.Note, "mão de obra")
}

// ──────────────────────────────────────────────────────────────────────────────
// Itens e estoque
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderAddItem_ProdutoDeEstoqueBaixaSaldo(t *testing.T) {
	f := newOrderFixture(t)
	os := f.createOrder(t)
	produto := seedProduct(f.products, "Filtro de óleo", "25", decPtr("10"))

	out, err := f.uc.AddItem(context.Background(), testCompanyID, os.ID, dto.AddOrderItemRequest{
		ProductID: produto.ID,
		Quantity:  dec("3"),
	})
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	item := out.Items[0]
	assert.Equal(t, "Filtro de óleo", item.Description, "descrição vem do produto quando não informada")
	assert.True(t, item.UnitPrice.Equal(dec("25")), "preço vem do produto quando não informado")
	assert.True(t, item.Subtotal.Equal(dec("75")))
	assert.True(t, out.Total.Equal(dec("165")), "75 itens + 100 mão de obra - 10 desconto")

	depois, err := f.products.GetByID(produto.ID)
	require.NoError(t, err)
	assert.True(t, depois.Stock.Equal(dec("7")), "estoque baixa na mesma operação")
}

func TestOrderAddItem_EstoqueInsuficienteFalha(t *testing.T) {
	f := newOrderFixture(t)
	os := f.createOrder(t)
	produto := seedProduct(f.products, "Pastilha de freio", "80", decPtr("2"))

	_, err := f.uc.AddItem(context.Background(), testCompanyID, os.ID, dto.AddOrderItemRequest{
		ProductID: produto.ID,
		Quantity:  dec("3"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	depois, _ := f.products.GetByID(produto.ID)
	assert.True(t, depois.Stock.Equal(dec("2")), "falha não mexe no saldo")
}

func TestOrderAddItem_FracaoDeProdutoDeEstoqueFalha(t *testing.T) {
	f := newOrderFixture(t)
	os := f.createOrder(t)
	produto := seedProduct(f.products, "Correia dentada", "120", decPtr("5"))

	_, err := f.uc.AddItem(context.Background(), testCompanyID, os.ID, dto.AddOrderItemRequest{
		ProductID: produto.ID,
		Quantity:  dec("1.5"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "item de estoque não aceita quantidade fracionada")
}

func TestOrderAddItem_ProdutoSemControleAceitaFracao(t *testing.T) {
	f := newOrderFixture(t)
	os := f.createOrder(t)
	servico := seedProduct(f.products, "Óleo a granel (litro)", "40", nil)

	out, err := f.uc.AddItem(context.Background(), testCompanyID, os.ID, dto.AddOrderItemRequest{
		ProductID: servico.ID,
		Quantity:  dec("2.5"),
	})
	require.NoError(t, err)
	assert.True(t, out.Items[0].Subtotal.Equal(dec("100")))

	depois, _ := f.products.GetByID(servico.ID)
	assert.Nil(t, depois.Stock, "produto sem controle segue sem controle")
}

func TestOrderAddItem_LinhaLivreExigeDescricao(t *testing.T) {
	f := newOrderFixture(t)
	os := f.createOrder(t)

	_, err := f.uc.AddItem(context.Background(), testCompanyID, os.ID, dto.AddOrderItemRequest{
		Quantity:  dec("1"),
		UnitPrice: decPtr("50"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := f.uc.AddItem(context.Background(), testCompanyID, os.ID, dto.AddOrderItemRequest{
		Description: "Solda do escapamento",
		Quantity:    dec("1"),
		UnitPrice:   decPtr("50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Solda do escapamento", out.Items[0].Description)
	assert.Empty(t, out.Items[0].ProductID, "linha livre não vincula produto")
}

func TestOrderAddItem_OSFinalizadaRecusa(t *testing.T) {
	f := newOrderFixture(t)
	os := f.createOrder(t)
	f.setStatus(t, os.ID, entity.OrderStatusFinalizada)

	_, err := f.uc.AddItem(context.Background(), testCompanyID, os.ID, dto.AddOrderItemRequest{
		Description: "Tarde demais",
		Quantity:    dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestOrderRemoveItem_DevolveEstoque(t *testing.T) {
	f := newOrderFixture(t)
	os := f.createOrder(t)
	produto := seedProduct(f.products, "Vela de ignição", "30", decPtr("8"))

	out, err := f.uc.AddItem(context.Background(), testCompanyID, os.ID, dto.AddOrderItemRequest{
		ProductID: produto.ID,
		Quantity:  dec("4"),
	})
	require.NoError(t, err)

	out, err = f.uc.RemoveItem(context.Background(), testCompanyID, os.ID, out.Items[0].ID)
	require.NoError(t, err)

	assert.Empty(t, out.Items)
	assert.True(t, out.Total.Equal(dec("90")), "total volta ao valor sem itens")

	depois, _ := f.products.GetByID(produto.ID)
	assert.True(t, depois.Stock.Equal(dec("8")), "estorno devolve o saldo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Pagamentos
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderAddPayment_PagamentoParcialEDepoisCredito(t *testing.T) {
	f := newOrderFixture(t)
	os := f.createOrder(t) // total 90

	out, err := f.uc.AddPayment(testCompanyID, os.ID, dto.AddPaymentRequest{
		Method: entity.PaymentPix,
		Amount: dec("60"),
	})
	require.NoError(t, err)
	assert.True(t, out.PaidTotal.Equal(dec("60")))
	assert.True(t, out.Balance.Equal(dec("30")))

	// Pagar a mais é aceito e vira crédito (saldo negativo).
	out, err = f.uc.AddPayment(testCompanyID, os.ID, dto.AddPaymentRequest{
		Method: entity.PaymentDinheiro,
		Amount: dec("50"),
	})
	require.NoError(t, err)
	assert.True(t, out.Balance.Equal(dec("-20")), "pagamento a maior deixa o saldo negativo")
}

func TestOrderAddPayment_CanceladaNaoRecebe(t *testing.T) {
	f := newOrderFixture(t)
	os := f.createOrder(t)
	f.setStatus(t, os.ID, entity.OrderStatusCancelada)

	_, err := f.uc.AddPayment(testCompanyID, os.ID, dto.AddPaymentRequest{
		Method: entity.PaymentPix,
		Amount: dec("10"),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestOrderAddPayment_FinalizadaAindaRecebe(t *testing.T) {
	f := newOrderFixture(t)
	os := f.createOrder(t)
	f.setStatus(t, os.ID, entity.OrderStatusFinalizada)

	out, err := f.uc.AddPayment(testCompanyID, os.ID, dto.AddPaymentRequest{
		Method: entity.PaymentCredito,
		Amount: dec("90"),
	})
	require.NoError(t, err)
	assert.True(t, out.Balance.IsZero(), "cliente quita a OS depois de entregue")
}

func TestOrderAddPayment_MetodoDesconhecidoFalha(t *testing.T) {
	f := newOrderFixture(t)
	os := f.createOrder(t)

	_, err := f.uc.AddPayment(testCompanyID, os.ID, dto.AddPaymentRequest{
		Method: "VALE_PEIXE",
		Amount: dec("10"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderRemovePayment_EstornaLancamento(t *testing.T) {
	f := newOrderFixture(t)
	os := f.createOrder(t)

	out, err := f.uc.AddPayment(testCompanyID, os.ID, dto.AddPaymentRequest{
		Method: entity.PaymentPix,
		Amount: dec("90"),
	})
	require.NoError(t, err)
	require.Len(t, out.Payments, 1)

	out, err = f.uc.RemovePayment(testCompanyID, os.ID, out.Payments[0].ID)
	require.NoError(t, err)
	assert.Empty(t, out.Payments)
	assert.True(t, out.Balance.Equal(dec("90")), "estorno restaura o saldo devedor")
}

// ──────────────────────────────────────────────────────────────────────────────
// Listagem e PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderList_FiltraPorStatus(t *testing.T) {
	f := newOrderFixture(t)
	aberta := f.createOrder(t)
	finalizada := f.createOrder(t)
	f.setStatus(t, finalizada.ID, entity.OrderStatusFinalizada)

	out, err := f.uc.List(testCompanyID, entity.OrderStatusAberta, "", "", "", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, aberta.ID, out.Items[0].ID)

	_, err = f.uc.List(testCompanyID, "INEXISTENTE", "", "", "", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderList_IntervaloInvertidoFalha(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.uc.List(testCompanyID, "", "", "2025-06-30", "2025-06-01", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderGetPDF_NomeDoArquivoUsaONumero(t *testing.T) {
	f := newOrderFixture(t)
	os := f.createOrder(t)

	data, filename, err := f.uc.GetPDF(context.Background(), testCompanyID, os.ID)
	require.NoError(t, err)
	assert.Equal(t, "os-1.pdf", filename)
	assert.NotEmpty(t, data)
}

func TestOrderGet_DeOutraEmpresaNaoAparece(t *testing.T) {
	f := newOrderFixture(t)
	os := f.createOrder(t)

	_, err := f.uc.Get("outra-empresa", os.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
