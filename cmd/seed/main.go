// seed popula o banco com uma oficina de demonstração pronta para uso:
// gerente aprovado, atendente, mecânicos, clientes com veículos, produtos,
// agenda, OS com itens e pagamentos e despesas de caixa.
//
// Uso: go run ./cmd/seed (lê a mesma configuração da API)
// Idempotente: se o usuário demo.gerente já existe, não faz nada.
package main

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alpsistemas/oficina-api/internal/application/auth"
	"github.com/alpsistemas/oficina-api/internal/application/dto"
	"github.com/alpsistemas/oficina-api/internal/application/usecase"
	infracsv "github.com/alpsistemas/oficina-api/internal/infrastructure/csv"
	"github.com/alpsistemas/oficina-api/internal/infrastructure/events"
	"github.com/alpsistemas/oficina-api/internal/infrastructure/mail"
	infrapdf "github.com/alpsistemas/oficina-api/internal/infrastructure/pdf"
	"github.com/alpsistemas/oficina-api/internal/infrastructure/postgres"
	"github.com/alpsistemas/oficina-api/internal/infrastructure/storage"
	"github.com/alpsistemas/oficina-api/pkg/config"
	"github.com/alpsistemas/oficina-api/pkg/logger"
)

const (
	demoManagerUsername  = "demo.gerente"
	demoClerkUsername    = "demo.atendente"
	demoPassword         = "oficina-demo-123"
	demoCompanyName      = "Oficina Modelo"
	demoCompanyTaxID     = "11.444.777/0001-61"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	appointmentRepo := postgres.NewAppointmentRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewServiceOrderRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	existing, err := userRepo.GetByUsername(demoManagerUsername)
	if err != nil {
		log.Fatal().Err(err).Msg("consultar usuário demo")
	}
	if existing != nil {
		log.Info().Str("username", demoManagerUsername).Msg("oficina demo já existe, nada a fazer")
		return
	}

	// a carga de demonstração não dispara e-mail nem eventos
	mailer := mail.NewResendMailer(config.MailConfig{}, log)
	eventPub := events.NewNoop()
	logoStore := storage.NewLocalStore(cfg.Storage.MediaDir)

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, txRunner, mailer, log, auth.JWTConfig{
		Secret:   cfg.JWT.Secret,
		ExpHours: cfg.JWT.ExpirationHours,
		Issuer:   cfg.JWT.Issuer,
	})
	companyUC := usecase.NewCompanyUseCase(companyRepo, userRepo, mailer, logoStore, log)
	userUC := usecase.NewUserUseCase(userRepo, companyRepo, mailer, log)
	employeeUC := usecase.NewEmployeeUseCase(employeeRepo)
	clientUC := usecase.NewClientUseCase(clientRepo, vehicleRepo, orderRepo)
	vehicleUC := usecase.NewVehicleUseCase(vehicleRepo, clientRepo)
	agendaUC := usecase.NewAgendaUseCase(appointmentRepo, clientRepo, vehicleRepo, txRunner)
	productUC := usecase.NewProductUseCase(productRepo, infracsv.NewProductCodec())
	orderUC := usecase.NewOrderUseCase(usecase.OrderUseCaseParams{
		Repo:         orderRepo,
		ClientRepo:   clientRepo,
		VehicleRepo:  vehicleRepo,
		UserRepo:     userRepo,
		EmployeeRepo: employeeRepo,
		CompanyRepo:  companyRepo,
		Tx:           txRunner,
		Events:       eventPub,
		PDF:          infrapdf.NewMarotoPDFGenerator(),
		Logos:        logoStore,
		Log:          log,
	})
	cashUC := usecase.NewCashUseCase(analyticsRepo, expenseRepo)

	die := func(err error, msg string) {
		if err != nil {
			log.Fatal().Err(err).Msg(msg)
		}
	}

	// ── empresa aprovada ─────────────────────────────────────────────────

	signup, err := authUC.Signup(ctx, dto.SignupRequest{
		CompanyName:   demoCompanyName,
		TaxID:         demoCompanyTaxID,
		Phone:         "11 3333-0000",
		Plan:          "PLUS",
		PlanPeriod:    "12M",
		Name:          "Marcos Ferreira",
		Username:      demoManagerUsername,
		Password:      demoPassword,
	})
	die(err, "cadastrar oficina demo")
	companyID, managerID := signup.CompanyID, signup.UserID

	_, err = companyUC.AdminApprove(companyID)
	die(err, "aprovar oficina demo")

	_, err = userUC.Create(companyID, dto.CreateUserRequest{
		Name:     "Paula Andrade",
		Username: demoClerkUsername,
		Password: demoPassword,
		Role:     "atendente",
	})
	die(err, "criar atendente demo")

	// ── mecânicos ────────────────────────────────────────────────────────

	carlos, err := employeeUC.Create(companyID, dto.CreateEmployeeRequest{
		Name:    "Carlos Souza",
		Phone:   "11 97777-1111",
		HiredOn: strPtr("2024-03-01"),
	})
	die(err, "criar mecânico")
	rafael, err := employeeUC.Create(companyID, dto.CreateEmployeeRequest{
		Name:    "Rafael Lima",
		Phone:   "11 97777-2222",
		HiredOn: strPtr("2025-08-15"),
	})
	die(err, "criar mecânico")

	// ── clientes e veículos ──────────────────────────────────────────────

	joao, err := clientUC.Create(companyID, dto.CreateClientRequest{
		Name:     "João da Silva",
		Phone:    "11 98888-1111",
		Document: "529.982.247-25",
		City:     "São Paulo",
	})
	die(err, "criar cliente")
	maria, err := clientUC.Create(companyID, dto.CreateClientRequest{
		Name:  "Maria Souza",
		Phone: "11 98888-2222",
		City:  "Guarulhos",
	})
	die(err, "criar cliente")
	frota, err := clientUC.Create(companyID, dto.CreateClientRequest{
		Name:     "Transportes Andrade",
		Phone:    "11 3222-4444",
		Document: "11.222.333/0001-81",
		City:     "Osasco",
	})
	die(err, "criar cliente")

	uno, err := vehicleUC.Create(companyID, dto.CreateVehicleRequest{
		ClientID: joao.ID, Type: "CARRO", Plate: "ABC1D23",
		Brand: "Fiat", Model: "Uno Mille", Year: "2013", Color: "Prata", Mileage: 148000,
	})
	die(err, "criar veículo")
	_, err = vehicleUC.Create(companyID, dto.CreateVehicleRequest{
		ClientID: joao.ID, Type: "MOTO", Plate: "DEF4G56",
		Brand: "Honda", Model: "CG 160", Year: "2021", Color: "Vermelha", Mileage: 23000,
	})
	die(err, "criar veículo")
	gol, err := vehicleUC.Create(companyID, dto.CreateVehicleRequest{
		ClientID: maria.ID, Type: "CARRO", Plate: "XYZ9K88",
		Brand: "Volkswagen", Model: "Gol G5", Year: "2011", Color: "Preto", Mileage: 182000,
	})
	die(err, "criar veículo")
	caminhao, err := vehicleUC.Create(companyID, dto.CreateVehicleRequest{
		ClientID: frota.ID, Type: "CAMINHAO", Plate: "KLM3N45",
		Brand: "Mercedes-Benz", Model: "Accelo 815", Year: "2019", Color: "Branco", Mileage: 310000,
	})
	die(err, "criar veículo")

	// ── produtos ─────────────────────────────────────────────────────────

	oleo := seedProduct(log, productUC, companyID, "Óleo 5W30 sintético", "OL-5W30", "28.00", "49.90", "24", "8")
	filtro := seedProduct(log, productUC, companyID, "Filtro de óleo", "FO-100", "12.50", "25.90", "10", "4")
	seedProduct(log, productUC, companyID, "Filtro de ar", "FA-200", "19.00", "39.90", "6", "3")
	pastilha := seedProduct(log, productUC, companyID, "Pastilha de freio dianteira", "PF-300", "55.00", "98.00", "8", "4")
	// estoque abaixo do mínimo de propósito, para acender o painel
	seedProduct(log, productUC, companyID, "Correia dentada", "CD-400", "72.00", "129.90", "3", "4")
	seedProduct(log, productUC, companyID, "Lâmpada H4", "LH-500", "9.00", "19.90", "30", "10")

	alinhamento, err := productUC.Create(companyID, dto.CreateProductRequest{
		Name:  "Alinhamento e balanceamento",
		Code:  "SV-010",
		Price: dec("120.00"),
	})
	die(err, "criar serviço de tabela")

	// ── agenda ───────────────────────────────────────────────────────────

	_, err = agendaUC.Create(companyID, dto.CreateAppointmentRequest{
		ClientID:  joao.ID,
		VehicleID: uno.ID,
		Date:      time.Now().AddDate(0, 0, 1).Format(dto.DateLayout),
		Time:      "09:00",
		Type:      "ENTREGA",
		Notes:     "Entrega prevista após a revisão",
	})
	die(err, "criar compromisso")
	_, err = agendaUC.Create(companyID, dto.CreateAppointmentRequest{
		ClientID:  maria.ID,
		VehicleID: gol.ID,
		Date:      time.Now().AddDate(0, 0, 3).Format(dto.DateLayout),
		Time:      "14:30",
		Type:      "RETIRADA",
		Notes:     "Cliente busca o carro depois das 14h",
	})
	die(err, "criar compromisso")

	// ── OS fechada e paga ────────────────────────────────────────────────

	os1, err := orderUC.Create(managerID, companyID, dto.CreateOrderRequest{
		ClientID:   joao.ID,
		VehicleID:  uno.ID,
		MechanicID: carlos.ID,
		Problem:    "Barulho no motor e troca de óleo vencida",
		LaborCost:  dec("150.00"),
	})
	die(err, "abrir OS")
	_, err = orderUC.AddItem(ctx, companyID, os1.ID, dto.AddOrderItemRequest{
		ProductID: oleo.ID, Quantity: dec("4"),
	})
	die(err, "lançar item")
	_, err = orderUC.AddItem(ctx, companyID, os1.ID, dto.AddOrderItemRequest{
		ProductID: filtro.ID, Quantity: dec("1"),
	})
	die(err, "lançar item")
	_, err = orderUC.Update(managerID, companyID, os1.ID, dto.UpdateOrderRequest{
		Status:     strPtr("EXECUCAO"),
		StatusNote: "Peças separadas, serviço iniciado",
		Diagnosis:  strPtr("Óleo degradado e filtro saturado"),
	})
	die(err, "iniciar OS")
	done, err := orderUC.Update(managerID, companyID, os1.ID, dto.UpdateOrderRequest{
		Status:     strPtr("FINALIZADA"),
		StatusNote: "Revisão concluída e testada",
	})
	die(err, "finalizar OS")
	_, err = orderUC.AddPayment(companyID, os1.ID, dto.AddPaymentRequest{
		Method: "PIX",
		Amount: done.Total,
	})
	die(err, "registrar pagamento")

	// ── OS em execução com saldo devedor ─────────────────────────────────

	os2, err := orderUC.Create(managerID, companyID, dto.CreateOrderRequest{
		ClientID:   maria.ID,
		VehicleID:  gol.ID,
		MechanicID: rafael.ID,
		Problem:    "Freio rangendo em baixa velocidade",
		LaborCost:  dec("80.00"),
	})
	die(err, "abrir OS")
	_, err = orderUC.AddItem(ctx, companyID, os2.ID, dto.AddOrderItemRequest{
		ProductID: pastilha.ID, Quantity: dec("1"),
	})
	die(err, "lançar item")
	_, err = orderUC.AddItem(ctx, companyID, os2.ID, dto.AddOrderItemRequest{
		ProductID: alinhamento.ID, Quantity: dec("1"),
	})
	die(err, "lançar item")
	_, err = orderUC.Update(managerID, companyID, os2.ID, dto.UpdateOrderRequest{
		Status:     strPtr("EXECUCAO"),
		StatusNote: "Pastilhas em troca",
	})
	die(err, "iniciar OS")
	_, err = orderUC.AddPayment(companyID, os2.ID, dto.AddPaymentRequest{
		Method: "DINHEIRO",
		Amount: dec("100.00"),
	})
	die(err, "registrar sinal")

	// ── OS recém aberta para a frota ─────────────────────────────────────

	_, err = orderUC.Create(managerID, companyID, dto.CreateOrderRequest{
		ClientID:  frota.ID,
		VehicleID: caminhao.ID,
		Problem:   "Revisão periódica da frota",
		DueOn:     time.Now().AddDate(0, 0, 7).Format(dto.DateLayout),
	})
	die(err, "abrir OS")

	// ── despesas do caixa ────────────────────────────────────────────────

	now := time.Now()
	firstOfMonth := now.AddDate(0, 0, 1-now.Day()).Format(dto.DateLayout)
	_, err = cashUC.CreateExpense(companyID, dto.CreateExpenseRequest{
		Description: "Aluguel do galpão",
		Amount:      dec("1800.00"),
		SpentOn:     firstOfMonth,
	})
	die(err, "lançar despesa")
	_, err = cashUC.CreateExpense(companyID, dto.CreateExpenseRequest{
		Description: "Conta de energia",
		Amount:      dec("420.00"),
	})
	die(err, "lançar despesa")
	_, err = cashUC.CreateExpense(companyID, dto.CreateExpenseRequest{
		Description: "Estopa, luvas e material de limpeza",
		Amount:      dec("86.50"),
	})
	die(err, "lançar despesa")

	log.Info().
		Str("company", demoCompanyName).
		Str("gerente", demoManagerUsername).
		Str("atendente", demoClerkUsername).
		Str("senha", demoPassword).
		Msg("oficina demo criada")
}

// seedProduct cria um produto de estoque; falha derruba a carga.
func seedProduct(log *logger.Logger, uc *usecase.ProductUseCase, companyID, name, code, cost, price, stock, minStock string) *dto.ProductResponse {
	p, err := uc.Create(companyID, dto.CreateProductRequest{
		Name:     name,
		Code:     code,
		Cost:     decPtr(cost),
		Price:    dec(price),
		Stock:    decPtr(stock),
		MinStock: dec(minStock),
	})
	if err != nil {
		log.Fatal().Err(err).Str("name", name).Msg("criar produto")
	}
	return p
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func decPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func strPtr(s string) *string { return &s }
