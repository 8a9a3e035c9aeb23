package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/alpsistemas/oficina-api/internal/application/analytics"
	"github.com/alpsistemas/oficina-api/internal/application/auth"
	"github.com/alpsistemas/oficina-api/internal/application/usecase"
	infracsv "github.com/alpsistemas/oficina-api/internal/infrastructure/csv"
	"github.com/alpsistemas/oficina-api/internal/infrastructure/events"
	"github.com/alpsistemas/oficina-api/internal/infrastructure/mail"
	infrapdf "github.com/alpsistemas/oficina-api/internal/infrastructure/pdf"
	"github.com/alpsistemas/oficina-api/internal/infrastructure/postgres"
	"github.com/alpsistemas/oficina-api/internal/infrastructure/storage"
	httpRouter "github.com/alpsistemas/oficina-api/internal/interfaces/http"
	"github.com/alpsistemas/oficina-api/pkg/config"
	"github.com/alpsistemas/oficina-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

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

	mailer := mail.NewResendMailer(cfg.Mail, log)

	// Sem broker configurado os eventos viram no-op; broker fora do ar não
	// derruba a API.
	var eventPub usecase.EventPublisher = events.NewNoop()
	if cfg.AMQP.URL != "" {
		pub, err := events.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, log)
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ indisponível, eventos desativados")
		} else {
			defer pub.Close()
			eventPub = pub
		}
	}

	var logoStore usecase.LogoStore
	if cfg.Storage.S3Bucket != "" {
		s3Store, err := storage.NewS3Store(cfg.Storage.S3Bucket, cfg.Storage.AWSRegion)
		if err != nil {
			log.Fatal().Err(err).Msg("sessão AWS para o bucket de logos")
		}
		logoStore = s3Store
	} else {
		logoStore = storage.NewLocalStore(cfg.Storage.MediaDir)
	}

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
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)
	reportUC := appanalytics.NewReportUseCase(analyticsRepo)
	supportUC := usecase.NewSupportUseCase(mailer)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(fiberlogger.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ALP Oficinas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CompanyUC:   companyUC,
		UserUC:      userUC,
		EmployeeUC:  employeeUC,
		ClientUC:    clientUC,
		VehicleUC:   vehicleUC,
		AgendaUC:    agendaUC,
		ProductUC:   productUC,
		OrderUC:     orderUC,
		CashUC:      cashUC,
		DashboardUC: dashboardUC,
		ReportUC:    reportUC,
		SupportUC:   supportUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação parada")
}
