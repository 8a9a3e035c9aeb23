package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/alpsistemas/oficina-api/internal/application/analytics"
	"github.com/alpsistemas/oficina-api/internal/application/auth"
	"github.com/alpsistemas/oficina-api/internal/application/usecase"
	"github.com/alpsistemas/oficina-api/internal/domain/entity"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CompanyUC   *usecase.CompanyUseCase
	UserUC      *usecase.UserUseCase
	EmployeeUC  *usecase.EmployeeUseCase
	ClientUC    *usecase.ClientUseCase
	VehicleUC   *usecase.VehicleUseCase
	AgendaUC    *usecase.AgendaUseCase
	ProductUC   *usecase.ProductUseCase
	OrderUC     *usecase.OrderUseCase
	CashUC      *usecase.CashUseCase
	DashboardUC *appanalytics.DashboardUseCase
	ReportUC    *appanalytics.ReportUseCase
	SupportUC   *usecase.SupportUseCase
	JWTSecret   string
}

// Router registra as rotas da API.
//
// Camadas de proteção, de fora para dentro:
//  1. AuthMiddleware: token JWT válido.
//  2. RequireRole: admin ou gerente onde a rota exige.
//  3. CompanyGate: empresa ativa, paga e com plano vigente (admin passa).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	requireManager := RequireRole(entity.RoleGerente)

	// ── público ──────────────────────────────────────────────────────

	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/recover", authHandler.Recover)
	authGroup.Post("/reset", authHandler.Reset)

	supportHandler := NewSupportHandler(deps.SupportUC)
	api.Post("/support/contact", supportHandler.Contact)

	// ── autenticado (sem gate: vale também para o admin) ─────────────

	authed := api.Group("/", AuthMiddleware(deps.JWTSecret))
	authed.Get("/auth/me", authHandler.Me)
	authed.Post("/auth/password", authHandler.ChangePassword)

	// Administração da plataforma.
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	admin := authed.Group("/admin", RequireRole(entity.RoleAdmin))
	admin.Get("/companies", companyHandler.AdminList)
	admin.Post("/companies/:id/approve", companyHandler.AdminApprove)
	admin.Post("/companies/:id/renew", companyHandler.AdminRenew)
	admin.Post("/companies/:id/deactivate", companyHandler.AdminDeactivate)
	admin.Post("/companies/:id/activate", companyHandler.AdminActivate)

	// ── escopo da oficina (empresa ativa, paga e vigente) ────────────

	gated := authed.Group("/", CompanyGate(deps.CompanyUC))

	company := gated.Group("/company", requireManager)
	company.Get("/", companyHandler.Get)
	company.Put("/", companyHandler.Update)
	company.Put("/logo", companyHandler.UploadLogo)
	company.Post("/renewal", companyHandler.RequestRenewal)

	userHandler := NewUserHandler(deps.UserUC)
	users := gated.Group("/users", requireManager)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Post("/:id/deactivate", userHandler.Deactivate)
	users.Post("/:id/activate", userHandler.Activate)

	// Funcionários: listagem aberta à equipe, escrita só para gerentes.
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees := gated.Group("/employees")
	employees.Get("/", employeeHandler.List)
	employees.Post("/", requireManager, employeeHandler.Create)
	employees.Put("/:id", requireManager, employeeHandler.Update)
	employees.Post("/:id/deactivate", requireManager, employeeHandler.Deactivate)
	employees.Post("/:id/activate", requireManager, employeeHandler.Activate)

	clientHandler := NewClientHandler(deps.ClientUC)
	clients := gated.Group("/clients")
	clients.Get("/", clientHandler.Search)
	clients.Post("/", clientHandler.Create)
	clients.Get("/:id", clientHandler.Get)
	clients.Put("/:id", clientHandler.Update)

	vehicleHandler := NewVehicleHandler(deps.VehicleUC)
	vehicles := gated.Group("/vehicles")
	vehicles.Get("/", vehicleHandler.Search)
	vehicles.Post("/", vehicleHandler.Create)
	vehicles.Put("/:id", vehicleHandler.Update)

	agendaHandler := NewAgendaHandler(deps.AgendaUC)
	appointments := gated.Group("/appointments")
	appointments.Get("/", agendaHandler.List)
	appointments.Post("/", agendaHandler.Create)
	appointments.Post("/quick", agendaHandler.QuickCreate)
	appointments.Patch("/:id", agendaHandler.Update)
	appointments.Delete("/:id", agendaHandler.Delete)

	// /import e /export antes de /:id para não serem capturados como id.
	productHandler := NewProductHandler(deps.ProductUC)
	products := gated.Group("/products")
	products.Get("/", productHandler.Search)
	products.Post("/", productHandler.Create)
	products.Post("/import", productHandler.Import)
	products.Get("/export", productHandler.Export)
	products.Get("/:id", productHandler.Get)
	products.Put("/:id", productHandler.Update)

	orderHandler := NewOrderHandler(deps.OrderUC)
	orders := gated.Group("/orders")
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.Get)
	orders.Put("/:id", orderHandler.Update)
	orders.Get("/:id/pdf", orderHandler.GetPDF)
	orders.Post("/:id/items", orderHandler.AddItem)
	orders.Delete("/:id/items/:itemID", requireManager, orderHandler.RemoveItem)
	orders.Post("/:id/payments", orderHandler.AddPayment)
	orders.Delete("/:id/payments/:paymentID", requireManager, orderHandler.RemovePayment)

	cashHandler := NewCashHandler(deps.CashUC)
	cash := gated.Group("/cash")
	cash.Get("/", cashHandler.Summary)
	cash.Get("/charts", cashHandler.Charts)
	cash.Post("/expenses", cashHandler.CreateExpense)
	cash.Put("/expenses/:id", requireManager, cashHandler.UpdateExpense)
	cash.Delete("/expenses/:id", requireManager, cashHandler.DeleteExpense)

	reportHandler := NewReportHandler(deps.ReportUC)
	gated.Get("/reports", reportHandler.Get)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard := gated.Group("/dashboard")
	dashboard.Get("/", dashboardHandler.Summary)
	dashboard.Get("/data", dashboardHandler.Data)
}
