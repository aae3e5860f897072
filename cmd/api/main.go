package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/novaflow-api/internal/application/audit"
	"github.com/jhoicas/novaflow-api/internal/application/auth"
	"github.com/jhoicas/novaflow-api/internal/application/company"
	"github.com/jhoicas/novaflow-api/internal/application/dashboard"
	"github.com/jhoicas/novaflow-api/internal/application/employees"
	"github.com/jhoicas/novaflow-api/internal/application/inventory"
	"github.com/jhoicas/novaflow-api/internal/application/orders"
	"github.com/jhoicas/novaflow-api/internal/application/worklogs"
	"github.com/jhoicas/novaflow-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/novaflow-api/internal/interfaces/http"
	"github.com/jhoicas/novaflow-api/pkg/config"
	"github.com/jhoicas/novaflow-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	personRepo := postgres.NewPersonRepository(pool)
	departmentRepo := postgres.NewDepartmentRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	worklogRepo := postgres.NewWorkLogRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	recorder := audit.NewRecorder(auditRepo, log)
	ledger := inventory.NewLedger(log)
	sessions := auth.NewSessionManager(time.Duration(cfg.Session.TimeoutSeconds) * time.Second)

	authUC := auth.NewUseCase(personRepo, sessions, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	employeeUC := employees.NewUseCase(personRepo, txRunner, recorder, log)
	companyUC := company.NewUseCase(departmentRepo, warehouseRepo, customerRepo, projectRepo, recorder, log)
	inventoryUC := inventory.NewUseCase(productRepo, stockRepo, recorder, log)
	orderUC := orders.NewUseCase(orderRepo, productRepo, customerRepo, txRunner, ledger, recorder, log)
	worklogUC := worklogs.NewUseCase(worklogRepo, projectRepo, recorder, log)
	dashboardUC := dashboard.NewUseCase(analyticsRepo, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "NovaFlow API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		EmployeeUC:  employeeUC,
		CompanyUC:   companyUC,
		InventoryUC: inventoryUC,
		OrderUC:     orderUC,
		WorkLogUC:   worklogUC,
		DashboardUC: dashboardUC,
		Audit:       recorder,
		Sessions:    sessions,
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

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
