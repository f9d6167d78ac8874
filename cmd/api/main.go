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
	"github.com/jhoicas/Flota-api/internal/application/inventory"
	"github.com/jhoicas/Flota-api/internal/application/maintenance"
	"github.com/jhoicas/Flota-api/internal/application/payables"
	"github.com/jhoicas/Flota-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Flota-api/internal/interfaces/http"
	"github.com/jhoicas/Flota-api/pkg/config"
	"github.com/jhoicas/Flota-api/pkg/logger"
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

	orderRepo := postgres.NewMaintenanceOrderRepository(pool)
	timelineRepo := postgres.NewMaintenanceTimelineRepository(pool)
	workerRepo := postgres.NewMaintenanceWorkerRepository(pool)
	serviceRepo := postgres.NewMaintenanceServiceRepository(pool)
	materialRepo := postgres.NewMaintenanceMaterialRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	payableRepo := postgres.NewAccountPayableRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockLedgerUC := inventory.NewStockLedgerUseCase(txRunner, productRepo, warehouseRepo)
	stockQueryUC := inventory.NewStockQueryUseCase(stockRepo, movementRepo, warehouseRepo)
	payablesUC := payables.NewPayablesUseCase(payableRepo)
	dispatcher := payables.NewDispatcher()

	maintenanceUC := maintenance.NewOrderUseCase(
		txRunner,
		orderRepo, timelineRepo, workerRepo, serviceRepo, materialRepo,
		stockRepo, branchRepo, warehouseRepo, vehicleRepo, employeeRepo, productRepo,
		stockLedgerUC, dispatcher,
	)

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
		Title:    "Flota API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		MaintenanceUC: maintenanceUC,
		StockLedger:   stockLedgerUC,
		StockQuery:    stockQueryUC,
		PayablesUC:    payablesUC,
		JWTSecret:     cfg.JWT.Secret,
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
