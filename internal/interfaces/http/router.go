package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Flota-api/internal/application/inventory"
	"github.com/jhoicas/Flota-api/internal/application/maintenance"
	"github.com/jhoicas/Flota-api/internal/application/payables"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MaintenanceUC *maintenance.OrderUseCase
	StockLedger   *inventory.StockLedgerUseCase
	StockQuery    *inventory.StockQueryUseCase
	PayablesUC    *payables.PayablesUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Órdenes de mantenimiento (protegido)
	orders := protected.Group("/maintenance/orders")
	maintenanceHandler := NewMaintenanceHandler(deps.MaintenanceUC)
	orders.Post("/", maintenanceHandler.Create)
	orders.Get("/", maintenanceHandler.List)
	orders.Get("/:id", maintenanceHandler.GetByID)
	orders.Put("/:id", maintenanceHandler.Update)
	orders.Delete("/:id", RequireRole("admin", "supervisor"), maintenanceHandler.Remove)
	orders.Post("/:id/start", maintenanceHandler.Start)
	orders.Post("/:id/pause", maintenanceHandler.Pause)
	orders.Post("/:id/complete", maintenanceHandler.Complete)
	orders.Post("/:id/cancel", maintenanceHandler.Cancel)

	// Inventario (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.StockLedger, deps.StockQuery)
	invGroup.Post("/entries", inventoryHandler.ReceiveEntry)
	invGroup.Get("/stock", inventoryHandler.GetStock)
	orders.Get("/:id/movements", inventoryHandler.GetMovementsByOrder)

	// Cuentas por pagar (protegido)
	payablesHandler := NewPayablesHandler(deps.PayablesUC)
	protected.Get("/payables", payablesHandler.List)
	orders.Get("/:id/payables", payablesHandler.ListByOrder)
}
