package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-pro/internal/application/auth"
	"github.com/tu-usuario/almacen-pro/internal/application/inventory"
	"github.com/tu-usuario/almacen-pro/internal/application/mismatch"
	"github.com/tu-usuario/almacen-pro/internal/application/transfer"
	"github.com/tu-usuario/almacen-pro/internal/application/usecase"
	"github.com/tu-usuario/almacen-pro/internal/domain/access"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	InventoryUC *inventory.UseCase
	TransferUC  *transfer.UseCase
	MismatchUC  *mismatch.UseCase
	WarehouseUC *usecase.WarehouseUseCase
	ItemUC      *usecase.ItemUseCase
	SupplierUC  *usecase.SupplierUseCase
	ConsumerUC  *usecase.ConsumerUseCase
	UserUC      *usecase.UserUseCase
	SettingsUC  *usecase.SettingsUseCase
	AuditUC     *usecase.AuditUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. La operación de bodegas (recibos,
// traslados, discrepancias) exige nivel warehouseman; el catálogo y la
// administración exigen admin. El filtro fino por bodega lo aplican los casos
// de uso con el grant.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Inventario: disponibilidad (lectura para todos los niveles) y recibos
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inv := protected.Group("/inventory")
	inv.Get("/availability", inventoryHandler.Availability)
	receipts := inv.Group("/receipts", RequireLevel(access.LevelWarehouseman))
	receipts.Post("/", inventoryHandler.AddReceipt)
	receipts.Put("/:id", inventoryHandler.UpdateReceipt)
	receipts.Delete("/:id", inventoryHandler.DeleteReceipt)

	// Traslados
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers := protected.Group("/transfers")
	transfers.Get("/", transferHandler.List)
	transfers.Get("/transit", transferHandler.Transit)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Post("/", RequireLevel(access.LevelWarehouseman), transferHandler.Create)
	transfers.Post("/:id/confirm", RequireLevel(access.LevelWarehouseman), transferHandler.Confirm)
	transfers.Put("/:id/reject", RequireLevel(access.LevelWarehouseman), transferHandler.Reject)
	transfers.Delete("/:id", RequireLevel(access.LevelWarehouseman), transferHandler.Delete)

	// Discrepancias
	mismatchHandler := NewMismatchHandler(deps.MismatchUC)
	mismatches := protected.Group("/mismatches")
	mismatches.Get("/", mismatchHandler.ListOpen)
	mismatches.Get("/:id/resolution", mismatchHandler.GetResolution)
	mismatches.Post("/:id/resolve", RequireLevel(access.LevelWarehouseman), mismatchHandler.Resolve)

	// Catálogo (admin)
	adminOnly := RequireLevel(access.LevelAdmin)

	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Post("/", adminOnly, warehouseHandler.Create)
	warehouses.Put("/:id", adminOnly, warehouseHandler.Update)
	warehouses.Delete("/:id", adminOnly, warehouseHandler.Delete)

	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Post("/", adminOnly, itemHandler.Create)
	items.Put("/:id", adminOnly, itemHandler.Update)
	items.Delete("/:id", adminOnly, itemHandler.Delete)

	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/", adminOnly, supplierHandler.Create)
	suppliers.Put("/:id", adminOnly, supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)

	consumers := protected.Group("/consumers")
	consumerHandler := NewConsumerHandler(deps.ConsumerUC)
	consumers.Get("/", consumerHandler.List)
	consumers.Get("/:id", consumerHandler.GetByID)
	consumers.Post("/", adminOnly, consumerHandler.Create)
	consumers.Put("/:id", adminOnly, consumerHandler.Update)
	consumers.Delete("/:id", adminOnly, consumerHandler.Delete)

	// Usuarios, ajustes y log de operaciones (admin)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	settings := protected.Group("/settings", adminOnly)
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settings.Get("/", settingsHandler.All)
	settings.Get("/:key", settingsHandler.Get)
	settings.Put("/:key", settingsHandler.Set)

	auditHandler := NewAuditHandler(deps.AuditUC)
	protected.Get("/audit-logs", adminOnly, auditHandler.List)
}
