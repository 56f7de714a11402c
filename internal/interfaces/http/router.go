package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dukapos/dukapos-api/internal/application/auth"
	"github.com/dukapos/dukapos-api/internal/application/discounts"
	"github.com/dukapos/dukapos-api/internal/application/inventory"
	"github.com/dukapos/dukapos-api/internal/application/loyalty"
	"github.com/dukapos/dukapos-api/internal/application/sales"
	"github.com/dukapos/dukapos-api/internal/application/shifts"
	"github.com/dukapos/dukapos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	SaleUC      *sales.SaleUseCase
	InventoryUC *inventory.InventoryUseCase
	LoyaltyUC   *loyalty.LoyaltyUseCase
	ShiftUC     *shifts.ShiftUseCase
	DiscountUC  *discounts.DiscountUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	gerencia := RequireRole(entity.RoleAdmin, entity.RoleManager)

	// Catálogo e inventario
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	products := protected.Group("/products")
	products.Post("/", inventoryHandler.CreateProduct)
	products.Get("/", inventoryHandler.ListProducts)
	products.Get("/low-stock", inventoryHandler.ListLowStock)
	products.Get("/:id", inventoryHandler.GetProduct)
	products.Get("/:id/movements", inventoryHandler.ListMovements)
	protected.Post("/inventory/adjustments", gerencia, inventoryHandler.AdjustStock)

	// Ventas
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup := protected.Group("/sales")
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/:id/finalize", saleHandler.Finalize)
	salesGroup.Get("/:id/fiscal", saleHandler.Fiscal)
	salesGroup.Post("/:id/payments", saleHandler.RecordPayment)
	salesGroup.Get("/:id/payments", saleHandler.ListPayments)

	// Clientes y fidelización
	customerHandler := NewCustomerHandler(deps.LoyaltyUC)
	customers := protected.Group("/customers")
	customers.Post("/", customerHandler.Create)
	customers.Get("/by-phone/:phone", customerHandler.FindByPhone)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Get("/:id/points", customerHandler.ListTransactions)
	customers.Post("/:id/points/adjust", gerencia, customerHandler.AdjustPoints)
	customers.Post("/:id/points/redeem", customerHandler.RedeemPoints)

	// Turnos de caja
	shiftHandler := NewShiftHandler(deps.ShiftUC)
	shiftsGroup := protected.Group("/shifts")
	shiftsGroup.Post("/", shiftHandler.Open)
	shiftsGroup.Get("/current", shiftHandler.Current)
	shiftsGroup.Get("/:id", shiftHandler.GetByID)
	shiftsGroup.Post("/:id/close", shiftHandler.Close)

	// Códigos de descuento
	discountHandler := NewDiscountHandler(deps.DiscountUC)
	discountsGroup := protected.Group("/discounts")
	discountsGroup.Post("/", gerencia, discountHandler.Create)
	discountsGroup.Get("/:code/validate", discountHandler.Validate)
}
