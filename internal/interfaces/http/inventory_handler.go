package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dukapos/dukapos-api/internal/application/dto"
	"github.com/dukapos/dukapos-api/internal/application/inventory"
)

// InventoryHandler peticiones HTTP de catálogo e inventario (protegido).
type InventoryHandler struct {
	uc *inventory.InventoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// CreateProduct da de alta un producto.
// POST /api/products
func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	product, err := h.uc.CreateProduct(c.Context(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// GetProduct obtiene un producto por ID.
// GET /api/products/:id
func (h *InventoryHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.uc.GetProduct(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(product)
}

// ListProducts lista el catálogo de la sucursal.
// GET /api/products
func (h *InventoryHandler) ListProducts(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	products, err := h.uc.ListProducts(c.Context(), GetActor(c), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(products)
}

// ListLowStock productos en o por debajo del punto de reorden.
// GET /api/products/low-stock
func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	products, err := h.uc.ListLowStock(c.Context(), GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(products)
}

// AdjustStock ajuste manual de inventario (solo gerencia).
// POST /api/inventory/adjustments
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movement, err := h.uc.AdjustStock(c.Context(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(movement)
}

// ListMovements historial de auditoría de un producto.
// GET /api/products/:id/movements
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	movements, err := h.uc.ListMovements(c.Context(), GetActor(c), c.Params("id"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(movements)
}
