package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dukapos/dukapos-api/internal/application/dto"
	"github.com/dukapos/dukapos-api/internal/application/loyalty"
)

// CustomerHandler peticiones HTTP de clientes y fidelización (protegido).
type CustomerHandler struct {
	uc *loyalty.LoyaltyUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *loyalty.LoyaltyUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create da de alta un cliente.
// POST /api/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.uc.CreateCustomer(c.Context(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// GetByID obtiene un cliente por ID.
// GET /api/customers/:id
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	customer, err := h.uc.GetCustomer(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(customer)
}

// FindByPhone busca un cliente por teléfono.
// GET /api/customers/by-phone/:phone
func (h *CustomerHandler) FindByPhone(c *fiber.Ctx) error {
	customer, err := h.uc.FindByPhone(c.Context(), GetActor(c), c.Params("phone"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(customer)
}

// AdjustPoints ajuste manual de puntos (solo gerencia).
// POST /api/customers/:id/points/adjust
func (h *CustomerHandler) AdjustPoints(c *fiber.Ctx) error {
	var in dto.AdjustPointsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	points, err := h.uc.AdjustPoints(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(points)
}

// RedeemPoints redime puntos del cliente.
// POST /api/customers/:id/points/redeem
func (h *CustomerHandler) RedeemPoints(c *fiber.Ctx) error {
	var in dto.RedeemPointsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	points, err := h.uc.RedeemPoints(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(points)
}

// ListTransactions historial de puntos del cliente.
// GET /api/customers/:id/points
func (h *CustomerHandler) ListTransactions(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	txs, err := h.uc.ListTransactions(c.Context(), GetActor(c), c.Params("id"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(txs)
}
