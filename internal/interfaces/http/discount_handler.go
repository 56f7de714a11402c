package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dukapos/dukapos-api/internal/application/discounts"
	"github.com/dukapos/dukapos-api/internal/application/dto"
)

// DiscountHandler peticiones HTTP de códigos de descuento (protegido).
type DiscountHandler struct {
	uc *discounts.DiscountUseCase
}

// NewDiscountHandler construye el handler.
func NewDiscountHandler(uc *discounts.DiscountUseCase) *DiscountHandler {
	return &DiscountHandler{uc: uc}
}

// Create da de alta un código de descuento (solo gerencia).
// POST /api/discounts
func (h *DiscountHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDiscountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	discount, err := h.uc.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(discount)
}

// Validate consulta la vigencia de un código.
// GET /api/discounts/:code/validate
func (h *DiscountHandler) Validate(c *fiber.Ctx) error {
	discount, err := h.uc.Validate(c.Context(), GetActor(c), c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(discount)
}
