package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dukapos/dukapos-api/internal/application/dto"
	"github.com/dukapos/dukapos-api/internal/application/sales"
)

// SaleHandler peticiones HTTP del motor de ventas (protegido).
type SaleHandler struct {
	uc *sales.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create crea un borrador de venta.
// POST /api/sales
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sale, err := h.uc.CreateDraft(c.Context(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// GetByID obtiene una venta con sus líneas.
// GET /api/sales/:id
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.uc.GetSale(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(sale)
}

// Finalize completa la venta: inventario, puntos y totales de turno en una
// sola transacción. Idempotente sobre ventas ya completadas.
// POST /api/sales/:id/finalize
func (h *SaleHandler) Finalize(c *fiber.Ctx) error {
	sale, err := h.uc.Finalize(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(sale)
}

// Fiscal devuelve el recibo fiscal de una venta completada, generándolo en
// la primera consulta.
// GET /api/sales/:id/fiscal
func (h *SaleHandler) Fiscal(c *fiber.Ctx) error {
	receipt, err := h.uc.Fiscal(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(receipt)
}

// RecordPayment registra un pago contra la venta.
// POST /api/sales/:id/payments
func (h *SaleHandler) RecordPayment(c *fiber.Ctx) error {
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	payment, err := h.uc.RecordPayment(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

// ListPayments pagos registrados contra la venta.
// GET /api/sales/:id/payments
func (h *SaleHandler) ListPayments(c *fiber.Ctx) error {
	payments, err := h.uc.ListPayments(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(payments)
}
