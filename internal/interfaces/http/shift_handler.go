package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dukapos/dukapos-api/internal/application/dto"
	"github.com/dukapos/dukapos-api/internal/application/shifts"
)

// ShiftHandler peticiones HTTP de turnos de caja (protegido).
type ShiftHandler struct {
	uc *shifts.ShiftUseCase
}

// NewShiftHandler construye el handler.
func NewShiftHandler(uc *shifts.ShiftUseCase) *ShiftHandler {
	return &ShiftHandler{uc: uc}
}

// Open abre un turno para el cajero autenticado.
// POST /api/shifts
func (h *ShiftHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenShiftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	shift, err := h.uc.Open(c.Context(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(shift)
}

// Current turno abierto del cajero autenticado.
// GET /api/shifts/current
func (h *ShiftHandler) Current(c *fiber.Ctx) error {
	shift, err := h.uc.Current(c.Context(), GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(shift)
}

// GetByID obtiene un turno por ID.
// GET /api/shifts/:id
func (h *ShiftHandler) GetByID(c *fiber.Ctx) error {
	shift, err := h.uc.Get(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(shift)
}

// Close cierra el turno con el conteo de efectivo y devuelve el cuadre.
// POST /api/shifts/:id/close
func (h *ShiftHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseShiftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	shift, err := h.uc.Close(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(shift)
}
