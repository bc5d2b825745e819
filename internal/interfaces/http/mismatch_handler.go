package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/application/mismatch"
)

// MismatchHandler maneja las peticiones HTTP de discrepancias (protegido).
type MismatchHandler struct {
	uc *mismatch.UseCase
}

// NewMismatchHandler construye el handler.
func NewMismatchHandler(uc *mismatch.UseCase) *MismatchHandler {
	return &MismatchHandler{uc: uc}
}

// ListOpen godoc
// @Summary      Discrepancias abiertas (confirmados con faltante sin resolver)
// @Tags         mismatches
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MismatchCaseResponse
// @Router       /api/mismatches [get]
func (h *MismatchHandler) ListOpen(c *fiber.Ctx) error {
	cases, err := h.uc.ListOpenCases()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(cases), "items": cases})
}

// Resolve godoc
// @Summary      Resolver una discrepancia (delete, return_source, add_destination)
// @Tags         mismatches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del traslado con faltante"
// @Param        body  body  dto.ResolveMismatchRequest  true  "acción y notas (obligatorias)"
// @Success      201   {object}  dto.ResolutionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/mismatches/{id}/resolve [post]
func (h *MismatchHandler) Resolve(c *fiber.Ctx) error {
	var in dto.ResolveMismatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Resolve(c.Context(), GetGrant(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetResolution devuelve la resolución registrada de un traslado.
func (h *MismatchHandler) GetResolution(c *fiber.Ctx) error {
	resp, err := h.uc.GetResolution(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
