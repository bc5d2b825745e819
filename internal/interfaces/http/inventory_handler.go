package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/application/inventory"
	"github.com/tu-usuario/almacen-pro/internal/domain/repository"
)

// InventoryHandler maneja disponibilidad y recibos de mercadería (protegido).
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Availability godoc
// @Summary      Disponibilidad por lote en orden FEFO con tier de frescura
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Param        item_id       query  string  false  "Filtrar por artículo"
// @Success      200  {array}   dto.AvailabilityRow
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventory/availability [get]
func (h *InventoryHandler) Availability(c *fiber.Ctx) error {
	filter := repository.BatchFilter{
		WarehouseID: c.Query("warehouse_id"),
		ItemID:      c.Query("item_id"),
	}
	rows, err := h.uc.Availability(GetGrant(c), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(rows), "items": rows})
}

// AddReceipt godoc
// @Summary      Registrar un recibo de mercadería (entrada de stock)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddReceiptRequest  true  "bodega, artículo, proveedor, vencimiento, cantidad"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/inventory/receipts [post]
func (h *InventoryHandler) AddReceipt(c *fiber.Ctx) error {
	var in dto.AddReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.AddReceipt(c.Context(), GetGrant(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdateReceipt corrige un recibo aún no usado en traslados.
func (h *InventoryHandler) UpdateReceipt(c *fiber.Ctx) error {
	var in dto.UpdateReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.UpdateReceipt(c.Context(), GetGrant(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// DeleteReceipt elimina un recibo aún no usado en traslados.
func (h *InventoryHandler) DeleteReceipt(c *fiber.Ctx) error {
	if err := h.uc.DeleteReceipt(c.Context(), GetGrant(c), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
