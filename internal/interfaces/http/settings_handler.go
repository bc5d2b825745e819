package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/application/usecase"
)

// SettingsHandler ajustes del sistema (protegido, admin).
type SettingsHandler struct {
	uc *usecase.SettingsUseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// setSettingRequest cuerpo para escribir un ajuste.
type setSettingRequest struct {
	Value string `json:"value"`
}

// All devuelve todos los ajustes.
func (h *SettingsHandler) All(c *fiber.Ctx) error {
	settings, err := h.uc.All()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(settings)
}

// Get devuelve un ajuste por clave.
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	value, err := h.uc.Get(c.Params("key"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"key": c.Params("key"), "value": value})
}

// Set escribe un ajuste.
func (h *SettingsHandler) Set(c *fiber.Ctx) error {
	var in setSettingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Set(c.Params("key"), in.Value); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"key": c.Params("key"), "value": in.Value})
}
