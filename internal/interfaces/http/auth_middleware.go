package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-pro/internal/application/dto"
	"github.com/tu-usuario/almacen-pro/internal/domain/access"
	"github.com/tu-usuario/almacen-pro/pkg/jwt"
)

// Locals keys para el usuario autenticado en Fiber.
const (
	LocalUserID      = "user_id"
	LocalAccessLevel = "access_level"
	LocalWarehouses  = "warehouses"
)

// AuthMiddleware valida el Bearer Token JWT y extrae usuario, nivel de acceso
// y bodegas otorgadas a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		level, err := access.ParseLevel(claims.AccessLevel)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "nivel de acceso desconocido"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalAccessLevel, level)
		c.Locals(LocalWarehouses, claims.Warehouses)
		return c.Next()
	}
}

// RequireLevel devuelve un middleware que exige un nivel mínimo de acceso.
// Debe usarse DESPUÉS de AuthMiddleware. El orden es
// viewer < warehouseman < admin < superadmin.
func RequireLevel(min access.Level) fiber.Handler {
	rank := map[access.Level]int{
		access.LevelViewer:       0,
		access.LevelWarehouseman: 1,
		access.LevelAdmin:        2,
		access.LevelSuperadmin:   3,
	}
	return func(c *fiber.Ctx) error {
		grant := GetGrant(c)
		if rank[grant.Level] < rank[min] {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "se requiere nivel " + string(min) + " o superior",
			})
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetGrant arma el grant de autorización desde el contexto.
func GetGrant(c *fiber.Ctx) access.Grant {
	grant := access.Grant{}
	if v, ok := c.Locals(LocalAccessLevel).(access.Level); ok {
		grant.Level = v
	}
	if v, ok := c.Locals(LocalWarehouses).([]string); ok {
		grant.WarehouseIDs = v
	}
	return grant
}
