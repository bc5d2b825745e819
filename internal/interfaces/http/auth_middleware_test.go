package http

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-pro/internal/domain/access"
	"github.com/tu-usuario/almacen-pro/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

func buildTestApp() *fiber.App {
	app := fiber.New()
	protected := app.Group("/api", AuthMiddleware(testSecret))
	protected.Get("/abierta", func(c *fiber.Ctx) error {
		g := GetGrant(c)
		return c.JSON(fiber.Map{"user_id": GetUserID(c), "level": string(g.Level), "warehouses": g.WarehouseIDs})
	})
	protected.Get("/solo-admin", RequireLevel(access.LevelAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func tokenFor(t *testing.T, level string, warehouses []string) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, "user-1", level, warehouses, "almacen-pro", 15)
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware_SinTokenEs401(t *testing.T) {
	app := buildTestApp()
	req := httptest.NewRequest("GET", "/api/abierta", nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenMalFormadoEs401(t *testing.T) {
	app := buildTestApp()
	req := httptest.NewRequest("GET", "/api/abierta", nil)
	req.Header.Set("Authorization", "Token abc")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FirmaIncorrectaEs401(t *testing.T) {
	app := buildTestApp()
	otro, err := jwt.Generate("otro-secreto", "user-1", "admin", nil, "almacen-pro", 15)
	require.NoError(t, err)
	req := httptest.NewRequest("GET", "/api/abierta", nil)
	req.Header.Set("Authorization", "Bearer "+otro)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenValidoPasa(t *testing.T) {
	app := buildTestApp()
	req := httptest.NewRequest("GET", "/api/abierta", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "warehouseman", []string{"wh-2"}))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_NivelDesconocidoEs401(t *testing.T) {
	app := buildTestApp()
	req := httptest.NewRequest("GET", "/api/abierta", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "root", nil))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireLevel_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp()
	req := httptest.NewRequest("GET", "/api/solo-admin", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "admin", nil))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireLevel_SuperadminTambienAccede(t *testing.T) {
	app := buildTestApp()
	req := httptest.NewRequest("GET", "/api/solo-admin", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "superadmin", nil))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireLevel_NivelInsuficienteEs403(t *testing.T) {
	app := buildTestApp()
	for _, level := range []string{"viewer", "warehouseman"} {
		req := httptest.NewRequest("GET", "/api/solo-admin", nil)
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, level, nil))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode, "nivel %s no debe acceder", level)
	}
}
