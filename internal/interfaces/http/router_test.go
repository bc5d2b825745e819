package http

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func registeredRoutes(t *testing.T) map[string]bool {
	t.Helper()
	app := fiber.New()
	Router(app, RouterDeps{JWTSecret: "secreto-de-prueba"})

	routes := make(map[string]bool)
	for _, r := range app.GetRoutes() {
		routes[r.Method+" "+r.Path] = true
	}
	return routes
}

// El rechazo revierte el estado del traslado: va como PUT, no como POST.
func TestRouter_RechazoEsPut(t *testing.T) {
	routes := registeredRoutes(t)

	assert.True(t, routes["PUT /api/transfers/:id/reject"])
	assert.False(t, routes["POST /api/transfers/:id/reject"])
}

func TestRouter_RutasPrincipales(t *testing.T) {
	routes := registeredRoutes(t)

	for _, r := range []string{
		"POST /api/auth/login",
		"GET /api/inventory/availability",
		"POST /api/inventory/receipts/",
		"POST /api/transfers/",
		"POST /api/transfers/:id/confirm",
		"DELETE /api/transfers/:id",
		"GET /api/transfers/transit",
		"GET /api/mismatches/",
		"POST /api/mismatches/:id/resolve",
	} {
		assert.True(t, routes[r], "falta la ruta %s", r)
	}
}
