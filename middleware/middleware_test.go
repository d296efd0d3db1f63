package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"demandcast/config"
	"demandcast/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, role string) string {
	t.Helper()

	claims := models.JwtClaims{
		UserID: "7",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.AppConfig.JWTSecret))
	require.NoError(t, err)
	return token
}

func protectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", JWTMiddleware, AdminRequired, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestJWTMiddlewareMissingHeader(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	app := protectedApp()

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestJWTMiddlewareMalformedHeader(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	app := protectedApp()

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestJWTMiddlewareAdminAccess(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	app := protectedApp()

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "admin"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestJWTMiddlewareRoleRejected(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	app := protectedApp()

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "customer"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}
