package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fixmate/repair-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func testApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.Config{JWTSecret: testSecret}
	app := fiber.New()

	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	app.Get("/protected", JWTProtected(cfg), ok)
	app.Get("/admin-only", JWTProtected(cfg), AdminRequired(), ok)
	app.Get("/repairs", JWTProtectedUnless(cfg, func(c *fiber.Ctx) bool {
		return c.Query("tg_id") != ""
	}), ok)
	return app
}

func signToken(t *testing.T, isAdmin bool, ttl time.Duration) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":      "3f0e8a1a-9c57-4a7e-a2af-0a7e9c2b4d10",
		"email":    "user@example.com",
		"is_admin": isAdmin,
		"exp":      time.Now().Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func request(t *testing.T, app *fiber.App, path, token string) int {
	t.Helper()

	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestJWTProtected(t *testing.T) {
	app := testApp(t)

	if code := request(t, app, "/protected", ""); code != fiber.StatusUnauthorized {
		t.Fatalf("no token: %d, want 401", code)
	}
	if code := request(t, app, "/protected", "not-a-token"); code != fiber.StatusUnauthorized {
		t.Fatalf("garbage token: %d, want 401", code)
	}
	if code := request(t, app, "/protected", signToken(t, false, -time.Minute)); code != fiber.StatusUnauthorized {
		t.Fatalf("expired token: %d, want 401", code)
	}
	if code := request(t, app, "/protected", signToken(t, false, time.Hour)); code != fiber.StatusOK {
		t.Fatalf("valid token: %d, want 200", code)
	}
}

func TestAdminRequired(t *testing.T) {
	app := testApp(t)

	// 401 before 403: no identity at all.
	if code := request(t, app, "/admin-only", ""); code != fiber.StatusUnauthorized {
		t.Fatalf("no token: %d, want 401", code)
	}
	// Valid token, is_admin false: rejected before any handler runs.
	if code := request(t, app, "/admin-only", signToken(t, false, time.Hour)); code != fiber.StatusForbidden {
		t.Fatalf("non-admin: %d, want 403", code)
	}
	if code := request(t, app, "/admin-only", signToken(t, true, time.Hour)); code != fiber.StatusOK {
		t.Fatalf("admin: %d, want 200", code)
	}
}

func TestJWTProtectedUnlessSkipsTelegramLookup(t *testing.T) {
	app := testApp(t)

	if code := request(t, app, "/repairs", ""); code != fiber.StatusUnauthorized {
		t.Fatalf("no token, no tg_id: %d, want 401", code)
	}
	if code := request(t, app, "/repairs?tg_id=42", ""); code != fiber.StatusOK {
		t.Fatalf("tg_id lookup: %d, want 200 without a token", code)
	}
}
