package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Vitrine-api/internal/application/usecase"
	"github.com/jhoicas/Vitrine-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Vitrine-api/internal/interfaces/http"
	"github.com/jhoicas/Vitrine-api/internal/testutil/memstore"
	pkgjwt "github.com/jhoicas/Vitrine-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "vitrine-api-test"
	testExpMin    = 60
)

// guardedApp reproduce la cadena de middlewares del router sobre dos rutas:
//   - PUT /api/profile: vendedor autenticado con cuenta activa
//   - GET /api/admin/ping: solo admin
func guardedApp(s *memstore.Store) *fiber.App {
	app := fiber.New()
	requireAuth := apphttp.AuthMiddleware(testJWTSecret)
	requireActive := apphttp.RequireActiveAccount(usecase.NewUserUseCase(s.Users()))

	whoami := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c), "role": apphttp.GetRole(c)})
	}
	app.Put("/api/profile", requireAuth, requireActive, whoami)
	app.Get("/api/admin/ping", requireAuth, apphttp.RequireRole(entity.RoleAdmin), whoami)
	return app
}

// call lanza la petición y devuelve status y cuerpo.
func call(t *testing.T, app *fiber.App, method, path, authHeader string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func rawToken(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return tok
}

// ──────────────────────────────────────────────────────────────────────────────
// Vendedor y cuenta activa
// ──────────────────────────────────────────────────────────────────────────────

func TestCuentaActiva_VendedorPasaConSusClaims(t *testing.T) {
	s := memstore.New()
	seller := s.SeedUser(entity.User{})

	status, body := call(t, guardedApp(s), http.MethodPut, "/api/profile", bearer(t, seller))
	require.Equal(t, http.StatusOK, status, body)

	var claims map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &claims))
	assert.Equal(t, seller.ID, claims["user_id"])
	assert.Equal(t, entity.RoleSeller, claims["role"])
}

func TestCuentaActiva_EstadosNoActivosSon403(t *testing.T) {
	for _, st := range []string{entity.UserStatusSuspended, entity.UserStatusInactive} {
		t.Run(st, func(t *testing.T) {
			s := memstore.New()
			seller := s.SeedUser(entity.User{Status: st})

			status, body := call(t, guardedApp(s), http.MethodPut, "/api/profile", bearer(t, seller))
			assert.Equal(t, http.StatusForbidden, status)
			assert.Contains(t, body, "ACCOUNT_DISABLED")
		})
	}
}

// Token válido de una cuenta que ya no existe.
func TestCuentaActiva_UsuarioEliminadoEs403(t *testing.T) {
	s := memstore.New()
	tok := rawToken(t, "00000000-0000-0000-0000-0000000000ff", entity.RoleSeller)

	status, body := call(t, guardedApp(s), http.MethodPut, "/api/profile", "Bearer "+tok)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, body, "ACCOUNT_DISABLED")
}

func TestCuentaActiva_FallaDeConsultaEs503(t *testing.T) {
	s := memstore.New()
	seller := s.SeedUser(entity.User{})
	s.Fail("users.GetByID", nil)

	status, body := call(t, guardedApp(s), http.MethodPut, "/api/profile", bearer(t, seller))
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Contains(t, body, "ACCOUNT_CHECK_FAILED")
}

// ──────────────────────────────────────────────────────────────────────────────
// Back-office solo admin
// ──────────────────────────────────────────────────────────────────────────────

func TestBackOffice_SoloAdmin(t *testing.T) {
	s := memstore.New()
	admin := s.SeedUser(entity.User{Role: entity.RoleAdmin})
	seller := s.SeedUser(entity.User{})
	app := guardedApp(s)

	status, body := call(t, app, http.MethodGet, "/api/admin/ping", bearer(t, admin))
	assert.Equal(t, http.StatusOK, status, body)

	status, body = call(t, app, http.MethodGet, "/api/admin/ping", bearer(t, seller))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, body, "FORBIDDEN")

	status, _ = call(t, app, http.MethodGet, "/api/admin/ping", "Bearer "+rawToken(t, admin.ID, "auditor"))
	assert.Equal(t, http.StatusForbidden, status, "rol desconocido")
}

func TestBackOffice_TokenSinRolEs401(t *testing.T) {
	s := memstore.New()
	admin := s.SeedUser(entity.User{Role: entity.RoleAdmin})

	status, body := call(t, guardedApp(s), http.MethodGet, "/api/admin/ping", "Bearer "+rawToken(t, admin.ID, ""))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, body, "MISSING_ROLE")
}

// ──────────────────────────────────────────────────────────────────────────────
// Header Authorization
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_HeadersInvalidos(t *testing.T) {
	s := memstore.New()
	seller := s.SeedUser(entity.User{})
	tok := rawToken(t, seller.ID, entity.RoleSeller)

	cases := map[string]struct {
		header string
		code   string
	}{
		"sin header":      {"", "MISSING_TOKEN"},
		"esquema Basic":   {"Basic " + tok, "INVALID_TOKEN"},
		"token corrupto":  {"Bearer token.invalido.aqui", "INVALID_TOKEN"},
		"solo el esquema": {"Bearer", "INVALID_TOKEN"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			status, body := call(t, guardedApp(s), http.MethodPut, "/api/profile", tc.header)
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Contains(t, body, tc.code)
		})
	}
}

func TestAuthMiddleware_EsquemaSinDistinguirMayusculas(t *testing.T) {
	s := memstore.New()
	seller := s.SeedUser(entity.User{})

	status, body := call(t, guardedApp(s), http.MethodPut, "/api/profile", "bearer "+rawToken(t, seller.ID, entity.RoleSeller))
	assert.Equal(t, http.StatusOK, status, body)
}

// ──────────────────────────────────────────────────────────────────────────────
// pkg/jwt
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_ExpiradoOSecretAjenoSonRechazados(t *testing.T) {
	expired, err := pkgjwt.Generate(testJWTSecret, "u-1", entity.RoleSeller, testIssuer, -1)
	require.NoError(t, err)
	_, _, err = pkgjwt.Parse(testJWTSecret, expired)
	assert.Error(t, err)

	valid := rawToken(t, "u-1", entity.RoleSeller)
	_, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", valid)
	assert.Error(t, err)

	userID, role, err := pkgjwt.Parse(testJWTSecret, valid)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, entity.RoleSeller, role)
}
