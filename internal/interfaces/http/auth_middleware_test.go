package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/marketplace-identity/internal/application/dto"
	"github.com/jhoicas/marketplace-identity/internal/domain"
	"github.com/jhoicas/marketplace-identity/internal/domain/policy"
	apphttp "github.com/jhoicas/marketplace-identity/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/marketplace-identity/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testAccountID = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "marketplace-identity-test"
)

// fakeResolver devuelve cuentas de un mapa; emula el store.
type fakeResolver map[string]*dto.AccountResponse

func (f fakeResolver) GetSelf(_ context.Context, actor policy.Actor) (*dto.AccountResponse, error) {
	if a, ok := f[actor.ID]; ok {
		return a, nil
	}
	return nil, domain.New(domain.ErrNotFound, "User not found")
}

func resolverWithRole(role string) fakeResolver {
	return fakeResolver{testAccountID: {ID: testAccountID, Role: role, Status: "Approved"}}
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar la cuenta
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(resolver apphttp.AccountResolver, allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, resolver),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"id":   apphttp.GetAccountID(c),
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testAccountID, role, testIssuer, time.Hour)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(resolverWithRole("Admin"), "Admin")
	resp := doRequest(t, app, tokenForRole(t, "Admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "Admin", body["role"])
	assert.Equal(t, testAccountID, body["id"])
}

func TestRequireRole_VariosRolesPermitidos(t *testing.T) {
	app := buildTestApp(resolverWithRole("Supplier"), "Admin", "Supplier")
	resp := doRequest(t, app, tokenForRole(t, "Supplier"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_BuyerBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(resolverWithRole("Buyer"), "Admin")
	resp := doRequest(t, app, tokenForRole(t, "Buyer"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

// El rol sale del store: un token emitido como Admin no sirve si la cuenta ya no lo es.
func TestRequireRole_UsaRolDelStoreNoDelToken(t *testing.T) {
	app := buildTestApp(resolverWithRole("Buyer"), "Admin")
	resp := doRequest(t, app, tokenForRole(t, "Admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireRole_CuentaSinRol_Retorna401(t *testing.T) {
	app := buildTestApp(resolverWithRole(""), "Admin")
	resp := doRequest(t, app, tokenForRole(t, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(resolverWithRole("Admin"), "Admin")
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(resolverWithRole("Admin"), "Admin")

	for _, header := range []string{"Bearer token.invalido.aqui", "Basic abc", "Bearer"} {
		resp := doRequest(t, app, header)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, header)
		resp.Body.Close()
	}
}

func TestAuthMiddleware_FirmaDistinta_Retorna401(t *testing.T) {
	app := buildTestApp(resolverWithRole("Admin"), "Admin")
	tok, err := pkgjwt.Generate("otro-secreto", testAccountID, "Admin", testIssuer, time.Hour)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_CuentaBorrada_Retorna401(t *testing.T) {
	app := buildTestApp(fakeResolver{}, "Admin")
	resp := doRequest(t, app, tokenForRole(t, "Admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_CargaCuenta(t *testing.T) {
	resolver := fakeResolver{testAccountID: {ID: testAccountID, Name: "Ana", Role: "Supplier", Status: "Pending"}}
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret, resolver), func(c *fiber.Ctx) error {
		return c.JSON(apphttp.GetAccount(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, "Supplier"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.AccountResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Ana", body.Name)
	assert.Equal(t, "Pending", body.Status)
}
