package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/minibank/minibank/pkg/config"
	"github.com/minibank/minibank/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "gate-secret"

func testConfig() config.JwtConfig {
	return config.JwtConfig{Secret: testSecret, Expiry: time.Hour, Leeway: 60 * time.Second}
}

func newGateApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/protected", middleware.JwtProtected(testConfig()), func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return fiber.NewError(fiber.StatusInternalServerError, "token not attached")
		}
		sub, err := token.Claims.GetSubject()
		if err != nil {
			return err
		}
		return c.SendString(sub)
	})
	return app
}

func signToken(t *testing.T, secret string, expiresIn time.Duration) string {
	t.Helper()
	now := time.Now()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": uuid.New().String(),
		"iat": now.Unix(),
		"exp": now.Add(expiresIn).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	return raw
}

func request(t *testing.T, app *fiber.App, authorization string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set(fiber.HeaderAuthorization, authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestJwtProtected_MissingHeader(t *testing.T) {
	t.Parallel()
	resp := request(t, newGateApp(t), "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "missing or malformed token")
}

func TestJwtProtected_NotBearer(t *testing.T) {
	t.Parallel()
	resp := request(t, newGateApp(t), "Basic dXNlcjpwdw==")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "missing or malformed token")
}

func TestJwtProtected_GarbageToken(t *testing.T) {
	t.Parallel()
	resp := request(t, newGateApp(t), "Bearer not.a.token")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJwtProtected_WrongSecret(t *testing.T) {
	t.Parallel()
	token := signToken(t, "some-other-secret", time.Hour)
	resp := request(t, newGateApp(t), "Bearer "+token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJwtProtected_Expired(t *testing.T) {
	t.Parallel()
	token := signToken(t, testSecret, -2*time.Minute)
	resp := request(t, newGateApp(t), "Bearer "+token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "token expired")
}

// A token whose expiry lies within the leeway window still passes the
// gate: the leeway absorbs clock skew between issuer and verifier.
func TestJwtProtected_ExpiredWithinLeeway(t *testing.T) {
	t.Parallel()
	token := signToken(t, testSecret, -30*time.Second)
	resp := request(t, newGateApp(t), "Bearer "+token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJwtProtected_MissingExpClaim(t *testing.T) {
	t.Parallel()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": uuid.New().String(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	resp := request(t, newGateApp(t), "Bearer "+raw)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJwtProtected_MissingSubClaim(t *testing.T) {
	t.Parallel()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	resp := request(t, newGateApp(t), "Bearer "+raw)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// The none algorithm must never slip past the HS256 allow-list.
func TestJwtProtected_NoneAlgorithm(t *testing.T) {
	t.Parallel()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	resp := request(t, newGateApp(t), "Bearer "+raw)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJwtProtected_ValidToken_AttachesIdentity(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	now := time.Now()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	resp := request(t, newGateApp(t), "Bearer "+raw)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), string(body))
}
