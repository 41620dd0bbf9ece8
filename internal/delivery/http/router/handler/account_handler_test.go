package handler_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	slogecho "github.com/samber/slog-echo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"usergate/config"
	"usergate/internal/delivery/http/middleware"
	"usergate/internal/delivery/http/response"
	"usergate/internal/delivery/http/router"
	"usergate/internal/delivery/http/router/handler"
	"usergate/internal/delivery/http/validator"
	"usergate/internal/infra/auth"
	"usergate/internal/infra/persistence/memory"
	"usergate/internal/usecase/impl"
)

// newTestServer wires the full HTTP stack against the in-memory store so the
// tests exercise routing, binding, validation, auth and error rendering the
// same way the real server does.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{
		SecretKey: config.SecretKey{Session: "handler-test-secret"},
		Auth: &config.AuthConfig{
			BcryptCost: bcrypt.MinCost,
			SessionTTL: time.Minute,
		},
	}

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uc := impl.NewAccountService(memory.NewUserRepository(), auth.NewBcryptHasher(cfg), tokenService, logger)

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError
	e.Use(slogecho.New(logger))

	r := router.NewRouter(router.RouterParams{
		AccountHandler:      handler.NewAccountHandler(uc, logger),
		AuthMiddleware:      middleware.NewAuthMiddleware(tokenService),
		RequestIDMiddleware: middleware.NewRequestIDMiddleware(logger),
	})
	r.RegisterRoutes(e)

	return e
}

func doJSON(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()

	var envelope response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	return envelope
}

const aliceJSON = `{"login":"alice","password":"Secr3t!","email":"a@x.com","firstname":"Alice","lastname":"A"}`

// registerAlice creates the account and returns its session token.
func registerAlice(t *testing.T, e *echo.Echo) string {
	t.Helper()

	rec := doJSON(e, http.MethodPost, "/auth/register", aliceJSON, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var envelope struct {
		Data struct {
			SessionToken string `json:"session_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.SessionToken)

	return envelope.Data.SessionToken
}

func TestHealthEndpoint(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestRegisterEndpoint(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/auth/register", aliceJSON, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	envelope := decodeResponse(t, rec)
	assert.True(t, envelope.Success)
	assert.Equal(t, http.StatusCreated, envelope.Code)
}

func TestRegisterEndpoint_MissingFields(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/auth/register", `{"login":"alice","password":"Secr3t!"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	envelope := decodeResponse(t, rec)
	assert.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "VALIDATION_FAILED", envelope.Error.Code)
}

func TestRegisterEndpoint_DuplicateLogin(t *testing.T) {
	e := newTestServer(t)
	registerAlice(t, e)

	rec := doJSON(e, http.MethodPost, "/auth/register", aliceJSON, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	envelope := decodeResponse(t, rec)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "REGISTRATION_FAILED", envelope.Error.Code)
}

func TestLoginEndpoint(t *testing.T) {
	e := newTestServer(t)
	registerAlice(t, e)

	rec := doJSON(e, http.MethodPost, "/auth/login", `{"login":"alice","password":"Secr3t!"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeResponse(t, rec)
	assert.True(t, envelope.Success)
}

func TestLoginEndpoint_BadCredentials(t *testing.T) {
	e := newTestServer(t)
	registerAlice(t, e)

	for _, body := range []string{
		`{"login":"alice","password":"wrong"}`,
		`{"login":"nobody","password":"Secr3t!"}`,
	} {
		rec := doJSON(e, http.MethodPost, "/auth/login", body, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		envelope := decodeResponse(t, rec)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, "INVALID_CREDENTIALS", envelope.Error.Code)
	}
}

func TestGetAccountEndpoint(t *testing.T) {
	e := newTestServer(t)
	token := registerAlice(t, e)

	rec := doJSON(e, http.MethodGet, "/account", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"login":"alice"`)
	assert.Contains(t, rec.Body.String(), `"email":"a@x.com"`)
}

func TestGetAccountEndpoint_RequiresToken(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/account", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(e, http.MethodGet, "/account", "", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateAccountEndpoint(t *testing.T) {
	e := newTestServer(t)
	token := registerAlice(t, e)

	body := `{"login":"alice","email":"new@x.com","firstname":"Alice","lastname":"B"}`
	rec := doJSON(e, http.MethodPut, "/account", body, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"new@x.com"`)

	// Empty password field means the original one still works.
	rec = doJSON(e, http.MethodPost, "/auth/login", `{"login":"alice","password":"Secr3t!"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogoutEndpoint(t *testing.T) {
	e := newTestServer(t)
	token := registerAlice(t, e)

	rec := doJSON(e, http.MethodPost, "/auth/logout", "", token)
	assert.Equal(t, http.StatusOK, rec.Code)

	// The account survives a logout.
	rec = doJSON(e, http.MethodPost, "/auth/login", `{"login":"alice","password":"Secr3t!"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteAccountEndpoint(t *testing.T) {
	e := newTestServer(t)
	token := registerAlice(t, e)

	rec := doJSON(e, http.MethodDelete, "/account", "", token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodPost, "/auth/login", `{"login":"alice","password":"Secr3t!"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
