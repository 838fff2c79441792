package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"turmeric-trace/domain"
	"turmeric-trace/internal/api/handlers"
	"turmeric-trace/internal/middleware"
	"turmeric-trace/internal/testutil"
	"turmeric-trace/internal/utils"
	"turmeric-trace/internal/utils/metrics"
	"turmeric-trace/pkg/admin"
	"turmeric-trace/pkg/attachment"
	"turmeric-trace/pkg/catalog"
	"turmeric-trace/pkg/factory"
	"turmeric-trace/pkg/farm"
	"turmeric-trace/pkg/lab"
	"turmeric-trace/pkg/notification"
	"turmeric-trace/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserService struct {
	user.UserService
	sessions map[string]domain.Session
}

func (s *stubUserService) ResolveSession(_ context.Context, token string) (domain.Session, error) {
	session, ok := s.sessions[token]
	if !ok {
		return domain.Session{}, domain.ErrSessionRevoked
	}
	return session, nil
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestApp(t *testing.T) (*fiber.App, *testutil.Backend) {
	t.Helper()
	utils.InitValidator()

	backend := testutil.NewBackend(t)
	client := backend.Client(t)
	v := utils.Validate

	userService := &stubUserService{sessions: map[string]domain.Session{
		"farmer": {ID: "s1", UserID: "7", Role: domain.RoleFarmer, BackendToken: "backend-jwt"},
		"admin":  {ID: "s2", UserID: "1", Role: domain.RoleAdmin, BackendToken: "admin-jwt"},
	}}

	app := fiber.New()
	cfg := Config{
		App:                 app,
		UserHandler:         handlers.NewUserHandler(userService, v),
		FarmHandler:         handlers.NewFarmHandler(farm.NewFarmService(farm.NewFarmRepository(client)), v),
		LabHandler:          handlers.NewLabHandler(lab.NewLabService(lab.NewLabRepository(client)), v),
		FactoryHandler:      handlers.NewFactoryHandler(factory.NewFactoryService(factory.NewFactoryRepository(client), nil, nil, "http://trace.local"), v),
		AdminHandler:        handlers.NewAdminHandler(admin.NewAdminService(admin.NewAdminRepository(client)), v),
		NotificationHandler: handlers.NewNotificationHandler(notification.NewNotificationService(nil, notification.NewNotificationFeed(client))),
		AttachmentHandler:   handlers.NewAttachmentHandler(attachment.NewAttachmentService(client)),
		CatalogHandler:      handlers.NewCatalogHandler(catalog.NewCatalogService(catalog.NewCatalogRepository(client), "http://trace.local")),
		Middleware:          middleware.NewMiddleware(),
		UserService:         userService,
		Metrics:             metrics.NewBackend().Registry,
	}
	cfg.Setup()
	return app, backend
}

func call(t *testing.T, app *fiber.App, method, path, token, body string) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &env))
	}
	return resp, env
}

func TestPing(t *testing.T) {
	app, _ := newTestApp(t)
	resp, _ := call(t, app, http.MethodGet, "/api/ping", "", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRoleGateRunsBeforeAnyFetch(t *testing.T) {
	app, backend := newTestApp(t)

	resp, env := call(t, app, http.MethodGet, "/api/v1/admin/users", "farmer", "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.JSONEq(t, `{"redirect":"/unauthorized"}`, string(env.Data))
	assert.Zero(t, backend.TotalHits())

	resp, _ = call(t, app, http.MethodGet, "/api/v1/farmer/farms", "admin", "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Zero(t, backend.TotalHits())
}

func TestMissingTokenIsRejected(t *testing.T) {
	app, backend := newTestApp(t)

	resp, _ := call(t, app, http.MethodGet, "/api/v1/notifications", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/api/v1/farmer/dashboard", "stale", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, backend.TotalHits())
}

func TestInvalidFormNeverReachesBackend(t *testing.T) {
	app, backend := newTestApp(t)

	resp, env := call(t, app, http.MethodPost, "/api/v1/farmer/farms", "farmer", `{"location":"Tak"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, domain.MessageFailedCreateFarm, env.Message)
	assert.Contains(t, string(env.Data), "farm_name is required")
	assert.Zero(t, backend.TotalHits())

	resp, _ = call(t, app, http.MethodPost, "/api/v1/auth/reset-password", "",
		`{"code":"c","password":"secret1","passwordConfirmation":"secret2"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, backend.TotalHits())
}

func TestBackendUnauthorizedMeansSessionExpired(t *testing.T) {
	app, backend := newTestApp(t)
	backend.JSON(http.MethodGet, "/api/farms", http.StatusUnauthorized, map[string]any{
		"data": nil, "error": map[string]any{"status": 401, "name": "UnauthorizedError", "message": "Missing or invalid credentials"},
	})

	resp, env := call(t, app, http.MethodGet, "/api/v1/farmer/farms", "farmer", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, domain.MessageSessionExpired, env.Message)
	assert.Equal(t, 1, backend.Hits(http.MethodGet, "/api/farms"))
}

func TestBackendFailureIsBadGateway(t *testing.T) {
	app, backend := newTestApp(t)
	backend.JSON(http.MethodGet, "/api/farms", http.StatusInternalServerError, map[string]any{
		"data": nil, "error": map[string]any{"status": 500, "name": "InternalServerError", "message": "boom"},
	})

	resp, env := call(t, app, http.MethodGet, "/api/v1/farmer/farms", "farmer", "")
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, domain.MessageBackendUnavailable, env.Message)
}

func TestPublicRoutesNeedNoSession(t *testing.T) {
	app, backend := newTestApp(t)
	backend.JSON(http.MethodGet, "/api/factory-processings", http.StatusOK, testutil.List())
	backend.JSON(http.MethodGet, "/api/batches", http.StatusOK, testutil.List())

	resp, env := call(t, app, http.MethodGet, "/api/v1/public/catalog", "", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, env.Status)

	resp, env = call(t, app, http.MethodGet, "/api/v1/public/trace/TMR-NOPE", "", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, domain.ErrTraceNotFound.Error(), env.Error)

	for _, r := range backend.Requests() {
		assert.Empty(t, r.Auth)
	}
}

func TestUnknownReferenceCollection(t *testing.T) {
	app, backend := newTestApp(t)

	resp, _ := call(t, app, http.MethodPost, "/api/v1/admin/references/users", "admin", `{"name":"x"}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Zero(t, backend.TotalHits())
}

func TestMetricsEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "go_goroutines")
}
