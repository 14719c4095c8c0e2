package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/estoque-api/internal/application/auth"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
	"github.com/jhoicas/estoque-api/internal/infrastructure/realtime"
	apphttp "github.com/jhoicas/estoque-api/internal/interfaces/http"
	"github.com/jhoicas/estoque-api/pkg/logger"
	pkgjwt "github.com/jhoicas/estoque-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "estoque-api-test"
	testExpMin    = 480
)

// testEnv aplicación completa sobre repositorios en memoria.
type testEnv struct {
	app   *fiber.App
	users *memory.UserRepo
	hub   *realtime.Hub
}

type fakeReport struct{}

func (fakeReport) GenerateStockReport(context.Context, []*entity.Product, string, time.Time) ([]byte, error) {
	return []byte("%PDF-1.3 fake"), nil
}

func newTestEnv(t *testing.T, opts ...func(*apphttp.RouterDeps)) *testEnv {
	t.Helper()
	log := logger.Nop()
	users := memory.NewUserRepository()
	products := memory.NewProductRepository()
	hub := realtime.NewHub(log, realtime.Hooks{})
	t.Cleanup(hub.Close)

	deps := apphttp.RouterDeps{
		AuthUC:    auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}).WithHashCost(bcrypt.MinCost),
		ProductUC: usecase.NewProductUseCase(products, hub),
		UserUC:    usecase.NewUserUseCase(users).WithHashCost(bcrypt.MinCost),
		ReportUC:  usecase.NewReportUseCase(products, fakeReport{}),
		Hub:       hub,
		JWTSecret: testJWTSecret,
		AppName:   "estoque-api-test",
		Logger:    log,
	}
	for _, opt := range opts {
		opt(&deps)
	}

	app := fiber.New()
	apphttp.Router(app, deps)
	return &testEnv{app: app, users: users, hub: hub}
}

// seedUser crea un usuario directamente en el repositorio y devuelve el header Authorization.
func (e *testEnv) seedUser(t *testing.T, username string, role entity.Role) (int64, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{Username: username, PasswordHash: string(hash), Role: role}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u.ID, bearer(t, pkgjwt.Identity{UserID: u.ID, Username: username, Role: string(role)})
}

func bearer(t *testing.T, id pkgjwt.Identity) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, id, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// do lanza la petición; body se serializa a JSON si no es nil.
func (e *testEnv) do(t *testing.T, method, path, authHeader string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

type recordingClient struct {
	mu   sync.Mutex
	msgs []string
}

func (c *recordingClient) Send(p []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, string(p))
	return nil
}

func (c *recordingClient) Close() error { return nil }

func (c *recordingClient) received() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.msgs...)
}
