package http_test

import (
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	fastws "github.com/fasthttp/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/estoque-api/pkg/jwt"
)

func upgradeRequest(path string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	req.Header.Set("Sec-WebSocket-Version", "13")
	req.Header.Set("Sec-WebSocket-Key", "dGhlIHNhbXBsZSBub25jZQ==")
	return req
}

func TestWebsocket_SinUpgrade_Retorna426(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/ws?token=x", "", nil)
	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
	assert.Equal(t, "UPGRADE_REQUIRED", decode[dto.ErrorResponse](t, resp).Code)
}

func TestWebsocket_SinToken_Retorna401(t *testing.T) {
	env := newTestEnv(t)
	resp, err := env.app.Test(upgradeRequest("/ws"), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", decode[dto.ErrorResponse](t, resp).Code)
	assert.Zero(t, env.hub.Len(), "una conexión rechazada no se registra")
}

func TestWebsocket_TokenInvalido_Retorna401(t *testing.T) {
	env := newTestEnv(t)
	resp, err := env.app.Test(upgradeRequest("/ws?token=token.invalido.aqui"), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", decode[dto.ErrorResponse](t, resp).Code)
	assert.Zero(t, env.hub.Len())
}

func TestWebsocket_RolDesconocido_Retorna403(t *testing.T) {
	env := newTestEnv(t)
	tok := bearer(t, pkgjwt.Identity{UserID: 9, Username: "mallory", Role: "root"})[len("Bearer "):]

	resp, err := env.app.Test(upgradeRequest("/ws?token="+url.QueryEscape(tok)), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decode[dto.ErrorResponse](t, resp).Code)
	assert.Zero(t, env.hub.Len())
}

// listen sirve la app en un puerto libre de loopback y devuelve host:port.
func listen(t *testing.T, env *testEnv) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = env.app.Listener(ln) }()
	t.Cleanup(func() { _ = env.app.Shutdown() })
	return ln.Addr().String()
}

func TestWebsocket_RecibeUnEventoPorMutacion(t *testing.T) {
	env := newTestEnv(t)
	_, admin := env.seedUser(t, "root", entity.RoleAdministrador)
	_, seller := env.seedUser(t, "ana", entity.RoleVendedor)
	addr := listen(t, env)

	tok := seller[len("Bearer "):]
	conn, resp, err := fastws.DefaultDialer.Dial("ws://"+addr+"/ws?token="+url.QueryEscape(tok), nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	defer conn.Close()

	require.Eventually(t, func() bool { return env.hub.Len() == 1 }, 2*time.Second, 5*time.Millisecond)

	readEvent := func() string {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		kind, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Equal(t, fastws.TextMessage, kind)
		return string(msg)
	}

	id := createFlour(t, env, admin)
	assert.Equal(t, `{"event":"product_update"}`, readEvent())

	patch := env.do(t, http.MethodPatch, fmt.Sprintf("/api/products/%d", id), seller, map[string]any{"quantity": 7})
	patch.Body.Close()
	require.Equal(t, http.StatusOK, patch.StatusCode)
	assert.Equal(t, `{"event":"product_update"}`, readEvent())

	// Sin más mutaciones no llega nada más.
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err = conn.ReadMessage()
	var ne net.Error
	require.ErrorAs(t, err, &ne)
	assert.True(t, ne.Timeout())

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return env.hub.Len() == 0 }, 2*time.Second, 5*time.Millisecond)
}
