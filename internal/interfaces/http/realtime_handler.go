package http

import (
	"errors"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/infrastructure/realtime"
	"github.com/jhoicas/estoque-api/pkg/jwt"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

const writeWait = 5 * time.Second

var errConnClosed = errors.New("realtime: conexión cerrada")

// WebsocketAuth valida ?token= antes del upgrade. Si falla, no hay upgrade: la conexión termina
// sin llegar a registrarse en el hub.
func WebsocketAuth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return c.Status(fiber.StatusUpgradeRequired).JSON(dto.ErrorResponse{Code: "UPGRADE_REQUIRED", Message: "se requiere websocket"})
		}
		token := c.Query("token")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token requerido"})
		}
		id, err := jwt.Parse(jwtSecret, token)
		if err != nil {
			return tokenError(c, err)
		}
		if status, resp, ok := checkRole(id.Role); !ok {
			return c.Status(status).JSON(resp)
		}
		setIdentity(c, id)
		return c.Next()
	}
}

// RealtimeHandler mantiene abierta la conexión websocket mientras el cliente esté conectado.
type RealtimeHandler struct {
	hub *realtime.Hub
	log *logger.Logger
}

// NewRealtimeHandler construye el handler.
func NewRealtimeHandler(hub *realtime.Hub, log *logger.Logger) *RealtimeHandler {
	return &RealtimeHandler{hub: hub, log: log}
}

// Serve registra la conexión y la drena hasta que el cliente se va.
// El protocolo no define mensajes cliente → servidor; lo recibido se descarta.
func (h *RealtimeHandler) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client := &wsClient{conn: conn}
		id := h.hub.Register(client)
		username, _ := conn.Locals(LocalUsername).(string)
		h.log.Info().Str("username", username).Str("conn_id", id.String()).Msg("cliente realtime conectado")
		defer func() {
			h.hub.Unregister(id)
			client.release()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}

// wsClient adapta *websocket.Conn a realtime.Client.
// writeMu serializa escrituras; stateMu protege closed. Close no espera a una escritura en curso:
// cerrar el socket es lo que la desbloquea. Tras release el handler ya devolvió la conexión a Fiber
// y no se puede volver a usar.
type wsClient struct {
	writeMu sync.Mutex
	stateMu sync.Mutex
	conn    *websocket.Conn
	closed  bool
}

func (w *wsClient) Send(payload []byte) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	if w.isClosed() {
		return errConnClosed
	}
	if err := w.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return w.conn.WriteMessage(websocket.TextMessage, payload)
}

func (w *wsClient) Close() error {
	w.stateMu.Lock()
	defer w.stateMu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return w.conn.Close()
}

func (w *wsClient) isClosed() bool {
	w.stateMu.Lock()
	defer w.stateMu.Unlock()
	return w.closed
}

func (w *wsClient) release() {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	w.stateMu.Lock()
	w.closed = true
	w.stateMu.Unlock()
}
