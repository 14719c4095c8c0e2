// Package realtime mantiene el registro de conexiones en tiempo real y difunde eventos a todas.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

var _ usecase.ChangeNotifier = (*Hub)(nil)

var errQueueFull = errors.New("realtime: cola de envío llena")

// Client es el transporte de una conexión registrada (websocket en producción).
type Client interface {
	Send(payload []byte) error
	Close() error
}

// Hooks permite observar el ciclo de vida del hub (métricas). Todos opcionales.
type Hooks struct {
	OnConnect    func()
	OnDisconnect func()
	OnBroadcast  func(queued, dropped int)
}

// sendBuffer eventos pendientes por conexión; si se llena, la conexión se descarta.
const sendBuffer = 64

// member es una conexión registrada con su cola de salida. Solo writeLoop escribe en client.
type member struct {
	client Client
	send   chan []byte
	done   chan struct{}
	once   sync.Once
}

func (m *member) stop() {
	m.once.Do(func() { close(m.done) })
}

// Hub es el registro de conexiones vivas del proceso. Se inyecta en los casos de uso; no es global.
type Hub struct {
	mu      sync.RWMutex
	members map[uuid.UUID]*member
	log     *logger.Logger
	hooks   Hooks
}

// NewHub construye un hub vacío.
func NewHub(log *logger.Logger, hooks Hooks) *Hub {
	return &Hub{members: make(map[uuid.UUID]*member), log: log, hooks: hooks}
}

// Register añade una conexión ya autenticada y devuelve su id.
func (h *Hub) Register(c Client) uuid.UUID {
	id := uuid.New()
	h.mu.Lock()
	m := &member{client: c, send: make(chan []byte, sendBuffer), done: make(chan struct{})}
	h.members[id] = m
	h.mu.Unlock()
	go h.writeLoop(id, m)
	if h.hooks.OnConnect != nil {
		h.hooks.OnConnect()
	}
	h.log.Debug().Str("conn_id", id.String()).Msg("cliente realtime registrado")
	return id
}

// Unregister quita la conexión del registro. Es idempotente.
func (h *Hub) Unregister(id uuid.UUID) {
	h.mu.Lock()
	m, ok := h.members[id]
	delete(h.members, id)
	h.mu.Unlock()
	if !ok {
		return
	}
	m.stop()
	if h.hooks.OnDisconnect != nil {
		h.hooks.OnDisconnect()
	}
	h.log.Debug().Str("conn_id", id.String()).Msg("cliente realtime desconectado")
}

// Len devuelve el número de conexiones registradas.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.members)
}

// Broadcast encola el evento en todas las conexiones registradas y vuelve sin esperar a la red.
// Una conexión con la cola llena se cierra y se quita del registro; el error no se propaga.
// Si ctx ya está cancelado no se encola nada.
func (h *Hub) Broadcast(ctx context.Context, event entity.ChangeEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.log.Error().Err(err).Msg("serializar evento realtime")
		return
	}

	h.mu.RLock()
	snapshot := make(map[uuid.UUID]*member, len(h.members))
	for id, m := range h.members {
		snapshot[id] = m
	}
	h.mu.RUnlock()

	queued, dropped := 0, 0
	for id, m := range snapshot {
		if ctx.Err() != nil {
			h.log.Debug().Err(ctx.Err()).Msg("broadcast realtime interrumpido")
			break
		}
		select {
		case <-m.done:
		case m.send <- payload:
			queued++
		default:
			dropped++
			h.drop(id, m, errQueueFull)
		}
	}
	if h.hooks.OnBroadcast != nil {
		h.hooks.OnBroadcast(queued, dropped)
	}
}

// writeLoop es el único escritor de la conexión: vacía la cola hasta que el miembro se detiene.
func (h *Hub) writeLoop(id uuid.UUID, m *member) {
	for {
		select {
		case <-m.done:
			return
		case payload := <-m.send:
			if err := m.client.Send(payload); err != nil {
				h.drop(id, m, err)
				return
			}
		}
	}
}

func (h *Hub) drop(id uuid.UUID, m *member, cause error) {
	h.log.Debug().Err(cause).Str("conn_id", id.String()).Msg("conexión realtime descartada")
	m.stop()
	_ = m.client.Close()
	h.Unregister(id)
}

// Close cierra todas las conexiones registradas (apagado del servidor).
func (h *Hub) Close() {
	h.mu.RLock()
	snapshot := make(map[uuid.UUID]*member, len(h.members))
	for id, m := range h.members {
		snapshot[id] = m
	}
	h.mu.RUnlock()
	for id, m := range snapshot {
		m.stop()
		_ = m.client.Close()
		h.Unregister(id)
	}
}
