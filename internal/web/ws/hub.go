package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/radieske/match-predictor/internal/shared/logger"
	"github.com/radieske/match-predictor/internal/web/view"
)

const writeWait = 5 * time.Second

// conn serializa as escritas; gorilla permite um único writer por conexão
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) write(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(websocket.TextMessage, b)
}

// Hub gerencia as conexões WebSocket por sessão do navegador
// subs: mapeia sessionID para o conjunto de abas conectadas
type Hub struct {
	upgrader websocket.Upgrader
	log      *zap.Logger
	mu       sync.RWMutex
	subs     map[string]map[*conn]struct{}

	// OnConnect é chamado após o registro (envio do estado inicial da página)
	OnConnect func(sessionID string)
	// OnDisconnect é chamado quando a última aba da sessão sai
	OnDisconnect func(sessionID string)
}

// NewHub cria uma instância de Hub com política customizada de origem (CORS)
func NewHub(allowOrigin func(r *http.Request) bool, log *zap.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{CheckOrigin: allowOrigin},
		log:      logger.Named(log, "ws"),
		subs:     make(map[string]map[*conn]struct{}),
	}
}

// Serve gerencia o ciclo de vida de uma conexão da sessão
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, sessionID string) {
	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &conn{ws: wsConn}
	defer wsConn.Close()

	h.mu.Lock()
	if _, ok := h.subs[sessionID]; !ok {
		h.subs[sessionID] = make(map[*conn]struct{})
	}
	h.subs[sessionID][c] = struct{}{}
	h.mu.Unlock()

	if h.OnConnect != nil {
		h.OnConnect(sessionID)
	}

	for {
		var msg ClientMsg
		if err := wsConn.ReadJSON(&msg); err != nil {
			break
		}
		if msg.Type == "ping" {
			b, _ := json.Marshal(map[string]string{"type": "pong"})
			_ = c.write(b)
		}
	}

	// Remove a conexão ao desconectar
	h.mu.Lock()
	last := false
	if set, ok := h.subs[sessionID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.subs, sessionID)
			last = true
		}
	}
	h.mu.Unlock()

	if last && h.OnDisconnect != nil {
		h.OnDisconnect(sessionID)
	}
}

// Push implementa view.Sink para entrega local
func (h *Hub) Push(sessionID string, ops ...view.Op) {
	if len(ops) == 0 {
		return
	}
	h.Deliver(Frame{SessionID: sessionID, Ops: ops})
}

// Deliver envia o frame para todas as abas da sessão
func (h *Hub) Deliver(f Frame) {
	h.mu.RLock()
	set := h.subs[f.SessionID]
	conns := make([]*conn, 0, len(set))
	for c := range set {
		conns = append(conns, c)
	}
	h.mu.RUnlock()
	if len(conns) == 0 {
		return
	}

	b, err := json.Marshal(f)
	if err != nil {
		h.log.Warn("frame marshal failed", zap.Error(err))
		return
	}
	for _, c := range conns {
		if err := c.write(b); err != nil {
			h.log.Debug("ws write failed", zap.String("session", f.SessionID), zap.Error(err))
		}
	}
}

// Connected informa quantas abas da sessão estão conectadas
func (h *Hub) Connected(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[sessionID])
}
