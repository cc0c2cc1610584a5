package server

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"treasuryd/internal/common"
	"treasuryd/internal/models"
)

// liveHub fans asset price change events out to connected WebSocket
// clients. Events are delivered in the order Broadcast is called.
type liveHub struct {
	logger   *common.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func newLiveHub(logger *common.Logger) *liveHub {
	return &liveHub{
		logger:  logger,
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Broadcast sends an event to every connected client. Clients that
// fail the write are dropped.
func (h *liveHub) Broadcast(event models.PriceEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteJSON(event); err != nil {
			h.logger.Debug().Err(err).Msg("Dropping live client after write failure")
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// CloseAll disconnects every client, used during shutdown.
func (h *liveHub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
}

func (h *liveHub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
}

func (h *liveHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	if h.clients[conn] {
		conn.Close()
		delete(h.clients, conn)
	}
	h.mu.Unlock()
}

// handleLive handles GET /api/live, upgrading to a WebSocket that
// streams asset price change events.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.hub.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	s.hub.add(conn)
	s.logger.Debug().Str("remote", conn.RemoteAddr().String()).Msg("Live client connected")

	// Reader loop only watches for close; the server never expects
	// inbound messages on this socket.
	go func() {
		defer s.hub.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
