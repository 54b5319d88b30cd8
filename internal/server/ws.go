package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/projectsquall/squall-server-go/internal/game"
)

const wsWriteTimeout = 10 * time.Second

// Hub fans match events out to websocket subscribers, one subscriber set per
// match id. Subscribers that fail a write are dropped.
type Hub struct {
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mu   sync.Mutex
	subs map[string]map[*websocket.Conn]bool
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		subs: make(map[string]map[*websocket.Conn]bool),
	}
}

// Subscribe upgrades the request and registers the connection on the match
// feed until the peer goes away.
func (h *Hub) Subscribe(w http.ResponseWriter, r *http.Request, matchID string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.String("match_id", matchID), zap.Error(err))
		return
	}
	h.mu.Lock()
	if h.subs[matchID] == nil {
		h.subs[matchID] = make(map[*websocket.Conn]bool)
	}
	h.subs[matchID][conn] = true
	h.mu.Unlock()

	h.logger.Debug("websocket subscriber joined", zap.String("match_id", matchID))

	// Reads only serve to detect disconnects; the feed is one-way.
	go func() {
		defer h.drop(matchID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast sends the appended log entries to every subscriber of the match.
func (h *Hub) Broadcast(matchID string, events []game.Event) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.subs[matchID]))
	for conn := range h.subs[matchID] {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteJSON(events); err != nil {
			h.logger.Debug("websocket write failed, dropping subscriber",
				zap.String("match_id", matchID), zap.Error(err))
			h.drop(matchID, conn)
		}
	}
}

func (h *Hub) drop(matchID string, conn *websocket.Conn) {
	h.mu.Lock()
	if set, ok := h.subs[matchID]; ok {
		delete(set, conn)
		if len(set) == 0 {
			delete(h.subs, matchID)
		}
	}
	h.mu.Unlock()
	conn.Close()
}

// CloseAll tears down every subscriber, used on shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for matchID, set := range h.subs {
		for conn := range set {
			conn.Close()
		}
		delete(h.subs, matchID)
	}
}
