package ws

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/kasuganosora/pokebattle/cache"
	"github.com/kasuganosora/pokebattle/config"
	"github.com/kasuganosora/pokebattle/game/arena"
)

const (
	writeTimeout = 10 * time.Second
	pongTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second
)

// Handler streams live battle events over WebSocket. Each connection
// subscribes to one battle's pub/sub channel and relays its JSON events.
type Handler struct {
	arena    *arena.Manager
	pubsub   cache.PubSub
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates a WebSocket Handler. sec.AllowedOrigins controls which
// origins may connect; an empty list permits all (development only).
func NewHandler(m *arena.Manager, ps cache.PubSub, sec config.SecurityConfig, logger *zap.Logger) *Handler {
	h := &Handler{arena: m, pubsub: ps, logger: logger}
	allowed := sec.AllowedOrigins
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowed) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, o := range allowed {
				if o == origin {
					return true
				}
			}
			return false
		},
	}
	return h
}

// Stream handles GET /ws/battles/:id. It first replays the battle's event
// log so late subscribers see the full history, then forwards live events
// until the connection or battle ends.
func (h *Handler) Stream(c *gin.Context) {
	b, ok := h.arena.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "battle not found"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	msgs, cancel, err := h.pubsub.Subscribe(ctx, arena.EventChannel(b.ID))
	if err != nil {
		h.logger.Error("battle stream subscribe failed",
			zap.String("battle_id", b.ID), zap.Error(err))
		return
	}
	defer cancel()

	// Replay history before live events. Events published between the
	// snapshot and the subscription may appear twice; clients dedupe by
	// position if they care.
	for _, ev := range b.Session.Events() {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(gin.H{"type": ev.EventType(), "event": ev}); err != nil {
			return
		}
	}

	conn.SetReadDeadline(time.Now().Add(pongTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongTimeout))
		return nil
	})
	// Reader goroutine: we never expect client messages, but reading
	// drives pong handling and detects closed connections.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		case <-ctx.Done():
			return
		}
	}
}
