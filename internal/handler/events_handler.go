package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/examhall/examhall-backend/internal/config"
	"github.com/examhall/examhall-backend/internal/model"
	"github.com/examhall/examhall-backend/internal/service"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// statusMessage is the first frame sent on connect so clients start from
// the current lifecycle state before receiving deltas.
type statusMessage struct {
	Type   string                `json:"type"`
	Status *model.StatusSnapshot `json:"status"`
}

// EventsHandler streams exam lifecycle events over WebSocket so clients do
// not poll the status endpoint. Events arrive via Redis pub/sub.
type EventsHandler struct {
	rdb         *redis.Client
	examService *service.ExamService
	log         zerolog.Logger
	upgrader    websocket.Upgrader
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(rdb *redis.Client, examService *service.ExamService, log zerolog.Logger, allowedOrigins []string) *EventsHandler {
	return &EventsHandler{
		rdb:         rdb,
		examService: examService,
		log:         log.With().Str("component", "events_handler").Logger(),
		upgrader:    buildUpgrader(allowedOrigins),
	}
}

// ExamEventStream godoc
// WS /ws/v1/exam/events
// Sends the current status snapshot, then forwards started/stopped events
// until the client disconnects.
func (h *EventsHandler) ExamEventStream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()

	snapshot, err := h.examService.Status(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("status read failed, closing stream")
		return
	}
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := conn.WriteJSON(statusMessage{Type: "status", Status: snapshot}); err != nil {
		return
	}

	pubsub := h.rdb.Subscribe(ctx, config.CacheKey.ExamEventsChannel())
	defer pubsub.Close()

	// Reader pump: the client never sends application frames, but reading
	// is the only way to notice a closed connection.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case msg, ok := <-pubsub.Channel():
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				return
			}
		}
	}
}
