package websocket

import (
	"net/http"
	"time"

	chathandler "github.com/echo-relay/echo/internal/api/v1/handlers/chat"
	"github.com/echo-relay/echo/internal/connections"
	"github.com/echo-relay/echo/internal/domain/chat/models"
	"github.com/echo-relay/echo/internal/services/chat"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var (
	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
)

// HandleChatWebSocket serves chat over a WebSocket. Each text message is one
// chat request; its events are written back as JSON text messages.
func HandleChatWebSocket(chatService chat.Service, manager *connections.Manager, maxMessageBytes int64, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("client_ip", r.RemoteAddr).Msg("Could not upgrade connection")
		return
	}

	tracked := manager.Register(conn, r.RemoteAddr)
	defer func() {
		manager.Remove(tracked.ID)
		conn.Close()
	}()

	timeouts := manager.Timeouts()
	if maxMessageBytes > 0 {
		conn.SetReadLimit(maxMessageBytes)
	}

	// Set up ping/pong handlers
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(timeouts.PongWait))
	})

	// Start ping ticker in separate goroutine
	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(timeouts.PingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				deadline := time.Now().Add(timeouts.WriteWait)
				if err := conn.WriteControl(websocket.PingMessage, []byte{}, deadline); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	emit := func(event models.Event) error {
		conn.SetWriteDeadline(time.Now().Add(timeouts.WriteWait))
		return conn.WriteJSON(event)
	}

	// Message handling loop
	for {
		// Pongs are only processed while reading, so the deadline restarts
		// after each response has finished streaming.
		conn.SetReadDeadline(time.Now().Add(timeouts.PongWait))
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("connection_id", tracked.ID).Msg("Unexpected WebSocket closure")
			}
			return
		}

		if messageType != websocket.TextMessage {
			if err := emit(models.Event{Error: "Only text messages are supported"}); err != nil {
				return
			}
			continue
		}

		req, reqErr := chathandler.DecodeRequest(message)
		if reqErr != nil {
			log.Warn().Str("reason", reqErr.Message).Str("connection_id", tracked.ID).Msg("Request validation failed")
			if err := emit(models.Event{Error: reqErr.Message}); err != nil {
				return
			}
			continue
		}

		count := tracked.CountRequest()
		log.Info().
			Str("connection_id", tracked.ID).
			Int64("request", count).
			Int("message_count", len(req.Conversation())).
			Bool("is_pro", req.IsPro).
			Msg("Received chat request over WebSocket")

		if err := chatService.Respond(r.Context(), req.Conversation(), req.Tier(), emit); err != nil {
			log.Warn().Err(err).Str("connection_id", tracked.ID).Msg("WebSocket chat stream ended early")
			return
		}
	}
}
