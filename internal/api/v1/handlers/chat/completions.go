package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/echo-relay/echo/internal/domain/chat/models"
	"github.com/echo-relay/echo/internal/services/chat"
	"github.com/echo-relay/echo/pkg/httpext"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// use a single instance of Validate, it caches struct info
var validate = validator.New(validator.WithRequiredStructEnabled())

// RequestError is a client mistake reported back with its HTTP status
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// DecodeRequest parses and validates a chat request body
func DecodeRequest(data []byte) (models.ChatRequest, *RequestError) {
	var req models.ChatRequest

	if err := json.Unmarshal(data, &req); err != nil {
		return req, &RequestError{Status: http.StatusBadRequest, Message: "Invalid request format"}
	}

	if err := validate.Struct(req); err != nil {
		return req, &RequestError{Status: http.StatusBadRequest, Message: fmt.Sprintf("Invalid request: %v", err)}
	}

	if len(req.Conversation()) == 0 {
		return req, &RequestError{Status: http.StatusBadRequest, Message: "Message is required"}
	}

	return req, nil
}

// HandleChat answers a conversation as a server-sent event stream
func HandleChat(chatService chat.Service, w http.ResponseWriter, r *http.Request) {
	var body json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Warn().Int64("limit", tooLarge.Limit).Msg("Client sent oversized request body")
			httpext.JsonError(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		log.Warn().Err(err).Msg("Client sent malformed JSON request")
		httpext.JsonError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	req, reqErr := DecodeRequest(body)
	if reqErr != nil {
		log.Warn().Str("reason", reqErr.Message).Msg("Request validation failed")
		httpext.JsonError(w, reqErr.Message, reqErr.Status)
		return
	}

	conv := req.Conversation()

	log.Info().
		Int("message_count", len(conv)).
		Bool("is_pro", req.IsPro).
		Str("client_ip", r.RemoteAddr).
		Msg("Received chat request")

	stream, err := httpext.NewEventStream(w)
	if err != nil {
		log.Error().Err(err).Msg("Response writer cannot stream")
		httpext.JsonError(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	emit := func(event models.Event) error {
		return stream.Send(event)
	}

	if err := chatService.Respond(r.Context(), conv, req.Tier(), emit); err != nil {
		log.Warn().Err(err).Str("client_ip", r.RemoteAddr).Msg("Chat stream ended early")
		return
	}

	log.Info().
		Str("client_ip", r.RemoteAddr).
		Msg("Chat request streamed successfully")
}
