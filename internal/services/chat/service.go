package chat

import (
	"context"

	"github.com/echo-relay/echo/internal/domain/chat/models"
	"github.com/echo-relay/echo/internal/services/augment"
	"github.com/echo-relay/echo/internal/services/relay"
)

// Emitter delivers one output event to the client. An error means the
// client can no longer receive events.
type Emitter func(event models.Event) error

// Service defines the interface for chat operations
type Service interface {
	// Respond answers the conversation, emitting content events followed by
	// exactly one terminal event
	Respond(ctx context.Context, conv models.Conversation, tier models.Tier, emit Emitter) error
}

// Augmenter decides whether live data answers or enriches a conversation
type Augmenter interface {
	Augment(ctx context.Context, conv models.Conversation) augment.Decision
}

// Streamer relays a model completion chunk by chunk
type Streamer interface {
	Stream(ctx context.Context, conv models.Conversation, tier models.Tier, onChunk relay.ChunkSink) (*relay.Result, error)
}
