package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/echo-relay/echo/internal/domain/chat/models"
	"github.com/echo-relay/echo/internal/services/augment"
	"github.com/echo-relay/echo/internal/services/relay"
	"github.com/echo-relay/echo/pkg/logger"
	"github.com/google/uuid"
)

// FailureMessage is the error text sent to clients when the model fails
const FailureMessage = "Chat service failed"

type Implementation struct {
	augmenter Augmenter
	streamer  Streamer
}

func NewService(augmenter Augmenter, streamer Streamer) (*Implementation, error) {
	if streamer == nil {
		return nil, fmt.Errorf("completion streamer is required")
	}
	if augmenter == nil {
		augmenter = augment.NewService()
	}

	return &Implementation{
		augmenter: augmenter,
		streamer:  streamer,
	}, nil
}

// Respond runs one request: live data bypass, or a relayed model answer with
// optional injected context. The returned error is non-nil only when the
// client stopped accepting events or the context ended.
func (s *Implementation) Respond(ctx context.Context, conv models.Conversation, tier models.Tier, emit Emitter) error {
	if len(conv) == 0 {
		return fmt.Errorf("empty conversation")
	}

	id := uuid.New().String()
	log := logger.For(logger.CHAT).With().Str("request_id", id).Logger()

	decision := s.augmenter.Augment(ctx, conv)

	log.Debug().
		Str("mode", decision.Mode.String()).
		Str("category", decision.Category.String()).
		Str("tier", tier.String()).
		Msg("Dispatch decision")

	if decision.Mode == augment.ModeBypass {
		if err := emit(models.Event{ID: id, Content: decision.Text, ModelUsed: models.LiveDataLabel}); err != nil {
			return fmt.Errorf("failed to emit live data: %w", err)
		}
		if err := emit(models.Event{ID: id, Done: true, ModelUsed: models.LiveDataLabel}); err != nil {
			return fmt.Errorf("failed to emit terminal event: %w", err)
		}
		return nil
	}

	label := models.SelectModel(tier).Label

	result, err := s.streamer.Stream(ctx, decision.Apply(conv), tier, func(delta string) error {
		return emit(models.Event{ID: id, Content: delta, ModelUsed: label})
	})
	if err != nil {
		if errors.Is(err, relay.ErrSinkClosed) || ctx.Err() != nil {
			log.Info().Err(err).Msg("Client stopped receiving before stream finished")
			return err
		}

		log.Error().Err(err).Msg("Completion relay failed")
		if emitErr := emit(models.Event{ID: id, Error: FailureMessage}); emitErr != nil {
			return fmt.Errorf("failed to emit error event: %w", emitErr)
		}
		return nil
	}

	if result != nil && result.ModelUsed != "" {
		label = result.ModelUsed
	}

	if err := emit(models.Event{ID: id, Done: true, ModelUsed: label}); err != nil {
		return fmt.Errorf("failed to emit terminal event: %w", err)
	}

	return nil
}
