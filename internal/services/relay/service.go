// Package relay streams chat completions from an OpenAI-compatible provider
// and forwards each content delta to a caller-supplied sink as it arrives.
package relay

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/echo-relay/echo/internal/config"
	"github.com/echo-relay/echo/internal/domain/chat/models"
	"github.com/echo-relay/echo/pkg/httpext"
	"github.com/echo-relay/echo/pkg/logger"
	"github.com/sashabaranov/go-openai"
)

const (
	dataPrefix   = "data:"
	doneSentinel = "[DONE]"
)

// State is the lifecycle of one relay call
type State int

const (
	StateConnecting State = iota
	StateStreaming
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStreaming:
		return "streaming"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "connecting"
	}
}

// ChunkSink receives each non-empty content delta in arrival order.
// Returning an error stops the relay.
type ChunkSink func(delta string) error

// Result summarises a relay call. On failure it holds whatever was
// received before the error.
type Result struct {
	FullText     string
	ModelUsed    string
	ModelID      string
	FinishReason string
	Usage        *openai.Usage
	Chunks       int
	State        State
}

type Service struct {
	mu     sync.RWMutex
	client *http.Client
	apiKey string
	url    string
}

func NewService() (*Service, error) {
	apiKey := config.GetGroqAPIKey()
	if apiKey == "" {
		return nil, fmt.Errorf("model provider API key is required")
	}

	return &Service{
		client: &http.Client{},
		apiKey: apiKey,
		url:    config.GetGroqAPIURL(),
	}, nil
}

// SetURL points the relay at a different chat completions endpoint
func (s *Service) SetURL(url string) *Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.url = url
	return s
}

// Stream sends the conversation to the model selected for tier and relays
// the streamed reply through onChunk.
func (s *Service) Stream(ctx context.Context, conv models.Conversation, tier models.Tier, onChunk ChunkSink) (*Result, error) {
	s.mu.RLock()
	client, apiKey, url := s.client, s.apiKey, s.url
	s.mu.RUnlock()

	log := logger.For(logger.RELAY)
	selection := models.SelectModel(tier)

	result := &Result{
		ModelUsed: selection.Label,
		ModelID:   selection.ModelID,
		State:     StateConnecting,
	}

	body, err := json.Marshal(openai.ChatCompletionRequest{
		Model:       selection.ModelID,
		Messages:    conv.ToOpenAI(),
		MaxTokens:   selection.MaxTokens,
		Temperature: selection.Temperature,
		Stream:      true,
	})
	if err != nil {
		result.State = StateFailed
		return result, fmt.Errorf("failed to encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		result.State = StateFailed
		return result, fmt.Errorf("failed to create completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	log.Debug().
		Str("model", selection.ModelID).
		Str("tier", tier.String()).
		Int("messages", len(conv)).
		Msg("Opening completion stream")

	resp, err := client.Do(req)
	if err != nil {
		result.State = StateFailed
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		log.Error().Err(err).Str("model", selection.ModelID).Msg("Failed to reach model provider")
		return result, &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		result.State = StateFailed
		upstreamErr := &UpstreamError{
			StatusCode: resp.StatusCode,
			Body:       httpext.ReadErrorBody(resp.Body),
		}
		log.Error().
			Int("status", resp.StatusCode).
			Str("body", upstreamErr.Body).
			Str("model", selection.ModelID).
			Msg("Model provider rejected completion request")
		return result, upstreamErr
	}

	result.State = StateStreaming

	if err := readStream(ctx, resp.Body, onChunk, result); err != nil {
		result.State = StateFailed
		if !errors.Is(err, ErrSinkClosed) && ctx.Err() == nil {
			log.Error().Err(err).Int("chunks", result.Chunks).Msg("Completion stream broke")
		}
		return result, err
	}

	result.State = StateDone
	log.Info().
		Str("model", result.ModelID).
		Int("chunks", result.Chunks).
		Int("length", len(result.FullText)).
		Str("finish_reason", result.FinishReason).
		Msg("Completion stream finished")

	return result, nil
}

// readStream parses server-sent events from r. Lines may be split across
// reads; a trailing line without a newline is processed at end of input.
// The [DONE] sentinel is discarded and reading continues until EOF.
func readStream(ctx context.Context, r io.Reader, onChunk ChunkSink, result *Result) error {
	reader := bufio.NewReader(r)
	var text strings.Builder

	defer func() {
		result.FullText = text.String()
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, readErr := reader.ReadBytes('\n')
		if len(line) > 0 {
			delta, ok := parseLine(line, result)
			if ok {
				text.WriteString(delta)
				result.Chunks++
				if err := onChunk(delta); err != nil {
					return fmt.Errorf("%w: %w", ErrSinkClosed, err)
				}
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return &UpstreamError{Err: readErr}
		}
	}
}

// parseLine extracts the content delta from one event line and records
// stream metadata on result. ok is false for lines that carry no content.
func parseLine(line []byte, result *Result) (string, bool) {
	line = bytes.TrimRight(line, "\r\n")
	if !bytes.HasPrefix(line, []byte(dataPrefix)) {
		return "", false
	}

	payload := bytes.TrimSpace(line[len(dataPrefix):])
	if len(payload) == 0 || string(payload) == doneSentinel {
		return "", false
	}

	var event openai.ChatCompletionStreamResponse
	if err := json.Unmarshal(payload, &event); err != nil {
		log := logger.For(logger.RELAY)
		log.Debug().Err(err).Msg("Skipping malformed stream event")
		return "", false
	}

	if event.Model != "" {
		result.ModelID = event.Model
	}
	if event.Usage != nil {
		result.Usage = event.Usage
	}
	if len(event.Choices) == 0 {
		return "", false
	}

	choice := event.Choices[0]
	if choice.FinishReason != "" {
		result.FinishReason = string(choice.FinishReason)
	}
	if choice.Delta.Content == "" {
		return "", false
	}

	return choice.Delta.Content, true
}
