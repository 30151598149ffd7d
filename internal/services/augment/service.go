// Package augment decides, per request, whether a conversation is answered
// directly from live data, sent to the model with live context prepended, or
// sent to the model unchanged.
package augment

import (
	"context"
	"sync"

	"github.com/echo-relay/echo/internal/domain/chat/models"
	"github.com/echo-relay/echo/internal/services/extract"
	"github.com/echo-relay/echo/internal/services/sources"
	"github.com/echo-relay/echo/pkg/logger"
)

type Mode int

const (
	// ModeNone forwards the conversation unchanged
	ModeNone Mode = iota
	// ModeBypass answers with Text and skips the model
	ModeBypass
	// ModeInject prepends Text as a system message before calling the model
	ModeInject
)

func (m Mode) String() string {
	switch m {
	case ModeBypass:
		return "bypass"
	case ModeInject:
		return "inject"
	default:
		return "none"
	}
}

type Decision struct {
	Mode     Mode
	Text     string
	Category extract.Category
}

// Apply returns the conversation the model should see for this decision
func (d Decision) Apply(conv models.Conversation) models.Conversation {
	if d.Mode != ModeInject {
		return conv
	}
	return conv.Prepend(models.ContextMessage(d.Text))
}

// bypassCategories are answered verbatim when their fetch returns data
var bypassCategories = map[extract.Category]bool{
	extract.CategoryStock:  true,
	extract.CategoryCrypto: true,
	extract.CategoryMovie:  true,
}

type Service struct {
	mu       sync.RWMutex
	fetchers map[extract.Category]sources.Fetcher
}

// NewService registers one fetcher per category. Nil fetchers are skipped so
// unconfigured sources simply fall through to ModeNone.
func NewService(fetchers ...sources.Fetcher) *Service {
	s := &Service{fetchers: make(map[extract.Category]sources.Fetcher)}
	for _, f := range fetchers {
		if f == nil {
			continue
		}
		s.fetchers[f.Category()] = f
	}
	return s
}

// Categories reports which categories have a configured fetcher
func (s *Service) Categories() []extract.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []extract.Category
	for _, c := range extract.Priority() {
		if _, ok := s.fetchers[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Augment classifies the conversation and performs at most one fetch
func (s *Service) Augment(ctx context.Context, conv models.Conversation) Decision {
	log := logger.For(logger.DISPATCH)

	category, entity := extract.Classify(conv)
	if category == extract.CategoryNone || entity == nil {
		log.Debug().Str("category", category.String()).Msg("No live data needed")
		return Decision{Mode: ModeNone, Category: category}
	}

	s.mu.RLock()
	fetcher, ok := s.fetchers[category]
	s.mu.RUnlock()
	if !ok {
		log.Debug().Str("category", category.String()).Msg("No fetcher configured for category")
		return Decision{Mode: ModeNone, Category: category}
	}

	out := fetcher.Fetch(ctx, *entity)

	switch out.Kind {
	case sources.KindData:
		mode := ModeInject
		if bypassCategories[category] {
			mode = ModeBypass
		}
		log.Info().
			Str("category", category.String()).
			Str("mode", mode.String()).
			Int("context_length", len(out.Text)).
			Msg("Live data fetched")
		return Decision{Mode: mode, Text: out.Text, Category: category}

	case sources.KindError:
		log.Warn().
			Err(out.Err).
			Str("category", category.String()).
			Msg("Live data fetch failed, continuing without context")

	default:
		log.Info().
			Str("category", category.String()).
			Msg("Live data source returned nothing usable")
	}

	return Decision{Mode: ModeNone, Category: category}
}
