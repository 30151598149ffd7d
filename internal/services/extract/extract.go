// Package extract classifies the latest message of a conversation into a
// live-data category and pulls out the entity the matching source needs.
//
// Classification walks a fixed priority table and the first matching rule
// wins. Everything here is pure: no I/O and no clock.
package extract

import (
	"strings"
	"unicode"

	"github.com/echo-relay/echo/internal/domain/chat/models"
)

// Category is the live-data domain a query belongs to
type Category int

const (
	CategoryNone Category = iota
	CategoryStock
	CategoryCrypto
	CategoryMovie
	CategoryNews
)

func (c Category) String() string {
	switch c {
	case CategoryStock:
		return "stock"
	case CategoryCrypto:
		return "crypto"
	case CategoryMovie:
		return "movie"
	case CategoryNews:
		return "news"
	default:
		return "none"
	}
}

// Entity is the category-specific payload extracted from a query. Only the
// field belonging to the classified category is set.
type Entity struct {
	Symbol string   `json:"symbol,omitempty"`
	Coins  []string `json:"coins,omitempty"`
	Title  string   `json:"title,omitempty"`
	Topic  string   `json:"topic,omitempty"`
}

type rule struct {
	category Category
	matches  func(lower, raw string) bool
	extract  func(lower, raw string) (Entity, bool)
}

// rules is evaluated top to bottom; order is the tie-break policy.
var rules = []rule{
	{category: CategoryMovie, matches: matchMovie, extract: extractMovie},
	{category: CategoryStock, matches: matchStock, extract: extractStock},
	{category: CategoryCrypto, matches: matchCrypto, extract: extractCrypto},
	{category: CategoryNews, matches: matchNews, extract: extractNews},
}

// Priority returns the categories in the order they are tested
func Priority() []Category {
	out := make([]Category, len(rules))
	for i, r := range rules {
		out[i] = r.category
	}
	return out
}

// Classify returns the category of the last message in the conversation and
// the extracted entity. The entity is nil when the category matched but
// extraction found nothing usable, and always nil for CategoryNone.
func Classify(conv models.Conversation) (Category, *Entity) {
	last, ok := conv.Last()
	if !ok {
		return CategoryNone, nil
	}
	return ClassifyText(last.Content)
}

// ClassifyText classifies a single piece of text
func ClassifyText(raw string) (Category, *Entity) {
	lower := strings.ToLower(raw)

	for _, r := range rules {
		if !r.matches(lower, raw) {
			continue
		}
		entity, ok := r.extract(lower, raw)
		if !ok {
			return r.category, nil
		}
		return r.category, &entity
	}

	return CategoryNone, nil
}

// normalize replaces punctuation with spaces, keeping hyphens and apostrophes
// that belong to words. Typographic apostrophes become plain ones.
func normalize(lower string) string {
	return strings.Map(func(r rune) rune {
		if r == '\u2019' || r == '\u2018' {
			return '\''
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '\'' || r == '&' {
			return r
		}
		return ' '
	}, lower)
}

// stripWords removes stop words and collapses whitespace
func stripWords(lower string, stop map[string]struct{}) string {
	fields := strings.Fields(normalize(lower))
	kept := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, "-'")
		if f == "" {
			continue
		}
		if _, drop := stop[f]; drop {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
