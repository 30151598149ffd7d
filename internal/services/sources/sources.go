// Package sources implements one live-data fetcher per query category. Every
// fetcher performs at most one outbound call and reports the result as an
// Outcome value; failures never escape as panics or errors.
package sources

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/echo-relay/echo/internal/services/extract"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Kind discriminates the Outcome variants
type Kind int

const (
	KindEmpty Kind = iota
	KindData
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindData:
		return "data"
	case KindError:
		return "error"
	default:
		return "empty"
	}
}

// Outcome is the result of a single fetch
type Outcome struct {
	Kind Kind
	Text string
	Err  error
}

// Data is a successful fetch carrying formatted text
func Data(text string) Outcome {
	return Outcome{Kind: KindData, Text: text}
}

// Empty means the source answered but had nothing usable
func Empty() Outcome {
	return Outcome{Kind: KindEmpty}
}

// Failed wraps a transport, status or decoding failure
func Failed(err error) Outcome {
	return Outcome{Kind: KindError, Err: err}
}

// Fetcher looks up live data for one category
type Fetcher interface {
	Category() extract.Category
	Fetch(ctx context.Context, entity extract.Entity) Outcome
}

// Clock supplies the generation timestamp and the reference time for
// upcoming/released decisions.
type Clock func() time.Time

const timestampLayout = "Jan 2, 2006 15:04 MST"

var printer = message.NewPrinter(language.English)

func footer(source string, now time.Time) string {
	return fmt.Sprintf("\n\n_Source: %s | Generated %s_", source, now.UTC().Format(timestampLayout))
}

// money formats an amount with thousands separators and two decimals
func money(v float64) string {
	if v < 0 {
		return "-$" + printer.Sprintf("%.2f", math.Abs(v))
	}
	return "$" + printer.Sprintf("%.2f", v)
}

func signed(v float64) string {
	if v < 0 {
		return "-" + printer.Sprintf("%.2f", math.Abs(v))
	}
	return "+" + printer.Sprintf("%.2f", v)
}

func recoverOutcome(out *Outcome) {
	if r := recover(); r != nil {
		*out = Failed(fmt.Errorf("fetch panicked: %v", r))
	}
}
