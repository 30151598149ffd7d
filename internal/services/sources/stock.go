package sources

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/echo-relay/echo/internal/infrastructure/finnhub"
	"github.com/echo-relay/echo/internal/services/extract"
)

// QuoteClient is the quote endpoint used by the stock fetcher
type QuoteClient interface {
	Quote(ctx context.Context, symbol string) (*finnhub.Quote, error)
}

type StockFetcher struct {
	client QuoteClient
	now    Clock
}

func NewStockFetcher(client QuoteClient, now Clock) *StockFetcher {
	if now == nil {
		now = time.Now
	}
	return &StockFetcher{client: client, now: now}
}

func (f *StockFetcher) Category() extract.Category {
	return extract.CategoryStock
}

func (f *StockFetcher) Fetch(ctx context.Context, entity extract.Entity) (out Outcome) {
	defer recoverOutcome(&out)

	if entity.Symbol == "" {
		return Empty()
	}

	quote, err := f.client.Quote(ctx, entity.Symbol)
	if err != nil {
		return Failed(err)
	}
	if quote == nil || quote.Current == 0 {
		return Empty()
	}

	return Data(formatQuote(entity.Symbol, quote, f.now()))
}

func formatQuote(symbol string, q *finnhub.Quote, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "**%s** live stock quote\n", symbol)
	fmt.Fprintf(&b, "- Current price: %s", money(q.Current))

	if q.Change != nil {
		change := fmt.Sprintf("\n- Change: %s", signed(*q.Change))
		if q.PercentChange != nil {
			change += fmt.Sprintf(" (%s%%)", signed(*q.PercentChange))
		}
		b.WriteString(change)
	}

	optional := []struct {
		label string
		value float64
	}{
		{"Day high", q.High},
		{"Day low", q.Low},
		{"Open", q.Open},
		{"Previous close", q.PreviousClose},
	}
	for _, o := range optional {
		if o.value != 0 {
			fmt.Fprintf(&b, "\n- %s: %s", o.label, money(o.value))
		}
	}

	b.WriteString(footer("Finnhub", now))
	return b.String()
}
