package sources

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/echo-relay/echo/internal/infrastructure/coingecko"
	"github.com/echo-relay/echo/internal/services/extract"
)

// MarketsClient is the batched price endpoint used by the crypto fetcher
type MarketsClient interface {
	Markets(ctx context.Context, ids []string, vsCurrency string) ([]coingecko.Market, error)
}

type CryptoFetcher struct {
	client MarketsClient
	now    Clock
}

func NewCryptoFetcher(client MarketsClient, now Clock) *CryptoFetcher {
	if now == nil {
		now = time.Now
	}
	return &CryptoFetcher{client: client, now: now}
}

func (f *CryptoFetcher) Category() extract.Category {
	return extract.CategoryCrypto
}

// Fetch asks for every requested coin in one call. Coins the source does not
// price are left out; the outcome is Empty only when none are priced.
func (f *CryptoFetcher) Fetch(ctx context.Context, entity extract.Entity) (out Outcome) {
	defer recoverOutcome(&out)

	if len(entity.Coins) == 0 {
		return Empty()
	}

	markets, err := f.client.Markets(ctx, entity.Coins, "usd")
	if err != nil {
		return Failed(err)
	}

	byID := make(map[string]coingecko.Market, len(markets))
	for _, m := range markets {
		byID[m.ID] = m
	}

	var blocks []string
	for _, id := range entity.Coins {
		m, ok := byID[id]
		if !ok || m.CurrentPrice == nil {
			continue
		}
		blocks = append(blocks, formatCoin(id, m))
	}

	if len(blocks) == 0 {
		return Empty()
	}

	text := "Live crypto prices (USD)\n\n" + strings.Join(blocks, "\n\n") + footer("CoinGecko", f.now())
	return Data(text)
}

func formatCoin(id string, m coingecko.Market) string {
	var b strings.Builder

	name := m.Name
	if name == "" && id != "" {
		name = strings.ToUpper(id[:1]) + id[1:]
	}
	if m.Symbol != "" {
		fmt.Fprintf(&b, "**%s (%s)**\n", name, strings.ToUpper(m.Symbol))
	} else {
		fmt.Fprintf(&b, "**%s**\n", name)
	}
	fmt.Fprintf(&b, "- Price: %s", money(*m.CurrentPrice))

	if m.PriceChangePercentage24h != nil {
		fmt.Fprintf(&b, "\n- 24h change: %s%%", signed(*m.PriceChangePercentage24h))
	}
	if m.High24h != nil {
		fmt.Fprintf(&b, "\n- 24h high: %s", money(*m.High24h))
	}
	if m.Low24h != nil {
		fmt.Fprintf(&b, "\n- 24h low: %s", money(*m.Low24h))
	}
	if m.MarketCap != nil {
		fmt.Fprintf(&b, "\n- Market cap: %s", money(*m.MarketCap))
	}
	if m.TotalVolume != nil {
		fmt.Fprintf(&b, "\n- 24h volume: %s", money(*m.TotalVolume))
	}

	return b.String()
}
