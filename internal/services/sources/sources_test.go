package sources

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/echo-relay/echo/internal/domain/chat/models"
	"github.com/echo-relay/echo/internal/infrastructure/coingecko"
	"github.com/echo-relay/echo/internal/infrastructure/finnhub"
	"github.com/echo-relay/echo/internal/infrastructure/gnews"
	"github.com/echo-relay/echo/internal/infrastructure/tmdb"
	"github.com/echo-relay/echo/internal/services/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

const generatedAt = "Generated Oct 17, 2026 12:00 UTC"

func jsonServer(t *testing.T, path string, status int, body string, check func(r *http.Request)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, path, r.URL.Path)
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestStockFetcher(t *testing.T) {
	t.Setenv("FINNHUB_API_KEY", "test-key")

	tests := []struct {
		name     string
		status   int
		body     string
		wantKind Kind
		contains []string
		absent   []string
	}{
		{
			name:     "full quote",
			status:   http.StatusOK,
			body:     `{"c":189.84,"d":1.23,"dp":0.65,"h":190.1,"l":187.5,"o":188,"pc":188.61,"t":1700000000}`,
			wantKind: KindData,
			contains: []string{"**AAPL**", "Current price: $189.84", "Change: +1.23 (+0.65%)", "Day high: $190.10", "Day low: $187.50", "Open: $188.00", "Previous close: $188.61", "Source: Finnhub", generatedAt},
		},
		{
			name:     "optional fields omitted when zero",
			status:   http.StatusOK,
			body:     `{"c":12.5,"d":-0.5,"dp":-3.85,"h":0,"l":0,"o":0,"pc":0}`,
			wantKind: KindData,
			contains: []string{"Current price: $12.50", "Change: -0.50 (-3.85%)"},
			absent:   []string{"Day high", "Day low", "Open", "Previous close"},
		},
		{
			name:     "unknown symbol is empty",
			status:   http.StatusOK,
			body:     `{"c":0,"d":null,"dp":null,"h":0,"l":0,"o":0,"pc":0,"t":0}`,
			wantKind: KindEmpty,
		},
		{
			name:     "non-success status is error",
			status:   http.StatusTooManyRequests,
			body:     `{"error":"limit"}`,
			wantKind: KindError,
		},
		{
			name:     "malformed body is error",
			status:   http.StatusOK,
			body:     `not json`,
			wantKind: KindError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := jsonServer(t, "/quote", tt.status, tt.body, func(r *http.Request) {
				assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
				assert.Equal(t, "test-key", r.URL.Query().Get("token"))
			})
			svc := finnhub.NewService()
			require.NotNil(t, svc)
			svc.SetBaseURL(server.URL)

			out := NewStockFetcher(svc, fixedClock).Fetch(context.Background(), extract.Entity{Symbol: "AAPL"})

			assert.Equal(t, tt.wantKind, out.Kind)
			if tt.wantKind == KindError {
				assert.Error(t, out.Err)
			}
			for _, s := range tt.contains {
				assert.Contains(t, out.Text, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, out.Text, s)
			}
		})
	}
}

func TestStockFetcherMissingSymbol(t *testing.T) {
	out := NewStockFetcher(nil, fixedClock).Fetch(context.Background(), extract.Entity{})
	assert.Equal(t, KindEmpty, out.Kind)
}

func TestCryptoFetcher(t *testing.T) {
	tests := []struct {
		name     string
		coins    []string
		status   int
		body     string
		wantKind Kind
		contains []string
		absent   []string
	}{
		{
			name:     "both coins priced",
			coins:    []string{"bitcoin", "ethereum"},
			status:   http.StatusOK,
			body:     `[{"id":"ethereum","symbol":"eth","name":"Ethereum","current_price":312.5,"price_change_percentage_24h":-1.2},{"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":650.25,"price_change_percentage_24h":2.1,"high_24h":660,"low_24h":640}]`,
			wantKind: KindData,
			contains: []string{"**Bitcoin (BTC)**", "Price: $650.25", "24h change: +2.10%", "24h high: $660.00", "24h low: $640.00", "**Ethereum (ETH)**", "24h change: -1.20%", "Source: CoinGecko", generatedAt},
		},
		{
			name:     "one coin unpriced is still data",
			coins:    []string{"bitcoin", "ethereum"},
			status:   http.StatusOK,
			body:     `[{"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":650.25},{"id":"ethereum","symbol":"eth","name":"Ethereum","current_price":null}]`,
			wantKind: KindData,
			contains: []string{"Bitcoin (BTC)"},
			absent:   []string{"Ethereum"},
		},
		{
			name:     "no coin priced is empty",
			coins:    []string{"bitcoin"},
			status:   http.StatusOK,
			body:     `[]`,
			wantKind: KindEmpty,
		},
		{
			name:     "non-success status is error",
			coins:    []string{"bitcoin"},
			status:   http.StatusInternalServerError,
			body:     `oops`,
			wantKind: KindError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			server := jsonServer(t, "/coins/markets", tt.status, tt.body, func(r *http.Request) {
				calls++
				assert.Equal(t, "usd", r.URL.Query().Get("vs_currency"))
				assert.Equal(t, strings.Join(tt.coins, ","), r.URL.Query().Get("ids"))
			})
			svc := coingecko.NewService().SetBaseURL(server.URL)

			out := NewCryptoFetcher(svc, fixedClock).Fetch(context.Background(), extract.Entity{Coins: tt.coins})

			assert.Equal(t, 1, calls, "coins are fetched in one batched call")
			assert.Equal(t, tt.wantKind, out.Kind)
			for _, s := range tt.contains {
				assert.Contains(t, out.Text, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, out.Text, s)
			}
		})
	}
}

func TestCryptoFetcherKeepsRequestedOrder(t *testing.T) {
	server := jsonServer(t, "/coins/markets", http.StatusOK,
		`[{"id":"ethereum","symbol":"eth","name":"Ethereum","current_price":3},{"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":6}]`, nil)
	svc := coingecko.NewService().SetBaseURL(server.URL)

	out := NewCryptoFetcher(svc, fixedClock).Fetch(context.Background(), extract.Entity{Coins: []string{"bitcoin", "ethereum"}})

	require.Equal(t, KindData, out.Kind)
	assert.Less(t, strings.Index(out.Text, "Bitcoin"), strings.Index(out.Text, "Ethereum"))
}

func TestMovieFetcher(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "test-key")

	tests := []struct {
		name     string
		status   int
		body     string
		wantKind Kind
		contains []string
		absent   []string
	}{
		{
			name:   "released and upcoming",
			status: http.StatusOK,
			body: `{"page":1,"total_results":2,"results":[
				{"id":1,"title":"Avengers: Doomsday","release_date":"2026-12-18","vote_average":0,"vote_count":0,"overview":""},
				{"id":2,"title":"Avengers: Endgame","release_date":"2019-04-24","vote_average":8.3,"vote_count":25500,"overview":"The grave course of events."}]}`,
			wantKind: KindData,
			contains: []string{
				"1. **Avengers: Doomsday** (Upcoming)", "Release date: December 18, 2026", "not yet rated", "No synopsis available.",
				"2. **Avengers: Endgame** (Released)", "Rating: 8.3/10 (25,500 votes)", "The grave course of events.",
				"Source: TMDB", generatedAt,
			},
		},
		{
			name:     "no results is an informative answer",
			status:   http.StatusOK,
			body:     `{"page":1,"total_results":0,"results":[]}`,
			wantKind: KindData,
			contains: []string{`couldn't find any movie matching "avengers"`, "Source: TMDB"},
		},
		{
			name:     "missing release date",
			status:   http.StatusOK,
			body:     `{"results":[{"id":3,"title":"Avengers Untitled","release_date":""}]}`,
			wantKind: KindData,
			contains: []string{"(Release date unannounced)", "Release date: TBA"},
		},
		{
			name:   "only top three listed",
			status: http.StatusOK,
			body: `{"results":[{"title":"A1","release_date":"2001-01-01"},{"title":"A2","release_date":"2002-01-01"},
				{"title":"A3","release_date":"2003-01-01"},{"title":"A4","release_date":"2004-01-01"}]}`,
			wantKind: KindData,
			contains: []string{"**A1**", "**A2**", "**A3**"},
			absent:   []string{"**A4**"},
		},
		{
			name:     "unauthorized is error",
			status:   http.StatusUnauthorized,
			body:     `{"status_message":"Invalid API key"}`,
			wantKind: KindError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := jsonServer(t, "/search/movie", tt.status, tt.body, func(r *http.Request) {
				assert.Equal(t, "avengers", r.URL.Query().Get("query"))
				assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
			})
			svc := tmdb.NewService()
			require.NotNil(t, svc)
			svc.SetBaseURL(server.URL)

			out := NewMovieFetcher(svc, fixedClock).Fetch(context.Background(), extract.Entity{Title: "avengers"})

			assert.Equal(t, tt.wantKind, out.Kind)
			for _, s := range tt.contains {
				assert.Contains(t, out.Text, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, out.Text, s)
			}
		})
	}
}

func TestNewsFetcher(t *testing.T) {
	t.Setenv("GNEWS_API_KEY", "test-key")

	tests := []struct {
		name     string
		status   int
		body     string
		wantKind Kind
		contains []string
	}{
		{
			name:   "articles",
			status: http.StatusOK,
			body: `{"totalArticles":2,"articles":[
				{"title":"Polls open","description":"Voters head out.","url":"https://example.com/1","publishedAt":"2026-10-17T09:30:00Z","source":{"name":"Wire"}},
				{"title":"Results expected","description":"","url":"","publishedAt":"yesterday","source":{"name":""}}]}`,
			wantKind: KindData,
			contains: []string{
				`Latest news results for "elections":`,
				"1. **Polls open**", "Source: Wire | Published: Oct 17, 2026 09:30 UTC", "Voters head out.", "Link: https://example.com/1",
				"2. **Results expected**", "Source: Unknown source | Published: yesterday",
				"Source: GNews", generatedAt,
			},
		},
		{
			name:     "no articles is empty",
			status:   http.StatusOK,
			body:     `{"totalArticles":0,"articles":[]}`,
			wantKind: KindEmpty,
		},
		{
			name:     "forbidden is error",
			status:   http.StatusForbidden,
			body:     `{"errors":["quota"]}`,
			wantKind: KindError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := jsonServer(t, "/search", tt.status, tt.body, func(r *http.Request) {
				assert.Equal(t, "elections", r.URL.Query().Get("q"))
				assert.Equal(t, "3", r.URL.Query().Get("max"))
				assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
			})
			svc := gnews.NewService()
			require.NotNil(t, svc)
			svc.SetBaseURL(server.URL)

			out := NewNewsFetcher(svc, fixedClock).Fetch(context.Background(), extract.Entity{Topic: "elections"})

			assert.Equal(t, tt.wantKind, out.Kind)
			if tt.wantKind == KindData {
				assert.True(t, strings.HasPrefix(out.Text, models.LiveContextPreamble))
			}
			for _, s := range tt.contains {
				assert.Contains(t, out.Text, s)
			}
		})
	}
}

type panickingQuotes struct{}

func (panickingQuotes) Quote(context.Context, string) (*finnhub.Quote, error) {
	panic("boom")
}

type failingSearch struct{ err error }

func (f failingSearch) Search(context.Context, string, int) (*gnews.ArticlesResponse, error) {
	return nil, f.err
}

func TestFetchNeverPanics(t *testing.T) {
	out := NewStockFetcher(panickingQuotes{}, fixedClock).Fetch(context.Background(), extract.Entity{Symbol: "AAPL"})
	assert.Equal(t, KindError, out.Kind)
	assert.Error(t, out.Err)
}

func TestFetchPropagatesTransportError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	out := NewNewsFetcher(failingSearch{err: cause}, fixedClock).Fetch(context.Background(), extract.Entity{Topic: "world"})
	assert.Equal(t, KindError, out.Kind)
	assert.ErrorIs(t, out.Err, cause)
}

func TestFetchHonorsCancelledContext(t *testing.T) {
	t.Setenv("FINNHUB_API_KEY", "test-key")
	server := jsonServer(t, "/quote", http.StatusOK, `{"c":1}`, nil)
	svc := finnhub.NewService().SetBaseURL(server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := NewStockFetcher(svc, fixedClock).Fetch(ctx, extract.Entity{Symbol: "AAPL"})
	assert.Equal(t, KindError, out.Kind)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "data", KindData.String())
	assert.Equal(t, "empty", KindEmpty.String())
	assert.Equal(t, "error", KindError.String())
}
