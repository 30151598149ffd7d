package sources

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/echo-relay/echo/internal/domain/chat/models"
	"github.com/echo-relay/echo/internal/infrastructure/gnews"
	"github.com/echo-relay/echo/internal/services/extract"
)

// NewsResultLimit caps the articles requested per search
const NewsResultLimit = 3

// NewsSearchClient is the full-text search endpoint used by the news fetcher
type NewsSearchClient interface {
	Search(ctx context.Context, query string, max int) (*gnews.ArticlesResponse, error)
}

type NewsFetcher struct {
	client NewsSearchClient
	now    Clock
}

func NewNewsFetcher(client NewsSearchClient, now Clock) *NewsFetcher {
	if now == nil {
		now = time.Now
	}
	return &NewsFetcher{client: client, now: now}
}

func (f *NewsFetcher) Category() extract.Category {
	return extract.CategoryNews
}

func (f *NewsFetcher) Fetch(ctx context.Context, entity extract.Entity) (out Outcome) {
	defer recoverOutcome(&out)

	if entity.Topic == "" {
		return Empty()
	}

	resp, err := f.client.Search(ctx, entity.Topic, NewsResultLimit)
	if err != nil {
		return Failed(err)
	}
	if resp == nil || len(resp.Articles) == 0 {
		return Empty()
	}

	articles := resp.Articles
	if len(articles) > NewsResultLimit {
		articles = articles[:NewsResultLimit]
	}

	var b strings.Builder
	b.WriteString(models.LiveContextPreamble)
	fmt.Fprintf(&b, "Latest news results for %q:", entity.Topic)
	for i, a := range articles {
		b.WriteString("\n\n")
		b.WriteString(formatArticle(i+1, a))
	}
	b.WriteString(footer("GNews", f.now()))

	return Data(b.String())
}

func formatArticle(n int, a gnews.Article) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%d. **%s**", n, strings.TrimSpace(a.Title))

	source := a.Source.Name
	if source == "" {
		source = "Unknown source"
	}
	published := a.PublishedAt
	if t, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
		published = t.UTC().Format(timestampLayout)
	}
	if published == "" {
		published = "unknown date"
	}
	fmt.Fprintf(&b, "\n   Source: %s | Published: %s", source, published)

	if desc := strings.TrimSpace(a.Description); desc != "" {
		fmt.Fprintf(&b, "\n   %s", desc)
	}
	if a.URL != "" {
		fmt.Fprintf(&b, "\n   Link: %s", a.URL)
	}

	return b.String()
}
